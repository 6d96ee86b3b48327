package sse

import (
	"context"
	"sync"

	"teamboard/internal/model"
)

// Client is one open event stream. Room is the user id the stream belongs to.
type Client struct {
	Room string
	Ch   chan model.Notification
}

type registration struct {
	client *Client
	added  chan struct{}
}

type Hub struct {
	register   chan registration
	unregister chan *Client
	broadcast  chan model.Notification
	done       chan struct{}
	rooms      map[string]map[*Client]struct{}
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		register:   make(chan registration),
		unregister: make(chan *Client),
		broadcast:  make(chan model.Notification, 64),
		done:       make(chan struct{}),
		rooms:      make(map[string]map[*Client]struct{}),
	}
}

// Register returns once client is counted by Clients and reachable by Publish.
// Register and Unregister are no-ops once Run has returned.
func (h *Hub) Register(client *Client) {
	reg := registration{client: client, added: make(chan struct{})}
	select {
	case h.register <- reg:
	case <-h.done:
		return
	}
	select {
	case <-reg.added:
	case <-h.done:
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Publish queues notification for the room named by its UserID; an empty
// UserID reaches every connected client.
func (h *Hub) Publish(ctx context.Context, notification model.Notification) error {
	select {
	case h.broadcast <- notification:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			return
		case reg := <-h.register:
			h.addClient(reg.client)
			close(reg.added)
		case client := <-h.unregister:
			h.removeClient(client)
		case notification := <-h.broadcast:
			h.deliver(notification)
		}
	}
}

// Clients reports how many streams are connected.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, room := range h.rooms {
		n += len(room)
	}
	return n
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[client.Room] == nil {
		h.rooms[client.Room] = make(map[*Client]struct{})
	}
	h.rooms[client.Room][client] = struct{}{}
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room := h.rooms[client.Room]
	if room == nil {
		return
	}
	delete(room, client)
	if len(room) == 0 {
		delete(h.rooms, client.Room)
	}
}

func (h *Hub) deliver(notification model.Notification) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if notification.UserID != "" {
		send(h.rooms[notification.UserID], notification)
		return
	}
	for _, room := range h.rooms {
		send(room, notification)
	}
}

func send(room map[*Client]struct{}, notification model.Notification) {
	for client := range room {
		select {
		case client.Ch <- notification:
		default:
			// Drop if the client is too slow.
		}
	}
}
