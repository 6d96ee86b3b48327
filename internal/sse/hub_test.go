package sse

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"teamboard/internal/model"
)

func runHub(t *testing.T) *Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	hub := NewHub()
	go hub.Run(ctx)
	return hub
}

func receive(t *testing.T, ch <-chan model.Notification) model.Notification {
	t.Helper()
	select {
	case n := <-ch:
		return n
	case <-time.After(time.Second):
		t.Fatalf("expected notification")
		return model.Notification{}
	}
}

func TestHubDeliversToUserRoom(t *testing.T) {
	hub := runHub(t)
	alice := &Client{Room: "alice", Ch: make(chan model.Notification, 1)}
	bob := &Client{Room: "bob", Ch: make(chan model.Notification, 1)}
	hub.Register(alice)
	hub.Register(bob)

	require.NoError(t, hub.Publish(context.Background(), model.Notification{ID: "n1", UserID: "alice"}))

	require.Equal(t, "n1", receive(t, alice.Ch).ID)
	select {
	case n := <-bob.Ch:
		t.Fatalf("unexpected delivery to bob: %+v", n)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubDeliversUnaddressedToEveryone(t *testing.T) {
	hub := runHub(t)
	alice := &Client{Room: "alice", Ch: make(chan model.Notification, 1)}
	bob := &Client{Room: "bob", Ch: make(chan model.Notification, 1)}
	hub.Register(alice)
	hub.Register(bob)
	require.Eventually(t, func() bool { return hub.Clients() == 2 }, time.Second, 10*time.Millisecond)

	require.NoError(t, hub.Publish(context.Background(), model.Notification{Title: "all hands"}))

	require.Equal(t, "all hands", receive(t, alice.Ch).Title)
	require.Equal(t, "all hands", receive(t, bob.Ch).Title)

	hub.Unregister(bob)
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 10*time.Millisecond)
}

func TestHubRegisterIsVisibleOnReturn(t *testing.T) {
	hub := runHub(t)
	for i := 1; i <= 50; i++ {
		hub.Register(&Client{Room: "load", Ch: make(chan model.Notification, 1)})
		require.Equal(t, i, hub.Clients())
	}
}

func TestHubPublishHonoursContext(t *testing.T) {
	hub := NewHub()
	for i := 0; i < cap(hub.broadcast); i++ {
		require.NoError(t, hub.Publish(context.Background(), model.Notification{}))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, hub.Publish(ctx, model.Notification{}), context.DeadlineExceeded)
}

func TestHubStoppedDoesNotBlock(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub()
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	client := &Client{Room: "alice", Ch: make(chan model.Notification, 1)}
	hub.Register(client)
	hub.Unregister(client)
	require.Zero(t, hub.Clients())
}
