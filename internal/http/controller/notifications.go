package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"teamboard/internal/http/dto"
	"teamboard/internal/http/middleware"
	"teamboard/internal/http/resp"
	"teamboard/internal/model"
	"teamboard/internal/sse"
)

func (h *Handler) ListNotifications(c *gin.Context) {
	ident := middleware.CurrentIdentity(c)
	items, err := h.feed.List(c.Request.Context(), ident.UserID, h.limit(c))
	if err != nil {
		resp.Error(c, "failed to list notifications", err)
		return
	}
	unread := 0
	for _, n := range items {
		if !n.IsRead {
			unread++
		}
	}
	if items == nil {
		items = []model.Notification{}
	}
	c.JSON(http.StatusOK, dto.NotificationListResponse{Notifications: items, UnreadCount: unread})
}

func (h *Handler) MarkRead(c *gin.Context) {
	ident := middleware.CurrentIdentity(c)
	if err := h.feed.MarkRead(c.Request.Context(), ident.UserID, c.Param("id")); err != nil {
		resp.Error(c, "failed to mark notification read", err)
		return
	}
	c.JSON(http.StatusOK, dto.StatusResponse{Code: resp.CodeOK, Message: "marked as read"})
}

func (h *Handler) MarkAllRead(c *gin.Context) {
	ident := middleware.CurrentIdentity(c)
	updated, err := h.feed.MarkAllRead(c.Request.Context(), ident.UserID)
	if err != nil {
		resp.Error(c, "failed to mark notifications read", err)
		return
	}
	c.JSON(http.StatusOK, dto.MarkAllReadResponse{Updated: updated})
}

func (h *Handler) DeleteNotification(c *gin.Context) {
	ident := middleware.CurrentIdentity(c)
	if err := h.feed.Delete(c.Request.Context(), ident.UserID, c.Param("id")); err != nil {
		resp.Error(c, "failed to delete notification", err)
		return
	}
	c.JSON(http.StatusOK, dto.StatusResponse{Code: resp.CodeOK, Message: "deleted"})
}

func (h *Handler) SyncPush(c *gin.Context) {
	var req dto.PushSyncRequest
	if !h.bind(c, &req) {
		return
	}
	tmpl := req.Template()
	tmpl.PushID = req.PushID

	ident := middleware.CurrentIdentity(c)
	n, created, err := h.feed.SyncPush(c.Request.Context(), ident.UserID, tmpl)
	if err != nil {
		resp.Error(c, "failed to sync push notification", err)
		return
	}
	if !created {
		c.JSON(http.StatusOK, n)
		return
	}
	c.JSON(http.StatusCreated, n)
}

// Stream replays recent history for the caller and then follows new notifications.
func (h *Handler) Stream(c *gin.Context) {
	room := middleware.CurrentIdentity(c).UserID

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		h.log.Error("streaming unsupported", zap.String("user_id", room))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeStreamUnsupported, Message: "streaming unsupported"})
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	limit := h.limit(c)
	history, err := h.feed.List(c.Request.Context(), room, limit)
	if err != nil {
		h.log.Error("list history failed", zap.String("user_id", room), zap.Int("limit", limit), zap.Error(err))
	} else {
		for i := len(history) - 1; i >= 0; i-- {
			if err := writeNotification(c.Writer, history[i]); err != nil {
				h.log.Error("write history notification failed", zap.String("user_id", room), zap.Error(err))
				return
			}
		}
	}
	flusher.Flush()

	client := &sse.Client{
		Room: room,
		Ch:   make(chan model.Notification, 16),
	}
	h.hub.Register(client)
	defer h.hub.Unregister(client)

	heartbeat := time.NewTicker(h.cfg.SSEHeartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-c.Request.Context().Done():
			return
		case <-heartbeat.C:
			if _, err := fmt.Fprint(c.Writer, ": ping\n\n"); err != nil {
				h.log.Error("heartbeat write failed", zap.String("user_id", room), zap.Error(err))
				return
			}
			flusher.Flush()
		case notification, ok := <-client.Ch:
			if !ok {
				return
			}
			if err := writeNotification(c.Writer, notification); err != nil {
				h.log.Error("write notification failed", zap.String("user_id", room), zap.Error(err))
				return
			}
			flusher.Flush()
		}
	}
}

func (h *Handler) limit(c *gin.Context) int {
	limit := h.cfg.HistoryLimit
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	return limit
}

// writeNotification frames one notification as an SSE "notification" event.
// Pushes that were never stored carry no id line.
func writeNotification(w http.ResponseWriter, notification model.Notification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return err
	}
	if notification.ID != "" {
		if _, err := fmt.Fprintf(w, "id: %s\n", notification.ID); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintf(w, "event: notification\ndata: %s\n\n", payload)
	return err
}
