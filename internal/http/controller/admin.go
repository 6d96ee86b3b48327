package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"teamboard/internal/http/dto"
	"teamboard/internal/http/resp"
	"teamboard/internal/queue"
	"teamboard/internal/service/broadcast"
)

// CreateNotification sends one notification to a single user.
func (h *Handler) CreateNotification(c *gin.Context) {
	var req dto.CreateNotificationRequest
	if !h.bind(c, &req) {
		return
	}
	created, err := h.feed.Create(c.Request.Context(), req.UserID, req.Template())
	if err != nil {
		resp.Error(c, "failed to create notification", err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Broadcast stores one notification per known user and waits for the result.
func (h *Handler) Broadcast(c *gin.Context) {
	var req dto.BroadcastRequest
	if !h.bind(c, &req) {
		return
	}
	result, err := h.broadcasts.Broadcast(c.Request.Context(), req.Template(), broadcast.Options{SkipPush: req.SkipPush})
	if err != nil {
		resp.Error(c, "failed to broadcast notification", err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewBroadcastResponse(result, c.Query("records") == "true"))
}

// PublishBroadcast queues a broadcast for the background consumer.
func (h *Handler) PublishBroadcast(c *gin.Context) {
	var req dto.BroadcastRequest
	if !h.bind(c, &req) {
		return
	}

	msg := queue.NewBroadcastMessage(req.Template(), req.SkipPush)
	if err := queue.PublishBroadcast(c.Request.Context(), h.pub, h.cfg.RabbitPublishPrefix, msg); err != nil {
		h.log.Error("publish broadcast failed",
			zap.String("routing_key", queue.BroadcastRoutingKey(h.cfg.RabbitPublishPrefix)),
			zap.String("title", req.Title),
			zap.Error(err),
		)
		resp.Error(c, "failed to publish notification", err)
		return
	}

	c.JSON(http.StatusAccepted, dto.StatusResponse{Code: resp.CodeQueued, Message: "queued"})
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.dashboard.Users(c.Request.Context())
	if err != nil {
		resp.Error(c, "failed to load users", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (h *Handler) ListRecipients(c *gin.Context) {
	ids, err := h.broadcasts.ResolveRecipients(c.Request.Context())
	if err != nil {
		resp.Error(c, "failed to resolve recipients", err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	c.JSON(http.StatusOK, dto.RecipientsResponse{UserIDs: ids, Count: len(ids)})
}
