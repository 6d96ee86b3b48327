package controller

import (
	"crypto/subtle"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"teamboard/internal/domain"
	"teamboard/internal/http/dto"
	"teamboard/internal/http/resp"
	"teamboard/internal/push/pushalert"
	"teamboard/internal/service/broadcast"
)

const maxWebhookBody = 1 << 20

// PushAlertWebhook turns a PushAlert delivery into a stored broadcast. The
// push already went out, so it is not pushed again.
func (h *Handler) PushAlertWebhook(c *gin.Context) {
	if !h.webhookAuthorized(c) {
		resp.Error(c, "invalid webhook secret", domain.ErrUnauthorized)
		return
	}
	if c.Request.Method == http.MethodGet {
		c.JSON(http.StatusOK, dto.StatusResponse{Code: resp.CodeOK, Message: "pushalert webhook ready"})
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		resp.BadRequest(c, "unreadable body")
		return
	}
	tmpl, err := pushalert.ParseWebhook(body)
	if errors.Is(err, pushalert.ErrUnrecognizedPayload) {
		h.log.Warn("pushalert webhook ignored", zap.Error(err))
		c.JSON(http.StatusOK, dto.StatusResponse{Code: resp.CodeWebhookUnsupported, Message: "ignored"})
		return
	}
	if err != nil {
		resp.Error(c, "failed to parse webhook", err)
		return
	}

	if h.broadcasts.IsEcho(tmpl) {
		h.log.Debug("pushalert webhook echoes our own push", zap.String("title", tmpl.Title))
		c.JSON(http.StatusOK, dto.StatusResponse{Code: resp.CodeAlreadySynced, Message: "already delivered"})
		return
	}

	result, err := h.broadcasts.Broadcast(c.Request.Context(), tmpl, broadcast.Options{SkipPush: true})
	if err != nil {
		resp.Error(c, "failed to store webhook notification", err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewBroadcastResponse(result, false))
}

func (h *Handler) webhookAuthorized(c *gin.Context) bool {
	secret := h.cfg.PushAlertWebhookSecret
	if secret == "" {
		return true
	}
	got := c.GetHeader("X-Webhook-Secret")
	if got == "" {
		got = c.Query("secret")
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(secret)) == 1
}
