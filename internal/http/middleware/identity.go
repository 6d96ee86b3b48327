package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"teamboard/internal/domain"
	"teamboard/internal/http/resp"
	"teamboard/internal/model"
)

const (
	HeaderUserID    = "X-User-ID"
	HeaderUserEmail = "X-User-Email"

	identityKey = "identity"
)

type Authorizer interface {
	Authorize(ctx context.Context, ident model.Identity) error
}

// Identity reads the caller asserted by the auth proxy. Requests without a
// user id are rejected.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := model.Identity{
			UserID: strings.TrimSpace(c.GetHeader(HeaderUserID)),
			Email:  strings.TrimSpace(c.GetHeader(HeaderUserEmail)),
		}
		if ident.Anonymous() {
			resp.Error(c, "authentication required", domain.ErrUnauthorized)
			return
		}
		c.Set(identityKey, ident)
		c.Next()
	}
}

// RequireAdmin must run after Identity.
func RequireAdmin(auth Authorizer, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := CurrentIdentity(c)
		if err := auth.Authorize(c.Request.Context(), ident); err != nil {
			logger.Warn("admin access denied", zap.String("user_id", ident.UserID), zap.Error(err))
			resp.Error(c, "admin access required", err)
			return
		}
		c.Next()
	}
}

func CurrentIdentity(c *gin.Context) model.Identity {
	if v, ok := c.Get(identityKey); ok {
		if ident, ok := v.(model.Identity); ok {
			return ident
		}
	}
	return model.Identity{}
}
