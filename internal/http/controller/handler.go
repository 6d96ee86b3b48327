package controller

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"teamboard/internal/config"
	"teamboard/internal/domain"
	"teamboard/internal/http/resp"
	"teamboard/internal/queue"
	"teamboard/internal/service/admin"
	"teamboard/internal/service/broadcast"
	"teamboard/internal/service/journal"
	"teamboard/internal/service/notify"
	"teamboard/internal/sse"
)

type Handler struct {
	cfg        *config.Config
	feed       *notify.Service
	broadcasts *broadcast.Service
	journal    *journal.Service
	dashboard  *admin.Dashboard
	hub        *sse.Hub
	pub        queue.Publisher
	validator  *validator.Validate
	log        *zap.Logger
}

func NewHandler(
	cfg *config.Config,
	feed *notify.Service,
	broadcasts *broadcast.Service,
	journalSvc *journal.Service,
	dashboard *admin.Dashboard,
	hub *sse.Hub,
	publisher queue.Publisher,
	v *validator.Validate,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		cfg:        cfg,
		feed:       feed,
		broadcasts: broadcasts,
		journal:    journalSvc,
		dashboard:  dashboard,
		hub:        hub,
		pub:        publisher,
		validator:  v,
		log:        logger,
	}
}

// NewValidator reports fields by their JSON names.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// bind decodes the JSON body into req and validates it. On failure the
// response has already been written.
func (h *Handler) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		resp.BadRequest(c, "invalid json")
		return false
	}
	if err := h.validator.Struct(req); err != nil {
		resp.Error(c, "invalid request", domain.Validationf("%s", describe(err)))
		return false
	}
	return true
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s must satisfy %s=%s", field, fe.Tag(), fe.Param()))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s must satisfy %s", field, fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
