package push

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"teamboard/internal/metrics"
	"teamboard/internal/model"
)

var (
	ErrAllStrategiesFailed = errors.New("all push strategies failed")
	ErrNoStrategies        = errors.New("no push strategies configured")
)

// Message is what every push strategy delivers.
type Message struct {
	Title string          `json:"title"`
	Body  string          `json:"body,omitempty"`
	URL   string          `json:"url,omitempty"`
	Icon  string          `json:"icon,omitempty"`
	Image string          `json:"image,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
}

func MessageFromTemplate(t model.Template) Message {
	return Message{
		Title: t.Title,
		Body:  t.Body,
		URL:   t.URL,
		Icon:  t.Icon,
		Image: t.Image,
		Data:  t.Payload,
	}
}

type Strategy interface {
	Name() string
	Send(ctx context.Context, msg Message) error
}

const (
	DefaultTimeout = 5 * time.Second
	DefaultRetries = 1
)

// Chain tries its strategies in order until one delivers.
type Chain struct {
	strategies []Strategy
	timeout    time.Duration
	retries    int
	retryDelay time.Duration
	log        *zap.Logger
}

func NewChain(timeout time.Duration, logger *zap.Logger, strategies ...Strategy) *Chain {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Chain{
		strategies: strategies,
		timeout:    timeout,
		retries:    DefaultRetries,
		retryDelay: 200 * time.Millisecond,
		log:        logger,
	}
}

// Strategies lists the strategy names in the order they are tried.
func (c *Chain) Strategies() []string {
	names := make([]string, 0, len(c.strategies))
	for _, s := range c.strategies {
		names = append(names, s.Name())
	}
	return names
}

// Send returns the name of the strategy that delivered msg.
func (c *Chain) Send(ctx context.Context, msg Message) (string, error) {
	if len(c.strategies) == 0 {
		return "", ErrNoStrategies
	}
	ctx, span := otel.Tracer("push").Start(ctx, "push.chain.send")
	defer span.End()

	var errs []error
	for _, s := range c.strategies {
		err := c.attempt(ctx, s, msg)
		metrics.ObservePush(s.Name(), err)
		if err == nil {
			span.SetAttributes(attribute.String("push.strategy", s.Name()))
			return s.Name(), nil
		}
		c.log.Warn("push strategy failed", zap.String("strategy", s.Name()), zap.Error(err))
		errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
		if ctx.Err() != nil {
			break
		}
	}
	err := fmt.Errorf("%w: %w", ErrAllStrategiesFailed, errors.Join(errs...))
	span.RecordError(err)
	span.SetStatus(codes.Error, "push failed")
	return "", err
}

func (c *Chain) attempt(ctx context.Context, s Strategy, msg Message) error {
	var err error
	for try := 0; try <= c.retries; try++ {
		if try > 0 {
			select {
			case <-ctx.Done():
				return errors.Join(err, ctx.Err())
			case <-time.After(c.retryDelay):
			}
		}
		attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
		err = s.Send(attemptCtx, msg)
		cancel()
		if err == nil {
			return nil
		}
	}
	return err
}
