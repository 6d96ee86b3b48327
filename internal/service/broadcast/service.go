package broadcast

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"teamboard/internal/config"
	"teamboard/internal/domain"
	"teamboard/internal/metrics"
	"teamboard/internal/model"
	"teamboard/internal/push"
	"teamboard/internal/sse"
)

// DeliveryTimeout bounds the live fan-out and vendor push that follow a stored broadcast.
const DeliveryTimeout = time.Minute

type Resolver interface {
	Resolve(ctx context.Context) ([]string, error)
}

type Pusher interface {
	Send(ctx context.Context, msg push.Message) (string, error)
}

// Publisher fans a stored notification out to live streams.
type Publisher interface {
	Publish(ctx context.Context, notification model.Notification) error
}

type Options struct {
	// SkipPush suppresses the push fan-out, e.g. for broadcasts that came from a push webhook.
	SkipPush bool
}

type Service struct {
	resolver Resolver
	writer   *Writer
	live     Publisher
	pusher   Pusher
	echoes   *push.Echoes
	timeout  time.Duration
	delivery time.Duration
	inflight sync.WaitGroup
	log      *zap.Logger
}

func NewService(resolver Resolver, writer *Writer, live Publisher, pusher Pusher, timeout time.Duration, logger *zap.Logger) *Service {
	return &Service{
		resolver: resolver,
		writer:   writer,
		live:     live,
		pusher:   pusher,
		echoes:   push.NewEchoes(push.DefaultEchoTTL),
		timeout:  timeout,
		delivery: DeliveryTimeout,
		log:      logger,
	}
}

func NewConfiguredService(cfg *config.Config, resolver Resolver, writer *Writer, hub *sse.Hub, pusher Pusher, logger *zap.Logger) *Service {
	return NewService(resolver, writer, hub, pusher, cfg.BroadcastTimeout, logger)
}

// Wait blocks until every delivery started by Broadcast has finished.
func (s *Service) Wait() {
	s.inflight.Wait()
}

// IsEcho reports whether tmpl matches a push this service sent recently, as
// vendors report our own pushes back through their webhooks.
func (s *Service) IsEcho(tmpl model.Template) bool {
	return s.echoes.Seen(push.MessageFromTemplate(tmpl))
}

func (s *Service) ResolveRecipients(ctx context.Context) ([]string, error) {
	return s.resolver.Resolve(ctx)
}

// Broadcast delivers tmpl to every known user. The result reports partial
// failure when only some batches were stored; an error is returned only when
// nothing was stored. Live fan-out of the stored records and the vendor push
// run in the background once Broadcast has returned.
func (s *Service) Broadcast(ctx context.Context, tmpl model.Template, opts Options) (model.BroadcastResult, error) {
	start := time.Now()
	ctx, span := otel.Tracer("broadcast").Start(ctx, "broadcast.run")
	defer span.End()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	result, outcome, err := s.run(ctx, tmpl)

	metrics.ObserveBroadcast(outcome.String(), start)
	span.SetAttributes(
		attribute.String("broadcast.outcome", outcome.String()),
		attribute.Int("broadcast.requested", result.RequestedCount),
		attribute.Int("broadcast.created", result.CreatedCount),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome.String())
		s.log.Warn("broadcast failed", zap.String("outcome", outcome.String()), zap.Error(err))
		return model.BroadcastResult{}, err
	}
	s.log.Info("broadcast stored",
		zap.String("outcome", outcome.String()),
		zap.Int("requested", result.RequestedCount),
		zap.Int("created", result.CreatedCount),
	)

	s.inflight.Add(1)
	go func(ctx context.Context) {
		defer s.inflight.Done()
		ctx, cancel := context.WithTimeout(ctx, s.delivery)
		defer cancel()
		s.publish(ctx, result.Records)
		if !opts.SkipPush && s.pusher != nil {
			s.push(ctx, tmpl)
		}
	}(context.WithoutCancel(ctx))
	return result, nil
}

func (s *Service) run(ctx context.Context, tmpl model.Template) (model.BroadcastResult, domain.Outcome, error) {
	if err := domain.ValidateTemplate(tmpl); err != nil {
		return model.BroadcastResult{}, domain.OutcomeRejected, err
	}

	userIDs, err := s.resolver.Resolve(ctx)
	if err != nil {
		return model.BroadcastResult{}, domain.OutcomeResolutionFailed, err
	}
	if len(userIDs) == 0 {
		return model.BroadcastResult{}, domain.OutcomeRejected, domain.ErrNoRecipients
	}

	result, err := s.writer.Write(ctx, tmpl, userIDs)
	switch {
	case errors.Is(err, domain.ErrWriteFailed):
		return model.BroadcastResult{}, domain.OutcomeAllFailed, err
	case err != nil:
		return model.BroadcastResult{}, domain.OutcomeRejected, err
	case result.PartialFailure:
		return result, domain.OutcomePartialSuccess, nil
	default:
		return result, domain.OutcomeFullSuccess, nil
	}
}

// publish hands each stored record to the stream of the user it belongs to.
func (s *Service) publish(ctx context.Context, records []model.Notification) {
	if s.live == nil {
		return
	}
	for i, n := range records {
		if err := s.live.Publish(ctx, n); err != nil {
			s.log.Warn("broadcast live fan-out stopped",
				zap.Int("published", i),
				zap.Int("records", len(records)),
				zap.Error(err),
			)
			return
		}
	}
}

func (s *Service) push(ctx context.Context, tmpl model.Template) {
	msg := push.MessageFromTemplate(tmpl)
	s.echoes.Remember(msg)
	used, err := s.pusher.Send(ctx, msg)
	if errors.Is(err, push.ErrNoStrategies) {
		return
	}
	if err != nil {
		s.log.Warn("broadcast push failed", zap.Error(err))
		return
	}
	s.log.Debug("broadcast pushed", zap.String("strategy", used))
}
