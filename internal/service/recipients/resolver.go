package recipients

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"teamboard/internal/config"
	"teamboard/internal/domain"
	"teamboard/internal/metrics"
	"teamboard/internal/repository"
)

const DefaultScanLimit = 1000

// Source yields user ids from one collection, at most limit rows.
type Source interface {
	Name() string
	UserIDs(ctx context.Context, limit int) ([]string, error)
}

type sourceFunc struct {
	name string
	fn   func(ctx context.Context, limit int) ([]string, error)
}

func (s sourceFunc) Name() string { return s.name }

func (s sourceFunc) UserIDs(ctx context.Context, limit int) ([]string, error) {
	return s.fn(ctx, limit)
}

// NewSource adapts a query function into a named Source.
func NewSource(name string, fn func(ctx context.Context, limit int) ([]string, error)) Source {
	return sourceFunc{name: name, fn: fn}
}

type Resolver struct {
	primary   Source
	secondary Source
	limit     int
	log       *zap.Logger
}

func NewResolver(primary, secondary Source, limit int, logger *zap.Logger) *Resolver {
	if limit <= 0 {
		limit = DefaultScanLimit
	}
	return &Resolver{primary: primary, secondary: secondary, limit: limit, log: logger}
}

// NewStoreResolver reads the daily report and todo user columns of repo.
func NewStoreResolver(cfg *config.Config, repo repository.RecipientRepository, logger *zap.Logger) *Resolver {
	return NewResolver(
		NewSource("daily_reports", repo.ReportUserIDs),
		NewSource("todos", repo.TodoUserIDs),
		cfg.RecipientScanLimit,
		logger,
	)
}

type sourceResult struct {
	ids []string
	err error
}

// Resolve returns the deduplicated union of both sources. A failing source only
// drops its own contribution; ErrResolutionFailed is returned when both fail.
// An empty result with a nil error means there is nobody to notify.
func (r *Resolver) Resolve(ctx context.Context) ([]string, error) {
	ctx, span := otel.Tracer("recipients").Start(ctx, "recipients.resolve")
	defer span.End()

	sources := []Source{r.primary, r.secondary}
	results := make([]sourceResult, len(sources))

	var g errgroup.Group
	for i, src := range sources {
		g.Go(func() error {
			ids, err := src.UserIDs(ctx, r.limit)
			results[i] = sourceResult{ids: ids, err: err}
			return nil
		})
	}
	_ = g.Wait()

	set := make(map[string]struct{})
	var errs []error
	for i, res := range results {
		name := sources[i].Name()
		if res.err != nil {
			metrics.SourceErrors.WithLabelValues(name).Inc()
			r.log.Warn("recipient source failed", zap.String("source", name), zap.Error(res.err))
			errs = append(errs, fmt.Errorf("%w: %s: %w", domain.ErrSource, name, res.err))
			continue
		}
		for _, id := range res.ids {
			if id = strings.TrimSpace(id); id != "" {
				set[id] = struct{}{}
			}
		}
	}

	if len(errs) == len(sources) {
		err := fmt.Errorf("%w: %w", domain.ErrResolutionFailed, errors.Join(errs...))
		span.RecordError(err)
		span.SetStatus(codes.Error, "all sources failed")
		return nil, err
	}

	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	span.SetAttributes(attribute.Int("recipients.count", len(ids)), attribute.Int("recipients.source_errors", len(errs)))
	return ids, nil
}
