package broadcast

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
	"teamboard/internal/config"
	"teamboard/internal/domain"
	"teamboard/internal/metrics"
	"teamboard/internal/model"
)

const (
	DefaultBatchSize   = 100
	DefaultConcurrency = 4
)

// Inserter persists one batch atomically.
type Inserter interface {
	InsertNotifications(ctx context.Context, notifications []model.Notification) ([]model.Notification, error)
}

type WriterOptions struct {
	BatchSize   int
	Concurrency int
	// RatePerSec bounds how many batches are dispatched per second; 0 disables the limit.
	RatePerSec int
}

type Writer struct {
	store       Inserter
	batchSize   int
	concurrency int
	limiter     *rate.Limiter
	log         *zap.Logger
	newID       func() string
	now         func() time.Time
}

func NewWriter(store Inserter, opts WriterOptions, logger *zap.Logger) *Writer {
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	w := &Writer{
		store:       store,
		batchSize:   opts.BatchSize,
		concurrency: opts.Concurrency,
		log:         logger,
		newID:       uuid.NewString,
		now:         func() time.Time { return time.Now().UTC() },
	}
	if opts.RatePerSec > 0 {
		w.limiter = rate.NewLimiter(rate.Limit(opts.RatePerSec), opts.RatePerSec)
	}
	return w
}

func NewConfiguredWriter(cfg *config.Config, store Inserter, logger *zap.Logger) *Writer {
	return NewWriter(store, WriterOptions{
		BatchSize:   cfg.BroadcastBatchSize,
		Concurrency: cfg.BroadcastConcurrency,
		RatePerSec:  cfg.BroadcastRatePerSec,
	}, logger)
}

type batchOutcome struct {
	created []model.Notification
	err     error
}

// Write expands tmpl into one record per unique user and persists the records in
// contiguous batches. Failed batches do not stop the others. When no batch
// succeeds the returned error is a *domain.WriteFailedError.
//
// A batch that has been handed to the store always runs to completion, even if
// ctx expires meanwhile; batches not yet dispatched at expiry count as failed.
func (w *Writer) Write(ctx context.Context, tmpl model.Template, userIDs []string) (model.BroadcastResult, error) {
	if err := domain.ValidateTemplate(tmpl); err != nil {
		return model.BroadcastResult{}, err
	}
	records := w.expand(tmpl, userIDs)
	if len(records) == 0 {
		return model.BroadcastResult{}, domain.ErrNoRecipients
	}

	batches := chunk(records, w.batchSize)
	outcomes := make([]batchOutcome, len(batches))

	var g errgroup.Group
	g.SetLimit(w.concurrency)
	for i, batch := range batches {
		if err := w.wait(ctx); err != nil {
			outcomes[i].err = err
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				outcomes[i].err = err
				return nil
			}
			created, err := w.store.InsertNotifications(context.WithoutCancel(ctx), batch)
			outcomes[i] = batchOutcome{created: created, err: err}
			return nil
		})
	}
	_ = g.Wait()

	return w.aggregate(len(records), batches, outcomes)
}

func (w *Writer) wait(ctx context.Context) error {
	if w.limiter == nil {
		return ctx.Err()
	}
	return w.limiter.Wait(ctx)
}

func (w *Writer) expand(tmpl model.Template, userIDs []string) []model.Notification {
	createdAt := w.now()
	seen := make(map[string]struct{}, len(userIDs))
	records := make([]model.Notification, 0, len(userIDs))
	for _, id := range userIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		records = append(records, model.NewNotification(w.newID(), id, tmpl, createdAt))
	}
	return records
}

func chunk(records []model.Notification, size int) [][]model.Notification {
	batches := make([][]model.Notification, 0, (len(records)+size-1)/size)
	for start := 0; start < len(records); start += size {
		end := min(start+size, len(records))
		batches = append(batches, records[start:end])
	}
	return batches
}

func (w *Writer) aggregate(requested int, batches [][]model.Notification, outcomes []batchOutcome) (model.BroadcastResult, error) {
	result := model.BroadcastResult{
		RequestedCount: requested,
		Batches:        make([]model.BatchReport, len(batches)),
	}
	var lastErr error
	for i, out := range outcomes {
		report := model.BatchReport{Index: i, Size: len(batches[i]), Created: len(out.created)}
		metrics.ObserveBatch(len(out.created), out.err)
		if out.err != nil {
			lastErr = fmt.Errorf("%w: batch %d: %w", domain.ErrInsert, i, out.err)
			report.Err = domain.Detail(out.err)
			w.log.Error("notification batch failed",
				zap.Int("batch", i),
				zap.Int("size", len(batches[i])),
				zap.Error(out.err),
			)
		} else {
			result.Records = append(result.Records, out.created...)
		}
		result.Batches[i] = report
	}
	result.CreatedCount = len(result.Records)

	if result.CreatedCount == 0 && lastErr != nil {
		return model.BroadcastResult{}, &domain.WriteFailedError{Attempted: len(batches), Last: lastErr}
	}
	result.PartialFailure = result.CreatedCount > 0 && result.CreatedCount < requested
	return result, nil
}
