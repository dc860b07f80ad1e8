package producer

import (
	"context"
	"time"

	"github.com/Yadlapure/health-care/internal/messaging/kafka"

	"go.uber.org/zap"
)

const defaultBatchSize = 50

// Relay moves pending outbox rows to Kafka.
type Relay struct {
	repo      kafka.OutboxRepository
	writer    MessageWriter
	batchSize int
	logger    *zap.Logger
}

func NewRelay(repo kafka.OutboxRepository, writer MessageWriter, logger *zap.Logger) *Relay {
	if logger == nil {
		logger = zap.L()
	}
	return &Relay{
		repo:      repo,
		writer:    writer,
		batchSize: defaultBatchSize,
		logger:    logger.Named("kafka.producer.relay"),
	}
}

// Run polls until ctx is cancelled.
func (r *Relay) Run(ctx context.Context, pollInterval time.Duration) {
	if pollInterval <= 0 {
		pollInterval = 3 * time.Second
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	r.logger.Info("outbox relay started", zap.Duration("poll_interval", pollInterval))

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("outbox relay stopped")
			return
		case <-ticker.C:
			if _, err := r.Flush(ctx); err != nil {
				r.logger.Error("process outbox events failed", zap.Error(err))
			}
		}
	}
}

// Flush publishes one claimed batch and returns how many events were marked sent.
// A failed publish marks that event for retry and holds back the rest of its
// visit's events in the batch, so a consumer never sees them out of order.
func (r *Relay) Flush(ctx context.Context) (int, error) {
	pending, err := r.repo.ClaimPending(ctx, r.batchSize, kafka.DefaultClaimLease)
	if err != nil {
		return 0, err
	}
	if len(pending) == 0 {
		return 0, nil
	}

	r.logger.Debug("processing pending outbox events", zap.Int("count", len(pending)))

	sent := 0
	blocked := make(map[string]bool)
	for _, event := range pending {
		if blocked[event.AggregateID] {
			continue
		}
		if err := r.writer.WriteMessages(ctx, toMessage(event)); err != nil {
			blocked[event.AggregateID] = true
			r.logger.Error("publish outbox event failed",
				zap.String("outbox_id", event.ID),
				zap.String("event_type", event.EventType),
				zap.String("topic", event.Topic),
				zap.Int("retry_count", event.RetryCount),
				zap.Error(err),
			)
			if markErr := r.repo.MarkFailed(ctx, event.ID, err.Error()); markErr != nil {
				r.logger.Error("mark outbox failed failed", zap.String("outbox_id", event.ID), zap.Error(markErr))
			}
			continue
		}

		if err := r.repo.MarkSent(ctx, event.ID); err != nil {
			r.logger.Error("mark outbox sent failed",
				zap.String("outbox_id", event.ID),
				zap.Error(err),
			)
			continue
		}
		sent++

		r.logger.Info("outbox event sent",
			zap.String("outbox_id", event.ID),
			zap.String("request_id", event.RequestID),
			zap.String("event_type", event.EventType),
			zap.String("aggregate_id", event.AggregateID),
		)
	}

	return sent, nil
}
