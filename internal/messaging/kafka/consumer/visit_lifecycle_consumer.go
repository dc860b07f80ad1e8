package consumer

import (
	"context"
	"encoding/json"

	"github.com/Yadlapure/health-care/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is satisfied by *kafkago.Reader.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// ReportInvalidator drops cached attendance reports of one employee.
type ReportInvalidator interface {
	Invalidate(ctx context.Context, employeeID string) error
}

// ConsumeVisitLifecycle evicts cached attendance reports whenever a visit of
// the employee changes. A message is committed only after eviction succeeded,
// so a redis outage replays it.
func ConsumeVisitLifecycle(
	ctx context.Context,
	reader MessageReader,
	reports ReportInvalidator,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.visit_lifecycle")
	log.Info("visit lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("visit lifecycle consumer stopped")
				return
			}
			log.Error("fetch visit lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.VisitLifecycleEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil || event.EmployeeID == "" {
			log.Error("decode visit lifecycle event failed", zap.ByteString("key", msg.Key), zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := reports.Invalidate(ctx, event.EmployeeID); err != nil {
			log.Error("invalidate attendance reports failed",
				zap.String("visit_id", event.VisitID),
				zap.String("employee_id", event.EmployeeID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit visit lifecycle message failed", zap.Error(err))
			continue
		}

		log.Debug("attendance reports invalidated",
			zap.String("event_type", event.EventType),
			zap.String("visit_id", event.VisitID),
			zap.String("employee_id", event.EmployeeID),
			zap.String("request_id", event.RequestID),
		)
	}
}
