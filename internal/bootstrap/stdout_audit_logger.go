package bootstrap

import (
	"context"
	"time"

	"github.com/Yadlapure/health-care/internal/shared/contextutil"

	"go.uber.org/zap"
)

// StdoutAuditLogger writes audit entries through zap; shipping is left to the log pipeline.
type StdoutAuditLogger struct {
	logger *zap.Logger
}

func NewStdoutAuditLogger(logger ...*zap.Logger) *StdoutAuditLogger {
	l := zap.L()
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &StdoutAuditLogger{logger: l.Named("audit")}
}

func (l *StdoutAuditLogger) Log(ctx context.Context, entry AuditLog) {
	contextutil.Logger(ctx, l.logger).Info("audit event",
		zap.String("action", entry.Action),
		zap.String("message", entry.Message),
		zap.Time("at", time.Now().UTC()),
		zap.Any("meta", entry.Meta),
	)
}
