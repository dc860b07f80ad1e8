package kafka

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

const (
	OutboxStatusPending = "pending"
	OutboxStatusSent    = "sent"
	OutboxStatusFailed  = "failed"

	// DefaultClaimLease hides a claimed row from other relays while it is published.
	DefaultClaimLease = 30 * time.Second

	maxErrorMessage = 500
)

var (
	ErrOutboxIncomplete = errors.New("outbox event is incomplete")
	ErrOutboxStatus     = errors.New("outbox event status is unknown")
)

// OutboxEvent is one lifecycle change waiting to be relayed. It is written in
// the same transaction as the aggregate it describes.
type OutboxEvent struct {
	ID            string
	RequestID     string
	AggregateType string
	AggregateID   string
	EventType     string
	Topic         string
	Payload       []byte
	Status        string
	RetryCount    int
	NextRetryAt   time.Time
}

// NewOutboxEvent marshals payload into a pending event for the given aggregate.
func NewOutboxEvent(requestID, aggregateType, aggregateID, eventType, topic string, payload any) (OutboxEvent, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return OutboxEvent{}, fmt.Errorf("marshal %s payload: %w", eventType, err)
	}
	ev := OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     requestID,
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		EventType:     eventType,
		Topic:         topic,
		Payload:       data,
		Status:        OutboxStatusPending,
	}
	return ev, ValidateOutboxEvent(ev)
}

func ValidateOutboxEvent(event OutboxEvent) error {
	var missing []string
	if event.ID == "" {
		missing = append(missing, "id")
	}
	if event.Topic == "" {
		missing = append(missing, "topic")
	}
	if event.AggregateID == "" {
		missing = append(missing, "aggregate_id")
	}
	if len(event.Payload) == 0 {
		missing = append(missing, "payload")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %v", ErrOutboxIncomplete, missing)
	}

	switch event.Status {
	case OutboxStatusPending, OutboxStatusSent, OutboxStatusFailed:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrOutboxStatus, event.Status)
}

//go:generate mockgen -source=outbox_repo.go -destination=mock/outbox_repo_mock.go -package=mock
type OutboxRepository interface {
	WithTx(tx *sql.Tx) OutboxRepository
	Create(ctx context.Context, event OutboxEvent) error
	// ClaimPending leases up to limit due events, oldest first. Rows locked by
	// another relay are skipped, and a claimed row stays hidden until lease expires.
	ClaimPending(ctx context.Context, limit int, lease time.Duration) ([]OutboxEvent, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, reason string) error
	PurgeSent(ctx context.Context, olderThan time.Duration) (int64, error)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type outboxRepository struct {
	db *sql.DB
	tx *sql.Tx
}

func NewOutboxRepository(db *sql.DB) OutboxRepository {
	return &outboxRepository{db: db}
}

func (r *outboxRepository) WithTx(tx *sql.Tx) OutboxRepository {
	return &outboxRepository{db: r.db, tx: tx}
}

func (r *outboxRepository) conn() execer {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const insertOutbox = `
INSERT INTO outbox_events (id, request_id, aggregate_type, aggregate_id, event_type, topic, payload, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

func (r *outboxRepository) Create(ctx context.Context, event OutboxEvent) error {
	if err := ValidateOutboxEvent(event); err != nil {
		return err
	}
	_, err := r.conn().ExecContext(ctx, insertOutbox,
		event.ID, event.RequestID, event.AggregateType, event.AggregateID,
		event.EventType, event.Topic, event.Payload, event.Status,
	)
	return err
}

const claimOutbox = `
WITH due AS (
	SELECT id FROM outbox_events
	WHERE status IN ($1, $2) AND (next_retry_at IS NULL OR next_retry_at <= NOW())
	ORDER BY created_at
	LIMIT $3
	FOR UPDATE SKIP LOCKED
)
UPDATE outbox_events o
SET next_retry_at = NOW() + ($4 * INTERVAL '1 millisecond'), updated_at = NOW()
FROM due
WHERE o.id = due.id
RETURNING o.id, COALESCE(o.request_id, ''), o.aggregate_type, o.aggregate_id,
	o.event_type, o.topic, o.payload, o.status, o.retry_count, o.next_retry_at, o.created_at`

func (r *outboxRepository) ClaimPending(ctx context.Context, limit int, lease time.Duration) ([]OutboxEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	if lease <= 0 {
		lease = DefaultClaimLease
	}

	rows, err := r.db.QueryContext(ctx, claimOutbox,
		OutboxStatusPending, OutboxStatusFailed, limit, lease.Milliseconds())
	if err != nil {
		return nil, fmt.Errorf("claim outbox events: %w", err)
	}
	defer rows.Close()

	type claimed struct {
		OutboxEvent
		createdAt time.Time
	}
	var batch []claimed
	for rows.Next() {
		var c claimed
		if err := rows.Scan(
			&c.ID, &c.RequestID, &c.AggregateType, &c.AggregateID,
			&c.EventType, &c.Topic, &c.Payload, &c.Status, &c.RetryCount, &c.NextRetryAt, &c.createdAt,
		); err != nil {
			return nil, err
		}
		batch = append(batch, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// RETURNING does not keep the CTE order; events of one visit must leave in order.
	events := make([]OutboxEvent, len(batch))
	sort.SliceStable(batch, func(i, j int) bool { return batch[i].createdAt.Before(batch[j].createdAt) })
	for i, c := range batch {
		events[i] = c.OutboxEvent
	}
	return events, nil
}

func (r *outboxRepository) MarkSent(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `
UPDATE outbox_events
SET status = $2, processed_at = NOW(), error_message = NULL, updated_at = NOW()
WHERE id = $1`, id, OutboxStatusSent)
	return err
}

// MarkFailed backs off linearly, capped at 150 seconds.
func (r *outboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	if len(reason) > maxErrorMessage {
		reason = reason[:maxErrorMessage]
	}
	_, err := r.db.ExecContext(ctx, `
UPDATE outbox_events
SET status = $2,
	retry_count = retry_count + 1,
	error_message = $3,
	next_retry_at = NOW() + (LEAST(retry_count + 1, 10) * INTERVAL '15 seconds'),
	updated_at = NOW()
WHERE id = $1`, id, OutboxStatusFailed, reason)
	return err
}

func (r *outboxRepository) PurgeSent(ctx context.Context, olderThan time.Duration) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
DELETE FROM outbox_events
WHERE status = $1 AND processed_at < NOW() - ($2 * INTERVAL '1 second')`,
		OutboxStatusSent, int64(olderThan.Seconds()))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
