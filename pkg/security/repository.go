package security

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SecurityEventRepository stores audit events in Postgres next to the zap stream.
type SecurityEventRepository struct {
	db *pgxpool.Pool
}

func NewSecurityEventRepository(db *pgxpool.Pool) *SecurityEventRepository {
	return &SecurityEventRepository{db: db}
}

// PersistEvent inserts one event. The user id is stored hashed, as in the log.
func (r *SecurityEventRepository) PersistEvent(ctx context.Context, event SecurityEvent) error {
	query := `
		INSERT INTO security_events (
			event_type, severity, user_hash, role, ip_address, user_agent,
			request_id, path, details, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	details := []byte("null")
	if len(event.Details) > 0 {
		if b, err := json.Marshal(event.Details); err == nil {
			details = b
		}
	}

	var userHash, ipAddr interface{}
	if event.UserID != "" {
		userHash = HashValue(event.UserID)
	}
	if event.IP != "" {
		ipAddr = event.IP
	}

	_, err := r.db.Exec(ctx, query,
		string(event.Event),
		string(SeverityOf(event.Event)),
		userHash,
		event.Role,
		ipAddr,
		event.UserAgent,
		event.RequestID,
		event.Path,
		string(details),
		event.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to persist security event: %w", err)
	}
	return nil
}
