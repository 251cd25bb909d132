package postgres

import (
	"context"
	"database/sql"

	"github.com/sarukeshwar2016/Inclusicity/internal/domain/sos"
)

// SOSStore implements sos.Repository on PostgreSQL
type SOSStore struct {
	db *sql.DB
}

// NewSOSStore creates a new SOS alert store
func NewSOSStore(db *sql.DB) *SOSStore {
	return &SOSStore{db: db}
}

func (s *SOSStore) Create(ctx context.Context, alert *sos.Alert) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sos_alerts (id, account_id, email, role, message, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, alert.ID, alert.AccountID, alert.Email, alert.Role,
		alert.Message, alert.Status, alert.CreatedAt)
	return err
}
