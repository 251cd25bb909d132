package postgres

import (
	"context"
	"database/sql"

	"github.com/sarukeshwar2016/Inclusicity/internal/service/reporting"
)

// ReportingStore implements reporting.Store on PostgreSQL. All counts run in
// a single round trip each so the snapshot is cheap to take.
type ReportingStore struct {
	db *sql.DB
}

// NewReportingStore creates a new reporting store
func NewReportingStore(db *sql.DB) *ReportingStore {
	return &ReportingStore{db: db}
}

func (s *ReportingStore) Stats(ctx context.Context) (*reporting.Stats, error) {
	var stats reporting.Stats

	err := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(CASE WHEN role = 'requester' THEN 1 END),
			COUNT(CASE WHEN role = 'helper' THEN 1 END),
			COUNT(CASE WHEN role = 'helper' AND verified THEN 1 END),
			COUNT(CASE WHEN role = 'helper' AND NOT verified THEN 1 END)
		FROM accounts
	`).Scan(&stats.TotalRequesters, &stats.TotalHelpers,
		&stats.VerifiedHelpers, &stats.PendingHelpers)
	if err != nil {
		return nil, err
	}

	err = s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COUNT(CASE WHEN status = 'completed' THEN 1 END),
			COUNT(CASE WHEN status = 'accepted' THEN 1 END)
		FROM requests
	`).Scan(&stats.TotalRequests, &stats.CompletedRequests, &stats.ActiveRequests)
	if err != nil {
		return nil, err
	}

	return &stats, nil
}
