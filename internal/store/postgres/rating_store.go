package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/sarukeshwar2016/Inclusicity/internal/domain/rating"
)

// RatingStore implements rating.Repository on PostgreSQL
type RatingStore struct {
	db *sql.DB
}

// NewRatingStore creates a new rating store
func NewRatingStore(db *sql.DB) *RatingStore {
	return &RatingStore{db: db}
}

func (s *RatingStore) Create(ctx context.Context, r *rating.Rating) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ratings (
			id, request_id, requester_id, helper_id, score, feedback, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, r.ID, r.RequestID, r.RequesterID, r.HelperID, r.Score,
		nullString(r.Feedback), r.CreatedAt)

	if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == uniqueViolation {
		return rating.ErrAlreadyRated
	}
	return err
}

func (s *RatingStore) ExistsForRequest(ctx context.Context, requestID uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM ratings WHERE request_id = $1)`,
		requestID).Scan(&exists)
	return exists, err
}

func (s *RatingStore) ListByHelper(ctx context.Context, helperID uuid.UUID) ([]*rating.Rating, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, request_id, requester_id, helper_id, score, feedback, created_at
		FROM ratings
		WHERE helper_id = $1
		ORDER BY created_at DESC
	`, helperID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ratings []*rating.Rating
	for rows.Next() {
		var r rating.Rating
		var feedback sql.NullString
		if err := rows.Scan(&r.ID, &r.RequestID, &r.RequesterID, &r.HelperID,
			&r.Score, &feedback, &r.CreatedAt); err != nil {
			return nil, err
		}
		r.Feedback = feedback.String
		ratings = append(ratings, &r)
	}
	return ratings, rows.Err()
}
