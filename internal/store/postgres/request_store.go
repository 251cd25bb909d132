package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/sarukeshwar2016/Inclusicity/internal/domain/request"
)

// RequestStore implements request.Repository on PostgreSQL
type RequestStore struct {
	db *sql.DB
}

// NewRequestStore creates a new request store
func NewRequestStore(db *sql.DB) *RequestStore {
	return &RequestStore{db: db}
}

const requestColumns = `
	id, requester_id, helper_id, city, need,
	pickup_address, destination_address, phone, needed_at,
	status, cancelled_by,
	created_at, accepted_at, completed_at, cancelled_at`

func (s *RequestStore) Create(ctx context.Context, req *request.Request) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO requests (
			id, requester_id, city, need,
			pickup_address, destination_address, phone, needed_at,
			status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, req.ID, req.RequesterID, req.City, req.Need,
		nullString(req.PickupAddress), nullString(req.DestinationAddress),
		nullString(req.Phone), req.NeededAt, req.Status, req.CreatedAt)
	return err
}

func (s *RequestStore) GetByID(ctx context.Context, id uuid.UUID) (*request.Request, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+requestColumns+` FROM requests WHERE id = $1`, id)

	req, err := scanRequest(row)
	if err == sql.ErrNoRows {
		return nil, request.ErrRequestNotFound
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (s *RequestStore) ListByRequester(ctx context.Context, requesterID uuid.UUID) ([]*request.Request, error) {
	return s.list(ctx,
		`SELECT `+requestColumns+` FROM requests WHERE requester_id = $1 ORDER BY created_at DESC`,
		requesterID)
}

func (s *RequestStore) ListByHelper(ctx context.Context, helperID uuid.UUID) ([]*request.Request, error) {
	return s.list(ctx,
		`SELECT `+requestColumns+` FROM requests WHERE helper_id = $1 ORDER BY created_at DESC`,
		helperID)
}

func (s *RequestStore) ListPendingByCity(ctx context.Context, city string) ([]*request.Request, error) {
	return s.list(ctx, `
		SELECT `+requestColumns+`
		FROM requests
		WHERE city = $1 AND status = 'pending'
		ORDER BY needed_at ASC NULLS LAST, created_at ASC
	`, city)
}

func (s *RequestStore) GetActiveByHelper(ctx context.Context, helperID uuid.UUID) (*request.Request, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+requestColumns+` FROM requests WHERE helper_id = $1 AND status = 'accepted'`,
		helperID)

	req, err := scanRequest(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

// UpdateStatus is the compare-and-set transition write. The WHERE clause on
// the current status makes the transition atomic: of N concurrent writers
// exactly one sees a row, the rest get ErrStatusConflict.
func (s *RequestStore) UpdateStatus(ctx context.Context, id uuid.UUID, expected, next request.Status, fields request.TransitionFields) error {
	var res sql.Result
	var err error

	switch next {
	case request.StatusAccepted:
		res, err = s.db.ExecContext(ctx, `
			UPDATE requests
			SET status = $1, helper_id = $2, accepted_at = $3
			WHERE id = $4 AND status = $5
		`, next, fields.HelperID, fields.At, id, expected)
	case request.StatusCompleted:
		res, err = s.db.ExecContext(ctx, `
			UPDATE requests
			SET status = $1, completed_at = $2
			WHERE id = $3 AND status = $4
		`, next, fields.At, id, expected)
	case request.StatusCancelled:
		res, err = s.db.ExecContext(ctx, `
			UPDATE requests
			SET status = $1, cancelled_by = $2, cancelled_at = $3
			WHERE id = $4 AND status = $5
		`, next, fields.CancelledBy, fields.At, id, expected)
	default:
		return fmt.Errorf("unsupported transition to %q", next)
	}

	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return request.ErrStatusConflict
	}
	return nil
}

func (s *RequestStore) list(ctx context.Context, query string, arg interface{}) ([]*request.Request, error) {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []*request.Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

func scanRequest(row rowScanner) (*request.Request, error) {
	var req request.Request
	var helperID uuid.NullUUID
	var pickup, destination, phone, cancelledBy sql.NullString
	var neededAt, acceptedAt, completedAt, cancelledAt sql.NullTime

	err := row.Scan(
		&req.ID, &req.RequesterID, &helperID, &req.City, &req.Need,
		&pickup, &destination, &phone, &neededAt,
		&req.Status, &cancelledBy,
		&req.CreatedAt, &acceptedAt, &completedAt, &cancelledAt,
	)
	if err != nil {
		return nil, err
	}

	if helperID.Valid {
		req.HelperID = &helperID.UUID
	}
	req.PickupAddress = pickup.String
	req.DestinationAddress = destination.String
	req.Phone = phone.String
	req.CancelledBy = request.CancelledBy(cancelledBy.String)
	if neededAt.Valid {
		req.NeededAt = &neededAt.Time
	}
	if acceptedAt.Valid {
		req.AcceptedAt = &acceptedAt.Time
	}
	if completedAt.Valid {
		req.CompletedAt = &completedAt.Time
	}
	if cancelledAt.Valid {
		req.CancelledAt = &cancelledAt.Time
	}
	return &req, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
