package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/sarukeshwar2016/Inclusicity/internal/domain/account"
)

const uniqueViolation = "23505"

// AccountStore implements account.Repository on PostgreSQL
type AccountStore struct {
	db *sql.DB
}

// NewAccountStore creates a new account store
func NewAccountStore(db *sql.DB) *AccountStore {
	return &AccountStore{db: db}
}

func (s *AccountStore) Create(ctx context.Context, acc *account.Account) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO accounts (
			id, name, email, password_hash, role, age, city, phone,
			mobility_needs, skills, ngo_id, verified, available,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $14)
	`, acc.ID, acc.Name, acc.Email, acc.PasswordHash, acc.Role, acc.Age,
		acc.City, acc.Phone, acc.MobilityNeeds, pq.Array(acc.Skills),
		acc.NGOID, acc.Verified, acc.Available, acc.CreatedAt)

	if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == uniqueViolation {
		return account.ErrEmailTaken
	}
	return err
}

func (s *AccountStore) GetByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	return s.getOne(ctx, `WHERE id = $1`, id)
}

func (s *AccountStore) GetByEmail(ctx context.Context, email string) (*account.Account, error) {
	return s.getOne(ctx, `WHERE email = $1`, email)
}

func (s *AccountStore) getOne(ctx context.Context, where string, arg interface{}) (*account.Account, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, role, age, city, phone,
		       mobility_needs, skills, ngo_id, verified, available,
		       avg_rating, total_reviews, created_at, updated_at
		FROM accounts `+where, arg)

	acc, err := scanAccount(row)
	if err == sql.ErrNoRows {
		return nil, account.ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return acc, nil
}

func (s *AccountStore) SetAvailability(ctx context.Context, id uuid.UUID, available bool) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE accounts
		SET available = $1, updated_at = NOW()
		WHERE id = $2 AND role = 'helper'
	`, available, id)
	if err != nil {
		return err
	}
	return requireRow(res, account.ErrAccountNotFound)
}

func (s *AccountStore) SetVerified(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE accounts
		SET verified = TRUE, updated_at = NOW()
		WHERE id = $1 AND role = 'helper'
	`, id)
	if err != nil {
		return err
	}
	return requireRow(res, account.ErrAccountNotFound)
}

func (s *AccountStore) UpdateReputation(ctx context.Context, helperID uuid.UUID, avg float64, total int) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE accounts
		SET avg_rating = $1, total_reviews = $2, updated_at = NOW()
		WHERE id = $3 AND role = 'helper'
	`, avg, total, helperID)
	if err != nil {
		return err
	}
	return requireRow(res, account.ErrAccountNotFound)
}

func (s *AccountStore) ListUnverifiedHelpers(ctx context.Context) ([]*account.Account, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, password_hash, role, age, city, phone,
		       mobility_needs, skills, ngo_id, verified, available,
		       avg_rating, total_reviews, created_at, updated_at
		FROM accounts
		WHERE role = 'helper' AND verified = FALSE
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var helpers []*account.Account
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		helpers = append(helpers, acc)
	}
	return helpers, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAccount(row rowScanner) (*account.Account, error) {
	var acc account.Account
	var city, phone, mobilityNeeds, ngoID sql.NullString
	var avgRating sql.NullFloat64
	var skills pq.StringArray

	err := row.Scan(
		&acc.ID, &acc.Name, &acc.Email, &acc.PasswordHash, &acc.Role,
		&acc.Age, &city, &phone, &mobilityNeeds, &skills, &ngoID,
		&acc.Verified, &acc.Available, &avgRating, &acc.TotalReviews,
		&acc.CreatedAt, &acc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	acc.City = city.String
	acc.Phone = phone.String
	acc.MobilityNeeds = mobilityNeeds.String
	acc.NGOID = ngoID.String
	acc.Skills = skills
	if avgRating.Valid {
		acc.AvgRating = &avgRating.Float64
	}
	return &acc, nil
}

func requireRow(res sql.Result, missing error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return missing
	}
	return nil
}
