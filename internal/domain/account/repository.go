package account

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for account data access
type Repository interface {
	// Create creates a new account. Returns ErrEmailTaken when the email
	// is already registered (unique index on email, any role).
	Create(ctx context.Context, acc *Account) error

	// GetByID retrieves an account by ID
	GetByID(ctx context.Context, id uuid.UUID) (*Account, error)

	// GetByEmail retrieves an account by credential email
	GetByEmail(ctx context.Context, email string) (*Account, error)

	// SetAvailability flips the helper availability flag
	SetAvailability(ctx context.Context, id uuid.UUID, available bool) error

	// SetVerified marks a helper account as verified
	SetVerified(ctx context.Context, id uuid.UUID) error

	// UpdateReputation overwrites the derived rating aggregate
	UpdateReputation(ctx context.Context, helperID uuid.UUID, avg float64, total int) error

	// ListUnverifiedHelpers returns helper applications pending verification
	ListUnverifiedHelpers(ctx context.Context) ([]*Account, error)
}
