package sos

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Alert is an emergency signal raised by any authenticated account
type Alert struct {
	ID        uuid.UUID `json:"id"`
	AccountID uuid.UUID `json:"account_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Repository defines the interface for alert data access
type Repository interface {
	Create(ctx context.Context, alert *Alert) error
}
