package request

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Status represents request lifecycle status
type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// CancelledBy records which party cancelled a request
type CancelledBy string

const (
	CancelledByRequester CancelledBy = "requester"
	CancelledByHelper    CancelledBy = "helper"
)

// Request represents an assistance request being matched to a helper
type Request struct {
	ID          uuid.UUID  `json:"id"`
	RequesterID uuid.UUID  `json:"requester_id"`
	HelperID    *uuid.UUID `json:"helper_id,omitempty"`
	City        string     `json:"city"`
	Need        string     `json:"need"`

	PickupAddress      string     `json:"pickup_address,omitempty"`
	DestinationAddress string     `json:"destination_address,omitempty"`
	Phone              string     `json:"phone,omitempty"`
	NeededAt           *time.Time `json:"needed_at,omitempty"`

	Status      Status      `json:"status"`
	CancelledBy CancelledBy `json:"cancelled_by,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	AcceptedAt  *time.Time `json:"accepted_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
}

// TransitionFields carries the columns written alongside a status change.
// Each field only applies to the transition that sets it.
type TransitionFields struct {
	HelperID    *uuid.UUID
	CancelledBy CancelledBy
	At          time.Time
}

// Repository defines the interface for request data access
type Repository interface {
	Create(ctx context.Context, req *Request) error
	GetByID(ctx context.Context, id uuid.UUID) (*Request, error)
	ListByRequester(ctx context.Context, requesterID uuid.UUID) ([]*Request, error)
	ListByHelper(ctx context.Context, helperID uuid.UUID) ([]*Request, error)

	// ListPendingByCity returns pending requests in a locality ordered by
	// needed-at ascending, requests without a schedule last in creation order.
	ListPendingByCity(ctx context.Context, city string) ([]*Request, error)

	// GetActiveByHelper returns the helper's accepted request, nil when none
	GetActiveByHelper(ctx context.Context, helperID uuid.UUID) (*Request, error)

	// UpdateStatus is a conditional write: the transition only applies while
	// the stored status still equals expected. Returns ErrStatusConflict when
	// another writer got there first.
	UpdateStatus(ctx context.Context, id uuid.UUID, expected, next Status, fields TransitionFields) error
}

var (
	ErrRequestNotFound = errors.New("request not found")
	ErrStatusConflict  = errors.New("request status changed concurrently")
)

// IsValid validates the status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are permitted
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanAccept checks if a helper can take this request
func (r *Request) CanAccept() bool {
	return r.Status == StatusPending
}

// CanComplete checks if the assigned helper can complete this request
func (r *Request) CanComplete() bool {
	return r.Status == StatusAccepted
}

// CanCancel checks if either party can still cancel
func (r *Request) CanCancel() bool {
	return r.Status == StatusPending || r.Status == StatusAccepted
}

// OwnedByHelper reports whether the request is assigned to the given helper
func (r *Request) OwnedByHelper(helperID uuid.UUID) bool {
	return r.HelperID != nil && *r.HelperID == helperID
}
