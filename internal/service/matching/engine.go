package matching

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/sarukeshwar2016/Inclusicity/internal/domain/account"
	"github.com/sarukeshwar2016/Inclusicity/internal/domain/rating"
	"github.com/sarukeshwar2016/Inclusicity/internal/domain/request"
	apperrors "github.com/sarukeshwar2016/Inclusicity/pkg/errors"
	"github.com/sarukeshwar2016/Inclusicity/pkg/logger"
)

// Engine governs the request lifecycle state machine and the availability
// gating that couples helper state to request state. Every transition is a
// conditional write on the stored status; the availability flip that follows
// is retried to convergence (idempotent overwrite, at-least-once).
type Engine struct {
	requests request.Repository
	accounts account.Repository
	ratings  rating.Repository
	redis    *redis.Client
	logger   *logger.Logger
}

// NewEngine creates a new matching engine. The redis client is optional; it
// only backs the observational active-assignment mirror keys.
func NewEngine(requests request.Repository, accounts account.Repository, ratings rating.Repository, rdb *redis.Client, log *logger.Logger) *Engine {
	return &Engine{
		requests: requests,
		accounts: accounts,
		ratings:  ratings,
		redis:    rdb,
		logger:   log,
	}
}

// CreateInput carries the fields of a new assistance request. The scheduling
// fields travel as strings from the client and are parsed together.
type CreateInput struct {
	City               string
	Need               string
	PickupAddress      string
	DestinationAddress string
	Phone              string
	NeededDate         string // 2006-01-02
	NeededTime         string // 15:04
}

// AvailableRequest is a pending request enriched with the requester name
type AvailableRequest struct {
	*request.Request
	RequesterName string `json:"user_name"`
}

// RequestView is a caller-owned request with derived dashboard fields
type RequestView struct {
	*request.Request
	IsRated         bool   `json:"is_rated"`
	CounterpartName string `json:"counterpart_name,omitempty"`
}

const availabilityRetries = 3

// Create produces a new pending request owned by the requester
func (e *Engine) Create(ctx context.Context, requesterID uuid.UUID, in CreateInput) (*request.Request, error) {
	city := strings.TrimSpace(in.City)
	need := strings.TrimSpace(in.Need)
	if city == "" || need == "" {
		return nil, apperrors.BadRequest("City and need required", nil)
	}

	neededAt, err := parseSchedule(in.NeededDate, in.NeededTime)
	if err != nil {
		return nil, err
	}

	req := &request.Request{
		ID:                 uuid.New(),
		RequesterID:        requesterID,
		City:               city,
		Need:               need,
		PickupAddress:      strings.TrimSpace(in.PickupAddress),
		DestinationAddress: strings.TrimSpace(in.DestinationAddress),
		Phone:              strings.TrimSpace(in.Phone),
		NeededAt:           neededAt,
		Status:             request.StatusPending,
		CreatedAt:          time.Now().UTC(),
	}

	if err := e.requests.Create(ctx, req); err != nil {
		return nil, apperrors.Internal("Failed to create request", err)
	}

	e.logger.Info("Request created",
		logger.String("request_id", req.ID.String()),
		logger.String("city", req.City),
	)
	return req, nil
}

// ListAvailable returns pending requests in the calling helper's locality,
// soonest-needed first. Unavailable helpers may not browse.
func (e *Engine) ListAvailable(ctx context.Context, helperID uuid.UUID) ([]*AvailableRequest, error) {
	helper, err := e.loadHelper(ctx, helperID)
	if err != nil {
		return nil, err
	}
	if !helper.Available {
		return nil, apperrors.ErrHelperNotAvailable
	}

	pending, err := e.requests.ListPendingByCity(ctx, helper.City)
	if err != nil {
		return nil, apperrors.Internal("Failed to list pending requests", err)
	}

	results := make([]*AvailableRequest, 0, len(pending))
	for _, req := range pending {
		results = append(results, &AvailableRequest{
			Request:       req,
			RequesterName: e.displayName(ctx, req.RequesterID),
		})
	}
	return results, nil
}

// Accept performs the conditional pending -> accepted transition, assigning
// the request to the caller and flipping their availability off. Of N
// concurrent accepts on one request exactly one succeeds; the rest lose the
// compare-and-set and get AlreadyTaken with their availability untouched.
func (e *Engine) Accept(ctx context.Context, helperID, requestID uuid.UUID) (*request.Request, error) {
	helper, err := e.loadHelper(ctx, helperID)
	if err != nil {
		return nil, err
	}
	if !helper.Available {
		return nil, apperrors.ErrHelperNotAvailable
	}

	req, err := e.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !req.CanAccept() {
		return nil, apperrors.ErrRequestNotFound
	}

	now := time.Now().UTC()
	err = e.requests.UpdateStatus(ctx, requestID, request.StatusPending, request.StatusAccepted,
		request.TransitionFields{HelperID: &helperID, At: now})
	if err != nil {
		if errors.Is(err, request.ErrStatusConflict) {
			e.logger.Info("Accept lost to another helper",
				logger.String("request_id", requestID.String()),
				logger.String("helper_id", helperID.String()),
			)
			return nil, apperrors.ErrRequestTaken
		}
		return nil, apperrors.Internal("Failed to accept request", err)
	}

	if err := e.setAvailability(ctx, helperID, false); err != nil {
		// The request is already accepted; the flag converges on the next
		// lifecycle transition, so log instead of failing the accept.
		e.logger.Error("Failed to flip helper availability after accept",
			logger.String("helper_id", helperID.String()),
			logger.Err(err),
		)
	}
	e.mirrorAssignment(ctx, helperID, requestID)

	req.Status = request.StatusAccepted
	req.HelperID = &helperID
	req.AcceptedAt = &now

	e.logger.Info("Request accepted",
		logger.String("request_id", requestID.String()),
		logger.String("helper_id", helperID.String()),
	)
	return req, nil
}

// Complete transitions an accepted request to completed and restores the
// helper's availability. Requests that do not exist, are not accepted, or
// belong to another helper are indistinguishable to the caller.
func (e *Engine) Complete(ctx context.Context, helperID, requestID uuid.UUID) (*request.Request, error) {
	req, err := e.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !req.CanComplete() || !req.OwnedByHelper(helperID) {
		return nil, apperrors.ErrRequestNotFound
	}

	now := time.Now().UTC()
	err = e.requests.UpdateStatus(ctx, requestID, request.StatusAccepted, request.StatusCompleted,
		request.TransitionFields{At: now})
	if err != nil {
		if errors.Is(err, request.ErrStatusConflict) {
			return nil, apperrors.ErrRequestNotFound
		}
		return nil, apperrors.Internal("Failed to complete request", err)
	}

	if err := e.setAvailability(ctx, helperID, true); err != nil {
		e.logger.Error("Failed to restore helper availability after complete",
			logger.String("helper_id", helperID.String()),
			logger.Err(err),
		)
	}
	e.clearAssignment(ctx, helperID)

	req.Status = request.StatusCompleted
	req.CompletedAt = &now

	e.logger.Info("Request completed",
		logger.String("request_id", requestID.String()),
		logger.String("helper_id", helperID.String()),
	)
	return req, nil
}

// CancelByRequester cancels the caller's own pending or accepted request.
// An assigned helper is released back to available.
func (e *Engine) CancelByRequester(ctx context.Context, requesterID, requestID uuid.UUID) (*request.Request, error) {
	req, err := e.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.RequesterID != requesterID || !req.CanCancel() {
		return nil, apperrors.ErrRequestNotFound
	}

	return e.cancel(ctx, req, request.CancelledByRequester)
}

// CancelByHelper cancels the caller's own accepted assignment and restores
// their availability. The request stays cancelled; it is never re-offered.
func (e *Engine) CancelByHelper(ctx context.Context, helperID, requestID uuid.UUID) (*request.Request, error) {
	req, err := e.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != request.StatusAccepted || !req.OwnedByHelper(helperID) {
		return nil, apperrors.ErrRequestNotFound
	}

	return e.cancel(ctx, req, request.CancelledByHelper)
}

func (e *Engine) cancel(ctx context.Context, req *request.Request, by request.CancelledBy) (*request.Request, error) {
	now := time.Now().UTC()
	err := e.requests.UpdateStatus(ctx, req.ID, req.Status, request.StatusCancelled,
		request.TransitionFields{CancelledBy: by, At: now})
	if err != nil {
		if errors.Is(err, request.ErrStatusConflict) {
			return nil, apperrors.ErrRequestStateChanged
		}
		return nil, apperrors.Internal("Failed to cancel request", err)
	}

	if req.HelperID != nil {
		if err := e.setAvailability(ctx, *req.HelperID, true); err != nil {
			e.logger.Error("Failed to release helper after cancel",
				logger.String("helper_id", req.HelperID.String()),
				logger.Err(err),
			)
		}
		e.clearAssignment(ctx, *req.HelperID)
	}

	req.Status = request.StatusCancelled
	req.CancelledBy = by
	req.CancelledAt = &now

	e.logger.Info("Request cancelled",
		logger.String("request_id", req.ID.String()),
		logger.String("cancelled_by", string(by)),
	)
	return req, nil
}

// SetAvailability is the helper's independent availability toggle. Turning
// available back on is refused while an accepted assignment exists.
func (e *Engine) SetAvailability(ctx context.Context, helperID uuid.UUID, available bool) error {
	if _, err := e.loadHelper(ctx, helperID); err != nil {
		return err
	}

	if available {
		active, err := e.requests.GetActiveByHelper(ctx, helperID)
		if err != nil {
			return apperrors.Internal("Failed to check active assignment", err)
		}
		if active != nil {
			return apperrors.ErrHelperBusy
		}
	}

	if err := e.setAvailability(ctx, helperID, available); err != nil {
		return apperrors.Internal("Failed to update availability", err)
	}

	e.logger.Info("Helper availability updated",
		logger.String("helper_id", helperID.String()),
		logger.Bool("available", available),
	)
	return nil
}

// MyRequests returns the caller's requests (owned as requester or assigned
// as helper) with the rated flag and counterpart display name.
func (e *Engine) MyRequests(ctx context.Context, callerID uuid.UUID, role account.Role) ([]*RequestView, error) {
	var owned []*request.Request
	var err error
	if role == account.RoleHelper {
		owned, err = e.requests.ListByHelper(ctx, callerID)
	} else {
		owned, err = e.requests.ListByRequester(ctx, callerID)
	}
	if err != nil {
		return nil, apperrors.Internal("Failed to list requests", err)
	}

	views := make([]*RequestView, 0, len(owned))
	for _, req := range owned {
		rated, err := e.ratings.ExistsForRequest(ctx, req.ID)
		if err != nil {
			return nil, apperrors.Internal("Failed to check rating", err)
		}

		var counterpart string
		if role == account.RoleHelper {
			counterpart = e.displayName(ctx, req.RequesterID)
		} else if req.HelperID != nil {
			counterpart = e.displayName(ctx, *req.HelperID)
		}

		views = append(views, &RequestView{
			Request:         req,
			IsRated:         rated,
			CounterpartName: counterpart,
		})
	}
	return views, nil
}

func (e *Engine) loadHelper(ctx context.Context, helperID uuid.UUID) (*account.Account, error) {
	acc, err := e.accounts.GetByID(ctx, helperID)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.Internal("Failed to load helper", err)
	}
	if acc.Role != account.RoleHelper {
		return nil, apperrors.Forbidden("Helper role required", nil)
	}
	return acc, nil
}

func (e *Engine) getRequest(ctx context.Context, id uuid.UUID) (*request.Request, error) {
	req, err := e.requests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, request.ErrRequestNotFound) {
			return nil, apperrors.ErrRequestNotFound
		}
		return nil, apperrors.Internal("Failed to load request", err)
	}
	return req, nil
}

// setAvailability writes the flag with bounded retries. The overwrite is
// idempotent, so at-least-once delivery converges.
func (e *Engine) setAvailability(ctx context.Context, helperID uuid.UUID, available bool) error {
	var err error
	for attempt := 1; attempt <= availabilityRetries; attempt++ {
		if err = e.accounts.SetAvailability(ctx, helperID, available); err == nil {
			return nil
		}
		time.Sleep(time.Duration(attempt) * 50 * time.Millisecond)
	}
	return err
}

func (e *Engine) displayName(ctx context.Context, id uuid.UUID) string {
	acc, err := e.accounts.GetByID(ctx, id)
	if err != nil {
		return "Unknown"
	}
	return acc.Name
}

// mirrorAssignment records the active assignment in redis for inspection,
// the same way a dispatcher would track a driver's current ride. Best effort.
func (e *Engine) mirrorAssignment(ctx context.Context, helperID, requestID uuid.UUID) {
	if e.redis == nil {
		return
	}
	key := fmt.Sprintf("helper:%s:active_request", helperID)
	if err := e.redis.Set(ctx, key, requestID.String(), 24*time.Hour).Err(); err != nil {
		e.logger.Warn("Failed to mirror assignment", logger.Err(err))
	}
}

func (e *Engine) clearAssignment(ctx context.Context, helperID uuid.UUID) {
	if e.redis == nil {
		return
	}
	key := fmt.Sprintf("helper:%s:active_request", helperID)
	if err := e.redis.Del(ctx, key).Err(); err != nil {
		e.logger.Warn("Failed to clear assignment mirror", logger.Err(err))
	}
}

// parseSchedule combines the optional needed date and time. Both fields must
// be supplied together; a lone or malformed value is an input error.
func parseSchedule(date, timeOfDay string) (*time.Time, error) {
	date = strings.TrimSpace(date)
	timeOfDay = strings.TrimSpace(timeOfDay)

	if date == "" && timeOfDay == "" {
		return nil, nil
	}
	if date == "" || timeOfDay == "" {
		return nil, apperrors.ErrInvalidSchedule
	}

	t, err := time.Parse("2006-01-02 15:04", date+" "+timeOfDay)
	if err != nil {
		return nil, apperrors.ErrInvalidSchedule
	}
	return &t, nil
}
