package ratings

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/sarukeshwar2016/Inclusicity/internal/domain/account"
	"github.com/sarukeshwar2016/Inclusicity/internal/domain/rating"
	"github.com/sarukeshwar2016/Inclusicity/internal/domain/request"
	apperrors "github.com/sarukeshwar2016/Inclusicity/pkg/errors"
	"github.com/sarukeshwar2016/Inclusicity/pkg/logger"
)

// Aggregator records one-time ratings and recomputes the target helper's
// reputation from scratch on every insert. The full scan is O(n) per rating
// event but self-heals any previously missed update.
type Aggregator struct {
	requests request.Repository
	accounts account.Repository
	ratings  rating.Repository
	logger   *logger.Logger
}

// NewAggregator creates a new rating aggregator
func NewAggregator(requests request.Repository, accounts account.Repository, ratings rating.Repository, log *logger.Logger) *Aggregator {
	return &Aggregator{
		requests: requests,
		accounts: accounts,
		ratings:  ratings,
		logger:   log,
	}
}

// MyRatings is a helper's own review history plus the derived average
type MyRatings struct {
	rating.Summary
	Ratings []*rating.Rating `json:"ratings"`
}

// Rate records a rating for the caller's completed request and returns the
// helper's recomputed average.
func (a *Aggregator) Rate(ctx context.Context, requesterID, requestID uuid.UUID, score int, feedback string) (float64, error) {
	if !rating.ValidScore(score) {
		return 0, apperrors.ErrInvalidScore
	}

	req, err := a.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, request.ErrRequestNotFound) {
			return 0, apperrors.ErrRequestNotFound
		}
		return 0, apperrors.Internal("Failed to load request", err)
	}
	if req.RequesterID != requesterID || req.Status != request.StatusCompleted {
		return 0, apperrors.ErrRequestNotFound
	}
	if req.HelperID == nil {
		return 0, apperrors.Internal("Completed request has no helper", nil)
	}

	exists, err := a.ratings.ExistsForRequest(ctx, requestID)
	if err != nil {
		return 0, apperrors.Internal("Failed to check existing rating", err)
	}
	if exists {
		return 0, apperrors.ErrAlreadyRated
	}

	r := &rating.Rating{
		ID:          uuid.New(),
		RequestID:   requestID,
		RequesterID: req.RequesterID,
		HelperID:    *req.HelperID,
		Score:       score,
		Feedback:    feedback,
		CreatedAt:   time.Now().UTC(),
	}
	if err := a.ratings.Create(ctx, r); err != nil {
		// Two raters can pass the existence check together; the unique
		// index breaks the tie.
		if errors.Is(err, rating.ErrAlreadyRated) {
			return 0, apperrors.ErrAlreadyRated
		}
		return 0, apperrors.Internal("Failed to save rating", err)
	}

	summary, err := a.recompute(ctx, *req.HelperID)
	if err != nil {
		return 0, err
	}

	avg := 0.0
	if summary.AvgRating != nil {
		avg = *summary.AvgRating
	}

	a.logger.Info("Rating recorded",
		logger.String("request_id", requestID.String()),
		logger.String("helper_id", req.HelperID.String()),
		logger.Int("score", score),
		logger.Float64("avg_rating", avg),
	)
	return avg, nil
}

// ViewOwn returns every rating referencing the calling helper and the same
// derived average the requesters see.
func (a *Aggregator) ViewOwn(ctx context.Context, helperID uuid.UUID) (*MyRatings, error) {
	all, err := a.ratings.ListByHelper(ctx, helperID)
	if err != nil {
		return nil, apperrors.Internal("Failed to list ratings", err)
	}
	return &MyRatings{
		Summary: rating.Summarize(all),
		Ratings: all,
	}, nil
}

func (a *Aggregator) recompute(ctx context.Context, helperID uuid.UUID) (rating.Summary, error) {
	all, err := a.ratings.ListByHelper(ctx, helperID)
	if err != nil {
		return rating.Summary{}, apperrors.Internal("Failed to reload ratings", err)
	}

	summary := rating.Summarize(all)
	if summary.AvgRating == nil {
		return summary, nil
	}

	if err := a.accounts.UpdateReputation(ctx, helperID, *summary.AvgRating, summary.TotalReviews); err != nil {
		return rating.Summary{}, apperrors.Internal("Failed to update helper reputation", err)
	}
	return summary, nil
}
