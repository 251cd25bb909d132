package rating

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
)

// Rating is a one-time review of a completed request. The requester and
// helper references are denormalized from the request for query efficiency.
type Rating struct {
	ID          uuid.UUID `json:"id"`
	RequestID   uuid.UUID `json:"request_id"`
	RequesterID uuid.UUID `json:"requester_id"`
	HelperID    uuid.UUID `json:"helper_id"`
	Score       int       `json:"rating"`
	Feedback    string    `json:"feedback,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Summary is the derived helper reputation
type Summary struct {
	AvgRating    *float64 `json:"avg_rating"`
	TotalReviews int      `json:"total_reviews"`
}

// Repository defines the interface for rating data access
type Repository interface {
	// Create inserts a rating. Returns ErrAlreadyRated when a rating for the
	// same request already exists (unique index on request_id).
	Create(ctx context.Context, r *Rating) error

	// ExistsForRequest reports whether the request has been rated
	ExistsForRequest(ctx context.Context, requestID uuid.UUID) (bool, error)

	// ListByHelper returns every rating referencing the helper
	ListByHelper(ctx context.Context, helperID uuid.UUID) ([]*Rating, error)
}

var ErrAlreadyRated = errors.New("request already rated")

// ValidScore reports whether the score is in the accepted range
func ValidScore(score int) bool {
	return score >= 1 && score <= 5
}

// Summarize reduces a helper's ratings to the derived reputation fields.
// The full scan keeps the aggregate correct even after a missed update.
func Summarize(ratings []*Rating) Summary {
	if len(ratings) == 0 {
		return Summary{}
	}
	total := 0
	for _, r := range ratings {
		total += r.Score
	}
	avg := math.Round(float64(total)/float64(len(ratings))*100) / 100
	return Summary{AvgRating: &avg, TotalReviews: len(ratings)}
}
