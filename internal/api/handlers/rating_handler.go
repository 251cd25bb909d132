package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sarukeshwar2016/Inclusicity/internal/api/dto"
	apperrors "github.com/sarukeshwar2016/Inclusicity/pkg/errors"
)

// CreateRating handles POST /v1/ratings
func (h *Handlers) CreateRating(c *gin.Context) {
	identity, ok := h.callerIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperrors.BadRequest("Invalid request payload", err))
		return
	}

	requestID, err := uuid.Parse(req.RequestID)
	if err != nil {
		h.respondError(c, apperrors.BadRequest("Invalid request id", err))
		return
	}

	avg, err := h.Ratings.Rate(c.Request.Context(), identity.AccountID, requestID, req.Rating, req.Feedback)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Rating submitted",
		"avg_rating": avg,
	})
}

// MyRatings handles GET /v1/ratings/my
func (h *Handlers) MyRatings(c *gin.Context) {
	identity, ok := h.callerIdentity(c)
	if !ok {
		return
	}

	ratings, err := h.Ratings.ViewOwn(c.Request.Context(), identity.AccountID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ratings)
}
