package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sarukeshwar2016/Inclusicity/internal/api/dto"
	"github.com/sarukeshwar2016/Inclusicity/internal/service/matching"
	apperrors "github.com/sarukeshwar2016/Inclusicity/pkg/errors"
)

// CreateRequest handles POST /v1/requests
func (h *Handlers) CreateRequest(c *gin.Context) {
	identity, ok := h.callerIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateAssistanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperrors.BadRequest("Invalid request payload", err))
		return
	}

	created, err := h.Engine.Create(c.Request.Context(), identity.AccountID, matching.CreateInput{
		City:               req.City,
		Need:               req.Need,
		PickupAddress:      req.PickupAddress,
		DestinationAddress: req.DestinationAddress,
		Phone:              req.Phone,
		NeededDate:         req.NeededDate,
		NeededTime:         req.NeededTime,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Request created",
		"request": created,
	})
}

// AvailableRequests handles GET /v1/requests/available
func (h *Handlers) AvailableRequests(c *gin.Context) {
	identity, ok := h.callerIdentity(c)
	if !ok {
		return
	}

	requests, err := h.Engine.ListAvailable(c.Request.Context(), identity.AccountID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

// MyRequests handles GET /v1/requests/my
func (h *Handlers) MyRequests(c *gin.Context) {
	identity, ok := h.callerIdentity(c)
	if !ok {
		return
	}

	requests, err := h.Engine.MyRequests(c.Request.Context(), identity.AccountID, identity.Role)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

// AcceptRequest handles PATCH /v1/requests/:id/accept
func (h *Handlers) AcceptRequest(c *gin.Context) {
	identity, ok := h.callerIdentity(c)
	if !ok {
		return
	}
	requestID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	accepted, err := h.Engine.Accept(c.Request.Context(), identity.AccountID, requestID)
	if err != nil {
		if errors.Is(err, apperrors.ErrRequestTaken) {
			h.Monitor.RecordAcceptConflict()
		}
		h.respondError(c, err)
		return
	}
	h.Monitor.RecordRequestAccepted(accepted.City)

	c.JSON(http.StatusOK, gin.H{
		"message": "Request accepted",
		"request": accepted,
	})
}

// CompleteRequest handles PATCH /v1/requests/:id/complete
func (h *Handlers) CompleteRequest(c *gin.Context) {
	identity, ok := h.callerIdentity(c)
	if !ok {
		return
	}
	requestID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	completed, err := h.Engine.Complete(c.Request.Context(), identity.AccountID, requestID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.Monitor.RecordRequestCompleted(completed.ID.String())

	c.JSON(http.StatusOK, gin.H{
		"message": "Request completed",
		"request": completed,
	})
}

// CancelRequest handles PATCH /v1/requests/:id/cancel
func (h *Handlers) CancelRequest(c *gin.Context) {
	identity, ok := h.callerIdentity(c)
	if !ok {
		return
	}
	requestID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	cancelled, err := h.Engine.CancelByRequester(c.Request.Context(), identity.AccountID, requestID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Request cancelled",
		"request": cancelled,
	})
}

// CancelAssignment handles PATCH /v1/requests/:id/cancel/helper
func (h *Handlers) CancelAssignment(c *gin.Context) {
	identity, ok := h.callerIdentity(c)
	if !ok {
		return
	}
	requestID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	cancelled, err := h.Engine.CancelByHelper(c.Request.Context(), identity.AccountID, requestID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Assignment cancelled",
		"request": cancelled,
	})
}
