package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sarukeshwar2016/Inclusicity/internal/api/dto"
	"github.com/sarukeshwar2016/Inclusicity/internal/domain/sos"
	apperrors "github.com/sarukeshwar2016/Inclusicity/pkg/errors"
	"github.com/sarukeshwar2016/Inclusicity/pkg/logger"
)

// RaiseSOS handles POST /v1/sos
func (h *Handlers) RaiseSOS(c *gin.Context) {
	identity, ok := h.callerIdentity(c)
	if !ok {
		return
	}

	// Body is optional; an empty frame still raises an alert
	var req dto.SOSRequest
	_ = c.ShouldBindJSON(&req)
	if req.Message == "" {
		req.Message = "Emergency assistance needed"
	}

	acc, err := h.Auth.Profile(c.Request.Context(), identity.AccountID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	alert := &sos.Alert{
		ID:        uuid.New(),
		AccountID: acc.ID,
		Email:     acc.Email,
		Role:      string(acc.Role),
		Message:   req.Message,
		Status:    "open",
		CreatedAt: time.Now().UTC(),
	}
	if err := h.Alerts.Create(c.Request.Context(), alert); err != nil {
		h.respondError(c, apperrors.Internal("Failed to record alert", err))
		return
	}

	h.Logger.Warn("SOS alert raised",
		logger.String("alert_id", alert.ID.String()),
		logger.String("account_id", acc.ID.String()),
	)

	c.JSON(http.StatusCreated, gin.H{
		"message": "SOS alert recorded",
		"id":      alert.ID,
	})
}
