package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sarukeshwar2016/Inclusicity/internal/api/dto"
	"github.com/sarukeshwar2016/Inclusicity/internal/service/auth"
	apperrors "github.com/sarukeshwar2016/Inclusicity/pkg/errors"
)

// Signup handles POST /v1/auth/signup
func (h *Handlers) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperrors.BadRequest("Invalid request payload", err))
		return
	}

	acc, err := h.Auth.SignupRequester(c.Request.Context(), auth.SignupInput{
		Name:          req.Name,
		Email:         req.Email,
		Password:      req.Password,
		Age:           req.Age,
		City:          req.City,
		Phone:         req.Phone,
		MobilityNeeds: req.MobilityNeeds,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"id":      acc.ID,
	})
}

// SignupHelper handles POST /v1/auth/signup/helper
func (h *Handlers) SignupHelper(c *gin.Context) {
	var req dto.SignupHelperRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperrors.BadRequest("Invalid request payload", err))
		return
	}

	acc, err := h.Auth.SignupHelper(c.Request.Context(), auth.HelperSignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Age:      req.Age,
		City:     req.City,
		Phone:    req.Phone,
		NGOID:    req.NGOID,
		Skills:   req.Skills,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Helper application received. Pending verification.",
		"id":      acc.ID,
	})
}

// Login handles POST /v1/auth/login
func (h *Handlers) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperrors.BadRequest("Invalid request payload", err))
		return
	}

	token, acc, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"role":    acc.Role,
		"user_id": acc.ID,
		"name":    acc.Name,
		"email":   acc.Email,
	})
}

// Me handles GET /v1/auth/me
func (h *Handlers) Me(c *gin.Context) {
	identity, ok := h.callerIdentity(c)
	if !ok {
		return
	}

	acc, err := h.Auth.Profile(c.Request.Context(), identity.AccountID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, acc)
}

// ToggleAvailability handles PATCH /v1/auth/helper/availability
func (h *Handlers) ToggleAvailability(c *gin.Context) {
	identity, ok := h.callerIdentity(c)
	if !ok {
		return
	}

	var req dto.AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Available == nil {
		h.respondError(c, apperrors.BadRequest("Invalid request payload", err))
		return
	}

	if err := h.Engine.SetAvailability(c.Request.Context(), identity.AccountID, *req.Available); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Availability updated",
		"available": *req.Available,
	})
}
