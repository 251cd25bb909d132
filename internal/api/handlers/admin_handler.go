package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminStats handles GET /v1/admin/stats
func (h *Handlers) AdminStats(c *gin.Context) {
	stats, err := h.Reports.Stats(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// PendingHelpers handles GET /v1/admin/helpers/pending
func (h *Handlers) PendingHelpers(c *gin.Context) {
	helpers, err := h.Auth.PendingHelpers(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"helpers": helpers})
}

// VerifyHelper handles PATCH /v1/admin/helpers/:id/verify
func (h *Handlers) VerifyHelper(c *gin.Context) {
	helperID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	acc, alreadyVerified, err := h.Auth.VerifyHelper(c.Request.Context(), helperID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if !alreadyVerified {
		h.Notifier.HelperVerified(acc.Name, acc.Email)
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Helper verified",
		"verified": true,
	})
}
