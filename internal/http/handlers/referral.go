package handlers

import (
	"errors"
	"net/http"

	"petfarm_webapp/internal/service"

	"github.com/gin-gonic/gin"
)

// ReferralOverview returns the five-level ladder with unlock state and
// per-level earnings, plus the user's invite link.
func (h *Handler) ReferralOverview(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	overview, err := h.Referrals.GetOverview(c.Request.Context(), userID, h.Cfg.BotUsername)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load referrals"})
		return
	}
	c.JSON(http.StatusOK, overview)
}

type ApplyReferralRequest struct {
	Code string `json:"code"`
}

func (h *Handler) ApplyReferralCode(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req ApplyReferralRequest
	if err := c.BindJSON(&req); err != nil || req.Code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	if err := h.Referrals.ApplyCode(c.Request.Context(), userID, req.Code); err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyReferred):
			c.JSON(http.StatusConflict, gin.H{"error": "referrer already set"})
		case errors.Is(err, service.ErrSelfReferral):
			c.JSON(http.StatusBadRequest, gin.H{"error": "cannot use your own code"})
		case errors.Is(err, service.ErrInvalidCode):
			c.JSON(http.StatusNotFound, gin.H{"error": "invalid code"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to apply code"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
