package handlers

import (
	"net/http"
	"strconv"

	"petfarm_webapp/internal/repository"

	"github.com/gin-gonic/gin"
)

// Me returns the authenticated user's profile.
func (h *Handler) Me(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	user, err := repository.NewUserRepository(h.DB).GetByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":            user.ID,
		"tg_id":         user.TgID,
		"username":      user.Username,
		"first_name":    user.FirstName,
		"balance":       user.Balance,
		"max_slots":     user.MaxSlots,
		"referral_code": user.ReferralCode,
	})
}

// GetBalance returns only the balance, for cheap polling.
func (h *Handler) GetBalance(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	balance, err := h.Balance.GetBalance(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load balance"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"balance": balance})
}

// Transactions returns the user's balance journal, newest first.
func (h *Handler) Transactions(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 && v <= 200 {
			limit = v
		}
	}

	txs, err := h.Balance.GetTransactionHistory(c.Request.Context(), userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": txs})
}
