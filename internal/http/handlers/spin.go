package handlers

import (
	"errors"
	"net/http"

	"petfarm_webapp/internal/service"

	"github.com/gin-gonic/gin"
)

// GetWheel returns the wheel layout and the free-spin cooldown state.
func (h *Handler) GetWheel(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	state, err := h.Spins.GetWheel(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load wheel"})
		return
	}
	c.JSON(http.StatusOK, state)
}

type SpinRequest struct {
	Free bool `json:"free"`
}

func (h *Handler) Spin(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req SpinRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	res, err := h.Spins.Spin(c.Request.Context(), userID, req.Free)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFreeSpinNotReady):
			c.JSON(http.StatusConflict, gin.H{"error": "free spin not available yet"})
		case errors.Is(err, service.ErrInsufficientFunds):
			c.JSON(http.StatusPaymentRequired, gin.H{"error": "insufficient funds"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "spin failed"})
		}
		return
	}
	c.JSON(http.StatusOK, res)
}
