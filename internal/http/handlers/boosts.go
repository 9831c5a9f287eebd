package handlers

import (
	"errors"
	"net/http"

	"petfarm_webapp/internal/domain"
	"petfarm_webapp/internal/service"

	"github.com/gin-gonic/gin"
)

// SnackQuotes lists snack options for a pet with prices and net benefit.
func (h *Handler) SnackQuotes(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	petID := c.Param("pet_id")

	quotes, err := h.Boosts.SnackQuotes(c.Request.Context(), userID, petID)
	if err != nil {
		h.petError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"snacks": quotes})
}

type BuySnackRequest struct {
	Snack string `json:"snack_type"`
}

func (h *Handler) BuySnack(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	petID := c.Param("pet_id")

	var req BuySnackRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	newBalance, err := h.Boosts.BuySnack(c.Request.Context(), userID, petID, domain.SnackType(req.Snack))
	if err != nil {
		if errors.Is(err, service.ErrInvalidSnack) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown snack"})
			return
		}
		h.petError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"balance": newBalance})
}

// ROIBoostQuotes lists the remaining boost steps for a pet.
func (h *Handler) ROIBoostQuotes(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	petID := c.Param("pet_id")

	quotes, current, err := h.Boosts.ROIBoostQuotes(c.Request.Context(), userID, petID)
	if err != nil {
		h.petError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"boosts": quotes, "current_boost": current})
}

type BuyROIBoostRequest struct {
	Step float64 `json:"boost_percent"`
}

func (h *Handler) BuyROIBoost(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	petID := c.Param("pet_id")

	var req BuyROIBoostRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	newBalance, boost, err := h.Boosts.BuyROIBoost(c.Request.Context(), userID, petID, req.Step)
	if err != nil {
		if errors.Is(err, service.ErrBoostNotBuyable) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		h.petError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"balance": newBalance, "roi_boost": boost})
}

// AutoClaimStatus returns the current subscription and the plan price list.
func (h *Handler) AutoClaimStatus(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	status, err := h.Boosts.GetAutoClaimStatus(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load status"})
		return
	}
	c.JSON(http.StatusOK, status)
}

type BuyAutoClaimRequest struct {
	Months int `json:"months"`
}

func (h *Handler) BuyAutoClaim(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req BuyAutoClaimRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	sub, newBalance, err := h.Boosts.BuyAutoClaim(c.Request.Context(), userID, req.Months)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPlan):
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown plan"})
		case errors.Is(err, service.ErrSubscriptionActive):
			c.JSON(http.StatusConflict, gin.H{"error": "subscription already active"})
		case errors.Is(err, service.ErrInsufficientFunds):
			c.JSON(http.StatusPaymentRequired, gin.H{"error": "insufficient funds"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "purchase failed"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"subscription": sub, "balance": newBalance})
}
