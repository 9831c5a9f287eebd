package handlers

import (
	"errors"
	"net/http"

	"petfarm_webapp/internal/domain"
	"petfarm_webapp/internal/game"
	"petfarm_webapp/internal/repository"
	"petfarm_webapp/internal/service"

	"github.com/gin-gonic/gin"
)

// PetTypeView is a catalog entry with its pre-purchase preview figures.
type PetTypeView struct {
	domain.PetType
	MaxProfit domain.Money `json:"max_profit"`
	NetProfit domain.Money `json:"net_profit"`
}

// ListPetTypes returns the purchasable catalog.
func (h *Handler) ListPetTypes(c *gin.Context) {
	types, err := repository.NewPetTypeRepository(h.DB).ListActive(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load catalog"})
		return
	}

	views := make([]PetTypeView, 0, len(types))
	for _, pt := range types {
		views = append(views, PetTypeView{
			PetType:   *pt,
			MaxProfit: game.MaxProfit(pt),
			NetProfit: game.NetProfit(pt),
		})
	}
	c.JSON(http.StatusOK, gin.H{"pet_types": views})
}

// ListSlots returns the user's farm screen: every slot, occupied or not.
func (h *Handler) ListSlots(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	user, err := repository.NewUserRepository(h.DB).GetByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load user"})
		return
	}

	slots, err := h.Pets.ListSlots(c.Request.Context(), userID, user.MaxSlots)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load slots"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots, "max_slots": user.MaxSlots})
}

type BuyPetRequest struct {
	PetTypeID int64 `json:"pet_type_id"`
	SlotIndex int   `json:"slot_index"`
}

func (h *Handler) BuyPet(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req BuyPetRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	pet, newBalance, err := h.Pets.Buy(c.Request.Context(), userID, req.PetTypeID, req.SlotIndex)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInsufficientFunds):
			c.JSON(http.StatusPaymentRequired, gin.H{"error": "insufficient funds"})
		case errors.Is(err, service.ErrNoFreeSlots),
			errors.Is(err, service.ErrSlotOccupied),
			errors.Is(err, service.ErrInvalidSlot),
			errors.Is(err, service.ErrPetTypeInactive):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, repository.ErrPetTypeNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "pet type not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "purchase failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"pet": pet, "balance": newBalance})
}

func (h *Handler) StartTraining(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	petID := c.Param("pet_id")

	pet, err := h.Pets.StartTraining(c.Request.Context(), userID, petID)
	if err != nil {
		h.petError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pet": pet})
}

func (h *Handler) ClaimPet(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	petID := c.Param("pet_id")

	res, err := h.Pets.Claim(c.Request.Context(), userID, petID)
	if err != nil {
		h.petError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) UpgradePet(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	petID := c.Param("pet_id")

	pet, cost, err := h.Pets.Upgrade(c.Request.Context(), userID, petID)
	if err != nil {
		h.petError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pet": pet, "cost": cost})
}

func (h *Handler) SellPet(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	petID := c.Param("pet_id")

	refund, newBalance, err := h.Pets.Sell(c.Request.Context(), userID, petID)
	if err != nil {
		h.petError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"refund": refund, "balance": newBalance})
}

// petError maps lifecycle and funds errors onto HTTP statuses.
func (h *Handler) petError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrPetNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "pet not found"})
	case errors.Is(err, service.ErrInsufficientFunds):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "insufficient funds"})
	case errors.Is(err, game.ErrNotIdle),
		errors.Is(err, game.ErrNotReady),
		errors.Is(err, game.ErrPetTerminal),
		errors.Is(err, game.ErrMaxLevel),
		errors.Is(err, game.ErrSnackQueued),
		errors.Is(err, game.ErrBoostCapReached),
		errors.Is(err, game.ErrInvalidBoostStep):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "operation failed"})
	}
}
