package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"verdant_back_end/internal/store"
)

// CartHandler serves the session cart routes. The cart to operate on is
// selected by the session-id header; absent callers share the default cart.
type CartHandler struct {
	carts *store.CartStore
}

func NewCartHandler(carts *store.CartStore) *CartHandler {
	return &CartHandler{carts: carts}
}

func sessionKey(c *gin.Context) string {
	if key := c.GetHeader("session-id"); key != "" {
		return key
	}
	return store.DefaultSessionKey
}

// GetCart returns the current cart, empty if none exists.
func (h *CartHandler) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.carts.Get(sessionKey(c)))
}

// GetCartItem returns a single line item or 404.
func (h *CartHandler) GetCartItem(c *gin.Context) {
	item, err := h.carts.GetItem(sessionKey(c), c.Param("plantId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "item not found in cart", "status": http.StatusNotFound})
		return
	}
	c.JSON(http.StatusOK, item)
}

// AddToCart resolves the plant, checks stock and merges it into the cart.
func (h *CartHandler) AddToCart(c *gin.Context) {
	var input struct {
		PlantID  string `json:"plantId"`
		Quantity *int   `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body", "status": http.StatusBadRequest})
		return
	}

	quantity := 1
	if input.Quantity != nil {
		quantity = *input.Quantity
		if quantity < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "quantity must be at least 1", "status": http.StatusBadRequest})
			return
		}
	}

	cart, err := h.carts.Add(c.Request.Context(), sessionKey(c), input.PlantID, quantity)
	if err != nil {
		respondCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// UpdateCartItem overwrites a line item's quantity; zero removes it.
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	var input struct {
		PlantID  string `json:"plantId"`
		Quantity *int   `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Quantity == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "plantId and quantity are required", "status": http.StatusBadRequest})
		return
	}

	cart, err := h.carts.Update(sessionKey(c), input.PlantID, *input.Quantity)
	if err != nil {
		respondCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// RemoveFromCart filters the plant out; removing an absent plant is a no-op.
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.carts.Remove(sessionKey(c), c.Param("plantId")))
}

// ClearCart drops the whole session cart.
func (h *CartHandler) ClearCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.carts.Clear(sessionKey(c)))
}

func respondCartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrPlantIDRequired), errors.Is(err, store.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error(), "status": http.StatusBadRequest})
	case errors.Is(err, store.ErrInsufficientStock):
		c.JSON(http.StatusBadRequest, gin.H{"message": "insufficient stock", "status": http.StatusBadRequest})
	case errors.Is(err, store.ErrPlantNotFound), errors.Is(err, store.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error(), "status": http.StatusNotFound})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error", "status": http.StatusInternalServerError})
	}
}
