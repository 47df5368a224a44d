package handlers

import (
	"net/http"
	"strconv"

	"github.com/01moynul/suburbia-storefront/internal/cart"
	"github.com/01moynul/suburbia-storefront/internal/middleware"
	"github.com/01moynul/suburbia-storefront/internal/models"
	"github.com/gin-gonic/gin"
)

//
// --- Cart Handlers (login required) ---
//

// CartResponse is the cart as the storefront renders it; totals are
// computed from the items on every response.
type CartResponse struct {
	Items      []models.CartItem `json:"items"`
	TotalItems int               `json:"totalItems"`
	TotalPrice float64           `json:"totalPrice"`
}

type UpdateQuantityInput struct {
	Quantity *int `json:"quantity" binding:"required"`
}

func newCartResponse(c cart.Cart) CartResponse {
	items := c.Items
	if items == nil {
		items = []models.CartItem{}
	}
	return CartResponse{
		Items:      items,
		TotalItems: c.TotalItems(),
		TotalPrice: c.TotalPrice(),
	}
}

func cartOwner(c *gin.Context) (string, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return strconv.FormatInt(userID, 10), true
}

// GetCart is the handler for GET /api/cart
func (h *Handlers) GetCart(c *gin.Context) {
	owner, ok := cartOwner(c)
	if !ok {
		return
	}

	current, err := h.Carts.Get(c.Request.Context(), owner)
	if err != nil {
		h.logError(c, "load cart failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart"})
		return
	}
	c.JSON(http.StatusOK, newCartResponse(current))
}

// AddToCart is the handler for POST /api/cart/items
func (h *Handlers) AddToCart(c *gin.Context) {
	owner, ok := cartOwner(c)
	if !ok {
		return
	}

	var sel models.Selection
	if err := c.ShouldBindJSON(&sel); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	next, err := h.Carts.Update(c.Request.Context(), owner, func(cur cart.Cart) cart.Cart {
		return cur.Add(sel)
	})
	if err != nil {
		h.logError(c, "add to cart failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
		return
	}
	c.JSON(http.StatusCreated, newCartResponse(next))
}

// UpdateCartItem is the handler for PATCH /api/cart/items/:id
// A quantity of zero or less removes the line.
func (h *Handlers) UpdateCartItem(c *gin.Context) {
	owner, ok := cartOwner(c)
	if !ok {
		return
	}

	var input UpdateQuantityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: quantity is required"})
		return
	}

	id := c.Param("id")
	next, err := h.Carts.Update(c.Request.Context(), owner, func(cur cart.Cart) cart.Cart {
		return cur.UpdateQuantity(id, *input.Quantity)
	})
	if err != nil {
		h.logError(c, "update cart item failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
		return
	}
	c.JSON(http.StatusOK, newCartResponse(next))
}

// DeleteCartItem is the handler for DELETE /api/cart/items/:id
func (h *Handlers) DeleteCartItem(c *gin.Context) {
	owner, ok := cartOwner(c)
	if !ok {
		return
	}

	id := c.Param("id")
	next, err := h.Carts.Update(c.Request.Context(), owner, func(cur cart.Cart) cart.Cart {
		return cur.Remove(id)
	})
	if err != nil {
		h.logError(c, "remove cart item failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
		return
	}
	c.JSON(http.StatusOK, newCartResponse(next))
}

// ClearCart is the handler for DELETE /api/cart
func (h *Handlers) ClearCart(c *gin.Context) {
	owner, ok := cartOwner(c)
	if !ok {
		return
	}

	if err := h.Carts.Delete(c.Request.Context(), owner); err != nil {
		h.logError(c, "clear cart failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
		return
	}
	c.JSON(http.StatusOK, newCartResponse(cart.Cart{}))
}
