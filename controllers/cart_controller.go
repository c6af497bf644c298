package controllers

import (
	"foodorder/pkg/resp"
	"foodorder/services"
	"foodorder/utils"

	"github.com/gin-gonic/gin"
)

type CartController struct{ Svc *services.CartService }

func NewCartController(s *services.CartService) *CartController { return &CartController{Svc: s} }

// POST /cart/:restaurantId
func (h *CartController) Add(c *gin.Context) {
	restID, ok := pathID(c, "restaurantId")
	if !ok {
		return
	}
	var req services.AddToCartIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	cart, err := h.Svc.Add(c.Request.Context(), utils.CurrentUserID(c), restID, &req)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, cart)
}

// PATCH /cart/:restaurantId
func (h *CartController) Remove(c *gin.Context) {
	restID, ok := pathID(c, "restaurantId")
	if !ok {
		return
	}
	var req services.RemoveFromCartIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	cart, err := h.Svc.Remove(c.Request.Context(), utils.CurrentUserID(c), restID, &req)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	// nil: the last line was removed and the cart is gone
	resp.OK(c, cart)
}

// DELETE /cart/:restaurantId
func (h *CartController) Delete(c *gin.Context) {
	restID, ok := pathID(c, "restaurantId")
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), utils.CurrentUserID(c), restID); err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": true})
}

// GET /cart/:restaurantId
func (h *CartController) Get(c *gin.Context) {
	restID, ok := pathID(c, "restaurantId")
	if !ok {
		return
	}
	cart, err := h.Svc.Get(c.Request.Context(), utils.CurrentUserID(c), restID)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, cart)
}

// GET /cart
func (h *CartController) List(c *gin.Context) {
	carts, err := h.Svc.List(c.Request.Context(), utils.CurrentUserID(c))
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, carts)
}
