package controllers

import (
	"foodorder/pkg/resp"
	"foodorder/services"
	"foodorder/utils"

	"github.com/gin-gonic/gin"
)

// OrderController serves the customer and delivery side of orders. Every
// /orders/:id route reads :id as the restaurant or the order depending on the
// action.
type OrderController struct{ Svc *services.OrderService }

func NewOrderController(s *services.OrderService) *OrderController {
	return &OrderController{Svc: s}
}

// ----- request bodies -----

type cancelReq struct {
	CancellationReason string `json:"cancellationReason"`
}

type instructionsReq struct {
	SpecialInstructions string `json:"specialInstructions" binding:"required"`
}

// POST /orders/:id/initiate   (:id = restaurant)
func (h *OrderController) Initiate(c *gin.Context) {
	restID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req services.InitiateOrderIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	order, err := h.Svc.Initiate(c.Request.Context(), utils.CurrentUserID(c), restID, &req)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.Created(c, order)
}

// POST /orders/:id/checkout   (:id = restaurant)
func (h *OrderController) Checkout(c *gin.Context) {
	restID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req services.CheckoutIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	order, err := h.Svc.Checkout(c.Request.Context(), utils.CurrentUserID(c), restID, &req)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.Created(c, order)
}

// GET /orders?limit=
func (h *OrderController) ListForMe(c *gin.Context) {
	limit, ok := queryInt(c, "limit", 50)
	if !ok {
		return
	}
	orders, err := h.Svc.ListForUser(c.Request.Context(), utils.CurrentUserID(c), limit)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, orders)
}

// GET /orders/:id
func (h *OrderController) Detail(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}
	order, err := h.Svc.DetailForUser(c.Request.Context(), utils.CurrentUserID(c), orderID)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, order)
}

// PATCH /orders/:id/cancel
func (h *OrderController) Cancel(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req cancelReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	order, err := h.Svc.CancelByCustomer(c.Request.Context(), utils.CurrentUserID(c), orderID, req.CancellationReason)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, order)
}

// PATCH /orders/:id/update
func (h *OrderController) UpdateInstructions(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req instructionsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	order, err := h.Svc.UpdateInstructions(c.Request.Context(), utils.CurrentUserID(c), orderID, req.SpecialInstructions)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, order)
}

// PATCH /orders/:id/complete   (delivery partner)
func (h *OrderController) Complete(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req services.CompleteOrderIn
	// body is optional
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			resp.BadRequest(c, err.Error())
			return
		}
	}
	order, err := h.Svc.Complete(c.Request.Context(), utils.CurrentUserID(c), orderID, &req)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, order)
}

// POST /orders/:id/review
func (h *OrderController) Review(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req services.ReviewIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	order, err := h.Svc.Review(c.Request.Context(), utils.CurrentUserID(c), orderID, &req)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, order)
}
