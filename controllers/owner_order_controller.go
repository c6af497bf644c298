// controllers/owner_order_controller.go
package controllers

import (
	"foodorder/entity"
	"foodorder/pkg/resp"
	"foodorder/services"
	"foodorder/utils"

	"github.com/gin-gonic/gin"
)

// OwnerOrderController serves restaurant-side order actions. Ownership of the
// restaurant is already checked by middleware; the service checks it again
// together with the order's restaurant.
type OwnerOrderController struct{ Svc *services.OrderService }

func NewOwnerOrderController(s *services.OrderService) *OwnerOrderController {
	return &OwnerOrderController{Svc: s}
}

// ---------------- DTO ----------------
type updateStatusReq struct {
	Status entity.OrderStatus `json:"status" binding:"required"`
}

// ---------------- Handlers ----------------

// GET /orders/restaurant/:restaurantId?status=&page=&limit=
func (ctl *OwnerOrderController) List(c *gin.Context) {
	restID, ok := pathID(c, "restaurantId")
	if !ok {
		return
	}
	page, ok := queryInt(c, "page", 1)
	if !ok {
		return
	}
	limit, ok := queryInt(c, "limit", 20)
	if !ok {
		return
	}
	out, err := ctl.Svc.ListForRestaurant(c.Request.Context(), utils.CurrentUserID(c), restID,
		c.Query("status"), page, limit)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, out)
}

// PATCH /orders/:id/update/:orderId   (:id = restaurant)
func (ctl *OwnerOrderController) UpdateStatus(c *gin.Context) {
	restID, ok := pathID(c, "id")
	if !ok {
		return
	}
	orderID, ok := pathID(c, "orderId")
	if !ok {
		return
	}
	var req updateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	order, err := ctl.Svc.UpdateByRestaurant(c.Request.Context(), utils.CurrentUserID(c), restID, orderID, req.Status)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, order)
}

// PATCH /orders/:id/cancel/:orderId   (:id = restaurant)
func (ctl *OwnerOrderController) Cancel(c *gin.Context) {
	restID, ok := pathID(c, "id")
	if !ok {
		return
	}
	orderID, ok := pathID(c, "orderId")
	if !ok {
		return
	}
	var req cancelReq
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			resp.BadRequest(c, err.Error())
			return
		}
	}
	order, err := ctl.Svc.CancelByRestaurant(c.Request.Context(), utils.CurrentUserID(c), restID, orderID, req.CancellationReason)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, order)
}
