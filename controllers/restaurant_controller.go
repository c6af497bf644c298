package controllers

import (
	"foodorder/pkg/resp"
	"foodorder/services"
	"foodorder/utils"

	"github.com/gin-gonic/gin"
)

type RestaurantController struct{ Svc *services.CatalogService }

func NewRestaurantController(s *services.CatalogService) *RestaurantController {
	return &RestaurantController{Svc: s}
}

// GET /restaurants
func (ctl *RestaurantController) List(c *gin.Context) {
	rows, err := ctl.Svc.ListRestaurants(c.Request.Context())
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, rows)
}

// GET /restaurants/:id
func (ctl *RestaurantController) Detail(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	r, err := ctl.Svc.GetRestaurant(c.Request.Context(), id)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, r)
}

// GET /restaurants/:id/foods
func (ctl *RestaurantController) Foods(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	foods, err := ctl.Svc.ListFoods(c.Request.Context(), id)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, foods)
}

// POST /restaurants   (owner)
func (ctl *RestaurantController) Create(c *gin.Context) {
	var req services.CreateRestaurantIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	r, err := ctl.Svc.CreateRestaurant(c.Request.Context(), utils.CurrentUserID(c), &req)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.Created(c, r)
}

// POST /restaurants/:id/foods   (owner)
func (ctl *RestaurantController) CreateFood(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req services.CreateFoodIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	f, err := ctl.Svc.CreateFood(c.Request.Context(), utils.CurrentUserID(c), id, &req)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.Created(c, f)
}

// PATCH /restaurants/:id/foods/:foodId   (owner)
func (ctl *RestaurantController) UpdateFood(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	foodID, ok := pathID(c, "foodId")
	if !ok {
		return
	}
	var req services.UpdateFoodIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	f, err := ctl.Svc.UpdateFood(c.Request.Context(), utils.CurrentUserID(c), id, foodID, &req)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, f)
}
