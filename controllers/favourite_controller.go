package controllers

import (
	"foodorder/pkg/resp"
	"foodorder/services"
	"foodorder/utils"

	"github.com/gin-gonic/gin"
)

type FavouriteController struct{ Svc *services.FavouriteService }

func NewFavouriteController(s *services.FavouriteService) *FavouriteController {
	return &FavouriteController{Svc: s}
}

// POST /orders/:id
func (h *FavouriteController) Add(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}
	fav, err := h.Svc.Add(c.Request.Context(), utils.CurrentUserID(c), orderID)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.Created(c, fav)
}

// DELETE /orders/:id
func (h *FavouriteController) Remove(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.Svc.Remove(c.Request.Context(), utils.CurrentUserID(c), orderID); err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, gin.H{"removed": true})
}

// GET /favourites
func (h *FavouriteController) List(c *gin.Context) {
	favs, err := h.Svc.List(c.Request.Context(), utils.CurrentUserID(c))
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, favs)
}
