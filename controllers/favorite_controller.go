package controllers

import (
	"foodcart/pkg/resp"
	"foodcart/services"

	"github.com/gin-gonic/gin"
)

type FavoriteController struct{ Svc *services.FavoriteService }

func NewFavoriteController(s *services.FavoriteService) *FavoriteController {
	return &FavoriteController{Svc: s}
}

// GET /favorites
func (h *FavoriteController) List(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	out, err := h.Svc.List(c.Request.Context(), uid)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

// POST /favorites/:menuItemId
func (h *FavoriteController) Add(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "menuItemId")
	if !ok {
		return
	}
	if err := h.Svc.Add(c.Request.Context(), uid, id); err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, gin.H{"menuItemId": id})
}

// DELETE /favorites/:menuItemId
func (h *FavoriteController) Remove(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "menuItemId")
	if !ok {
		return
	}
	if err := h.Svc.Remove(c.Request.Context(), uid, id); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"menuItemId": id})
}
