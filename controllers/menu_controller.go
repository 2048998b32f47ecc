package controllers

import (
	"foodcart/pkg/resp"
	"foodcart/services"

	"github.com/gin-gonic/gin"
)

type MenuController struct{ Svc *services.MenuService }

func NewMenuController(s *services.MenuService) *MenuController { return &MenuController{Svc: s} }

// GET /menu?limit=&offset=&categoryId=
func (h *MenuController) List(c *gin.Context) {
	categoryID := queryInt(c, "categoryId", 0)
	if categoryID < 0 {
		categoryID = 0
	}
	page, err := h.Svc.List(c.Request.Context(), uint(categoryID), queryInt(c, "limit", 0), queryInt(c, "offset", 0))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, page)
}

// GET /menu/:id
func (h *MenuController) Detail(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	m, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, m)
}

// GET /categories
func (h *MenuController) Categories(c *gin.Context) {
	out, err := h.Svc.Categories(c.Request.Context())
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}
