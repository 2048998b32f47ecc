package controllers

import (
	"foodcart/pkg/resp"
	"foodcart/services"

	"github.com/gin-gonic/gin"
)

type BranchController struct{ Svc *services.BranchService }

func NewBranchController(s *services.BranchService) *BranchController {
	return &BranchController{Svc: s}
}

// GET /branches
func (h *BranchController) List(c *gin.Context) {
	out, err := h.Svc.ListActive(c.Request.Context())
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}
