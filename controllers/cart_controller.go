package controllers

import (
	"foodcart/entity"
	"foodcart/pkg/resp"
	"foodcart/services"

	"github.com/gin-gonic/gin"
)

type CartController struct{ Svc *services.CartService }

func NewCartController(s *services.CartService) *CartController { return &CartController{Svc: s} }

// GET /cart
func (h *CartController) Get(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	resp.OK(c, h.Svc.View(uid))
}

// POST /cart/items
func (h *CartController) Add(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	var req services.AddItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	item, err := h.Svc.AddItem(c.Request.Context(), uid, req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, gin.H{"item": item, "cart": h.Svc.View(uid)})
}

// PATCH /cart/items/:id  body {"delta": 1 | -1}
func (h *CartController) UpdateQty(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	var body struct {
		Delta int `json:"delta" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	snap, err := h.Svc.UpdateQuantity(uid, c.Param("id"), body.Delta)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, snap)
}

// DELETE /cart/items/:id
func (h *CartController) RemoveItem(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	snap, err := h.Svc.RemoveItem(uid, c.Param("id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, snap)
}

// DELETE /cart
func (h *CartController) Clear(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	snap, err := h.Svc.Clear(uid)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, snap)
}

// PUT /cart/order-type
func (h *CartController) SetOrderType(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	var body struct {
		OrderType entity.OrderType `json:"orderType" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	snap, err := h.Svc.SetOrderType(uid, body.OrderType)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, snap)
}

// PUT /cart/address
func (h *CartController) SelectAddress(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	var body struct {
		AddressID uint `json:"addressId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	snap, err := h.Svc.SelectAddress(c.Request.Context(), uid, body.AddressID)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, snap)
}

// PUT /cart/branch
func (h *CartController) SelectBranch(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	var body struct {
		BranchID uint `json:"branchId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	snap, err := h.Svc.SelectBranch(c.Request.Context(), uid, body.BranchID)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, snap)
}
