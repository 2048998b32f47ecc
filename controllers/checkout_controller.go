package controllers

import (
	"foodcart/pkg/resp"
	"foodcart/services"

	"github.com/gin-gonic/gin"
)

type CheckoutController struct{ Svc *services.CheckoutService }

func NewCheckoutController(s *services.CheckoutService) *CheckoutController {
	return &CheckoutController{Svc: s}
}

// GET /checkout
func (h *CheckoutController) State(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	st, err := h.Svc.State(c.Request.Context(), uid)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, st)
}

// POST /checkout/open
func (h *CheckoutController) Open(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	st, err := h.Svc.Open(uid)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, st)
}

// POST /checkout/next ที่ step review จะสั่ง order เลย
func (h *CheckoutController) Next(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	res, err := h.Svc.Next(c.Request.Context(), uid)
	if err != nil {
		resp.Error(c, err)
		return
	}
	if res.Placed != nil {
		resp.Created(c, res)
		return
	}
	resp.OK(c, res)
}

// POST /checkout/back
func (h *CheckoutController) Back(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	st, err := h.Svc.Back(uid)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, st)
}

// POST /checkout/promo
func (h *CheckoutController) ApplyPromo(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	var body struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	st, err := h.Svc.ApplyPromo(uid, body.Code)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, st)
}

// PUT /checkout/notes
func (h *CheckoutController) SetNotes(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	var body struct {
		Notes string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	st, err := h.Svc.SetNotes(uid, body.Notes)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, st)
}

// POST /checkout/cancel  body {"confirm": true}
func (h *CheckoutController) Cancel(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	var body struct {
		Confirm bool `json:"confirm"`
	}
	// body ว่างได้ = ยังไม่ยืนยัน
	_ = c.ShouldBindJSON(&body)
	st, err := h.Svc.Cancel(uid, body.Confirm)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, st)
}

// POST /checkout/submit
func (h *CheckoutController) Submit(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	res, err := h.Svc.Submit(c.Request.Context(), uid)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, res)
}
