package controllers

import (
	"foodcart/pkg/resp"
	"foodcart/services"

	"github.com/gin-gonic/gin"
)

type AddressController struct {
	Svc  *services.AddressService
	Cart *services.CartService
}

func NewAddressController(s *services.AddressService, cart *services.CartService) *AddressController {
	return &AddressController{Svc: s, Cart: cart}
}

type createAddressBody struct {
	services.AddressReq
	// select=true ใส่ที่อยู่ใหม่ลง cart เลย (ใช้ตอนอยู่ใน checkout)
	Select bool `json:"select"`
}

// GET /addresses
func (h *AddressController) List(c *gin.Context) {
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

// GET /delivery-zones
func (h *AddressController) Zones(c *gin.Context) {
	out, err := h.Svc.Zones(c.Request.Context())
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

// POST /addresses
func (h *AddressController) Create(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	var body createAddressBody
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if body.Select {
		if err := h.Cart.CanUseAddress(uid); err != nil {
			resp.Error(c, err)
			return
		}
	}
	addr, err := h.Svc.Create(c.Request.Context(), uid, body.AddressReq)
	if err != nil {
		resp.Error(c, err)
		return
	}
	if !body.Select {
		resp.Created(c, addr)
		return
	}
	snap, err := h.Cart.UseAddress(uid, addr)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, gin.H{"address": addr, "cart": snap})
}

// PATCH /addresses/:id
func (h *AddressController) Update(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var p services.AddressPatch
	if err := c.ShouldBindJSON(&p); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	addr, err := h.Svc.Update(c.Request.Context(), uid, id, p)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, addr)
}

// PUT /addresses/:id/default
func (h *AddressController) SetDefault(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.Svc.SetDefault(c.Request.Context(), uid, id); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"id": id, "isDefault": true})
}

// DELETE /addresses/:id
func (h *AddressController) Delete(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), uid, id); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": id})
}
