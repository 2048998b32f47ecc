package controllers

import (
	"foodcart/pkg/resp"
	"foodcart/services"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthController struct {
	Svc      *services.AuthService
	Sessions *services.SessionStore
}

func NewAuthController(s *services.AuthService, sessions *services.SessionStore) *AuthController {
	return &AuthController{Svc: s, Sessions: sessions}
}

// POST /auth/login
func (a *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	token, user, err := a.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"token": token, "user": user})
}

// GET /profile
func (a *AuthController) Me(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	user, err := a.Svc.GetProfile(c.Request.Context(), uid)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, user)
}

// DELETE /session ทิ้ง cart + checkout ของ user
func (a *AuthController) EndSession(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	if err := a.Sessions.End(uid); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"ended": true})
}
