package controllers

import (
	"strconv"

	"foodcart/pkg/resp"
	"foodcart/utils"

	"github.com/gin-gonic/gin"
)

// requireUser writes 401 and returns false when there is no signed-in user.
func requireUser(c *gin.Context) (uint, bool) {
	uid := utils.CurrentUserID(c)
	if uid == 0 {
		resp.Unauthorized(c, "unauthorized")
		return 0, false
	}
	return uid, true
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		resp.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func queryInt(c *gin.Context, name string, fallback int) int {
	v := c.Query(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
