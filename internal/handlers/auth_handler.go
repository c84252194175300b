package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/workbridge/workbridge/internal/apperr"
	"github.com/workbridge/workbridge/internal/dtos"
	"github.com/workbridge/workbridge/internal/respond"
	"github.com/workbridge/workbridge/internal/services"
)

type AuthHandler struct {
	AuthService *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{AuthService: auth}
}

// Register is POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dtos.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, apperr.InvalidInput("invalid request: "+err.Error()))
		return
	}
	auth, err := h.AuthService.Register(c.Request.Context(), &req)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.Created(c, "registered", auth)
}

// Login is POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dtos.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, apperr.InvalidInput("invalid request: "+err.Error()))
		return
	}
	auth, err := h.AuthService.Login(c.Request.Context(), &req)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, "logged in", auth)
}
