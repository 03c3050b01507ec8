package handlers

import (
	"github.com/gin-gonic/gin"

	"jobdesk/internal/core/apperror"
	"jobdesk/internal/core/id"
	"jobdesk/internal/domain/auth"
	"jobdesk/internal/infrastructure/http/v1/dto"
)

// AuthHandler handles authentication requests.
type AuthHandler struct {
	base    *BaseHandler
	service *auth.Service
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(base *BaseHandler, service *auth.Service) *AuthHandler {
	return &AuthHandler{base: base, service: service}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	user, err := h.service.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		h.base.Error(c, err)
		return
	}

	h.base.Created(c, dto.FromUser(user))
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	token, user, err := h.service.Login(c.Request.Context(), auth.Credentials{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.base.Error(c, err)
		return
	}

	h.base.OK(c, dto.NewLoginResponse(token, user))
}

// Me handles GET /auth/me for the authenticated user.
func (h *AuthHandler) Me(c *gin.Context) {
	userID := h.base.GetUserID(c)
	if userID == "" {
		h.base.Error(c, apperror.NewUnauthorized("authentication required"))
		return
	}

	parsed, err := id.Parse(userID)
	if err != nil {
		h.base.Error(c, apperror.NewUnauthorized("invalid user context"))
		return
	}

	user, err := h.service.GetUser(c.Request.Context(), parsed)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, dto.FromUser(user))
}
