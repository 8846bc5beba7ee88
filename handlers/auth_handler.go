package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gopkg.in/go-playground/validator.v9"

	"github.com/proa/teiacultural/helper"
	"github.com/proa/teiacultural/models"
	"github.com/proa/teiacultural/services"
)

type AuthHandler struct {
	authService services.AuthService
	Helper      *helper.HTTPHelper
}

func NewAuthHandler(authService services.AuthService, httpHelper *helper.HTTPHelper) *AuthHandler {
	return &AuthHandler{authService: authService, Helper: httpHelper}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}
	if !validateRequest(c, h.Helper, req) {
		return
	}

	user, err := h.authService.Register(req)
	if err != nil {
		h.Helper.SendFailure(c, err)
		return
	}

	h.Helper.SendCreated(c, "Register success", user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}
	if !validateRequest(c, h.Helper, req) {
		return
	}

	response, err := h.authService.Login(req)
	if err != nil {
		h.Helper.SendFailure(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Login success", response)
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		h.Helper.SendUnauthorizedError(c, "User not found in context", h.Helper.EmptyJsonMap())
		return
	}

	user, err := h.authService.GetUserByID(userID.(uuid.UUID))
	if err != nil {
		h.Helper.SendFailure(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Profile loaded", user)
}

// validateRequest runs the struct rules and sends the translated field
// errors. Returns false when the request was rejected.
func validateRequest(c *gin.Context, httpHelper *helper.HTTPHelper, req interface{}) bool {
	err := httpHelper.Validate.Struct(req)
	if err == nil {
		return true
	}
	if verrs, ok := err.(validator.ValidationErrors); ok {
		httpHelper.SendValidationError(c, verrs)
	} else {
		httpHelper.SendBadRequest(c, err.Error(), httpHelper.EmptyJsonMap())
	}
	return false
}
