package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/proa/teiacultural/helper"
	"github.com/proa/teiacultural/models"
	"github.com/proa/teiacultural/services"
)

type UserHandler struct {
	userService services.UserService
	Helper      *helper.HTTPHelper
}

func NewUserHandler(userService services.UserService, httpHelper *helper.HTTPHelper) *UserHandler {
	return &UserHandler{userService: userService, Helper: httpHelper}
}

// GetByUsername returns the public summary of a premium profile.
func (h *UserHandler) GetByUsername(c *gin.Context) {
	summary, err := h.userService.GetSummaryByUsername(c.Param("username"))
	if err != nil {
		h.Helper.SendFailure(c, err)
		return
	}

	h.Helper.SendSuccess(c, "User found", summary)
}

func (h *UserHandler) ListByCategory(c *gin.Context) {
	summaries, err := h.userService.ListSummariesByCategory(c.Param("category"))
	if err != nil {
		h.Helper.SendFailure(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Users found", summaries)
}

func (h *UserHandler) GetProfileByUsername(c *gin.Context) {
	profile, err := h.userService.GetProfileByUsername(c.Param("username"))
	if err != nil {
		h.Helper.SendFailure(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Profile found", profile)
}

// UpgradeSelf upgrades the authenticated user to premium.
func (h *UserHandler) UpgradeSelf(c *gin.Context) {
	h.upgrade(c, c.MustGet("user_id").(uuid.UUID))
}

// UpgradeByID is the admin variant of the upgrade.
func (h *UserHandler) UpgradeByID(c *gin.Context) {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid user ID", h.Helper.EmptyJsonMap())
		return
	}
	h.upgrade(c, targetID)
}

func (h *UserHandler) upgrade(c *gin.Context, targetID uuid.UUID) {
	var req models.UpgradeToPremiumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}
	if !validateRequest(c, h.Helper, req) {
		return
	}

	user, err := h.userService.UpgradeToPremium(targetID, req.Username)
	if err != nil {
		h.Helper.SendFailure(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Upgraded to premium", user)
}

func (h *UserHandler) DowngradeSelf(c *gin.Context) {
	h.downgrade(c, c.MustGet("user_id").(uuid.UUID))
}

func (h *UserHandler) DowngradeByID(c *gin.Context) {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid user ID", h.Helper.EmptyJsonMap())
		return
	}
	h.downgrade(c, targetID)
}

func (h *UserHandler) downgrade(c *gin.Context, targetID uuid.UUID) {
	user, err := h.userService.DowngradeToBasic(targetID)
	if err != nil {
		h.Helper.SendFailure(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Downgraded to basic", user)
}

func (h *UserHandler) UpdateDetailsSelf(c *gin.Context) {
	h.updateDetails(c, c.MustGet("user_id").(uuid.UUID))
}

func (h *UserHandler) UpdateDetailsByID(c *gin.Context) {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid user ID", h.Helper.EmptyJsonMap())
		return
	}
	h.updateDetails(c, targetID)
}

// updateDetails reads the multipart form as a partial update: fields that
// were not posted stay nil and therefore unchanged.
func (h *UserHandler) updateDetails(c *gin.Context, targetID uuid.UUID) {
	update := models.PremiumDetailsUpdate{
		ProfessionalName: formValue(c, "professional_name"),
		Category:         formValue(c, "category"),
		AboutMe:          formValue(c, "about_me"),
		SocialMedia:      formValue(c, "social_media"),
		Localization:     formValue(c, "localization"),
	}

	picture, err := readMedia(c, "profile_picture")
	if err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}
	update.ProfilePicture = picture

	user, err := h.userService.UpdatePremiumDetails(targetID, update)
	if err != nil {
		h.Helper.SendFailure(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Profile updated", user)
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers()
	if err != nil {
		h.Helper.SendFailure(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Users loaded", users)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid user ID", h.Helper.EmptyJsonMap())
		return
	}

	if err := h.userService.DeleteUser(targetID); err != nil {
		h.Helper.SendFailure(c, err)
		return
	}

	h.Helper.SendSuccess(c, "User deleted", h.Helper.EmptyJsonMap())
}

func formValue(c *gin.Context, field string) *string {
	if value, ok := c.GetPostForm(field); ok {
		return &value
	}
	return nil
}
