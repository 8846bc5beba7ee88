package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/proa/teiacultural/helper"
	"github.com/proa/teiacultural/models"
	"github.com/proa/teiacultural/services"
)

var statusHelper = &helper.HTTPHelper{}

type PublicationHandler struct {
	publicationService services.PublicationService
}

func NewPublicationHandler(publicationService services.PublicationService) *PublicationHandler {
	return &PublicationHandler{publicationService: publicationService}
}

func (h *PublicationHandler) CreatePublication(c *gin.Context) {
	callerID := c.MustGet("user_id").(uuid.UUID)

	media, err := readMediaSlots(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := models.CreatePublicationInput{
		Content: c.PostForm("content"),
		Media:   media,
	}

	publication, err := h.publicationService.Create(callerID, input)
	if err != nil {
		c.JSON(statusHelper.GetStatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, publication)
}

func (h *PublicationHandler) PatchPublication(c *gin.Context) {
	callerID := c.MustGet("user_id").(uuid.UUID)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid publication ID"})
		return
	}

	media, err := readMediaSlots(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := models.PatchPublicationInput{
		Content: formValue(c, "content"),
		Media:   media,
	}

	publication, err := h.publicationService.Patch(callerID, uint(id), input)
	if err != nil {
		c.JSON(statusHelper.GetStatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, publication)
}

func (h *PublicationHandler) DeletePublication(c *gin.Context) {
	callerID := c.MustGet("user_id").(uuid.UUID)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid publication ID"})
		return
	}

	if err := h.publicationService.Delete(callerID, uint(id)); err != nil {
		c.JSON(statusHelper.GetStatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Publication deleted successfully"})
}
