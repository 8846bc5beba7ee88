package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/proa/teiacultural/models"
	"github.com/proa/teiacultural/services"
)

type FeedHandler struct {
	feedService services.FeedService
}

func NewFeedHandler(feedService services.FeedService) *FeedHandler {
	return &FeedHandler{feedService: feedService}
}

func (h *FeedHandler) GetFeed(c *gin.Context) {
	var params models.FeedParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	feed, err := h.feedService.Feed(params.Page, params.PageSize)
	if err != nil {
		c.JSON(statusHelper.GetStatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, feed)
}

func (h *FeedHandler) GetFeedByUsername(c *gin.Context) {
	var params models.FeedParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	feed, err := h.feedService.FeedByUsername(c.Param("username"), params.Page, params.PageSize)
	if err != nil {
		c.JSON(statusHelper.GetStatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, feed)
}

func (h *FeedHandler) GetFeedByCategory(c *gin.Context) {
	var params models.FeedParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	feed, err := h.feedService.FeedByCategory(c.Param("category"), params.Page, params.PageSize)
	if err != nil {
		c.JSON(statusHelper.GetStatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, feed)
}

func (h *FeedHandler) GetProfileFeed(c *gin.Context) {
	items, err := h.feedService.ProfileFeed(c.Param("username"))
	if err != nil {
		c.JSON(statusHelper.GetStatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"publications": items})
}
