package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/podhaven/podhaven-backend/internal/common"
	"github.com/podhaven/podhaven-backend/internal/domain"
	"github.com/podhaven/podhaven-backend/internal/middleware"
	"github.com/podhaven/podhaven-backend/internal/service"
)

// MediaRefHandler handles clip requests
type MediaRefHandler struct {
	service service.MediaRefService
}

// NewMediaRefHandler creates a new MediaRefHandler
func NewMediaRefHandler(service service.MediaRefService) *MediaRefHandler {
	return &MediaRefHandler{service: service}
}

// Create handles POST /media-refs
// @Summary Create a clip
// @Tags media-refs
// @Accept json
// @Produce json
// @Param body body domain.CreateMediaRefRequest true "Clip payload"
// @Success 201 {object} common.APIResponse{data=domain.MediaRef}
// @Security BearerAuth
// @Router /media-refs [post]
func (h *MediaRefHandler) Create(c *gin.Context) {
	ownerID := middleware.GetUserID(c)

	var req domain.CreateMediaRefRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	mediaRef, err := h.service.Create(ownerID, &req)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrInvalidInput):
			common.ErrorResponse(c, http.StatusBadRequest, err.Error(), err)
		case errors.Is(err, common.ErrEpisodeNotFound):
			common.ErrorResponse(c, http.StatusNotFound, "Episode not found", err)
		default:
			common.ErrorResponse(c, http.StatusInternalServerError, "Clip creation failed", err)
		}
		return
	}

	c.JSON(http.StatusCreated, common.APIResponse{Data: mediaRef})
}

// Get handles GET /media-refs/:id
// @Summary Get a clip by id
// @Tags media-refs
// @Produce json
// @Param id path string true "Clip ID"
// @Success 200 {object} common.APIResponse{data=domain.MediaRef}
// @Router /media-refs/{id} [get]
func (h *MediaRefHandler) Get(c *gin.Context) {
	mediaRef, err := h.service.GetByID(c.Param("id"), middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, common.ErrMediaRefNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "Clip not found", err)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to load clip", err)
		return
	}

	common.SuccessResponse(c, mediaRef, nil)
}

// ListByEpisode handles GET /episodes/:id/media-refs
// @Summary List an episode's clips
// @Tags media-refs
// @Produce json
// @Param id path string true "Episode ID"
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 20)"
// @Success 200 {object} common.APIResponse{data=[]domain.MediaRef}
// @Router /episodes/{id}/media-refs [get]
func (h *MediaRefHandler) ListByEpisode(c *gin.Context) {
	page := 1
	if p, err := strconv.Atoi(c.Query("page")); err == nil && p > 0 {
		page = p
	}
	limit := 20
	if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 {
		limit = l
	}

	mediaRefs, total, err := h.service.ListByEpisode(c.Param("id"), middleware.GetUserID(c), page, limit)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to list clips", err)
		return
	}

	common.SuccessResponse(c, mediaRefs, &common.Meta{Page: page, Limit: limit, Total: total})
}

// Chapters handles GET /clips
// @Summary Get public clips of an episode as a chapters file
// @Tags media-refs
// @Produce json
// @Param mediaUrl query string true "Episode media URL"
// @Success 200 {object} domain.ChaptersFile
// @Router /clips [get]
func (h *MediaRefHandler) Chapters(c *gin.Context) {
	mediaURL := c.Query("mediaUrl")
	if mediaURL == "" {
		common.ErrorResponse(c, http.StatusBadRequest, "A mediaUrl must be provided", nil)
		return
	}

	chapters, err := h.service.Chapters(mediaURL)
	if err != nil {
		if errors.Is(err, common.ErrEpisodeNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "Episode not found", err)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to load chapters", err)
		return
	}

	// Chapters files are served raw, without the API envelope, so podcast
	// players can consume them directly
	c.JSON(http.StatusOK, chapters)
}

// Update handles PATCH /media-refs/:id
// @Summary Update a clip
// @Tags media-refs
// @Accept json
// @Produce json
// @Param id path string true "Clip ID"
// @Param body body domain.UpdateMediaRefRequest true "Update payload"
// @Success 200 {object} common.APIResponse{data=domain.MediaRef}
// @Security BearerAuth
// @Router /media-refs/{id} [patch]
func (h *MediaRefHandler) Update(c *gin.Context) {
	var req domain.UpdateMediaRefRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	mediaRef, err := h.service.Update(c.Param("id"), middleware.GetUserID(c), &req)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrInvalidInput):
			common.ErrorResponse(c, http.StatusBadRequest, err.Error(), err)
		case errors.Is(err, common.ErrMediaRefNotFound):
			common.ErrorResponse(c, http.StatusNotFound, "Clip not found", err)
		case errors.Is(err, common.ErrForbidden):
			common.ErrorResponse(c, http.StatusForbidden, "Not the clip owner", err)
		default:
			common.ErrorResponse(c, http.StatusInternalServerError, "Clip update failed", err)
		}
		return
	}

	common.SuccessResponse(c, mediaRef, nil)
}

// Delete handles DELETE /media-refs/:id
// @Summary Delete a clip
// @Tags media-refs
// @Param id path string true "Clip ID"
// @Success 204
// @Security BearerAuth
// @Router /media-refs/{id} [delete]
func (h *MediaRefHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Param("id"), middleware.GetUserID(c)); err != nil {
		switch {
		case errors.Is(err, common.ErrMediaRefNotFound):
			common.ErrorResponse(c, http.StatusNotFound, "Clip not found", err)
		case errors.Is(err, common.ErrForbidden):
			common.ErrorResponse(c, http.StatusForbidden, "Not the clip owner", err)
		default:
			common.ErrorResponse(c, http.StatusInternalServerError, "Clip deletion failed", err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}
