package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/podhaven/podhaven-backend/internal/common"
	"github.com/podhaven/podhaven-backend/internal/domain"
	"github.com/podhaven/podhaven-backend/internal/service"
)

// EpisodeHandler handles episode requests
type EpisodeHandler struct {
	service service.EpisodeService
}

// NewEpisodeHandler creates a new EpisodeHandler
func NewEpisodeHandler(service service.EpisodeService) *EpisodeHandler {
	return &EpisodeHandler{service: service}
}

// Create handles POST /episodes
// @Summary Add an episode
// @Tags episodes
// @Accept json
// @Produce json
// @Param body body domain.CreateEpisodeRequest true "Episode payload"
// @Success 201 {object} common.APIResponse{data=domain.Episode}
// @Security BearerAuth
// @Router /episodes [post]
func (h *EpisodeHandler) Create(c *gin.Context) {
	var req domain.CreateEpisodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	episode, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, common.ErrPodcastNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "Podcast not found", err)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Episode creation failed", err)
		return
	}

	c.JSON(http.StatusCreated, common.APIResponse{Data: episode})
}

// Get handles GET /episodes/:id
// @Summary Get an episode by id
// @Tags episodes
// @Produce json
// @Param id path string true "Episode ID"
// @Success 200 {object} common.APIResponse{data=domain.Episode}
// @Router /episodes/{id} [get]
func (h *EpisodeHandler) Get(c *gin.Context) {
	episode, err := h.service.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, common.ErrEpisodeNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "Episode not found", err)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to load episode", err)
		return
	}

	common.SuccessResponse(c, episode, nil)
}

// List handles GET /episodes
// @Summary List or search episodes
// @Tags episodes
// @Produce json
// @Param podcastId query string false "Podcast filter"
// @Param searchTitle query string false "Title search"
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 20)"
// @Success 200 {object} common.APIResponse{data=[]domain.Episode}
// @Router /episodes [get]
func (h *EpisodeHandler) List(c *gin.Context) {
	query := domain.EpisodeListQuery{
		PodcastID:   c.Query("podcastId"),
		SearchTitle: c.Query("searchTitle"),
		Page:        1,
		Limit:       20,
	}
	if p, err := strconv.Atoi(c.Query("page")); err == nil && p > 0 {
		query.Page = p
	}
	if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 {
		query.Limit = l
	}

	episodes, total, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to list episodes", err)
		return
	}

	common.SuccessResponse(c, episodes, &common.Meta{Page: query.Page, Limit: query.Limit, Total: total})
}

// Update handles PATCH /episodes/:id
// @Summary Update an episode
// @Tags episodes
// @Accept json
// @Produce json
// @Param id path string true "Episode ID"
// @Param body body domain.UpdateEpisodeRequest true "Update payload"
// @Success 200 {object} common.APIResponse{data=domain.Episode}
// @Security BearerAuth
// @Router /episodes/{id} [patch]
func (h *EpisodeHandler) Update(c *gin.Context) {
	var req domain.UpdateEpisodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	episode, err := h.service.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, common.ErrEpisodeNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "Episode not found", err)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Episode update failed", err)
		return
	}

	common.SuccessResponse(c, episode, nil)
}

// Delete handles DELETE /episodes/:id
// @Summary Delete an episode
// @Tags episodes
// @Param id path string true "Episode ID"
// @Success 204
// @Security BearerAuth
// @Router /episodes/{id} [delete]
func (h *EpisodeHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, common.ErrEpisodeNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "Episode not found", err)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Episode deletion failed", err)
		return
	}

	c.Status(http.StatusNoContent)
}
