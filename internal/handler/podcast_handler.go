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

// PodcastHandler handles podcast catalog requests
type PodcastHandler struct {
	service service.PodcastService
}

// NewPodcastHandler creates a new PodcastHandler
func NewPodcastHandler(service service.PodcastService) *PodcastHandler {
	return &PodcastHandler{service: service}
}

// Create handles POST /podcasts
// @Summary Add a podcast to the catalog
// @Tags podcasts
// @Accept json
// @Produce json
// @Param body body domain.CreatePodcastRequest true "Podcast payload"
// @Success 201 {object} common.APIResponse{data=domain.Podcast}
// @Security BearerAuth
// @Router /podcasts [post]
func (h *PodcastHandler) Create(c *gin.Context) {
	var req domain.CreatePodcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	podcast, err := h.service.Create(&req)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Podcast creation failed", err)
		return
	}

	c.JSON(http.StatusCreated, common.APIResponse{Data: podcast})
}

// Get handles GET /podcasts/:id
// @Summary Get a podcast by id
// @Tags podcasts
// @Produce json
// @Param id path string true "Podcast ID"
// @Success 200 {object} common.APIResponse{data=domain.Podcast}
// @Router /podcasts/{id} [get]
func (h *PodcastHandler) Get(c *gin.Context) {
	podcast, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, common.ErrPodcastNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "Podcast not found", err)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to load podcast", err)
		return
	}

	common.SuccessResponse(c, podcast, nil)
}

// List handles GET /podcasts
// @Summary List podcasts
// @Tags podcasts
// @Produce json
// @Param category query string false "Category filter"
// @Param searchTitle query string false "Title filter"
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 20)"
// @Success 200 {object} common.APIResponse{data=[]domain.Podcast}
// @Router /podcasts [get]
func (h *PodcastHandler) List(c *gin.Context) {
	page := 1
	if p, err := strconv.Atoi(c.Query("page")); err == nil && p > 0 {
		page = p
	}
	limit := 20
	if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 {
		limit = l
	}

	podcasts, total, err := h.service.List(c.Query("category"), c.Query("searchTitle"), page, limit)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to list podcasts", err)
		return
	}

	common.SuccessResponse(c, podcasts, &common.Meta{Page: page, Limit: limit, Total: total})
}

// Update handles PATCH /podcasts/:id
// @Summary Update a podcast
// @Tags podcasts
// @Accept json
// @Produce json
// @Param id path string true "Podcast ID"
// @Param body body domain.UpdatePodcastRequest true "Update payload"
// @Success 200 {object} common.APIResponse{data=domain.Podcast}
// @Security BearerAuth
// @Router /podcasts/{id} [patch]
func (h *PodcastHandler) Update(c *gin.Context) {
	var req domain.UpdatePodcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	podcast, err := h.service.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, common.ErrPodcastNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "Podcast not found", err)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Podcast update failed", err)
		return
	}

	common.SuccessResponse(c, podcast, nil)
}

// Delete handles DELETE /podcasts/:id
// @Summary Delete a podcast
// @Tags podcasts
// @Param id path string true "Podcast ID"
// @Success 204
// @Security BearerAuth
// @Router /podcasts/{id} [delete]
func (h *PodcastHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, common.ErrPodcastNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "Podcast not found", err)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Podcast deletion failed", err)
		return
	}

	c.Status(http.StatusNoContent)
}
