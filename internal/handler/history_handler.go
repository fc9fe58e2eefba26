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

// HistoryHandler handles playback-history requests. Every route is
// authenticated and operates on the caller's own ledger.
type HistoryHandler struct {
	service service.HistoryService
}

// NewHistoryHandler creates a new HistoryHandler
func NewHistoryHandler(service service.HistoryService) *HistoryHandler {
	return &HistoryHandler{service: service}
}

// List handles GET /user-history-item
// @Summary List the caller's playback history, most recent first
// @Tags history
// @Produce json
// @Param skip query int false "Rows to skip (default 0)"
// @Param take query int false "Page size (default 20, max 50)"
// @Success 200 {object} common.APIResponse{data=[]domain.HistoryItemResponse}
// @Security BearerAuth
// @Router /user-history-item [get]
func (h *HistoryHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)

	skip := 0
	if s, err := strconv.Atoi(c.Query("skip")); err == nil && s > 0 {
		skip = s
	}
	take := 0
	if t, err := strconv.Atoi(c.Query("take")); err == nil && t > 0 {
		take = t
	}

	items, err := h.service.List(userID, skip, take)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to list history", err)
		return
	}

	common.SuccessResponse(c, items, &common.Meta{Skip: skip, Limit: take})
}

// ListMetadata handles GET /user-history-item/metadata
// @Summary List the caller's full history as position metadata only
// @Tags history
// @Produce json
// @Success 200 {object} common.APIResponse{data=[]domain.HistoryItemMetadata}
// @Security BearerAuth
// @Router /user-history-item/metadata [get]
func (h *HistoryHandler) ListMetadata(c *gin.Context) {
	userID := middleware.GetUserID(c)

	items, err := h.service.ListMetadata(userID)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to list history metadata", err)
		return
	}

	common.SuccessResponse(c, items, nil)
}

// AddOrUpdate handles PATCH /user-history-item
// @Summary Record playback progress for an episode or clip
// @Tags history
// @Accept json
// @Produce json
// @Param body body domain.AddHistoryItemRequest true "Playback event"
// @Success 200 {object} common.APIResponse
// @Security BearerAuth
// @Router /user-history-item [patch]
func (h *HistoryHandler) AddOrUpdate(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req domain.AddHistoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.CountHistoryUpsert(false)
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.service.AddOrUpdate(userID, &req); err != nil {
		middleware.CountHistoryUpsert(false)
		if errors.Is(err, common.ErrInvalidInput) {
			common.ErrorResponse(c, http.StatusBadRequest, err.Error(), err)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to save history item", err)
		return
	}

	middleware.CountHistoryUpsert(true)
	common.SuccessResponse(c, gin.H{"message": "history item saved"}, nil)
}

// Remove handles DELETE /user-history-item
// @Summary Remove the history record for an episode or clip
// @Tags history
// @Produce json
// @Param episodeId query string false "Episode ID"
// @Param mediaRefId query string false "Clip ID"
// @Success 204
// @Security BearerAuth
// @Router /user-history-item [delete]
func (h *HistoryHandler) Remove(c *gin.Context) {
	userID := middleware.GetUserID(c)

	err := h.service.RemoveByKey(userID, c.Query("episodeId"), c.Query("mediaRefId"))
	if err != nil {
		h.respondRemoveError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RemoveByEpisode handles DELETE /user-history-item/episode/:episodeId
// @Summary Remove the history record for an episode
// @Tags history
// @Param episodeId path string true "Episode ID"
// @Success 204
// @Security BearerAuth
// @Router /user-history-item/episode/{episodeId} [delete]
func (h *HistoryHandler) RemoveByEpisode(c *gin.Context) {
	userID := middleware.GetUserID(c)

	if err := h.service.RemoveByEpisode(userID, c.Param("episodeId")); err != nil {
		h.respondRemoveError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RemoveByMediaRef handles DELETE /user-history-item/mediaRef/:mediaRefId
// @Summary Remove the history record for a clip
// @Tags history
// @Param mediaRefId path string true "Clip ID"
// @Success 204
// @Security BearerAuth
// @Router /user-history-item/mediaRef/{mediaRefId} [delete]
func (h *HistoryHandler) RemoveByMediaRef(c *gin.Context) {
	userID := middleware.GetUserID(c)

	if err := h.service.RemoveByMediaRef(userID, c.Param("mediaRefId")); err != nil {
		h.respondRemoveError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RemoveAll handles DELETE /user-history-item/remove-all
// @Summary Clear the caller's entire playback history
// @Tags history
// @Success 204
// @Security BearerAuth
// @Router /user-history-item/remove-all [delete]
func (h *HistoryHandler) RemoveAll(c *gin.Context) {
	userID := middleware.GetUserID(c)

	if err := h.service.RemoveAll(userID); err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to clear history", err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *HistoryHandler) respondRemoveError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrInvalidInput):
		common.ErrorResponse(c, http.StatusBadRequest, err.Error(), err)
	case errors.Is(err, common.ErrHistoryItemNotFound):
		common.ErrorResponse(c, http.StatusNotFound, "History item not found", err)
	default:
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to remove history item", err)
	}
}
