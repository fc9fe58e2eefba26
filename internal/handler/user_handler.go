package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/podhaven/podhaven-backend/internal/common"
	"github.com/podhaven/podhaven-backend/internal/domain"
	"github.com/podhaven/podhaven-backend/internal/middleware"
	"github.com/podhaven/podhaven-backend/internal/service"
)

// UserHandler handles profile requests for the authenticated user
type UserHandler struct {
	service service.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(service service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// GetMe handles GET /users/me
// @Summary Get the authenticated user's profile
// @Tags users
// @Produce json
// @Success 200 {object} common.APIResponse{data=domain.UserResponse}
// @Security BearerAuth
// @Router /users/me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	userID := middleware.GetUserID(c)

	user, err := h.service.GetByID(userID)
	if err != nil {
		if errors.Is(err, common.ErrUserNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "User not found", err)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to load profile", err)
		return
	}

	common.SuccessResponse(c, user, nil)
}

// UpdateMe handles PATCH /users/me
// @Summary Update the authenticated user's profile
// @Tags users
// @Accept json
// @Produce json
// @Param body body domain.UpdateUserRequest true "Profile update payload"
// @Success 200 {object} common.APIResponse{data=domain.UserResponse}
// @Security BearerAuth
// @Router /users/me [patch]
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req domain.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	user, err := h.service.Update(userID, &req)
	if err != nil {
		if errors.Is(err, common.ErrUserNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "User not found", err)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Profile update failed", err)
		return
	}

	common.SuccessResponse(c, user, nil)
}

// DeleteMe handles DELETE /users/me
// @Summary Delete the authenticated user's account
// @Tags users
// @Success 204
// @Security BearerAuth
// @Router /users/me [delete]
func (h *UserHandler) DeleteMe(c *gin.Context) {
	userID := middleware.GetUserID(c)

	if err := h.service.Delete(userID); err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Account deletion failed", err)
		return
	}

	c.Status(http.StatusNoContent)
}
