package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hinagiku/taskboard-api/internal/dto"
	apierrors "github.com/hinagiku/taskboard-api/internal/errors"
	"github.com/hinagiku/taskboard-api/internal/middleware"
	"github.com/hinagiku/taskboard-api/internal/services"
	"github.com/hinagiku/taskboard-api/internal/utils"
)

// UserHandler coordinates user-directory HTTP handlers.
type UserHandler struct {
	authService *services.AuthService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(authService *services.AuthService) *UserHandler {
	return &UserHandler{
		authService: authService,
	}
}

// GetMe returns the authenticated user's own record.
func (h *UserHandler) GetMe(c *gin.Context) {
	user, exists := middleware.CurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(user))
}

// ListUsers returns all users. Admin only.
func (h *UserHandler) ListUsers(c *gin.Context) {
	user, exists := middleware.CurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	params := utils.GetPaginationParams(c)

	users, err := h.authService.ListUsers(&user, params)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTOs(users))
}

// UpdateMe applies a partial update to the authenticated user's own record.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	user, exists := middleware.CurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type UpdateUserRequest struct {
		Email    *string `json:"email" binding:"omitempty,email"`
		Username *string `json:"username"`
		Password *string `json:"password"`
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.authService.UpdateProfile(&user, services.UpdateProfileInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*updated))
}

// DeleteMe removes the authenticated user's account.
func (h *UserHandler) DeleteMe(c *gin.Context) {
	user, exists := middleware.CurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	if err := h.authService.DeleteAccount(user.ID); err != nil {
		respondAuthError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
