package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/agriconnect/agriconnect-api/internal/application/service"
	"github.com/agriconnect/agriconnect-api/internal/presentation/http/dto/response"
	"github.com/agriconnect/agriconnect-api/pkg/pagination"
)

// UserHandler handles admin user directory HTTP requests
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List returns the user directory
func (h *UserHandler) List(c *gin.Context) {
	params := pagination.DefaultPagination()
	params.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	params.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "15"))
	params.Validate()

	users, total, err := h.userService.ListUsers(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(users, pagination.NewPagination(params.Page, params.PerPage, total))
	response.SuccessWithPagination(c, 200, "Users retrieved", result)
}

// Get returns a single user
func (h *UserHandler) Get(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "User retrieved", user)
}

// Delete removes a user account
func (h *UserHandler) Delete(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
