package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/agriconnect/agriconnect-api/internal/domain/entity"
	"github.com/agriconnect/agriconnect-api/internal/domain/enum"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetUserRole extracts the user role from the Gin context
func GetUserRole(c *gin.Context) enum.Role {
	roleVal, exists := c.Get("user_role")
	if !exists {
		return ""
	}
	role, ok := roleVal.(enum.Role)
	if !ok {
		return ""
	}
	return role
}

// CurrentUser builds a user from the authenticated claims in the context.
// It carries identity only; load the full record when profile fields beyond
// ID, name, email and role are needed.
func CurrentUser(c *gin.Context) *entity.User {
	userID := GetUserID(c)
	if userID == nil {
		return nil
	}
	return &entity.User{
		ID:    *userID,
		Name:  c.GetString("user_name"),
		Email: c.GetString("user_email"),
		Role:  GetUserRole(c),
	}
}
