package handler

import (
	"github.com/freshveld/fulfillment-api/internal/application/service"
	"github.com/freshveld/fulfillment-api/internal/domain/enum"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
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

// GetPolicy builds the caller's access policy from the verified token claims
func GetPolicy(c *gin.Context) service.AccessPolicy {
	policy := service.AccessPolicy{}

	if userID := GetUserID(c); userID != nil {
		policy.UserID = *userID
	}
	if roleVal, exists := c.Get("user_role"); exists {
		if role, ok := roleVal.(string); ok {
			policy.Role = enum.UserRole(role)
		}
	}
	if customerIDVal, exists := c.Get("customer_id"); exists {
		if customerID, ok := customerIDVal.(uuid.UUID); ok {
			policy.CustomerID = &customerID
		}
	}

	return policy
}
