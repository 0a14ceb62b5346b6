package handlers

import (
	"context"
	"net/http"
	"time"

	"innerglow/backend/internal/middleware"
	"innerglow/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// ProfileHandler maintains the display profile attached to the auth subject.
type ProfileHandler struct {
	users UserDirectory
}

func NewProfileHandler(users UserDirectory) *ProfileHandler {
	return &ProfileHandler{users: users}
}

// UpdateMePayload defines the expected JSON for the profile upsert
type UpdateMePayload struct {
	Name   string `json:"name" binding:"required"`
	Avatar string `json:"avatar"`
}

// UpdateMe creates or refreshes the caller's profile.
func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	var payload UpdateMePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}
	user := middleware.ForContext(c.Request.Context())
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	stored, err := h.users.Upsert(ctx, models.User{
		ID:     user.ID,
		Name:   payload.Name,
		Avatar: payload.Avatar,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save profile"})
		return
	}
	c.JSON(http.StatusOK, stored)
}
