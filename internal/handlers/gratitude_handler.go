package handlers

import (
	"context"
	"net/http"
	"time"

	"innerglow/backend/internal/middleware"
	"innerglow/backend/internal/models"
	"innerglow/backend/internal/store"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GratitudeHandler serves gratitude lists.
type GratitudeHandler struct {
	gratitudes *store.GratitudeStore
}

func NewGratitudeHandler(gratitudes *store.GratitudeStore) *GratitudeHandler {
	return &GratitudeHandler{gratitudes: gratitudes}
}

// CreateGratitudePayload defines the expected JSON for a gratitude list
type CreateGratitudePayload struct {
	Items []string `json:"items" binding:"required,min=1"`
}

func (h *GratitudeHandler) CreateGratitude(c *gin.Context) {
	var payload CreateGratitudePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one gratitude item is required"})
		return
	}
	user := middleware.ForContext(c.Request.Context())
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	entry := &models.GratitudeEntry{UserID: user.ID, Items: payload.Items}
	if err := h.gratitudes.Insert(ctx, entry); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save gratitude list"})
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *GratitudeHandler) ListGratitudes(c *gin.Context) {
	user := middleware.ForContext(c.Request.Context())
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	entries, err := h.gratitudes.ListByOwner(ctx, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch gratitude lists"})
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *GratitudeHandler) DeleteGratitude(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid gratitude ID"})
		return
	}
	user := middleware.ForContext(c.Request.Context())
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.gratitudes.Delete(ctx, id, user.ID); err == store.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Gratitude list not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete gratitude list"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Gratitude list deleted"})
}
