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

var validMoods = map[string]bool{
	"great": true, "good": true, "okay": true, "low": true, "rough": true,
}

// MoodHandler serves mood check-ins.
type MoodHandler struct {
	moods *store.MoodStore
}

func NewMoodHandler(moods *store.MoodStore) *MoodHandler {
	return &MoodHandler{moods: moods}
}

// CreateMoodPayload defines the expected JSON for logging a mood
type CreateMoodPayload struct {
	Mood string `json:"mood" binding:"required"`
	Note string `json:"note"`
}

func (h *MoodHandler) CreateMood(c *gin.Context) {
	var payload CreateMoodPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}
	if !validMoods[payload.Mood] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown mood"})
		return
	}
	user := middleware.ForContext(c.Request.Context())
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	entry := &models.MoodEntry{UserID: user.ID, Mood: payload.Mood, Note: payload.Note}
	if err := h.moods.Insert(ctx, entry); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log mood"})
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *MoodHandler) ListMoods(c *gin.Context) {
	user := middleware.ForContext(c.Request.Context())
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	entries, err := h.moods.ListByOwner(ctx, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch moods"})
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *MoodHandler) DeleteMood(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid mood ID"})
		return
	}
	user := middleware.ForContext(c.Request.Context())
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.moods.Delete(ctx, id, user.ID); err == store.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Mood entry not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete mood"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Mood entry deleted"})
}
