package handlers

import (
	"context"
	"net/http"
	"time"

	"innerglow/backend/internal/middleware"
	"innerglow/backend/internal/models"
	"innerglow/backend/internal/store"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// JournalHandler serves journal entries.
type JournalHandler struct {
	journals *store.JournalStore
}

func NewJournalHandler(journals *store.JournalStore) *JournalHandler {
	return &JournalHandler{journals: journals}
}

// CreateJournalPayload defines the expected JSON for a new journal entry
type CreateJournalPayload struct {
	Title string   `json:"title" binding:"required"`
	Body  string   `json:"body"`
	Tags  []string `json:"tags"`
}

func (h *JournalHandler) CreateJournal(c *gin.Context) {
	var payload CreateJournalPayload
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

	entry := &models.JournalEntry{
		UserID: user.ID,
		Title:  payload.Title,
		Body:   payload.Body,
		Tags:   payload.Tags,
	}
	if err := h.journals.Insert(ctx, entry); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create journal entry"})
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *JournalHandler) ListJournals(c *gin.Context) {
	user := middleware.ForContext(c.Request.Context())
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	entries, err := h.journals.ListByOwner(ctx, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch journal entries"})
		return
	}
	c.JSON(http.StatusOK, entries)
}

// UpdateJournalPayload defines the expected JSON for editing a journal entry
type UpdateJournalPayload struct {
	Title string   `json:"title"`
	Body  *string  `json:"body"`
	Tags  []string `json:"tags"`
}

func (h *JournalHandler) UpdateJournal(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid journal ID"})
		return
	}
	var payload UpdateJournalPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}
	user := middleware.ForContext(c.Request.Context())
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	set := bson.M{}
	if payload.Title != "" {
		set["title"] = payload.Title
	}
	if payload.Body != nil {
		set["body"] = *payload.Body
	}
	if payload.Tags != nil {
		set["tags"] = payload.Tags
	}
	if len(set) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.journals.Update(ctx, id, user.ID, set); err == store.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Journal entry not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update journal entry"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Journal entry updated"})
}

func (h *JournalHandler) DeleteJournal(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid journal ID"})
		return
	}
	user := middleware.ForContext(c.Request.Context())
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.journals.Delete(ctx, id, user.ID); err == store.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Journal entry not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete journal entry"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Journal entry deleted"})
}
