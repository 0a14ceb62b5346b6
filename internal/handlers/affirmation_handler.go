package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"innerglow/backend/internal/models"
	"innerglow/backend/internal/services"

	"github.com/gin-gonic/gin"
)

// AffirmationHandler serves the affirmation of the day.
type AffirmationHandler struct {
	affirmations *services.Affirmations
}

func NewAffirmationHandler(affirmations *services.Affirmations) *AffirmationHandler {
	return &AffirmationHandler{affirmations: affirmations}
}

func (h *AffirmationHandler) Today(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	text, err := h.affirmations.Today(ctx)
	if err != nil {
		log.Printf("[AffirmationHandler] fetch failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch affirmation"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"date":        time.Now().Format(models.DateLayout),
		"affirmation": text,
	})
}
