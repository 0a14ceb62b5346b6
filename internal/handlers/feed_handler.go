package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"innerglow/backend/internal/pins"

	"github.com/gin-gonic/gin"
)

// FeedHandler serves the discovery and search feeds.
type FeedHandler struct {
	composer *pins.Composer
}

func NewFeedHandler(composer *pins.Composer) *FeedHandler {
	return &FeedHandler{composer: composer}
}

// ForYou returns the merged, shuffled public+external feed for the home
// surface.
func (h *FeedHandler) ForYou(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	feed, err := h.composer.Discovery(ctx)
	if err != nil {
		log.Printf("[FeedHandler] discovery failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build feed"})
		return
	}
	c.JSON(http.StatusOK, feed)
}

// Search returns local matches followed by provider results. An empty query
// is an empty result set.
func (h *FeedHandler) Search(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	results, err := h.composer.Search(ctx, c.Query("q"))
	if err != nil {
		log.Printf("[FeedHandler] search failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}
	c.JSON(http.StatusOK, results)
}
