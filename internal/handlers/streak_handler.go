package handlers

import (
	"context"
	"net/http"
	"time"

	"innerglow/backend/internal/middleware"
	"innerglow/backend/internal/store"

	"github.com/gin-gonic/gin"
)

// StreakHandler serves the daily check-in streak.
type StreakHandler struct {
	streaks *store.StreakStore
}

func NewStreakHandler(streaks *store.StreakStore) *StreakHandler {
	return &StreakHandler{streaks: streaks}
}

func (h *StreakHandler) GetStreak(c *gin.Context) {
	user := middleware.ForContext(c.Request.Context())
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	streak, err := h.streaks.Get(ctx, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch streak"})
		return
	}
	c.JSON(http.StatusOK, streak)
}

// CheckIn advances the caller's streak. Checking in twice on the same day is
// a no-op.
func (h *StreakHandler) CheckIn(c *gin.Context) {
	user := middleware.ForContext(c.Request.Context())
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	streak, err := h.streaks.Get(ctx, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch streak"})
		return
	}

	advanced := streak.Advance(time.Now())
	if err := h.streaks.Save(ctx, advanced); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update streak"})
		return
	}
	c.JSON(http.StatusOK, advanced)
}
