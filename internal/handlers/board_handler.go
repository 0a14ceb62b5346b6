package handlers

import (
	"context"
	"log"
	"net/http"
	"sort"
	"time"

	"innerglow/backend/internal/middleware"
	"innerglow/backend/internal/models"
	"innerglow/backend/internal/store"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// BoardHandler serves the board directory and board CRUD, reconciling
// explicit board documents with implicit boards inferred from pin data.
type BoardHandler struct {
	boards   BoardStore
	pins     PinStore
	populate PinPopulator
}

// PinPopulator converts persisted pins to owner-populated views.
type PinPopulator interface {
	Populate(ctx context.Context, list []models.Pin) ([]models.PinView, error)
}

func NewBoardHandler(boards BoardStore, pinStore PinStore, populate PinPopulator) *BoardHandler {
	return &BoardHandler{boards: boards, pins: pinStore, populate: populate}
}

// PublicBoards lists distinct board names on publicly visible pins.
func (h *BoardHandler) PublicBoards(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	names, err := h.pins.DistinctPublicBoardNames(ctx)
	if err != nil {
		log.Printf("[BoardHandler] public boards failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch boards"})
		return
	}
	sort.Strings(names)
	c.JSON(http.StatusOK, gin.H{"boards": names})
}

// UserBoards merges the caller's explicit boards with implicit ones inferred
// from pin board names, deduplicated by name. Each entry carries a cover from
// the board's most recent pin.
func (h *BoardHandler) UserBoards(c *gin.Context) {
	user := middleware.ForContext(c.Request.Context())
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	explicit, err := h.boards.ListByOwner(ctx, user.ID)
	if err != nil {
		log.Printf("[BoardHandler] list boards failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch boards"})
		return
	}
	pinNames, err := h.pins.BoardNamesForOwner(ctx, user.ID)
	if err != nil {
		log.Printf("[BoardHandler] board names failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch boards"})
		return
	}

	views := make([]models.BoardView, 0, len(explicit)+len(pinNames))
	seen := make(map[string]bool, len(explicit))
	for i := range explicit {
		seen[explicit[i].Name] = true
		views = append(views, explicit[i].View())
	}
	for _, name := range pinNames {
		if seen[name] {
			continue
		}
		seen[name] = true
		views = append(views, models.BoardView{
			ID:       models.ImplicitBoardID(name),
			Name:     name,
			Implicit: true,
		})
	}

	for i := range views {
		h.annotate(ctx, store.OwnerVisibility(user.ID), &views[i])
	}
	sort.Slice(views, func(i, j int) bool { return views[i].Name < views[j].Name })
	c.JSON(http.StatusOK, views)
}

// annotate fills the pin count and cover under the requester's visibility, so
// a private or saved pin never becomes another viewer's cover.
func (h *BoardHandler) annotate(ctx context.Context, visibility store.VisibilityPolicy, view *models.BoardView) {
	if count, err := h.pins.CountForBoardName(ctx, visibility, view.Name); err == nil {
		view.PinCount = int(count)
	}
	cover, err := h.pins.LatestForBoardName(ctx, visibility, view.Name)
	if err == nil && len(cover.Images) > 0 {
		img := cover.Images[0]
		view.Cover = &img
	}
}

// BoardDetail returns a board and its pins. Accepts the implicit-<name>
// synthetic id as a read-only projection of the caller's own pins.
func (h *BoardHandler) BoardDetail(c *gin.Context) {
	ref, err := models.ParseBoardRef(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID"})
		return
	}
	user := middleware.ForContext(c.Request.Context())
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	switch ref.Kind {
	case models.BoardRefImplicit:
		view := models.BoardView{
			ID:       models.ImplicitBoardID(ref.Name),
			Name:     ref.Name,
			Implicit: true,
		}
		h.annotate(ctx, store.OwnerVisibility(user.ID), &view)
		list, err := h.pins.Query(ctx, store.PinFilter{
			Visibility: store.OwnerVisibility(user.ID),
			Board:      ref.Name,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch board"})
			return
		}
		h.respondDetail(c, ctx, view, list)
	default:
		board, err := h.boards.FindByIDAny(ctx, ref.ObjectID)
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch board"})
			return
		}
		// A private board reads as absent to anyone but its owner.
		if board.IsPrivate && board.UserID != user.ID {
			c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
			return
		}

		visibility := store.OwnerPublicVisibility(board.UserID)
		if board.UserID == user.ID {
			visibility = store.OwnerVisibility(user.ID)
		}
		list, err := h.pins.Query(ctx, store.PinFilter{
			Visibility: visibility,
			BoardID:    board.ID.Hex(),
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch board"})
			return
		}
		view := board.View()
		h.annotate(ctx, visibility, &view)
		h.respondDetail(c, ctx, view, list)
	}
}

func (h *BoardHandler) respondDetail(c *gin.Context, ctx context.Context, view models.BoardView, list []models.Pin) {
	pinViews, err := h.populate.Populate(ctx, list)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch board"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"board": view, "pins": pinViews})
}

// UpdateBoardPayload defines the expected JSON for updating a board
type UpdateBoardPayload struct {
	Name        string `json:"name"`
	Description *string `json:"description"`
	IsPrivate   *bool  `json:"isPrivate"`
}

// UpdateBoard renames a board or changes its privacy. Updating an implicit
// board materializes it: the document is created for the first time with the
// requested attributes, never "updated".
func (h *BoardHandler) UpdateBoard(c *gin.Context) {
	ref, err := models.ParseBoardRef(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID"})
		return
	}
	var payload UpdateBoardPayload
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

	switch ref.Kind {
	case models.BoardRefImplicit:
		board := &models.Board{
			UserID: user.ID,
			Name:   ref.Name,
		}
		if payload.Name != "" {
			board.Name = payload.Name
		}
		if payload.IsPrivate != nil {
			board.IsPrivate = *payload.IsPrivate
		}
		if payload.Description != nil {
			board.Description = *payload.Description
		}
		if err := h.boards.Insert(ctx, board); err == store.ErrDuplicate {
			c.JSON(http.StatusConflict, gin.H{"error": "A board with that name already exists"})
			return
		} else if err != nil {
			log.Printf("[BoardHandler] materialize failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update board"})
			return
		}
		c.JSON(http.StatusOK, board)
	default:
		set := bson.M{}
		if payload.Name != "" {
			set["name"] = payload.Name
		}
		if payload.IsPrivate != nil {
			set["isPrivate"] = *payload.IsPrivate
		}
		if payload.Description != nil {
			set["description"] = *payload.Description
		}
		if len(set) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
			return
		}
		err := h.boards.Update(ctx, ref.ObjectID, user.ID, set)
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Board not found or you don't have permission"})
			return
		}
		if err == store.ErrDuplicate {
			c.JSON(http.StatusConflict, gin.H{"error": "A board with that name already exists"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update board"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Board updated successfully"})
	}
}

// DeleteBoard removes an explicit board and cascades to pins linked by
// boardId. Pins carrying only the board name survive; legacy pins are never
// auto-deleted. Implicit ids have no document to delete and read as 404.
func (h *BoardHandler) DeleteBoard(c *gin.Context) {
	ref, err := models.ParseBoardRef(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID"})
		return
	}
	user := middleware.ForContext(c.Request.Context())
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	if ref.Kind == models.BoardRefImplicit {
		c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if err := h.boards.Delete(ctx, ref.ObjectID, user.ID); err == store.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Board not found or you don't have permission"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete board"})
		return
	}

	deleted, err := h.pins.DeleteByBoardID(ctx, ref.ObjectID.Hex(), user.ID)
	if err != nil {
		log.Printf("[BoardHandler] cascade delete failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Board deleted but its pins could not be removed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Board deleted successfully", "deletedPins": deleted})
}
