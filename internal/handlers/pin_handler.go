package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"innerglow/backend/internal/middleware"
	"innerglow/backend/internal/models"
	"innerglow/backend/internal/pins"
	"innerglow/backend/internal/services"
	"innerglow/backend/internal/store"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PinHandler serves pin CRUD, the save/clone flow, and comment-append with
// mirror-on-write.
type PinHandler struct {
	pins     PinStore
	boards   BoardStore
	users    UserDirectory
	gateway  Gateway
	resolver *pins.Resolver
	composer *pins.Composer
}

func NewPinHandler(pinStore PinStore, boardStore BoardStore, users UserDirectory, gateway Gateway, resolver *pins.Resolver, composer *pins.Composer) *PinHandler {
	return &PinHandler{
		pins:     pinStore,
		boards:   boardStore,
		users:    users,
		gateway:  gateway,
		resolver: resolver,
		composer: composer,
	}
}

// CreatePinPayload defines the expected JSON for creating a pin
type CreatePinPayload struct {
	Title       string         `json:"title" binding:"required"`
	Description string         `json:"description"`
	Board       string         `json:"board" binding:"required"`
	BoardID     string         `json:"boardId"`
	Images      []models.Image `json:"images"`
	IsPrivate   bool           `json:"isPrivate"`
}

func (h *PinHandler) CreatePin(c *gin.Context) {
	var payload CreatePinPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload: " + err.Error()})
		return
	}
	user := middleware.ForContext(c.Request.Context())
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	pin := &models.Pin{
		UserID:      user.ID,
		Board:       payload.Board,
		BoardID:     payload.BoardID,
		Title:       payload.Title,
		Description: payload.Description,
		Images:      payload.Images,
		IsPrivate:   payload.IsPrivate,
	}
	if err := h.pins.Insert(ctx, pin); err != nil {
		log.Printf("[PinHandler] create failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create pin"})
		return
	}
	c.JSON(http.StatusCreated, pin)
}

// ListPins filters pins by board, owner, and free-text search. Without an
// owner scope the public visibility policy applies: no private pins, no saved
// clones. An owner scope returns everything that user created or saved.
func (h *PinHandler) ListPins(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	visibility := store.PublicVisibility()
	if owner := c.Query("userId"); owner != "" {
		visibility = store.OwnerVisibility(owner)
	}

	// board carries a name, boardId a document id; the two filters are
	// distinct so a name that happens to look like an id is never misfiled.
	filter := store.PinFilter{
		Visibility: visibility,
		Search:     c.Query("search"),
		Board:      c.Query("board"),
		BoardID:    c.Query("boardId"),
	}

	list, err := h.pins.Query(ctx, filter)
	if err != nil {
		log.Printf("[PinHandler] query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pins"})
		return
	}

	views, err := h.composer.Populate(ctx, list)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pins"})
		return
	}
	c.JSON(http.StatusOK, views)
}

// GetPin resolves a pin id: local document, then local mirror of an external
// id, then a live provider lookup. Only when all three miss is it a 404.
func (h *PinHandler) GetPin(c *gin.Context) {
	ref, err := models.ParsePinRef(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pin ID"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	resolution, err := h.resolver.Resolve(ctx, ref)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pin"})
		return
	}

	switch resolution.Kind {
	case pins.ResolvedPersisted:
		views, err := h.composer.Populate(ctx, []models.Pin{*resolution.Pin})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pin"})
			return
		}
		c.JSON(http.StatusOK, views[0])
	case pins.ResolvedNeedsMirror:
		view, err := h.gateway.GetByID(ctx, resolution.ExternalID)
		if err == services.ErrUnavailable {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Photo search is not available right now"})
			return
		}
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pin not found"})
			return
		}
		c.JSON(http.StatusOK, view)
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "Pin not found"})
	}
}

// DeleteBatchPayload defines the expected JSON for batch deletion
type DeleteBatchPayload struct {
	PinIDs []string `json:"pinIds" binding:"required"`
}

// DeleteBatch removes the caller's pins from the given set. Ids the caller
// does not own are silently excluded; the response carries the actual count.
func (h *PinHandler) DeleteBatch(c *gin.Context) {
	var payload DeleteBatchPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}
	user := middleware.ForContext(c.Request.Context())
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ids := make([]primitive.ObjectID, 0, len(payload.PinIDs))
	for _, raw := range payload.PinIDs {
		if oid, err := primitive.ObjectIDFromHex(raw); err == nil {
			ids = append(ids, oid)
		}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	deleted, err := h.pins.DeleteManyOwned(ctx, ids, user.ID)
	if err != nil {
		log.Printf("[PinHandler] batch delete failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete pins"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// SavePinPayload defines the expected JSON for saving a pin to a board
type SavePinPayload struct {
	BoardName      string `json:"boardName" binding:"required"`
	CreateNewBoard bool   `json:"createNewBoard"`
}

// SavePin clones a persisted pin into the caller's board. Saving twice
// creates two clones; there is no dedup-on-save.
func (h *PinHandler) SavePin(c *gin.Context) {
	ref, err := models.ParsePinRef(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pin ID"})
		return
	}
	var payload SavePinPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}
	user := middleware.ForContext(c.Request.Context())
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	resolution, err := h.resolver.Resolve(ctx, ref)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save pin"})
		return
	}
	if resolution.Kind != pins.ResolvedPersisted {
		// The save path expects a source that already resolved to a document.
		c.JSON(http.StatusNotFound, gin.H{"error": "Pin not found"})
		return
	}
	source := resolution.Pin

	boardID := ""
	if payload.CreateNewBoard {
		board, err := h.boards.ResolveOrCreate(ctx, user.ID, payload.BoardName, false)
		if err != nil {
			log.Printf("[PinHandler] board resolve failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save pin"})
			return
		}
		boardID = board.ID.Hex()
	} else {
		board, err := h.boards.FindByOwnerAndName(ctx, user.ID, payload.BoardName)
		if err == nil {
			boardID = board.ID.Hex()
		} else if err != store.ErrNotFound {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save pin"})
			return
		}
		// Absent board stays implicit: the clone links by name only.
	}

	clone := &models.Pin{
		UserID:         user.ID,
		OriginalAuthor: source.UserID,
		Board:          payload.BoardName,
		BoardID:        boardID,
		Title:          source.Title,
		Description:    source.Description,
		Images:         append([]models.Image(nil), source.Images...),
		IsPrivate:      false,
		IsSaved:        true,
		UnsplashID:     source.UnsplashID,
	}
	if err := h.pins.Insert(ctx, clone); err != nil {
		log.Printf("[PinHandler] save clone failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save pin"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Pin saved", "pinId": clone.ID.Hex()})
}

// CommentPayload defines the expected JSON for appending a comment. The
// unsplashData mirror payload is required when the target is an external pin
// with no local copy yet.
type CommentPayload struct {
	Text         string              `json:"text" binding:"required"`
	UnsplashData *pins.MirrorPayload `json:"unsplashData"`
}

// CommentView is a comment enriched with its author's profile.
type CommentView struct {
	UserID    string            `json:"userId"`
	Text      string            `json:"text"`
	CreatedAt time.Time         `json:"createdAt"`
	Author    *models.OwnerView `json:"author,omitempty"`
}

// CommentPin appends a comment, materializing a local mirror first when the
// target exists only at the provider.
func (h *PinHandler) CommentPin(c *gin.Context) {
	ref, err := models.ParsePinRef(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pin ID"})
		return
	}
	var payload CommentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Comment text is required"})
		return
	}
	user := middleware.ForContext(c.Request.Context())
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	resolution, err := h.resolver.Resolve(ctx, ref)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to comment"})
		return
	}

	var target *models.Pin
	switch resolution.Kind {
	case pins.ResolvedPersisted:
		target = resolution.Pin
	case pins.ResolvedNeedsMirror:
		target, err = h.resolver.Materialize(ctx, user.ID, resolution.ExternalID, payload.UnsplashData)
		if err == pins.ErrMissingMirrorData {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing mirror data for external pin"})
			return
		}
		if err != nil {
			log.Printf("[PinHandler] mirror failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to comment"})
			return
		}
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "Pin not found"})
		return
	}

	updated, err := h.pins.AppendComment(ctx, target.ID, models.Comment{
		UserID:    user.ID,
		Text:      payload.Text,
		CreatedAt: time.Now(),
	})
	if err != nil {
		log.Printf("[PinHandler] comment append failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to comment"})
		return
	}

	views, err := h.enrichComments(ctx, updated.Comments)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to comment"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"pinId": updated.ID.Hex(), "comments": views})
}

func (h *PinHandler) enrichComments(ctx context.Context, comments []models.Comment) ([]CommentView, error) {
	ids := make([]string, 0, len(comments))
	seen := make(map[string]bool, len(comments))
	for _, cm := range comments {
		if !seen[cm.UserID] {
			seen[cm.UserID] = true
			ids = append(ids, cm.UserID)
		}
	}
	authors, err := h.users.FindMany(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]CommentView, 0, len(comments))
	for _, cm := range comments {
		view := CommentView{UserID: cm.UserID, Text: cm.Text, CreatedAt: cm.CreatedAt}
		if u, ok := authors[cm.UserID]; ok {
			view.Author = u.Owner()
		}
		views = append(views, view)
	}
	return views, nil
}
