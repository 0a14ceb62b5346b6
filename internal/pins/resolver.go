// Package pins holds the reconciliation logic that unifies owned, saved, and
// transient external pins into consistent read and write views.
package pins

import (
	"context"
	"errors"

	"innerglow/backend/internal/models"
	"innerglow/backend/internal/store"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrMissingMirrorData is reported when a write targets an unmirrored
// external pin and the caller supplied no payload to build the local copy
// from. The server does not re-fetch from the provider on write paths.
var ErrMissingMirrorData = errors.New("missing mirror data for external pin")

type ResolutionKind int

const (
	// ResolvedPersisted: the ref names a pin document that already exists.
	ResolvedPersisted ResolutionKind = iota
	// ResolvedNeedsMirror: the ref is external and has no local mirror yet.
	// Writes must materialize before proceeding; reads may consult the
	// provider live.
	ResolvedNeedsMirror
	// ResolvedNotFound: a local ref that matches nothing.
	ResolvedNotFound
)

// Resolution is the outcome of classifying a pin reference against storage.
type Resolution struct {
	Kind       ResolutionKind
	Pin        *models.Pin
	ExternalID string
}

// MirrorPayload carries what the client last saw of an external pin, enough
// to create the durable local copy.
type MirrorPayload struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Images      []models.Image `json:"images"`
	Board       string         `json:"board"`
}

// MirrorStore is the slice of the pin store the resolver needs.
type MirrorStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Pin, error)
	FindByUnsplashID(ctx context.Context, unsplashID string) (*models.Pin, error)
	Insert(ctx context.Context, pin *models.Pin) error
}

// Resolver classifies pin references and materializes mirrors on demand.
// Resolution is storage-only; read paths that want live provider data follow
// the NeedsMirror branch with a gateway lookup themselves.
type Resolver struct {
	store MirrorStore
}

func NewResolver(store MirrorStore) *Resolver {
	return &Resolver{store: store}
}

// Resolve classifies a reference. Local refs are Persisted or NotFound;
// external refs are Persisted when a mirror exists and NeedsMirror otherwise.
func (r *Resolver) Resolve(ctx context.Context, ref models.PinRef) (Resolution, error) {
	switch ref.Kind {
	case models.PinRefExternal:
		pin, err := r.store.FindByUnsplashID(ctx, ref.ExternalID)
		if err == nil {
			return Resolution{Kind: ResolvedPersisted, Pin: pin}, nil
		}
		if err != store.ErrNotFound {
			return Resolution{}, err
		}
		return Resolution{Kind: ResolvedNeedsMirror, ExternalID: ref.ExternalID}, nil
	default:
		pin, err := r.store.FindByID(ctx, ref.ObjectID)
		if err == nil {
			return Resolution{Kind: ResolvedPersisted, Pin: pin}, nil
		}
		if err != store.ErrNotFound {
			return Resolution{}, err
		}
		return Resolution{Kind: ResolvedNotFound}, nil
	}
}

// Materialize persists the local copy of an external pin on the NeedsMirror
// branch. The requesting user becomes the durable owner of the mirror; the
// copy is neither private nor a saved clone, so it surfaces in discovery.
func (r *Resolver) Materialize(ctx context.Context, userID, externalID string, payload *MirrorPayload) (*models.Pin, error) {
	// Another write may have mirrored it since resolution.
	if existing, err := r.store.FindByUnsplashID(ctx, externalID); err == nil {
		return existing, nil
	} else if err != store.ErrNotFound {
		return nil, err
	}

	if payload == nil || payload.Title == "" || len(payload.Images) == 0 {
		return nil, ErrMissingMirrorData
	}

	board := payload.Board
	if board == "" {
		board = "Inspiration"
	}

	pin := &models.Pin{
		UserID:      userID,
		Board:       board,
		Title:       payload.Title,
		Description: payload.Description,
		Images:      append([]models.Image(nil), payload.Images...),
		IsPrivate:   false,
		IsSaved:     false,
		UnsplashID:  externalID,
	}
	if err := r.store.Insert(ctx, pin); err != nil {
		return nil, err
	}
	return pin, nil
}
