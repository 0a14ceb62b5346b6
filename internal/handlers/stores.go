package handlers

import (
	"context"

	"innerglow/backend/internal/models"
	"innerglow/backend/internal/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Storage surfaces the handlers depend on. The mongo stores satisfy these;
// tests substitute mocks.

type PinStore interface {
	Insert(ctx context.Context, pin *models.Pin) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Pin, error)
	FindByUnsplashID(ctx context.Context, unsplashID string) (*models.Pin, error)
	Query(ctx context.Context, filter store.PinFilter) ([]models.Pin, error)
	DeleteManyOwned(ctx context.Context, ids []primitive.ObjectID, ownerID string) (int64, error)
	DeleteByBoardID(ctx context.Context, boardID string, ownerID string) (int64, error)
	AppendComment(ctx context.Context, id primitive.ObjectID, comment models.Comment) (*models.Pin, error)
	DistinctPublicBoardNames(ctx context.Context) ([]string, error)
	BoardNamesForOwner(ctx context.Context, ownerID string) ([]string, error)
	LatestForBoardName(ctx context.Context, visibility store.VisibilityPolicy, board string) (*models.Pin, error)
	CountForBoardName(ctx context.Context, visibility store.VisibilityPolicy, board string) (int64, error)
}

type BoardStore interface {
	Insert(ctx context.Context, board *models.Board) error
	FindByID(ctx context.Context, id primitive.ObjectID, ownerID string) (*models.Board, error)
	FindByIDAny(ctx context.Context, id primitive.ObjectID) (*models.Board, error)
	FindByOwnerAndName(ctx context.Context, ownerID, name string) (*models.Board, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Board, error)
	Update(ctx context.Context, id primitive.ObjectID, ownerID string, set bson.M) error
	Delete(ctx context.Context, id primitive.ObjectID, ownerID string) error
	ResolveOrCreate(ctx context.Context, ownerID, name string, isPrivate bool) (*models.Board, error)
}

type UserDirectory interface {
	Upsert(ctx context.Context, user models.User) (*models.User, error)
	FindMany(ctx context.Context, ids []string) (map[string]models.User, error)
}

type Gateway interface {
	Search(ctx context.Context, query string, page, pageSize int) ([]models.PinView, error)
	GetByID(ctx context.Context, externalID string) (*models.PinView, error)
}
