package handlers_test

import (
	"context"

	"innerglow/backend/internal/middleware"
	"innerglow/backend/internal/models"
	"innerglow/backend/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// withIdentity injects a verified identity the way the auth middleware does.
func withIdentity(user *middleware.AuthUser) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(middleware.WithUser(c.Request.Context(), user))
		c.Next()
	}
}

type MockPinStore struct {
	mock.Mock
}

func (m *MockPinStore) Insert(ctx context.Context, pin *models.Pin) error {
	args := m.Called(ctx, pin)
	return args.Error(0)
}

func (m *MockPinStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Pin, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Pin), args.Error(1)
}

func (m *MockPinStore) FindByUnsplashID(ctx context.Context, unsplashID string) (*models.Pin, error) {
	args := m.Called(ctx, unsplashID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Pin), args.Error(1)
}

func (m *MockPinStore) Query(ctx context.Context, filter store.PinFilter) ([]models.Pin, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Pin), args.Error(1)
}

func (m *MockPinStore) DeleteManyOwned(ctx context.Context, ids []primitive.ObjectID, ownerID string) (int64, error) {
	args := m.Called(ctx, ids, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPinStore) DeleteByBoardID(ctx context.Context, boardID string, ownerID string) (int64, error) {
	args := m.Called(ctx, boardID, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPinStore) AppendComment(ctx context.Context, id primitive.ObjectID, comment models.Comment) (*models.Pin, error) {
	args := m.Called(ctx, id, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Pin), args.Error(1)
}

func (m *MockPinStore) DistinctPublicBoardNames(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockPinStore) BoardNamesForOwner(ctx context.Context, ownerID string) ([]string, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockPinStore) LatestForBoardName(ctx context.Context, visibility store.VisibilityPolicy, board string) (*models.Pin, error) {
	args := m.Called(ctx, visibility, board)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Pin), args.Error(1)
}

func (m *MockPinStore) CountForBoardName(ctx context.Context, visibility store.VisibilityPolicy, board string) (int64, error) {
	args := m.Called(ctx, visibility, board)
	return args.Get(0).(int64), args.Error(1)
}

type MockBoardStore struct {
	mock.Mock
}

func (m *MockBoardStore) Insert(ctx context.Context, board *models.Board) error {
	args := m.Called(ctx, board)
	return args.Error(0)
}

func (m *MockBoardStore) FindByID(ctx context.Context, id primitive.ObjectID, ownerID string) (*models.Board, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Board), args.Error(1)
}

func (m *MockBoardStore) FindByIDAny(ctx context.Context, id primitive.ObjectID) (*models.Board, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Board), args.Error(1)
}

func (m *MockBoardStore) FindByOwnerAndName(ctx context.Context, ownerID, name string) (*models.Board, error) {
	args := m.Called(ctx, ownerID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Board), args.Error(1)
}

func (m *MockBoardStore) ListByOwner(ctx context.Context, ownerID string) ([]models.Board, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Board), args.Error(1)
}

func (m *MockBoardStore) Update(ctx context.Context, id primitive.ObjectID, ownerID string, set bson.M) error {
	args := m.Called(ctx, id, ownerID, set)
	return args.Error(0)
}

func (m *MockBoardStore) Delete(ctx context.Context, id primitive.ObjectID, ownerID string) error {
	args := m.Called(ctx, id, ownerID)
	return args.Error(0)
}

func (m *MockBoardStore) ResolveOrCreate(ctx context.Context, ownerID, name string, isPrivate bool) (*models.Board, error) {
	args := m.Called(ctx, ownerID, name, isPrivate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Board), args.Error(1)
}

type MockUserDirectory struct {
	mock.Mock
}

func (m *MockUserDirectory) Upsert(ctx context.Context, user models.User) (*models.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserDirectory) FindMany(ctx context.Context, ids []string) (map[string]models.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]models.User), args.Error(1)
}

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Search(ctx context.Context, query string, page, pageSize int) ([]models.PinView, error) {
	args := m.Called(ctx, query, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PinView), args.Error(1)
}

func (m *MockGateway) GetByID(ctx context.Context, externalID string) (*models.PinView, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PinView), args.Error(1)
}
