package pins_test

import (
	"context"
	"testing"

	"innerglow/backend/internal/models"
	"innerglow/backend/internal/pins"
	"innerglow/backend/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MockMirrorStore struct {
	mock.Mock
}

func (m *MockMirrorStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Pin, error) {
	args := m.Called(ctx, id)
	pin := args.Get(0)
	if pin == nil {
		return nil, args.Error(1)
	}
	return pin.(*models.Pin), args.Error(1)
}

func (m *MockMirrorStore) FindByUnsplashID(ctx context.Context, unsplashID string) (*models.Pin, error) {
	args := m.Called(ctx, unsplashID)
	pin := args.Get(0)
	if pin == nil {
		return nil, args.Error(1)
	}
	return pin.(*models.Pin), args.Error(1)
}

func (m *MockMirrorStore) Insert(ctx context.Context, pin *models.Pin) error {
	args := m.Called(ctx, pin)
	pin.ID = primitive.NewObjectID()
	return args.Error(0)
}

func mustRef(t *testing.T, id string) models.PinRef {
	ref, err := models.ParsePinRef(id)
	assert.NoError(t, err)
	return ref
}

func TestResolve_LocalPersisted(t *testing.T) {
	mockStore := new(MockMirrorStore)
	resolver := pins.NewResolver(mockStore)

	oid := primitive.NewObjectID()
	pin := &models.Pin{ID: oid, Title: "Morning walk"}
	mockStore.On("FindByID", mock.Anything, oid).Return(pin, nil)

	res, err := resolver.Resolve(context.Background(), mustRef(t, oid.Hex()))

	assert.NoError(t, err)
	assert.Equal(t, pins.ResolvedPersisted, res.Kind)
	assert.Equal(t, pin, res.Pin)
}

func TestResolve_LocalNotFound(t *testing.T) {
	mockStore := new(MockMirrorStore)
	resolver := pins.NewResolver(mockStore)

	oid := primitive.NewObjectID()
	mockStore.On("FindByID", mock.Anything, oid).Return(nil, store.ErrNotFound)

	res, err := resolver.Resolve(context.Background(), mustRef(t, oid.Hex()))

	assert.NoError(t, err)
	assert.Equal(t, pins.ResolvedNotFound, res.Kind)
}

func TestResolve_ExternalWithMirror(t *testing.T) {
	mockStore := new(MockMirrorStore)
	resolver := pins.NewResolver(mockStore)

	mirror := &models.Pin{ID: primitive.NewObjectID(), UnsplashID: "abc"}
	mockStore.On("FindByUnsplashID", mock.Anything, "abc").Return(mirror, nil)

	res, err := resolver.Resolve(context.Background(), mustRef(t, "unsplash-abc"))

	assert.NoError(t, err)
	assert.Equal(t, pins.ResolvedPersisted, res.Kind)
	assert.Equal(t, mirror, res.Pin)
}

func TestResolve_ExternalNeedsMirror(t *testing.T) {
	mockStore := new(MockMirrorStore)
	resolver := pins.NewResolver(mockStore)

	mockStore.On("FindByUnsplashID", mock.Anything, "abc").Return(nil, store.ErrNotFound)

	res, err := resolver.Resolve(context.Background(), mustRef(t, "unsplash-abc"))

	assert.NoError(t, err)
	assert.Equal(t, pins.ResolvedNeedsMirror, res.Kind)
	assert.Equal(t, "abc", res.ExternalID)
}

func TestMaterialize_CreatesMirrorOnce(t *testing.T) {
	mockStore := new(MockMirrorStore)
	resolver := pins.NewResolver(mockStore)

	mockStore.On("FindByUnsplashID", mock.Anything, "abc").Return(nil, store.ErrNotFound)
	mockStore.On("Insert", mock.Anything, mock.AnythingOfType("*models.Pin")).Return(nil)

	payload := &pins.MirrorPayload{
		Title:  "Forest light",
		Images: []models.Image{{URL: "https://img/x", Width: 800, Height: 600}},
		Board:  "Nature",
	}
	pin, err := resolver.Materialize(context.Background(), "user-1", "abc", payload)

	assert.NoError(t, err)
	assert.Equal(t, "user-1", pin.UserID)
	assert.Equal(t, "abc", pin.UnsplashID)
	assert.False(t, pin.IsSaved)
	assert.False(t, pin.IsPrivate)
	assert.Equal(t, "Nature", pin.Board)
	mockStore.AssertNumberOfCalls(t, "Insert", 1)
}

func TestMaterialize_ReusesExistingMirror(t *testing.T) {
	mockStore := new(MockMirrorStore)
	resolver := pins.NewResolver(mockStore)

	existing := &models.Pin{ID: primitive.NewObjectID(), UnsplashID: "abc"}
	mockStore.On("FindByUnsplashID", mock.Anything, "abc").Return(existing, nil)

	pin, err := resolver.Materialize(context.Background(), "user-2", "abc", nil)

	assert.NoError(t, err)
	assert.Equal(t, existing, pin)
	mockStore.AssertNotCalled(t, "Insert")
}

func TestMaterialize_MissingPayload(t *testing.T) {
	mockStore := new(MockMirrorStore)
	resolver := pins.NewResolver(mockStore)

	mockStore.On("FindByUnsplashID", mock.Anything, "abc").Return(nil, store.ErrNotFound)

	_, err := resolver.Materialize(context.Background(), "user-1", "abc", nil)
	assert.ErrorIs(t, err, pins.ErrMissingMirrorData)

	// A payload without images is just as unusable.
	_, err = resolver.Materialize(context.Background(), "user-1", "abc", &pins.MirrorPayload{Title: "x"})
	assert.ErrorIs(t, err, pins.ErrMissingMirrorData)
}

func TestMaterialize_CopiesImagesByValue(t *testing.T) {
	mockStore := new(MockMirrorStore)
	resolver := pins.NewResolver(mockStore)

	mockStore.On("FindByUnsplashID", mock.Anything, "abc").Return(nil, store.ErrNotFound)
	mockStore.On("Insert", mock.Anything, mock.Anything).Return(nil)

	images := []models.Image{{URL: "https://img/x"}}
	pin, err := resolver.Materialize(context.Background(), "user-1", "abc", &pins.MirrorPayload{
		Title:  "Forest light",
		Images: images,
	})
	assert.NoError(t, err)

	images[0].URL = "mutated"
	assert.Equal(t, "https://img/x", pin.Images[0].URL)
}
