package pins_test

import (
	"context"
	"testing"
	"time"

	"innerglow/backend/internal/models"
	"innerglow/backend/internal/pins"
	"innerglow/backend/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MockQueryStore struct {
	mock.Mock
}

func (m *MockQueryStore) Query(ctx context.Context, filter store.PinFilter) ([]models.Pin, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]models.Pin), args.Error(1)
}

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Search(ctx context.Context, query string, page, pageSize int) ([]models.PinView, error) {
	args := m.Called(ctx, query, page, pageSize)
	views := args.Get(0)
	if views == nil {
		return nil, args.Error(1)
	}
	return views.([]models.PinView), args.Error(1)
}

type MockOwnerDirectory struct {
	mock.Mock
}

func (m *MockOwnerDirectory) FindMany(ctx context.Context, ids []string) (map[string]models.User, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(map[string]models.User), args.Error(1)
}

func localPin(title, owner string) models.Pin {
	return models.Pin{
		ID:        primitive.NewObjectID(),
		UserID:    owner,
		Board:     "Inspiration",
		Title:     title,
		Images:    []models.Image{{URL: "https://img/" + title}},
		CreatedAt: time.Now(),
	}
}

func externalView(id, title string) models.PinView {
	return models.PinView{
		ID:       models.ExternalPinID(id),
		Title:    title,
		Images:   []models.Image{{URL: "https://unsplash/" + id}},
		External: true,
	}
}

func TestSearch_EmptyQueryShortCircuits(t *testing.T) {
	mockStore := new(MockQueryStore)
	mockGateway := new(MockGateway)
	mockUsers := new(MockOwnerDirectory)
	composer := pins.NewComposer(mockStore, mockGateway, mockUsers, nil)

	results, err := composer.Search(context.Background(), "")

	assert.NoError(t, err)
	assert.Empty(t, results)
	mockStore.AssertNotCalled(t, "Query")
	mockGateway.AssertNotCalled(t, "Search")
}

func TestSearch_LocalFirstThenExternal(t *testing.T) {
	mockStore := new(MockQueryStore)
	mockGateway := new(MockGateway)
	mockUsers := new(MockOwnerDirectory)
	composer := pins.NewComposer(mockStore, mockGateway, mockUsers, nil)

	local := localPin("sunset ridge", "user-1")
	mockStore.On("Query", mock.Anything, mock.Anything).Return([]models.Pin{local}, nil)
	mockUsers.On("FindMany", mock.Anything, []string{"user-1"}).
		Return(map[string]models.User{"user-1": {ID: "user-1", Name: "Ivy"}}, nil)
	mockGateway.On("Search", mock.Anything, "sunset", 1, mock.Anything).
		Return([]models.PinView{externalView("e1", "sunset beach")}, nil)

	results, err := composer.Search(context.Background(), "sunset")

	assert.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, local.ID.Hex(), results[0].ID)
	assert.Equal(t, "Ivy", results[0].Owner.Name)
	assert.True(t, results[1].External)
}

func TestSearch_GatewayUnavailableDegradesToLocal(t *testing.T) {
	mockStore := new(MockQueryStore)
	mockGateway := new(MockGateway)
	mockUsers := new(MockOwnerDirectory)
	composer := pins.NewComposer(mockStore, mockGateway, mockUsers, nil)

	local := localPin("sunset ridge", "user-1")
	mockStore.On("Query", mock.Anything, mock.Anything).Return([]models.Pin{local}, nil)
	mockUsers.On("FindMany", mock.Anything, mock.Anything).
		Return(map[string]models.User{}, nil)
	mockGateway.On("Search", mock.Anything, "sunset", 1, mock.Anything).
		Return(nil, assert.AnError)

	results, err := composer.Search(context.Background(), "sunset")

	assert.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestDiscovery_MergesAndKeepsMembership(t *testing.T) {
	mockStore := new(MockQueryStore)
	mockGateway := new(MockGateway)
	mockUsers := new(MockOwnerDirectory)
	composer := pins.NewComposer(mockStore, mockGateway, mockUsers, nil)

	a := localPin("a", "user-1")
	b := localPin("b", "user-1")
	mockStore.On("Query", mock.Anything, mock.MatchedBy(func(f store.PinFilter) bool {
		// Discovery must run under the public policy.
		return f.Visibility.OwnerScope == "" && !f.Visibility.IncludePrivate && !f.Visibility.IncludeSaved
	})).Return([]models.Pin{a, b}, nil)
	mockUsers.On("FindMany", mock.Anything, mock.Anything).
		Return(map[string]models.User{}, nil)
	mockGateway.On("Search", mock.Anything, mock.Anything, 1, mock.Anything).
		Return([]models.PinView{externalView("e1", "x"), externalView("e2", "y")}, nil)

	feed, err := composer.Discovery(context.Background())

	assert.NoError(t, err)
	assert.Len(t, feed, 4)
	ids := make(map[string]bool, len(feed))
	for _, v := range feed {
		ids[v.ID] = true
	}
	assert.True(t, ids[a.ID.Hex()])
	assert.True(t, ids[b.ID.Hex()])
	assert.True(t, ids[models.ExternalPinID("e1")])
	assert.True(t, ids[models.ExternalPinID("e2")])
}

func TestDedupe_KeepsFirstOccurrence(t *testing.T) {
	mirror := models.PinView{ID: "abc123", Title: "local mirror"}
	stale := models.PinView{ID: "abc123", Title: "stale external", External: true}
	other := models.PinView{ID: "def456", Title: "other"}

	out := pins.Dedupe([]models.PinView{mirror, other, stale})

	assert.Len(t, out, 2)
	assert.Equal(t, "local mirror", out[0].Title)
	assert.Equal(t, "def456", out[1].ID)
}

func TestDedupe_MirrorCollapsesStaleExternalCopy(t *testing.T) {
	// A mirror's wire id is its hex object id, but it shares the external
	// identity with the provider copy of the same photo.
	mirror := models.PinView{
		ID:         primitive.NewObjectID().Hex(),
		Title:      "local mirror",
		UnsplashID: "ph123",
	}
	stale := models.PinView{
		ID:         "unsplash-ph123",
		Title:      "stale external",
		UnsplashID: "ph123",
		External:   true,
	}
	unrelated := models.PinView{ID: "unsplash-ph999", UnsplashID: "ph999", External: true}

	out := pins.Dedupe([]models.PinView{mirror, stale, unrelated})

	assert.Len(t, out, 2)
	assert.Equal(t, "local mirror", out[0].Title)
	assert.Equal(t, "unsplash-ph999", out[1].ID)
}
