package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"innerglow/backend/internal/handlers"
	"innerglow/backend/internal/middleware"
	"innerglow/backend/internal/models"
	"innerglow/backend/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// stubPopulator skips owner enrichment; board tests care about board shape,
// not profiles.
type stubPopulator struct{}

func (stubPopulator) Populate(ctx context.Context, list []models.Pin) ([]models.PinView, error) {
	views := make([]models.PinView, 0, len(list))
	for i := range list {
		views = append(views, list[i].View(nil))
	}
	return views, nil
}

func boardTestRouter(pins *MockPinStore, boards *MockBoardStore, user *middleware.AuthUser) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handlers.NewBoardHandler(boards, pins, stubPopulator{})

	router := gin.New()
	group := router.Group("/", withIdentity(user))
	group.GET("/pins/boards", h.PublicBoards)
	group.GET("/pins/user-boards", h.UserBoards)
	group.GET("/pins/boards/:id", h.BoardDetail)
	group.PUT("/pins/boards/:id", h.UpdateBoard)
	group.DELETE("/pins/boards/:id", h.DeleteBoard)
	return router
}

func TestUserBoards_MergesExplicitAndImplicit(t *testing.T) {
	pins := new(MockPinStore)
	boards := new(MockBoardStore)
	user := &middleware.AuthUser{ID: "user-1", Name: "Maya"}

	travelID := primitive.NewObjectID()
	boards.On("ListByOwner", mock.Anything, "user-1").Return([]models.Board{
		{ID: travelID, UserID: "user-1", Name: "Travel"},
	}, nil)
	// One pin name matches the explicit board, one does not.
	pins.On("BoardNamesForOwner", mock.Anything, "user-1").Return([]string{"Travel", "Quotes"}, nil)
	pins.On("CountForBoardName", mock.Anything, store.OwnerVisibility("user-1"), mock.Anything).Return(int64(2), nil)
	pins.On("LatestForBoardName", mock.Anything, store.OwnerVisibility("user-1"), mock.Anything).Return(nil, store.ErrNotFound)

	router := boardTestRouter(pins, boards, user)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/pins/user-boards", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var views []models.BoardView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &views))
	require.Len(t, views, 2)

	// Sorted by name: Quotes before Travel.
	assert.Equal(t, "Quotes", views[0].Name)
	assert.True(t, views[0].Implicit)
	assert.Equal(t, "implicit-Quotes", views[0].ID)
	assert.Equal(t, "Travel", views[1].Name)
	assert.False(t, views[1].Implicit)
	assert.Equal(t, travelID.Hex(), views[1].ID)
	assert.Equal(t, 2, views[0].PinCount)
}

func TestBoardDetail_ImplicitProjectsOwnPins(t *testing.T) {
	pins := new(MockPinStore)
	boards := new(MockBoardStore)
	user := &middleware.AuthUser{ID: "user-1"}

	pins.On("CountForBoardName", mock.Anything, store.OwnerVisibility("user-1"), "Quotes").Return(int64(1), nil)
	pins.On("LatestForBoardName", mock.Anything, store.OwnerVisibility("user-1"), "Quotes").Return(nil, store.ErrNotFound)
	pins.On("Query", mock.Anything, mock.MatchedBy(func(f store.PinFilter) bool {
		return f.Board == "Quotes" && f.Visibility.OwnerScope == "user-1"
	})).Return([]models.Pin{
		{ID: primitive.NewObjectID(), UserID: "user-1", Board: "Quotes", Title: "Breathe", IsSaved: true},
	}, nil)

	router := boardTestRouter(pins, boards, user)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/pins/boards/implicit-Quotes", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "implicit-Quotes")
	assert.Contains(t, w.Body.String(), "Breathe")
	boards.AssertNotCalled(t, "FindByIDAny", mock.Anything, mock.Anything)
}

func TestBoardDetail_PrivateBoardHiddenFromNonOwner(t *testing.T) {
	pins := new(MockPinStore)
	boards := new(MockBoardStore)
	user := &middleware.AuthUser{ID: "viewer"}

	boardID := primitive.NewObjectID()
	boards.On("FindByIDAny", mock.Anything, boardID).Return(&models.Board{
		ID: boardID, UserID: "owner", Name: "Secrets", IsPrivate: true,
	}, nil)

	router := boardTestRouter(pins, boards, user)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/pins/boards/"+boardID.Hex(), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	pins.AssertNotCalled(t, "Query", mock.Anything, mock.Anything)
}

func TestBoardDetail_PublicBoardAppliesPublicVisibilityForNonOwner(t *testing.T) {
	pins := new(MockPinStore)
	boards := new(MockBoardStore)
	user := &middleware.AuthUser{ID: "viewer"}

	boardID := primitive.NewObjectID()
	boards.On("FindByIDAny", mock.Anything, boardID).Return(&models.Board{
		ID: boardID, UserID: "owner", Name: "Calm",
	}, nil)
	pins.On("CountForBoardName", mock.Anything, store.OwnerPublicVisibility("owner"), "Calm").Return(int64(0), nil)
	pins.On("LatestForBoardName", mock.Anything, store.OwnerPublicVisibility("owner"), "Calm").Return(nil, store.ErrNotFound)
	pins.On("Query", mock.Anything, mock.MatchedBy(func(f store.PinFilter) bool {
		return f.BoardID == boardID.Hex() && f.Visibility.OwnerScope == "owner" &&
			!f.Visibility.IncludePrivate && !f.Visibility.IncludeSaved
	})).Return([]models.Pin{}, nil)

	router := boardTestRouter(pins, boards, user)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/pins/boards/"+boardID.Hex(), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	pins.AssertExpectations(t)
}

func TestBoardDetail_CoverForNonOwnerSkipsHiddenPins(t *testing.T) {
	pins := new(MockPinStore)
	boards := new(MockBoardStore)
	user := &middleware.AuthUser{ID: "viewer"}

	boardID := primitive.NewObjectID()
	boards.On("FindByIDAny", mock.Anything, boardID).Return(&models.Board{
		ID: boardID, UserID: "owner", Name: "Calm",
	}, nil)
	// Count and cover must be computed under the non-owner's visibility: the
	// owner's latest pin is private, so the public cover is an older pin.
	pins.On("CountForBoardName", mock.Anything, store.OwnerPublicVisibility("owner"), "Calm").Return(int64(1), nil)
	pins.On("LatestForBoardName", mock.Anything, store.OwnerPublicVisibility("owner"), "Calm").Return(&models.Pin{
		UserID: "owner", Board: "Calm", Title: "Sunrise",
		Images: []models.Image{{URL: "https://img/public-cover"}},
	}, nil)
	pins.On("Query", mock.Anything, mock.Anything).Return([]models.Pin{}, nil)

	router := boardTestRouter(pins, boards, user)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/pins/boards/"+boardID.Hex(), nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "https://img/public-cover")
	assert.Contains(t, w.Body.String(), `"pinCount":1`)
	pins.AssertExpectations(t)
	pins.AssertNotCalled(t, "LatestForBoardName", mock.Anything, store.OwnerVisibility("owner"), mock.Anything)
}

func TestUpdateBoard_ImplicitMaterializesDocument(t *testing.T) {
	pins := new(MockPinStore)
	boards := new(MockBoardStore)
	user := &middleware.AuthUser{ID: "user-1"}

	boards.On("Insert", mock.Anything, mock.MatchedBy(func(b *models.Board) bool {
		return b.UserID == "user-1" && b.Name == "Quotes" && b.IsPrivate
	})).Return(nil)

	router := boardTestRouter(pins, boards, user)
	body, _ := json.Marshal(gin.H{"isPrivate": true})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPut, "/pins/boards/implicit-Quotes", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	boards.AssertExpectations(t)
	boards.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateBoard_ImplicitNameCollisionConflicts(t *testing.T) {
	pins := new(MockPinStore)
	boards := new(MockBoardStore)
	user := &middleware.AuthUser{ID: "user-1"}

	boards.On("Insert", mock.Anything, mock.Anything).Return(store.ErrDuplicate)

	router := boardTestRouter(pins, boards, user)
	body, _ := json.Marshal(gin.H{"name": "Travel"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPut, "/pins/boards/implicit-Quotes", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDeleteBoard_CascadesToLinkedPins(t *testing.T) {
	pins := new(MockPinStore)
	boards := new(MockBoardStore)
	user := &middleware.AuthUser{ID: "user-1"}

	boardID := primitive.NewObjectID()
	boards.On("Delete", mock.Anything, boardID, "user-1").Return(nil)
	pins.On("DeleteByBoardID", mock.Anything, boardID.Hex(), "user-1").Return(int64(3), nil)

	router := boardTestRouter(pins, boards, user)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/pins/boards/"+boardID.Hex(), nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"deletedPins":3`)
}

func TestDeleteBoard_ImplicitHasNoDocument(t *testing.T) {
	pins := new(MockPinStore)
	boards := new(MockBoardStore)
	user := &middleware.AuthUser{ID: "user-1"}

	router := boardTestRouter(pins, boards, user)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/pins/boards/implicit-Quotes", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	boards.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestPublicBoards_SortedNames(t *testing.T) {
	pins := new(MockPinStore)
	boards := new(MockBoardStore)

	pins.On("DistinctPublicBoardNames", mock.Anything).Return([]string{"Travel", "Calm"}, nil)

	router := boardTestRouter(pins, boards, &middleware.AuthUser{ID: "user-1"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/pins/boards", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"boards": ["Calm", "Travel"]}`, w.Body.String())
}
