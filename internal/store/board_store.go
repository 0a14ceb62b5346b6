package store

import (
	"context"
	"time"

	"innerglow/backend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// BoardStore persists explicit board documents. Implicit boards never reach
// this store; they are projected from pin data by the handlers.
type BoardStore struct {
	coll *mongo.Collection
}

func NewBoardStore(db *mongo.Database) *BoardStore {
	return &BoardStore{coll: db.Collection("boards")}
}

func (s *BoardStore) Insert(ctx context.Context, board *models.Board) error {
	if board.ID.IsZero() {
		board.ID = primitive.NewObjectID()
	}
	if board.CreatedAt.IsZero() {
		board.CreatedAt = time.Now()
	}
	_, err := s.coll.InsertOne(ctx, board)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

func (s *BoardStore) FindByID(ctx context.Context, id primitive.ObjectID, ownerID string) (*models.Board, error) {
	var board models.Board
	err := s.coll.FindOne(ctx, bson.M{"_id": id, "userId": ownerID}).Decode(&board)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &board, nil
}

// FindByIDAny looks a board up without an ownership constraint, for detail
// views of other users' public boards. Callers decide what a non-owner may
// see.
func (s *BoardStore) FindByIDAny(ctx context.Context, id primitive.ObjectID) (*models.Board, error) {
	var board models.Board
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&board)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &board, nil
}

func (s *BoardStore) FindByOwnerAndName(ctx context.Context, ownerID, name string) (*models.Board, error) {
	var board models.Board
	err := s.coll.FindOne(ctx, bson.M{"userId": ownerID, "name": name}).Decode(&board)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &board, nil
}

func (s *BoardStore) ListByOwner(ctx context.Context, ownerID string) ([]models.Board, error) {
	cursor, err := s.coll.Find(ctx, bson.M{"userId": ownerID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var boards []models.Board
	if err = cursor.All(ctx, &boards); err != nil {
		return nil, err
	}
	if boards == nil {
		boards = make([]models.Board, 0)
	}
	return boards, nil
}

// Update applies the given fields to an owned board. Renaming onto an existing
// name trips the unique index and surfaces as ErrDuplicate.
func (s *BoardStore) Update(ctx context.Context, id primitive.ObjectID, ownerID string, set bson.M) error {
	result, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": id, "userId": ownerID},
		bson.M{"$set": set},
	)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *BoardStore) Delete(ctx context.Context, id primitive.ObjectID, ownerID string) error {
	result, err := s.coll.DeleteOne(ctx, bson.M{"_id": id, "userId": ownerID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ResolveOrCreate finds a user's board by name, creating it when absent.
// Two requests may race on first creation; the unique (userId, name) index
// rejects the loser, which then re-reads the winner instead of failing.
func (s *BoardStore) ResolveOrCreate(ctx context.Context, ownerID, name string, isPrivate bool) (*models.Board, error) {
	board, err := s.FindByOwnerAndName(ctx, ownerID, name)
	if err == nil {
		return board, nil
	}
	if err != ErrNotFound {
		return nil, err
	}

	fresh := &models.Board{UserID: ownerID, Name: name, IsPrivate: isPrivate}
	err = s.Insert(ctx, fresh)
	if err == nil {
		return fresh, nil
	}
	if err != ErrDuplicate {
		return nil, err
	}
	// Lost the race; the winner's document exists now.
	return s.FindByOwnerAndName(ctx, ownerID, name)
}
