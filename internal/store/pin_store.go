package store

import (
	"context"
	"time"

	"innerglow/backend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PinStore is the CRUD and query surface over the pins collection.
type PinStore struct {
	coll *mongo.Collection
}

func NewPinStore(db *mongo.Database) *PinStore {
	return &PinStore{coll: db.Collection("pins")}
}

func (s *PinStore) Insert(ctx context.Context, pin *models.Pin) error {
	if pin.ID.IsZero() {
		pin.ID = primitive.NewObjectID()
	}
	if pin.CreatedAt.IsZero() {
		pin.CreatedAt = time.Now()
	}
	if pin.Comments == nil {
		pin.Comments = make([]models.Comment, 0)
	}
	_, err := s.coll.InsertOne(ctx, pin)
	return err
}

func (s *PinStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Pin, error) {
	var pin models.Pin
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&pin)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &pin, nil
}

// FindByUnsplashID locates the local mirror of an external pin, if one exists.
func (s *PinStore) FindByUnsplashID(ctx context.Context, unsplashID string) (*models.Pin, error) {
	var pin models.Pin
	err := s.coll.FindOne(ctx, bson.M{"unsplashId": unsplashID}).Decode(&pin)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &pin, nil
}

// Query returns pins matching the filter, newest first.
func (s *PinStore) Query(ctx context.Context, filter PinFilter) ([]models.Pin, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if filter.Limit > 0 {
		opts.SetLimit(filter.Limit)
	}
	cursor, err := s.coll.Find(ctx, filter.Query(), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var pins []models.Pin
	if err = cursor.All(ctx, &pins); err != nil {
		return nil, err
	}
	if pins == nil {
		pins = make([]models.Pin, 0)
	}
	return pins, nil
}

// DeleteManyOwned removes the given pins, restricted to those the owner
// actually owns. Foreign ids simply do not match; the returned count is what
// was removed.
func (s *PinStore) DeleteManyOwned(ctx context.Context, ids []primitive.ObjectID, ownerID string) (int64, error) {
	result, err := s.coll.DeleteMany(ctx, bson.M{
		"_id":    bson.M{"$in": ids},
		"userId": ownerID,
	})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// DeleteByBoardID removes every pin linked to the board by id. Pins carrying
// the board name without a boardId are left behind on purpose.
func (s *PinStore) DeleteByBoardID(ctx context.Context, boardID string, ownerID string) (int64, error) {
	result, err := s.coll.DeleteMany(ctx, bson.M{"boardId": boardID, "userId": ownerID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// AppendComment pushes a comment and returns the updated pin.
func (s *PinStore) AppendComment(ctx context.Context, id primitive.ObjectID, comment models.Comment) (*models.Pin, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var pin models.Pin
	err := s.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$push": bson.M{"comments": comment}},
		opts,
	).Decode(&pin)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &pin, nil
}

// DistinctPublicBoardNames lists board names appearing on publicly visible
// pins, for the anonymous board directory.
func (s *PinStore) DistinctPublicBoardNames(ctx context.Context) ([]string, error) {
	values, err := s.coll.Distinct(ctx, "board", PublicVisibility().Filter())
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(values))
	for _, v := range values {
		if name, ok := v.(string); ok && name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

// BoardNamesForOwner lists the distinct board names on a user's pins,
// including boards that only exist implicitly.
func (s *PinStore) BoardNamesForOwner(ctx context.Context, ownerID string) ([]string, error) {
	values, err := s.coll.Distinct(ctx, "board", bson.M{"userId": ownerID})
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(values))
	for _, v := range values {
		if name, ok := v.(string); ok && name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

// LatestForBoardName returns the most recently created pin on a board, used as
// the board cover. The visibility policy decides whether private and saved
// pins may serve as covers. ErrNotFound when the board has no visible pins.
func (s *PinStore) LatestForBoardName(ctx context.Context, visibility VisibilityPolicy, board string) (*models.Pin, error) {
	filter := visibility.Filter()
	filter["board"] = board
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	var pin models.Pin
	err := s.coll.FindOne(ctx, filter, opts).Decode(&pin)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &pin, nil
}

// CountForBoardName counts the pins visible under the policy on a board name.
func (s *PinStore) CountForBoardName(ctx context.Context, visibility VisibilityPolicy, board string) (int64, error) {
	filter := visibility.Filter()
	filter["board"] = board
	return s.coll.CountDocuments(ctx, filter)
}
