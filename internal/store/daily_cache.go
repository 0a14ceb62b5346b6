package store

import (
	"context"
	"time"

	"innerglow/backend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// DailyCacheStore holds one value per (date, type) key, first writer wins.
type DailyCacheStore struct {
	coll *mongo.Collection
}

func NewDailyCacheStore(db *mongo.Database) *DailyCacheStore {
	return &DailyCacheStore{coll: db.Collection("daily_cache")}
}

func (s *DailyCacheStore) find(ctx context.Context, date, typ string) (string, error) {
	var entry models.DailyCacheEntry
	err := s.coll.FindOne(ctx, bson.M{"date": date, "type": typ}).Decode(&entry)
	if err == mongo.ErrNoDocuments {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return entry.Value, nil
}

// GetOrCreate returns the cached value for the day, producing and inserting it
// on a miss. Concurrent misses race on the unique (date, type) index; the
// loser re-reads the winner's value rather than surfacing the conflict.
func (s *DailyCacheStore) GetOrCreate(ctx context.Context, date, typ string, produce func(context.Context) (string, error)) (string, error) {
	value, err := s.find(ctx, date, typ)
	if err == nil {
		return value, nil
	}
	if err != ErrNotFound {
		return "", err
	}

	value, err = produce(ctx)
	if err != nil {
		return "", err
	}

	_, err = s.coll.InsertOne(ctx, models.DailyCacheEntry{
		Date:      date,
		Type:      typ,
		Value:     value,
		CreatedAt: time.Now(),
	})
	if err == nil {
		return value, nil
	}
	if !mongo.IsDuplicateKeyError(err) {
		return "", err
	}
	return s.find(ctx, date, typ)
}
