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

// MoodStore persists mood check-ins.
type MoodStore struct {
	coll *mongo.Collection
}

func NewMoodStore(db *mongo.Database) *MoodStore {
	return &MoodStore{coll: db.Collection("moods")}
}

func (s *MoodStore) Insert(ctx context.Context, entry *models.MoodEntry) error {
	entry.ID = primitive.NewObjectID()
	entry.CreatedAt = time.Now()
	_, err := s.coll.InsertOne(ctx, entry)
	return err
}

func (s *MoodStore) ListByOwner(ctx context.Context, ownerID string) ([]models.MoodEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.coll.Find(ctx, bson.M{"userId": ownerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []models.MoodEntry
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = make([]models.MoodEntry, 0)
	}
	return entries, nil
}

func (s *MoodStore) Delete(ctx context.Context, id primitive.ObjectID, ownerID string) error {
	result, err := s.coll.DeleteOne(ctx, bson.M{"_id": id, "userId": ownerID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// JournalStore persists journal entries.
type JournalStore struct {
	coll *mongo.Collection
}

func NewJournalStore(db *mongo.Database) *JournalStore {
	return &JournalStore{coll: db.Collection("journals")}
}

func (s *JournalStore) Insert(ctx context.Context, entry *models.JournalEntry) error {
	entry.ID = primitive.NewObjectID()
	now := time.Now()
	entry.CreatedAt = now
	entry.UpdatedAt = now
	_, err := s.coll.InsertOne(ctx, entry)
	return err
}

func (s *JournalStore) ListByOwner(ctx context.Context, ownerID string) ([]models.JournalEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.coll.Find(ctx, bson.M{"userId": ownerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []models.JournalEntry
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = make([]models.JournalEntry, 0)
	}
	return entries, nil
}

func (s *JournalStore) Update(ctx context.Context, id primitive.ObjectID, ownerID string, set bson.M) error {
	set["updatedAt"] = time.Now()
	result, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": id, "userId": ownerID},
		bson.M{"$set": set},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *JournalStore) Delete(ctx context.Context, id primitive.ObjectID, ownerID string) error {
	result, err := s.coll.DeleteOne(ctx, bson.M{"_id": id, "userId": ownerID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// GratitudeStore persists gratitude lists.
type GratitudeStore struct {
	coll *mongo.Collection
}

func NewGratitudeStore(db *mongo.Database) *GratitudeStore {
	return &GratitudeStore{coll: db.Collection("gratitudes")}
}

func (s *GratitudeStore) Insert(ctx context.Context, entry *models.GratitudeEntry) error {
	entry.ID = primitive.NewObjectID()
	entry.CreatedAt = time.Now()
	_, err := s.coll.InsertOne(ctx, entry)
	return err
}

func (s *GratitudeStore) ListByOwner(ctx context.Context, ownerID string) ([]models.GratitudeEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.coll.Find(ctx, bson.M{"userId": ownerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []models.GratitudeEntry
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = make([]models.GratitudeEntry, 0)
	}
	return entries, nil
}

func (s *GratitudeStore) Delete(ctx context.Context, id primitive.ObjectID, ownerID string) error {
	result, err := s.coll.DeleteOne(ctx, bson.M{"_id": id, "userId": ownerID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// StreakStore keeps one streak document per user.
type StreakStore struct {
	coll *mongo.Collection
}

func NewStreakStore(db *mongo.Database) *StreakStore {
	return &StreakStore{coll: db.Collection("streaks")}
}

func (s *StreakStore) Get(ctx context.Context, userID string) (models.Streak, error) {
	var streak models.Streak
	err := s.coll.FindOne(ctx, bson.M{"_id": userID}).Decode(&streak)
	if err == mongo.ErrNoDocuments {
		return models.Streak{UserID: userID}, nil
	}
	if err != nil {
		return models.Streak{}, err
	}
	return streak, nil
}

func (s *StreakStore) Save(ctx context.Context, streak models.Streak) error {
	opts := options.Replace().SetUpsert(true)
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": streak.UserID}, streak, opts)
	return err
}
