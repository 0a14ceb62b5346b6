package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MoodEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"userId" json:"userId"`
	Mood      string             `bson:"mood" json:"mood"`
	Note      string             `bson:"note,omitempty" json:"note,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type JournalEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"userId" json:"userId"`
	Title     string             `bson:"title" json:"title"`
	Body      string             `bson:"body,omitempty" json:"body,omitempty"`
	Tags      []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type GratitudeEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"userId" json:"userId"`
	Items     []string           `bson:"items" json:"items"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Streak is one document per user. LastCheckIn is stored as a date string
// (YYYY-MM-DD) so day arithmetic is timezone-stable.
type Streak struct {
	UserID      string    `bson:"_id" json:"userId"`
	Current     int       `bson:"current" json:"current"`
	Longest     int       `bson:"longest" json:"longest"`
	LastCheckIn string    `bson:"lastCheckIn,omitempty" json:"lastCheckIn,omitempty"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// DateLayout is the day key used by streaks and the daily cache.
const DateLayout = "2006-01-02"

// Advance applies a check-in on the given day. Same-day check-ins are
// idempotent, a check-in the day after the last one extends the streak, and
// any longer gap resets it to 1. Longest tracks the high-water mark.
func (s Streak) Advance(today time.Time) Streak {
	day := today.Format(DateLayout)
	if s.LastCheckIn == day {
		return s
	}
	yesterday := today.AddDate(0, 0, -1).Format(DateLayout)
	if s.LastCheckIn == yesterday {
		s.Current++
	} else {
		s.Current = 1
	}
	if s.Current > s.Longest {
		s.Longest = s.Current
	}
	s.LastCheckIn = day
	s.UpdatedAt = today
	return s
}

// DailyCacheEntry is a first-writer-wins value under a unique (date, type)
// key. Losers of the insert race re-read the winner.
type DailyCacheEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Date      string             `bson:"date" json:"date"`
	Type      string             `bson:"type" json:"type"`
	Value     string             `bson:"value" json:"value"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
