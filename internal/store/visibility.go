package store

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
)

// VisibilityPolicy decides which pins a query may surface. It is built once
// per request and passed down so every call site applies the same rule:
// public views never contain private pins or saved clones, while an owner
// scope returns everything that user created or saved.
type VisibilityPolicy struct {
	OwnerScope     string
	IncludePrivate bool
	IncludeSaved   bool
}

// PublicVisibility is the default policy for discovery and anonymous queries.
func PublicVisibility() VisibilityPolicy {
	return VisibilityPolicy{}
}

// OwnerVisibility scopes the query to one user's own pins, private and saved
// included.
func OwnerVisibility(userID string) VisibilityPolicy {
	return VisibilityPolicy{OwnerScope: userID, IncludePrivate: true, IncludeSaved: true}
}

// OwnerPublicVisibility scopes the query to one user's pins as seen by someone
// else: owned, but neither private nor saved clones.
func OwnerPublicVisibility(userID string) VisibilityPolicy {
	return VisibilityPolicy{OwnerScope: userID}
}

// Filter renders the policy as a mongo filter fragment.
func (p VisibilityPolicy) Filter() bson.M {
	f := bson.M{}
	if p.OwnerScope != "" {
		f["userId"] = p.OwnerScope
	}
	if !p.IncludePrivate {
		f["isPrivate"] = false
	}
	if !p.IncludeSaved {
		f["isSaved"] = false
	}
	return f
}

// PinFilter is the query surface of the pin store.
type PinFilter struct {
	Visibility VisibilityPolicy
	Board      string // board name
	BoardID    string
	Search     string // case-insensitive substring over title/description/board
	Limit      int64
}

// Query renders the full mongo filter.
func (f PinFilter) Query() bson.M {
	q := f.Visibility.Filter()
	if f.Board != "" {
		q["board"] = f.Board
	}
	if f.BoardID != "" {
		q["boardId"] = f.BoardID
	}
	if f.Search != "" {
		pattern := regexp.QuoteMeta(f.Search)
		regex := bson.M{"$regex": pattern, "$options": "i"}
		q["$or"] = bson.A{
			bson.M{"title": regex},
			bson.M{"description": regex},
			bson.M{"board": regex},
		}
	}
	return q
}
