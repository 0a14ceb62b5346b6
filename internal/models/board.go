package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Board is a named, user-owned grouping of pins. (UserID, Name) is unique,
// enforced by an index on the boards collection.
type Board struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      string             `bson:"userId" json:"userId"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	IsPrivate   bool               `bson:"isPrivate" json:"isPrivate"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// BoardView is a board as listed to its owner. Implicit boards exist only as
// a name on legacy pins; they get a synthetic id and are read-only until an
// update materializes a real document.
type BoardView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsPrivate   bool   `json:"isPrivate"`
	Implicit    bool   `json:"implicit"`
	PinCount    int    `json:"pinCount"`
	Cover       *Image `json:"cover,omitempty"`
}

// View converts an explicit board to its listing shape.
func (b *Board) View() BoardView {
	return BoardView{
		ID:          b.ID.Hex(),
		Name:        b.Name,
		Description: b.Description,
		IsPrivate:   b.IsPrivate,
	}
}
