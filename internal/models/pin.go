package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Image is one rendition of a pin's visual content. Width/height feed the
// client's masonry layout and may be zero when the source did not report them.
type Image struct {
	URL    string `bson:"url" json:"url"`
	Width  int    `bson:"width,omitempty" json:"width,omitempty"`
	Height int    `bson:"height,omitempty" json:"height,omitempty"`
}

// Comment is embedded in its pin. Append-only.
type Comment struct {
	UserID    string    `bson:"userId" json:"userId"`
	Text      string    `bson:"text" json:"text"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// Pin is a persisted unit of visual content. A pin is either authored
// (IsSaved=false, no OriginalAuthor) or a saved clone of another pin
// (IsSaved=true, OriginalAuthor set when known). Board is always set even when
// BoardID is empty; legacy pins reference their board by name only.
type Pin struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID         string             `bson:"userId" json:"userId"`
	OriginalAuthor string             `bson:"originalAuthor,omitempty" json:"originalAuthor,omitempty"`
	Board          string             `bson:"board" json:"board"`
	BoardID        string             `bson:"boardId,omitempty" json:"boardId,omitempty"`
	Title          string             `bson:"title" json:"title"`
	Description    string             `bson:"description,omitempty" json:"description,omitempty"`
	Images         []Image            `bson:"images" json:"images"`
	Comments       []Comment          `bson:"comments" json:"comments"`
	IsPrivate      bool               `bson:"isPrivate" json:"isPrivate"`
	IsSaved        bool               `bson:"isSaved" json:"isSaved"`
	UnsplashID     string             `bson:"unsplashId,omitempty" json:"unsplashId,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}

// OwnerView is the display form of a pin's owner. For local pins it comes from
// the users collection; for transient external pins it is synthesized from the
// provider's attribution metadata and Handle carries the provider username.
type OwnerView struct {
	ID     string `json:"id,omitempty"`
	Name   string `json:"name"`
	Handle string `json:"handle,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}

// PinView is the wire shape for both persisted and transient pins. ID is the
// hex object id for local pins and the namespaced external id for transient
// ones, so a mixed feed carries a single id space.
type PinView struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	Board          string     `json:"board,omitempty"`
	BoardID        string     `json:"boardId,omitempty"`
	Images         []Image    `json:"images"`
	Comments       []Comment  `json:"comments"`
	IsPrivate      bool       `json:"isPrivate"`
	IsSaved        bool       `json:"isSaved"`
	UnsplashID     string     `json:"unsplashId,omitempty"`
	Owner          *OwnerView `json:"owner,omitempty"`
	OriginalAuthor string     `json:"originalAuthor,omitempty"`
	External       bool       `json:"external"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// View converts a persisted pin to its wire shape. The owner is attached by
// the caller, which knows where to look it up.
func (p *Pin) View(owner *OwnerView) PinView {
	comments := p.Comments
	if comments == nil {
		comments = make([]Comment, 0)
	}
	images := p.Images
	if images == nil {
		images = make([]Image, 0)
	}
	return PinView{
		ID:             p.ID.Hex(),
		Title:          p.Title,
		Description:    p.Description,
		Board:          p.Board,
		BoardID:        p.BoardID,
		Images:         images,
		Comments:       comments,
		IsPrivate:      p.IsPrivate,
		IsSaved:        p.IsSaved,
		UnsplashID:     p.UnsplashID,
		Owner:          owner,
		OriginalAuthor: p.OriginalAuthor,
		CreatedAt:      p.CreatedAt,
	}
}
