package models

import (
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// External pin ids and implicit board ids are namespaced so they never collide
// with hex object ids. Call sites parse an incoming id once into a tagged ref
// and switch on the kind instead of re-sniffing string prefixes.
const (
	ExternalPinPrefix   = "unsplash-"
	ImplicitBoardPrefix = "implicit-"
)

var ErrInvalidRef = errors.New("invalid identifier")

type PinRefKind int

const (
	PinRefLocal PinRefKind = iota
	PinRefExternal
)

// PinRef identifies either a persisted pin (object id) or a transient external
// pin (provider id).
type PinRef struct {
	Kind       PinRefKind
	ObjectID   primitive.ObjectID
	ExternalID string
}

// ParsePinRef classifies an id from the wire. External ids keep the provider's
// own id under the namespace prefix; anything else must be a valid hex id.
func ParsePinRef(id string) (PinRef, error) {
	if ext, ok := strings.CutPrefix(id, ExternalPinPrefix); ok {
		if ext == "" {
			return PinRef{}, ErrInvalidRef
		}
		return PinRef{Kind: PinRefExternal, ExternalID: ext}, nil
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return PinRef{}, ErrInvalidRef
	}
	return PinRef{Kind: PinRefLocal, ObjectID: oid}, nil
}

// ExternalPinID builds the namespaced wire id for a provider photo.
func ExternalPinID(providerID string) string {
	return ExternalPinPrefix + providerID
}

type BoardRefKind int

const (
	BoardRefExplicit BoardRefKind = iota
	BoardRefImplicit
)

// BoardRef identifies either an explicit board document or an implicit board
// known only by name.
type BoardRef struct {
	Kind     BoardRefKind
	ObjectID primitive.ObjectID
	Name     string
}

// ParseBoardRef classifies a board id from the wire.
func ParseBoardRef(id string) (BoardRef, error) {
	if name, ok := strings.CutPrefix(id, ImplicitBoardPrefix); ok {
		if name == "" {
			return BoardRef{}, ErrInvalidRef
		}
		return BoardRef{Kind: BoardRefImplicit, Name: name}, nil
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return BoardRef{}, ErrInvalidRef
	}
	return BoardRef{Kind: BoardRefExplicit, ObjectID: oid}, nil
}

// ImplicitBoardID builds the synthetic id for a board inferred from pin data.
func ImplicitBoardID(name string) string {
	return ImplicitBoardPrefix + name
}
