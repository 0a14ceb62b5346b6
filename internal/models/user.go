package models

import "time"

// User is a lightweight profile keyed by the auth provider's subject claim.
// Token issuance lives outside this service; the profile only carries what pin
// owner population needs.
type User struct {
	ID        string    `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Avatar    string    `bson:"avatar,omitempty" json:"avatar,omitempty"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Owner returns the display form used on pin views.
func (u *User) Owner() *OwnerView {
	return &OwnerView{ID: u.ID, Name: u.Name, Avatar: u.Avatar}
}
