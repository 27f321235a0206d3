package model

import "time"

// Profile is the public face of an authenticated identity.  The ID equals
// the `sub` claim of the caller's token.  Name and avatar stay nil until
// the user sets them.
type Profile struct {
	ID        string    `json:"id"`
	FirstName *string   `json:"first_name"`
	LastName  *string   `json:"last_name"`
	AvatarURL *string   `json:"avatar_url"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProfileSummary is the subset of a profile joined onto reviews.
type ProfileSummary struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	AvatarURL *string `json:"avatar_url"`
}
