package user

import "time"

// User is a person who can join teams and be assigned tasks.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// RegisterRequest describes a new user.
type RegisterRequest struct {
	Name      string
	Email     string
	Phone     string
	AvatarURL string
}

// UpdateProfileRequest changes the fields that are set.
type UpdateProfileRequest struct {
	Name   *string
	Phone  *string
	Avatar *Avatar
}

// Avatar is an uploaded profile image.
type Avatar struct {
	Name string
	Data []byte
}
