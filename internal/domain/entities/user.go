package entities

import "time"

// AuthUser is the signed-in user of the client session.
type AuthUser struct {
	UID          string    `json:"uid"`
	Email        string    `json:"email"`
	IDToken      string    `json:"idToken,omitempty"`
	RefreshToken string    `json:"refreshToken,omitempty"`
	Name         string    `json:"name,omitempty"`
	ProfileImage string    `json:"profileImage,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Role         string    `json:"role,omitempty"`
	ExpiresAt    time.Time `json:"expiresAt,omitempty"`
}

// Expired reports whether the id token expired at now. Unknown expiry never expires.
func (u *AuthUser) Expired(now time.Time) bool {
	return !u.ExpiresAt.IsZero() && !now.Before(u.ExpiresAt)
}

// Credentials are the backend auth response fields.
type Credentials struct {
	UID          string
	Email        string
	IDToken      string
	RefreshToken string
}

// User is a backend user profile.
type User struct {
	ID           int64
	Email        string
	DisplayName  string
	Phone        string
	ProfileImage string
	Role         string
	Status       string
	CreatedAt    time.Time
}

// UserPatch is a partial profile update; nil fields are left untouched.
type UserPatch struct {
	DisplayName  *string
	Phone        *string
	Role         *string
	ProfileImage *string
}

// IsEmpty reports whether the patch changes nothing.
func (p UserPatch) IsEmpty() bool {
	return p.DisplayName == nil && p.Phone == nil && p.Role == nil && p.ProfileImage == nil
}
