package model

import "time"

// Roles assigned to users. Role governs which route groups a user may
// reach; self-registration always produces an attendee.
const (
	RoleAdmin     = "admin"
	RoleOrganiser = "organiser"
	RoleStaff     = "staff"
	RoleAttendee  = "attendee"
)

// ValidRole reports whether the given string is a known role name.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleOrganiser, RoleStaff, RoleAttendee:
		return true
	}
	return false
}

// User represents an application user record as stored in the `users`
// table. Passwords are stored bcrypt-hashed in every backend; the hash
// is never serialized. NameIsPublic and EmailIsPublic control what
// other attendees may see on the profile page.
type User struct {
	ID            string    `json:"id"`             // users.id
	Name          string    `json:"name"`           // users.name
	Email         string    `json:"email"`          // users.email (unique)
	PasswordHash  string    `json:"-"`              // users.password_hash
	Role          string    `json:"role"`           // users.role
	NameIsPublic  bool      `json:"nameIsPublic"`   // users.name_is_public
	EmailIsPublic bool      `json:"emailIsPublic"`  // users.email_is_public
	Bio           string    `json:"bio"`            // users.bio
	AvatarURL     *string   `json:"avatarUrl"`      // users.avatar_url (nullable)
	CreatedAt     time.Time `json:"createdAt"`      // users.created_at
	UpdatedAt     time.Time `json:"updatedAt"`      // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table. Only the
// SHA-256 hash of the raw token is ever stored.
type RefreshToken struct {
	UserID    string     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
}
