package models

import (
	"html"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of account roles. Anything else is rejected at
// the boundary.
type Role string

const (
	RoleClient Role = "client"
	RoleAdmin  Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleClient || r == RoleAdmin
}

// User matches the users table. PasswordHash is empty for accounts created
// through Google sign-in only; GoogleID is empty for password-only accounts.
// At least one of the two is always set.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Phone        string    `json:"phone"`
	GoogleID     string    `json:"googleId,omitempty"`
	AvatarURL    string    `json:"avatarUrl,omitempty"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (u *User) Prepare() {
	u.Name = strings.TrimSpace(u.Name)
	u.Username = strings.TrimSpace(u.Username)
	u.Email = html.EscapeString(strings.TrimSpace(u.Email))
}

// HasPassword reports whether the account can log in with a password at all.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// ProfilePatch carries the optional fields of a partial profile update.
// A nil field means "leave unchanged"; the data layer translates the set
// fields into a parameterized UPDATE.
type ProfilePatch struct {
	Name     *string
	Username *string
	Email    *string
	Phone    *string
}

func (p *ProfilePatch) Empty() bool {
	return p.Name == nil && p.Username == nil && p.Email == nil && p.Phone == nil
}
