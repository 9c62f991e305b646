// Copyright (c) 2026 Cinelog. All rights reserved.

/*
Package auth implements the user identity and session management layer.

It defines the core domain entities (User, WhitelistEntry) and logic for
authentication, authorization, and account lifecycle.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to user identity.
*/
package auth

// # Domain Entities

// User represents a registered member of the Cinelog platform.
//
// # Serialization
//
// The internal row ID never leaves the service; external references
// (tokens, URLs) use PublicID exclusively. Admin and Banned are hidden
// from the default view and exposed only through [ModerationView].
type User struct {
	ID           int64  `json:"-"`
	PublicID     string `json:"public_id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // Explicitly omitted from JSON for security.
	DisplayName  string `json:"display_name"`
	Admin        bool   `json:"-"`
	Banned       bool   `json:"-"`
}

// ModerationView is the privileged serialization of a [User], shown to
// admin callers. It re-exposes the moderation flags the default view hides.
type ModerationView struct {
	*User
	Admin  bool `json:"admin"`
	Banned bool `json:"banned"`
}

// Moderation wraps a user in its privileged view.
func Moderation(user *User) ModerationView {
	return ModerationView{User: user, Admin: user.Admin, Banned: user.Banned}
}

// WhitelistEntry is a live-session record: the single active token of a user.
//
// # Invariant
//
// At most one entry per user, at most one user per token. Both columns carry
// UNIQUE constraints; entries are never updated in place, only deleted and
// recreated.
type WhitelistEntry struct {
	ID     int64
	UserID int64
	Token  string
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldUsername    = "username"
	FieldPassword    = "password"
	FieldDisplayName = "display_name"
	FieldToken       = "token"
	FieldUser        = "user"
	FieldMessage     = "message"
)
