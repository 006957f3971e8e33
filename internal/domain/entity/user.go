// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strconv"
	"time"
)

// Identity is the durable user record. Its ID is assigned by the remote
// profile service, which is the system of record for identifiers.
type Identity struct {
	ID           int64      // Primary key adopted from the remote profile service.
	Username     string     // Globally unique login name.
	PasswordHash string     // Opaque one-way hash of the password.
	Email        string     // Globally unique contact email.
	Roles        Roles      // Non-empty at creation.
	Enabled      bool       // Disabled identities cannot log in.
	CreatedAt    time.Time  // Timestamp of creation.
	UpdatedAt    time.Time  // Timestamp of the last modification.
	LastLoginAt  *time.Time // Nil until the first successful login.
}

// AuthClaims is the authorization view of an identity embedded in access tokens.
type AuthClaims struct {
	Subject    string
	Roles      []string
	IdentityID string
}

// ClaimsFor maps an identity to the claims carried by its access tokens.
func ClaimsFor(identity *Identity) AuthClaims {
	return AuthClaims{
		Subject:    identity.Username,
		Roles:      identity.Roles.Names(),
		IdentityID: strconv.FormatInt(identity.ID, 10),
	}
}
