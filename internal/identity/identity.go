// Package identity is the mock authentication layer: users live in the
// durable store, passwords are compared in clear text, and network latency
// is simulated through the injected clock. Not security, by any measure.
package identity

import (
	"errors"
	"strings"
	"time"
)

const (
	usersKey       = "users"
	currentUserKey = "currentUser"

	// MinPasswordLength matches the storefront's sign-up form rule.
	MinPasswordLength = 6
)

var (
	ErrDuplicateAccount   = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
	ErrMissingFields      = errors.New("email and password are required")
	ErrNotSignedIn        = errors.New("no user is signed in")
)

// Identity is the public view of a user. Exactly one Identity may be
// current per session.
type Identity struct {
	UID         string    `json:"uid"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	CreatedAt   time.Time `json:"createdAt"`
}

// userRecord is what actually sits in the users array. The clear-text
// password is faithful to the source system; a known weakness, not a
// design choice worth repeating.
type userRecord struct {
	Identity
	Password string `json:"password"`
}

func displayNameFor(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
