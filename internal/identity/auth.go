package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ojha-sweta/ShopVault/internal/clock"
	"github.com/ojha-sweta/ShopVault/internal/kvstore"
)

const (
	signInDelay  = 500 * time.Millisecond
	signOutDelay = 200 * time.Millisecond
)

// AuthService manages the users record and the single current session.
// Sign-in and sign-up suspend the caller for a fixed simulated delay; once
// issued they cannot be cancelled.
type AuthService struct {
	kv    kvstore.Store
	clock clock.Clock
}

func NewAuthService(kv kvstore.Store, clk clock.Clock) *AuthService {
	return &AuthService{kv: kv, clock: clk}
}

// SignUp creates an account and makes it the current identity.
func (a *AuthService) SignUp(ctx context.Context, email, password string) (*Identity, error) {
	if email == "" || password == "" {
		return nil, ErrMissingFields
	}
	if len(password) < MinPasswordLength {
		return nil, ErrWeakPassword
	}

	a.clock.Sleep(signInDelay)

	users, err := a.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Email == email {
			return nil, ErrDuplicateAccount
		}
	}

	now := a.clock.Now()
	record := userRecord{
		Identity: Identity{
			UID:         fmt.Sprintf("user_%d", now.UnixMilli()),
			Email:       email,
			DisplayName: displayNameFor(email),
			CreatedAt:   now,
		},
		Password: password,
	}

	users = append(users, record)
	if err := kvstore.SetJSON(ctx, a.kv, usersKey, users); err != nil {
		return nil, fmt.Errorf("persist users: %w", err)
	}
	if err := a.setCurrent(ctx, &record.Identity); err != nil {
		return nil, err
	}

	identity := record.Identity
	return &identity, nil
}

// SignIn authenticates against the stored users and makes the match the
// current identity.
func (a *AuthService) SignIn(ctx context.Context, email, password string) (*Identity, error) {
	if email == "" || password == "" {
		return nil, ErrMissingFields
	}

	a.clock.Sleep(signInDelay)

	users, err := a.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Email == email && u.Password == password {
			identity := u.Identity
			if err := a.setCurrent(ctx, &identity); err != nil {
				return nil, err
			}
			return &identity, nil
		}
	}
	return nil, ErrInvalidCredentials
}

// SignOut clears the current identity. Signing out while anonymous is a
// no-op.
func (a *AuthService) SignOut(ctx context.Context) error {
	a.clock.Sleep(signOutDelay)

	if err := a.kv.Delete(ctx, currentUserKey); err != nil {
		return fmt.Errorf("clear current user: %w", err)
	}
	return nil
}

// ResetPassword verifies the account exists. The mock sends no mail.
func (a *AuthService) ResetPassword(ctx context.Context, email string) error {
	a.clock.Sleep(signInDelay)

	users, err := a.loadUsers(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		if u.Email == email {
			return nil
		}
	}
	return ErrUserNotFound
}

// Current returns the signed-in identity or ErrNotSignedIn.
func (a *AuthService) Current(ctx context.Context) (*Identity, error) {
	var identity Identity
	err := kvstore.GetJSON(ctx, a.kv, currentUserKey, &identity)
	if errors.Is(err, kvstore.ErrKeyNotFound) {
		return nil, ErrNotSignedIn
	}
	if err != nil {
		return nil, err
	}
	return &identity, nil
}

// UpdateDisplayName renames the current identity, in both the session
// record and the users array.
func (a *AuthService) UpdateDisplayName(ctx context.Context, name string) (*Identity, error) {
	current, err := a.Current(ctx)
	if err != nil {
		return nil, err
	}

	current.DisplayName = name
	if err := a.setCurrent(ctx, current); err != nil {
		return nil, err
	}

	users, err := a.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].UID == current.UID {
			users[i].DisplayName = name
		}
	}
	if err := kvstore.SetJSON(ctx, a.kv, usersKey, users); err != nil {
		return nil, fmt.Errorf("persist users: %w", err)
	}
	return current, nil
}

func (a *AuthService) loadUsers(ctx context.Context) ([]userRecord, error) {
	var users []userRecord
	err := kvstore.GetJSON(ctx, a.kv, usersKey, &users)
	if err != nil && !errors.Is(err, kvstore.ErrKeyNotFound) {
		return nil, fmt.Errorf("load users: %w", err)
	}
	return users, nil
}

func (a *AuthService) setCurrent(ctx context.Context, identity *Identity) error {
	if err := kvstore.SetJSON(ctx, a.kv, currentUserKey, identity); err != nil {
		return fmt.Errorf("persist current user: %w", err)
	}
	return nil
}
