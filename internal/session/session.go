// Package session binds the active cart to the current identity and
// performs cart migration on the login and logout transitions.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ojha-sweta/ShopVault/internal/alert"
	"github.com/ojha-sweta/ShopVault/internal/cart"
	"github.com/ojha-sweta/ShopVault/internal/clock"
	"github.com/ojha-sweta/ShopVault/internal/identity"
	"github.com/ojha-sweta/ShopVault/internal/kvstore"
)

// ErrAlreadyAuthenticated guards the missing Authenticated -> Authenticated
// transition: switching accounts requires a logout in between.
var ErrAlreadyAuthenticated = errors.New("already signed in, log out first")

type State string

const (
	StateAnonymous     State = "anonymous"
	StateAuthenticated State = "authenticated"
)

// Binding is a two-state machine (Anonymous, Authenticated) that owns the
// active cart. On login the anonymous cart is folded into the user's saved
// cart and the anonymous record is deleted; on logout the user's cart stays
// durably stored and a fresh empty anonymous cart becomes active.
type Binding struct {
	auth   *identity.AuthService
	kv     kvstore.Store
	finder cart.ProductFinder
	notify alert.Notifier
	clock  clock.Clock

	mu       sync.Mutex
	active   *cart.Store
	current  *identity.Identity
	onChange func()
}

func NewBinding(ctx context.Context, auth *identity.AuthService, kv kvstore.Store, finder cart.ProductFinder, notify alert.Notifier, clk clock.Clock) (*Binding, error) {
	b := &Binding{
		auth:   auth,
		kv:     kv,
		finder: finder,
		notify: notify,
		clock:  clk,
	}

	anon, err := cart.NewStore(ctx, cart.AnonymousKey, kv, finder, notify, clk)
	if err != nil {
		return nil, err
	}
	b.active = anon

	// A session persisted from a previous run resumes authenticated,
	// folding any anonymous leftovers into the user's cart.
	if current, err := auth.Current(ctx); err == nil {
		if err := b.bindUser(ctx, current); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// SetOnChange registers the UI-refresh observer, carried across cart swaps.
func (b *Binding) SetOnChange(fn func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onChange = fn
	b.active.SetOnChange(fn)
}

func (b *Binding) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current != nil {
		return StateAuthenticated
	}
	return StateAnonymous
}

// CurrentUser returns the bound identity, nil while anonymous.
func (b *Binding) CurrentUser() *identity.Identity {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

// ActiveCart returns the cart for the current identity scope.
func (b *Binding) ActiveCart() *cart.Store {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.active
}

// Login performs Anonymous -> Authenticated, merging the anonymous cart
// into the user's previously saved cart.
func (b *Binding) Login(ctx context.Context, email, password string) (*identity.Identity, error) {
	if b.CurrentUser() != nil {
		return nil, ErrAlreadyAuthenticated
	}

	user, err := b.auth.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := b.bindUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SignUp creates an account and performs the same cart migration as Login.
func (b *Binding) SignUp(ctx context.Context, email, password string) (*identity.Identity, error) {
	if b.CurrentUser() != nil {
		return nil, ErrAlreadyAuthenticated
	}

	user, err := b.auth.SignUp(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := b.bindUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Logout performs Authenticated -> Anonymous. The user's cart remains
// stored under their uid for the next login; the active cart becomes a
// fresh empty anonymous cart.
func (b *Binding) Logout(ctx context.Context) error {
	if b.CurrentUser() == nil {
		return nil
	}

	if err := b.auth.SignOut(ctx); err != nil {
		return err
	}

	b.mu.Lock()
	b.current = nil
	b.active = cart.NewEmptyStore(cart.AnonymousKey, b.kv, b.finder, b.notify, b.clock)
	b.active.SetOnChange(b.onChange)
	b.mu.Unlock()
	return nil
}

// bindUser loads the user's persisted cart, folds the active anonymous
// cart into it, persists the merge and deletes the anonymous record.
func (b *Binding) bindUser(ctx context.Context, user *identity.Identity) error {
	b.mu.Lock()
	anonymous := b.active
	onChange := b.onChange
	b.mu.Unlock()

	userCart, err := cart.NewStore(ctx, cart.UserKey(user.UID), b.kv, b.finder, b.notify, b.clock)
	if err != nil {
		return err
	}
	if err := userCart.MergeFrom(ctx, anonymous.Lines()); err != nil {
		return err
	}
	if err := b.kv.Delete(ctx, cart.AnonymousKey); err != nil {
		return fmt.Errorf("delete anonymous cart: %w", err)
	}

	userCart.SetOnChange(onChange)

	b.mu.Lock()
	b.current = user
	b.active = userCart
	b.mu.Unlock()
	return nil
}
