package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ojha-sweta/ShopVault/internal/alert"
	"github.com/ojha-sweta/ShopVault/internal/cart"
	"github.com/ojha-sweta/ShopVault/internal/catalog"
	"github.com/ojha-sweta/ShopVault/internal/clock"
	"github.com/ojha-sweta/ShopVault/internal/identity"
	"github.com/ojha-sweta/ShopVault/internal/kvstore"
)

type mockFinder struct {
	products map[int64]*catalog.Product
}

func (m *mockFinder) FindByID(id int64) (*catalog.Product, error) {
	p, exists := m.products[id]
	if !exists {
		return nil, catalog.ErrProductNotFound
	}
	out := *p
	return &out, nil
}

type fixture struct {
	binding *Binding
	auth    *identity.AuthService
	kv      kvstore.Store
	finder  *mockFinder
	clock   *clock.Manual
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	finder := &mockFinder{products: map[int64]*catalog.Product{
		5: {ID: 5, Name: "Laptop", Price: 100, Stock: 10, InStock: true},
		9: {ID: 9, Name: "Headphones", Price: 25, Stock: 10, InStock: true},
	}}
	kv := kvstore.NewMemoryStore()
	clk := clock.NewManual(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	auth := identity.NewAuthService(kv, clk)

	binding, err := NewBinding(context.Background(), auth, kv, finder, &alert.Recorder{}, clk)
	require.NoError(t, err)

	return &fixture{binding: binding, auth: auth, kv: kv, finder: finder, clock: clk}
}

func TestNewBinding_StartsAnonymous(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, StateAnonymous, f.binding.State())
	assert.Nil(t, f.binding.CurrentUser())
	assert.Equal(t, cart.AnonymousKey, f.binding.ActiveCart().Key())
}

func TestSignUp_BindsUserCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.binding.SignUp(ctx, "jordan@example.com", "secret123")
	require.NoError(t, err)

	assert.Equal(t, StateAuthenticated, f.binding.State())
	assert.Equal(t, cart.UserKey(user.UID), f.binding.ActiveCart().Key())
}

func TestLogin_MergesAnonymousCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Build the user's saved cart: {5:2, 9:1}
	user, err := f.binding.SignUp(ctx, "jordan@example.com", "secret123")
	require.NoError(t, err)
	require.NoError(t, f.binding.ActiveCart().AddLine(ctx, 5, 2))
	require.NoError(t, f.binding.ActiveCart().AddLine(ctx, 9, 1))
	require.NoError(t, f.binding.Logout(ctx))

	// Shop anonymously: {5:1}
	require.NoError(t, f.binding.ActiveCart().AddLine(ctx, 5, 1))

	_, err = f.binding.Login(ctx, "jordan@example.com", "secret123")
	require.NoError(t, err)

	// The saved cart is the base; anonymous quantities fold on top
	active := f.binding.ActiveCart()
	assert.Equal(t, cart.UserKey(user.UID), active.Key())
	assert.Equal(t, 3, active.Quantity(5))
	assert.Equal(t, 1, active.Quantity(9))

	// The anonymous record is consumed by the merge
	_, err = f.kv.Get(ctx, cart.AnonymousKey)
	assert.ErrorIs(t, err, kvstore.ErrKeyNotFound)
}

func TestLogin_MergeClampsToStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.finder.products[5].Stock = 4

	_, err := f.binding.SignUp(ctx, "jordan@example.com", "secret123")
	require.NoError(t, err)
	require.NoError(t, f.binding.ActiveCart().AddLine(ctx, 5, 3))
	require.NoError(t, f.binding.Logout(ctx))

	require.NoError(t, f.binding.ActiveCart().AddLine(ctx, 5, 3))

	_, err = f.binding.Login(ctx, "jordan@example.com", "secret123")
	require.NoError(t, err)

	assert.Equal(t, 4, f.binding.ActiveCart().Quantity(5))
}

func TestLogin_WhileAuthenticated(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.binding.SignUp(ctx, "jordan@example.com", "secret123")
	require.NoError(t, err)

	_, err = f.binding.Login(ctx, "jordan@example.com", "secret123")
	assert.ErrorIs(t, err, ErrAlreadyAuthenticated)
}

func TestLogin_BadCredentialsKeepsAnonymousCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.binding.ActiveCart().AddLine(ctx, 5, 2))

	_, err := f.binding.Login(ctx, "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, identity.ErrInvalidCredentials)

	assert.Equal(t, StateAnonymous, f.binding.State())
	assert.Equal(t, 2, f.binding.ActiveCart().Quantity(5))
}

func TestLogout_KeepsUserCartStored(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.binding.SignUp(ctx, "jordan@example.com", "secret123")
	require.NoError(t, err)
	require.NoError(t, f.binding.ActiveCart().AddLine(ctx, 5, 2))

	require.NoError(t, f.binding.Logout(ctx))

	assert.Equal(t, StateAnonymous, f.binding.State())
	assert.Empty(t, f.binding.ActiveCart().Lines())

	var lines []cart.Line
	require.NoError(t, kvstore.GetJSON(ctx, f.kv, cart.UserKey(user.UID), &lines))
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestLogout_WhileAnonymousIsNoop(t *testing.T) {
	f := newFixture(t)

	assert.NoError(t, f.binding.Logout(context.Background()))
	assert.Equal(t, StateAnonymous, f.binding.State())
}

func TestNewBinding_ResumesPersistedSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.binding.SignUp(ctx, "jordan@example.com", "secret123")
	require.NoError(t, err)
	require.NoError(t, f.binding.ActiveCart().AddLine(ctx, 5, 2))

	// A new binding over the same store resumes authenticated
	resumed, err := NewBinding(ctx, f.auth, f.kv, f.finder, &alert.Recorder{}, f.clock)
	require.NoError(t, err)

	assert.Equal(t, StateAuthenticated, resumed.State())
	require.NotNil(t, resumed.CurrentUser())
	assert.Equal(t, user.UID, resumed.CurrentUser().UID)
	assert.Equal(t, 2, resumed.ActiveCart().Quantity(5))
}

func TestOnChange_CarriedAcrossCartSwaps(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var fired int
	f.binding.SetOnChange(func() { fired++ })

	require.NoError(t, f.binding.ActiveCart().AddLine(ctx, 5, 1))
	before := fired

	_, err := f.binding.SignUp(ctx, "jordan@example.com", "secret123")
	require.NoError(t, err)

	require.NoError(t, f.binding.ActiveCart().AddLine(ctx, 9, 1))
	assert.Greater(t, fired, before)
}
