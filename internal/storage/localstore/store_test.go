package localstore

import (
	"path/filepath"
	"testing"

	"velora-storefront/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestOpenMissingFileIsEmptyStore(t *testing.T) {
	store, err := Open(t.TempDir())
	require.NoError(t, err)

	require.Empty(t, store.Token())
	_, ok := store.User()
	require.False(t, ok)
	_, ok = store.Cart()
	require.False(t, ok)
	_, ok = store.Wishlist()
	require.False(t, ok)
}

func TestSessionRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir)
	require.NoError(t, err)

	user := domain.User{ID: "u1", Name: "Asha", Email: "asha@example.com", Role: "customer"}
	require.NoError(t, store.SetSession("tok-123", user))

	// Reopen to prove the write went through the file
	reloaded, err := Open(dir)
	require.NoError(t, err)
	require.Equal(t, "tok-123", reloaded.Token())

	got, ok := reloaded.User()
	require.True(t, ok)
	require.Equal(t, user, got)

	require.NoError(t, reloaded.ClearSession())
	require.Empty(t, reloaded.Token())
	_, ok = reloaded.User()
	require.False(t, ok)

	// Clearing twice is fine
	require.NoError(t, reloaded.ClearSession())
}

func TestCartRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir)
	require.NoError(t, err)

	cart := domain.CartDocument{
		Items: []domain.CartLine{
			{ID: "l1", ProductID: "p1", VariantID: "v1", Name: "Shirt", Price: 20, Quantity: 2, StockQty: 10},
			{ID: "l2", ProductID: "p2", VariantID: "v2", Name: "Socks", Price: 5.5, Quantity: 1, StockQty: 3},
		},
		Total: 45.5,
	}
	require.NoError(t, store.SetCart(cart))

	reloaded, err := Open(dir)
	require.NoError(t, err)

	got, ok := reloaded.Cart()
	require.True(t, ok)
	require.Equal(t, cart.Items, got.Items)
	require.Equal(t, cart.Total, got.Total)

	require.NoError(t, reloaded.RemoveCart())
	_, ok = reloaded.Cart()
	require.False(t, ok)
}

func TestWishlistRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir)
	require.NoError(t, err)

	entries := []domain.WishlistEntry{
		{ID: "w1", ProductID: "p1", VariantID: "v1", Name: "Shirt", Price: 20},
	}
	require.NoError(t, store.SetWishlist(entries))

	reloaded, err := Open(dir)
	require.NoError(t, err)

	got, ok := reloaded.Wishlist()
	require.True(t, ok)
	require.Equal(t, entries, got)

	require.NoError(t, reloaded.RemoveWishlist())
	_, ok = reloaded.Wishlist()
	require.False(t, ok)
}

func TestFlushWritesAtomically(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir)
	require.NoError(t, err)

	require.NoError(t, store.SetCart(domain.CartDocument{Total: 1}))
	require.NoError(t, store.SetCart(domain.CartDocument{Total: 2}))

	// No temp file left behind
	matches, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	require.NoError(t, err)
	require.Empty(t, matches)
}
