package usecase

import (
	"context"
	"testing"
	"time"

	"velora-storefront/internal/domain"

	"github.com/stretchr/testify/require"
)

var cartVariants = map[string]variantSeed{
	"v1": {ProductID: "p1", Name: "Shirt", Price: 20.00, StockQty: 10},
	"v2": {ProductID: "p2", Name: "Socks", Price: 5.50, StockQty: 3},
}

func newAnonymousCart(t *testing.T) (*testEnv, *CartUsecase) {
	env := newTestEnv(t, nil)
	cart := NewCartUsecase(env.client, env.store, env.auth, 10*time.Millisecond, 1000)
	return env, cart
}

func newAuthenticatedCart(t *testing.T) (*testEnv, *fakeCartServer, *CartUsecase) {
	server := newFakeCartServer(cartVariants)
	env := newTestEnv(t, server)
	env.loginAs(t, domain.RoleCustomer)
	cart := NewCartUsecase(env.client, env.store, env.auth, 10*time.Millisecond, 1000)
	return env, server, cart
}

func line(variantID string, quantity int) domain.CartLine {
	seed := cartVariants[variantID]
	return domain.CartLine{
		ProductID: seed.ProductID,
		VariantID: variantID,
		Name:      seed.Name,
		Price:     seed.Price,
		Quantity:  quantity,
		StockQty:  seed.StockQty,
	}
}

func TestAnonymousAddAssignsLineID(t *testing.T) {
	_, cart := newAnonymousCart(t)

	require.True(t, cart.AddToCart(context.Background(), line("v1", 0), 2))

	lines := cart.Lines()
	require.Len(t, lines, 1)
	require.NotEmpty(t, lines[0].ID)
	require.Equal(t, 2, lines[0].Quantity)
}

func TestAddWithoutVariantIsANoOp(t *testing.T) {
	_, cart := newAnonymousCart(t)

	require.False(t, cart.AddToCart(context.Background(), domain.CartLine{ProductID: "p1"}, 1))
	require.Empty(t, cart.Lines())
}

func TestAnonymousAddMergesByVariant(t *testing.T) {
	_, cart := newAnonymousCart(t)
	ctx := context.Background()

	require.True(t, cart.AddToCart(ctx, line("v1", 0), 1))
	require.True(t, cart.AddToCart(ctx, line("v1", 0), 2))

	lines := cart.Lines()
	require.Len(t, lines, 1)
	require.Equal(t, 3, lines[0].Quantity)
}

func TestAnonymousTotalsScenario(t *testing.T) {
	// V1 at 20.00 x2 plus V2 at 5.50 x1 comes to 45.50 across 3 items
	_, cart := newAnonymousCart(t)
	ctx := context.Background()

	require.True(t, cart.AddToCart(ctx, line("v1", 0), 2))
	require.True(t, cart.AddToCart(ctx, line("v2", 0), 1))

	require.Equal(t, 45.50, cart.Total())
	require.Equal(t, 3, cart.Count())
}

func TestAnonymousCartSurvivesReload(t *testing.T) {
	env, cart := newAnonymousCart(t)
	ctx := context.Background()

	require.True(t, cart.AddToCart(ctx, line("v1", 0), 2))
	require.True(t, cart.AddToCart(ctx, line("v2", 0), 1))
	want := cart.Lines()

	// Fresh usecase over the same store simulates a new session
	fresh := NewCartUsecase(env.client, env.store, env.auth, 10*time.Millisecond, 1000)
	fresh.Load(ctx)

	require.Equal(t, want, fresh.Lines())
	require.Equal(t, 45.50, fresh.Total())
	require.Equal(t, 3, fresh.Count())
}

func TestUpdateQuantityBounds(t *testing.T) {
	_, cart := newAnonymousCart(t)
	ctx := context.Background()

	require.True(t, cart.AddToCart(ctx, line("v2", 0), 1))
	lineID := cart.Lines()[0].ID

	// Every quantity within stock succeeds
	for q := 1; q <= cartVariants["v2"].StockQty; q++ {
		require.True(t, cart.UpdateQuantity(ctx, lineID, q))
		require.Equal(t, q, cart.Lines()[0].Quantity)
	}

	// Below 1 fails and leaves the line unchanged
	before := cart.Lines()[0].Quantity
	require.False(t, cart.UpdateQuantity(ctx, lineID, 0))
	require.False(t, cart.UpdateQuantity(ctx, lineID, -4))
	require.Equal(t, before, cart.Lines()[0].Quantity)

	// Above known stock fails too
	require.False(t, cart.UpdateQuantity(ctx, lineID, cartVariants["v2"].StockQty+1))
	require.Equal(t, before, cart.Lines()[0].Quantity)
}

func TestAnonymousRemove(t *testing.T) {
	_, cart := newAnonymousCart(t)
	ctx := context.Background()

	require.True(t, cart.AddToCart(ctx, line("v1", 0), 2))
	require.True(t, cart.AddToCart(ctx, line("v2", 0), 1))
	lineID := cart.Lines()[0].ID

	require.True(t, cart.RemoveFromCart(ctx, lineID))
	require.Len(t, cart.Lines(), 1)
	require.Equal(t, 5.50, cart.Total())
	require.Equal(t, 1, cart.Count())
}

func TestAnonymousClearRemovesPersistedKey(t *testing.T) {
	env, cart := newAnonymousCart(t)
	ctx := context.Background()

	require.True(t, cart.AddToCart(ctx, line("v1", 0), 2))
	_, ok := env.store.Cart()
	require.True(t, ok)

	require.True(t, cart.ClearCart(ctx))
	require.Empty(t, cart.Lines())
	require.Zero(t, cart.Total())
	require.Zero(t, cart.Count())

	_, ok = env.store.Cart()
	require.False(t, ok)
}

func TestAuthenticatedMutationsRefetchFromRemote(t *testing.T) {
	_, server, cart := newAuthenticatedCart(t)
	ctx := context.Background()

	require.True(t, cart.AddToCart(ctx, line("v1", 0), 2))
	require.True(t, cart.AddToCart(ctx, line("v2", 0), 1))

	// State mirrors the server, including its computed total
	require.Equal(t, 45.50, cart.Total())
	require.Equal(t, 3, cart.Count())
	require.Len(t, cart.Lines(), 2)

	lineID := cart.Lines()[0].ID
	require.True(t, cart.UpdateQuantity(ctx, lineID, 5))
	require.Equal(t, 5, cart.Lines()[0].Quantity)
	require.Equal(t, server.total(), cart.Total())
}

func TestAuthenticatedRemoveFailureKeepsLine(t *testing.T) {
	_, server, cart := newAuthenticatedCart(t)
	ctx := context.Background()

	require.True(t, cart.AddToCart(ctx, line("v1", 0), 2))
	lineID := cart.Lines()[0].ID

	server.failDelete = true
	require.False(t, cart.RemoveFromCart(ctx, lineID))
	require.Len(t, cart.Lines(), 1)
	require.Equal(t, lineID, cart.Lines()[0].ID)
}

func TestAuthenticatedClearDeletesEveryLine(t *testing.T) {
	_, server, cart := newAuthenticatedCart(t)
	ctx := context.Background()

	require.True(t, cart.AddToCart(ctx, line("v1", 0), 2))
	require.True(t, cart.AddToCart(ctx, line("v2", 0), 1))

	require.True(t, cart.ClearCart(ctx))
	require.Empty(t, cart.Lines())
	require.Zero(t, cart.Total())
	require.Empty(t, server.order)
}

func TestFetchFailureFallsBackToCachedCopy(t *testing.T) {
	server := newFakeCartServer(cartVariants)
	env := newTestEnv(t, server)
	env.loginAs(t, domain.RoleCustomer)

	// Seed a stale local copy
	cached := domain.CartDocument{
		Items: []domain.CartLine{line("v1", 2)},
		Total: 40,
	}
	cached.Items[0].ID = "stale-1"
	require.NoError(t, env.store.SetCart(cached))

	server.rejectAll = 500
	cart := NewCartUsecase(env.client, env.store, env.auth, 10*time.Millisecond, 1000)
	cart.Load(context.Background())

	require.Equal(t, cached.Items, cart.Lines())
	require.Equal(t, 40.0, cart.Total())
	require.Equal(t, 2, cart.Count())
}

func TestUnauthorizedMutationDestroysSession(t *testing.T) {
	server := newFakeCartServer(cartVariants)
	env := newTestEnv(t, server)
	env.loginAs(t, domain.RoleCustomer)
	cart := NewCartUsecase(env.client, env.store, env.auth, 10*time.Millisecond, 1000)

	server.rejectAll = 401
	require.False(t, cart.AddToCart(context.Background(), line("v1", 0), 1))
	require.False(t, env.auth.IsAuthenticated())
	require.Empty(t, env.store.Token())
}

func TestRefreshCoalescesBursts(t *testing.T) {
	_, server, cart := newAuthenticatedCart(t)
	ctx := context.Background()

	require.True(t, cart.AddToCart(ctx, line("v1", 0), 1))

	// Mutate the server behind the usecase's back, then burst refreshes
	server.mu.Lock()
	server.lines[server.order[0]].Quantity = 7
	server.mu.Unlock()

	for i := 0; i < 5; i++ {
		cart.Refresh()
	}

	require.Eventually(t, func() bool {
		lines := cart.Lines()
		return len(lines) == 1 && lines[0].Quantity == 7
	}, time.Second, 10*time.Millisecond)
}
