package usecase

import (
	"context"
	"sync"
	"time"

	"velora-storefront/internal/api"
	"velora-storefront/internal/domain"
	"velora-storefront/internal/storage/localstore"
	"velora-storefront/pkg/apperr"
	"velora-storefront/pkg/debounce"
	"velora-storefront/pkg/logger"

	"github.com/google/uuid"
)

// cartSource is one side of the dual-source rule. The remote variant treats
// the server as authoritative: every mutation posts, then refetches the full
// cart so server-computed totals and stock limits win, and a failed fetch
// degrades to whatever is cached locally. The local variant edits the
// in-memory list, recomputes totals, and persists immediately.
type cartSource interface {
	load(ctx context.Context)
	add(ctx context.Context, item domain.CartLine, quantity int) bool
	update(ctx context.Context, lineID string, quantity int) bool
	remove(ctx context.Context, lineID string) bool
	clear(ctx context.Context) bool
}

// CartUsecase owns the cart state and shared validation; the per-session
// behavior lives in the selected cartSource variant.
type CartUsecase struct {
	mu          sync.Mutex
	client      *api.Client
	store       *localstore.Store
	auth        *AuthUsecase
	refresher   *debounce.Debouncer
	maxQuantity int

	lines   []domain.CartLine
	total   float64
	count   int
	loading bool
}

func NewCartUsecase(client *api.Client, store *localstore.Store, auth *AuthUsecase, refreshWindow time.Duration, maxQuantity int) *CartUsecase {
	return &CartUsecase{
		client:      client,
		store:       store,
		auth:        auth,
		refresher:   debounce.New(refreshWindow),
		maxQuantity: maxQuantity,
	}
}

// source selects the backing variant for the current session.
func (u *CartUsecase) source() cartSource {
	if u.auth.IsAuthenticated() {
		return remoteCart{u}
	}
	return localCart{u}
}

// Load sources the cart from the remote (authenticated) or local storage
// (anonymous).
func (u *CartUsecase) Load(ctx context.Context) {
	u.source().load(ctx)
}

// Refresh coalesces rapid re-fetch requests into one trailing call.
func (u *CartUsecase) Refresh() {
	u.refresher.Trigger(func() {
		u.Load(context.Background())
	})
}

// Lines returns a copy of the current cart lines.
func (u *CartUsecase) Lines() []domain.CartLine {
	u.mu.Lock()
	defer u.mu.Unlock()
	lines := make([]domain.CartLine, len(u.lines))
	copy(lines, u.lines)
	return lines
}

func (u *CartUsecase) Total() float64 {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.total
}

func (u *CartUsecase) Count() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.count
}

func (u *CartUsecase) Loading() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.loading
}

// AddToCart adds quantity of the item's variant. An item without a variant
// identifier is a logged no-op: there is nothing the remote could resolve it
// against.
func (u *CartUsecase) AddToCart(ctx context.Context, item domain.CartLine, quantity int) bool {
	if item.VariantID == "" {
		logger.Error().Str("product_id", item.ProductID).Msg("Cannot add to cart: missing variant id")
		return false
	}
	if quantity < 1 {
		quantity = 1
	}
	return u.source().add(ctx, item, quantity)
}

// UpdateQuantity replaces a line's quantity. Quantities below 1, above the
// known stock, or above the configured cart maximum are rejected before any
// network call.
func (u *CartUsecase) UpdateQuantity(ctx context.Context, lineID string, quantity int) bool {
	if quantity < 1 {
		return false
	}
	if u.maxQuantity > 0 && quantity > u.maxQuantity {
		logger.Warn().Int("quantity", quantity).Msg("Quantity above cart maximum")
		return false
	}
	if line, ok := u.findLine(lineID); ok && line.StockQty > 0 && quantity > line.StockQty {
		logger.Warn().Str("line_id", lineID).Int("quantity", quantity).Int("stock", line.StockQty).Msg("Quantity above stock")
		return false
	}
	return u.source().update(ctx, lineID, quantity)
}

// RemoveFromCart deletes a line. The remote variant only applies the removal
// locally once the server confirms; the local variant is unconditional.
func (u *CartUsecase) RemoveFromCart(ctx context.Context, lineID string) bool {
	return u.source().remove(ctx, lineID)
}

// ClearCart empties the cart.
func (u *CartUsecase) ClearCart(ctx context.Context) bool {
	return u.source().clear(ctx)
}

func (u *CartUsecase) findLine(lineID string) (domain.CartLine, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, line := range u.lines {
		if line.ID == lineID {
			return line, true
		}
	}
	return domain.CartLine{}, false
}

// forceLogoutOn destroys the session when the remote rejects it.
func (u *CartUsecase) forceLogoutOn(err error) {
	if apperr.Is(err, apperr.CodeUnauthorized) {
		u.auth.Logout()
	}
}

// remoteCart is the RemoteBacked variant.
type remoteCart struct {
	u *CartUsecase
}

func (r remoteCart) load(ctx context.Context) {
	r.fetch(ctx)
}

func (r remoteCart) add(ctx context.Context, item domain.CartLine, quantity int) bool {
	if err := r.u.client.AddCartItem(ctx, item.VariantID, quantity); err != nil {
		logger.Error().Err(err).Str("variant_id", item.VariantID).Msg("Failed to add to cart")
		r.u.forceLogoutOn(err)
		return false
	}
	r.fetch(ctx)
	return true
}

func (r remoteCart) update(ctx context.Context, lineID string, quantity int) bool {
	if err := r.u.client.UpdateCartItem(ctx, lineID, quantity); err != nil {
		logger.Error().Err(err).Str("line_id", lineID).Msg("Failed to update cart item")
		r.u.forceLogoutOn(err)
		return false
	}
	r.fetch(ctx)
	return true
}

func (r remoteCart) remove(ctx context.Context, lineID string) bool {
	if err := r.u.client.DeleteCartItem(ctx, lineID); err != nil {
		logger.Error().Err(err).Str("line_id", lineID).Msg("Failed to remove from cart")
		r.u.forceLogoutOn(err)
		return false
	}

	u := r.u
	u.mu.Lock()
	defer u.mu.Unlock()

	// Totals recompute against the pre-removal snapshot; the next remote
	// refresh reconciles any drift.
	snapshot := u.lines
	remaining := make([]domain.CartLine, 0, len(snapshot))
	for _, line := range snapshot {
		if line.ID != lineID {
			remaining = append(remaining, line)
		}
	}
	u.lines = remaining
	u.total = domain.CartTotal(remaining)
	u.count = domain.CartCount(snapshot)
	return true
}

// clear deletes line by line (the remote has no bulk endpoint) and only
// zeroes local state once every delete succeeded.
func (r remoteCart) clear(ctx context.Context) bool {
	u := r.u
	for _, line := range u.Lines() {
		if err := u.client.DeleteCartItem(ctx, line.ID); err != nil {
			logger.Error().Err(err).Str("line_id", line.ID).Msg("Failed to clear cart")
			u.forceLogoutOn(err)
			return false
		}
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	u.lines = nil
	u.total = 0
	u.count = 0
	return true
}

// fetch pulls the authoritative remote cart, degrading to the cached local
// copy when the fetch fails.
func (r remoteCart) fetch(ctx context.Context) {
	u := r.u
	u.mu.Lock()
	u.loading = true
	u.mu.Unlock()

	lines, total, err := u.client.GetCart(ctx)

	u.mu.Lock()
	defer u.mu.Unlock()
	u.loading = false

	if err != nil {
		logger.Warn().Err(err).Msg("Cart fetch failed, using cached copy")
		if cached, ok := u.store.Cart(); ok {
			u.lines = cached.Items
			u.total = cached.Total
			u.count = domain.CartCount(cached.Items)
		}
		return
	}

	u.lines = lines
	u.total = total
	u.count = domain.CartCount(lines)
}

// localCart is the LocalBacked variant.
type localCart struct {
	u *CartUsecase
}

func (l localCart) load(ctx context.Context) {
	u := l.u
	u.mu.Lock()
	defer u.mu.Unlock()

	cached, ok := u.store.Cart()
	if !ok {
		return
	}
	u.lines = cached.Items
	u.total = cached.Total
	u.count = domain.CartCount(cached.Items)
}

func (l localCart) add(ctx context.Context, item domain.CartLine, quantity int) bool {
	u := l.u
	u.mu.Lock()
	defer u.mu.Unlock()

	// Merge by variant instead of duplicating the line
	for i := range u.lines {
		if u.lines[i].VariantID == item.VariantID {
			u.lines[i].Quantity += quantity
			l.persist()
			return true
		}
	}

	line := item
	line.Quantity = quantity
	if line.ID == "" {
		line.ID = uuid.New().String()
	}
	u.lines = append(u.lines, line)
	l.persist()
	return true
}

func (l localCart) update(ctx context.Context, lineID string, quantity int) bool {
	u := l.u
	u.mu.Lock()
	defer u.mu.Unlock()
	for i := range u.lines {
		if u.lines[i].ID == lineID {
			u.lines[i].Quantity = quantity
			break
		}
	}
	l.persist()
	return true
}

func (l localCart) remove(ctx context.Context, lineID string) bool {
	u := l.u
	u.mu.Lock()
	defer u.mu.Unlock()
	remaining := make([]domain.CartLine, 0, len(u.lines))
	for _, line := range u.lines {
		if line.ID != lineID {
			remaining = append(remaining, line)
		}
	}
	u.lines = remaining
	l.persist()
	return true
}

func (l localCart) clear(ctx context.Context) bool {
	u := l.u
	u.mu.Lock()
	defer u.mu.Unlock()
	u.lines = nil
	u.total = 0
	u.count = 0
	if err := u.store.RemoveCart(); err != nil {
		logger.Error().Err(err).Msg("Failed to remove persisted cart")
	}
	return true
}

// persist recomputes totals and writes the cart through to storage. Caller
// must hold the lock.
func (l localCart) persist() {
	u := l.u
	u.total = domain.CartTotal(u.lines)
	u.count = domain.CartCount(u.lines)

	if err := u.store.SetCart(domain.CartDocument{Items: u.lines, Total: u.total}); err != nil {
		logger.Error().Err(err).Msg("Failed to persist cart")
	}
}
