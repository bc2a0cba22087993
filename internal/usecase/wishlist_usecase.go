package usecase

import (
	"context"
	"sync"

	"velora-storefront/internal/api"
	"velora-storefront/internal/domain"
	"velora-storefront/internal/storage/localstore"
	"velora-storefront/pkg/apperr"
	"velora-storefront/pkg/logger"

	"github.com/google/uuid"
)

// pendingRemoval marks an entry whose remote delete is still in flight, so a
// concurrent re-add can be detected deterministically at revert time.
type pendingRemoval struct {
	entry   domain.WishlistEntry
	readded bool
}

// wishlistSource is one side of the dual-source rule, mirroring the cart's
// variants without the total/count aggregation.
type wishlistSource interface {
	load(ctx context.Context)
	add(ctx context.Context, item domain.WishlistEntry) bool
	remove(ctx context.Context, entryID string)
	clear()
}

// WishlistUsecase owns the wishlist state and dedupe rule; the per-session
// behavior lives in the selected wishlistSource variant. Removal on the
// remote variant is optimistic: the entry disappears immediately and is
// re-inserted only if the remote delete fails and nothing re-added it in the
// interim.
type WishlistUsecase struct {
	mu     sync.Mutex
	client *api.Client
	store  *localstore.Store
	auth   *AuthUsecase

	entries  []domain.WishlistEntry
	loading  bool
	removals map[string]*pendingRemoval
}

func NewWishlistUsecase(client *api.Client, store *localstore.Store, auth *AuthUsecase) *WishlistUsecase {
	return &WishlistUsecase{
		client:   client,
		store:    store,
		auth:     auth,
		removals: make(map[string]*pendingRemoval),
	}
}

func (u *WishlistUsecase) source() wishlistSource {
	if u.auth.IsAuthenticated() {
		return remoteWishlist{u}
	}
	return localWishlist{u}
}

// Load sources the wishlist from the remote (authenticated) or local storage
// (anonymous).
func (u *WishlistUsecase) Load(ctx context.Context) {
	u.source().load(ctx)
}

// Entries returns a copy of the current wishlist.
func (u *WishlistUsecase) Entries() []domain.WishlistEntry {
	u.mu.Lock()
	defer u.mu.Unlock()
	entries := make([]domain.WishlistEntry, len(u.entries))
	copy(entries, u.entries)
	return entries
}

func (u *WishlistUsecase) Loading() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.loading
}

// AddToWishlist appends the item unless an entry for the same variant or the
// same identifier already exists.
func (u *WishlistUsecase) AddToWishlist(ctx context.Context, item domain.WishlistEntry) bool {
	u.mu.Lock()
	for _, e := range u.entries {
		if (item.VariantID != "" && e.VariantID == item.VariantID) || (item.ID != "" && e.ID == item.ID) {
			u.mu.Unlock()
			return true
		}
	}
	u.mu.Unlock()

	return u.source().add(ctx, item)
}

// RemoveFromWishlist removes the entry; the remote variant confirms with the
// server and reverts a failed delete unless the same identifier was re-added
// while the delete was in flight.
func (u *WishlistUsecase) RemoveFromWishlist(ctx context.Context, entryID string) {
	u.source().remove(ctx, entryID)
}

// IsInWishlist matches the candidate against entry, variant, and product
// identifiers alike; call sites pass any of the three.
func (u *WishlistUsecase) IsInWishlist(candidateID string) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, e := range u.entries {
		if e.Matches(candidateID) {
			return true
		}
	}
	return false
}

// ClearWishlist zeroes in-memory state. The remote variant does not issue
// per-entry deletes; the server copy is left as-is.
func (u *WishlistUsecase) ClearWishlist() {
	u.source().clear()
}

// takeOut removes the entry with the given id, returning it if found. Caller
// must hold the lock.
func (u *WishlistUsecase) takeOut(entryID string) *domain.WishlistEntry {
	var removed *domain.WishlistEntry
	remaining := make([]domain.WishlistEntry, 0, len(u.entries))
	for _, e := range u.entries {
		if e.ID == entryID {
			entry := e
			removed = &entry
			continue
		}
		remaining = append(remaining, e)
	}
	u.entries = remaining
	return removed
}

// append adds the entry and flags any pending removal for its identifier so
// the revert path knows to stand down. Takes the lock itself.
func (u *WishlistUsecase) append(entry domain.WishlistEntry) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if marker, ok := u.removals[entry.ID]; ok {
		marker.readded = true
	}
	u.entries = append(u.entries, entry)
}

func (u *WishlistUsecase) forceLogoutOn(err error) {
	if apperr.Is(err, apperr.CodeUnauthorized) {
		u.auth.Logout()
	}
}

// remoteWishlist is the RemoteBacked variant.
type remoteWishlist struct {
	u *WishlistUsecase
}

// load degrades to the cached copy when the remote fetch fails.
func (r remoteWishlist) load(ctx context.Context) {
	u := r.u
	u.mu.Lock()
	u.loading = true
	u.mu.Unlock()

	entries, err := u.client.GetWishlist(ctx)

	u.mu.Lock()
	defer u.mu.Unlock()
	u.loading = false

	if err != nil {
		logger.Warn().Err(err).Msg("Wishlist fetch failed, using cached copy")
		if cached, ok := u.store.Wishlist(); ok {
			u.entries = cached
		}
		return
	}
	u.entries = entries
}

// add appends the entry the remote returns; on remote failure the
// client-constructed item is appended anyway, an accepted inconsistency.
func (r remoteWishlist) add(ctx context.Context, item domain.WishlistEntry) bool {
	u := r.u
	variantID := item.VariantID
	if variantID == "" {
		variantID = item.ID
	}

	entry, err := u.client.AddWishlistItem(ctx, variantID)
	if err != nil {
		logger.Error().Err(err).Str("variant_id", variantID).Msg("Failed to add to wishlist")
		u.forceLogoutOn(err)
		u.append(item)
		return true
	}
	u.append(entry)
	return true
}

// remove drops the entry immediately, then confirms with the remote.
func (r remoteWishlist) remove(ctx context.Context, entryID string) {
	u := r.u
	u.mu.Lock()
	removed := u.takeOut(entryID)
	if removed == nil {
		u.mu.Unlock()
		return
	}
	marker := &pendingRemoval{entry: *removed}
	u.removals[entryID] = marker
	u.mu.Unlock()

	err := u.client.DeleteWishlistItem(ctx, entryID)

	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.removals, entryID)

	if err == nil {
		return
	}

	logger.Error().Err(err).Str("entry_id", entryID).Msg("Failed to remove from wishlist")
	u.forceLogoutOn(err)

	// Revert, unless something re-added the entry while the delete was in
	// flight.
	if marker.readded {
		return
	}
	for _, e := range u.entries {
		if e.ID == entryID {
			return
		}
	}
	u.entries = append(u.entries, marker.entry)
}

func (r remoteWishlist) clear() {
	u := r.u
	u.mu.Lock()
	defer u.mu.Unlock()
	u.entries = nil
}

// localWishlist is the LocalBacked variant.
type localWishlist struct {
	u *WishlistUsecase
}

func (l localWishlist) load(ctx context.Context) {
	u := l.u
	u.mu.Lock()
	defer u.mu.Unlock()
	if cached, ok := u.store.Wishlist(); ok {
		u.entries = cached
	}
}

func (l localWishlist) add(ctx context.Context, item domain.WishlistEntry) bool {
	u := l.u
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	u.append(item)

	u.mu.Lock()
	defer u.mu.Unlock()
	l.persist()
	return true
}

func (l localWishlist) remove(ctx context.Context, entryID string) {
	u := l.u
	u.mu.Lock()
	defer u.mu.Unlock()
	u.takeOut(entryID)
	l.persist()
}

func (l localWishlist) clear() {
	u := l.u
	u.mu.Lock()
	defer u.mu.Unlock()
	u.entries = nil
	if err := u.store.RemoveWishlist(); err != nil {
		logger.Error().Err(err).Msg("Failed to remove persisted wishlist")
	}
}

// persist writes the wishlist through to storage. Caller must hold the lock.
func (l localWishlist) persist() {
	if err := l.u.store.SetWishlist(l.u.entries); err != nil {
		logger.Error().Err(err).Msg("Failed to persist wishlist")
	}
}
