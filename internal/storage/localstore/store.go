package localstore

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"velora-storefront/internal/domain"

	"github.com/goccy/go-json"
)

const fileName = "storefront.json"

// document is the on-disk shape. Each field corresponds to one storage key;
// absent keys are valid (anonymous session with nothing cached).
type document struct {
	Token    string                 `json:"token,omitempty"`
	User     *domain.User           `json:"user,omitempty"`
	Cart     *domain.CartDocument   `json:"cart,omitempty"`
	Wishlist []domain.WishlistEntry `json:"wishlist,omitempty"`
}

// Store is the single typed seam in front of persistent local state. All
// reads and writes of the token, cached user, anonymous cart, and anonymous
// wishlist go through here.
type Store struct {
	mu   sync.Mutex
	path string
	doc  document
}

// Open loads the state file under dir, creating the directory if needed.
// A missing file is an empty store.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}

	s := &Store{path: filepath.Join(dir, fileName)}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(data, &s.doc); err != nil {
		return nil, err
	}
	return s, nil
}

// Token returns the persisted bearer token, empty when anonymous.
// Satisfies the API client's token source.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Token
}

// SetSession persists the token and user keys together.
func (s *Store) SetSession(token string, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Token = token
	s.doc.User = &user
	return s.flush()
}

// ClearSession removes both session keys. Idempotent.
func (s *Store) ClearSession() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Token = ""
	s.doc.User = nil
	return s.flush()
}

func (s *Store) User() (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc.User == nil {
		return domain.User{}, false
	}
	return *s.doc.User, true
}

func (s *Store) Cart() (domain.CartDocument, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc.Cart == nil {
		return domain.CartDocument{}, false
	}
	return *s.doc.Cart, true
}

func (s *Store) SetCart(cart domain.CartDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Cart = &cart
	return s.flush()
}

func (s *Store) RemoveCart() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Cart = nil
	return s.flush()
}

func (s *Store) Wishlist() ([]domain.WishlistEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc.Wishlist == nil {
		return nil, false
	}
	entries := make([]domain.WishlistEntry, len(s.doc.Wishlist))
	copy(entries, s.doc.Wishlist)
	return entries, true
}

func (s *Store) SetWishlist(entries []domain.WishlistEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Wishlist = make([]domain.WishlistEntry, len(entries))
	copy(s.doc.Wishlist, entries)
	return s.flush()
}

func (s *Store) RemoveWishlist() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Wishlist = nil
	return s.flush()
}

// flush writes the document via a temp file rename so a crash mid-write
// cannot truncate existing state. Caller must hold the lock.
func (s *Store) flush() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
