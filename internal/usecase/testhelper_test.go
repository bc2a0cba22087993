package usecase

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"velora-storefront/internal/api"
	"velora-storefront/internal/domain"
	"velora-storefront/internal/storage/localstore"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

// variantSeed is the catalog the fake remote resolves variant ids against.
type variantSeed struct {
	ProductID string
	Name      string
	Price     float64
	StockQty  int
}

func variantJSON(variantID string, seed variantSeed) string {
	return fmt.Sprintf(`{
		"id": %q,
		"price": %g,
		"color": "",
		"size": "",
		"edition": "",
		"stock_qty": %d,
		"products": {"id": %q, "name": %q, "description": "", "image_url": ""}
	}`, variantID, seed.Price, seed.StockQty, seed.ProductID, seed.Name)
}

// fakeCartServer is a minimal stateful stand-in for the remote cart API.
type fakeCartServer struct {
	mu       sync.Mutex
	variants map[string]variantSeed
	lines    map[string]*fakeCartLine // line id -> line
	order    []string
	nextID   int

	failDelete bool
	rejectAll  int // when non-zero, every request returns this status
}

type fakeCartLine struct {
	VariantID string
	Quantity  int
}

func newFakeCartServer(variants map[string]variantSeed) *fakeCartServer {
	return &fakeCartServer{
		variants: variants,
		lines:    make(map[string]*fakeCartLine),
	}
}

func (s *fakeCartServer) total() float64 {
	var total float64
	for _, id := range s.order {
		line := s.lines[id]
		total += s.variants[line.VariantID].Price * float64(line.Quantity)
	}
	return total
}

func (s *fakeCartServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rejectAll != 0 {
		w.WriteHeader(s.rejectAll)
		fmt.Fprint(w, `{"success":false,"message":"rejected"}`)
		return
	}

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/api/cart":
		rows := make([]string, 0, len(s.order))
		for _, id := range s.order {
			line := s.lines[id]
			rows = append(rows, fmt.Sprintf(`{"id":%q,"quantity":%d,"product_variants":%s}`,
				id, line.Quantity, variantJSON(line.VariantID, s.variants[line.VariantID])))
		}
		fmt.Fprintf(w, `{"success":true,"total":%g,"data":[%s]}`, s.total(), strings.Join(rows, ","))

	case r.Method == http.MethodPost && r.URL.Path == "/api/cart":
		var req struct {
			VariantID string `json:"variant_id"`
			Quantity  int    `json:"quantity"`
		}
		decodeJSON(r, &req)
		if _, ok := s.variants[req.VariantID]; !ok {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"success":false,"message":"unknown variant"}`)
			return
		}
		for _, line := range s.lines {
			if line.VariantID == req.VariantID {
				line.Quantity += req.Quantity
				fmt.Fprint(w, `{"success":true}`)
				return
			}
		}
		s.nextID++
		id := fmt.Sprintf("line-%d", s.nextID)
		s.lines[id] = &fakeCartLine{VariantID: req.VariantID, Quantity: req.Quantity}
		s.order = append(s.order, id)
		fmt.Fprint(w, `{"success":true}`)

	case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, "/api/cart/"):
		id := strings.TrimPrefix(r.URL.Path, "/api/cart/")
		var req struct {
			Quantity int `json:"quantity"`
		}
		decodeJSON(r, &req)
		line, ok := s.lines[id]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"success":false,"message":"no such line"}`)
			return
		}
		line.Quantity = req.Quantity
		fmt.Fprint(w, `{"success":true}`)

	case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/api/cart/"):
		if s.failDelete {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, `{"success":false,"message":"delete failed"}`)
			return
		}
		id := strings.TrimPrefix(r.URL.Path, "/api/cart/")
		delete(s.lines, id)
		for i, existing := range s.order {
			if existing == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
		fmt.Fprint(w, `{"success":true}`)

	default:
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"success":false,"message":"not found"}`)
	}
}

// fakeWishlistServer mirrors the remote wishlist API. Entry ids are
// deterministic per variant so a re-add reproduces the removed id.
type fakeWishlistServer struct {
	mu       sync.Mutex
	variants map[string]variantSeed
	entries  []string // variant ids, entry id = "w-" + variant id

	failDelete bool
	failAdd    bool
	// When set, a delete signals deleteStarted and blocks until
	// deleteProceed is closed, so tests can interleave a re-add.
	deleteStarted chan struct{}
	deleteProceed chan struct{}
}

func newFakeWishlistServer(variants map[string]variantSeed) *fakeWishlistServer {
	return &fakeWishlistServer{variants: variants}
}

func (s *fakeWishlistServer) entryJSON(variantID string) string {
	return fmt.Sprintf(`{"id":%q,"product_variants":%s}`,
		"w-"+variantID, variantJSON(variantID, s.variants[variantID]))
}

func (s *fakeWishlistServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/api/wishlist":
		s.mu.Lock()
		rows := make([]string, 0, len(s.entries))
		for _, variantID := range s.entries {
			rows = append(rows, s.entryJSON(variantID))
		}
		s.mu.Unlock()
		fmt.Fprintf(w, `{"success":true,"data":[%s]}`, strings.Join(rows, ","))

	case r.Method == http.MethodPost && r.URL.Path == "/api/wishlist":
		var req struct {
			VariantID string `json:"variant_id"`
		}
		decodeJSON(r, &req)

		s.mu.Lock()
		if s.failAdd {
			s.mu.Unlock()
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, `{"success":false,"message":"add failed"}`)
			return
		}
		if _, ok := s.variants[req.VariantID]; !ok {
			s.mu.Unlock()
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"success":false,"message":"unknown variant"}`)
			return
		}
		s.entries = append(s.entries, req.VariantID)
		body := s.entryJSON(req.VariantID)
		s.mu.Unlock()
		fmt.Fprintf(w, `{"success":true,"data":%s}`, body)

	case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/api/wishlist/"):
		if s.deleteStarted != nil {
			s.deleteStarted <- struct{}{}
			<-s.deleteProceed
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.failDelete {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, `{"success":false,"message":"delete failed"}`)
			return
		}
		entryID := strings.TrimPrefix(r.URL.Path, "/api/wishlist/")
		for i, variantID := range s.entries {
			if "w-"+variantID == entryID {
				s.entries = append(s.entries[:i], s.entries[i+1:]...)
				break
			}
		}
		fmt.Fprint(w, `{"success":true}`)

	default:
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"success":false,"message":"not found"}`)
	}
}

func decodeJSON(r *http.Request, out interface{}) {
	_ = json.NewDecoder(r.Body).Decode(out)
}

// testEnv wires a store and client against the given handler.
type testEnv struct {
	store  *localstore.Store
	client *api.Client
	auth   *AuthUsecase
}

func newTestEnv(t *testing.T, handler http.Handler) *testEnv {
	t.Helper()

	store, err := localstore.Open(t.TempDir())
	require.NoError(t, err)

	var baseURL string
	if handler != nil {
		server := httptest.NewServer(handler)
		t.Cleanup(server.Close)
		baseURL = server.URL
	} else {
		// Nothing listening: every remote call is a transport failure
		dead := httptest.NewServer(http.NotFoundHandler())
		dead.Close()
		baseURL = dead.URL
	}

	client := api.NewClient(baseURL, 2*time.Second, store, 1000, 1000)
	return &testEnv{
		store:  store,
		client: client,
		auth:   NewAuthUsecase(client, store),
	}
}

func (e *testEnv) loginAs(t *testing.T, role string) {
	t.Helper()
	// An opaque token is accepted as-is by IsAuthenticated
	require.NoError(t, e.store.SetSession("tok-test", domain.User{
		ID: "u1", Name: "Asha", Email: "asha@example.com", Role: role,
	}))
}
