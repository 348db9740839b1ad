package httpgin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kirinyoku/gigledger/internal/domain"
	"github.com/kirinyoku/gigledger/internal/repository/memory"
	redisrepo "github.com/kirinyoku/gigledger/internal/repository/redis"
	"github.com/kirinyoku/gigledger/internal/service"
	"github.com/kirinyoku/gigledger/internal/service/concert"
)

var (
	operator  = domain.MustIdentity("0x00000000000000000000000000000000000000f0")
	engine    = domain.MustIdentity("0x00000000000000000000000000000000000000e0")
	organiser = domain.MustIdentity("0x00000000000000000000000000000000000000d1")
	venue     = domain.MustIdentity("0x00000000000000000000000000000000000000b1")
	artist    = domain.MustIdentity("0x00000000000000000000000000000000000000a1")
	buyer     = domain.MustIdentity("0x00000000000000000000000000000000000000c1")
)

var (
	testSecret = []byte("test-secret")
	testNow    = time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
)

const (
	tenthEther = "100000000000000000"
	fifthEther = "200000000000000000"
)

type harness struct {
	t    *testing.T
	r    *gin.Engine
	svcs *service.Services
	hub  *Hub
	idem *memIdem
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	hub := NewHub()
	idem := newMemIdem()

	svcs := service.NewServices(memory.NewStore(), service.Deps{Notifier: hub}, service.Config{
		Engine:       engine,
		Operators:    domain.NewIdentitySet(operator),
		PayoutPolicy: concert.PayoutByOrganiser,
		Now:          func() time.Time { return testNow },
	}, log)

	ctx := context.Background()
	if err := svcs.Tickets.EnsureMinter(ctx, engine); err != nil {
		t.Fatalf("ensure ticket minter: %v", err)
	}
	if err := svcs.Supporters.EnsureMinter(ctx, engine); err != nil {
		t.Fatalf("ensure supporter minter: %v", err)
	}

	return &harness{
		t:    t,
		r:    NewRouter(svcs, Options{JWTSecret: testSecret, Idem: idem, Hub: hub}, log),
		svcs: svcs,
		hub:  hub,
		idem: idem,
	}
}

// do sends body (marshalled unless it is already a string) as caller. An
// empty caller sends no Authorization header.
func (h *harness) do(method, path string, caller domain.Identity, body any, headers ...string) *httptest.ResponseRecorder {
	h.t.Helper()

	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			h.t.Fatal(err)
		}
		rd = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, rd)
	if rd != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if caller != "" {
		tok, err := IssueToken(testSecret, caller, time.Hour)
		if err != nil {
			h.t.Fatal(err)
		}
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	h.r.ServeHTTP(w, req)
	return w
}

func pathf(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}

func (h *harness) expect(w *httptest.ResponseRecorder, status int) {
	h.t.Helper()
	if w.Code != status {
		h.t.Fatalf("status = %d, want %d; body %s", w.Code, status, w.Body.String())
	}
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
	return v
}

func (h *harness) approveRoles() {
	h.t.Helper()
	for role, id := range map[string]domain.Identity{
		"organiser": organiser,
		"venue":     venue,
		"artist":    artist,
	} {
		h.expect(h.do(http.MethodPost, "/admin/roles/"+role, operator, ApproveRoleRequest{Identity: id.String()}), http.StatusCreated)
	}
}

func scenarioRequest() CreateConcertRequest {
	return CreateConcertRequest{
		Artist:             artist.String(),
		Venue:              venue.String(),
		ArtistPayoutPct:    40,
		OrganiserPayoutPct: 40,
		VenuePayoutPct:     10,
		TotalTickets:       2,
		PresaleTickets:     1,
		PresaleUnitPrice:   tenthEther,
		GeneralUnitPrice:   fifthEther,
		MetadataURI:        "ipfs://concert",
	}
}

// openConcert creates the scenario concert and approves it into presale.
func (h *harness) openConcert() int64 {
	h.t.Helper()
	h.approveRoles()

	w := h.do(http.MethodPost, "/concerts", organiser, scenarioRequest())
	h.expect(w, http.StatusCreated)
	id := decode[CreateConcertResponse](h.t, w).ConcertID

	h.expect(h.do(http.MethodPost, pathf("/concerts/%d/venue-approval", id), venue, nil), http.StatusOK)
	w = h.do(http.MethodPost, pathf("/concerts/%d/artist-approval", id), artist, nil)
	h.expect(w, http.StatusOK)
	if st := decode[StateResponse](h.t, w).State; st != domain.StatePreSale {
		h.t.Fatalf("state after artist approval = %s", st)
	}

	return id
}

// memIdem is an in-process IdempotencyStore.
type memIdem struct {
	mu      sync.Mutex
	locks   map[string]string
	results map[string][]byte
}

func newMemIdem() *memIdem {
	return &memIdem{locks: map[string]string{}, results: map[string][]byte{}}
}

func (m *memIdem) Acquire(_ context.Context, key string, _ time.Duration) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.results[key]; ok {
		return "", false, nil
	}
	if _, ok := m.locks[key]; ok {
		return "", false, nil
	}
	m.locks[key] = "owner-" + key
	return m.locks[key], true, nil
}

func (m *memIdem) SaveResult(_ context.Context, key string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, key)
	m.results[key] = payload
	return nil
}

func (m *memIdem) Lookup(_ context.Context, key string) ([]byte, redisrepo.IdemState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b, ok := m.results[key]; ok {
		return b, redisrepo.IdemDone, nil
	}
	if _, ok := m.locks[key]; ok {
		return nil, redisrepo.IdemInFlight, nil
	}
	return nil, redisrepo.IdemAbsent, nil
}

func (m *memIdem) Release(_ context.Context, key, owner string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locks[key] == owner {
		delete(m.locks, key)
	}
	return nil
}
