package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/solosphere/jobs-api/internal/api/middleware"
	"github.com/solosphere/jobs-api/internal/core/domain"
	"github.com/solosphere/jobs-api/internal/core/ports"
	"github.com/solosphere/jobs-api/internal/core/service"
)

const testSecret = "router-test-secret"

type okMongo struct{}

func (okMongo) Ping(context.Context, *readpref.ReadPref) error { return nil }

// memoryJobs is a tiny in-memory JobService for routing tests.
type memoryJobs struct {
	mu    sync.Mutex
	jobs  []domain.Job
	calls int
}

func (m *memoryJobs) touch() {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
}

func (m *memoryJobs) List(context.Context) ([]domain.Job, error) {
	m.touch()
	return m.jobs, nil
}

func (m *memoryJobs) Page(context.Context, ports.ListJobsInput) ([]domain.Job, error) {
	m.touch()
	return m.jobs, nil
}

func (m *memoryJobs) Count(context.Context, string) (int64, error) {
	m.touch()
	return int64(len(m.jobs)), nil
}

func (m *memoryJobs) Get(_ context.Context, id string) (*domain.Job, error) {
	m.touch()
	for i := range m.jobs {
		if m.jobs[i].ID == id {
			return &m.jobs[i], nil
		}
	}
	return nil, domain.ErrJobNotFound
}

func (m *memoryJobs) ListByBuyer(_ context.Context, email string) ([]domain.Job, error) {
	m.touch()
	out := []domain.Job{}
	for _, j := range m.jobs {
		if j.Buyer != nil && j.Buyer.Email == email {
			out = append(out, j)
		}
	}
	return out, nil
}

func (m *memoryJobs) Create(context.Context, *domain.Job) (string, error) {
	m.touch()
	return "new", nil
}

func (m *memoryJobs) Delete(context.Context, string) (int64, error) {
	m.touch()
	return 1, nil
}

func (m *memoryJobs) Upsert(context.Context, string, *domain.Job) (*domain.UpsertResult, error) {
	m.touch()
	return &domain.UpsertResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

// memoryBids enforces the (email, title) uniqueness like the real service.
type memoryBids struct {
	mu   sync.Mutex
	bids []domain.Bid
}

func (m *memoryBids) List(context.Context) ([]domain.Bid, error) { return m.bids, nil }

func (m *memoryBids) ListByBidder(_ context.Context, email string) ([]domain.Bid, error) {
	out := []domain.Bid{}
	for _, b := range m.bids {
		if b.Email == email {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memoryBids) ListRequests(_ context.Context, email string) ([]domain.Bid, error) {
	out := []domain.Bid{}
	for _, b := range m.bids {
		if b.Buyer != nil && b.Buyer.Email == email {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memoryBids) Place(_ context.Context, bid domain.Bid) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.bids {
		if b.Key() == bid.Key() {
			return "", domain.ErrDuplicateBid
		}
	}
	m.bids = append(m.bids, bid)
	return "bid", nil
}

func (m *memoryBids) UpdateStatus(context.Context, string, domain.BidStatus) (*domain.UpdateResult, error) {
	return nil, domain.ErrBidNotFound
}

type testServer struct {
	e      *echo.Echo
	tokens *service.TokenService
	jobs   *memoryJobs
	bids   *memoryBids
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	tokens := service.NewTokenService(testSecret, 0, nil, zerolog.Nop())
	jobs := &memoryJobs{jobs: []domain.Job{
		{ID: "j1", Title: "API", Category: "Web Development", Buyer: &domain.Buyer{Email: "owner@x.com"}},
	}}
	bids := &memoryBids{}

	e := NewRouter(Deps{
		Tokens:         tokens,
		Jobs:           jobs,
		Bids:           bids,
		Mongo:          okMongo{},
		CORSOrigins:    []string{"http://localhost:5173"},
		RateLimitRPS:   1000,
		RateLimitBurst: 1000,
		Registry:       prometheus.NewRegistry(),
		Log:            zerolog.Nop(),
	})
	return &testServer{e: e, tokens: tokens, jobs: jobs, bids: bids}
}

func (s *testServer) do(t *testing.T, method, target, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: middleware.CookieName, Value: token})
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) login(t *testing.T, email string) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/jwt", `{"email":"`+email+`"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", rec.Code)
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.CookieName {
			return c.Value
		}
	}
	t.Fatalf("no session cookie issued")
	return ""
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid error body %q: %v", rec.Body.String(), err)
	}
	return resp.Error
}

func TestRouter_GuardedRouteWithoutToken(t *testing.T) {
	s := newTestServer(t)

	for _, target := range []string{"/alljobs/j1", "/bidjobs", "/alljobss/owner@x.com", "/bidrequests/owner@x.com"} {
		rec := s.do(t, http.MethodGet, target, "", "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", target, rec.Code)
		}
		if msg := errorBody(t, rec); msg != "unauthorized access" {
			t.Fatalf("%s: unexpected error %q", target, msg)
		}
	}
	if s.jobs.calls != 0 {
		t.Fatalf("no store call may happen without a session, got %d", s.jobs.calls)
	}
}

func TestRouter_GuardedRouteWithForgedToken(t *testing.T) {
	s := newTestServer(t)
	forged := service.NewTokenService("another-secret", 0, nil, zerolog.Nop())
	token, err := forged.Issue(context.Background(), "owner@x.com")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	rec := s.do(t, http.MethodGet, "/alljobs/j1", "", token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if s.jobs.calls != 0 {
		t.Fatalf("expected no store call, got %d", s.jobs.calls)
	}
}

func TestRouter_SessionFlow(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "owner@x.com")

	rec := s.do(t, http.MethodGet, "/alljobs/j1", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var job map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &job); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if job["job_title"] != "API" {
		t.Fatalf("unexpected job: %v", job)
	}

	rec = s.do(t, http.MethodGet, "/alljobs/missing", "", token)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestRouter_OwnershipEnforced(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "alice@x.com")

	for _, target := range []string{"/alljobss/bob@x.com", "/bidjobs/bob@x.com", "/bidrequests/bob@x.com"} {
		rec := s.do(t, http.MethodGet, target, "", token)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("%s: expected 403, got %d", target, rec.Code)
		}
		if msg := errorBody(t, rec); msg != "forbidden" {
			t.Fatalf("%s: unexpected error %q", target, msg)
		}
	}
	if s.jobs.calls != 0 {
		t.Fatalf("expected no store call, got %d", s.jobs.calls)
	}

	rec := s.do(t, http.MethodGet, "/bidjobs/alice@x.com", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for own bids, got %d", rec.Code)
	}
}

func TestRouter_LogoutKeepsTokenVerifiable(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "owner@x.com")

	rec := s.do(t, http.MethodGet, "/logout", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	email, err := s.tokens.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("token should still verify without a denylist: %v", err)
	}
	if email != "owner@x.com" {
		t.Fatalf("unexpected identity %q", email)
	}
}

func TestRouter_DuplicateBid(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "bidder@x.com")
	body := `{"title":"API","email":"bidder@x.com","price":100}`

	rec := s.do(t, http.MethodPost, "/bidjobs", body, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("first bid: expected 200, got %d", rec.Code)
	}

	rec = s.do(t, http.MethodPost, "/bidjobs", body, token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("second bid: expected 400, got %d", rec.Code)
	}
	if msg := errorBody(t, rec); msg != domain.ErrDuplicateBid.Error() {
		t.Fatalf("unexpected error %q", msg)
	}
	if len(s.bids.bids) != 1 {
		t.Fatalf("expected one stored bid, got %d", len(s.bids.bids))
	}
}

func TestRouter_BidStatusNotFound(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "owner@x.com")

	rec := s.do(t, http.MethodPatch, "/bidjobs/b1", `{"status":"Complete"}`, token)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestRouter_PublicListing(t *testing.T) {
	s := newTestServer(t)

	if rec := s.do(t, http.MethodGet, "/newalljobs?page=1&size=10&sort=desc", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("listing: expected 200, got %d", rec.Code)
	}
	if rec := s.do(t, http.MethodGet, "/newalljobs?page=0&size=10", "", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad page: expected 400, got %d", rec.Code)
	}

	rec := s.do(t, http.MethodGet, "/alljobscount", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("count: expected 200, got %d", rec.Code)
	}
	var resp struct {
		Result int64 `json:"result"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Result != 1 {
		t.Fatalf("expected count 1, got %d", resp.Result)
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/alljobs", nil)
	req.Header.Set(echo.HeaderOrigin, "http://localhost:5173")
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPatch)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	h := rec.Header()
	if got := h.Get(echo.HeaderAccessControlAllowOrigin); got != "http://localhost:5173" {
		t.Fatalf("unexpected allow-origin %q", got)
	}
	if got := h.Get(echo.HeaderAccessControlAllowCredentials); got != "true" {
		t.Fatalf("expected credentials allowed, got %q", got)
	}
	if got := h.Get(echo.HeaderAccessControlAllowMethods); !strings.Contains(got, http.MethodPatch) {
		t.Fatalf("PATCH missing from allow-methods %q", got)
	}
}

func TestRouter_OperationalRoutes(t *testing.T) {
	s := newTestServer(t)

	if rec := s.do(t, http.MethodGet, "/", "", ""); rec.Body.String() != "Server is running" {
		t.Fatalf("unexpected banner %q", rec.Body.String())
	}
	if rec := s.do(t, http.MethodGet, "/health/ready", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("readiness: expected 200, got %d", rec.Code)
	}

	rec := s.do(t, http.MethodGet, "/metrics", "", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "solosphere_requests_total") {
		t.Fatalf("metrics: unexpected response %d", rec.Code)
	}

	rec = s.do(t, http.MethodGet, "/swagger/doc.json", "", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "/newalljobs") {
		t.Fatalf("swagger: unexpected response %d", rec.Code)
	}

	if rec := s.do(t, http.MethodGet, "/no-such-route", "", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown route: expected 404, got %d", rec.Code)
	}
}

func TestRouter_RequestIDHeader(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/health", "", "")
	if rec.Header().Get(echo.HeaderXRequestID) == "" {
		t.Fatal("expected a request id header")
	}
}
