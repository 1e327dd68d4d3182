package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"

	"github.com/khoahotran/rentredi/adapters/event"
	"github.com/khoahotran/rentredi/adapters/persistence"
	userUC "github.com/khoahotran/rentredi/internal/application/usecase/user"
	"github.com/khoahotran/rentredi/internal/domain/location"
	"github.com/khoahotran/rentredi/pkg/apperror"
	"github.com/khoahotran/rentredi/pkg/logger"
	"github.com/khoahotran/rentredi/pkg/metrics"
)

func ptr[T any](v T) *T { return &v }

type countingLookup struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (l *countingLookup) Lookup(_ context.Context, zipCode string) (location.Location, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, zipCode)
	if l.err != nil {
		return location.Location{}, l.err
	}
	switch zipCode {
	case "10001":
		return location.Location{Latitude: ptr(40.71), Longitude: ptr(-74.01), TimezoneOffset: ptr(-14400)}, nil
	case "94105":
		return location.Location{Latitude: ptr(37.79), Longitude: ptr(-122.39), TimezoneOffset: ptr(-25200)}, nil
	}
	return location.Location{}, nil
}

func (l *countingLookup) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.calls)
}

func newTestUserHandler(lookup location.Lookup) *UserHandler {
	log := logger.NewNop()
	repo := persistence.NewMemoryUserRepo()
	pub := event.NoopPublisher{}

	return NewUserHandler(
		userUC.NewCreateUserUseCase(repo, lookup, pub, log),
		userUC.NewListUsersUseCase(repo),
		userUC.NewGetUserUseCase(repo),
		userUC.NewUpdateUserUseCase(repo, lookup, pub, log),
		userUC.NewDeleteUserUseCase(repo, pub, log),
		log,
	)
}

// newTestRouter assembles the API over an in-memory store.
func newTestRouter(lookup location.Lookup, includeStack bool) *gin.Engine {
	return NewRouter(RouterDeps{UserHandler: newTestUserHandler(lookup), Logger: logger.NewNop(), IncludeStack: includeStack})
}

type UserAPITestSuite struct {
	suite.Suite
	router *gin.Engine
	lookup *countingLookup
}

func (s *UserAPITestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
}

func (s *UserAPITestSuite) SetupTest() {
	s.lookup = &countingLookup{}
	s.router = newTestRouter(s.lookup, false)
}

func (s *UserAPITestSuite) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func (s *UserAPITestSuite) decode(rr *httptest.ResponseRecorder) map[string]any {
	var out map[string]any
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return out
}

func (s *UserAPITestSuite) createJane() map[string]any {
	rr := s.do(http.MethodPost, "/users", `{"name":"Jane Doe","zipCode":"10001"}`)
	s.Require().Equal(http.StatusCreated, rr.Code, rr.Body.String())
	return s.decode(rr)
}

func (s *UserAPITestSuite) TestWelcomeAndHealth() {
	rr := s.do(http.MethodGet, "/", "")
	s.Equal(http.StatusOK, rr.Code)
	s.Equal("Welcome to the RentRedi API!", rr.Body.String())

	rr = s.do(http.MethodGet, "/health", "")
	s.Equal(http.StatusOK, rr.Code)
	s.Equal("ok", s.decode(rr)["status"])

	rr = s.do(http.MethodGet, "/health/ready", "")
	s.Equal(http.StatusOK, rr.Code)
	s.Equal(true, s.decode(rr)["ready"])
}

func (s *UserAPITestSuite) TestCreate_MissingFields() {
	cases := map[string]string{
		`{}`:                           `"name" is required`,
		`{"zipCode":"10001"}`:          `"name" is required`,
		`{"name":""}`:                  `"name" is required`,
		`{"name":"Jane"}`:              `"zipCode" is required`,
		`{"name":"Jane","zipCode":""}`: `"zipCode" is required`,
	}
	for body, want := range cases {
		rr := s.do(http.MethodPost, "/users", body)
		s.Equal(http.StatusBadRequest, rr.Code, body)
		out := s.decode(rr)
		s.Equal(want, out["error"], body)
		s.NotContains(out, "stack")
	}

	rr := s.do(http.MethodPost, "/users", "")
	s.Equal(http.StatusBadRequest, rr.Code)
	s.Equal(`"name" is required`, s.decode(rr)["error"])
	s.Zero(s.lookup.count())
}

func (s *UserAPITestSuite) TestCreate_MalformedBody() {
	rr := s.do(http.MethodPost, "/users", `{"name":`)
	s.Equal(http.StatusBadRequest, rr.Code)
	s.True(strings.HasPrefix(s.decode(rr)["error"].(string), "invalid request data"))
}

func (s *UserAPITestSuite) TestNumericZipCodeIsAccepted() {
	rr := s.do(http.MethodPost, "/users", `{"name":"Jane Doe","zipCode":10001}`)
	s.Require().Equal(http.StatusCreated, rr.Code, rr.Body.String())
	created := s.decode(rr)
	s.Equal("10001", created["zipCode"])
	s.Equal(40.71, created["latitude"])

	rr = s.do(http.MethodPut, "/users/"+created["id"].(string), `{"zipCode":94105}`)
	s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())
	s.Equal("94105", s.decode(rr)["zipCode"])

	rr = s.do(http.MethodPost, "/users", `{"name":"Jane Doe","zipCode":true}`)
	s.Equal(http.StatusBadRequest, rr.Code)
}

func (s *UserAPITestSuite) TestCreate_ReturnsDerivedFields() {
	out := s.createJane()

	s.NotEmpty(out["id"])
	s.Equal("Jane Doe", out["name"])
	s.Equal("10001", out["zipCode"])
	s.Equal(40.71, out["latitude"])
	s.Equal(-74.01, out["longitude"])
	s.Equal(float64(-14400), out["timezone"])
	s.Len(out, 6)

	rr := s.do(http.MethodGet, "/users/"+out["id"].(string), "")
	s.Equal(http.StatusOK, rr.Code)
	s.Equal(out, s.decode(rr))
}

func (s *UserAPITestSuite) TestCreate_AbsentDerivedFieldsAreOmitted() {
	rr := s.do(http.MethodPost, "/users", `{"name":"Nomad","zipCode":"00000"}`)
	s.Require().Equal(http.StatusCreated, rr.Code)
	out := s.decode(rr)
	s.NotContains(out, "latitude")
	s.NotContains(out, "longitude")
	s.NotContains(out, "timezone")
}

func (s *UserAPITestSuite) TestCreate_LookupFailure() {
	s.lookup.err = apperror.NewUpstream("Invalid zip code or OpenWeather error: city not found", "", nil)

	rr := s.do(http.MethodPost, "/users", `{"name":"Jane","zipCode":"99999"}`)
	s.Equal(http.StatusInternalServerError, rr.Code)
	s.Equal("Invalid zip code or OpenWeather error: city not found", s.decode(rr)["error"])

	rr = s.do(http.MethodGet, "/users", "")
	s.Equal("[]", strings.TrimSpace(rr.Body.String()))
}

func (s *UserAPITestSuite) TestList() {
	rr := s.do(http.MethodGet, "/users", "")
	s.Equal(http.StatusOK, rr.Code)
	s.Equal("[]", strings.TrimSpace(rr.Body.String()))

	s.createJane()
	rr = s.do(http.MethodGet, "/users", "")
	var users []map[string]any
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &users))
	s.Len(users, 1)
	s.Equal("Jane Doe", users[0]["name"])
}

func (s *UserAPITestSuite) TestUpdate_NameOnly() {
	created := s.createJane()
	id := created["id"].(string)

	rr := s.do(http.MethodPut, "/users/"+id, `{"name":"Janet"}`)
	s.Equal(http.StatusOK, rr.Code)
	out := s.decode(rr)
	s.Equal("Janet", out["name"])
	s.Equal(created["zipCode"], out["zipCode"])
	s.Equal(created["latitude"], out["latitude"])
	s.Equal(created["timezone"], out["timezone"])
	s.Equal(1, s.lookup.count())
}

func (s *UserAPITestSuite) TestUpdate_SameZip() {
	created := s.createJane()

	rr := s.do(http.MethodPut, "/users/"+created["id"].(string), `{"zipCode":"10001"}`)
	s.Equal(http.StatusOK, rr.Code)
	s.Equal(created, s.decode(rr))
	s.Equal(1, s.lookup.count())
}

func (s *UserAPITestSuite) TestUpdate_NewZip() {
	created := s.createJane()

	rr := s.do(http.MethodPut, "/users/"+created["id"].(string), `{"zipCode":"94105"}`)
	s.Equal(http.StatusOK, rr.Code)
	out := s.decode(rr)
	s.Equal("94105", out["zipCode"])
	s.Equal(37.79, out["latitude"])
	s.Equal(-122.39, out["longitude"])
	s.Equal(float64(-25200), out["timezone"])
	s.Equal([]string{"10001", "94105"}, s.lookup.calls)
}

func (s *UserAPITestSuite) TestUpdate_EmptyBody() {
	created := s.createJane()

	rr := s.do(http.MethodPut, "/users/"+created["id"].(string), "")
	s.Equal(http.StatusOK, rr.Code)
	s.Equal(created, s.decode(rr))
}

func (s *UserAPITestSuite) TestMissingUser() {
	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		body := ""
		if method == http.MethodPut {
			body = `{"zipCode":"94105"}`
		}
		rr := s.do(method, "/users/missing", body)
		s.Equal(http.StatusNotFound, rr.Code, method)
		s.Equal(map[string]any{"error": "User not found"}, s.decode(rr), method)
	}
	s.Zero(s.lookup.count())
}

func (s *UserAPITestSuite) TestRoundTrip() {
	id := s.createJane()["id"].(string)

	rr := s.do(http.MethodGet, "/users/"+id, "")
	s.Equal(http.StatusOK, rr.Code)

	rr = s.do(http.MethodDelete, "/users/"+id, "")
	s.Equal(http.StatusOK, rr.Code)
	s.Equal("User deleted successfully", s.decode(rr)["message"])

	rr = s.do(http.MethodGet, "/users/"+id, "")
	s.Equal(http.StatusNotFound, rr.Code)
}

func (s *UserAPITestSuite) TestRouteNotFound() {
	rr := s.do(http.MethodGet, "/nope", "")
	s.Equal(http.StatusNotFound, rr.Code)
	s.Equal(map[string]any{"error": "Route not found"}, s.decode(rr))
}

func (s *UserAPITestSuite) TestCORS() {
	req := httptest.NewRequest(http.MethodOptions, "/users", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "content-type")
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)

	s.Equal(http.StatusNoContent, rr.Code)
	s.Equal("http://localhost:5173", rr.Header().Get("Access-Control-Allow-Origin"))
	s.Equal("true", rr.Header().Get("Access-Control-Allow-Credentials"))
	s.Equal("content-type", rr.Header().Get("Access-Control-Allow-Headers"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://example.com")
	rr = httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	s.Equal("http://example.com", rr.Header().Get("Access-Control-Allow-Origin"))
}

func (s *UserAPITestSuite) TestMetrics() {
	before := metrics.RequestCount(http.MethodGet, "/users/:id", http.StatusNotFound)
	s.do(http.MethodGet, "/users/missing", "")
	s.Equal(before+1, metrics.RequestCount(http.MethodGet, "/users/:id", http.StatusNotFound))

	rr := s.do(http.MethodGet, "/metrics", "")
	s.Equal(http.StatusOK, rr.Code)
	s.Contains(rr.Body.String(), "rentredi_http_requests_total")
}

func (s *UserAPITestSuite) TestPanicRecovered() {
	s.router.GET("/boom", func(c *gin.Context) { panic("boom") })

	rr := s.do(http.MethodGet, "/boom", "")
	s.Equal(http.StatusInternalServerError, rr.Code)
	s.Equal("Internal Server Error", s.decode(rr)["error"])
}

func TestUserAPITestSuite(t *testing.T) {
	suite.Run(t, new(UserAPITestSuite))
}

func TestErrorStackOutsideProduction(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := newTestRouter(&countingLookup{}, true)

	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"name":"Jane"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	var out map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if rr.Code != http.StatusBadRequest || out["error"] != `"zipCode" is required` {
		t.Fatalf("unexpected response %d %v", rr.Code, out)
	}
	if stack, _ := out["stack"].(string); stack == "" {
		t.Fatal("expected stack outside production")
	}

	// Not-found responses are written by the handler and never carry a stack.
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/users/missing", nil))
	if strings.Contains(rr.Body.String(), "stack") {
		t.Fatalf("unexpected stack in %s", rr.Body.String())
	}
}

func TestRouterWithTracing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := NewRouter(RouterDeps{
		UserHandler:    newTestUserHandler(&countingLookup{}),
		Logger:         logger.NewNop(),
		TracingService: "rentredi-test",
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rr.Code)
	}
}
