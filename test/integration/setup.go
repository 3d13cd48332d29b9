// Package integration provides helpers and integration tests for the
// schedule search service. Integration tests verify that components work
// together correctly, including HTTP handlers, use cases, and the mock
// repositories.
package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	httpAdapter "github.com/airline-ops/schedule-search-service/internal/adapter/http"
	"github.com/airline-ops/schedule-search-service/internal/domain"
	"github.com/airline-ops/schedule-search-service/internal/usecase"
	"github.com/airline-ops/schedule-search-service/test/mock"
)

// TestServer wraps an Echo instance and provides helper methods for integration testing.
type TestServer struct {
	Echo      *echo.Echo
	Repo      *mock.LegRepository
	Inventory *mock.SeatInventory
	Store     *mock.LegStore
}

// NewTestServer creates a test server with the full use case stack wired
// against in-memory repositories seeded with the given legs.
func NewTestServer(legs ...domain.FlightLeg) *TestServer {
	repo := mock.NewLegRepository().WithLegs(legs...)
	inventory := mock.NewSeatInventory()
	store := mock.NewLegStore()

	log := zerolog.Nop()
	engine := usecase.NewConnectionEngine(repo, log)
	searchUC := usecase.NewScheduleSearch(repo, engine, nil, log)
	availabilityUC := usecase.NewAvailability(repo, inventory)
	adminUC := usecase.NewScheduleAdmin(store, repo)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	handler := httpAdapter.NewScheduleHandler(searchUC, availabilityUC, adminUC)
	httpAdapter.RegisterRoutes(e, handler)

	return &TestServer{
		Echo:      e,
		Repo:      repo,
		Inventory: inventory,
		Store:     store,
	}
}

// Request represents a test HTTP request configuration.
type Request struct {
	Method      string
	Path        string
	Body        interface{}
	ContentType string
}

// Response represents a test HTTP response.
type Response struct {
	Code    int
	Body    []byte
	Headers http.Header
}

// Do executes a test request and returns the response.
func (ts *TestServer) Do(req Request) Response {
	var bodyReader *bytes.Reader
	if req.Body != nil {
		bodyBytes, _ := json.Marshal(req.Body)
		bodyReader = bytes.NewReader(bodyBytes)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	httpReq := httptest.NewRequest(req.Method, req.Path, bodyReader)

	if req.ContentType != "" {
		httpReq.Header.Set(echo.HeaderContentType, req.ContentType)
	} else if req.Body != nil {
		httpReq.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	ts.Echo.ServeHTTP(rec, httpReq)

	return Response{
		Code:    rec.Code,
		Body:    rec.Body.Bytes(),
		Headers: rec.Header(),
	}
}

// SearchRequest performs a schedule search with the given query string.
func (ts *TestServer) SearchRequest(query string) Response {
	return ts.Do(Request{
		Method: http.MethodGet,
		Path:   "/api/v1/schedules/search?" + query,
	})
}

// HealthRequest makes a health check request.
func (ts *TestServer) HealthRequest() Response {
	return ts.Do(Request{
		Method: http.MethodGet,
		Path:   "/health",
	})
}

// ParseSearchResponse parses the response body as a SearchResponse.
func (r *Response) ParseSearchResponse() (*httpAdapter.SearchResponse, error) {
	var resp httpAdapter.SearchResponse
	if err := json.Unmarshal(r.Body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ParseError parses the response body to extract error information.
func (r *Response) ParseError() (map[string]interface{}, error) {
	var errResp map[string]interface{}
	if err := json.Unmarshal(r.Body, &errResp); err != nil {
		return nil, err
	}
	return errResp, nil
}
