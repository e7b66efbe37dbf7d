package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/shinuoyan888/HuXuYan/internal/planner"
	"github.com/shinuoyan888/HuXuYan/internal/planner/backend"
	"github.com/shinuoyan888/HuXuYan/internal/session"
)

type stubBackend struct {
	result *planner.SearchResult
	err    error
	calls  int
}

func (s *stubBackend) Search(ctx context.Context, req planner.SearchRequest) (*planner.SearchResult, error) {
	s.calls++
	return s.result, s.err
}

func newTestApp(backend planner.Backend) (*fiber.App, *planner.Service) {
	svc := planner.NewService(session.NewMemoryStore(time.Hour), backend)
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": true, "message": err.Error()})
		},
	})
	RegisterRoutes(app, svc)
	return app, svc
}

func testSearchResult() *planner.SearchResult {
	return &planner.SearchResult{
		Routes: []planner.ScoredRoute{
			{RouteID: "r1", Rank: 1, TotalDistance: 1000, RoadQualityScore: 85, Tags: []string{"Best Surface"}, SegmentsWarning: []planner.SegmentWarning{}},
			{RouteID: "r2", Rank: 2, TotalDistance: 1200, RoadQualityScore: 55, Tags: []string{"Bumpy"}, SegmentsWarning: []planner.SegmentWarning{{Lat: 1.3, Lon: 103.8, Type: "Pothole"}}},
		},
	}
}

func createSession(t *testing.T, app *fiber.App) string {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, resp.StatusCode)
	}

	var body struct {
		SessionID string `json:"session_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.SessionID == "" {
		t.Fatal("expected a session id")
	}
	return body.SessionID
}

func postJSON(t *testing.T, app *fiber.App, path string, payload interface{}) *http.Response {
	t.Helper()

	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return resp
}

// TestSearchFlow exercises the full page lifecycle: create a session, search,
// click a route, clear results.
func TestSearchFlow(t *testing.T) {
	stub := &stubBackend{result: testSearchResult()}
	app, _ := newTestApp(stub)

	id := createSession(t, app)

	resp := postJSON(t, app, "/api/v1/sessions/"+id+"/search", map[string]interface{}{
		"origin":      map[string]float64{"lat": 1.3521, "lon": 103.8198},
		"destination": map[string]float64{"lat": 1.332, "lon": 103.903},
		"preferences": "shortest",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var vm planner.ViewModel
	if err := json.NewDecoder(resp.Body).Decode(&vm); err != nil {
		t.Fatalf("failed to decode view model: %v", err)
	}
	if vm.SelectedRouteID != "r1" {
		t.Fatalf("expected default selection r1, got %q", vm.SelectedRouteID)
	}
	if len(vm.Routes) != 2 {
		t.Fatalf("expected 2 routes, got %d", len(vm.Routes))
	}

	// Clicking a route changes only the selection, with no backend call.
	before := stub.calls
	resp = postJSON(t, app, "/api/v1/sessions/"+id+"/selection", map[string]string{"route_id": "r2"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&vm); err != nil {
		t.Fatalf("failed to decode view model: %v", err)
	}
	if vm.SelectedRouteID != "r2" {
		t.Fatalf("expected selection r2, got %q", vm.SelectedRouteID)
	}
	if stub.calls != before {
		t.Fatalf("selection triggered %d backend call(s)", stub.calls-before)
	}

	// Clearing resets to no selection.
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/sessions/"+id+"/results", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	vm = planner.ViewModel{}
	if err := json.NewDecoder(resp.Body).Decode(&vm); err != nil {
		t.Fatalf("failed to decode view model: %v", err)
	}
	if vm.SelectedRouteID != "" || len(vm.Routes) != 0 {
		t.Fatalf("expected empty view after clear, got %+v", vm)
	}
}

// TestSearchValidation verifies that malformed search bodies return 400.
func TestSearchValidation(t *testing.T) {
	app, _ := newTestApp(&stubBackend{result: testSearchResult()})
	id := createSession(t, app)

	// Unknown preference should return 400.
	resp := postJSON(t, app, "/api/v1/sessions/"+id+"/search", map[string]interface{}{
		"origin":      map[string]float64{"lat": 1, "lon": 2},
		"destination": map[string]float64{"lat": 3, "lon": 4},
		"preferences": "scenic",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}

	// Selection without a route id should also return 400.
	resp = postJSON(t, app, "/api/v1/sessions/"+id+"/selection", map[string]string{})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

// TestBackendErrorsSurfaceVerbatim verifies that backend error messages pass
// through to the client untouched.
func TestBackendErrorsSurfaceVerbatim(t *testing.T) {
	app, _ := newTestApp(&stubBackend{err: &backend.StatusError{
		StatusCode: 422,
		Message:    "origin too far from road network",
	}})
	id := createSession(t, app)

	resp := postJSON(t, app, "/api/v1/sessions/"+id+"/search", map[string]interface{}{
		"origin":      map[string]float64{"lat": 1, "lon": 2},
		"destination": map[string]float64{"lat": 3, "lon": 4},
	})
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected status %d, got %d", http.StatusBadGateway, resp.StatusCode)
	}

	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Message != "origin too far from road network" {
		t.Fatalf("expected verbatim backend message, got %q", body.Message)
	}
}

// TestUnknownSession verifies the 404 mapping for missing sessions.
func TestUnknownSession(t *testing.T) {
	app, _ := newTestApp(&stubBackend{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions/missing", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
}
