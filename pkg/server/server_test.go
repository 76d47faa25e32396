package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/3dptools/flowcomp/pkg/calibration"
	"github.com/3dptools/flowcomp/pkg/flow"
	"github.com/3dptools/flowcomp/pkg/gcode"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	model, err := flow.New(calibration.Sequence{
		{Length: 0, Multiplier: 0},
		{Length: 5, Multiplier: 0.9},
		{Length: 10, Multiplier: 1},
	})
	if err != nil {
		t.Fatalf("failed to build model: %v", err)
	}
	return New(model, 25, true)
}

func TestPostProcess(t *testing.T) {
	router := testServer(t).setupRoutes()

	body := "G1 X0 Y0\n;TYPE:Solid infill\nG1 X3 Y0 E1.0\n"
	req := httptest.NewRequest(http.MethodPost, "/process", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	out := w.Body.String()
	if !strings.HasPrefix(out, gcode.ProcessedMarker+"\n") {
		t.Error("response does not start with the processed marker")
	}
	if !strings.Contains(out, "E0.61680") {
		t.Errorf("response does not contain the rewritten extrusion:\n%s", out)
	}
}

func TestPostProcessAlreadyProcessed(t *testing.T) {
	router := testServer(t).setupRoutes()

	body := gcode.ProcessedMarker + "\nG1 X1 Y1 E0.1\n"
	req := httptest.NewRequest(http.MethodPost, "/process", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", w.Code)
	}
}

func TestGetCurve(t *testing.T) {
	router := testServer(t).setupRoutes()

	req := httptest.NewRequest(http.MethodGet, "/curve?samples=11", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp struct {
		MaxLength float64              `json:"maxLength"`
		Points    calibration.Sequence `json:"points"`
		Spline    calibration.Sequence `json:"spline"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.MaxLength != 10 {
		t.Errorf("maxLength = %v, want 10", resp.MaxLength)
	}
	if len(resp.Points) != 3 {
		t.Errorf("points count = %d, want 3", len(resp.Points))
	}
	if len(resp.Spline) != 11 {
		t.Errorf("spline sample count = %d, want 11", len(resp.Spline))
	}
}

func TestGetCurveBadSamples(t *testing.T) {
	router := testServer(t).setupRoutes()

	for _, q := range []string{"samples=1", "samples=x"} {
		req := httptest.NewRequest(http.MethodGet, "/curve?"+q, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status for %q = %d, want 400", q, w.Code)
		}
	}
}

func TestGetVersion(t *testing.T) {
	router := testServer(t).setupRoutes()

	req := httptest.NewRequest(http.MethodGet, "/version", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["version"] == "" || resp["gitCommit"] == "" {
		t.Errorf("version response incomplete: %v", resp)
	}
}
