package server

import (
	"bytes"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spektr-org/batstats/command"
	"github.com/spektr-org/batstats/config"
	"github.com/spektr-org/batstats/engine"
	"github.com/spektr-org/batstats/league"
	"github.com/spektr-org/batstats/league/leaguetest"
	"github.com/spektr-org/batstats/schema"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	d := command.NewDispatcher(leaguetest.Store(t), league.Season2016())
	return New(d, config.ServerConfig{Addr: ":0", CORSOrigins: []string{"http://stats.example"}}).Router()
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeResult(t *testing.T, rec *httptest.ResponseRecorder) engine.Result {
	t.Helper()
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var res engine.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return res
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder, status int) ErrorResponse {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, status, rec.Body.String())
	}
	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return resp
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "healthy" || body["players"] != float64(12) {
		t.Errorf("unexpected health: %v", body)
	}
}

func TestListCommands(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/api/v1/commands", "")
	var list []CommandInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 16 || list[0].Name != "Get-Standings" {
		t.Fatalf("unexpected listing: %+v", list)
	}
	for _, c := range list {
		if c.Name == "Get-Quantile-Stat" && (len(c.Inputs) != 2 || c.Inputs[1].Key != "quantile") {
			t.Errorf("unexpected inputs: %+v", c.Inputs)
		}
		if c.Name == "Graph-Team-By-Stat" && !c.Graph {
			t.Error("Graph-Team-By-Stat should be a graph")
		}
	}
}

func TestSchema(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/api/v1/schema", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var sch schema.Config
	if err := json.Unmarshal(rec.Body.Bytes(), &sch); err != nil {
		t.Fatal(err)
	}
	if sch.KeyColumn != "PLAYER" || len(sch.Dimensions) != 2 || len(sch.Measures) != 16 {
		t.Fatalf("unexpected schema: %+v", sch)
	}
	hr := sch.Measures[6]
	if hr.Key != "HR" || hr.DisplayName != "Home Runs" || hr.Unit != "count" || hr.DefaultAggregation != "sum" {
		t.Errorf("unexpected HR meta: %+v", hr)
	}
	if ops := sch.Measures[15]; ops.Unit != "rate" || ops.DefaultAggregation != "mean" {
		t.Errorf("unexpected OPS meta: %+v", ops)
	}
}

func TestRunCommandQueryArgs(t *testing.T) {
	res := decodeResult(t, do(t, newTestRouter(t), http.MethodGet, "/api/v1/commands/get-mean-stat?stat=HR", ""))
	if res.Command != "Get-Mean-Stat" || res.Reply != "The mean HR is: 33.417" {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestRunCommandJSONBody(t *testing.T) {
	body := `{"last": "Trumbo", "first": "Mark"}`
	res := decodeResult(t, do(t, newTestRouter(t), http.MethodPost, "/api/v1/commands/Get-Player-Quantile", body))
	if res.Reply != "Name: Trumbo, Mark" {
		t.Errorf("reply = %q", res.Reply)
	}
}

func TestRunCommandErrors(t *testing.T) {
	h := newTestRouter(t)

	cases := []struct {
		target  string
		status  int
		message string
	}{
		{"/api/v1/commands/Get-Batting-Title", http.StatusNotFound, "Invalid Command"},
		{"/api/v1/commands/Get-Mean-Stat?stat=WAR", http.StatusBadRequest, "Invalid Stat"},
		{"/api/v1/commands/Get-Quantile-Stat?stat=HR&quantile=2", http.StatusBadRequest, "Invalid Quantile"},
		{"/api/v1/commands/Get-Roster?team=Montreal+Expos", http.StatusBadRequest, "Invalid Team Name"},
		{"/api/v1/commands/Get-Player-Stats?last=Ruth&first=Babe", http.StatusNotFound, "Invalid Player Name"},
		{"/api/v1/commands/Get-Standings?format=png", http.StatusBadRequest, "Get-Standings has no chart"},
		{"/api/v1/commands/Get-Standings?format=xml", http.StatusBadRequest, `unknown format "xml"`},
	}
	for _, c := range cases {
		resp := decodeError(t, do(t, h, http.MethodGet, c.target, ""), c.status)
		if resp.Message != c.message || resp.Code != c.status {
			t.Errorf("%s: got %+v, want message %q", c.target, resp, c.message)
		}
	}

	resp := decodeError(t, do(t, h, http.MethodPost, "/api/v1/commands/Get-Roster", "{not json"), http.StatusBadRequest)
	if resp.Message != "invalid request body" {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestRunGraphAsPNG(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/api/v1/commands/Graph-Team-By-Stat?stat=HR&format=png", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type = %q", ct)
	}
	if _, err := png.Decode(bytes.NewReader(rec.Body.Bytes())); err != nil {
		t.Errorf("invalid PNG: %v", err)
	}
}

func TestRunCommandCSV(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/api/v1/commands/Get-Max-Stat-Player?stat=3B&format=csv", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"Murphy, Daniel",WSH,5`) {
		t.Errorf("unexpected CSV:\n%s", rec.Body.String())
	}
}

func TestCORS(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://stats.example")
	rec := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://stats.example" {
		t.Errorf("allow origin = %q", got)
	}
}
