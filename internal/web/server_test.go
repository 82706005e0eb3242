package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/greenspot/grocer/internal/analytics"
	"github.com/greenspot/grocer/internal/config"
)

// newTestServer builds a server with no database behind it. Routing,
// middleware, and whitelist behavior are all checkable without one.
func newTestServer() *Server {
	cfg := &config.Config{}
	cfg.Server.RequestTimeout = time.Minute
	cfg.Security.RequireAPIKey = true
	cfg.Security.APIKeys = []string{"test-key"}
	cfg.Rate.Enabled = false
	return NewServer(analytics.New(nil), nil, cfg)
}

func TestRoutes_RequireAPIKey(t *testing.T) {
	srv := newTestServer()
	paths := []string{
		"/api/analytics/summary",
		"/api/analytics/sales/daily",
		"/api/analytics/products",
		"/api/analytics/categories",
		"/api/analytics/customers",
		"/api/analytics/inventory",
		"/api/analytics/vendors",
		"/api/export/products",
	}
	for _, path := range paths {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		srv.Router().ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("GET %s without key: status = %d, want 401", path, rec.Code)
		}
	}
}

func TestExport_UnknownTableRejected(t *testing.T) {
	srv := newTestServer()

	// Whitelist miss is decided before any database work.
	for _, table := range []string{"pg_catalog", "users; DROP TABLE users", "nope"} {
		req := httptest.NewRequest(http.MethodGet, "/api/export/"+url.PathEscape(table), nil)
		req.Header.Set("X-API-Key", "test-key")
		rec := httptest.NewRecorder()
		srv.Router().ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Errorf("export %q: status = %d, want 404", table, rec.Code)
		}
	}
}

func TestExportQueries_CoverAllTables(t *testing.T) {
	want := []string{
		"product_categories", "vendors", "products", "customers",
		"inventory", "purchase_orders", "sales_transactions",
	}
	if len(exportQueries) != len(want) {
		t.Errorf("export whitelist has %d tables, want %d", len(exportQueries), len(want))
	}
	for _, table := range want {
		if _, ok := exportQueries[table]; !ok {
			t.Errorf("table %q missing from export whitelist", table)
		}
	}
}

func TestMetricsEndpoint_NoAuth(t *testing.T) {
	srv := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("GET /metrics: status = %d, want 200 without API key", rec.Code)
	}
}

func TestUnknownRoute(t *testing.T) {
	srv := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("GET /nope: status = %d, want 404", rec.Code)
	}
}

func TestFormatCell(t *testing.T) {
	sold := time.Date(2025, 11, 18, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"nil", nil, ""},
		{"string", "Beans, canned", "Beans, canned"},
		{"time", sold, "2025-11-18"},
		{"int64", int64(42), "42"},
		{"float", 1.49, "1.49"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatCell(tt.input); got != tt.want {
				t.Errorf("formatCell(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
