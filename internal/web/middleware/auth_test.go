package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/greenspot/grocer/internal/config"
)

func authHandler(cfg *config.SecurityConfig) http.Handler {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return APIKeyAuth(cfg)(ok)
}

func TestAPIKeyAuth(t *testing.T) {
	tests := []struct {
		name       string
		cfg        config.SecurityConfig
		key        string
		wantStatus int
	}{
		{
			name:       "valid key",
			cfg:        config.SecurityConfig{RequireAPIKey: true, APIKeys: []string{"alpha", "beta"}},
			key:        "beta",
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing key",
			cfg:        config.SecurityConfig{RequireAPIKey: true, APIKeys: []string{"alpha"}},
			key:        "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong key",
			cfg:        config.SecurityConfig{RequireAPIKey: true, APIKeys: []string{"alpha"}},
			key:        "gamma",
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "auth disabled passes everything",
			cfg:        config.SecurityConfig{RequireAPIKey: false},
			key:        "",
			wantStatus: http.StatusOK,
		},
		{
			name:       "auth enabled with no keys rejects everything",
			cfg:        config.SecurityConfig{RequireAPIKey: true},
			key:        "anything",
			wantStatus: http.StatusForbidden,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/analytics/summary", nil)
			if tt.key != "" {
				req.Header.Set("X-API-Key", tt.key)
			}
			rec := httptest.NewRecorder()
			authHandler(&tt.cfg).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestIsValidAPIKey(t *testing.T) {
	keys := []string{"alpha", "beta"}
	if !isValidAPIKey("alpha", keys) {
		t.Error("isValidAPIKey(alpha) = false, want true")
	}
	if isValidAPIKey("alph", keys) {
		t.Error("isValidAPIKey(alph) = true, want false")
	}
	if isValidAPIKey("", keys) {
		t.Error("isValidAPIKey(\"\") = true, want false")
	}
	if isValidAPIKey("alpha", nil) {
		t.Error("isValidAPIKey with no configured keys = true, want false")
	}
}
