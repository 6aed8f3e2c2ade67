package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestNewRouter_Routes(t *testing.T) {
	h := newTestHandler(&MockPredictionService{})
	r := NewRouter(h, RouterConfig{AllowedOrigins: []string{"http://localhost:3000"}, RequestTimeout: time.Second})

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		expectedStatus int
	}{
		{"Home", "GET", "/", "", http.StatusOK},
		{"Predict", "POST", "/predict", `{"pokemon_1_id": 1, "pokemon_2_id": 2}`, http.StatusOK},
		{"Predict Wrong Method", "GET", "/predict", "", http.StatusMethodNotAllowed},
		{"Health", "GET", "/health", "", http.StatusOK},
		{"Ready", "GET", "/ready", "", http.StatusOK},
		{"Metrics", "GET", "/metrics", "", http.StatusOK},
		{"Unknown", "GET", "/docs", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("status = %v, want %v", w.Code, tt.expectedStatus)
			}
		})
	}
}

func TestNewRouter_CORS(t *testing.T) {
	h := newTestHandler(&MockPredictionService{})
	r := NewRouter(h, RouterConfig{AllowedOrigins: []string{"http://localhost:3000"}})

	req := httptest.NewRequest("OPTIONS", "/predict", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}
