package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bzain/chatter/internal/session"
)

func TestSessionMiddleware(t *testing.T) {
	reg := session.NewMemory("test_salt")
	token := reg.Create("alice")

	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username := Username(r.Context())
		if username != "alice" {
			t.Errorf("Expected username 'alice' in context, got %q", username)
		}
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name           string
		query          string
		expectedStatus int
	}{
		{
			name:           "Valid Token",
			query:          "?id=" + token,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Missing Token",
			query:          "",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Unknown Token",
			query:          "?id=deadbeef",
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/"+tt.query, nil)
			rr := httptest.NewRecorder()

			Session(reg)(nextHandler).ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("handler returned wrong status code: got %v want %v",
					rr.Code, tt.expectedStatus)
			}
		})
	}
}

func TestSessionMiddlewareAfterRevoke(t *testing.T) {
	reg := session.NewMemory("test_salt")
	token := reg.Create("alice")
	reg.Revoke("alice")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Handler should not run for a revoked session")
	})

	req := httptest.NewRequest("GET", "/?id="+token, nil)
	rr := httptest.NewRecorder()
	Session(reg)(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("handler returned wrong status code: got %v want %v",
			rr.Code, http.StatusNotFound)
	}
}
