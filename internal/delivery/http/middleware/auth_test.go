package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"campusevents/internal/domain"
)

type stubVerifier struct {
	userID string
	role   domain.Role
	err    error
}

func (s stubVerifier) Verify(token string) (string, domain.Role, error) {
	if s.err != nil {
		return "", "", s.err
	}
	return s.userID, s.role, nil
}

func TestRequireAuth(t *testing.T) {
	tests := []struct {
		name       string
		authHeader string
		verifier   stubVerifier
		wantStatus int
		wantNext   bool
	}{
		{
			name:       "missing header",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			authHeader: "Basic dXNlcjpwYXNz",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "empty token",
			authHeader: "Bearer ",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid token",
			authHeader: "Bearer bad-token",
			verifier:   stubVerifier{err: errors.New("token expired")},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "valid token",
			authHeader: "Bearer good-token",
			verifier:   stubVerifier{userID: "u1", role: domain.RoleStudent},
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			next := func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				id, ok := UserIDFromContext(r.Context())
				if !ok || id != "u1" {
					t.Errorf("expected user ID u1 in context, got %q (ok=%v)", id, ok)
				}
				role, ok := RoleFromContext(r.Context())
				if !ok || role != domain.RoleStudent {
					t.Errorf("expected role student in context, got %q (ok=%v)", role, ok)
				}
				w.WriteHeader(http.StatusOK)
			}

			req := httptest.NewRequest(http.MethodGet, "/me/registrations", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()

			RequireAuth(tt.verifier)(next)(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if nextCalled != tt.wantNext {
				t.Errorf("expected next called = %v, got %v", tt.wantNext, nextCalled)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		ctxRole    domain.Role
		hasRole    bool
		want       domain.Role
		wantStatus int
		wantNext   bool
	}{
		{"matching role", domain.RoleAdmin, true, domain.RoleAdmin, http.StatusOK, true},
		{"wrong role", domain.RoleStudent, true, domain.RoleAdmin, http.StatusForbidden, false},
		{"no identity", "", false, domain.RoleAdmin, http.StatusForbidden, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			next := func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				w.WriteHeader(http.StatusOK)
			}

			req := httptest.NewRequest(http.MethodPost, "/colleges", nil)
			if tt.hasRole {
				req = req.WithContext(SetIdentity(req.Context(), "u1", tt.ctxRole))
			}
			w := httptest.NewRecorder()

			RequireRole(tt.want)(next)(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if nextCalled != tt.wantNext {
				t.Errorf("expected next called = %v, got %v", tt.wantNext, nextCalled)
			}
		})
	}
}
