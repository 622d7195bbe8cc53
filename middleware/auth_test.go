package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dbv-club/championship-system/models"
	"github.com/golang-jwt/jwt/v4"
)

const testSecret = "test-secret"

func signedToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return signed
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate(t *testing.T) {
	auth := NewAuth(testSecret)
	valid := signedToken(t, testSecret, jwt.MapClaims{
		"user_id": float64(7),
		"role":    "admin",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "valid token", header: "Bearer " + valid, wantStatus: http.StatusOK},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "not bearer", header: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer not.a.jwt", wantStatus: http.StatusUnauthorized},
		{
			name: "wrong secret",
			header: "Bearer " + signedToken(t, "another-secret", jwt.MapClaims{
				"user_id": float64(7),
				"role":    "admin",
				"exp":     time.Now().Add(time.Hour).Unix(),
			}),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "expired token",
			header: "Bearer " + signedToken(t, testSecret, jwt.MapClaims{
				"user_id": float64(7),
				"role":    "admin",
				"exp":     time.Now().Add(-time.Hour).Unix(),
			}),
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			auth.Authenticate(okHandler()).ServeHTTP(rec, req)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestAuthorize(t *testing.T) {
	auth := NewAuth(testSecret)

	tests := []struct {
		name       string
		role       string
		allowed    []models.UserRole
		wantStatus int
	}{
		{name: "role allowed", role: "admin", allowed: []models.UserRole{models.RoleAdmin, models.RoleDirector}, wantStatus: http.StatusOK},
		{name: "role forbidden", role: "counselor", allowed: []models.UserRole{models.RoleAdmin}, wantStatus: http.StatusForbidden},
		{name: "unknown role claim", role: "root", allowed: []models.UserRole{models.RoleAdmin}, wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := signedToken(t, testSecret, jwt.MapClaims{
				"user_id": float64(1),
				"role":    tt.role,
				"exp":     time.Now().Add(time.Hour).Unix(),
			})
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer "+token)

			handler := auth.Authenticate(auth.Authorize(tt.allowed...)(okHandler()))
			handler.ServeHTTP(rec, req)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestGetUserIDFromContext(t *testing.T) {
	auth := NewAuth(testSecret)
	token := signedToken(t, testSecret, jwt.MapClaims{
		"user_id": float64(42),
		"role":    "director",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	var gotID int
	var gotErr error
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, gotErr = GetUserIDFromContext(r.Context())
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	auth.Authenticate(inner).ServeHTTP(rec, req)

	if gotErr != nil {
		t.Fatalf("GetUserIDFromContext: %v", gotErr)
	}
	if gotID != 42 {
		t.Errorf("user id = %d, want 42", gotID)
	}

	if _, err := GetUserIDFromContext(req.Context()); err == nil {
		t.Error("bare context must not yield a user id")
	}
}
