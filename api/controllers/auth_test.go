package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	authsvc "github.com/solsticegems/solstice-backend/internal/auth"
	pkgerrors "github.com/solsticegems/solstice-backend/pkg/errors"
)

type stubAuthService struct {
	result    *authsvc.LoginResult
	err       error
	lastEmail string
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*authsvc.LoginResult, error) {
	s.lastEmail = email
	return s.result, s.err
}

func TestAdminLoginSuccess(t *testing.T) {
	svc := &stubAuthService{result: &authsvc.LoginResult{
		AccessToken: "token-123",
		ExpiresAt:   time.Now().Add(30 * time.Minute),
		Email:       "jeweler@solsticegems.com",
		Role:        "admin",
	}}
	handler := AdminLogin(svc, nil)

	body := `{"email":"jeweler@solsticegems.com","password":"correct horse"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.lastEmail != "jeweler@solsticegems.com" {
		t.Fatalf("unexpected email: %q", svc.lastEmail)
	}

	var envelope struct {
		Data authsvc.LoginResult `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.AccessToken != "token-123" || envelope.Data.Role != "admin" {
		t.Fatalf("unexpected login result: %+v", envelope.Data)
	}
}

func TestAdminLoginRejectsMalformedEmail(t *testing.T) {
	svc := &stubAuthService{}
	handler := AdminLogin(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"not-an-email","password":"whatever1"}`))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if svc.lastEmail != "" {
		t.Fatal("service must not be called for invalid payloads")
	}
}

func TestAdminLoginUnauthorized(t *testing.T) {
	svc := &stubAuthService{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")}
	handler := AdminLogin(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"jeweler@solsticegems.com","password":"wrong password"}`))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}
