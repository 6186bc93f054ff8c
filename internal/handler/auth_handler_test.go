package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hitoshi/taskman/internal/auth"
	"github.com/hitoshi/taskman/internal/middleware"
	"github.com/hitoshi/taskman/internal/model"
)

// mockAuthService はAuthServiceInterfaceのモック実装。
type mockAuthService struct {
	signupFn func(ctx context.Context, payload map[string]any) (*auth.Account, error)
	signinFn func(ctx context.Context, payload map[string]any) (*auth.Session, error)
}

func (m *mockAuthService) Signup(ctx context.Context, payload map[string]any) (*auth.Account, error) {
	return m.signupFn(ctx, payload)
}

func (m *mockAuthService) Signin(ctx context.Context, payload map[string]any) (*auth.Session, error) {
	return m.signinFn(ctx, payload)
}

// サインアップ成功で201とアカウント情報が返ることを検証
func TestAuthHandler_Signup_Success(t *testing.T) {
	svc := &mockAuthService{
		signupFn: func(ctx context.Context, payload map[string]any) (*auth.Account, error) {
			return &auth.Account{Username: "jean", Email: "jean@test.com"}, nil
		},
	}
	h := NewAuthHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/signup",
		strings.NewReader(`{"username":"jean","email":"jean@test.com","secret":"coucou"}`))
	w := httptest.NewRecorder()
	h.Signup(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusCreated)
	}

	var body accountResponse
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Username != "jean" || body.Email != "jean@test.com" {
		t.Errorf("body = %+v, want username=jean email=jean@test.com", body)
	}
}

// 重複メールアドレスで400 DUPLICATE_ACCOUNTが返ることを検証
func TestAuthHandler_Signup_Duplicate(t *testing.T) {
	svc := &mockAuthService{
		signupFn: func(ctx context.Context, payload map[string]any) (*auth.Account, error) {
			return nil, model.NewDuplicateAccountError("jean@test.com")
		},
	}
	h := NewAuthHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/signup",
		strings.NewReader(`{"username":"jean","email":"jean@test.com","secret":"coucou"}`))
	w := httptest.NewRecorder()
	h.Signup(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}

	var body middleware.ErrorResponseBody
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Code != model.ErrCodeDuplicateAccount {
		t.Errorf("code = %q, want %q", body.Code, model.ErrCodeDuplicateAccount)
	}
}

// 不正なJSONボディで400が返ることを検証
func TestAuthHandler_Signup_MalformedJSON(t *testing.T) {
	svc := &mockAuthService{
		signupFn: func(ctx context.Context, payload map[string]any) (*auth.Account, error) {
			t.Error("Signup should not be called for a malformed body")
			return nil, nil
		},
	}
	h := NewAuthHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(`{not json`))
	w := httptest.NewRecorder()
	h.Signup(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

// サインイン成功でトークンがヘッダーのみに載ることを検証
func TestAuthHandler_Signin_TokenInHeaderOnly(t *testing.T) {
	svc := &mockAuthService{
		signinFn: func(ctx context.Context, payload map[string]any) (*auth.Session, error) {
			return &auth.Session{Username: "jean", Email: "jean@test.com", Token: "signed-token"}, nil
		},
	}
	h := NewAuthHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/signin",
		strings.NewReader(`{"email":"jean@test.com","secret":"coucou"}`))
	w := httptest.NewRecorder()
	h.Signin(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if got := w.Header().Get(middleware.AuthTokenHeader); got != "signed-token" {
		t.Errorf("%s header = %q, want %q", middleware.AuthTokenHeader, got, "signed-token")
	}
	if strings.Contains(w.Body.String(), "signed-token") {
		t.Error("token should not appear in the response body")
	}

	var body accountResponse
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Email != "jean@test.com" {
		t.Errorf("email = %q, want %q", body.Email, "jean@test.com")
	}
}

// 資格情報不一致で400 INVALID_CREDENTIALSが返ることを検証
func TestAuthHandler_Signin_InvalidCredentials(t *testing.T) {
	svc := &mockAuthService{
		signinFn: func(ctx context.Context, payload map[string]any) (*auth.Session, error) {
			return nil, model.NewInvalidCredentialsError("パスワードが正しくありません。")
		},
	}
	h := NewAuthHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/signin",
		strings.NewReader(`{"email":"jean@test.com","secret":"wrong"}`))
	w := httptest.NewRecorder()
	h.Signin(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if w.Header().Get(middleware.AuthTokenHeader) != "" {
		t.Error("no token header should be set on failure")
	}

	var body middleware.ErrorResponseBody
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Code != model.ErrCodeInvalidCredentials {
		t.Errorf("code = %q, want %q", body.Code, model.ErrCodeInvalidCredentials)
	}
}
