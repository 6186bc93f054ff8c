package handler

import (
	"context"
	"net/http"

	"github.com/hitoshi/taskman/internal/auth"
	"github.com/hitoshi/taskman/internal/middleware"
)

// AuthServiceInterface は認証ハンドラーが必要とするサービスインターフェース。
type AuthServiceInterface interface {
	// Signup は新規アカウントを作成する。
	Signup(ctx context.Context, payload map[string]any) (*auth.Account, error)
	// Signin は資格情報を照合し、セッショントークンを発行する。
	Signin(ctx context.Context, payload map[string]any) (*auth.Session, error)
}

// AuthHandler はサインアップ・サインインのHTTPハンドラー。
type AuthHandler struct {
	service AuthServiceInterface
}

// NewAuthHandler はAuthHandlerを生成する。
func NewAuthHandler(service AuthServiceInterface) *AuthHandler {
	return &AuthHandler{service: service}
}

// accountResponse はサインアップ・サインインのレスポンスボディ。
// ハッシュ済み資格情報は決して含めない。
type accountResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Signup は新規アカウントを作成する。
// POST /signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	payload, decodeErr := decodeJSONBody(r)
	if decodeErr != nil {
		middleware.WriteErrorResponse(w, http.StatusBadRequest, decodeErr)
		return
	}

	account, err := h.service.Signup(r.Context(), payload)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusCreated, accountResponse{
		Username: account.Username,
		Email:    account.Email,
	})
}

// Signin は資格情報を照合し、トークンをx-auth-tokenレスポンスヘッダーで返す。
// トークンはボディには載せない。
// POST /signin
func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	payload, decodeErr := decodeJSONBody(r)
	if decodeErr != nil {
		middleware.WriteErrorResponse(w, http.StatusBadRequest, decodeErr)
		return
	}

	session, err := h.service.Signin(r.Context(), payload)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set(middleware.AuthTokenHeader, session.Token)
	writeJSONResponse(w, http.StatusOK, accountResponse{
		Username: session.Username,
		Email:    session.Email,
	})
}
