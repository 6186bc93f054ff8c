// Package auth はサインアップ・サインインとセッショントークン発行を提供する。
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/taskman/internal/model"
	"github.com/hitoshi/taskman/internal/repository"
	"github.com/hitoshi/taskman/internal/validate"
)

// Hasher はパスワードのハッシュ化と照合に必要なインターフェース。
// password.Hasherの部分集合として定義する。
type Hasher interface {
	Hash(secret string) (string, error)
	Verify(secret, hashedForm string) bool
}

// TokenIssuer はトークン発行に必要なインターフェース。
// token.Serviceの部分集合として定義する。
type TokenIssuer interface {
	Issue(subject string) (string, error)
}

// Account はサインアップ結果を表す。
// ハッシュ済み資格情報とIDはレスポンスに決して含めない。
type Account struct {
	Username string
	Email    string
}

// Session はサインイン結果を表す。
// Tokenはレスポンスヘッダーで返し、ボディには載せない。
type Session struct {
	Username string
	Email    string
	Token    string
}

// Service は認証に関するビジネスロジックを提供する。
type Service struct {
	userRepo repository.UserRepository
	hasher   Hasher
	tokens   TokenIssuer

	signupSchema validate.Schema
	signinSchema validate.Schema
}

// NewService はServiceを生成する。
func NewService(userRepo repository.UserRepository, hasher Hasher, tokens TokenIssuer) *Service {
	return &Service{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		signupSchema: validate.NewSchema(
			validate.Field{Name: "username", Kind: validate.KindString, Required: true, MinLen: 3, MaxLen: 50},
			validate.Field{Name: "email", Kind: validate.KindString, Required: true, MaxLen: 255, Format: validate.FormatEmail},
			validate.Field{Name: "secret", Kind: validate.KindString, Required: true},
		),
		signinSchema: validate.NewSchema(
			validate.Field{Name: "email", Kind: validate.KindString, Required: true, MaxLen: 255, Format: validate.FormatEmail},
			validate.Field{Name: "secret", Kind: validate.KindString, Required: true},
		),
	}
}

// Signup は新規アカウントを作成する。
// 登録済みメールアドレスの場合はDuplicateAccountを返す。
// メール重複チェックとINSERTの間の競合はusers.emailの一意制約で検出され、
// 同じDuplicateAccountエラーに収束する。
func (s *Service) Signup(ctx context.Context, payload map[string]any) (*Account, error) {
	// 1. スキーマ検証（最初のフィールドエラーのみを表面化する）
	value, fieldErrs := s.signupSchema.Validate(payload)
	if len(fieldErrs) > 0 {
		return nil, model.NewValidationFailedError(fieldErrs[0].Message)
	}

	username := value["username"].(string)
	email := value["email"].(string)
	secret := value["secret"].(string)

	// 2. メールアドレスの重複チェック
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}
	if existing != nil {
		return nil, model.NewDuplicateAccountError(email)
	}

	// 3. シークレットのハッシュ化（失敗は内部エラーとして伝搬する）
	hashed, err := s.hasher.Hash(secret)
	if err != nil {
		return nil, fmt.Errorf("failed to hash credential: %w", err)
	}

	// 4. 永続化
	now := time.Now()
	user := &model.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		var apiErr *model.APIError
		if errors.As(err, &apiErr) && apiErr.Code == model.ErrCodeDuplicateAccount {
			// 一意制約による競合検出
			return nil, model.NewDuplicateAccountError(email)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("new account created",
		slog.String("user_id", user.ID),
		slog.String("email", email),
	)

	return &Account{Username: username, Email: email}, nil
}

// Signin は資格情報を照合し、セッショントークンを発行する。
// メール未登録とパスワード不一致はどちらもInvalidCredentialsだが、
// メッセージは既存挙動どおり区別される（情報漏えいの注記はDESIGN.md参照）。
func (s *Service) Signin(ctx context.Context, payload map[string]any) (*Session, error) {
	// 1. スキーマ検証
	value, fieldErrs := s.signinSchema.Validate(payload)
	if len(fieldErrs) > 0 {
		return nil, model.NewValidationFailedError(fieldErrs[0].Message)
	}

	email := value["email"].(string)
	secret := value["secret"].(string)

	// 2. アカウント検索
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}
	if user == nil {
		return nil, model.NewInvalidCredentialsError("このメールアドレスは登録されていません。")
	}

	// 3. シークレットの照合
	if !s.hasher.Verify(secret, user.PasswordHash) {
		return nil, model.NewInvalidCredentialsError("パスワードが正しくありません。")
	}

	// 4. トークン発行（subject = ユーザーID）
	tokenString, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	slog.Info("user signed in",
		slog.String("user_id", user.ID),
	)

	return &Session{
		Username: user.Username,
		Email:    user.Email,
		Token:    tokenString,
	}, nil
}
