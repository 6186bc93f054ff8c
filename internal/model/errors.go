package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, account, validation, task, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeValidationFailed   = "VALIDATION_FAILED"
	ErrCodeDuplicateAccount   = "DUPLICATE_ACCOUNT"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeUnauthenticated    = "UNAUTHENTICATED"
	ErrCodeInvalidToken       = "INVALID_TOKEN"
	ErrCodeTaskNotFound       = "TASK_NOT_FOUND"
	ErrCodeInternal           = "INTERNAL_ERROR"
)

// NewValidationFailedError はバリデーション失敗エラーを生成する。
// messageにはスキーマ検証で最初に検出されたフィールドエラーを渡す。
func NewValidationFailedError(message string) *APIError {
	return &APIError{
		Code:     ErrCodeValidationFailed,
		Message:  message,
		Category: "validation",
		Action:   "入力内容を確認して再度お試しください。",
	}
}

// NewDuplicateAccountError は登録済みメールアドレスでのサインアップエラーを生成する。
func NewDuplicateAccountError(email string) *APIError {
	return &APIError{
		Code:     ErrCodeDuplicateAccount,
		Message:  fmt.Sprintf("このメールアドレスは既に登録されています: %s", email),
		Category: "account",
		Action:   "サインインするか、別のメールアドレスを使用してください。",
	}
}

// NewInvalidCredentialsError はサインイン失敗エラーを生成する。
// メール未登録とパスワード不一致でメッセージを区別する既存挙動を維持している
// （アカウント存在の情報漏えいについてはDESIGN.md参照）。
func NewInvalidCredentialsError(message string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidCredentials,
		Message:  message,
		Category: "account",
		Action:   "メールアドレスとパスワードを確認してください。",
	}
}

// NewUnauthenticatedError はトークン未提示エラーを生成する。
func NewUnauthenticatedError() *APIError {
	return &APIError{
		Code:     ErrCodeUnauthenticated,
		Message:  "認証トークンが指定されていません。",
		Category: "auth",
		Action:   "サインインしてx-auth-tokenヘッダーを付与してください。",
	}
}

// NewInvalidTokenError はトークン検証失敗エラーを生成する。
func NewInvalidTokenError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidToken,
		Message:  "認証トークンが無効です。",
		Category: "auth",
		Action:   "再度サインインしてトークンを取得し直してください。",
	}
}

// NewTaskNotFoundError はタスク未検出エラーを生成する。
// 識別子の形式不正と対象不在は呼び出し側から区別できない同一クラスとして扱う。
func NewTaskNotFoundError(taskID string) *APIError {
	return &APIError{
		Code:     ErrCodeTaskNotFound,
		Message:  fmt.Sprintf("指定されたタスクが見つかりません: %s", taskID),
		Category: "task",
		Action:   "タスクIDを確認してください。",
	}
}

// NewInternalError は内部エラーを生成する。詳細はログのみに記録する。
func NewInternalError() *APIError {
	return &APIError{
		Code:     ErrCodeInternal,
		Message:  "内部エラーが発生しました。",
		Category: "system",
		Action:   "しばらく待ってから再度お試しください。",
	}
}
