// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/taskman/internal/model"
)

// ErrDuplicateEmail はメールアドレス一意制約違反を表す番兵エラー。
// 同一メールでの同時サインアップ競合はストア層の一意制約で検出され、
// このエラーに変換される。
var ErrDuplicateEmail = &model.APIError{
	Code:     model.ErrCodeDuplicateAccount,
	Message:  "このメールアドレスは既に登録されています。",
	Category: "account",
	Action:   "サインインするか、別のメールアドレスを使用してください。",
}

// UserRepository はユーザーアカウントの永続化インターフェース。
type UserRepository interface {
	// Create はユーザーを作成する。
	// メールアドレスが既に存在する場合はErrDuplicateEmailを返す。
	Create(ctx context.Context, user *model.User) error

	// FindByEmail は指定メールアドレスのユーザーを取得する。見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// DeleteByID は指定IDのユーザーを削除する。
	DeleteByID(ctx context.Context, id string) error
}

// TaskRepository はタスクレコードの永続化インターフェース。
type TaskRepository interface {
	// Create はタスクを作成する。
	Create(ctx context.Context, task *model.Task) error

	// FindByID は指定IDのタスクを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Task, error)

	// FindAll は全タスクを作成順（挿入順）で返す。
	FindAll(ctx context.Context) ([]*model.Task, error)

	// Update は指定フィールドのみを部分更新する。
	// patchのnilフィールドは変更せず既存の値を維持する。
	Update(ctx context.Context, id string, patch model.TaskPatch) error

	// Delete は指定IDのタスクを削除する。
	Delete(ctx context.Context, id string) error
}
