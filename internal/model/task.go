package model

import "time"

// Task はタスクレコードを表す。
// OwnerIDは作成時に認証済みユーザーが存在した場合のみ記録される。
// 外部キーとしての整合性はこのコアでは強制しない。
type Task struct {
	ID          string
	Description string
	Completed   bool
	OwnerID     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskPatch は部分更新の入力を表す。
// nilフィールドは「変更しない」を意味する。
type TaskPatch struct {
	Description *string
	Completed   *bool
}

// IsEmpty は更新対象フィールドが1つも指定されていないかを返す。
func (p TaskPatch) IsEmpty() bool {
	return p.Description == nil && p.Completed == nil
}
