package repository

import (
	"testing"

	"github.com/hitoshi/taskman/internal/model"
)

// PostgresTaskRepoはTaskRepositoryインターフェースを満たすことを検証
func TestPostgresTaskRepo_ImplementsInterface(t *testing.T) {
	var _ TaskRepository = (*PostgresTaskRepo)(nil)
}

// NewPostgresTaskRepoが正しく初期化されることを検証
func TestNewPostgresTaskRepo_Initializes(t *testing.T) {
	repo := NewPostgresTaskRepo(nil)
	if repo == nil {
		t.Fatal("expected non-nil repo")
	}
}

// TaskPatchのIsEmptyが部分更新の空判定として機能することを検証
// （DB接続なしでロジックのみ検証）
func TestTaskPatch_IsEmpty(t *testing.T) {
	desc := "updated description"
	completed := true

	tests := []struct {
		name  string
		patch model.TaskPatch
		want  bool
	}{
		{"両方nil", model.TaskPatch{}, true},
		{"descriptionのみ", model.TaskPatch{Description: &desc}, false},
		{"completedのみ", model.TaskPatch{Completed: &completed}, false},
		{"両方指定", model.TaskPatch{Description: &desc, Completed: &completed}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.patch.IsEmpty(); got != tt.want {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}
