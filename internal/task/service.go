// Package task はタスクレコードのCRUDビジネスロジックを提供する。
package task

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/taskman/internal/model"
	"github.com/hitoshi/taskman/internal/repository"
	"github.com/hitoshi/taskman/internal/validate"
)

// Service はタスク管理のビジネスロジックを提供する。
type Service struct {
	repo repository.TaskRepository

	createSchema validate.Schema
	updateSchema validate.Schema
}

// NewService はServiceを生成する。
func NewService(repo repository.TaskRepository) *Service {
	return &Service{
		repo: repo,
		createSchema: validate.NewSchema(
			validate.Field{Name: "description", Kind: validate.KindString, Required: true, MinLen: 5, MaxLen: 50},
			validate.Field{Name: "completed", Kind: validate.KindBool, Required: true},
		),
		updateSchema: validate.NewSchema(
			validate.Field{Name: "description", Kind: validate.KindString, MinLen: 5, MaxLen: 50},
			validate.Field{Name: "completed", Kind: validate.KindBool},
		),
	}
}

// List は全タスクをストアの自然順（挿入順）で返す。ページネーションは行わない。
func (s *Service) List(ctx context.Context) ([]*model.Task, error) {
	tasks, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// Get は指定IDのタスクを返す。
// 存在ガード通過後でもストアから再取得し、見つからない場合はTaskNotFoundを返す。
func (s *Service) Get(ctx context.Context, id string) (*model.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	if task == nil {
		return nil, model.NewTaskNotFoundError(id)
	}
	return task, nil
}

// Create はペイロードを検証し、新規タスクを作成して返す。
// ownerIDは認証済みユーザーが存在した場合のみ記録される（空文字は所有者なし）。
func (s *Service) Create(ctx context.Context, payload map[string]any, ownerID string) (*model.Task, error) {
	value, fieldErrs := s.createSchema.Validate(payload)
	if len(fieldErrs) > 0 {
		return nil, model.NewValidationFailedError(fieldErrs[0].Message)
	}

	now := time.Now()
	task := &model.Task{
		ID:          uuid.New().String(),
		Description: value["description"].(string),
		Completed:   value["completed"].(bool),
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	slog.Info("task created",
		slog.String("task_id", task.ID),
	)

	return task, nil
}

// Update はペイロードを検証し、指定フィールドのみを部分更新する。
// フィールドの欠落は「変更しない」を意味し、空ペイロードは冪等な無操作になる。
// 更新後はストアから再取得した最終状態を返す（ストアの更新応答そのものは返さない）。
func (s *Service) Update(ctx context.Context, id string, payload map[string]any) (*model.Task, error) {
	value, fieldErrs := s.updateSchema.Validate(payload)
	if len(fieldErrs) > 0 {
		return nil, model.NewValidationFailedError(fieldErrs[0].Message)
	}

	patch := model.TaskPatch{}
	if v, exists := value["description"]; exists {
		desc := v.(string)
		patch.Description = &desc
	}
	if v, exists := value["completed"]; exists {
		completed := v.(bool)
		patch.Completed = &completed
	}

	if !patch.IsEmpty() {
		if err := s.repo.Update(ctx, id, patch); err != nil {
			return nil, fmt.Errorf("failed to update task: %w", err)
		}
	}

	// 最終状態の再取得
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to re-fetch task: %w", err)
	}
	if task == nil {
		return nil, model.NewTaskNotFoundError(id)
	}

	return task, nil
}

// Delete は指定IDのタスクを削除し、削除直前の最終状態を返す。
// 削除は終端状態であり、取り消しはできない。
func (s *Service) Delete(ctx context.Context, id string) (*model.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	if task == nil {
		return nil, model.NewTaskNotFoundError(id)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to delete task: %w", err)
	}

	slog.Info("task deleted",
		slog.String("task_id", id),
	)

	return task, nil
}
