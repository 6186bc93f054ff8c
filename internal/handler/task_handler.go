package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/taskman/internal/middleware"
	"github.com/hitoshi/taskman/internal/model"
)

// TaskServiceInterface はタスクハンドラーが必要とするサービスインターフェース。
type TaskServiceInterface interface {
	// List は全タスクを挿入順で返す。
	List(ctx context.Context) ([]*model.Task, error)
	// Get は指定IDのタスクを返す。
	Get(ctx context.Context, id string) (*model.Task, error)
	// Create はペイロードを検証し、新規タスクを作成して返す。
	Create(ctx context.Context, payload map[string]any, ownerID string) (*model.Task, error)
	// Update は指定フィールドのみを部分更新し、最終状態を返す。
	Update(ctx context.Context, id string, payload map[string]any) (*model.Task, error)
	// Delete はタスクを削除し、削除直前の最終状態を返す。
	Delete(ctx context.Context, id string) (*model.Task, error)
}

// MutationRecorder はタスク変更操作のメトリクス記録インターフェース。
// metrics.Collectorの部分集合として定義する。
type MutationRecorder interface {
	RecordTaskMutation(operation string)
}

// TaskHandler はタスクCRUDのHTTPハンドラー。
type TaskHandler struct {
	service TaskServiceInterface
	metrics MutationRecorder // nilの場合は記録しない
}

// NewTaskHandler はTaskHandlerを生成する。
func NewTaskHandler(service TaskServiceInterface, metrics MutationRecorder) *TaskHandler {
	return &TaskHandler{service: service, metrics: metrics}
}

// recordMutation は変更操作をメトリクスに記録する。
func (h *TaskHandler) recordMutation(operation string) {
	if h.metrics != nil {
		h.metrics.RecordTaskMutation(operation)
	}
}

// ListTasks は全タスクの一覧を取得する。
// GET /api/tasks
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	// 空でも空配列を返す（nullにしない）
	responses := make([]taskResponse, 0, len(tasks))
	for _, task := range tasks {
		responses = append(responses, newTaskResponse(task))
	}

	writeJSONResponse(w, http.StatusOK, responses)
}

// GetTask はタスク詳細を取得する。
// GET /api/tasks/{id}
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "id")

	task, err := h.service.Get(r.Context(), taskID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, newTaskResponse(task))
}

// CreateTask は新規タスクを作成する。
// 認証ガード通過済みの場合、コンテキストのユーザーIDを所有者として記録する。
// POST /api/tasks
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	payload, decodeErr := decodeJSONBody(r)
	if decodeErr != nil {
		middleware.WriteErrorResponse(w, http.StatusBadRequest, decodeErr)
		return
	}

	// 所有者なし（空文字）も許容する
	ownerID, _ := middleware.UserIDFromContext(r.Context())

	task, err := h.service.Create(r.Context(), payload, ownerID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	h.recordMutation("create")
	writeJSONResponse(w, http.StatusCreated, newTaskResponse(task))
}

// UpdateTask はタスクを部分更新する。
// PUT /api/tasks/{id}
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "id")

	payload, decodeErr := decodeJSONBody(r)
	if decodeErr != nil {
		middleware.WriteErrorResponse(w, http.StatusBadRequest, decodeErr)
		return
	}

	task, err := h.service.Update(r.Context(), taskID, payload)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	h.recordMutation("update")
	writeJSONResponse(w, http.StatusOK, newTaskResponse(task))
}

// DeleteTask はタスクを削除し、削除直前の最終状態を返す。
// DELETE /api/tasks/{id}
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "id")

	task, err := h.service.Delete(r.Context(), taskID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	h.recordMutation("delete")
	writeJSONResponse(w, http.StatusOK, newTaskResponse(task))
}
