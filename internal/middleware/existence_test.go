package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/taskman/internal/model"
)

// mockTaskFinder はTaskFinderのモック実装。
type mockTaskFinder struct {
	findByIDFn func(ctx context.Context, id string) (*model.Task, error)
}

func (m *mockTaskFinder) FindByID(ctx context.Context, id string) (*model.Task, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

// newExistenceRouter はRequireTaskを適用したテスト用ルーターを生成する。
func newExistenceRouter(finder TaskFinder, handlerCalled *bool) http.Handler {
	r := chi.NewRouter()
	r.With(RequireTask(finder)).Get("/api/tasks/{id}", func(w http.ResponseWriter, r *http.Request) {
		if handlerCalled != nil {
			*handlerCalled = true
		}
		w.WriteHeader(http.StatusOK)
	})
	return r
}

const validTaskID = "7f0e9a6e-45d2-4f3a-b9c1-0dd6f6bd1a11"

// 存在するタスクIDでハンドラーまで到達することを検証
func TestRequireTask_ExistingTask(t *testing.T) {
	finder := &mockTaskFinder{
		findByIDFn: func(ctx context.Context, id string) (*model.Task, error) {
			if id != validTaskID {
				t.Errorf("id = %q, want %q", id, validTaskID)
			}
			return &model.Task{ID: id, Description: "write report"}, nil
		},
	}

	handlerCalled := false
	router := newExistenceRouter(finder, &handlerCalled)

	req := httptest.NewRequest(http.MethodGet, "/api/tasks/"+validTaskID, nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusOK)
	}
	if !handlerCalled {
		t.Error("handler should be called for an existing task")
	}
}

// 構文的に不正な識別子で400になり、ストア検索が行われないことを検証
func TestRequireTask_MalformedID(t *testing.T) {
	finder := &mockTaskFinder{
		findByIDFn: func(ctx context.Context, id string) (*model.Task, error) {
			t.Error("FindByID should not be called for a malformed ID")
			return nil, nil
		},
	}

	handlerCalled := false
	router := newExistenceRouter(finder, &handlerCalled)

	req := httptest.NewRequest(http.MethodGet, "/api/tasks/Z67D58Z67Q987D89", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusBadRequest)
	}
	if handlerCalled {
		t.Error("handler should not be called for a malformed ID")
	}
}

// 構文的に正しいが存在しない識別子でも同じ400クラスになることを検証
// （形式不正と対象不在は呼び出し側から区別できない設計）
func TestRequireTask_NotFound_SameErrorClassAsMalformed(t *testing.T) {
	finder := &mockTaskFinder{
		findByIDFn: func(ctx context.Context, id string) (*model.Task, error) {
			return nil, nil
		},
	}

	router := newExistenceRouter(finder, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/tasks/"+validTaskID, nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusBadRequest)
	}
}

// ストアエラー時に500になることを検証
func TestRequireTask_StoreError(t *testing.T) {
	finder := &mockTaskFinder{
		findByIDFn: func(ctx context.Context, id string) (*model.Task, error) {
			return nil, fmt.Errorf("connection refused")
		},
	}

	router := newExistenceRouter(finder, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/tasks/"+validTaskID, nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusInternalServerError)
	}
}
