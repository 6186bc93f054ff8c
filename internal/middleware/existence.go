package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hitoshi/taskman/internal/model"
)

// TaskFinder はタスク存在確認に必要なインターフェース。
// repository.TaskRepositoryの部分集合として定義する。
type TaskFinder interface {
	FindByID(ctx context.Context, id string) (*model.Task, error)
}

// RequireTask はURLパスの{id}パラメータを検査するガードミドルウェアを返す。
// 識別子がUUIDとして構文的に不正な場合、および構文的に正しいが対象レコードが
// 存在しない場合のどちらも、呼び出し側から区別できない同一の400エラーで打ち切る。
// 成功時はレコードを添付せずに継続し、ハンドラー側で再取得する。
// 認証ガードと併用する場合は認証ガードの後に配置すること。
func RequireTask(finder TaskFinder) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := chi.URLParam(r, "id")

			// 1. 構文検証: ストアのID形式（UUID）として解釈できるか
			if _, err := uuid.Parse(id); err != nil {
				WriteErrorResponse(w, http.StatusBadRequest, model.NewTaskNotFoundError(id))
				return
			}

			// 2. 存在検証: ミューテーション直前の存在チェック
			task, err := finder.FindByID(r.Context(), id)
			if err != nil {
				slog.Error("failed to check task existence",
					slog.String("task_id", id),
					slog.String("error", err.Error()),
				)
				WriteInternalServerError(w)
				return
			}
			if task == nil {
				WriteErrorResponse(w, http.StatusBadRequest, model.NewTaskNotFoundError(id))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
