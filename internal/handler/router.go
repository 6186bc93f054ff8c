package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/taskman/internal/metrics"
	"github.com/hitoshi/taskman/internal/middleware"
)

// Pinger は依存ストアの疎通確認インターフェース。*sql.DBが満たす。
type Pinger interface {
	PingContext(ctx context.Context) error
}

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	TokenVerifier     middleware.TokenVerifier
	TaskFinder        middleware.TaskFinder
	RateLimiter       *middleware.RateLimiter
	CORSAllowedOrigin string
	Logger            *slog.Logger

	// サービス
	AuthService AuthServiceInterface
	TaskService TaskServiceInterface

	// 運用エンドポイント
	DB        Pinger
	Collector *metrics.Collector
	Gatherer  prometheus.Gatherer
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	CORS → SecurityHeaders → Logging → Metrics → Recovery
//
// 認証ガード（RequireAuth）と存在ガード（RequireTask）はルートごとに適用し、
// 両方が必要なルートでは必ず認証ガードを先に実行する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewSecurityHeadersMiddleware())
	if deps.Logger != nil {
		r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	}
	if deps.Collector != nil {
		r.Use(deps.Collector.Middleware())
	}
	r.Use(middleware.NewRecoveryMiddleware())

	authHandler := NewAuthHandler(deps.AuthService)

	// 型付きnilポインタをインターフェースに入れない
	var recorder MutationRecorder
	if deps.Collector != nil {
		recorder = deps.Collector
	}
	taskHandler := NewTaskHandler(deps.TaskService, recorder)

	requireAuth := middleware.RequireAuth(deps.TokenVerifier)
	requireTask := middleware.RequireTask(deps.TaskFinder)

	// --- 認証エンドポイント（IPごとのレート制限付き） ---
	r.Group(func(r chi.Router) {
		if deps.RateLimiter != nil {
			r.Use(deps.RateLimiter.AuthMiddleware())
		}
		r.Post("/signup", authHandler.Signup)
		r.Post("/signin", authHandler.Signin)
	})

	// --- タスクCRUD ---
	r.Route("/api/tasks", func(r chi.Router) {
		// 読み取りは公開、作成は認証必須
		r.Get("/", taskHandler.ListTasks)
		r.With(requireAuth).Post("/", taskHandler.CreateTask)

		r.Route("/{id}", func(r chi.Router) {
			// 読み取りは存在ガードのみ
			r.With(requireTask).Get("/", taskHandler.GetTask)

			// ミューテーションは認証ガード → 存在ガードの順
			r.With(requireAuth, requireTask).Put("/", taskHandler.UpdateTask)
			r.With(requireAuth, requireTask).Delete("/", taskHandler.DeleteTask)
		})
	})

	// --- 運用エンドポイント ---
	r.Get("/health", healthHandler(deps.DB))
	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.Gatherer))
	}

	return r
}

// healthHandler はデータベース疎通を含むヘルスチェックハンドラーを返す。
// GET /health
func healthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "ok"
		statusCode := http.StatusOK

		if db != nil {
			if err := db.PingContext(r.Context()); err != nil {
				slog.Error("health check failed",
					slog.String("error", err.Error()),
				)
				status = "unavailable"
				statusCode = http.StatusServiceUnavailable
			}
		}

		writeJSONResponse(w, statusCode, map[string]string{"status": status})
	}
}
