package router

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/saulo-duarte/quizhub-api/internal/aiquiz"
	"github.com/saulo-duarte/quizhub-api/internal/auth"
	"github.com/saulo-duarte/quizhub-api/internal/config"
	"github.com/saulo-duarte/quizhub-api/internal/middlewares"
	"github.com/saulo-duarte/quizhub-api/internal/question"
	"github.com/saulo-duarte/quizhub-api/internal/quiz"
	"github.com/saulo-duarte/quizhub-api/internal/submission"
	"github.com/saulo-duarte/quizhub-api/internal/user"
)

type RouterConfig struct {
	Tokens         *auth.TokenService
	AllowedOrigins []string
	UploadDir      string
	UploadBaseURL  string
	HealthCheck    func(ctx context.Context) error

	UserHandler       *user.Handler
	QuizHandler       *quiz.Handler
	QuestionHandler   *question.Handler
	SubmissionHandler *submission.Handler
	AIQuizHandler     *aiquiz.Handler
}

func New(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middlewares.Recoverer)
	r.Use(middlewares.Cors(cfg.AllowedOrigins))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		config.WriteProblem(w, r, http.StatusNotFound, "no route for "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		config.WriteProblem(w, r, http.StatusMethodNotAllowed, "")
	})

	authMW := cfg.Tokens.Middleware
	adminOnly := auth.RequireRole(string(user.RoleAdmin))

	r.Get("/healthz", healthz(cfg.HealthCheck))

	if base := strings.TrimRight(cfg.UploadBaseURL, "/"); strings.HasPrefix(base, "/") && cfg.UploadDir != "" {
		files := http.StripPrefix(base+"/", http.FileServer(http.Dir(cfg.UploadDir)))
		r.Get(base+"/*", files.ServeHTTP)
	}

	r.Route("/api", func(r chi.Router) {
		r.Mount("/auth", user.AuthRoutes(cfg.UserHandler, authMW))
		r.Mount("/users", user.Routes(cfg.UserHandler, authMW))
		r.Mount("/categories", quiz.CategoryRoutes(cfg.QuizHandler, authMW, adminOnly))

		quizzes := quiz.Routes(cfg.QuizHandler, authMW)
		quizzes.With(authMW).Post("/{id}/submit", cfg.SubmissionHandler.Submit)
		r.Mount("/quizzes", quizzes)

		r.Mount("/quiz-questions", question.Routes(cfg.QuestionHandler, authMW))
		r.Mount("/ai/questions", aiquiz.Routes(cfg.AIQuizHandler, authMW))
	})

	return r
}

func healthz(check func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := check(ctx); err != nil {
				config.WithContext(r.Context()).WithError(err).Warn("Health check failed")
				config.WriteProblem(w, r, http.StatusServiceUnavailable, "database unavailable")
				return
			}
		}
		config.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
