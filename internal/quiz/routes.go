package quiz

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, authMW func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListQuizzes)
	r.Get("/{id}", h.GetQuiz)
	r.Get("/{id}/with-questions", h.GetQuizWithQuestions)

	r.Group(func(r chi.Router) {
		r.Use(authMW)

		r.Post("/", h.CreateQuiz)
		r.Put("/{id}", h.UpdateQuiz)
		r.Delete("/{id}", h.DeleteQuiz)
		r.Post("/{id}/image", h.UploadImage)
		r.Delete("/{id}/image", h.RemoveImage)
	})
	return r
}

// CategoryRoutes exposes categories publicly; creation goes through adminMW.
func CategoryRoutes(h *Handler, authMW, adminMW func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListCategories)
	r.With(authMW, adminMW).Post("/", h.CreateCategory)
	return r
}
