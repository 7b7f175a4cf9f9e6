package question

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, authMW func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMW)
	r.Post("/", h.CreateQuestion)
	r.Get("/by-quiz/{quizId}", h.ListByQuiz)
	r.Get("/{id}", h.GetQuestion)
	r.Put("/{id}", h.UpdateQuestion)
	r.Delete("/{id}", h.DeleteQuestion)
	return r
}
