package aiquiz

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, authMW func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMW)
	r.Post("/", h.GenerateQuestions)
	return r
}
