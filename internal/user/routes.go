package user

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func AuthRoutes(h *Handler, authMW func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/refresh", h.RefreshToken)
	r.Post("/logout", h.Logout)
	r.With(authMW).Get("/me", h.Me)
	return r
}

func Routes(h *Handler, authMW func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMW)
	r.Get("/me", h.Me)
	r.Get("/{id}", h.GetUser)
	return r
}
