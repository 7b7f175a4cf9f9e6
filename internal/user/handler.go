package user

import (
	"fmt"
	"net/http"

	"github.com/saulo-duarte/quizhub-api/internal/auth"
	"github.com/saulo-duarte/quizhub-api/internal/config"
	"github.com/saulo-duarte/quizhub-api/internal/request"
)

type Handler struct {
	service UserService
}

func NewHandler(s UserService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var dto RegisterDTO
	if err := request.DecodeAndValidate(w, r, &dto); err != nil {
		config.WriteError(w, r, err)
		return
	}

	u, err := h.service.Register(r.Context(), dto)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/users/%d", u.ID))
	config.JSON(w, http.StatusCreated, u)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := request.DecodeAndValidate(w, r, &dto); err != nil {
		config.WriteError(w, r, err)
		return
	}

	pair, err := h.service.Login(r.Context(), dto)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, pair)
}

func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var dto RefreshDTO
	if err := request.Decode(w, r, &dto); err != nil {
		config.WriteError(w, r, ErrInvalidRefreshToken)
		return
	}

	pair, err := h.service.Refresh(r.Context(), dto.RefreshToken)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, pair)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	var dto RefreshDTO
	if err := request.Decode(w, r, &dto); err != nil {
		config.WriteError(w, r, err)
		return
	}

	if err := h.service.Logout(r.Context(), dto.RefreshToken); err != nil {
		config.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		config.WriteProblem(w, r, http.StatusUnauthorized, "authentication required")
		return
	}

	config.JSON(w, http.StatusOK, MeResponse{
		ID:   claims.UserID,
		Name: claims.Name,
		Role: claims.Role,
	})
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := request.ParseID(r, "id")
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	u, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	if u == nil {
		config.WriteProblem(w, r, http.StatusNotFound, "user not found")
		return
	}
	config.JSON(w, http.StatusOK, u)
}
