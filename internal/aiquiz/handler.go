package aiquiz

import (
	"net/http"

	"github.com/saulo-duarte/quizhub-api/internal/config"
	"github.com/saulo-duarte/quizhub-api/internal/request"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) GenerateQuestions(w http.ResponseWriter, r *http.Request) {
	var req DraftRequest
	if err := request.DecodeAndValidate(w, r, &req); err != nil {
		config.WriteError(w, r, err)
		return
	}

	drafts, err := h.service.GenerateQuestions(r.Context(), req)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.JSON(w, http.StatusCreated, drafts)
}
