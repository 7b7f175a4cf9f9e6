package question

import (
	"fmt"
	"net/http"

	"github.com/saulo-duarte/quizhub-api/internal/config"
	"github.com/saulo-duarte/quizhub-api/internal/request"
)

type Handler struct {
	service QuestionService
}

func NewHandler(s QuestionService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := request.ParseID(r, "id")
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	q, err := h.service.Get(r.Context(), id)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	if q == nil {
		config.WriteProblem(w, r, http.StatusNotFound, "question not found")
		return
	}
	config.JSON(w, http.StatusOK, q)
}

func (h *Handler) ListByQuiz(w http.ResponseWriter, r *http.Request) {
	quizID, err := request.ParseID(r, "quizId")
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	questions, err := h.service.ListByQuiz(r.Context(), quizID)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, questions)
}

func (h *Handler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var dto CreateQuestionDTO
	if err := request.Decode(w, r, &dto); err != nil {
		config.WriteError(w, r, err)
		return
	}

	q, err := h.service.Create(r.Context(), dto)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/quiz-questions/%d", q.ID))
	config.JSON(w, http.StatusCreated, q)
}

func (h *Handler) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := request.ParseID(r, "id")
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	var dto UpdateQuestionDTO
	if err := request.Decode(w, r, &dto); err != nil {
		config.WriteError(w, r, err)
		return
	}

	updated, err := h.service.Update(r.Context(), id, dto)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	if !updated {
		config.WriteProblem(w, r, http.StatusNotFound, "question not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := request.ParseID(r, "id")
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	deleted, err := h.service.Delete(r.Context(), id)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	if !deleted {
		config.WriteProblem(w, r, http.StatusNotFound, "question not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
