package quiz

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/saulo-duarte/quizhub-api/internal/auth"
	"github.com/saulo-duarte/quizhub-api/internal/config"
	"github.com/saulo-duarte/quizhub-api/internal/request"
)

// multipart framing on top of the image itself
const maxUploadBodyBytes = MaxImageBytes + 1<<20

type Handler struct {
	service QuizService
}

func NewHandler(s QuizService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) ListQuizzes(w http.ResponseWriter, r *http.Request) {
	quizzes, err := h.service.List(r.Context())
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, NewQuizViews(quizzes))
}

func (h *Handler) GetQuiz(w http.ResponseWriter, r *http.Request) {
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
		config.WriteProblem(w, r, http.StatusNotFound, "quiz not found")
		return
	}
	config.JSON(w, http.StatusOK, NewQuizView(q))
}

func (h *Handler) GetQuizWithQuestions(w http.ResponseWriter, r *http.Request) {
	id, err := request.ParseID(r, "id")
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	q, err := h.service.GetWithQuestions(r.Context(), id)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	if q == nil {
		config.WriteProblem(w, r, http.StatusNotFound, "quiz not found")
		return
	}
	config.JSON(w, http.StatusOK, NewQuizView(q))
}

func (h *Handler) CreateQuiz(w http.ResponseWriter, r *http.Request) {
	var dto CreateQuizDTO
	if err := request.Decode(w, r, &dto); err != nil {
		config.WriteError(w, r, err)
		return
	}

	var ownerID *uint
	if claims, err := auth.GetUserClaimsFromContext(r.Context()); err == nil {
		if id, err := claims.NumericUserID(); err == nil {
			ownerID = &id
		}
	}

	q, err := h.service.Create(r.Context(), dto, ownerID)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/quizzes/%d", q.ID))
	config.JSON(w, http.StatusCreated, NewQuizView(q))
}

func (h *Handler) UpdateQuiz(w http.ResponseWriter, r *http.Request) {
	id, err := request.ParseID(r, "id")
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	var dto UpdateQuizDTO
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
		config.WriteProblem(w, r, http.StatusNotFound, "quiz not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) DeleteQuiz(w http.ResponseWriter, r *http.Request) {
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
		config.WriteProblem(w, r, http.StatusNotFound, "quiz not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadImage expects a multipart form with the image in the "file" field.
func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	id, err := request.ParseID(r, "id")
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBodyBytes)
	file, _, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			config.WriteProblem(w, r, http.StatusRequestEntityTooLarge, ErrImageTooLarge.Error())
			return
		}
		config.WriteProblem(w, r, http.StatusBadRequest, "multipart field \"file\" is required")
		return
	}
	defer file.Close()

	q, err := h.service.UploadImage(r.Context(), id, file)
	if err != nil {
		if errors.Is(err, ErrImageTooLarge) {
			config.WriteProblem(w, r, http.StatusRequestEntityTooLarge, err.Error())
			return
		}
		config.WriteError(w, r, err)
		return
	}
	if q == nil {
		config.WriteProblem(w, r, http.StatusNotFound, "quiz not found")
		return
	}
	config.JSON(w, http.StatusOK, NewQuizView(q))
}

func (h *Handler) RemoveImage(w http.ResponseWriter, r *http.Request) {
	id, err := request.ParseID(r, "id")
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	removed, err := h.service.RemoveImage(r.Context(), id)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	if !removed {
		config.WriteProblem(w, r, http.StatusNotFound, "quiz not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, categories)
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var dto CreateCategoryDTO
	if err := request.DecodeAndValidate(w, r, &dto); err != nil {
		config.WriteError(w, r, err)
		return
	}

	c, err := h.service.CreateCategory(r.Context(), dto)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.JSON(w, http.StatusCreated, c)
}
