package submission

import (
	"net/http"

	"github.com/saulo-duarte/quizhub-api/internal/config"
	"github.com/saulo-duarte/quizhub-api/internal/request"
)

type Handler struct {
	service SubmissionService
}

func NewHandler(s SubmissionService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	quizID, err := request.ParseID(r, "id")
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	var dto SubmitDTO
	if err := request.Decode(w, r, &dto); err != nil {
		config.WriteError(w, r, err)
		return
	}

	res, err := h.service.Submit(r.Context(), quizID, dto.Answers)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, res)
}
