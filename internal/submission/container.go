package submission

type SubmissionContainer struct {
	Handler *Handler
	Service SubmissionService
}

func NewSubmissionContainer(quizzes QuizLoader) *SubmissionContainer {
	service := NewService(quizzes)
	return &SubmissionContainer{
		Handler: NewHandler(service),
		Service: service,
	}
}
