package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_pipeline.go -package=mocks hrassist/internal/service QueryProcessor,Retriever,Responder
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_answer_service.go -package=mocks -mock_names=AnswerService=MockAnswerService hrassist/internal/service AnswerService

import (
	"context"
	"errors"

	"hrassist/internal/contextutil"
	"hrassist/internal/format"
	"hrassist/internal/query"
	"hrassist/internal/respond"
	"hrassist/internal/retrieval"
)

// QueryProcessor classifies a raw question and extracts its entities.
// These interfaces are defined from the service layer's perspective (consumer-first).
type QueryProcessor interface {
	Process(ctx context.Context, question string, history []query.Turn) (*query.Context, error)
}

// Retriever finds document chunks relevant to a processed query.
type Retriever interface {
	Retrieve(ctx context.Context, qc *query.Context) ([]retrieval.Result, error)
}

// Responder turns a processed query and its retrieved context into a
// verified, platform-formatted response.
type Responder interface {
	Generate(ctx context.Context, qc *query.Context, results []retrieval.Result) (*respond.Response, error)
}

// Status classifies an answer for the caller.
type Status string

const (
	// StatusSuccess means the answer carries verified content.
	StatusSuccess Status = "success"
	// StatusNoAnswer means the pipeline declined to answer and the content
	// is a safe fallback pointing at official channels.
	StatusNoAnswer Status = "no_answer"
	// StatusError means generation failed and the content is an apology.
	StatusError Status = "error"
)

// AnswerRequest carries one question through the pipeline.
type AnswerRequest struct {
	Question  string
	Platform  string
	UserID    string
	SessionID string
	History   []query.Turn
}

// Answer is the caller-facing result. It is always well-formed: whatever
// happened inside the pipeline, Answer holds displayable text, Sources
// holds zero or more cited document names, and Status says which it is.
type Answer struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources"`
	Status  Status   `json:"status"`
}

// AnswerService answers HR questions.
type AnswerService interface {
	// Answer runs a question through retrieval, generation and
	// verification and returns the resulting answer.
	Answer(ctx context.Context, req AnswerRequest) (Answer, error)
}

// answerService implements AnswerService.
type answerService struct {
	queries   QueryProcessor
	retriever Retriever
	responder Responder
}

// NewAnswerService creates a new AnswerService.
func NewAnswerService(queries QueryProcessor, retriever Retriever, responder Responder) AnswerService {
	return &answerService{
		queries:   queries,
		retriever: retriever,
		responder: responder,
	}
}

// Answer processes one question end to end.
func (s *answerService) Answer(ctx context.Context, req AnswerRequest) (Answer, error) {
	logger := contextutil.LoggerFromContext(ctx)

	qc, err := s.queries.Process(ctx, req.Question, req.History)
	if err != nil {
		if errors.Is(err, query.ErrInvalidQuery) {
			logger.WarnContext(ctx, "rejected answer request", "error", err)
			return Answer{}, &ValidationError{
				Field:   "question",
				Message: "cannot be empty",
			}
		}
		logger.ErrorContext(ctx, "failed to process question", "error", err)
		return Answer{}, WrapError(err, "failed to process question")
	}
	qc.UserID = req.UserID
	qc.SessionID = req.SessionID
	qc.Platform = format.ParsePlatform(req.Platform)

	// Greetings get a fixed reply, so skip the index round trip.
	var results []retrieval.Result
	if qc.Type != query.TypeGreeting {
		results, err = s.retriever.Retrieve(ctx, qc)
		if err != nil {
			logger.ErrorContext(ctx, "failed to retrieve context", "error", err)
			return Answer{}, WrapError(err, "failed to retrieve context")
		}
	}

	resp, err := s.responder.Generate(ctx, qc, results)
	if err != nil {
		logger.ErrorContext(ctx, "failed to generate answer", "error", err)
		return Answer{}, WrapError(err, "failed to generate answer")
	}

	ans := Answer{
		Answer:  resp.Content,
		Sources: sourceNames(resp.Sources),
		Status:  statusFor(resp.Outcome),
	}

	logger.InfoContext(ctx, "question answered",
		"query_type", qc.Type,
		"platform", qc.Platform,
		"outcome", resp.Outcome,
		"status", ans.Status,
		"quality", resp.Quality,
		"source_count", len(ans.Sources),
	)
	return ans, nil
}

// statusFor maps a generation outcome onto the three caller-facing states.
func statusFor(outcome respond.Outcome) Status {
	switch outcome {
	case respond.OutcomeAnswered, respond.OutcomeGreeting:
		return StatusSuccess
	case respond.OutcomeGenerationFailed:
		return StatusError
	default:
		return StatusNoAnswer
	}
}

// sourceNames flattens source references to document names. The slice is
// never nil so the JSON form is always an array.
func sourceNames(refs []format.SourceRef) []string {
	names := make([]string, 0, len(refs))
	for _, ref := range refs {
		names = append(names, ref.Filename)
	}
	return names
}
