package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"hrassist/internal/memory"
	"hrassist/internal/query"
	"hrassist/internal/service"
	"hrassist/internal/service/mocks"
)

func init() {
	// Set default logger to discard output for cleaner test output
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestNewAnswerHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAnswers := mocks.NewMockAnswerService(ctrl)
	handler := NewAnswerHandler(mockAnswers, nil)

	if handler == nil {
		t.Fatal("NewAnswerHandler() returned nil")
	}
	if handler.answers != mockAnswers {
		t.Error("NewAnswerHandler() answers not set correctly")
	}
}

func TestAnswerHandler_ServeHTTP(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name          string
		method        string
		body          interface{}
		mockSetup     func(*mocks.MockAnswerService)
		wantStatus    int
		checkResponse func(*httptest.ResponseRecorder) bool
	}{
		{
			name:   "successful POST request",
			method: http.MethodPost,
			body: AnswerRequest{
				Question: "How do I request leave?",
				Platform: "slack",
			},
			mockSetup: func(m *mocks.MockAnswerService) {
				m.EXPECT().
					Answer(gomock.Any(), service.AnswerRequest{
						Question: "How do I request leave?",
						Platform: "slack",
					}).
					Return(service.Answer{
						Answer:  "Submit the leave form.",
						Sources: []string{"staff-handbook-africa.pdf"},
						Status:  service.StatusSuccess,
					}, nil)
			},
			wantStatus: http.StatusOK,
			checkResponse: func(w *httptest.ResponseRecorder) bool {
				var resp service.Answer
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
					return false
				}
				return resp.Answer == "Submit the leave form." &&
					len(resp.Sources) == 1 &&
					resp.Status == service.StatusSuccess
			},
		},
		{
			name:   "no_answer passes through",
			method: http.MethodPost,
			body: AnswerRequest{
				Question: "What is the moon made of?",
			},
			mockSetup: func(m *mocks.MockAnswerService) {
				m.EXPECT().
					Answer(gomock.Any(), gomock.Any()).
					Return(service.Answer{
						Answer:  "I don't have enough information.",
						Sources: []string{},
						Status:  service.StatusNoAnswer,
					}, nil)
			},
			wantStatus: http.StatusOK,
			checkResponse: func(w *httptest.ResponseRecorder) bool {
				var resp service.Answer
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
					return false
				}
				return resp.Status == service.StatusNoAnswer && resp.Sources != nil
			},
		},
		{
			name:   "method not allowed",
			method: http.MethodGet,
			mockSetup: func(m *mocks.MockAnswerService) {
				// No calls expected
			},
			wantStatus: http.StatusMethodNotAllowed,
		},
		{
			name:   "invalid JSON body",
			method: http.MethodPost,
			body:   "invalid json",
			mockSetup: func(m *mocks.MockAnswerService) {
				// No calls expected
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "validation error",
			method: http.MethodPost,
			body: AnswerRequest{
				Question: "",
			},
			mockSetup: func(m *mocks.MockAnswerService) {
				m.EXPECT().
					Answer(gomock.Any(), gomock.Any()).
					Return(service.Answer{}, &service.ValidationError{
						Field:   "question",
						Message: "cannot be empty",
					})
			},
			wantStatus: http.StatusBadRequest,
			checkResponse: func(w *httptest.ResponseRecorder) bool {
				var resp ErrorResponse
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
					return false
				}
				return resp.Error != ""
			},
		},
		{
			name:   "service error",
			method: http.MethodPost,
			body: AnswerRequest{
				Question: "How do I request leave?",
			},
			mockSetup: func(m *mocks.MockAnswerService) {
				m.EXPECT().
					Answer(gomock.Any(), gomock.Any()).
					Return(service.Answer{}, errors.New("retriever offline"))
			},
			wantStatus: http.StatusInternalServerError,
			checkResponse: func(w *httptest.ResponseRecorder) bool {
				var resp ErrorResponse
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
					return false
				}
				// Internal error text must not leak.
				return resp.Error == "Failed to answer question"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockAnswers := mocks.NewMockAnswerService(ctrl)
			tt.mockSetup(mockAnswers)

			handler := NewAnswerHandler(mockAnswers, nil)

			var bodyBytes []byte
			if s, ok := tt.body.(string); ok {
				bodyBytes = []byte(s)
			} else if tt.body != nil {
				var err error
				bodyBytes, err = json.Marshal(tt.body)
				if err != nil {
					t.Fatalf("failed to marshal body: %v", err)
				}
			}

			req := httptest.NewRequest(tt.method, "/api/answer", bytes.NewBuffer(bodyBytes))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("ServeHTTP() status = %v, want %v", w.Code, tt.wantStatus)
			}

			if tt.checkResponse != nil && !tt.checkResponse(w) {
				t.Error("ServeHTTP() response validation failed")
			}
		})
	}
}

func TestAnswerHandler_SessionHistory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sessions := memory.NewStore(16, 4, time.Minute)
	sessions.Append("S1", query.Turn{Question: "Who handles payroll?", Answer: "The finance office."})

	var gotHistory []query.Turn
	mockAnswers := mocks.NewMockAnswerService(ctrl)
	mockAnswers.EXPECT().
		Answer(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req service.AnswerRequest) (service.Answer, error) {
			gotHistory = req.History
			return service.Answer{
				Answer:  "Every two weeks.",
				Sources: []string{},
				Status:  service.StatusSuccess,
			}, nil
		})

	handler := NewAnswerHandler(mockAnswers, sessions)

	body, _ := json.Marshal(AnswerRequest{Question: "How often is it paid?", SessionID: "S1"})
	req := httptest.NewRequest(http.MethodPost, "/api/answer", bytes.NewBuffer(body))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("ServeHTTP() status = %v, want %v", w.Code, http.StatusOK)
	}
	if len(gotHistory) != 1 || gotHistory[0].Question != "Who handles payroll?" {
		t.Errorf("ServeHTTP() passed history = %+v, want the recorded turn", gotHistory)
	}

	// The successful exchange is appended to the session window.
	turns := sessions.History("S1")
	if len(turns) != 2 {
		t.Fatalf("session history length = %d, want 2", len(turns))
	}
	if turns[1].Question != "How often is it paid?" || turns[1].Answer != "Every two weeks." {
		t.Errorf("session history tail = %+v, want the new turn", turns[1])
	}
}

func TestAnswerHandler_NoAnswerNotRecorded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sessions := memory.NewStore(16, 4, time.Minute)
	mockAnswers := mocks.NewMockAnswerService(ctrl)
	mockAnswers.EXPECT().
		Answer(gomock.Any(), gomock.Any()).
		Return(service.Answer{
			Answer:  "I don't have enough information.",
			Sources: []string{},
			Status:  service.StatusNoAnswer,
		}, nil)

	handler := NewAnswerHandler(mockAnswers, sessions)

	body, _ := json.Marshal(AnswerRequest{Question: "What is the moon made of?", SessionID: "S2"})
	req := httptest.NewRequest(http.MethodPost, "/api/answer", bytes.NewBuffer(body))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if got := sessions.History("S2"); got != nil {
		t.Errorf("session history = %+v, want nil for a no_answer exchange", got)
	}
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()

	writeError(w, http.StatusBadRequest, "test error")

	if w.Code != http.StatusBadRequest {
		t.Errorf("writeError() status = %v, want %v", w.Code, http.StatusBadRequest)
	}

	var resp ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("writeError() invalid JSON: %v", err)
	}
	if resp.Error != "test error" {
		t.Errorf("writeError() error = %v, want test error", resp.Error)
	}
}
