package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"hrassist/internal/handlers"
	"hrassist/internal/memory"
	"hrassist/internal/service"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Answers  service.AnswerService
	Sessions *memory.Store // optional
	Index    handlers.IndexCounter
	IndexDim int
	Provider string
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(CORS)

	answerHandler := handlers.NewAnswerHandler(deps.Answers, deps.Sessions)
	statusHandler := handlers.NewStatusHandler(deps.Index, deps.IndexDim, deps.Provider)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/answer", answerHandler)
		r.Method(http.MethodGet, "/status", statusHandler)
	})
	r.Method(http.MethodGet, "/healthz", handlers.NewHealthHandler())

	return r
}
