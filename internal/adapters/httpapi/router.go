package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// DefaultBasePath is where the task-list routes are mounted.
const DefaultBasePath = "/api/v1/task-manager"

type RouterOptions struct {
	// Logger receives access logs and error translation logs. Nil discards.
	Logger *slog.Logger
	// BasePath overrides DefaultBasePath when non-empty.
	BasePath string
}

// NewRouter constructs the API HTTP router with default options.
func NewRouter(s *Server) http.Handler {
	return NewRouterWithOptions(s, RouterOptions{})
}

func NewRouterWithOptions(s *Server, opts RouterOptions) http.Handler {
	if opts.Logger != nil {
		s.Log = opts.Logger
	}
	base := opts.BasePath
	if base == "" {
		base = DefaultBasePath
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(accessLog(s.logger()))
	r.Use(middleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeStatus(w, r, http.StatusNotFound, "no route for "+r.Method+" "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		s.writeStatus(w, r, http.StatusMethodNotAllowed, "method "+r.Method+" not allowed on "+r.URL.Path)
	})

	// Infra check; lives outside the versioned base path.
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route(base, func(r chi.Router) {
		r.Get("/lists", s.ListTaskLists)
		r.Post("/lists", s.CreateTaskList)
		r.Delete("/lists/{listId}", s.DeleteTaskList)
		r.Post("/lists/{listId}/tasks", s.AddTask)
		r.Delete("/lists/{listId}/tasks/{taskId}", s.DeleteTask)
		r.Put("/lists/{fromListId}/tasks/{taskId}/move/{toListId}", s.MoveTask)
		r.Put("/tasks/{taskId}", s.UpdateTask)
	})

	return r
}
