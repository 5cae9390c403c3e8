package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"task-manager/internal/app/tasklists"
	"task-manager/internal/domain"
)

const maxBodyBytes = 1 << 20

// Clock supplies error-body timestamps.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Server holds the HTTP handlers for the task-list routes.
type Server struct {
	Lists *tasklists.Service
	Clock Clock
	Log   *slog.Logger
}

func NewServer(svc *tasklists.Service) *Server {
	return &Server{Lists: svc, Clock: systemClock{}}
}

func (s *Server) logger() *slog.Logger {
	if s.Log == nil {
		return slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return s.Log
}

func (s *Server) now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock.Now()
}

func (s *Server) ListTaskLists(w http.ResponseWriter, r *http.Request) {
	lists, err := s.Lists.ListAll(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := make([]TaskListResponse, 0, len(lists))
	for _, l := range lists {
		out = append(out, taskListFromDomain(l))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) CreateTaskList(w http.ResponseWriter, r *http.Request) {
	var body CreateTaskListRequest
	if err := decodeBody(w, r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	l, err := s.Lists.CreateList(r.Context(), valueOrEmpty(body.Name))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, taskListFromDomain(l))
}

func (s *Server) DeleteTaskList(w http.ResponseWriter, r *http.Request) {
	listID, err := pathID(r, "listId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.Lists.DeleteList(r.Context(), domain.ListID(listID)); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) AddTask(w http.ResponseWriter, r *http.Request) {
	listID, err := pathID(r, "listId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var body TaskRequest
	if err := decodeBody(w, r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	t, err := s.Lists.AddTask(r.Context(), domain.ListID(listID), valueOrEmpty(body.Name), valueOrEmpty(body.Description))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, taskFromDomain(t))
}

func (s *Server) UpdateTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := pathID(r, "taskId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var body TaskRequest
	if err := decodeBody(w, r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	t, err := s.Lists.UpdateTask(r.Context(), domain.TaskID(taskID), valueOrEmpty(body.Name), valueOrEmpty(body.Description))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, taskFromDomain(t))
}

func (s *Server) DeleteTask(w http.ResponseWriter, r *http.Request) {
	listID, err := pathID(r, "listId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	taskID, err := pathID(r, "taskId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.Lists.DeleteTask(r.Context(), domain.ListID(listID), domain.TaskID(taskID)); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) MoveTask(w http.ResponseWriter, r *http.Request) {
	fromID, err := pathID(r, "fromListId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	taskID, err := pathID(r, "taskId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	toID, err := pathID(r, "toListId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	t, err := s.Lists.MoveTask(r.Context(), domain.ListID(fromID), domain.TaskID(taskID), domain.ListID(toID))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, taskFromDomain(t))
}

// pathID parses a positive integer path parameter.
func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, tasklists.NewValidationError("invalid " + name + ": " + raw)
	}
	return id, nil
}

// decodeBody reads a single JSON object into dst.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return tasklists.NewValidationError("malformed request body")
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return tasklists.NewValidationError("malformed request body")
	}
	return nil
}
