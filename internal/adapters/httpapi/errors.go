package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"task-manager/internal/app/tasklists"
)

func statusForKind(k tasklists.Kind) int {
	switch k {
	case tasklists.KindValidation, tasklists.KindInvalidState:
		return http.StatusBadRequest
	case tasklists.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeError translates err into a status and error body. Unclassified errors
// become a 500 whose cause is logged but not returned.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"
	code := ""
	var ae *tasklists.Error
	if errors.As(err, &ae) {
		status = statusForKind(ae.Kind)
		if status != http.StatusInternalServerError {
			message = ae.Message
		}
		code = ae.Code
	}

	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	s.logger().LogAttrs(r.Context(), level, "request failed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("status", status),
		slog.String("code", code),
		slog.String("err", err.Error()),
		slog.String("requestId", middleware.GetReqID(r.Context())),
	)

	s.writeStatus(w, r, status, message)
}

func (s *Server) writeStatus(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, status, ErrorResponse{
		Status:    status,
		Error:     http.StatusText(status),
		Message:   message,
		Timestamp: s.now().UTC().Format(time.RFC3339),
		RequestID: middleware.GetReqID(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
