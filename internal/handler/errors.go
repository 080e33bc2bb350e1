package handler

import (
	"errors"
	"net/http"

	"github.com/pkordes/recipebox/internal/domain"
)

// fail renders the page matching err: the not-found page for
// domain.ErrNotFound, otherwise a logged 500.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		s.render(w, r, http.StatusNotFound, "notfound", page{Title: "Not found"})
		return
	}

	s.log.ErrorContext(r.Context(), "request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)
	s.render(w, r, http.StatusInternalServerError, "error", page{
		Title:   "Something went wrong",
		Message: "The request could not be completed.",
	})
}

// badRequest renders the error page for input rejected before reaching the
// service layer (e.g. a malformed id or an oversized body).
func (s *Server) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusBadRequest
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		status = http.StatusRequestEntityTooLarge
	}
	s.render(w, r, status, "error", page{Title: http.StatusText(status), Message: err.Error()})
}

// fieldErrors extracts the per-field messages from a validation failure.
// ok is false when err is not a validation error.
func fieldErrors(err error) (fields map[string]string, ok bool) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return verr.Fields, true
	}
	return nil, false
}
