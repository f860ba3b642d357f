package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lehigh-university-libraries/jatstemplate/host"
)

// articleHandler renders the JATS document of a loaded record.
func (s *Server) articleHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	journalPath := chi.URLParam(r, "journalPath")
	logger := s.logger.With("journal", journalPath, "request_id", middleware.GetReqID(r.Context()))

	submissionID, err := strconv.Atoi(chi.URLParam(r, "submissionId"))
	if err != nil || submissionID <= 0 {
		s.metrics.observeRender(resultBadRequest, time.Since(start))
		notFound(w)
		return
	}

	rec, err := s.deps.Records.Record(r.Context(), journalPath, submissionID)
	if err != nil {
		result := resultError
		if errors.Is(err, host.ErrNotFound) {
			result = resultNotFound
		}
		s.metrics.observeRender(result, time.Since(start))
		logger.Debug("record lookup failed", "submission", submissionID, "error", err)
		notFound(w)
		return
	}

	out, err := s.deps.Generator.Generate(r.Context(), rec)
	if err != nil {
		s.metrics.observeRender(resultError, time.Since(start))
		logger.Error("rendering article failed", "submission", submissionID, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	s.metrics.observeRender(resultOK, time.Since(start))
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(out); err != nil {
		logger.Warn("writing article failed", "error", err)
	}
}
