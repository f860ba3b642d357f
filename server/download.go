package server

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lehigh-university-libraries/jatstemplate/host"
	"github.com/lehigh-university-libraries/jatstemplate/model"
)

var errBadRequest = errors.New("bad download request")

// downloadRoles may download production-ready files.
var downloadRoles = []host.RoleID{host.RoleManager, host.RoleSubscriptionManager}

// downloadRequest is the parsed download query.
type downloadRequest struct {
	submissionID     int
	submissionFileID int
	fileID           int
	stageID          int
}

func parseDownloadRequest(r *http.Request) (downloadRequest, error) {
	q := r.URL.Query()
	var req downloadRequest
	fields := []struct {
		name string
		dst  *int
	}{
		{"submissionId", &req.submissionID},
		{"submissionFileId", &req.submissionFileID},
		{"fileId", &req.fileID},
		{"stageId", &req.stageID},
	}
	for _, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(q.Get(f.name)))
		if err != nil || v <= 0 {
			return downloadRequest{}, fmt.Errorf("%w: %s = %q", errBadRequest, f.name, q.Get(f.name))
		}
		*f.dst = v
	}
	return req, nil
}

// downloadHandler streams a production-ready file to a journal manager or
// subscription manager. Every failure answers 404.
func (s *Server) downloadHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	n, streaming, err := s.serveDownload(w, r)
	result := downloadResult(err)
	s.metrics.observeDownload(result, n, time.Since(start))

	if err == nil {
		return
	}
	if streaming {
		s.logger.Warn("download interrupted",
			"request_id", middleware.GetReqID(r.Context()),
			"bytes", n,
			"error", err,
		)
		return
	}
	s.logger.Debug("download refused",
		"journal", chi.URLParam(r, "journalPath"),
		"result", result,
		"request_id", middleware.GetReqID(r.Context()),
		"error", err,
	)
	notFound(w)
}

// serveDownload writes the file and returns the bytes written. streaming
// reports whether the response was already started when err occurred.
func (s *Server) serveDownload(w http.ResponseWriter, r *http.Request) (n int64, streaming bool, err error) {
	ctx := r.Context()

	userID, err := s.auth.UserID(r)
	if err != nil {
		return 0, false, err
	}

	req, err := parseDownloadRequest(r)
	if err != nil {
		return 0, false, err
	}
	if req.stageID != host.StageProduction {
		return 0, false, fmt.Errorf("%w: stage %d is not production", errBadRequest, req.stageID)
	}

	journal, err := s.deps.Journals.JournalByPath(ctx, chi.URLParam(r, "journalPath"))
	if err != nil {
		return 0, false, fmt.Errorf("resolving journal: %w", err)
	}

	roles, err := s.deps.Roles.RolesForUser(ctx, userID, journal.ID)
	if err != nil {
		return 0, false, fmt.Errorf("looking up roles: %w", err)
	}
	if !hasAnyRole(roles, downloadRoles) {
		return 0, false, fmt.Errorf("%w: user %s in journal %d", errForbidden, userID, journal.ID)
	}

	file, err := s.findProductionFile(r, req)
	if err != nil {
		return 0, false, err
	}

	rc, err := s.deps.FileService.Open(ctx, file.FileID)
	if err != nil {
		return 0, false, fmt.Errorf("opening file %d: %w", file.FileID, err)
	}
	defer rc.Close()

	w.Header().Set("Content-Type", s.contentType(r, file))
	w.Header().Set("Content-Disposition", contentDisposition(file, journal.PrimaryLocale))
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)

	n, err = io.Copy(w, rc)
	if err != nil {
		return n, true, fmt.Errorf("streaming file %d: %w", file.FileID, err)
	}
	return n, true, nil
}

// findProductionFile matches the requested ids against the submission's
// production-ready files.
func (s *Server) findProductionFile(r *http.Request, req downloadRequest) (*model.SubmissionFile, error) {
	files, err := s.deps.Files.ProductionReady(r.Context(), req.submissionID)
	if err != nil {
		return nil, fmt.Errorf("listing production-ready files: %w", err)
	}
	for i := range files {
		f := files[i]
		if f.ID == req.submissionFileID && f.FileID == req.fileID && f.SubmissionID == req.submissionID {
			return &f, nil
		}
	}
	return nil, fmt.Errorf("submission file %d: %w", req.submissionFileID, host.ErrNotFound)
}

func (s *Server) contentType(r *http.Request, file *model.SubmissionFile) string {
	if s.deps.FileService != nil {
		if mt, err := s.deps.FileService.MIMEType(r.Context(), file.FileID); err == nil && mt != "" {
			return mt
		}
	}
	if file.MIMEType != "" {
		return file.MIMEType
	}
	return "application/octet-stream"
}

// contentDisposition names the download after the file's localized name
// with the stored file's extension.
func contentDisposition(file *model.SubmissionFile, locale string) string {
	ext := path.Ext(file.Path)
	name := strings.TrimSpace(file.Name.Prefer(locale))
	switch {
	case name == "":
		name = path.Base(file.Path)
	case ext != "" && !strings.EqualFold(path.Ext(name), ext):
		name += ext
	}
	if name == "" || name == "." || name == "/" {
		name = "file-" + strconv.Itoa(file.ID) + ext
	}
	return mime.FormatMediaType("attachment", map[string]string{"filename": name})
}

func hasAnyRole(held, wanted []host.RoleID) bool {
	for _, h := range held {
		for _, w := range wanted {
			if h == w {
				return true
			}
		}
	}
	return false
}

func downloadResult(err error) string {
	switch {
	case err == nil:
		return resultOK
	case errors.Is(err, errMissingToken), errors.Is(err, errInvalidToken), errors.Is(err, errInvalidClaims):
		return resultUnauthenticated
	case errors.Is(err, errForbidden):
		return resultForbidden
	case errors.Is(err, errBadRequest):
		return resultBadRequest
	case errors.Is(err, host.ErrNotFound):
		return resultNotFound
	default:
		return resultError
	}
}
