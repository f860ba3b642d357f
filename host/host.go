// Package host defines the collaborators a host application supplies to the
// JATS generator and the download handler. Implementations own all storage,
// routing and authorization; this module only reads through them.
package host

import (
	"context"
	"errors"
	"io"
	"net/url"

	"github.com/lehigh-university-libraries/jatstemplate/model"
)

// ErrNotFound is returned by collaborators when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// StageProduction is the workflow stage id of the production stage.
const StageProduction = 5

// RoleID identifies a user role within a journal.
type RoleID int

// Role ids, matching the host's numbering.
const (
	RoleManager             RoleID = 16
	RoleSiteAdmin           RoleID = 1
	RoleSubEditor           RoleID = 17
	RoleAuthor              RoleID = 65536
	RoleReviewer            RoleID = 4096
	RoleAssistant           RoleID = 4097
	RoleReader              RoleID = 1048576
	RoleSubscriptionManager RoleID = 2097152
)

// Citations is the host's citation store.
type Citations interface {
	CitationsForPublication(ctx context.Context, publicationID int) ([]model.Citation, error)
}

// SubmissionFiles queries stored submission files.
type SubmissionFiles interface {
	// ProductionReady returns the production-ready files of a submission.
	ProductionReady(ctx context.Context, submissionID int) ([]model.SubmissionFile, error)
	// Get returns a submission file by id, or ErrNotFound.
	Get(ctx context.Context, submissionFileID int) (*model.SubmissionFile, error)
}

// FileService reads stored file content.
type FileService interface {
	Open(ctx context.Context, fileID int) (io.ReadCloser, error)
	MIMEType(ctx context.Context, fileID int) (string, error)
}

// Roles looks up the roles a user holds in a journal.
type Roles interface {
	RolesForUser(ctx context.Context, userID string, journalID int) ([]RoleID, error)
}

// Journals resolves a journal from its URL path.
type Journals interface {
	JournalByPath(ctx context.Context, path string) (*model.Journal, error)
}

// Route names a page the URL dispatcher can build links to.
type Route int

const (
	// RouteJournal is the journal home page. Params: journal.
	RouteJournal Route = iota
	// RouteArticleView is the article landing page. Params: journal, article.
	RouteArticleView
	// RouteGalleyDownload is a galley file download. Params: journal, article, galley.
	RouteGalleyDownload
	// RoutePluginDownload is the production-ready file download endpoint.
	// Params: journal, plus the query values.
	RoutePluginDownload
)

// URLDispatcher builds absolute URLs for host pages.
type URLDispatcher interface {
	URL(route Route, path []string, query url.Values) string
}
