package record

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/gabriel-vasile/mimetype"

	"github.com/lehigh-university-libraries/jatstemplate/host"
	"github.com/lehigh-university-libraries/jatstemplate/model"
)

// Store serves loaded records and their files from a local directory.
type Store struct {
	filesDir string

	mu       sync.RWMutex
	journals map[string]*model.Journal
	records  map[int]*model.Record        // by submission id
	files    map[int]model.SubmissionFile // by submission file id
	byFileID map[int]model.SubmissionFile // by file id
}

var (
	_ host.Journals        = (*Store)(nil)
	_ host.SubmissionFiles = (*Store)(nil)
	_ host.FileService     = (*Store)(nil)
	_ host.Citations       = (*Store)(nil)
)

// NewStore creates an empty store whose file paths resolve under filesDir.
func NewStore(filesDir string) *Store {
	return &Store{
		filesDir: filesDir,
		journals: make(map[string]*model.Journal),
		records:  make(map[int]*model.Record),
		files:    make(map[int]model.SubmissionFile),
		byFileID: make(map[int]model.SubmissionFile),
	}
}

// OpenStore loads every record in recordsDir into a new store.
func OpenStore(recordsDir, filesDir string) (*Store, error) {
	docs, err := LoadDirectory(recordsDir)
	if err != nil {
		return nil, err
	}
	s := NewStore(filesDir)
	for _, doc := range docs {
		s.Add(doc)
	}
	return s, nil
}

// Add indexes a document. A later document for the same submission or
// journal path replaces the earlier one.
func (s *Store) Add(doc *Document) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := doc.Record
	s.journals[rec.Journal.Path] = rec.Journal
	s.records[rec.Submission.ID] = &rec
	for _, f := range doc.Files {
		if f.SubmissionID == 0 {
			f.SubmissionID = rec.Submission.ID
		}
		s.files[f.ID] = f
		s.byFileID[f.FileID] = f
	}
}

// Record returns the record of a submission in a journal.
func (s *Store) Record(_ context.Context, journalPath string, submissionID int) (*model.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[submissionID]
	if !ok || rec.Journal.Path != journalPath {
		return nil, host.ErrNotFound
	}
	return rec, nil
}

// Records returns all records ordered by submission id.
func (s *Store) Records() []*model.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int, 0, len(s.records))
	for id := range s.records {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := make([]*model.Record, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.records[id])
	}
	return out
}

// JournalByPath returns the journal with the given URL path.
func (s *Store) JournalByPath(_ context.Context, path string) (*model.Journal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	j, ok := s.journals[path]
	if !ok {
		return nil, host.ErrNotFound
	}
	return j, nil
}

// ProductionReady returns the production-ready files of a submission,
// ordered by id.
func (s *Store) ProductionReady(_ context.Context, submissionID int) ([]model.SubmissionFile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.SubmissionFile
	for _, f := range s.files {
		if f.SubmissionID == submissionID && f.FileStage == model.FileStageProductionReady {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Get returns a submission file by id.
func (s *Store) Get(_ context.Context, submissionFileID int) (*model.SubmissionFile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.files[submissionFileID]
	if !ok {
		return nil, host.ErrNotFound
	}
	return &f, nil
}

// Open opens the content of a stored file.
func (s *Store) Open(_ context.Context, fileID int) (io.ReadCloser, error) {
	path, err := s.path(fileID)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, host.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("opening file %d: %w", fileID, err)
	}
	return f, nil
}

// MIMEType returns the recorded MIME type of a file, detecting it from
// the content when none was recorded.
func (s *Store) MIMEType(_ context.Context, fileID int) (string, error) {
	s.mu.RLock()
	f, ok := s.byFileID[fileID]
	s.mu.RUnlock()
	if !ok {
		return "", host.ErrNotFound
	}
	if f.MIMEType != "" {
		return f.MIMEType, nil
	}

	path, err := s.path(fileID)
	if err != nil {
		return "", err
	}
	mt, err := mimetype.DetectFile(path)
	if os.IsNotExist(err) {
		return "", host.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("detecting type of file %d: %w", fileID, err)
	}
	return mt.String(), nil
}

// CitationsForPublication returns the citations recorded on a publication.
func (s *Store) CitationsForPublication(_ context.Context, publicationID int) ([]model.Citation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.records {
		if pub := rec.Submission.Publication; pub.ID == publicationID {
			if len(pub.Citations) == 0 {
				return nil, host.ErrNotFound
			}
			return pub.Citations, nil
		}
	}
	return nil, host.ErrNotFound
}

// path resolves a file id to a path inside the files directory. Paths
// that leave the directory are reported as not found.
func (s *Store) path(fileID int) (string, error) {
	s.mu.RLock()
	f, ok := s.byFileID[fileID]
	s.mu.RUnlock()
	if !ok {
		return "", host.ErrNotFound
	}
	if !filepath.IsLocal(f.Path) {
		return "", fmt.Errorf("file %d: path %q is outside the files directory: %w", fileID, f.Path, host.ErrNotFound)
	}
	return filepath.Join(s.filesDir, f.Path), nil
}
