// Package record is a reference host for standalone use: article records
// loaded from YAML files, their stored files on local disk, and role
// lookups from SQLite or YAML.
package record

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lehigh-university-libraries/jatstemplate/model"
)

// Document is one record file: the article record plus the stored files
// of its submission.
type Document struct {
	model.Record `yaml:",inline"`

	// Files are the submission's stored files. Paths are relative to the
	// store's files directory.
	Files []model.SubmissionFile `yaml:"files,omitempty"`
}

// Decode reads a record document from YAML.
func Decode(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading record: %w", err)
	}
	return parseDocument(data)
}

// LoadFile reads a record document from a YAML file.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading record file: %w", err)
	}
	doc, err := parseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// LoadDirectory reads every .yaml or .yml file in dir, sorted by name.
func LoadDirectory(dir string) ([]*Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading records directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext == ".yaml" || ext == ".yml" {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	docs := make([]*Document, 0, len(names))
	for _, name := range names {
		doc, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func parseDocument(data []byte) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty record")
		}
		return nil, fmt.Errorf("parsing record: %w", err)
	}
	if err := doc.validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (d *Document) validate() error {
	switch {
	case d.Journal == nil:
		return errors.New("record has no journal")
	case strings.TrimSpace(d.Journal.Path) == "":
		return errors.New("journal has no path")
	case d.Submission == nil:
		return errors.New("record has no submission")
	case d.Submission.Publication == nil:
		return fmt.Errorf("submission %d has no publication", d.Submission.ID)
	}
	for _, f := range d.Files {
		if f.SubmissionID == 0 {
			continue
		}
		if f.SubmissionID != d.Submission.ID {
			return fmt.Errorf("file %d belongs to submission %d, not %d", f.ID, f.SubmissionID, d.Submission.ID)
		}
	}
	return nil
}
