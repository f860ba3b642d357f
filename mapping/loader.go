package mapping

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed messages/*.yaml
var embeddedMessages embed.FS

// NewCatalog creates a message catalog with the embedded messages loaded.
func NewCatalog() (*Catalog, error) {
	c := &Catalog{messages: make(map[string]map[string]string)}

	entries, err := embeddedMessages.ReadDir("messages")
	if err != nil {
		return nil, fmt.Errorf("reading embedded messages: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		data, err := embeddedMessages.ReadFile("messages/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", entry.Name(), err)
		}

		file, err := parseMessages(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", entry.Name(), err)
		}
		c.addFile(file, entry.Name())
	}

	return c, nil
}

// MustCatalog is like NewCatalog but panics on error. The embedded files
// are fixed at build time, so an error is a programming mistake.
func MustCatalog() *Catalog {
	c, err := NewCatalog()
	if err != nil {
		panic(err)
	}
	return c
}

// LoadMessages loads a message file from a path.
func LoadMessages(path string) (*MessageFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading message file: %w", err)
	}

	return parseMessages(data)
}

func parseMessages(data []byte) (*MessageFile, error) {
	var file MessageFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing messages YAML: %w", err)
	}
	return &file, nil
}

// LoadFromDirectory merges all message files in a directory over the
// loaded messages. Invalid files are reported, not skipped.
func (c *Catalog) LoadFromDirectory(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading message directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		file, err := LoadMessages(filepath.Join(dir, entry.Name()))
		if err != nil {
			return fmt.Errorf("%s: %w", entry.Name(), err)
		}
		c.addFile(file, entry.Name())
	}

	return nil
}

func (c *Catalog) addFile(file *MessageFile, name string) {
	locale := file.Locale
	if locale == "" {
		locale = strings.TrimSuffix(name, ".yaml")
	}
	c.Add(locale, file.Messages)
}
