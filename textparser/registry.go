package textparser

import (
	"sort"
	"strings"
)

// Registry holds registered parsers keyed by media type.
type Registry struct {
	byType  map[string]Parser
	parsers map[string]Parser
}

// DefaultRegistry is the global parser registry.
var DefaultRegistry = NewRegistry()

// NewRegistry creates a new parser registry.
func NewRegistry() *Registry {
	return &Registry{
		byType:  make(map[string]Parser),
		parsers: make(map[string]Parser),
	}
}

// Register adds a parser to the registry. A later parser for the same
// media type replaces an earlier one.
func (r *Registry) Register(p Parser) {
	r.parsers[p.Name()] = p
	for _, mt := range p.MIMETypes() {
		r.byType[normalizeType(mt)] = p
	}
}

// Get retrieves the parser for a media type. Parameters such as
// "; charset=utf-8" are ignored.
func (r *Registry) Get(mimeType string) (Parser, bool) {
	p, ok := r.byType[normalizeType(mimeType)]
	return p, ok
}

// List returns all registered parser names, sorted.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.parsers))
	for name := range r.parsers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parser returns a registered parser by name.
func (r *Registry) Parser(name string) (Parser, bool) {
	p, ok := r.parsers[name]
	return p, ok
}

func normalizeType(mimeType string) string {
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = mimeType[:i]
	}
	return strings.ToLower(strings.TrimSpace(mimeType))
}

// Register adds a parser to the default registry.
func Register(p Parser) {
	DefaultRegistry.Register(p)
}

// Get retrieves a parser from the default registry.
func Get(mimeType string) (Parser, bool) {
	return DefaultRegistry.Get(mimeType)
}
