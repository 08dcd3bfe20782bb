package importer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/cleared-dev/rfm/internal/model"
)

// ErrMissingColumn is returned when a required header is absent.
var ErrMissingColumn = errors.New("missing required column")

// ParseError reports a value that could not be parsed. Loading stops at the first one.
type ParseError struct {
	Row   int // 1-based line number in the file, header is row 1
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("row %d: parsing %s %q: %v", e.Row, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parser converts a ledger file into Transactions.
type Parser interface {
	Parse(r io.Reader) ([]model.Transaction, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// Formats returns the registered format names, sorted.
func (r *Registry) Formats() []string {
	names := make([]string, 0, len(r.parsers))
	for k := range r.parsers {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(NewRetailParser("online-retail", OnlineRetailDialect()))
	r.Register(NewRetailParser("csv", CommaDialect()))
	return r
}

// Open parses the file at path with p.
func Open(path string, p Parser) ([]model.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	txns, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return txns, nil
}
