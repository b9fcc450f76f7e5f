package parser

import (
	"fmt"
	"os"

	"avdesign-hq/meridian/pkg/standards"
	"avdesign-hq/meridian/pkg/standards/validator"
)

// Document is the parsed content of one standards file.
type Document struct {
	SourceFile string
	Nodes      []*standards.StandardNode
	Standards  []*standards.Standard
}

// Parser parses standards YAML files into the domain model. It handles
// YAML decoding, model construction, and structural validation.
type Parser struct {
	maxFileSize int64 // Maximum file size in bytes (default: 10MB)
}

// NewParser creates a new parser with default configuration.
func NewParser() *Parser {
	return &Parser{
		maxFileSize: 10 * 1024 * 1024, // 10MB
	}
}

// WithMaxFileSize sets the maximum file size limit.
func (p *Parser) WithMaxFileSize(size int64) *Parser {
	p.maxFileSize = size
	return p
}

// Parse parses the standards file at the given path. It returns an
// error if the file cannot be read, has invalid YAML syntax, or fails
// structural validation; validation errors are reported together as a
// *validator.ErrorList.
func (p *Parser) Parse(path string) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("standards file %s: %w", path, err)
	}
	if info.Size() > p.maxFileSize {
		return nil, fmt.Errorf("standards file %s: size %d exceeds maximum %d bytes",
			path, info.Size(), p.maxFileSize)
	}

	yd, err := parseYAMLFile(path)
	if err != nil {
		return nil, &validator.Error{
			Subject:    path,
			Message:    fmt.Sprintf("YAML parsing failed: %v", err),
			Suggestion: "check YAML syntax (indentation, colons, quotes)",
		}
	}

	return newBuilder(path).buildDocument(yd)
}

// ParseLenient parses the standards file at the given path but skips
// the whole-document validation pass. Directory loaders use it when a
// file's parent or node references resolve only once every file is
// combined; the combined forest must still be validated before use.
func (p *Parser) ParseLenient(path string) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("standards file %s: %w", path, err)
	}
	if info.Size() > p.maxFileSize {
		return nil, fmt.Errorf("standards file %s: size %d exceeds maximum %d bytes",
			path, info.Size(), p.maxFileSize)
	}

	yd, err := parseYAMLFile(path)
	if err != nil {
		return nil, &validator.Error{
			Subject:    path,
			Message:    fmt.Sprintf("YAML parsing failed: %v", err),
			Suggestion: "check YAML syntax (indentation, colons, quotes)",
		}
	}

	b := newBuilder(path)
	doc := b.buildOnly(yd)
	if b.errors.HasErrors() {
		return nil, b.errors
	}
	return doc, nil
}

// ParseBytes parses standards YAML from a byte slice. The sourcePath
// only labels error messages.
func (p *Parser) ParseBytes(data []byte, sourcePath string) (*Document, error) {
	if int64(len(data)) > p.maxFileSize {
		return nil, fmt.Errorf("standards data %s: size %d exceeds maximum %d bytes",
			sourcePath, len(data), p.maxFileSize)
	}

	yd, err := parseYAMLBytes(data)
	if err != nil {
		return nil, &validator.Error{
			Subject:    sourcePath,
			Message:    fmt.Sprintf("YAML parsing failed: %v", err),
			Suggestion: "check YAML syntax (indentation, colons, quotes)",
		}
	}

	return newBuilder(sourcePath).buildDocument(yd)
}
