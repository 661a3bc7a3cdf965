// Package extract turns Go definition source files into parsed
// schemas. Two syntactic front-ends share one output shape; extraction
// is deterministic and never touches anything outside the given file.
package extract

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/schemaforge/schemaforge/pkg/schema"
)

// ErrNoTableName reports a statement file whose Up body never names
// its table. This is the only per-file failure that stops a run.
var ErrNoTableName = errors.New("cannot extract table name")

// Source is one extraction front-end. A nil schema with a nil error
// means the file does not match this front-end's shape.
type Source interface {
	Name() string
	Extract(file *ast.File) (*schema.Schema, error)
}

// Sources returns the front-ends in probe order.
func Sources() []Source {
	return []Source{BuilderSource{}, StatementSource{}}
}

// Parse runs the front-ends against one source file. src may be nil,
// in which case the file is read from disk.
func Parse(filename string, src []byte) (*schema.Schema, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	for _, s := range Sources() {
		parsed, err := s.Extract(file)
		if err != nil {
			return nil, fmt.Errorf("%s front-end: %s: %w", s.Name(), filename, err)
		}
		if parsed != nil {
			return parsed, nil
		}
	}
	return nil, nil
}

// File is Parse reading from disk.
func File(path string) (*schema.Schema, error) {
	return Parse(path, nil)
}

// ScanDir extracts a schema from every matching .go file directly
// under dir, in lexical order. Unreadable or unparseable files are
// logged and skipped; a statement file without a table name aborts
// the scan.
func ScanDir(dir string, logger *slog.Logger) ([]*schema.Schema, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read entities dir: %w", err)
	}

	var schemas []*schema.Schema
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".go") ||
			strings.HasSuffix(name, "_test.go") ||
			name == "doc.go" {
			continue
		}

		path := filepath.Join(dir, name)
		src, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("skipping unreadable definition file", "file", path, "error", err)
			continue
		}

		parsed, err := Parse(path, src)
		if err != nil {
			if errors.Is(err, ErrNoTableName) {
				return nil, err
			}
			logger.Warn("skipping definition file", "file", path, "error", err)
			continue
		}
		if parsed == nil {
			logger.Debug("no schema found", "file", path)
			continue
		}

		logger.Info("found schema", "table", parsed.TableName, "file", path)
		schemas = append(schemas, parsed)
	}
	return schemas, nil
}
