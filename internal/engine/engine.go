// Package engine drives one makemigrations run: scan, diff, gate,
// generate. Runs are synchronous and strictly sequential; the one
// pause is the destructive change decision, which happens before any
// artifact is written.
package engine

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/schemaforge/schemaforge/internal/classify"
	"github.com/schemaforge/schemaforge/internal/config"
	"github.com/schemaforge/schemaforge/internal/diff"
	"github.com/schemaforge/schemaforge/internal/extract"
	"github.com/schemaforge/schemaforge/internal/generate"
	"github.com/schemaforge/schemaforge/internal/ledger"
	"github.com/schemaforge/schemaforge/internal/paths"
	"github.com/schemaforge/schemaforge/pkg/schema"
)

// Engine holds the run-wide collaborators.
type Engine struct {
	Config *config.Config
	Logger *slog.Logger
}

// RunOptions parameterizes a single run. Empty directories fall back
// to the configured ones. Timestamp is normally left empty and chosen
// at run time; it is settable for reproducible runs.
type RunOptions struct {
	EntitiesDir   string
	MigrationsDir string
	Force         bool
	Decide        classify.DecisionProvider
	Timestamp     string
}

// PendingTable is one table with work to do, paired with the snapshot
// it was diffed against.
type PendingTable struct {
	Schema   *schema.Schema
	Previous *schema.Schema // nil for a new table
	Changes  schema.Changes
}

// Pending recomputes the change sets without writing anything. The
// status command and Run share this read path.
func (e *Engine) Pending(entitiesDir, migrationsDir string) ([]PendingTable, error) {
	e.Logger.Info("scanning definitions", "dir", entitiesDir)

	schemas, err := extract.ScanDir(entitiesDir, e.Logger)
	if err != nil {
		return nil, err
	}
	e.Logger.Info("scan complete", "schemas", len(schemas))

	var pending []PendingTable
	for _, s := range schemas {
		if err := s.Validate(); err != nil {
			e.Logger.Error("skipping definition", "table", s.TableName, "error", err)
			continue
		}

		snapPath := paths.SnapshotFile(migrationsDir, s.TableName)
		var previous *schema.Schema
		if _, err := os.Stat(snapPath); err == nil {
			previous, err = extract.File(snapPath)
			if err != nil {
				return nil, fmt.Errorf("snapshot for %s: %w", s.TableName, err)
			}
		}

		var ch schema.Changes
		if previous == nil {
			ch = diff.NewTable(s)
		} else {
			ch = diff.Diff(previous, s)
		}
		if ch.IsEmpty() {
			continue
		}
		pending = append(pending, PendingTable{Schema: s, Previous: previous, Changes: ch})
	}
	return pending, nil
}

// Run executes one full makemigrations invocation.
func (e *Engine) Run(opts RunOptions) error {
	entitiesDir := opts.EntitiesDir
	if entitiesDir == "" {
		entitiesDir = e.Config.Entities
	}
	migrationsDir := opts.MigrationsDir
	if migrationsDir == "" {
		migrationsDir = e.Config.Migrations
	}

	pending, err := e.Pending(entitiesDir, migrationsDir)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		e.Logger.Info("no changes detected")
		return nil
	}

	all := make([]schema.Changes, 0, len(pending))
	for _, p := range pending {
		all = append(all, p.Changes)
	}
	if err := classify.Gate(all, opts.Force, opts.Decide); err != nil {
		return err
	}

	// One timestamp for the whole run so sibling files correlate.
	timestamp := opts.Timestamp
	if timestamp == "" {
		timestamp = time.Now().UTC().Format("20060102_150405")
	}

	gen := &generate.Generator{MigrationsDir: migrationsDir, Logger: e.Logger}
	for _, p := range pending {
		if err := gen.WriteSnapshot(p.Schema); err != nil {
			return err
		}
		if p.Changes.IsNewTable {
			module, err := gen.WriteCreate(p.Schema, timestamp)
			if err != nil {
				return err
			}
			if err := ledger.Insert(migrationsDir, module); err != nil {
				return err
			}
		} else {
			if err := gen.WriteAlter(p.Changes, p.Previous, timestamp); err != nil {
				return err
			}
		}
	}

	e.Logger.Info("run complete", "tables", len(pending), "timestamp", timestamp)
	return nil
}
