// Package generate renders migration artifacts as Go source and writes
// them into the migrations tree. One timestamp token is chosen per run
// by the caller and shared across every file written in that run.
package generate

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/schemaforge/schemaforge/internal/paths"
	"github.com/schemaforge/schemaforge/pkg/schema"
)

// Generator writes artifacts under one migrations directory.
type Generator struct {
	MigrationsDir string
	Logger        *slog.Logger
}

// RenderCreate renders the full create-table migration for a schema.
// Snapshot files and create artifacts share this shape and differ only
// in package and type name.
func RenderCreate(s *schema.Schema, pkg, typeName string) (string, error) {
	return renderMigration(migrationData{
		Package:  pkg,
		TypeName: typeName,
		UpOps:    createOps(s),
		DownOps:  createDownOps(s),
	})
}

// RenderAlter renders the incremental migration for a modified table.
// previous is the snapshot the changes were diffed against; it supplies
// the old definitions when a dropped column is restored in Down.
func RenderAlter(ch schema.Changes, previous *schema.Schema, pkg, typeName string) (string, error) {
	return renderMigration(migrationData{
		Package:  pkg,
		TypeName: typeName,
		UpOps:    alterUpOps(ch),
		DownOps:  alterDownOps(ch, previous),
	})
}

// WriteSnapshot overwrites the table's snapshot wholesale with the
// current schema.
func (g *Generator) WriteSnapshot(s *schema.Schema) error {
	content, err := RenderCreate(s, "snapshots", "snapshot_"+s.TableName)
	if err != nil {
		return err
	}
	path := paths.SnapshotFile(g.MigrationsDir, s.TableName)
	if err := g.writeFile(path, content); err != nil {
		return err
	}
	g.Logger.Info("updated snapshot", "file", path)
	return nil
}

// WriteCreate writes the immutable create artifact for a new table and
// returns its module name for the registrar.
func (g *Generator) WriteCreate(s *schema.Schema, timestamp string) (string, error) {
	module := paths.CreateModuleName(timestamp, s.TableName)
	content, err := RenderCreate(s, "migrations", module)
	if err != nil {
		return "", err
	}
	path := paths.CreateFile(g.MigrationsDir, timestamp, s.TableName)
	if err := g.writeFile(path, content); err != nil {
		return "", err
	}
	g.Logger.Info("generated create file", "file", path)
	return module, nil
}

// WriteAlter writes the alter artifact plus the forward and reverse
// batch fragments for one modified table.
func (g *Generator) WriteAlter(ch schema.Changes, previous *schema.Schema, timestamp string) error {
	table := ch.TableName
	typeName := "m" + timestamp + "_alter_" + table + "_table"

	content, err := RenderAlter(ch, previous, table, typeName)
	if err != nil {
		return err
	}
	alterPath := paths.AlterFile(g.MigrationsDir, table, timestamp)
	if err := g.writeFile(alterPath, content); err != nil {
		return err
	}
	g.Logger.Info("generated alter file", "file", alterPath)

	up, err := renderFragment(fragmentData{
		Package:  "up",
		Comment:  fmt.Sprintf("Forward fragment for %s, run %s.", table, timestamp),
		FuncName: "Apply_" + timestamp,
		Ops:      alterUpOps(ch),
	})
	if err != nil {
		return err
	}
	upPath := paths.BatchUpFile(g.MigrationsDir, table, timestamp)
	if err := g.writeFile(upPath, up); err != nil {
		return err
	}
	g.Logger.Info("generated batch up", "file", upPath)

	down, err := renderFragment(fragmentData{
		Package:  "down",
		Comment:  fmt.Sprintf("Reverse fragment for %s, run %s.", table, timestamp),
		FuncName: "Revert_" + timestamp,
		Ops:      alterDownOps(ch, previous),
	})
	if err != nil {
		return err
	}
	downPath := paths.BatchDownFile(g.MigrationsDir, table, timestamp)
	if err := g.writeFile(downPath, down); err != nil {
		return err
	}
	g.Logger.Info("generated batch down", "file", downPath)

	return nil
}

func (g *Generator) writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
