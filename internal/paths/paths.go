// Package paths is the single owner of the persisted migrations layout.
// The shapes here are a compatibility contract: downstream apply steps
// and existing project trees depend on them.
package paths

import "path/filepath"

// SnapshotDir is <migrations>/snapshots.
func SnapshotDir(migrationsDir string) string {
	return filepath.Join(migrationsDir, "snapshots")
}

// SnapshotFile is the current-truth mirror for one table, always fully
// overwritten: <migrations>/snapshots/<table>.go.
func SnapshotFile(migrationsDir, table string) string {
	return filepath.Join(SnapshotDir(migrationsDir), table+".go")
}

// CreateModuleName is the logical module identifier of a create
// artifact: m<timestamp>_create_<table>_table.
func CreateModuleName(timestamp, table string) string {
	return "m" + timestamp + "_create_" + table + "_table"
}

// CreateFile is the immutable creation artifact for a new table:
// <migrations>/m<timestamp>_create_<table>_table.go.
func CreateFile(migrationsDir, timestamp, table string) string {
	return filepath.Join(migrationsDir, CreateModuleName(timestamp, table)+".go")
}

// AppliedDir is <migrations>/applied.
func AppliedDir(migrationsDir string) string {
	return filepath.Join(migrationsDir, "applied")
}

// TableAppliedDir is <migrations>/applied/<table>.
func TableAppliedDir(migrationsDir, table string) string {
	return filepath.Join(AppliedDir(migrationsDir), table)
}

// AlterFile is the per-run alter artifact for a modified table:
// <migrations>/applied/<table>/<timestamp>_alter_<table>_table.go.
func AlterFile(migrationsDir, table, timestamp string) string {
	return filepath.Join(TableAppliedDir(migrationsDir, table), timestamp+"_alter_"+table+"_table.go")
}

// BatchUpDir is <migrations>/applied/by_time/<table>/up.
func BatchUpDir(migrationsDir, table string) string {
	return filepath.Join(AppliedDir(migrationsDir), "by_time", table, "up")
}

// BatchDownDir is <migrations>/applied/by_time/<table>/down.
func BatchDownDir(migrationsDir, table string) string {
	return filepath.Join(AppliedDir(migrationsDir), "by_time", table, "down")
}

// BatchUpFile is the forward fragment for one run and table.
func BatchUpFile(migrationsDir, table, timestamp string) string {
	return filepath.Join(BatchUpDir(migrationsDir, table), timestamp+".go")
}

// BatchDownFile is the matching reverse fragment.
func BatchDownFile(migrationsDir, table, timestamp string) string {
	return filepath.Join(BatchDownDir(migrationsDir, table), timestamp+".go")
}

// LibFile is the registrar: <migrations>/lib.go.
func LibFile(migrationsDir string) string {
	return filepath.Join(migrationsDir, "lib.go")
}
