// Package schema holds the canonical structural representation of one
// table definition, shared by every extraction front-end, the diff
// engine, and the artifact generator.
package schema

import "errors"

// ErrMissingPrimaryKey is returned when a schema is used without a
// primary key. Validation runs before any diff or generation step.
var ErrMissingPrimaryKey = errors.New("schema: missing primary key")

// Action is a referential action on a foreign key.
type Action string

const (
	NoAction Action = "NoAction"
	Cascade  Action = "Cascade"
	SetNull  Action = "SetNull"
	Restrict Action = "Restrict"
)

// Schema is the parsed shape of one table. It is recomputed fresh on
// every run by re-reading definitions and is never persisted directly,
// except as the content of snapshot and create files.
type Schema struct {
	TableName   string
	PrimaryKey  *Column
	Columns     []Column
	ForeignKeys []ForeignKey
	Indexes     []Index
}

// Column is one parsed column. Ignored columns are tracked but excluded
// from generated DDL.
type Column struct {
	Name     string
	Type     ColType
	Nullable bool
	Unique   bool
	Ignored  bool
}

// ForeignKey is one parsed foreign key.
type ForeignKey struct {
	FromColumn string
	ToTable    string
	ToColumn   string
	OnDelete   Action
	OnUpdate   Action
}

// Identity is the diff key for a foreign key: attribute changes on the
// same identity are represented as a drop paired with an add.
func (fk ForeignKey) Identity() string {
	return fk.FromColumn + "->" + fk.ToTable + ":" + fk.ToColumn
}

// Index is one parsed index.
type Index struct {
	Name    string
	Columns []string
	Unique  bool
}

// Validate checks the structural rules that must hold before the schema
// enters the diff or generation pipeline.
func (s *Schema) Validate() error {
	if s.PrimaryKey == nil {
		return ErrMissingPrimaryKey
	}
	return nil
}

// ModifiedColumn is an old/new pair for a column present in both
// revisions with at least one attribute delta.
type ModifiedColumn struct {
	Old Column
	New Column
}

// Changes is the typed changeset between a previous snapshot and the
// current schema for one table. A column name never appears in both
// AddedColumns and DroppedColumns: a name present in both revisions
// routes into ModifiedColumns instead. Dropped columns carry names
// only; callers that need the old definition resolve it against the
// previous snapshot.
type Changes struct {
	TableName       string
	AddedColumns    []Column
	DroppedColumns  []string
	ModifiedColumns []ModifiedColumn
	AddedFKs        []ForeignKey
	DroppedFKs      []ForeignKey
	AddedIndexes    []Index
	DroppedIndexes  []Index
	IsNewTable      bool
}

// IsEmpty reports whether the changeset contains no work at all.
func (c *Changes) IsEmpty() bool {
	return !c.IsNewTable &&
		len(c.AddedColumns) == 0 &&
		len(c.DroppedColumns) == 0 &&
		len(c.ModifiedColumns) == 0 &&
		len(c.AddedFKs) == 0 &&
		len(c.DroppedFKs) == 0 &&
		len(c.AddedIndexes) == 0 &&
		len(c.DroppedIndexes) == 0
}
