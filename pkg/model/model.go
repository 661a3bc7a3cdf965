// Package model is the declarative definition DSL. A definition file
// declares one table as a fluent builder chain ending in Build; the
// extractor reads those chains without evaluating them, and the same
// chains evaluate at runtime into the canonical schema shape.
package model

import (
	"fmt"

	"github.com/schemaforge/schemaforge/pkg/schema"
)

// Referential actions, re-exported so definitions read model.Cascade.
const (
	NoAction = schema.NoAction
	Cascade  = schema.Cascade
	SetNull  = schema.SetNull
	Restrict = schema.Restrict
)

// ErrMissingPrimaryKey is the validation failure Build wraps when a
// definition never set a primary key.
var ErrMissingPrimaryKey = schema.ErrMissingPrimaryKey

// Builder accretes one table definition.
type Builder struct {
	modelName string
	tableName string
	pk        *PKBuilder
	columns   []*ColumnBuilder
	fks       []*FKBuilder
	indexes   []*IndexBuilder
}

// Table starts a definition for the named model. The table name
// defaults to the snake_case of the model name.
func Table(modelName string) *Builder {
	return &Builder{
		modelName: modelName,
		tableName: ToSnakeCase(modelName),
	}
}

// TableName overrides the derived table name.
func (b *Builder) TableName(name string) *Builder {
	b.tableName = name
	return b
}

// PrimaryKey sets the table's primary key. Zero or one per table.
func (b *Builder) PrimaryKey(pk *PKBuilder) *Builder {
	b.pk = pk
	return b
}

// Column appends a column.
func (b *Builder) Column(c *ColumnBuilder) *Builder {
	b.columns = append(b.columns, c)
	return b
}

// ForeignKey appends a foreign key.
func (b *Builder) ForeignKey(fk *FKBuilder) *Builder {
	b.fks = append(b.fks, fk)
	return b
}

// Index appends an index.
func (b *Builder) Index(idx *IndexBuilder) *Builder {
	b.indexes = append(b.indexes, idx)
	return b
}

// Build validates the accumulated definition and produces the canonical
// schema. It fails when no primary key was set; that check runs before
// anything downstream can see the schema.
func (b *Builder) Build() (*schema.Schema, error) {
	s := &schema.Schema{TableName: b.tableName}
	if b.pk != nil {
		pk := b.pk.column()
		s.PrimaryKey = &pk
	}
	for _, c := range b.columns {
		s.Columns = append(s.Columns, c.column())
	}
	for _, fk := range b.fks {
		s.ForeignKeys = append(s.ForeignKeys, fk.foreignKey())
	}
	for _, idx := range b.indexes {
		s.Indexes = append(s.Indexes, idx.index())
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("model %q: %w", b.modelName, err)
	}
	return s, nil
}

// MustBuild is Build for package-level definition variables.
func (b *Builder) MustBuild() *schema.Schema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

// ToSnakeCase converts PascalCase to snake_case.
func ToSnakeCase(s string) string {
	out := make([]rune, 0, len(s)+4)
	for i, ch := range s {
		if ch >= 'A' && ch <= 'Z' {
			if i > 0 {
				out = append(out, '_')
			}
			ch += 'a' - 'A'
		}
		out = append(out, ch)
	}
	return string(out)
}
