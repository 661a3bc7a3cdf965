package ddl

import (
	"fmt"

	"github.com/schemaforge/schemaforge/pkg/schema"
)

// InlineFK is the older chain form of a foreign key, declared directly
// on a create-table statement instead of as a standalone
// CreateForeignKey. Both shapes stay supported; the extractor reads
// either.
type InlineFK struct {
	fromColumn string
	toTable    string
	toColumn   string
	onDelete   schema.Action
	onUpdate   schema.Action
}

// FK starts an inline foreign key from the given column.
func FK(fromColumn string) *InlineFK {
	return &InlineFK{
		fromColumn: fromColumn,
		toColumn:   "id",
		onDelete:   NoAction,
		onUpdate:   NoAction,
	}
}

// References sets the referenced table and column.
func (f *InlineFK) References(table, column string) *InlineFK {
	f.toTable = table
	f.toColumn = column
	return f
}

// OnDelete sets the delete action.
func (f *InlineFK) OnDelete(a schema.Action) *InlineFK {
	f.onDelete = a
	return f
}

// OnUpdate sets the update action.
func (f *InlineFK) OnUpdate(a schema.Action) *InlineFK {
	f.onUpdate = a
	return f
}

// InlineIndex is the older chain form of an index declaration.
type InlineIndex struct {
	name    string
	columns []string
	unique  bool
}

// Idx starts an inline index declaration.
func Idx(name string, columns ...string) *InlineIndex {
	return &InlineIndex{name: name, columns: columns}
}

// Unique makes the index unique.
func (i *InlineIndex) Unique() *InlineIndex {
	i.unique = true
	return i
}

// ForeignKey appends an inline foreign key to the create statement.
func (s *CreateTable) ForeignKey(fk *InlineFK) *CreateTable {
	s.inlineFKs = append(s.inlineFKs, fk)
	return s
}

// Index appends an inline index to the create statement.
func (s *CreateTable) Index(idx *InlineIndex) *CreateTable {
	s.inlineIdx = append(s.inlineIdx, idx)
	return s
}

func (f *InlineFK) constraintSQL(table string) string {
	return fmt.Sprintf("CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s (%s) ON DELETE %s ON UPDATE %s",
		quoteIdent(FKName(table, f.fromColumn)), quoteIdent(f.fromColumn),
		quoteIdent(f.toTable), quoteIdent(f.toColumn),
		actionSQL(f.onDelete), actionSQL(f.onUpdate))
}
