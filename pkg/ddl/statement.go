package ddl

import (
	"fmt"
	"strings"

	"github.com/schemaforge/schemaforge/pkg/schema"
)

// CreateTable builds a create-table statement.
type CreateTable struct {
	table       string
	ifNotExists bool
	columns     []*ColumnDef
	inlineFKs   []*InlineFK
	inlineIdx   []*InlineIndex
}

// Create starts a create-table statement.
func Create() *CreateTable { return &CreateTable{} }

// Table sets the table name.
func (s *CreateTable) Table(name string) *CreateTable {
	s.table = name
	return s
}

// IfNotExists makes the statement a no-op when the table exists.
func (s *CreateTable) IfNotExists() *CreateTable {
	s.ifNotExists = true
	return s
}

// Col appends a column declaration.
func (s *CreateTable) Col(c *ColumnDef) *CreateTable {
	s.columns = append(s.columns, c)
	return s
}

// SQL renders the statement.
func (s *CreateTable) SQL() string {
	var b strings.Builder
	b.WriteString("CREATE TABLE ")
	if s.ifNotExists {
		b.WriteString("IF NOT EXISTS ")
	}
	b.WriteString(quoteIdent(s.table))
	b.WriteString(" (")
	for i, c := range s.columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(c.sql())
	}
	for _, fk := range s.inlineFKs {
		b.WriteString(", ")
		b.WriteString(fk.constraintSQL(s.table))
	}
	b.WriteString(")")
	for _, idx := range s.inlineIdx {
		st := CreateIdx().Name(idx.name).Table(s.table)
		for _, c := range idx.columns {
			st.Col(c)
		}
		if idx.unique {
			st.Unique()
		}
		b.WriteString("; ")
		b.WriteString(st.SQL())
	}
	return b.String()
}

// DropTable builds a drop-table statement.
type DropTable struct {
	table string
}

// Drop starts a drop-table statement.
func Drop() *DropTable { return &DropTable{} }

// Table sets the table name.
func (s *DropTable) Table(name string) *DropTable {
	s.table = name
	return s
}

// SQL renders the statement.
func (s *DropTable) SQL() string {
	return "DROP TABLE IF EXISTS " + quoteIdent(s.table)
}

// AlterTable builds an alter-table statement with incremental column
// operations. Operations render in the order they were added.
type AlterTable struct {
	table string
	ops   []string
}

// Alter starts an alter-table statement.
func Alter() *AlterTable { return &AlterTable{} }

// Table sets the table name.
func (s *AlterTable) Table(name string) *AlterTable {
	s.table = name
	return s
}

// AddColumn appends an add-column operation.
func (s *AlterTable) AddColumn(c *ColumnDef) *AlterTable {
	s.ops = append(s.ops, "ADD COLUMN "+c.sql())
	return s
}

// DropColumn appends a drop-column operation.
func (s *AlterTable) DropColumn(name string) *AlterTable {
	s.ops = append(s.ops, "DROP COLUMN "+quoteIdent(name))
	return s
}

// ModifyColumn appends operations bringing an existing column to the
// given definition.
func (s *AlterTable) ModifyColumn(c *ColumnDef) *AlterTable {
	op := "ALTER COLUMN " + quoteIdent(c.name) + " TYPE " + sqlType(c.colType)
	if c.nullable {
		op += ", ALTER COLUMN " + quoteIdent(c.name) + " DROP NOT NULL"
	} else {
		op += ", ALTER COLUMN " + quoteIdent(c.name) + " SET NOT NULL"
	}
	s.ops = append(s.ops, op)
	return s
}

// SQL renders the statement; empty when no operations were added.
func (s *AlterTable) SQL() string {
	if len(s.ops) == 0 {
		return ""
	}
	return "ALTER TABLE " + quoteIdent(s.table) + " " + strings.Join(s.ops, ", ")
}

// CreateForeignKey builds a standalone add-foreign-key statement.
type CreateForeignKey struct {
	fromTable  string
	fromColumn string
	toTable    string
	toColumn   string
	onDelete   schema.Action
	onUpdate   schema.Action
}

// CreateFK starts an add-foreign-key statement.
func CreateFK() *CreateForeignKey {
	return &CreateForeignKey{onDelete: NoAction, onUpdate: NoAction}
}

// From sets the owning table and column.
func (s *CreateForeignKey) From(table, column string) *CreateForeignKey {
	s.fromTable = table
	s.fromColumn = column
	return s
}

// To sets the referenced table and column.
func (s *CreateForeignKey) To(table, column string) *CreateForeignKey {
	s.toTable = table
	s.toColumn = column
	return s
}

// OnDelete sets the delete action.
func (s *CreateForeignKey) OnDelete(a schema.Action) *CreateForeignKey {
	s.onDelete = a
	return s
}

// OnUpdate sets the update action.
func (s *CreateForeignKey) OnUpdate(a schema.Action) *CreateForeignKey {
	s.onUpdate = a
	return s
}

// ConstraintName is the deterministic name the statement creates.
func (s *CreateForeignKey) ConstraintName() string {
	return FKName(s.fromTable, s.fromColumn)
}

// SQL renders the statement.
func (s *CreateForeignKey) SQL() string {
	return fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s (%s) ON DELETE %s ON UPDATE %s",
		quoteIdent(s.fromTable), quoteIdent(s.ConstraintName()),
		quoteIdent(s.fromColumn), quoteIdent(s.toTable), quoteIdent(s.toColumn),
		actionSQL(s.onDelete), actionSQL(s.onUpdate))
}

// DropForeignKey builds a drop-foreign-key statement.
type DropForeignKey struct {
	table string
	name  string
}

// DropFK starts a drop-foreign-key statement.
func DropFK() *DropForeignKey { return &DropForeignKey{} }

// Table sets the owning table.
func (s *DropForeignKey) Table(name string) *DropForeignKey {
	s.table = name
	return s
}

// Name sets the constraint name.
func (s *DropForeignKey) Name(name string) *DropForeignKey {
	s.name = name
	return s
}

// SQL renders the statement.
func (s *DropForeignKey) SQL() string {
	return "ALTER TABLE " + quoteIdent(s.table) + " DROP CONSTRAINT " + quoteIdent(s.name)
}

// CreateIndex builds a create-index statement.
type CreateIndex struct {
	name    string
	table   string
	columns []string
	unique  bool
}

// CreateIdx starts a create-index statement.
func CreateIdx() *CreateIndex { return &CreateIndex{} }

// Name sets the index name.
func (s *CreateIndex) Name(name string) *CreateIndex {
	s.name = name
	return s
}

// Table sets the indexed table.
func (s *CreateIndex) Table(name string) *CreateIndex {
	s.table = name
	return s
}

// Col appends an indexed column.
func (s *CreateIndex) Col(name string) *CreateIndex {
	s.columns = append(s.columns, name)
	return s
}

// Unique makes the index unique.
func (s *CreateIndex) Unique() *CreateIndex {
	s.unique = true
	return s
}

// SQL renders the statement.
func (s *CreateIndex) SQL() string {
	kind := "INDEX"
	if s.unique {
		kind = "UNIQUE INDEX"
	}
	cols := make([]string, len(s.columns))
	for i, c := range s.columns {
		cols[i] = quoteIdent(c)
	}
	return fmt.Sprintf("CREATE %s %s ON %s (%s)",
		kind, quoteIdent(s.name), quoteIdent(s.table), strings.Join(cols, ", "))
}

// DropIndex builds a drop-index statement.
type DropIndex struct {
	name  string
	table string
}

// DropIdx starts a drop-index statement.
func DropIdx() *DropIndex { return &DropIndex{} }

// Name sets the index name.
func (s *DropIndex) Name(name string) *DropIndex {
	s.name = name
	return s
}

// Table sets the indexed table.
func (s *DropIndex) Table(name string) *DropIndex {
	s.table = name
	return s
}

// SQL renders the statement.
func (s *DropIndex) SQL() string {
	return "DROP INDEX IF EXISTS " + quoteIdent(s.name)
}

// FKName is the deterministic constraint name for a foreign key.
func FKName(table, column string) string {
	return "fk_" + table + "_" + column
}

func actionSQL(a schema.Action) string {
	switch a {
	case Cascade:
		return "CASCADE"
	case SetNull:
		return "SET NULL"
	case Restrict:
		return "RESTRICT"
	default:
		return "NO ACTION"
	}
}
