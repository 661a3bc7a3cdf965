package generate

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/schemaforge/schemaforge/pkg/schema"
)

const migrationTemplate = `package {{.Package}}

import "github.com/schemaforge/schemaforge/pkg/ddl"

type {{.TypeName}} struct{}

func ({{.TypeName}}) Up(mgr *ddl.Manager) error {
{{- range .UpOps}}
{{.}}
{{- end}}
	return nil
}

func ({{.TypeName}}) Down(mgr *ddl.Manager) error {
{{- range .DownOps}}
{{.}}
{{- end}}
	return nil
}
`

const fragmentTemplate = `package {{.Package}}

import "github.com/schemaforge/schemaforge/pkg/ddl"

// {{.Comment}}
func {{.FuncName}}(mgr *ddl.Manager) error {
{{- range .Ops}}
{{.}}
{{- end}}
	return nil
}
`

type migrationData struct {
	Package  string
	TypeName string
	UpOps    []string
	DownOps  []string
}

type fragmentData struct {
	Package  string
	Comment  string
	FuncName string
	Ops      []string
}

func renderMigration(data migrationData) (string, error) {
	tmpl, err := template.New("migration").Parse(migrationTemplate)
	if err != nil {
		return "", fmt.Errorf("parsing migration template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing migration template: %w", err)
	}
	return buf.String(), nil
}

func renderFragment(data fragmentData) (string, error) {
	tmpl, err := template.New("fragment").Parse(fragmentTemplate)
	if err != nil {
		return "", fmt.Errorf("parsing fragment template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing fragment template: %w", err)
	}
	return buf.String(), nil
}

// guardOp renders one manager call as a multi-line fluent chain wrapped
// in an error guard.
func guardOp(method, root string, parts []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\tif err := mgr.%s(%s.\n", method, root)
	for i, p := range parts {
		if i == len(parts)-1 {
			fmt.Fprintf(&b, "\t\t%s,\n", p)
		} else {
			fmt.Fprintf(&b, "\t\t%s.\n", p)
		}
	}
	b.WriteString("\t); err != nil {\n\t\treturn err\n\t}")
	return b.String()
}

// simpleOp renders a single-expression manager call on one line.
func simpleOp(method, expr string) string {
	return fmt.Sprintf("\tif err := mgr.%s(%s); err != nil {\n\t\treturn err\n\t}", method, expr)
}

func columnExpr(c schema.Column) string {
	var b strings.Builder
	fmt.Fprintf(&b, "ddl.Column(%q).%s", c.Name, c.Type.Method())
	if c.Nullable {
		b.WriteString(".Null()")
	} else {
		b.WriteString(".NotNull()")
	}
	if c.Unique {
		b.WriteString(".Unique()")
	}
	return b.String()
}

func pkExpr(c schema.Column) string {
	var b strings.Builder
	fmt.Fprintf(&b, "ddl.Column(%q).%s.NotNull()", c.Name, c.Type.Method())
	if c.Type.IsInteger() {
		b.WriteString(".AutoIncrement()")
	}
	b.WriteString(".PrimaryKey()")
	return b.String()
}

func actionPart(method string, a schema.Action) (string, bool) {
	if a == "" || a == schema.NoAction {
		return "", false
	}
	return fmt.Sprintf("%s(ddl.%s)", method, a), true
}

func createFKParts(table string, fk schema.ForeignKey) []string {
	parts := []string{
		fmt.Sprintf("From(%q, %q)", table, fk.FromColumn),
		fmt.Sprintf("To(%q, %q)", fk.ToTable, fk.ToColumn),
	}
	if p, ok := actionPart("OnDelete", fk.OnDelete); ok {
		parts = append(parts, p)
	}
	if p, ok := actionPart("OnUpdate", fk.OnUpdate); ok {
		parts = append(parts, p)
	}
	return parts
}

func createIndexParts(table string, idx schema.Index) []string {
	parts := []string{
		fmt.Sprintf("Name(%q)", idx.Name),
		fmt.Sprintf("Table(%q)", table),
	}
	for _, col := range idx.Columns {
		parts = append(parts, fmt.Sprintf("Col(%q)", col))
	}
	if idx.Unique {
		parts = append(parts, "Unique()")
	}
	return parts
}

func dropFKOp(table string, fk schema.ForeignKey) string {
	return guardOp("DropForeignKey", "ddl.DropFK()", []string{
		fmt.Sprintf("Table(%q)", table),
		fmt.Sprintf("Name(ddl.FKName(%q, %q))", table, fk.FromColumn),
	})
}

func dropIndexOp(table string, idx schema.Index) string {
	return guardOp("DropIndex", "ddl.DropIdx()", []string{
		fmt.Sprintf("Name(%q)", idx.Name),
		fmt.Sprintf("Table(%q)", table),
	})
}

// createOps renders the Up body of a create artifact: the full table
// statement, then one statement per foreign key and index.
func createOps(s *schema.Schema) []string {
	parts := []string{
		fmt.Sprintf("Table(%q)", s.TableName),
		"IfNotExists()",
	}
	if s.PrimaryKey != nil {
		parts = append(parts, fmt.Sprintf("Col(%s)", pkExpr(*s.PrimaryKey)))
	}
	for _, c := range s.Columns {
		if c.Ignored {
			continue
		}
		parts = append(parts, fmt.Sprintf("Col(%s)", columnExpr(c)))
	}
	ops := []string{guardOp("CreateTable", "ddl.Create()", parts)}

	for _, fk := range s.ForeignKeys {
		ops = append(ops, guardOp("CreateForeignKey", "ddl.CreateFK()", createFKParts(s.TableName, fk)))
	}
	for _, idx := range s.Indexes {
		ops = append(ops, guardOp("CreateIndex", "ddl.CreateIdx()", createIndexParts(s.TableName, idx)))
	}
	return ops
}

// createDownOps renders the Down body of a create artifact: indexes and
// foreign keys first, then the table itself.
func createDownOps(s *schema.Schema) []string {
	var ops []string
	for _, idx := range s.Indexes {
		ops = append(ops, dropIndexOp(s.TableName, idx))
	}
	for _, fk := range s.ForeignKeys {
		ops = append(ops, dropFKOp(s.TableName, fk))
	}
	ops = append(ops, simpleOp("DropTable", fmt.Sprintf("ddl.Drop().Table(%q)", s.TableName)))
	return ops
}

// typeChangeWarning is emitted instead of an op when a column type
// changed: an automatic in-place conversion would lose data.
func typeChangeWarning(table string, m schema.ModifiedColumn) string {
	return fmt.Sprintf(
		"\t// WARNING: %s.%s type changed %s -> %s. Manual migration required.",
		table, m.New.Name, m.Old.Type, m.New.Type)
}

// alterUpOps renders the forward operations for a modified table.
func alterUpOps(ch schema.Changes) []string {
	var ops []string
	var parts []string
	for _, c := range ch.AddedColumns {
		parts = append(parts, fmt.Sprintf("AddColumn(%s)", columnExpr(c)))
	}
	for _, name := range ch.DroppedColumns {
		parts = append(parts, fmt.Sprintf("DropColumn(%q)", name))
	}
	for _, m := range ch.ModifiedColumns {
		if m.Old.Type != m.New.Type {
			ops = append(ops, typeChangeWarning(ch.TableName, m))
			continue
		}
		parts = append(parts, fmt.Sprintf("ModifyColumn(%s)", columnExpr(m.New)))
	}
	if len(parts) > 0 {
		chain := append([]string{fmt.Sprintf("Table(%q)", ch.TableName)}, parts...)
		ops = append(ops, guardOp("AlterTable", "ddl.Alter()", chain))
	}

	for _, fk := range ch.DroppedFKs {
		ops = append(ops, dropFKOp(ch.TableName, fk))
	}
	for _, fk := range ch.AddedFKs {
		ops = append(ops, guardOp("CreateForeignKey", "ddl.CreateFK()", createFKParts(ch.TableName, fk)))
	}
	for _, idx := range ch.DroppedIndexes {
		ops = append(ops, dropIndexOp(ch.TableName, idx))
	}
	for _, idx := range ch.AddedIndexes {
		ops = append(ops, guardOp("CreateIndex", "ddl.CreateIdx()", createIndexParts(ch.TableName, idx)))
	}
	return ops
}

// alterDownOps renders the exact inverses. Dropped columns are restored
// with their definition from the previous snapshot.
func alterDownOps(ch schema.Changes, previous *schema.Schema) []string {
	var ops []string
	var parts []string
	for _, c := range ch.AddedColumns {
		parts = append(parts, fmt.Sprintf("DropColumn(%q)", c.Name))
	}
	for _, name := range ch.DroppedColumns {
		parts = append(parts, fmt.Sprintf("AddColumn(%s)", columnExpr(previousColumn(previous, name))))
	}
	for _, m := range ch.ModifiedColumns {
		if m.Old.Type != m.New.Type {
			ops = append(ops, typeChangeWarning(ch.TableName, schema.ModifiedColumn{Old: m.New, New: m.Old}))
			continue
		}
		parts = append(parts, fmt.Sprintf("ModifyColumn(%s)", columnExpr(m.Old)))
	}
	if len(parts) > 0 {
		chain := append([]string{fmt.Sprintf("Table(%q)", ch.TableName)}, parts...)
		ops = append(ops, guardOp("AlterTable", "ddl.Alter()", chain))
	}

	for _, fk := range ch.AddedFKs {
		ops = append(ops, dropFKOp(ch.TableName, fk))
	}
	for _, fk := range ch.DroppedFKs {
		ops = append(ops, guardOp("CreateForeignKey", "ddl.CreateFK()", createFKParts(ch.TableName, fk)))
	}
	for _, idx := range ch.AddedIndexes {
		ops = append(ops, dropIndexOp(ch.TableName, idx))
	}
	for _, idx := range ch.DroppedIndexes {
		ops = append(ops, guardOp("CreateIndex", "ddl.CreateIdx()", createIndexParts(ch.TableName, idx)))
	}
	return ops
}

// previousColumn resolves a dropped column's old definition. The name
// always comes from the previous snapshot, so the lookup only misses
// when the snapshot was edited by hand.
func previousColumn(previous *schema.Schema, name string) schema.Column {
	if previous != nil {
		for _, c := range previous.Columns {
			if c.Name == name {
				return c
			}
		}
	}
	return schema.Column{Name: name, Type: schema.TypeString}
}
