package extract

import (
	"go/ast"

	"github.com/schemaforge/schemaforge/pkg/schema"
)

// StatementSource recognizes migration-statement files: a function or
// method named Up whose body declares the table through ddl statements.
// Generated create artifacts round-trip through this front-end, so
// hand-written files in the same shape are accepted too.
type StatementSource struct{}

func (StatementSource) Name() string { return "statement" }

func (StatementSource) Extract(file *ast.File) (*schema.Schema, error) {
	var up *ast.FuncDecl
	for _, d := range file.Decls {
		if fd, ok := d.(*ast.FuncDecl); ok && fd.Name.Name == "Up" && fd.Body != nil {
			up = fd
			break
		}
	}
	if up == nil {
		return nil, nil
	}

	s := &schema.Schema{}
	ast.Inspect(up.Body, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok {
			return true
		}
		sel, ok := call.Fun.(*ast.SelectorExpr)
		if !ok {
			return true
		}

		switch sel.Sel.Name {
		case "Table":
			if s.TableName == "" {
				if name, ok := firstStringArg(call.Args); ok {
					s.TableName = name
				}
			}
		case "Col":
			// Column declarations carry a ColumnDef chain; the
			// plain-string Col on index statements is not one.
			if len(call.Args) == 0 {
				return true
			}
			arg, ok := call.Args[0].(*ast.CallExpr)
			if !ok {
				return true
			}
			name, ok := firstString(arg)
			if !ok {
				return true
			}
			methods := methodNames(arg)
			if contains(methods, "PrimaryKey") {
				s.PrimaryKey = &schema.Column{
					Name: name,
					Type: detectColType(methods),
				}
				return true
			}
			s.Columns = append(s.Columns, schema.Column{
				Name:     name,
				Type:     detectColType(methods),
				Nullable: contains(methods, "Null"),
				Unique:   contains(methods, "Unique"),
			})
		case "CreateForeignKey":
			if len(call.Args) == 0 {
				return true
			}
			if fk, ok := statementFK(call.Args[0]); ok {
				s.ForeignKeys = append(s.ForeignKeys, fk)
			}
		case "CreateIndex":
			if len(call.Args) == 0 {
				return true
			}
			if idx, ok := statementIndex(call.Args[0]); ok {
				s.Indexes = append(s.Indexes, idx)
			}
		case "ForeignKey":
			if len(call.Args) == 0 {
				return true
			}
			arg := call.Args[0]
			from, _ := firstString(arg)
			toTable, toColumn, _ := referencesIn(arg)
			s.ForeignKeys = append(s.ForeignKeys, schema.ForeignKey{
				FromColumn: from,
				ToTable:    toTable,
				ToColumn:   toColumn,
				OnDelete:   actionIn(arg, "OnDelete"),
				OnUpdate:   actionIn(arg, "OnUpdate"),
			})
		case "Index":
			if len(call.Args) == 0 {
				return true
			}
			arg := call.Args[0]
			lits := stringLits(arg)
			if len(lits) == 0 {
				return true
			}
			s.Indexes = append(s.Indexes, schema.Index{
				Name:    lits[0],
				Columns: lits[1:],
				Unique:  contains(methodNames(arg), "Unique"),
			})
		}
		return true
	})

	if s.TableName == "" {
		return nil, ErrNoTableName
	}
	return s, nil
}

// statementFK decodes a CreateFK().From(t, c).To(t, c) chain. From and
// To are both required; the target column defaults to id.
func statementFK(expr ast.Expr) (schema.ForeignKey, bool) {
	fk := schema.ForeignKey{
		ToColumn: "id",
		OnDelete: schema.NoAction,
		OnUpdate: schema.NoAction,
	}
	var haveFrom, haveTo bool
	for _, c := range collectChain(expr) {
		switch c.name {
		case "From":
			if len(c.args) >= 2 {
				if s, ok := litString(c.args[1]); ok {
					fk.FromColumn = s
					haveFrom = true
				}
			}
		case "To":
			if len(c.args) >= 2 {
				if s, ok := litString(c.args[0]); ok {
					fk.ToTable = s
					haveTo = true
				}
				if s, ok := litString(c.args[1]); ok {
					fk.ToColumn = s
				}
			}
		case "OnDelete":
			if len(c.args) > 0 {
				fk.OnDelete = actionValue(c.args[0])
			}
		case "OnUpdate":
			if len(c.args) > 0 {
				fk.OnUpdate = actionValue(c.args[0])
			}
		}
	}
	return fk, haveFrom && haveTo
}

// statementIndex decodes a CreateIdx().Name(n).Col(c)... chain. The
// name is required.
func statementIndex(expr ast.Expr) (schema.Index, bool) {
	var idx schema.Index
	var haveName bool
	for _, c := range collectChain(expr) {
		switch c.name {
		case "Name":
			if s, ok := firstStringArg(c.args); ok {
				idx.Name = s
				haveName = true
			}
		case "Col":
			if s, ok := firstStringArg(c.args); ok {
				idx.Columns = append(idx.Columns, s)
			}
		case "Unique":
			idx.Unique = true
		}
	}
	return idx, haveName
}
