package extract

import (
	"go/ast"

	"github.com/schemaforge/schemaforge/pkg/model"
	"github.com/schemaforge/schemaforge/pkg/schema"
)

// BuilderSource recognizes entity files written with the pkg/model
// fluent builder: a call chain rooted at model.Table(...) that ends in
// Build or MustBuild. The first such chain in the file wins.
type BuilderSource struct{}

func (BuilderSource) Name() string { return "builder" }

func (BuilderSource) Extract(file *ast.File) (*schema.Schema, error) {
	var found *schema.Schema
	ast.Inspect(file, func(n ast.Node) bool {
		if found != nil {
			return false
		}
		expr, ok := n.(ast.Expr)
		if !ok {
			return true
		}
		if s := parseBuilderChain(expr); s != nil {
			found = s
			return false
		}
		return true
	})
	return found, nil
}

func parseBuilderChain(expr ast.Expr) *schema.Schema {
	chain := collectChain(expr)
	if len(chain) == 0 {
		return nil
	}
	terminal := false
	for _, c := range chain {
		if c.name == "Build" || c.name == "MustBuild" {
			terminal = true
			break
		}
	}
	if !terminal {
		return nil
	}

	s := &schema.Schema{}
	for _, c := range chain {
		switch c.name {
		case "Table":
			if name, ok := firstStringArg(c.args); ok {
				s.TableName = model.ToSnakeCase(name)
			}
		case "TableName":
			if name, ok := firstStringArg(c.args); ok {
				s.TableName = name
			}
		case "PrimaryKey":
			if len(c.args) == 0 {
				continue
			}
			arg := c.args[0]
			name, ok := firstString(arg)
			if !ok {
				continue
			}
			s.PrimaryKey = &schema.Column{
				Name: name,
				Type: detectPKType(methodNames(arg)),
			}
		case "Column":
			if len(c.args) == 0 {
				continue
			}
			arg := c.args[0]
			name, ok := firstString(arg)
			if !ok {
				continue
			}
			methods := methodNames(arg)
			s.Columns = append(s.Columns, schema.Column{
				Name:     name,
				Type:     detectColType(methods),
				Nullable: contains(methods, "Nullable", "AutoNow", "AutoNowUpdate"),
				Unique:   contains(methods, "Unique"),
				Ignored:  contains(methods, "Ignore", "Ignored"),
			})
		case "ForeignKey":
			if len(c.args) == 0 {
				continue
			}
			arg := c.args[0]
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
			if len(c.args) == 0 {
				continue
			}
			arg := c.args[0]
			lits := stringLits(arg)
			if len(lits) == 0 {
				continue
			}
			s.Indexes = append(s.Indexes, schema.Index{
				Name:    lits[0],
				Columns: lits[1:],
				Unique:  contains(methodNames(arg), "Unique"),
			})
		}
	}

	if s.TableName == "" {
		return nil
	}
	return s
}
