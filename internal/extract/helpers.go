package extract

import (
	"go/ast"
	"go/token"
	"strconv"

	"github.com/schemaforge/schemaforge/pkg/schema"
)

// chainCall is one link of a fluent call chain, in declaration order.
type chainCall struct {
	name string
	args []ast.Expr
}

// collectChain flattens a fluent method chain (a.B(x).C(y)...) into
// declaration order. The root constructor call (model.Table, ddl.FK,
// ...) is the first element.
func collectChain(expr ast.Expr) []chainCall {
	var chain []chainCall
	cur := expr
	for {
		call, ok := cur.(*ast.CallExpr)
		if !ok {
			break
		}
		sel, ok := call.Fun.(*ast.SelectorExpr)
		if !ok {
			break
		}
		chain = append(chain, chainCall{name: sel.Sel.Name, args: call.Args})
		cur = sel.X
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

func callName(call *ast.CallExpr) (string, bool) {
	switch fn := call.Fun.(type) {
	case *ast.SelectorExpr:
		return fn.Sel.Name, true
	case *ast.Ident:
		return fn.Name, true
	}
	return "", false
}

// methodNames collects every call name reachable in expr, method calls
// and constructor calls alike.
func methodNames(expr ast.Expr) []string {
	var names []string
	ast.Inspect(expr, func(n ast.Node) bool {
		if call, ok := n.(*ast.CallExpr); ok {
			if name, ok := callName(call); ok {
				names = append(names, name)
			}
		}
		return true
	})
	return names
}

func contains(names []string, want ...string) bool {
	for _, n := range names {
		for _, w := range want {
			if n == w {
				return true
			}
		}
	}
	return false
}

func litString(expr ast.Expr) (string, bool) {
	lit, ok := expr.(*ast.BasicLit)
	if !ok || lit.Kind != token.STRING {
		return "", false
	}
	s, err := strconv.Unquote(lit.Value)
	if err != nil {
		return "", false
	}
	return s, true
}

// firstStringArg returns the leading argument only when it is a string
// literal.
func firstStringArg(args []ast.Expr) (string, bool) {
	if len(args) == 0 {
		return "", false
	}
	return litString(args[0])
}

// stringLits collects every string literal in expr, receiver side
// before argument side, so chain declaration order is preserved.
func stringLits(expr ast.Expr) []string {
	var out []string
	ast.Inspect(expr, func(n ast.Node) bool {
		if lit, ok := n.(*ast.BasicLit); ok && lit.Kind == token.STRING {
			if s, err := strconv.Unquote(lit.Value); err == nil {
				out = append(out, s)
			}
		}
		return true
	})
	return out
}

func firstString(expr ast.Expr) (string, bool) {
	lits := stringLits(expr)
	if len(lits) == 0 {
		return "", false
	}
	return lits[0], true
}

// referencesIn locates a References(table, column) call anywhere in
// expr. A single string argument targets that table's "id" column.
func referencesIn(expr ast.Expr) (table, column string, ok bool) {
	column = "id"
	ast.Inspect(expr, func(n ast.Node) bool {
		if ok {
			return false
		}
		call, isCall := n.(*ast.CallExpr)
		if !isCall {
			return true
		}
		if name, _ := callName(call); name != "References" {
			return true
		}
		var lits []string
		for _, a := range call.Args {
			lits = append(lits, stringLits(a)...)
		}
		if len(lits) == 0 {
			return true
		}
		table = lits[0]
		if len(lits) > 1 {
			column = lits[1]
		}
		ok = true
		return false
	})
	return table, column, ok
}

// actionIn finds an OnDelete/OnUpdate call in expr and decodes its
// referential action argument.
func actionIn(expr ast.Expr, method string) schema.Action {
	action := schema.NoAction
	ast.Inspect(expr, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok {
			return true
		}
		if name, _ := callName(call); name != method || len(call.Args) == 0 {
			return true
		}
		action = actionValue(call.Args[0])
		return false
	})
	return action
}

func actionValue(expr ast.Expr) schema.Action {
	var name string
	switch v := expr.(type) {
	case *ast.SelectorExpr:
		name = v.Sel.Name
	case *ast.Ident:
		name = v.Name
	}
	switch name {
	case "Cascade":
		return schema.Cascade
	case "SetNull":
		return schema.SetNull
	case "Restrict":
		return schema.Restrict
	}
	return schema.NoAction
}

// detectColType maps the call names seen on a column declaration to
// its logical type, most specific families first. Unrecognized
// declarations fall back to String.
func detectColType(methods []string) schema.ColType {
	switch {
	case contains(methods, "Blob"):
		return schema.TypeBlob
	case contains(methods, "Binary"):
		return schema.TypeBinary
	case contains(methods, "VarBinary"):
		return schema.TypeVarBinary
	case contains(methods, "Text"):
		return schema.TypeText
	case contains(methods, "Char"):
		return schema.TypeChar
	case contains(methods, "TinyInteger"):
		return schema.TypeTinyInteger
	case contains(methods, "SmallInteger"):
		return schema.TypeSmallInteger
	case contains(methods, "BigUnsigned"):
		return schema.TypeBigUnsigned
	case contains(methods, "Unsigned"):
		return schema.TypeUnsigned
	case contains(methods, "BigInteger"):
		return schema.TypeBigInteger
	case contains(methods, "Integer"):
		return schema.TypeInteger
	case contains(methods, "Float"):
		return schema.TypeFloat
	case contains(methods, "Double"):
		return schema.TypeDouble
	case contains(methods, "Decimal"):
		return schema.TypeDecimal
	case contains(methods, "Boolean"):
		return schema.TypeBoolean
	case contains(methods, "TimestampTz", "TimestampWithTimeZone"):
		return schema.TypeTimestampTz
	case contains(methods, "Timestamp"):
		return schema.TypeTimestamp
	case contains(methods, "DateTime", "AutoNow", "AutoNowUpdate"):
		return schema.TypeDateTime
	case contains(methods, "Date"):
		return schema.TypeDate
	case contains(methods, "Time"):
		return schema.TypeTime
	case contains(methods, "Uuid"):
		return schema.TypeUuid
	case contains(methods, "JsonBinary"):
		return schema.TypeJsonBinary
	case contains(methods, "Json"):
		return schema.TypeJson
	case contains(methods, "Inet"):
		return schema.TypeInet
	case contains(methods, "Cidr"):
		return schema.TypeCidr
	case contains(methods, "MacAddress", "MacAddr"):
		return schema.TypeMacAddr
	case contains(methods, "Interval"):
		return schema.TypeInterval
	case contains(methods, "Enum"):
		return schema.TypeEnum
	default:
		return schema.TypeString
	}
}

// detectPKType maps a primary-key declaration to its column type.
// Integer surrogate keys are the default.
func detectPKType(methods []string) schema.ColType {
	switch {
	case contains(methods, "Uuid"):
		return schema.TypeUuid
	case contains(methods, "I64", "BigInteger"):
		return schema.TypeBigInteger
	case contains(methods, "I32", "Integer"):
		return schema.TypeInteger
	case contains(methods, "I16", "SmallInteger"):
		return schema.TypeSmallInteger
	case contains(methods, "U64", "BigUnsigned"):
		return schema.TypeBigUnsigned
	case contains(methods, "U32", "Unsigned"):
		return schema.TypeUnsigned
	case contains(methods, "String", "Varchar"):
		return schema.TypeString
	default:
		return schema.TypeInteger
	}
}
