package model

import (
	"strings"

	"github.com/schemaforge/schemaforge/pkg/ddl"
	"github.com/schemaforge/schemaforge/pkg/schema"
)

// CreateStatement derives the full table-creation statement for a
// schema. Pure function of the schema; ignored columns are excluded.
func CreateStatement(s *schema.Schema) *ddl.CreateTable {
	st := ddl.Create().Table(s.TableName).IfNotExists()
	if pk := s.PrimaryKey; pk != nil {
		st.Col(pkColumnDef(*pk))
	}
	for _, c := range s.Columns {
		if c.Ignored {
			continue
		}
		st.Col(columnDef(c))
	}
	for _, fk := range s.ForeignKeys {
		st.ForeignKey(ddl.FK(fk.FromColumn).
			References(fk.ToTable, fk.ToColumn).
			OnDelete(fk.OnDelete).
			OnUpdate(fk.OnUpdate))
	}
	for _, idx := range s.Indexes {
		inline := ddl.Idx(idx.Name, idx.Columns...)
		if idx.Unique {
			inline.Unique()
		}
		st.Index(inline)
	}
	return st
}

// typedColumn starts a ddl column declaration carrying the schema
// column's type tag, mirroring the spelling ColType.Method emits into
// generated migration source. Unknown tags fall back to String.
func typedColumn(c schema.Column) *ddl.ColumnDef {
	d := ddl.Column(c.Name)
	switch c.Type {
	case schema.TypeTinyInteger:
		return d.TinyInteger()
	case schema.TypeSmallInteger:
		return d.SmallInteger()
	case schema.TypeInteger:
		return d.Integer()
	case schema.TypeBigInteger:
		return d.BigInteger()
	case schema.TypeUnsigned:
		return d.Unsigned()
	case schema.TypeBigUnsigned:
		return d.BigUnsigned()
	case schema.TypeFloat:
		return d.Float()
	case schema.TypeDouble:
		return d.Double()
	case schema.TypeDecimal:
		return d.Decimal()
	case schema.TypeBoolean:
		return d.Boolean()
	case schema.TypeChar:
		return d.Char()
	case schema.TypeText:
		return d.Text()
	case schema.TypeDateTime:
		return d.DateTime()
	case schema.TypeTimestamp:
		return d.Timestamp()
	case schema.TypeTimestampTz:
		return d.TimestampTz()
	case schema.TypeDate:
		return d.Date()
	case schema.TypeTime:
		return d.Time()
	case schema.TypeUuid:
		return d.Uuid()
	case schema.TypeJson:
		return d.Json()
	case schema.TypeJsonBinary:
		return d.JsonBinary()
	case schema.TypeBinary:
		return d.Binary()
	case schema.TypeVarBinary:
		return d.VarBinary()
	case schema.TypeBlob:
		return d.Blob()
	case schema.TypeInet:
		return d.Inet()
	case schema.TypeCidr:
		return d.Cidr()
	case schema.TypeMacAddr:
		return d.MacAddress()
	case schema.TypeInterval:
		return d.Interval()
	case schema.TypeEnum:
		return d.Enum()
	default:
		return d.String()
	}
}

// columnDef declares one non-key column, mirroring the chain
// internal/generate renders for the same column.
func columnDef(c schema.Column) *ddl.ColumnDef {
	d := typedColumn(c)
	if c.Nullable {
		d.Null()
	} else {
		d.NotNull()
	}
	if c.Unique {
		d.Unique()
	}
	return d
}

// pkColumnDef declares the primary-key column, mirroring the chain
// internal/generate renders for the same column.
func pkColumnDef(c schema.Column) *ddl.ColumnDef {
	d := typedColumn(c).NotNull()
	if c.Type.IsInteger() {
		d.AutoIncrement()
	}
	return d.PrimaryKey()
}

// FieldBinding maps one column onto the runtime model layer: the Go
// type a mapped struct field should carry and a human label derived
// from the column name.
type FieldBinding struct {
	Column   string
	GoType   string
	Label    string
	Optional bool
}

// Bindings derives the runtime model-binding representation of a
// schema: the primary key first, then every column in declaration
// order, ignored columns included (they are tracked, just not DDL).
func Bindings(s *schema.Schema) []FieldBinding {
	var out []FieldBinding
	if pk := s.PrimaryKey; pk != nil {
		out = append(out, binding(*pk))
	}
	for _, c := range s.Columns {
		out = append(out, binding(c))
	}
	return out
}

func binding(c schema.Column) FieldBinding {
	return FieldBinding{
		Column:   c.Name,
		GoType:   goType(c.Type),
		Label:    FormatLabel(c.Name),
		Optional: c.Nullable,
	}
}

func goType(t schema.ColType) string {
	switch t {
	case schema.TypeTinyInteger, schema.TypeSmallInteger:
		return "int16"
	case schema.TypeInteger:
		return "int32"
	case schema.TypeBigInteger:
		return "int64"
	case schema.TypeUnsigned:
		return "uint32"
	case schema.TypeBigUnsigned:
		return "uint64"
	case schema.TypeFloat:
		return "float32"
	case schema.TypeDouble, schema.TypeDecimal:
		return "float64"
	case schema.TypeBoolean:
		return "bool"
	case schema.TypeDateTime, schema.TypeTimestamp, schema.TypeTimestampTz,
		schema.TypeDate, schema.TypeTime:
		return "time.Time"
	case schema.TypeBinary, schema.TypeVarBinary, schema.TypeBlob:
		return "[]byte"
	case schema.TypeJson, schema.TypeJsonBinary:
		return "json.RawMessage"
	default:
		return "string"
	}
}

// FormatLabel turns a snake_case column name into a display label.
func FormatLabel(name string) string {
	words := strings.Split(name, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
