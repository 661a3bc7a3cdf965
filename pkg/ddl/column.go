package ddl

import "github.com/schemaforge/schemaforge/pkg/schema"

// ColumnDef declares one column inside a create or alter statement.
// Nullability defaults to NOT NULL until Null is called, matching the
// text the generator emits (it always writes one of the two).
type ColumnDef struct {
	name          string
	colType       schema.ColType
	nullable      bool
	unique        bool
	primaryKey    bool
	autoIncrement bool
}

// Column starts a column declaration.
func Column(name string) *ColumnDef {
	return &ColumnDef{name: name, colType: schema.TypeString}
}

func (c *ColumnDef) typed(t schema.ColType) *ColumnDef {
	c.colType = t
	return c
}

func (c *ColumnDef) TinyInteger() *ColumnDef  { return c.typed(schema.TypeTinyInteger) }
func (c *ColumnDef) SmallInteger() *ColumnDef { return c.typed(schema.TypeSmallInteger) }
func (c *ColumnDef) Integer() *ColumnDef      { return c.typed(schema.TypeInteger) }
func (c *ColumnDef) BigInteger() *ColumnDef   { return c.typed(schema.TypeBigInteger) }
func (c *ColumnDef) Unsigned() *ColumnDef     { return c.typed(schema.TypeUnsigned) }
func (c *ColumnDef) BigUnsigned() *ColumnDef  { return c.typed(schema.TypeBigUnsigned) }
func (c *ColumnDef) Float() *ColumnDef        { return c.typed(schema.TypeFloat) }
func (c *ColumnDef) Double() *ColumnDef       { return c.typed(schema.TypeDouble) }
func (c *ColumnDef) Decimal() *ColumnDef      { return c.typed(schema.TypeDecimal) }
func (c *ColumnDef) Boolean() *ColumnDef      { return c.typed(schema.TypeBoolean) }
func (c *ColumnDef) String() *ColumnDef       { return c.typed(schema.TypeString) }
func (c *ColumnDef) Char() *ColumnDef         { return c.typed(schema.TypeChar) }
func (c *ColumnDef) Text() *ColumnDef         { return c.typed(schema.TypeText) }
func (c *ColumnDef) DateTime() *ColumnDef     { return c.typed(schema.TypeDateTime) }
func (c *ColumnDef) Timestamp() *ColumnDef    { return c.typed(schema.TypeTimestamp) }
func (c *ColumnDef) TimestampTz() *ColumnDef  { return c.typed(schema.TypeTimestampTz) }
func (c *ColumnDef) Date() *ColumnDef         { return c.typed(schema.TypeDate) }
func (c *ColumnDef) Time() *ColumnDef         { return c.typed(schema.TypeTime) }
func (c *ColumnDef) Uuid() *ColumnDef         { return c.typed(schema.TypeUuid) }
func (c *ColumnDef) Json() *ColumnDef         { return c.typed(schema.TypeJson) }
func (c *ColumnDef) JsonBinary() *ColumnDef   { return c.typed(schema.TypeJsonBinary) }
func (c *ColumnDef) Binary() *ColumnDef       { return c.typed(schema.TypeBinary) }
func (c *ColumnDef) VarBinary() *ColumnDef    { return c.typed(schema.TypeVarBinary) }
func (c *ColumnDef) Blob() *ColumnDef         { return c.typed(schema.TypeBlob) }
func (c *ColumnDef) Inet() *ColumnDef         { return c.typed(schema.TypeInet) }
func (c *ColumnDef) Cidr() *ColumnDef         { return c.typed(schema.TypeCidr) }
func (c *ColumnDef) MacAddress() *ColumnDef   { return c.typed(schema.TypeMacAddr) }
func (c *ColumnDef) Interval() *ColumnDef     { return c.typed(schema.TypeInterval) }
func (c *ColumnDef) Enum() *ColumnDef         { return c.typed(schema.TypeEnum) }

// NotNull marks the column required.
func (c *ColumnDef) NotNull() *ColumnDef {
	c.nullable = false
	return c
}

// Null marks the column optional.
func (c *ColumnDef) Null() *ColumnDef {
	c.nullable = true
	return c
}

// Unique adds a unique constraint.
func (c *ColumnDef) Unique() *ColumnDef {
	c.unique = true
	return c
}

// PrimaryKey marks the column as the table's primary key.
func (c *ColumnDef) PrimaryKey() *ColumnDef {
	c.primaryKey = true
	return c
}

// AutoIncrement makes the column auto-incrementing.
func (c *ColumnDef) AutoIncrement() *ColumnDef {
	c.autoIncrement = true
	return c
}

func (c *ColumnDef) sql() string {
	s := quoteIdent(c.name) + " " + sqlType(c.colType)
	if c.nullable {
		s += " NULL"
	} else {
		s += " NOT NULL"
	}
	if c.autoIncrement {
		s += " GENERATED BY DEFAULT AS IDENTITY"
	}
	if c.primaryKey {
		s += " PRIMARY KEY"
	}
	if c.unique {
		s += " UNIQUE"
	}
	return s
}

func sqlType(t schema.ColType) string {
	switch t {
	case schema.TypeTinyInteger, schema.TypeSmallInteger:
		return "smallint"
	case schema.TypeInteger, schema.TypeUnsigned:
		return "integer"
	case schema.TypeBigInteger, schema.TypeBigUnsigned:
		return "bigint"
	case schema.TypeFloat:
		return "real"
	case schema.TypeDouble:
		return "double precision"
	case schema.TypeDecimal:
		return "numeric"
	case schema.TypeBoolean:
		return "boolean"
	case schema.TypeChar:
		return "char"
	case schema.TypeText:
		return "text"
	case schema.TypeDateTime, schema.TypeTimestamp:
		return "timestamp"
	case schema.TypeTimestampTz:
		return "timestamp with time zone"
	case schema.TypeDate:
		return "date"
	case schema.TypeTime:
		return "time"
	case schema.TypeUuid:
		return "uuid"
	case schema.TypeJson:
		return "json"
	case schema.TypeJsonBinary:
		return "jsonb"
	case schema.TypeBinary, schema.TypeVarBinary, schema.TypeBlob:
		return "bytea"
	case schema.TypeInet:
		return "inet"
	case schema.TypeCidr:
		return "cidr"
	case schema.TypeMacAddr:
		return "macaddr"
	case schema.TypeInterval:
		return "interval"
	default:
		return "varchar"
	}
}

func quoteIdent(name string) string {
	return `"` + name + `"`
}
