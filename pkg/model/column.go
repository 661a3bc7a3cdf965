package model

import "github.com/schemaforge/schemaforge/pkg/schema"

// ColumnBuilder accretes one column definition. Columns default to
// String, required, non-unique.
type ColumnBuilder struct {
	name          string
	colType       schema.ColType
	nullable      bool
	unique        bool
	ignored       bool
	autoNow       bool
	autoNowUpdate bool
}

// Col starts a column definition.
func Col(name string) *ColumnBuilder {
	return &ColumnBuilder{name: name, colType: schema.TypeString}
}

func (c *ColumnBuilder) typed(t schema.ColType) *ColumnBuilder {
	c.colType = t
	return c
}

func (c *ColumnBuilder) TinyInteger() *ColumnBuilder  { return c.typed(schema.TypeTinyInteger) }
func (c *ColumnBuilder) SmallInteger() *ColumnBuilder { return c.typed(schema.TypeSmallInteger) }
func (c *ColumnBuilder) Integer() *ColumnBuilder      { return c.typed(schema.TypeInteger) }
func (c *ColumnBuilder) BigInteger() *ColumnBuilder   { return c.typed(schema.TypeBigInteger) }
func (c *ColumnBuilder) Unsigned() *ColumnBuilder     { return c.typed(schema.TypeUnsigned) }
func (c *ColumnBuilder) BigUnsigned() *ColumnBuilder  { return c.typed(schema.TypeBigUnsigned) }
func (c *ColumnBuilder) Float() *ColumnBuilder        { return c.typed(schema.TypeFloat) }
func (c *ColumnBuilder) Double() *ColumnBuilder       { return c.typed(schema.TypeDouble) }
func (c *ColumnBuilder) Decimal() *ColumnBuilder      { return c.typed(schema.TypeDecimal) }
func (c *ColumnBuilder) Boolean() *ColumnBuilder      { return c.typed(schema.TypeBoolean) }
func (c *ColumnBuilder) String() *ColumnBuilder       { return c.typed(schema.TypeString) }
func (c *ColumnBuilder) Varchar(_ int) *ColumnBuilder { return c.typed(schema.TypeString) }
func (c *ColumnBuilder) Char() *ColumnBuilder         { return c.typed(schema.TypeChar) }
func (c *ColumnBuilder) Text() *ColumnBuilder         { return c.typed(schema.TypeText) }
func (c *ColumnBuilder) DateTime() *ColumnBuilder     { return c.typed(schema.TypeDateTime) }
func (c *ColumnBuilder) Timestamp() *ColumnBuilder    { return c.typed(schema.TypeTimestamp) }
func (c *ColumnBuilder) TimestampTz() *ColumnBuilder  { return c.typed(schema.TypeTimestampTz) }
func (c *ColumnBuilder) Date() *ColumnBuilder         { return c.typed(schema.TypeDate) }
func (c *ColumnBuilder) Time() *ColumnBuilder         { return c.typed(schema.TypeTime) }
func (c *ColumnBuilder) Uuid() *ColumnBuilder         { return c.typed(schema.TypeUuid) }
func (c *ColumnBuilder) Json() *ColumnBuilder         { return c.typed(schema.TypeJson) }
func (c *ColumnBuilder) JsonBinary() *ColumnBuilder   { return c.typed(schema.TypeJsonBinary) }
func (c *ColumnBuilder) Binary() *ColumnBuilder       { return c.typed(schema.TypeBinary) }
func (c *ColumnBuilder) VarBinary(_ int) *ColumnBuilder {
	return c.typed(schema.TypeVarBinary)
}
func (c *ColumnBuilder) Blob() *ColumnBuilder       { return c.typed(schema.TypeBlob) }
func (c *ColumnBuilder) Inet() *ColumnBuilder       { return c.typed(schema.TypeInet) }
func (c *ColumnBuilder) Cidr() *ColumnBuilder       { return c.typed(schema.TypeCidr) }
func (c *ColumnBuilder) MacAddress() *ColumnBuilder { return c.typed(schema.TypeMacAddr) }
func (c *ColumnBuilder) Interval() *ColumnBuilder   { return c.typed(schema.TypeInterval) }

// Nullable marks the column optional.
func (c *ColumnBuilder) Nullable() *ColumnBuilder {
	c.nullable = true
	return c
}

// Required marks the column mandatory (the default).
func (c *ColumnBuilder) Required() *ColumnBuilder {
	c.nullable = false
	return c
}

// Unique adds a unique constraint.
func (c *ColumnBuilder) Unique() *ColumnBuilder {
	c.unique = true
	return c
}

// Ignore excludes the column from generated DDL while keeping it
// tracked in the schema.
func (c *ColumnBuilder) Ignore() *ColumnBuilder {
	c.ignored = true
	return c
}

// AutoNow makes the column a nullable DateTime stamped at creation.
func (c *ColumnBuilder) AutoNow() *ColumnBuilder {
	c.colType = schema.TypeDateTime
	c.nullable = true
	c.autoNow = true
	return c
}

// AutoNowUpdate makes the column a nullable DateTime stamped on update.
func (c *ColumnBuilder) AutoNowUpdate() *ColumnBuilder {
	c.colType = schema.TypeDateTime
	c.nullable = true
	c.autoNowUpdate = true
	return c
}

func (c *ColumnBuilder) column() schema.Column {
	return schema.Column{
		Name:     c.name,
		Type:     c.colType,
		Nullable: c.nullable,
		Unique:   c.unique,
		Ignored:  c.ignored,
	}
}

// PKBuilder accretes the primary key definition. Integer and
// auto-increment by default.
type PKBuilder struct {
	name          string
	colType       schema.ColType
	autoIncrement bool
}

// PK starts a primary key definition.
func PK(name string) *PKBuilder {
	return &PKBuilder{name: name, colType: schema.TypeInteger, autoIncrement: true}
}

// I16 makes the key a small integer.
func (p *PKBuilder) I16() *PKBuilder {
	p.colType = schema.TypeSmallInteger
	return p
}

// I32 makes the key an integer (the default).
func (p *PKBuilder) I32() *PKBuilder {
	p.colType = schema.TypeInteger
	return p
}

// I64 makes the key a big integer.
func (p *PKBuilder) I64() *PKBuilder {
	p.colType = schema.TypeBigInteger
	return p
}

// Uuid makes the key a UUID; UUID keys never auto-increment.
func (p *PKBuilder) Uuid() *PKBuilder {
	p.colType = schema.TypeUuid
	p.autoIncrement = false
	return p
}

// String makes the key a string; string keys never auto-increment.
func (p *PKBuilder) String() *PKBuilder {
	p.colType = schema.TypeString
	p.autoIncrement = false
	return p
}

// NoAutoIncrement turns off auto-increment.
func (p *PKBuilder) NoAutoIncrement() *PKBuilder {
	p.autoIncrement = false
	return p
}

func (p *PKBuilder) column() schema.Column {
	return schema.Column{Name: p.name, Type: p.colType}
}

// FKBuilder accretes one foreign key definition.
type FKBuilder struct {
	fromColumn string
	toTable    string
	toColumn   string
	onDelete   schema.Action
	onUpdate   schema.Action
}

// FK starts a foreign key from the given column. The referenced column
// defaults to id.
func FK(fromColumn string) *FKBuilder {
	return &FKBuilder{
		fromColumn: fromColumn,
		toColumn:   "id",
		onDelete:   NoAction,
		onUpdate:   NoAction,
	}
}

// References sets the referenced table and column.
func (f *FKBuilder) References(table, column string) *FKBuilder {
	f.toTable = table
	f.toColumn = column
	return f
}

// OnDelete sets the delete action.
func (f *FKBuilder) OnDelete(a schema.Action) *FKBuilder {
	f.onDelete = a
	return f
}

// OnUpdate sets the update action.
func (f *FKBuilder) OnUpdate(a schema.Action) *FKBuilder {
	f.onUpdate = a
	return f
}

func (f *FKBuilder) foreignKey() schema.ForeignKey {
	return schema.ForeignKey{
		FromColumn: f.fromColumn,
		ToTable:    f.toTable,
		ToColumn:   f.toColumn,
		OnDelete:   f.onDelete,
		OnUpdate:   f.onUpdate,
	}
}

// IndexBuilder accretes one index definition.
type IndexBuilder struct {
	name    string
	columns []string
	unique  bool
}

// Idx starts an index over the given columns.
func Idx(name string, columns ...string) *IndexBuilder {
	return &IndexBuilder{name: name, columns: columns}
}

// Unique makes the index unique.
func (i *IndexBuilder) Unique() *IndexBuilder {
	i.unique = true
	return i
}

func (i *IndexBuilder) index() schema.Index {
	return schema.Index{Name: i.name, Columns: i.columns, Unique: i.unique}
}
