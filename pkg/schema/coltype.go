package schema

// ColType is the logical type tag of a column. Tags are compared as
// opaque strings by the diff engine; the generator maps them back to
// DSL method names and SQL types.
type ColType string

const (
	TypeTinyInteger  ColType = "TinyInteger"
	TypeSmallInteger ColType = "SmallInteger"
	TypeInteger      ColType = "Integer"
	TypeBigInteger   ColType = "BigInteger"
	TypeUnsigned     ColType = "Unsigned"
	TypeBigUnsigned  ColType = "BigUnsigned"
	TypeFloat        ColType = "Float"
	TypeDouble       ColType = "Double"
	TypeDecimal      ColType = "Decimal"
	TypeBoolean      ColType = "Boolean"
	TypeString       ColType = "String"
	TypeChar         ColType = "Char"
	TypeText         ColType = "Text"
	TypeDateTime     ColType = "DateTime"
	TypeTimestamp    ColType = "Timestamp"
	TypeTimestampTz  ColType = "TimestampWithTimeZone"
	TypeDate         ColType = "Date"
	TypeTime         ColType = "Time"
	TypeUuid         ColType = "Uuid"
	TypeJson         ColType = "Json"
	TypeJsonBinary   ColType = "JsonBinary"
	TypeBinary       ColType = "Binary"
	TypeVarBinary    ColType = "VarBinary"
	TypeBlob         ColType = "Blob"
	TypeInet         ColType = "Inet"
	TypeCidr         ColType = "Cidr"
	TypeMacAddr      ColType = "MacAddr"
	TypeInterval     ColType = "Interval"
	TypeEnum         ColType = "Enum"
)

// IsInteger reports whether the type is in the integer width family.
// Auto-incrementing keys only make sense on these.
func (t ColType) IsInteger() bool {
	switch t {
	case TypeTinyInteger, TypeSmallInteger, TypeInteger, TypeBigInteger,
		TypeUnsigned, TypeBigUnsigned:
		return true
	}
	return false
}

// Method returns the ddl builder method spelling for a type tag, used
// when rendering generated migration source. Unknown tags fall back to
// String.
func (t ColType) Method() string {
	switch t {
	case TypeTinyInteger:
		return "TinyInteger()"
	case TypeSmallInteger:
		return "SmallInteger()"
	case TypeInteger:
		return "Integer()"
	case TypeBigInteger:
		return "BigInteger()"
	case TypeUnsigned:
		return "Unsigned()"
	case TypeBigUnsigned:
		return "BigUnsigned()"
	case TypeFloat:
		return "Float()"
	case TypeDouble:
		return "Double()"
	case TypeDecimal:
		return "Decimal()"
	case TypeBoolean:
		return "Boolean()"
	case TypeChar:
		return "Char()"
	case TypeText:
		return "Text()"
	case TypeDateTime:
		return "DateTime()"
	case TypeTimestamp:
		return "Timestamp()"
	case TypeTimestampTz:
		return "TimestampTz()"
	case TypeDate:
		return "Date()"
	case TypeTime:
		return "Time()"
	case TypeUuid:
		return "Uuid()"
	case TypeJson:
		return "Json()"
	case TypeJsonBinary:
		return "JsonBinary()"
	case TypeBinary:
		return "Binary()"
	case TypeVarBinary:
		return "VarBinary()"
	case TypeBlob:
		return "Blob()"
	case TypeInet:
		return "Inet()"
	case TypeCidr:
		return "Cidr()"
	case TypeMacAddr:
		return "MacAddress()"
	case TypeInterval:
		return "Interval()"
	case TypeEnum:
		return "Enum()"
	default:
		return "String()"
	}
}
