package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRequiresPrimaryKey(t *testing.T) {
	s := &Schema{TableName: "users"}
	require.ErrorIs(t, s.Validate(), ErrMissingPrimaryKey)

	s.PrimaryKey = &Column{Name: "id", Type: TypeInteger}
	assert.NoError(t, s.Validate())
}

func TestForeignKeyIdentity(t *testing.T) {
	fk := ForeignKey{FromColumn: "team_id", ToTable: "teams", ToColumn: "id"}
	assert.Equal(t, "team_id->teams:id", fk.Identity())

	// Action changes do not alter identity.
	cascading := fk
	cascading.OnDelete = Cascade
	assert.Equal(t, fk.Identity(), cascading.Identity())
}

func TestChangesIsEmpty(t *testing.T) {
	var c Changes
	assert.True(t, c.IsEmpty())

	c.IsNewTable = true
	assert.False(t, c.IsEmpty())

	c = Changes{DroppedColumns: []string{"bio"}}
	assert.False(t, c.IsEmpty())

	c = Changes{AddedIndexes: []Index{{Name: "idx_users_email"}}}
	assert.False(t, c.IsEmpty())
}

func TestColTypeIsInteger(t *testing.T) {
	for _, typ := range []ColType{TypeTinyInteger, TypeSmallInteger, TypeInteger,
		TypeBigInteger, TypeUnsigned, TypeBigUnsigned} {
		assert.True(t, typ.IsInteger(), string(typ))
	}
	for _, typ := range []ColType{TypeString, TypeUuid, TypeFloat, TypeDecimal, TypeBoolean} {
		assert.False(t, typ.IsInteger(), string(typ))
	}
}

func TestColTypeMethod(t *testing.T) {
	assert.Equal(t, "BigInteger()", TypeBigInteger.Method())
	assert.Equal(t, "TimestampTz()", TypeTimestampTz.Method())
	assert.Equal(t, "MacAddress()", TypeMacAddr.Method())
	assert.Equal(t, "String()", TypeString.Method())
	assert.Equal(t, "String()", ColType("Unknown").Method())
}
