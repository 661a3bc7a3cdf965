package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemaforge/schemaforge/pkg/schema"
)

func TestBuildFullDefinition(t *testing.T) {
	s, err := Table("UserProfile").
		PrimaryKey(PK("id").I64()).
		Column(Col("username").String().Unique()).
		Column(Col("bio").Text().Nullable()).
		Column(Col("computed").Float().Ignore()).
		ForeignKey(FK("team_id").References("teams", "id").OnDelete(Cascade)).
		Index(Idx("idx_user_profile_username", "username").Unique()).
		Build()
	require.NoError(t, err)

	assert.Equal(t, "user_profile", s.TableName)
	require.NotNil(t, s.PrimaryKey)
	assert.Equal(t, schema.TypeBigInteger, s.PrimaryKey.Type)

	require.Len(t, s.Columns, 3)
	assert.True(t, s.Columns[0].Unique)
	assert.True(t, s.Columns[1].Nullable)
	assert.True(t, s.Columns[2].Ignored)

	require.Len(t, s.ForeignKeys, 1)
	assert.Equal(t, schema.Cascade, s.ForeignKeys[0].OnDelete)
	assert.Equal(t, schema.NoAction, s.ForeignKeys[0].OnUpdate)

	require.Len(t, s.Indexes, 1)
	assert.Equal(t, []string{"username"}, s.Indexes[0].Columns)
}

func TestTableNameOverride(t *testing.T) {
	s, err := Table("UserProfile").
		TableName("profiles").
		PrimaryKey(PK("id")).
		Build()
	require.NoError(t, err)
	assert.Equal(t, "profiles", s.TableName)
}

func TestBuildWithoutPrimaryKey(t *testing.T) {
	_, err := Table("Broken").Column(Col("name").String()).Build()
	require.ErrorIs(t, err, schema.ErrMissingPrimaryKey)
	assert.Contains(t, err.Error(), `model "Broken"`)

	assert.Panics(t, func() {
		Table("Broken").Column(Col("name").String()).MustBuild()
	})
}

func TestColumnDefaults(t *testing.T) {
	c, err := Table("T").PrimaryKey(PK("id")).Column(Col("name").String()).Build()
	require.NoError(t, err)
	col := c.Columns[0]
	assert.False(t, col.Nullable)
	assert.False(t, col.Unique)
	assert.False(t, col.Ignored)

	// AutoNow timestamps are database-filled, so they parse as nullable.
	s, err := Table("T").PrimaryKey(PK("id")).
		Column(Col("created_at").AutoNow()).
		Column(Col("updated_at").AutoNowUpdate()).
		Build()
	require.NoError(t, err)
	assert.True(t, s.Columns[0].Nullable)
	assert.Equal(t, schema.TypeDateTime, s.Columns[0].Type)
	assert.True(t, s.Columns[1].Nullable)
}

func TestPrimaryKeyVariants(t *testing.T) {
	cases := []struct {
		name string
		pk   *PKBuilder
		want schema.ColType
	}{
		{"default", PK("id"), schema.TypeInteger},
		{"i16", PK("id").I16(), schema.TypeSmallInteger},
		{"i32", PK("id").I32(), schema.TypeInteger},
		{"i64", PK("id").I64(), schema.TypeBigInteger},
		{"uuid", PK("id").Uuid(), schema.TypeUuid},
		{"string", PK("code").String(), schema.TypeString},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := Table("T").PrimaryKey(tc.pk).Build()
			require.NoError(t, err)
			assert.Equal(t, tc.want, s.PrimaryKey.Type)
		})
	}
}

func TestToSnakeCase(t *testing.T) {
	assert.Equal(t, "user_profile", ToSnakeCase("UserProfile"))
	assert.Equal(t, "users", ToSnakeCase("Users"))
	assert.Equal(t, "a_p_i_key", ToSnakeCase("APIKey"))
	assert.Equal(t, "already_snake", ToSnakeCase("already_snake"))
	assert.Equal(t, "", ToSnakeCase(""))
}

func TestCreateStatementExcludesIgnored(t *testing.T) {
	s := Table("Users").
		PrimaryKey(PK("id").I64()).
		Column(Col("email").String().Unique()).
		Column(Col("computed").Float().Ignore()).
		ForeignKey(FK("team_id").References("teams", "id")).
		Index(Idx("idx_users_email", "email").Unique()).
		MustBuild()

	sql := CreateStatement(s).SQL()
	assert.Contains(t, sql, `CREATE TABLE IF NOT EXISTS "users"`)
	assert.Contains(t, sql, `"id" bigint NOT NULL`)
	assert.Contains(t, sql, `"email" varchar NOT NULL UNIQUE`)
	assert.NotContains(t, sql, "computed")
	assert.Contains(t, sql, `REFERENCES "teams" ("id")`)
	assert.Contains(t, sql, `CREATE UNIQUE INDEX "idx_users_email"`)
}

func TestBindings(t *testing.T) {
	s := Table("Users").
		PrimaryKey(PK("id").I64()).
		Column(Col("email").String()).
		Column(Col("joined_at").Timestamp().Nullable()).
		Column(Col("computed").Float().Ignore()).
		MustBuild()

	b := Bindings(s)
	require.Len(t, b, 4)
	assert.Equal(t, FieldBinding{Column: "id", GoType: "int64", Label: "Id"}, b[0])
	assert.Equal(t, "string", b[1].GoType)
	assert.Equal(t, "time.Time", b[2].GoType)
	assert.True(t, b[2].Optional)
	// Ignored columns stay visible to the binding layer.
	assert.Equal(t, "computed", b[3].Column)
	assert.Equal(t, "float32", b[3].GoType)
}

func TestFormatLabel(t *testing.T) {
	assert.Equal(t, "Team Id", FormatLabel("team_id"))
	assert.Equal(t, "Email", FormatLabel("email"))
	assert.Equal(t, "Created At", FormatLabel("created_at"))
}
