package extract

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemaforge/schemaforge/pkg/schema"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const builderEntity = `package entities

import "github.com/schemaforge/schemaforge/pkg/model"

var Users = model.Table("UserProfile").
	PrimaryKey(model.PK("id").I64()).
	Column(model.Col("username").String().Unique()).
	Column(model.Col("bio").Text().Nullable()).
	Column(model.Col("age").Integer()).
	Column(model.Col("cached_score").Float().Ignore()).
	Column(model.Col("updated_at").AutoNowUpdate()).
	ForeignKey(model.FK("team_id").References("teams", "id").OnDelete(model.Cascade)).
	Index(model.Idx("idx_users_username", "username").Unique()).
	MustBuild()
`

func TestBuilderFrontEnd(t *testing.T) {
	s, err := Parse("users.go", []byte(builderEntity))
	require.NoError(t, err)
	require.NotNil(t, s)

	assert.Equal(t, "user_profile", s.TableName)
	require.NotNil(t, s.PrimaryKey)
	assert.Equal(t, "id", s.PrimaryKey.Name)
	assert.Equal(t, schema.TypeBigInteger, s.PrimaryKey.Type)

	require.Len(t, s.Columns, 5)
	assert.Equal(t, schema.Column{Name: "username", Type: schema.TypeString, Unique: true}, s.Columns[0])
	assert.Equal(t, schema.Column{Name: "bio", Type: schema.TypeText, Nullable: true}, s.Columns[1])
	assert.Equal(t, schema.Column{Name: "age", Type: schema.TypeInteger}, s.Columns[2])
	assert.True(t, s.Columns[3].Ignored)
	assert.Equal(t, schema.Column{Name: "updated_at", Type: schema.TypeDateTime, Nullable: true}, s.Columns[4])

	require.Len(t, s.ForeignKeys, 1)
	fk := s.ForeignKeys[0]
	assert.Equal(t, "team_id", fk.FromColumn)
	assert.Equal(t, "teams", fk.ToTable)
	assert.Equal(t, "id", fk.ToColumn)
	assert.Equal(t, schema.Cascade, fk.OnDelete)
	assert.Equal(t, schema.NoAction, fk.OnUpdate)

	require.Len(t, s.Indexes, 1)
	assert.Equal(t, schema.Index{Name: "idx_users_username", Columns: []string{"username"}, Unique: true}, s.Indexes[0])
}

func TestBuilderTableNameOverride(t *testing.T) {
	src := `package entities

import "github.com/schemaforge/schemaforge/pkg/model"

var Legacy = model.Table("Legacy").
	TableName("legacy_records").
	PrimaryKey(model.PK("id")).
	MustBuild()
`
	s, err := Parse("legacy.go", []byte(src))
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "legacy_records", s.TableName)
	assert.Equal(t, schema.TypeInteger, s.PrimaryKey.Type)
}

const statementEntity = `package migrations

import "github.com/schemaforge/schemaforge/pkg/ddl"

type createPosts struct{}

func (createPosts) Up(mgr *ddl.Manager) error {
	if err := mgr.CreateTable(ddl.Create().
		Table("posts").
		Col(ddl.Column("id").BigInteger().NotNull().AutoIncrement().PrimaryKey()).
		Col(ddl.Column("title").String().NotNull().Unique()).
		Col(ddl.Column("body").Text().Null()).
		ForeignKey(ddl.FK("author_id").References("users", "id").OnDelete(ddl.SetNull)),
	); err != nil {
		return err
	}
	if err := mgr.CreateForeignKey(ddl.CreateFK().
		From("posts", "category_id").
		To("categories", "id").
		OnUpdate(ddl.Restrict),
	); err != nil {
		return err
	}
	return mgr.CreateIndex(ddl.CreateIdx().
		Name("idx_posts_title").
		Table("posts").
		Col("title").
		Unique(),
	)
}

func (createPosts) Down(mgr *ddl.Manager) error {
	return mgr.DropTable(ddl.Drop().Table("posts"))
}
`

func TestStatementFrontEnd(t *testing.T) {
	s, err := Parse("posts.go", []byte(statementEntity))
	require.NoError(t, err)
	require.NotNil(t, s)

	assert.Equal(t, "posts", s.TableName)
	require.NotNil(t, s.PrimaryKey)
	assert.Equal(t, "id", s.PrimaryKey.Name)
	assert.Equal(t, schema.TypeBigInteger, s.PrimaryKey.Type)

	require.Len(t, s.Columns, 2)
	assert.Equal(t, schema.Column{Name: "title", Type: schema.TypeString, Unique: true}, s.Columns[0])
	assert.Equal(t, schema.Column{Name: "body", Type: schema.TypeText, Nullable: true}, s.Columns[1])

	require.Len(t, s.ForeignKeys, 2)
	assert.Equal(t, "author_id", s.ForeignKeys[0].FromColumn)
	assert.Equal(t, schema.SetNull, s.ForeignKeys[0].OnDelete)
	assert.Equal(t, "category_id", s.ForeignKeys[1].FromColumn)
	assert.Equal(t, "categories", s.ForeignKeys[1].ToTable)
	assert.Equal(t, schema.Restrict, s.ForeignKeys[1].OnUpdate)

	require.Len(t, s.Indexes, 1)
	assert.Equal(t, schema.Index{Name: "idx_posts_title", Columns: []string{"title"}, Unique: true}, s.Indexes[0])
}

func TestStatementIndexColumnsStayOutOfSchema(t *testing.T) {
	// Index .Col("x") calls take plain strings and must not be read
	// as column declarations.
	s, err := Parse("posts.go", []byte(statementEntity))
	require.NoError(t, err)
	for _, c := range s.Columns {
		assert.NotEqual(t, "idx_posts_title", c.Name)
	}
}

func TestStatementMissingTableName(t *testing.T) {
	src := `package migrations

import "github.com/schemaforge/schemaforge/pkg/ddl"

type broken struct{}

func (broken) Up(mgr *ddl.Manager) error {
	return mgr.CreateTable(ddl.Create().
		Col(ddl.Column("id").Integer().PrimaryKey()))
}
`
	_, err := Parse("broken.go", []byte(src))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoTableName)
}

func TestUnmatchedFileIsNotFound(t *testing.T) {
	src := `package util

func Add(a, b int) int { return a + b }
`
	s, err := Parse("util.go", []byte(src))
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestScanDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "users.go"), []byte(builderEntity), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "posts.go"), []byte(statementEntity), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "doc.go"), []byte("package entities\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "helpers_test.go"), []byte("package entities\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not go"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "garbled.go"), []byte("package {{{"), 0o644))

	schemas, err := ScanDir(dir, discardLogger())
	require.NoError(t, err)
	require.Len(t, schemas, 2)

	// Lexical scan order.
	assert.Equal(t, "posts", schemas[0].TableName)
	assert.Equal(t, "user_profile", schemas[1].TableName)
}

func TestScanDirDeterministic(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "users.go"), []byte(builderEntity), 0o644))

	first, err := ScanDir(dir, discardLogger())
	require.NoError(t, err)
	second, err := ScanDir(dir, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
