package generate

import (
	"go/parser"
	"go/token"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemaforge/schemaforge/internal/extract"
	"github.com/schemaforge/schemaforge/internal/paths"
	"github.com/schemaforge/schemaforge/pkg/schema"
)

func testGenerator(t *testing.T) *Generator {
	t.Helper()
	return &Generator{
		MigrationsDir: t.TempDir(),
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func usersSchema() *schema.Schema {
	return &schema.Schema{
		TableName:  "users",
		PrimaryKey: &schema.Column{Name: "id", Type: schema.TypeInteger},
		Columns: []schema.Column{
			{Name: "username", Type: schema.TypeString, Unique: true},
			{Name: "bio", Type: schema.TypeText, Nullable: true},
			{Name: "computed", Type: schema.TypeString, Ignored: true},
		},
		ForeignKeys: []schema.ForeignKey{
			{FromColumn: "team_id", ToTable: "teams", ToColumn: "id", OnDelete: schema.Cascade, OnUpdate: schema.NoAction},
		},
		Indexes: []schema.Index{
			{Name: "idx_users_username", Columns: []string{"username"}, Unique: true},
		},
	}
}

// upSection / downSection split a rendered migration for targeted
// assertions.
func upSection(src string) string {
	start := strings.Index(src, ") Up(")
	end := strings.Index(src, ") Down(")
	if start < 0 || end < 0 {
		return src
	}
	return src[start:end]
}

func downSection(src string) string {
	start := strings.Index(src, ") Down(")
	if start < 0 {
		return src
	}
	return src[start:]
}

func mustParse(t *testing.T, src string) {
	t.Helper()
	fset := token.NewFileSet()
	_, err := parser.ParseFile(fset, "generated.go", src, parser.SkipObjectResolution)
	require.NoError(t, err, "generated source must parse:\n%s", src)
}

func TestRenderCreate(t *testing.T) {
	out, err := RenderCreate(usersSchema(), "migrations", "m20240101_120000_create_users_table")
	require.NoError(t, err)
	mustParse(t, out)

	assert.Contains(t, out, `Table("users")`)
	assert.Contains(t, out, "CreateTable")
	assert.Contains(t, out, "DropTable")

	up := upSection(out)
	assert.Contains(t, up, `ddl.Column("id").Integer().NotNull().AutoIncrement().PrimaryKey()`)
	assert.Contains(t, up, `ddl.Column("username").String().NotNull().Unique()`)
	assert.Contains(t, up, `ddl.Column("bio").Text().Null()`)
	assert.NotContains(t, out, `"computed"`)

	assert.Contains(t, up, "CreateForeignKey")
	assert.Contains(t, up, `From("users", "team_id")`)
	assert.Contains(t, up, "OnDelete(ddl.Cascade)")
	assert.NotContains(t, up, "OnUpdate", "NoAction is the default and is not rendered")
	assert.Contains(t, up, "CreateIndex")
	assert.Contains(t, up, `Name("idx_users_username")`)
	assert.Contains(t, up, "Unique()")

	down := downSection(out)
	assert.Contains(t, down, "DropForeignKey")
	assert.Contains(t, down, `FKName("users", "team_id")`)
	assert.Contains(t, down, "DropIndex")
}

func TestRenderCreateUuidKeyHasNoAutoIncrement(t *testing.T) {
	s := &schema.Schema{
		TableName:  "sessions",
		PrimaryKey: &schema.Column{Name: "id", Type: schema.TypeUuid},
	}
	out, err := RenderCreate(s, "snapshots", "snapshot_sessions")
	require.NoError(t, err)
	mustParse(t, out)
	assert.Contains(t, out, `ddl.Column("id").Uuid().NotNull().PrimaryKey()`)
	assert.NotContains(t, out, "AutoIncrement")
}

func TestRenderAlterAddColumn(t *testing.T) {
	ch := schema.Changes{
		TableName:    "users",
		AddedColumns: []schema.Column{{Name: "is_active", Type: schema.TypeBoolean}},
	}
	out, err := RenderAlter(ch, usersSchema(), "users", "m20240101_120000_alter_users_table")
	require.NoError(t, err)
	mustParse(t, out)

	up := upSection(out)
	assert.Contains(t, up, `AddColumn(ddl.Column("is_active").Boolean().NotNull())`)
	down := downSection(out)
	assert.Contains(t, down, `DropColumn("is_active")`)
}

func TestRenderAlterDropColumnRestoresOldDefinition(t *testing.T) {
	ch := schema.Changes{
		TableName:      "users",
		DroppedColumns: []string{"bio"},
	}
	out, err := RenderAlter(ch, usersSchema(), "users", "m20240101_120000_alter_users_table")
	require.NoError(t, err)
	mustParse(t, out)

	up := upSection(out)
	assert.Contains(t, up, `DropColumn("bio")`)
	down := downSection(out)
	assert.Contains(t, down, `AddColumn(ddl.Column("bio").Text().Null())`)
}

func TestRenderAlterNullableChangeUsesModify(t *testing.T) {
	ch := schema.Changes{
		TableName: "users",
		ModifiedColumns: []schema.ModifiedColumn{{
			Old: schema.Column{Name: "bio", Type: schema.TypeText, Nullable: true},
			New: schema.Column{Name: "bio", Type: schema.TypeText, Nullable: false},
		}},
	}
	out, err := RenderAlter(ch, usersSchema(), "users", "m20240101_120000_alter_users_table")
	require.NoError(t, err)
	mustParse(t, out)

	up := upSection(out)
	assert.Contains(t, up, `ModifyColumn(ddl.Column("bio").Text().NotNull())`)
	down := downSection(out)
	assert.Contains(t, down, `ModifyColumn(ddl.Column("bio").Text().Null())`)
}

func TestRenderAlterTypeChangeIsWarningComment(t *testing.T) {
	ch := schema.Changes{
		TableName: "users",
		ModifiedColumns: []schema.ModifiedColumn{{
			Old: schema.Column{Name: "age", Type: schema.TypeInteger},
			New: schema.Column{Name: "age", Type: schema.TypeBigInteger},
		}},
	}
	out, err := RenderAlter(ch, usersSchema(), "users", "m20240101_120000_alter_users_table")
	require.NoError(t, err)
	mustParse(t, out)

	assert.Contains(t, out, "WARNING")
	assert.Contains(t, out, "Manual migration required")
	assert.NotContains(t, upSection(out), "ModifyColumn")
}

func TestRenderAlterFKDropPlusAdd(t *testing.T) {
	fkOld := schema.ForeignKey{FromColumn: "team_id", ToTable: "teams", ToColumn: "id"}
	fkNew := schema.ForeignKey{FromColumn: "team_id", ToTable: "groups", ToColumn: "id"}
	ch := schema.Changes{
		TableName:  "users",
		AddedFKs:   []schema.ForeignKey{fkNew},
		DroppedFKs: []schema.ForeignKey{fkOld},
	}
	out, err := RenderAlter(ch, usersSchema(), "users", "m20240101_120000_alter_users_table")
	require.NoError(t, err)
	mustParse(t, out)

	up := upSection(out)
	assert.Contains(t, up, "DropForeignKey")
	assert.Contains(t, up, `To("groups", "id")`)
	down := downSection(out)
	assert.Contains(t, down, "CreateForeignKey")
	assert.Contains(t, down, `To("teams", "id")`)
}

func TestWriteCreateAndSnapshot(t *testing.T) {
	g := testGenerator(t)
	s := usersSchema()

	module, err := g.WriteCreate(s, "20240101_120000")
	require.NoError(t, err)
	assert.Equal(t, "m20240101_120000_create_users_table", module)
	require.NoError(t, g.WriteSnapshot(s))

	createSrc, err := os.ReadFile(paths.CreateFile(g.MigrationsDir, "20240101_120000", "users"))
	require.NoError(t, err)
	assert.Contains(t, string(createSrc), "package migrations")
	assert.Contains(t, string(createSrc), "type m20240101_120000_create_users_table struct{}")

	snapSrc, err := os.ReadFile(paths.SnapshotFile(g.MigrationsDir, "users"))
	require.NoError(t, err)
	assert.Contains(t, string(snapSrc), "package snapshots")
	assert.Contains(t, string(snapSrc), "type snapshot_users struct{}")
}

func TestWriteAlterLayout(t *testing.T) {
	g := testGenerator(t)
	ch := schema.Changes{
		TableName:    "users",
		AddedColumns: []schema.Column{{Name: "age", Type: schema.TypeInteger}},
	}
	require.NoError(t, g.WriteAlter(ch, usersSchema(), "20240101_120000"))

	for _, path := range []string{
		paths.AlterFile(g.MigrationsDir, "users", "20240101_120000"),
		paths.BatchUpFile(g.MigrationsDir, "users", "20240101_120000"),
		paths.BatchDownFile(g.MigrationsDir, "users", "20240101_120000"),
	} {
		src, err := os.ReadFile(path)
		require.NoError(t, err, path)
		mustParse(t, string(src))
	}

	up, _ := os.ReadFile(paths.BatchUpFile(g.MigrationsDir, "users", "20240101_120000"))
	assert.Contains(t, string(up), "package up")
	assert.Contains(t, string(up), "func Apply_20240101_120000")
	down, _ := os.ReadFile(paths.BatchDownFile(g.MigrationsDir, "users", "20240101_120000"))
	assert.Contains(t, string(down), "package down")
	assert.Contains(t, string(down), "func Revert_20240101_120000")
}

// Snapshots must survive a trip through the statement front-end with
// every diffable attribute intact, or the next run would see spurious
// changes.
func TestSnapshotRoundTrip(t *testing.T) {
	g := testGenerator(t)
	s := usersSchema()
	require.NoError(t, g.WriteSnapshot(s))

	parsed, err := extract.File(paths.SnapshotFile(g.MigrationsDir, "users"))
	require.NoError(t, err)
	require.NotNil(t, parsed)

	assert.Equal(t, s.TableName, parsed.TableName)
	require.NotNil(t, parsed.PrimaryKey)
	assert.Equal(t, s.PrimaryKey.Name, parsed.PrimaryKey.Name)
	assert.Equal(t, s.PrimaryKey.Type, parsed.PrimaryKey.Type)

	// Ignored columns are not materialized, so the round-trip yields
	// db columns only.
	require.Len(t, parsed.Columns, 2)
	assert.Equal(t, s.Columns[0], parsed.Columns[0])
	assert.Equal(t, s.Columns[1], parsed.Columns[1])
	assert.Equal(t, s.ForeignKeys, parsed.ForeignKeys)
	assert.Equal(t, s.Indexes, parsed.Indexes)
}
