package database

import (
	"context"
	"regexp"
	"testing"
	"testing/fstest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateAppliesPendingInOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	fsys := fstest.MapFS{
		"m/0002_b.sql": {Data: []byte("CREATE TABLE b (id INT);\nCREATE INDEX ib ON b (id);")},
		"m/0001_a.sql": {Data: []byte("CREATE TABLE a (id INT)")},
		"m/README.md":  {Data: []byte("ignored")},
	}

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS schema_migrations")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	count := regexp.QuoteMeta("SELECT COUNT(1) FROM schema_migrations WHERE version = ?")
	record := regexp.QuoteMeta("INSERT INTO schema_migrations (version) VALUES (?)")

	mock.ExpectQuery(count).WithArgs("0001_a").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))
	mock.ExpectQuery(count).WithArgs("0002_b").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE b (id INT)")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("CREATE INDEX ib ON b (id)")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(record).WithArgs("0002_b").WillReturnResult(sqlmock.NewResult(1, 1))

	applied, err := migrate(context.Background(), db, fsys, "m")
	require.NoError(t, err)
	assert.Equal(t, []string{"0002_b"}, applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmbeddedMigrationsCoverEveryTable(t *testing.T) {
	for _, table := range []string{"listings", "profiles", "favorites", "reviews", "review_votes", "inquiries"} {
		found := false
		entries, err := migrationFS.ReadDir("migrations")
		require.NoError(t, err)
		for _, e := range entries {
			b, err := migrationFS.ReadFile("migrations/" + e.Name())
			require.NoError(t, err)
			if regexp.MustCompile(`CREATE TABLE IF NOT EXISTS ` + table + ` \(`).Match(b) {
				found = true
			}
		}
		assert.True(t, found, "no migration creates %s", table)
	}
}

func TestSplitStatements(t *testing.T) {
	assert.Equal(t, []string{"A", "B"}, splitStatements(" A ;\n\nB;\n"))
	assert.Empty(t, splitStatements("  ;  "))
}
