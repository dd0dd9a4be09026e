package migrations_test

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ahachul/ahachul-backend/common/logger"
	"github.com/ahachul/ahachul-backend/server/store"
	"github.com/ahachul/ahachul-backend/server/store/migrations"
	"github.com/ahachul/ahachul-backend/server/store/store_test"
)

const inMemorySqliteConnectionString = store.DatabaseConnectionString("file:migrations_test?mode=memory&cache=shared&_foreign_keys=1")

var migrationTestData = migrations.MigrationSet{
	{
		SequenceNumber: 1,
		Name:           "create_test_lines",
		UpSQL: `CREATE TABLE IF NOT EXISTS test_lines
				(
					line_id {{ .IntegerPrimaryKey}},
					line_name text NOT NULL,
					line_created_at timestamp without time zone NOT NULL,
					line_map {{ .Binary}}
				);
				CREATE UNIQUE INDEX IF NOT EXISTS test_lines_name_unique_index ON test_lines(line_name);`,
		DownSQL: `DROP TABLE test_lines;`,
	},
	{
		SequenceNumber: 2,
		Name:           "create_test_stations",
		UpSQL: `CREATE TABLE test_stations
				(
				   station_id {{ .IntegerPrimaryKey}},
				   station_line_id {{ .BigInt}} NOT NULL REFERENCES test_lines (line_id) ON UPDATE NO ACTION ON DELETE CASCADE
				);`,
		DownSQL: `DROP TABLE test_stations;`,
	},
	{
		SequenceNumber: 3,
		Name:           "alter_test_stations",
		UpSQL:          `ALTER TABLE test_stations ADD station_name text;`,
		DownSQL:        `ALTER TABLE test_stations DROP COLUMN station_name;`,
	},
}

func newLogFactory(t *testing.T) logger.LogFactory {
	logRegistry, err := logger.NewLogRegistry("")
	require.NoError(t, err)
	return logger.MakeLogrusLogFactoryStdOut(logRegistry)
}

func TestMigrations(t *testing.T) {
	logFactory := newLogFactory(t)

	t.Run("sqlite-in-memory", testMigrationsForDB(store.Sqlite, inMemorySqliteConnectionString, false, logFactory))

	database, cleanup, err := store_test.ConnectAndOptionallyMigrate(false, logFactory)
	require.NoError(t, err)
	defer cleanup()
	t.Run("default-test-database", testMigrationsForDB(database.Driver, database.ConnectionString, true, logFactory))
}

func testMigrationsForDB(
	driver store.DBDriver,
	connectionString store.DatabaseConnectionString,
	expectFailAfterForce bool,
	logFactory logger.LogFactory,
) func(t *testing.T) {
	return func(t *testing.T) {
		ctx := context.Background()
		migrationRunner := migrations.NewGolangMigrateRunner(migrationTestData, logFactory)

		require.NoError(t, migrationRunner.Up(ctx, driver, connectionString))
		// A second run has nothing to do
		require.NoError(t, migrationRunner.Up(ctx, driver, connectionString))
		require.NoError(t, migrationRunner.Down(ctx, driver, connectionString))
		require.NoError(t, migrationRunner.Up(ctx, driver, connectionString))
		require.NoError(t, migrationRunner.Goto(ctx, driver, connectionString, 2))
		require.NoError(t, migrationRunner.Goto(ctx, driver, connectionString, 1))

		// The schema is really at version 1, so going down from a forced 3 runs down migrations for
		// changes that were never applied. Sqlite in-memory databases tolerate this.
		require.NoError(t, migrationRunner.Force(ctx, driver, connectionString, 3))
		err := migrationRunner.Down(ctx, driver, connectionString)
		if expectFailAfterForce {
			require.Error(t, err)
		} else {
			require.NoError(t, err)
		}

		require.NoError(t, migrationRunner.Force(ctx, driver, connectionString, 1))
		require.NoError(t, migrationRunner.Down(ctx, driver, connectionString))
		require.NoError(t, migrationRunner.Up(ctx, driver, connectionString))
	}
}

func TestMigrationTemplating(t *testing.T) {
	t.Run("Sqlite", testMigrationTemplating(migrations.NewSqliteDialectTemplate(), "AUTOINCREMENT"))
	t.Run("Postgres", testMigrationTemplating(migrations.NewPostgresDialectTemplate(), "BIGSERIAL"))
}

func testMigrationTemplating(dialectTemplate *migrations.DialectTemplate, expectedPrimaryKey string) func(t *testing.T) {
	return func(t *testing.T) {
		migrationRunner := migrations.NewServerGolangMigrateRunner(newLogFactory(t))

		inMemoryFS, err := migrationRunner.ProduceMigrationFiles(dialectTemplate)
		require.NoError(t, err)

		var upFiles int
		err = fs.WalkDir(inMemoryFS, "migrations", func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() || !strings.HasSuffix(path, ".up.sql") {
				return err
			}
			upFiles++
			data, err := fs.ReadFile(inMemoryFS, path)
			if err != nil {
				return err
			}
			require.NotContains(t, string(data), "{{", "untemplated SQL in %s", path)
			require.Contains(t, string(data), expectedPrimaryKey, "primary key missing in %s", path)
			return nil
		})
		require.NoError(t, err)
		require.Equal(t, len(migrations.ServerMigrations), upFiles)
	}
}

// TestServerMigrations runs the server migrations up, down and up again against the default test database.
func TestServerMigrations(t *testing.T) {
	logFactory := newLogFactory(t)
	ctx := context.Background()

	database, cleanup, err := store_test.ConnectAndOptionallyMigrate(true, logFactory)
	require.NoError(t, err)
	defer cleanup()

	migrationRunner := migrations.NewServerGolangMigrateRunner(logFactory)
	require.NoError(t, migrationRunner.Up(ctx, database.Driver, database.ConnectionString))
	require.NoError(t, migrationRunner.Down(ctx, database.Driver, database.ConnectionString))
	require.NoError(t, migrationRunner.Up(ctx, database.Driver, database.ConnectionString))
}
