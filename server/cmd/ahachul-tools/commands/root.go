package commands

import (
	"context"
	"fmt"

	"github.com/benbjohnson/clock"
	"github.com/spf13/cobra"

	"github.com/ahachul/ahachul-backend/common/logger"
	"github.com/ahachul/ahachul-backend/common/version"
	"github.com/ahachul/ahachul-backend/server/cmd/ahachul-tools/cli"
	"github.com/ahachul/ahachul-backend/server/store"
)

const defaultSQLiteConnectionString = "file:/var/lib/ahachul/db/sqlite.db?cache=shared&_foreign_keys=1"

type GlobalConfig struct {
	Debug                    bool
	DatabaseDriver           string
	DatabaseConnectionString string
}

var Global = &GlobalConfig{}

func init() {
	RootCmd.PersistentFlags().BoolVarP(
		&Global.Debug,
		"debug",
		"d",
		false,
		"Enable debug-level log output.")
	RootCmd.PersistentFlags().StringVar(
		&Global.DatabaseDriver,
		"driver",
		string(store.Sqlite),
		"The Database Driver to use (i.e sqlite3|postgres)")
	RootCmd.PersistentFlags().StringVar(
		&Global.DatabaseConnectionString,
		"connection",
		defaultSQLiteConnectionString,
		"The connection string for the database")
}

// Execute adds all child commands to the root command sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cli.Exit(RootCmd.Execute())
}

// DatabaseConfig returns the database selected by the global flags.
func DatabaseConfig() store.DatabaseConfig {
	return store.DatabaseConfig{
		ConnectionString:   store.DatabaseConnectionString(Global.DatabaseConnectionString),
		Driver:             store.DBDriver(Global.DatabaseDriver),
		MaxIdleConnections: store.DefaultDatabaseMaxIdleConnections,
		MaxOpenConnections: store.DefaultDatabaseMaxOpenConnections,
	}
}

// LogFactory returns a plain log factory for command output, at debug level if --debug was set.
func LogFactory() (logger.LogFactory, error) {
	levels := logger.LogLevelConfig("*=warning")
	if Global.Debug {
		levels = "*=debug"
	}
	logRegistry, err := logger.NewLogRegistry(levels)
	if err != nil {
		return nil, err
	}
	return logger.MakeLogrusLogFactoryStdOutPlain(logRegistry), nil
}

// Tool bundles what every data command needs. The database is opened without running migrations;
// run 'ahachul-tools migrate up' first.
type Tool struct {
	DB         *store.DB
	LogFactory logger.LogFactory
	Clock      clock.Clock
	cleanup    func()
}

func OpenTool(ctx context.Context) (*Tool, error) {
	logFactory, err := LogFactory()
	if err != nil {
		return nil, err
	}
	config := DatabaseConfig()
	db, cleanup, err := store.NewDatabase(ctx, config, nil)
	if err != nil {
		return nil, fmt.Errorf("error opening %s database: %w", config.Driver, err)
	}
	return &Tool{
		DB:         db,
		LogFactory: logFactory,
		Clock:      clock.New(),
		cleanup:    cleanup,
	}, nil
}

func (t *Tool) Close() {
	if t.cleanup != nil {
		t.cleanup()
		t.cleanup = nil
	}
}

var RootCmd = &cobra.Command{
	Use:     "ahachul-tools command",
	Short:   "Ahachul tools",
	Long:    `Operator tools for the Ahachul backend: database migrations, seeding, imports and admin actions.`,
	Version: version.VersionToString(),
}
