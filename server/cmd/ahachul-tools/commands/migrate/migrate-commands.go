package migrate

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ahachul/ahachul-backend/server/cmd/ahachul-tools/cli"
	"github.com/ahachul/ahachul-backend/server/cmd/ahachul-tools/commands"
	"github.com/ahachul/ahachul-backend/server/store"
	"github.com/ahachul/ahachul-backend/server/store/migrations"
)

func init() {
	migrateRootCmd.PersistentFlags().BoolVarP(
		&migrateCmdConfig.skipConfirmation,
		"skip-confirmation",
		"",
		false,
		"Skip interactive confirmation and automatically answer Yes to confirmation questions")

	commands.RootCmd.AddCommand(migrateRootCmd)
	migrateRootCmd.AddCommand(migrateUpCmd)
	migrateRootCmd.AddCommand(migrateDownCmd)
	migrateRootCmd.AddCommand(migrateGotoCmd)
	migrateRootCmd.AddCommand(migrateForceCmd)
}

var migrateCmdConfig = struct {
	skipConfirmation bool
	migrationRunner  store.MigrationRunner
}{}

var migrateRootCmd = &cobra.Command{
	Use:   "migrate up|down|goto|force",
	Short: "Migrates the database up to the latest version, down to empty, or to a specific version number",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logFactory, err := commands.LogFactory()
		if err != nil {
			return err
		}
		migrateCmdConfig.migrationRunner = migrations.NewServerGolangMigrateRunner(logFactory)
		return nil
	},
}

func parseVersion(arg string) (uint, error) {
	version, err := strconv.Atoi(arg)
	if err != nil || version <= 0 {
		return 0, fmt.Errorf("error: version must be a valid number")
	}
	return uint(version), nil
}

var migrateUpCmd = &cobra.Command{
	Use:           "up",
	Short:         "Migrates the database up to the latest version",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		config := commands.DatabaseConfig()
		err := migrateCmdConfig.migrationRunner.Up(context.Background(), config.Driver, config.ConnectionString)
		if err != nil {
			return fmt.Errorf("error running 'up' migration: %w", err)
		}
		cli.Stdout.Printf("Database migrated to the latest version")
		return nil
	},
}

var migrateDownCmd = &cobra.Command{
	Use:           "down",
	Short:         "Migrates the database down to being empty",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cli.AskForConfirmation("Running a Down migration will remove ALL posts, members and comments from this database. Are you sure?", migrateCmdConfig.skipConfirmation) {
			cli.Stdout.Printf("Down migration cancelled.")
			return nil
		}
		config := commands.DatabaseConfig()
		err := migrateCmdConfig.migrationRunner.Down(context.Background(), config.Driver, config.ConnectionString)
		if err != nil {
			return fmt.Errorf("error running 'down' migration: %w", err)
		}
		return nil
	},
}

var migrateGotoCmd = &cobra.Command{
	Use:           "goto V",
	Short:         "Migrates the database up or down as required to be at specific version V",
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		version, err := parseVersion(args[0])
		if err != nil {
			return err
		}
		if !cli.AskForConfirmation("Running a Goto migration will sometimes REMOVE data from this database. Are you sure?", migrateCmdConfig.skipConfirmation) {
			cli.Stdout.Printf("Goto migration cancelled.")
			return nil
		}
		config := commands.DatabaseConfig()
		err = migrateCmdConfig.migrationRunner.Goto(context.Background(), config.Driver, config.ConnectionString, version)
		if err != nil {
			return fmt.Errorf("error running 'goto' migration: %w", err)
		}
		return nil
	},
}

var migrateForceCmd = &cobra.Command{
	Use:           "force V",
	Short:         "Marks the database as being clean and in version V, but don't run migrations",
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		version, err := parseVersion(args[0])
		if err != nil {
			return err
		}
		if !cli.AskForConfirmation("Running a Force migration should only be performed after the database has been manually checked and fixed. Are you sure?", migrateCmdConfig.skipConfirmation) {
			cli.Stdout.Printf("Force migration cancelled.")
			return nil
		}
		config := commands.DatabaseConfig()
		err = migrateCmdConfig.migrationRunner.Force(context.Background(), config.Driver, config.ConnectionString, version)
		if err != nil {
			return fmt.Errorf("error running 'force' operation: %w", err)
		}
		return nil
	},
}
