package dump

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ahachul/ahachul-backend/server/cmd/ahachul-tools/cli"
	"github.com/ahachul/ahachul-backend/server/cmd/ahachul-tools/commands"
	"github.com/ahachul/ahachul-backend/server/services/subway"
	"github.com/ahachul/ahachul-backend/server/store/categories"
	"github.com/ahachul/ahachul-backend/server/store/stations"
	"github.com/ahachul/ahachul-backend/server/store/subway_lines"
)

func init() {
	commands.RootCmd.AddCommand(dumpRootCmd)
	dumpRootCmd.AddCommand(dumpSubwayCmd)
	dumpRootCmd.AddCommand(dumpCategoriesCmd)
}

var dumpCmdConfig = struct {
	tool *commands.Tool
}{}

var dumpRootCmd = &cobra.Command{
	Use:   "dump subway|categories",
	Short: "Prints reference data from the database as JSON",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		tool, err := commands.OpenTool(context.Background())
		if err != nil {
			return err
		}
		dumpCmdConfig.tool = tool
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if dumpCmdConfig.tool != nil {
			dumpCmdConfig.tool.Close()
			dumpCmdConfig.tool = nil
		}
	},
}

var dumpSubwayCmd = &cobra.Command{
	Use:           "subway",
	Short:         "Prints every subway line with its stations",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		tool := dumpCmdConfig.tool
		subwayService := subway.NewSubwayService(
			tool.DB,
			subway_lines.NewStore(tool.DB, tool.LogFactory),
			stations.NewStore(tool.DB, tool.LogFactory),
			tool.Clock,
			tool.LogFactory,
		)
		lines, err := subwayService.ListLines(context.Background())
		if err != nil {
			return err
		}
		return cli.PrintJSON(lines)
	},
}

var dumpCategoriesCmd = &cobra.Command{
	Use:           "categories",
	Short:         "Prints every lost item category",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		tool := dumpCmdConfig.tool
		categoryStore := categories.NewStore(tool.DB, tool.LogFactory)
		all, err := categoryStore.ListAll(context.Background(), nil)
		if err != nil {
			return err
		}
		return cli.PrintJSON(all)
	},
}
