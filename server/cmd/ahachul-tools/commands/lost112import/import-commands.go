package lost112import

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ahachul/ahachul-backend/common/httpclient"
	"github.com/ahachul/ahachul-backend/server/cmd/ahachul-tools/cli"
	"github.com/ahachul/ahachul-backend/server/cmd/ahachul-tools/commands"
	"github.com/ahachul/ahachul-backend/server/services/lost112"
	"github.com/ahachul/ahachul-backend/server/store/categories"
	"github.com/ahachul/ahachul-backend/server/store/lost_posts"
	"github.com/ahachul/ahachul-backend/server/store/subway_lines"
)

func init() {
	importLost112Cmd.Flags().StringVar(
		&importCmdConfig.feedURL,
		"feed-url",
		"",
		"URL of the Lost112 found item feed")
	importLost112Cmd.Flags().DurationVar(
		&importCmdConfig.timeout,
		"timeout",
		5*time.Minute,
		"Give up on the import after this long")
	importLost112Cmd.MarkFlagRequired("feed-url")

	commands.RootCmd.AddCommand(importRootCmd)
	importRootCmd.AddCommand(importLost112Cmd)
}

var importCmdConfig = struct {
	feedURL string
	timeout time.Duration
}{}

var importRootCmd = &cobra.Command{
	Use:   "import lost112",
	Short: "Imports posts from external sources",
}

var importLost112Cmd = &cobra.Command{
	Use:           "lost112 --feed-url URL",
	Short:         "Runs a single import of the Lost112 found item feed",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), importCmdConfig.timeout)
		defer cancel()

		tool, err := commands.OpenTool(ctx)
		if err != nil {
			return err
		}
		defer tool.Close()

		client := lost112.NewClient(
			lost112.ClientConfig{FeedURL: importCmdConfig.feedURL},
			httpclient.NewClient(httpclient.DefaultConfig(), tool.LogFactory("HTTPClient")),
			tool.LogFactory,
		)
		lost112Service := lost112.NewLost112Service(
			tool.DB,
			lost_posts.NewStore(tool.DB, tool.LogFactory),
			subway_lines.NewStore(tool.DB, tool.LogFactory),
			categories.NewStore(tool.DB, tool.LogFactory),
			client,
			tool.Clock,
			tool.LogFactory,
		)
		imported, err := lost112Service.Import(ctx)
		if err != nil {
			return fmt.Errorf("error importing Lost112 feed: %w", err)
		}
		cli.Stdout.Printf("Imported %d lost posts", imported)
		return nil
	},
}
