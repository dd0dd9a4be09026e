package admin

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ahachul/ahachul-backend/common/gerror"
	"github.com/ahachul/ahachul-backend/common/models"
	"github.com/ahachul/ahachul-backend/server/cmd/ahachul-tools/cli"
	"github.com/ahachul/ahachul-backend/server/cmd/ahachul-tools/commands"
	"github.com/ahachul/ahachul-backend/server/services/member"
	"github.com/ahachul/ahachul-backend/server/store/members"
)

func init() {
	adminSuspendCmd.Flags().BoolVarP(
		&adminCmdConfig.skipConfirmation,
		"skip-confirmation",
		"",
		false,
		"Skip interactive confirmation and automatically answer Yes to confirmation questions")

	commands.RootCmd.AddCommand(adminRootCmd)
	adminRootCmd.AddCommand(adminSuspendCmd)
	adminRootCmd.AddCommand(adminShowCmd)
}

var adminCmdConfig = struct {
	skipConfirmation bool
	tool             *commands.Tool
	memberService    *member.MemberService
}{}

var adminRootCmd = &cobra.Command{
	Use:   "admin suspend|show",
	Short: "Perform moderation operations on members.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		tool, err := commands.OpenTool(context.Background())
		if err != nil {
			return err
		}
		adminCmdConfig.tool = tool
		// go through the member service so suspensions are logged the same way as from the API
		adminCmdConfig.memberService = member.NewMemberService(
			tool.DB,
			members.NewStore(tool.DB, tool.LogFactory),
			tool.Clock,
			tool.LogFactory,
		)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if adminCmdConfig.tool != nil {
			adminCmdConfig.tool.Close()
			adminCmdConfig.tool = nil
		}
	},
}

func parseMemberID(arg string) (models.MemberID, error) {
	id, err := models.ParseResourceID(arg)
	if err != nil || !id.Valid() {
		return models.MemberID{}, fmt.Errorf("error: %q is not a valid member id", arg)
	}
	return models.MemberIDFromResourceID(id), nil
}

var adminShowCmd = &cobra.Command{
	Use:           "show member-id",
	Short:         "Prints the member with the given id.",
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseMemberID(args[0])
		if err != nil {
			return err
		}
		m, err := adminCmdConfig.memberService.Read(context.Background(), nil, id)
		if err != nil {
			if gerror.IsNotFound(err) {
				return fmt.Errorf("error: member %s not found", id)
			}
			return err
		}
		return cli.PrintJSON(m)
	},
}

var adminSuspendCmd = &cobra.Command{
	Use:           "suspend member-id",
	Short:         "Suspends a member so they can no longer sign in or post.",
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseMemberID(args[0])
		if err != nil {
			return err
		}
		if !cli.AskForConfirmation(fmt.Sprintf("Suspend member %s?", id), adminCmdConfig.skipConfirmation) {
			cli.Stdout.Printf("Suspension cancelled.")
			return nil
		}
		m, err := adminCmdConfig.memberService.Suspend(context.Background(), nil, id)
		if err != nil {
			if gerror.IsNotFound(err) {
				return fmt.Errorf("error: member %s not found", id)
			}
			return err
		}
		cli.Stdout.Printf("Member %s is %s", m.ID, m.Status)
		return nil
	},
}
