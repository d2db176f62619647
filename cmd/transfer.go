package cmd

import (
	"github.com/spf13/cobra"

	"github.com/opendatateam/ucli/internal/commands"
)

// transferCmd represents the interactive transfer command
var transferCmd = &cobra.Command{
	Use:   "transfer",
	Short: "Massive datasets or reuses transfer",
	Long: `Transfer every dataset or reuse owned by a user or an organization
to another user or organization.

The command asks for:
  • the kind of item to transfer
  • where to transfer from (yourself, one of your organizations, or,
    for administrators, any user or organization)
  • the recipient, found through the suggest API
  • the transfer reason

Each transfer is requested then immediately accepted. Items already
owned by the target organization are skipped.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := commands.Transfer(cmd.Context(), newEnv(cmd))
		return err
	},
}

func init() {
	rootCmd.AddCommand(transferCmd)
}
