package cmd

import (
	"github.com/spf13/cobra"

	"github.com/opendatateam/ucli/internal/commands"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display current site status",
	Long: `Display the instance title and its public metrics
(datasets, reuses, organizations, users and discussions).

Examples:
  ucli status
  ucli status -o yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := outputFormat(cmd)
		if err != nil {
			return err
		}
		return commands.Status(cmd.Context(), newEnv(cmd), format)
	},
}

func init() {
	addOutputFlag(statusCmd)
	rootCmd.AddCommand(statusCmd)
}
