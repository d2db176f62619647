package cmd

import (
	"github.com/spf13/cobra"

	"github.com/opendatateam/ucli/internal/commands"
)

// dispatchCmd represents the CSV driven transfer command
var dispatchCmd = &cobra.Command{
	Use:   "dispatch <csvfile>",
	Short: "Dispatch datasets to organizations given a CSV file",
	Long: `Transfer the items listed in a CSV file, one transfer per row.

The CSV delimiter is detected from the file content. You are asked
which column holds the item identifiers and which one holds the
recipients, then for the item and recipient types.

Rows that cannot be processed (unknown item, unknown recipient, item
already owned by the recipient organization) are reported and skipped.

Examples:
  # Preview what would be transferred
  ucli dispatch transfers.csv --dryrun

  # Skip the confirmation prompt
  ucli dispatch transfers.csv -f`,
	Args: cobra.ExactArgs(1),
	RunE: runDispatch,
}

func init() {
	dispatchCmd.Flags().BoolP("dryrun", "d", false, "resolve every row without transferring anything")
	dispatchCmd.Flags().BoolP("force", "f", false, "do not ask for confirmation")
	rootCmd.AddCommand(dispatchCmd)
}

func runDispatch(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dryrun")
	force, _ := cmd.Flags().GetBool("force")

	_, err := commands.Dispatch(cmd.Context(), newEnv(cmd), commands.DispatchOptions{
		Path:   args[0],
		DryRun: dryRun,
		Force:  force,
	})
	return err
}
