package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opendatateam/ucli/internal/commands"
	"github.com/opendatateam/ucli/internal/models"
)

// datasetsCmd represents the datasets command group
var datasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "Datasets related operations",
	Long: `Datasets related operations.

Available subcommands:
  delete - Delete the datasets listed in a CSV file`,
}

// reusesCmd represents the reuses command group
var reusesCmd = &cobra.Command{
	Use:   "reuses",
	Short: "Reuses related operations",
	Long: `Reuses related operations.

Available subcommands:
  delete - Delete the reuses listed in a CSV file`,
}

func init() {
	datasetsCmd.AddCommand(newDeleteCmd(models.ItemDataset))
	reusesCmd.AddCommand(newDeleteCmd(models.ItemReuse))
	rootCmd.AddCommand(datasetsCmd, reusesCmd)
}

// newDeleteCmd builds the bulk delete subcommand for one item type
func newDeleteCmd(itemType models.ItemType) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <csvfile>",
		Short: fmt.Sprintf("Delete the %s listed in a CSV file", itemType.Plural()),
		Long: fmt.Sprintf(`Delete every %[1]s whose identifier is listed in a CSV file.

The file must be comma separated with a header row. Identifiers are
read from the "id" column unless --column names another one.

Already deleted and unknown %[2]s are reported, any other failure is
logged with the server message. The loop never stops on a failing row.

Example:
  ucli %[2]s delete to-delete.csv --column %[1]s_id`, itemType.Label(), itemType.Plural()),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			column, _ := cmd.Flags().GetString("column")
			_, err := commands.Delete(cmd.Context(), newEnv(cmd), commands.DeleteOptions{
				Path:     args[0],
				Column:   column,
				ItemType: itemType,
			})
			return err
		},
	}
	cmd.Flags().String("column", commands.DefaultIDColumn, "the column holding the identifiers")
	return cmd
}
