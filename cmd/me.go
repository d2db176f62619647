package cmd

import (
	"github.com/spf13/cobra"

	"github.com/opendatateam/ucli/internal/commands"
)

// meCmd represents the me command
var meCmd = &cobra.Command{
	Use:   "me",
	Short: "Display my user information",
	Long: `Display the user owning the API key: name, identifier, email,
roles and organizations.

Examples:
  ucli me
  ucli me --output json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := outputFormat(cmd)
		if err != nil {
			return err
		}
		return commands.Me(cmd.Context(), newEnv(cmd), format)
	},
}

func init() {
	addOutputFlag(meCmd)
	rootCmd.AddCommand(meCmd)
}

func addOutputFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", string(commands.OutputText), "output format (text, json, yaml)")
}

func outputFormat(cmd *cobra.Command) (commands.OutputFormat, error) {
	value, err := cmd.Flags().GetString("output")
	if err != nil {
		return "", err
	}
	return commands.ParseOutputFormat(value)
}
