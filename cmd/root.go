/*
Copyright © 2025 uData Contributors

ucli is a command-line client for uData catalog instances.
*/
package cmd

import (
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/opendatateam/ucli/internal/commands"
	"github.com/opendatateam/ucli/internal/lib"
	"github.com/opendatateam/ucli/internal/models"
	"github.com/opendatateam/ucli/internal/services"
	"github.com/opendatateam/ucli/internal/ui"
)

var (
	// Global flags
	cfgFile    string
	noSSLCheck bool
	noProgress bool

	// Set up once per invocation by setupClient
	logger    *lib.Logger
	apiClient *services.Client
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ucli",
	Short: "uData remote client",
	Long: `ucli talks to a uData instance through its JSON API.

It authenticates with your API key and offers administrative commands:
  - me                 display your user information
  - status             display the instance metrics
  - transfer           move datasets or reuses between users and organizations
  - dispatch           transfer items listed in a CSV file
  - datasets delete    delete datasets listed in a CSV file
  - reuses delete      delete reuses listed in a CSV file

Every flag can be set through the environment with the UDATA_ prefix
(UDATA_URL, UDATA_TOKEN, UDATA_VERBOSE, UDATA_SSL_CHECK, UDATA_LOG_FILE).

Example:
  export UDATA_URL=https://www.data.gouv.fr
  export UDATA_TOKEN=<your API key>
  ucli me`,
	Version:           "0.1.0",
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setupClient,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Close()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if code := execute(); code != 0 {
		os.Exit(code)
	}
}

// execute runs the command tree and maps any error to an exit status
func execute() int {
	err := rootCmd.Execute()
	if err != nil {
		reportError(rootCmd.ErrOrStderr(), err)
	}
	return lib.ExitCode(err)
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ./ucli.yaml, ~/.config/ucli/ucli.yaml)")
	flags.String("url", models.DefaultURL, "the uData instance URL")
	flags.String("token", "", "your uData API key")
	flags.BoolP("verbose", "v", false, "verbose output")
	flags.Bool("ssl-check", true, "validate TLS certificates")
	flags.BoolVar(&noSSLCheck, "no-ssl-check", false, "disable TLS validation (for testing purpose)")
	flags.String("log-file", "", "also write a rotating log file")
	flags.BoolVar(&noProgress, "no-progress", false, "disable progress indicators")

	_ = viper.BindPFlag(services.KeyURL, flags.Lookup("url"))
	_ = viper.BindPFlag(services.KeyToken, flags.Lookup("token"))
	_ = viper.BindPFlag(services.KeyVerbose, flags.Lookup("verbose"))
	_ = viper.BindPFlag(services.KeySSLCheck, flags.Lookup("ssl-check"))
	_ = viper.BindPFlag(services.KeyLogFile, flags.Lookup("log-file"))

	rootCmd.SetVersionTemplate("ucli version {{.Version}}\n")
}

// setupClient loads the configuration and builds the logger and API client
func setupClient(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "completion" || cmd.Name() == "help" || cmd.Name() == cobra.ShellCompRequestCmd {
		return nil
	}

	config, err := services.LoadConfig(viper.GetViper(), cfgFile)
	if err != nil {
		return err
	}
	if noSSLCheck {
		config.SSLCheck = false
	}

	level := lib.LogLevelInfo
	if config.Verbose {
		level = lib.LogLevelDebug
	}
	logger = lib.NewLoggerWithWriters(level, cmd.OutOrStdout(), cmd.ErrOrStderr()).WithFile(config.LogFile, 0)
	apiClient = services.NewClient(*config, logger)

	logger.Debug("Using uData instance",
		"root", apiClient.Root(),
		"config_file", services.ConfigFileUsed(viper.GetViper()),
		"ssl_check", config.SSLCheck,
	)
	if !config.SSLCheck {
		logger.Warn("TLS certificate validation is disabled")
	}
	return nil
}

// newEnv assembles the collaborators handed to command handlers
func newEnv(cmd *cobra.Command) *commands.Env {
	out := ui.NewPrinter(cmd.OutOrStdout())
	return &commands.Env{
		API:          apiClient,
		Prompt:       ui.NewPrompter(cmd.InOrStdin(), out),
		Out:          out,
		Logger:       logger,
		ShowProgress: !noProgress && isTerminal(os.Stderr),
		ProgressOut:  os.Stderr,
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// reportError prints a fatal error the way the rest of the CLI prints failures
func reportError(w io.Writer, err error) {
	cliErr := lib.ClassifyError(err)
	message, rest, _ := strings.Cut(strings.TrimRight(cliErr.UserMessage(), "\n"), "\n")
	ui.NewPrinter(w).Error(message, rest)
}
