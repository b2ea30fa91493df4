package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vrp/restappender/pkg/log"
)

// GeneralConfigOptions contains all global configuration options for the restappender binary
type GeneralConfigOptions struct {
	ConfigFile string
	Verbose    bool
}

// GeneralConfig contains global configuration flags for the restappender binary
var GeneralConfig GeneralConfigOptions

// NewRootCommand creates the restappender command with all sub commands attached
func NewRootCommand() *cobra.Command {
	var rootCmd = &cobra.Command{
		Use:   "restappender",
		Short: "Ships log events as JSON documents to a remote HTTP collector",
		Long: `
The restappender binary forwards log events one at a time to a remote HTTP collector.
Each event is sent synchronously as a JSON document authenticated with HTTP Basic credentials.
`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			log.SetVerbose(GeneralConfig.Verbose)
		},
	}

	rootCmd.AddCommand(SendCommand())
	rootCmd.AddCommand(ConfigCommand())
	rootCmd.AddCommand(VersionCommand())

	rootCmd.PersistentFlags().StringVar(&GeneralConfig.ConfigFile, "config", ".restappender.yml", "Path to the appender configuration file")
	rootCmd.PersistentFlags().BoolVarP(&GeneralConfig.Verbose, "verbose", "v", false, "verbose output")

	return rootCmd
}

// Execute is the starting point of the restappender command line tool
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
