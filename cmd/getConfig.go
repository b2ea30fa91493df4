package cmd

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/vrp/restappender/pkg/config"
)

// ConfigCommand is the entry command for printing the effective appender configuration
func ConfigCommand() *cobra.Command {
	var options appenderOptions

	var createConfigCmd = &cobra.Command{
		Use:   "config",
		Short: "Prints the effective appender configuration as JSON, credentials masked.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			myConfig, err := loadConfig(cmd.Flags(), options)
			if err != nil {
				return err
			}
			return printConfig(myConfig, cmd.OutOrStdout())
		},
	}

	addAppenderFlags(createConfigCmd.Flags(), &options)
	return createConfigCmd
}

func printConfig(myConfig config.Config, out io.Writer) error {
	myConfig.Appender = myConfig.Appender.Masked()

	myConfigJSON, err := config.GetJSON(myConfig)
	if err != nil {
		return errors.Wrap(err, "printing configuration failed")
	}

	_, err = fmt.Fprintln(out, myConfigJSON)
	return err
}
