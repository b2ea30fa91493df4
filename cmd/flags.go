package cmd

import (
	"github.com/pkg/errors"
	flag "github.com/spf13/pflag"
	"github.com/vrp/restappender/pkg/appender"
	"github.com/vrp/restappender/pkg/config"
	"github.com/vrp/restappender/pkg/log"
)

type appenderOptions struct {
	restURL       string
	credBasicAuth string
	projectName   string
	moduleName    string
	timeout       string
}

func addAppenderFlags(flags *flag.FlagSet, options *appenderOptions) {
	flags.StringVar(&options.restURL, appender.FieldRestURL, "", "URL of the collector endpoint")
	flags.StringVar(&options.credBasicAuth, appender.FieldCredBasicAuth, "", "Basic authentication credentials in the form user:password")
	flags.StringVar(&options.projectName, appender.FieldProjectName, "", "Project name sent with every log event")
	flags.StringVar(&options.moduleName, appender.FieldModuleName, "", "Module name sent with every log event")
	flags.StringVar(&options.timeout, "timeout", "", "Timeout of a single delivery, e.g. 10s. No timeout if empty")
}

// loadConfig reads the configuration file and lets explicitly set flags override its values.
func loadConfig(flags *flag.FlagSet, options appenderOptions) (config.Config, error) {
	myConfig, err := config.ReadConfigFile(GeneralConfig.ConfigFile)
	if err != nil {
		return myConfig, err
	}

	values := map[string]string{
		appender.FieldRestURL:       options.restURL,
		appender.FieldCredBasicAuth: options.credBasicAuth,
		appender.FieldProjectName:   options.projectName,
		appender.FieldModuleName:    options.moduleName,
	}
	for name, value := range values {
		if !flags.Changed(name) {
			continue
		}
		if err := myConfig.Appender.Set(name, value); err != nil {
			return myConfig, errors.Wrapf(err, "flag --%v", name)
		}
	}
	if flags.Changed("timeout") {
		myConfig.Timeout = options.timeout
	}

	if myConfig.Verbose {
		log.SetVerbose(true)
	}
	return myConfig, nil
}
