package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnoswap-labs/stepcheck/verify"
)

// initCmd: stepcheck init
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new configuration file",
	Run: func(cmd *cobra.Command, args []string) {
		path, err := initConfigurationFile(cfgFile)
		if err != nil {
			logger.Error("Error initializing config file", zap.Error(err))
			return
		}
		fmt.Printf("Configuration file created/updated: %s\n", path)
	},
}

// initConfigurationFile writes the default configuration, with every rule
// listed as on so that it can be edited in place.
func initConfigurationFile(configurationPath string) (string, error) {
	if configurationPath == "" {
		configurationPath = verify.DefaultConfigPath
	}

	config := verify.DefaultConfig()
	for _, rule := range verify.NewEngine(config, nil).Rules() {
		config.Rules[rule] = verify.RuleOn
	}
	return configurationPath, verify.WriteConfig(configurationPath, config)
}
