package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"azure-staticwebapp-deployer/pkg/constants"
	utilities "azure-staticwebapp-deployer/pkg/utils"
)

// Define a variable to hold the config file path
var configFile string

// Define the root command
var rootCmd = &cobra.Command{
	Use:   constants.CommandName,
	Short: "Deploy an Azure Static Web App with Entra ID authentication",
	Long: `Azure Static Web App Deployer generates the declarative deployment template
for a documentation site hosted on Azure Static Web Apps, validates it against
the Resource Manager, and drives the deployment pipeline end to end:
prerequisite checks, resource group creation, template validation,
deployment (or what-if preview), and output capture.`,
}

func rootSetup(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVarP(utilities.GetVerbosePtr(), constants.Verbose, "v", false, "Enable verbose output")
	cmd.PersistentFlags().StringVar(&configFile, constants.ConfigFile, "", fmt.Sprintf("Config file (default is %s.%s in the current directory)", constants.CommandName, constants.YAML))

	viper.BindPFlag(constants.ConfigFile, cmd.Flags().Lookup(constants.ConfigFile))
	viper.BindEnv(constants.ConfigFile, constants.EnvConfigFile)

	cobra.OnInitialize(loadConfigFile)
}

// loadConfigFile reads the optional config file before any command runs.
// A missing default config file is fine; an explicitly named one must exist.
func loadConfigFile() {
	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			utilities.LogFatal("Failed to read config file %s: %v", configFile, err)
		}
		utilities.LogVerbose("Config file loaded: %s", viper.ConfigFileUsed())
		return
	}

	viper.SetConfigName(constants.CommandName)
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err == nil {
		utilities.LogVerbose("Config file loaded: %s", viper.ConfigFileUsed())
	}
}
