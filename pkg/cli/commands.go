package cli

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"azure-staticwebapp-deployer/pkg/constants"
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// Helper that simplifies binding Viper keys to Cobra flags
func BindPFlag(cmd *cobra.Command, key string) {
	viper.BindPFlag(key, cmd.Flags().Lookup(key))
}

func init() {
	// configure root command
	rootSetup(rootCmd)

	// configure deploy command
	deployCmdSetup(deployCmd)
	rootCmd.AddCommand(deployCmd)

	// configure validate command
	validateCmdSetup(validateCmd)
	rootCmd.AddCommand(validateCmd)

	// configure template command
	templateCmdSetup(templateCmd)
	rootCmd.AddCommand(templateCmd)

	// configure outputs command
	outputsCmdSetup(outputsCmd)
	rootCmd.AddCommand(outputsCmd)

	// configure redirect-uri command
	redirectURICmdSetup(redirectURICmd)
	rootCmd.AddCommand(redirectURICmd)

	// configure config command
	configSetup(configCmd)
	rootCmd.AddCommand(configCmd)

	// configure environment command
	envSetup(envCmd)
	rootCmd.AddCommand(envCmd)

	// Bind Viper keys to environment variables
	viper.BindEnv(constants.SubscriptionID, constants.EnvSubscriptionID)
	viper.BindEnv(constants.ResourceGroup, constants.EnvResourceGroup)
	viper.BindEnv(constants.Location, constants.EnvLocation)
	viper.BindEnv(constants.ClientID, constants.EnvClientID)
	viper.BindEnv(constants.TenantID, constants.EnvTenantID)
	viper.BindEnv(constants.Environment, constants.EnvEnvironment)

	// Set defaults
	viper.SetDefault(constants.Environment, constants.DefaultEnvironment)
	viper.SetDefault(constants.Application, constants.DefaultApplication)
	viper.SetDefault(constants.Location, constants.DefaultLocation)
	viper.SetDefault(constants.Sku, constants.DefaultSku)
}
