package cli

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"azure-staticwebapp-deployer/pkg/constants"
	"azure-staticwebapp-deployer/pkg/params"
	utilities "azure-staticwebapp-deployer/pkg/utils"
)

var validateCmd = &cobra.Command{
	Use:   "validate [environment]",
	Short: "Validate the deployment template without deploying",
	Long: `Run the pipeline up to and including server-side template validation.
Nothing is deployed and no resource group is created.`,
	Args: cobra.MaximumNArgs(1),
	Run:  validateCmdRun,
}

func validateCmdSetup(cmd *cobra.Command) {
	cmd.Flags().StringP(constants.Application, "a", constants.DefaultApplication, "Application name used in derived resource names")
	cmd.Flags().StringP(constants.Location, "l", constants.DefaultLocation, "Azure region for the static web app")
	cmd.Flags().String(constants.Sku, constants.DefaultSku, "Hosting plan tier (Free, Standard)")
	cmd.Flags().StringP(constants.ResourceGroup, "g", "", "Resource group name (default rg-<application>-<environment>)")
	cmd.Flags().StringP(constants.SubscriptionID, "s", "", "Azure subscription ID")
	cmd.Flags().String(constants.ClientID, "", "Entra ID application (client) ID")
	cmd.Flags().String(constants.TenantID, "", "Entra ID tenant ID (default: the authenticated tenant)")

	BindPFlag(cmd, constants.Application)
	BindPFlag(cmd, constants.Location)
	BindPFlag(cmd, constants.Sku)
	BindPFlag(cmd, constants.ResourceGroup)
	BindPFlag(cmd, constants.SubscriptionID)
	BindPFlag(cmd, constants.ClientID)
	BindPFlag(cmd, constants.TenantID)
}

// validateCmdRun executes the validation-only pipeline
func validateCmdRun(cmd *cobra.Command, args []string) {
	if len(args) > 0 {
		viper.Set(constants.Environment, args[0])
	}

	prm := params.FromViper()
	if prm.ClientID == "" {
		prm.ClientID = promptRequired("Entra ID application (client) ID: ")
	}

	result, err := runPipeline(prm, deployOptions(prm, false, true))
	if err != nil {
		log.Fatalf("Validation failed: %v", err)
	}

	utilities.LogDefault("Template is valid: resource_group=%s, site=%s", result.ResourceGroup, result.SiteName)
}
