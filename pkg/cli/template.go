package cli

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"azure-staticwebapp-deployer/pkg/constants"
	"azure-staticwebapp-deployer/pkg/naming"
	"azure-staticwebapp-deployer/pkg/params"
	"azure-staticwebapp-deployer/pkg/template"
	utilities "azure-staticwebapp-deployer/pkg/utils"
)

const parametersFileFlag = "parameters-file"

var templateCmd = &cobra.Command{
	Use:   "template [environment]",
	Short: "Print the generated deployment template",
	Long: `Render the ARM deployment template for the resolved parameters and print
it to stdout. With --parameters-file a matching parameter document is written
next to it, suitable for use with other deployment tooling.`,
	Args: cobra.MaximumNArgs(1),
	Run:  templateCmdRun,
}

func templateCmdSetup(cmd *cobra.Command) {
	cmd.Flags().StringP(constants.Application, "a", constants.DefaultApplication, "Application name used in derived resource names")
	cmd.Flags().StringP(constants.Location, "l", constants.DefaultLocation, "Azure region for the static web app")
	cmd.Flags().String(constants.Sku, constants.DefaultSku, "Hosting plan tier (Free, Standard)")
	cmd.Flags().StringP(constants.ResourceGroup, "g", "", "Resource group name (default rg-<application>-<environment>)")
	cmd.Flags().StringP(constants.SubscriptionID, "s", "", "Azure subscription ID")
	cmd.Flags().String(constants.ClientID, "", "Entra ID application (client) ID")
	cmd.Flags().String(constants.TenantID, "", "Entra ID tenant ID")
	cmd.Flags().String(parametersFileFlag, "", "Also write a parameter file to this path")

	BindPFlag(cmd, constants.Application)
	BindPFlag(cmd, constants.Location)
	BindPFlag(cmd, constants.Sku)
	BindPFlag(cmd, constants.ResourceGroup)
	BindPFlag(cmd, constants.SubscriptionID)
	BindPFlag(cmd, constants.ClientID)
	BindPFlag(cmd, constants.TenantID)
}

// templateCmdRun renders the template locally; no cloud calls are made
func templateCmdRun(cmd *cobra.Command, args []string) {
	if len(args) > 0 {
		viper.Set(constants.Environment, args[0])
	}

	prm := params.FromViper()
	if err := prm.Validate(); err != nil {
		log.Fatalf("Invalid parameters: %v", err)
	}

	resourceGroup := viper.GetString(constants.ResourceGroup)
	if resourceGroup == "" {
		resourceGroup = naming.ResourceGroupName(prm.ApplicationName, prm.EnvironmentName)
	}
	scopeID := naming.ScopeID(viper.GetString(constants.SubscriptionID), resourceGroup)
	siteName := naming.StaticSiteName(prm.ApplicationName, prm.EnvironmentName, naming.ScopeToken(scopeID))

	rendered, err := template.Build(prm, siteName).JSON()
	if err != nil {
		log.Fatalf("Failed to render template: %v", err)
	}
	utilities.PrintDefault("%s\n", rendered)

	if path, _ := cmd.Flags().GetString(parametersFileFlag); path != "" {
		if err := template.ParameterFileFor(prm).Write(path); err != nil {
			log.Fatalf("Failed to write parameter file: %v", err)
		}
		utilities.LogDefault("Parameter file written: %s", path)
	}
}
