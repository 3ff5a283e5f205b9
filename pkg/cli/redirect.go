package cli

import (
	"context"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"azure-staticwebapp-deployer/pkg/azure"
	"azure-staticwebapp-deployer/pkg/constants"
	"azure-staticwebapp-deployer/pkg/deploy"
)

var redirectURICmd = &cobra.Command{
	Use:   "redirect-uri [environment]",
	Short: "Register the deployed site's callback URI on the Entra ID application",
	Long: `Read the captured deployment outputs of an environment and add the site's
authentication callback URI to the SPA redirect URIs of the Entra ID
application registration. Already-registered URIs are left untouched.`,
	Args: cobra.MaximumNArgs(1),
	Run:  redirectURICmdRun,
}

func redirectURICmdSetup(cmd *cobra.Command) {
	cmd.Flags().String(constants.ClientID, "", "Entra ID application (client) ID")
	cmd.Flags().StringP(constants.SubscriptionID, "s", "", "Azure subscription ID")
	cmd.Flags().String(constants.OutputFile, "", "Outputs file to read (default .deploy-outputs-<environment>.json)")

	BindPFlag(cmd, constants.ClientID)
	BindPFlag(cmd, constants.SubscriptionID)
	BindPFlag(cmd, constants.OutputFile)
}

// redirectURICmdRun patches the application registration's SPA redirect URIs
func redirectURICmdRun(cmd *cobra.Command, args []string) {
	if len(args) > 0 {
		viper.Set(constants.Environment, args[0])
	}

	path := viper.GetString(constants.OutputFile)
	if path == "" {
		path = deploy.DefaultOutputFile(viper.GetString(constants.Environment))
	}

	outputs, err := deploy.ReadOutputs(path)
	if err != nil {
		log.Fatalf("No deployment outputs available, deploy first: %v", err)
	}

	redirectURI := outputs.RedirectURI()
	if redirectURI == "" {
		log.Fatalf("Outputs file %s carries no site URL.", path)
	}

	clientID := viper.GetString(constants.ClientID)
	if clientID == "" {
		clientID = promptRequired("Entra ID application (client) ID: ")
	}

	subscriptionID := viper.GetString(constants.SubscriptionID)
	if subscriptionID == "" {
		log.Fatalf("Subscription ID not specified.")
	}

	clients, err := azure.NewClients(subscriptionID)
	if err != nil {
		log.Fatalf("Failed to create Azure clients: %v", err)
	}

	if err := clients.AddRedirectURI(context.Background(), clientID, redirectURI); err != nil {
		log.Fatalf("Failed to register redirect URI: %v", err)
	}
}
