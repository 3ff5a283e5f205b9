package cli

import (
	"bufio"
	"context"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"azure-staticwebapp-deployer/pkg/azure"
	"azure-staticwebapp-deployer/pkg/constants"
	"azure-staticwebapp-deployer/pkg/deploy"
	"azure-staticwebapp-deployer/pkg/params"
	utilities "azure-staticwebapp-deployer/pkg/utils"
)

var deployCmd = &cobra.Command{
	Use:   "deploy [environment]",
	Short: "Deploy the static web app",
	Long: `Run the full deployment pipeline: prerequisite checks, resource group
creation, template validation and deployment. With --what-if the deployment
is evaluated as a preview and no cloud state is changed.`,
	Args: cobra.MaximumNArgs(1),
	Run:  deployCmdRun,
}

func deployCmdSetup(cmd *cobra.Command) {
	cmd.Flags().StringP(constants.Application, "a", constants.DefaultApplication, "Application name used in derived resource names")
	cmd.Flags().StringP(constants.Location, "l", constants.DefaultLocation, "Azure region for the static web app")
	cmd.Flags().String(constants.Sku, constants.DefaultSku, "Hosting plan tier (Free, Standard)")
	cmd.Flags().StringP(constants.ResourceGroup, "g", "", "Resource group name (default rg-<application>-<environment>)")
	cmd.Flags().StringP(constants.SubscriptionID, "s", "", "Azure subscription ID")
	cmd.Flags().String(constants.ClientID, "", "Entra ID application (client) ID")
	cmd.Flags().String(constants.TenantID, "", "Entra ID tenant ID (default: the authenticated tenant)")
	cmd.Flags().StringToString(constants.Tags, nil, "Additional resource tags as key=value pairs")
	cmd.Flags().String(constants.OutputFile, "", "File receiving deployment outputs (default .deploy-outputs-<environment>.json)")
	cmd.Flags().Bool(constants.WhatIf, false, "Preview the deployment without applying changes")

	BindPFlag(cmd, constants.Application)
	BindPFlag(cmd, constants.Location)
	BindPFlag(cmd, constants.Sku)
	BindPFlag(cmd, constants.ResourceGroup)
	BindPFlag(cmd, constants.SubscriptionID)
	BindPFlag(cmd, constants.ClientID)
	BindPFlag(cmd, constants.TenantID)
	BindPFlag(cmd, constants.Tags)
	BindPFlag(cmd, constants.OutputFile)
	BindPFlag(cmd, constants.WhatIf)
}

// deployCmdRun executes the deployment pipeline
func deployCmdRun(cmd *cobra.Command, args []string) {
	if len(args) > 0 {
		viper.Set(constants.Environment, args[0])
	}

	prm := params.FromViper()

	// The client ID is the one input with no sensible default. Collect it
	// interactively when it was not provided by flag, env or config file.
	if prm.ClientID == "" {
		prm.ClientID = promptRequired("Entra ID application (client) ID: ")
	}

	whatIf := viper.GetBool(constants.WhatIf)
	result, err := runPipeline(prm, deployOptions(prm, whatIf, false))
	if err != nil {
		log.Fatalf("Deployment failed: %v", err)
	}

	if whatIf {
		utilities.LogDefault("What-if evaluation finished: status=%s, %s", result.Preview.Status, result.Preview.Summary())
		for _, change := range result.Preview.Changes {
			utilities.PrintDefault("  %-12s %s\n", change.ChangeType, change.ResourceID)
		}
		return
	}

	outputs := result.Outputs.Redacted()
	utilities.LogDefault("Deployment succeeded: site=%s, url=%s", outputs.StaticWebAppName, outputs.SiteURL)

	utilities.PrintDefault("\nNext steps:\n")
	utilities.PrintDefault("  1. Register the redirect URI on the Entra ID application:\n")
	utilities.PrintDefault("       %s\n", result.Outputs.RedirectURI())
	utilities.PrintDefault("     or run: %s redirect-uri %s\n", constants.CommandName, prm.EnvironmentName)
	utilities.PrintDefault("  2. Configure the GitHub repository:\n")
	utilities.PrintDefault("       secret   AZURE_STATIC_WEB_APPS_API_TOKEN  (deployment token in the outputs file)\n")
	utilities.PrintDefault("       variable AZURE_CLIENT_ID=%s\n", prm.ClientID)
	utilities.PrintDefault("       variable AZURE_TENANT_ID=%s\n", prm.TenantID)
}

// deployOptions assembles pipeline options from the resolved configuration.
func deployOptions(prm *params.DeploymentParameters, whatIf, validateOnly bool) deploy.Options {
	return deploy.Options{
		Params:         prm,
		SubscriptionID: viper.GetString(constants.SubscriptionID),
		ResourceGroup:  viper.GetString(constants.ResourceGroup),
		WhatIf:         whatIf,
		ValidateOnly:   validateOnly,
		OutputFile:     viper.GetString(constants.OutputFile),
	}
}

// runPipeline wires the real Azure clients into the pipeline and runs it.
func runPipeline(prm *params.DeploymentParameters, opts deploy.Options) (*deploy.Result, error) {
	if opts.SubscriptionID == "" {
		return nil, &deploy.PrerequisiteError{
			Reason:      "no subscription ID configured",
			Remediation: "set AZURE_SUBSCRIPTION_ID or pass --subscription",
		}
	}

	clients, err := azure.NewClients(opts.SubscriptionID)
	if err != nil {
		return nil, &deploy.PrerequisiteError{Reason: "failed to initialize Azure clients", Err: err}
	}

	return deploy.New(clients, opts).Run(context.Background())
}

// promptRequired reads a non-empty value from stdin, retrying on empty input.
func promptRequired(prompt string) string {
	reader := bufio.NewReader(os.Stdin)
	for {
		utilities.PrintDefault("%s", prompt)
		line, err := reader.ReadString('\n')
		value := strings.TrimSpace(line)
		if value != "" {
			return value
		}
		if err != nil {
			log.Fatalf("A value is required.")
		}
		utilities.PrintDefault("A value is required.\n")
	}
}
