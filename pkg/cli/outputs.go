package cli

import (
	"encoding/json"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"azure-staticwebapp-deployer/pkg/constants"
	"azure-staticwebapp-deployer/pkg/deploy"
	utilities "azure-staticwebapp-deployer/pkg/utils"
)

var outputsCmd = &cobra.Command{
	Use:   "outputs [environment]",
	Short: "Show captured deployment outputs",
	Long: `Print the outputs artifact written by the last successful deployment of an
environment. The deployment token is redacted unless --show-secrets is set.`,
	Args: cobra.MaximumNArgs(1),
	Run:  outputsCmdRun,
}

func outputsCmdSetup(cmd *cobra.Command) {
	cmd.Flags().String(constants.OutputFile, "", "Outputs file to read (default .deploy-outputs-<environment>.json)")
	cmd.Flags().Bool(constants.ShowSecrets, false, "Print the deployment token in clear text")

	BindPFlag(cmd, constants.OutputFile)
	BindPFlag(cmd, constants.ShowSecrets)
}

// outputsCmdRun reprints a stored outputs artifact
func outputsCmdRun(cmd *cobra.Command, args []string) {
	if len(args) > 0 {
		viper.Set(constants.Environment, args[0])
	}

	path := viper.GetString(constants.OutputFile)
	if path == "" {
		path = deploy.DefaultOutputFile(viper.GetString(constants.Environment))
	}

	outputs, err := deploy.ReadOutputs(path)
	if err != nil {
		log.Fatalf("No deployment outputs available: %v", err)
	}

	display := *outputs
	if !viper.GetBool(constants.ShowSecrets) {
		display = outputs.Redacted()
	}

	rendered, err := json.MarshalIndent(display, "", "  ")
	if err != nil {
		log.Fatalf("Failed to render outputs: %v", err)
	}
	utilities.PrintDefault("%s\n", rendered)
}
