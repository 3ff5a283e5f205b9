package cli

import (
	"github.com/spf13/cobra"

	"azure-staticwebapp-deployer/pkg/constants"
	utilities "azure-staticwebapp-deployer/pkg/utils"
)

var envCmd = &cobra.Command{
	Use:   "environment",
	Short: "Generate environment variable templates",
	Long:  `Generate Bash or PowerShell environment variable templates for required configuration.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Default to the platform shell if no subcommand is specified
		GenerateEnvironmentTemplate(utilities.GetDefaultShell())
	},
}

func envSetup(cmd *cobra.Command) {
	bashCmd := &cobra.Command{
		Use:   constants.Bash,
		Short: "Generate Bash environment variable template",
		Run: func(cmd *cobra.Command, args []string) {
			GenerateEnvironmentTemplate(constants.Bash)
		},
	}

	powershellCmd := &cobra.Command{
		Use:     constants.PowerShell,
		Aliases: []string{"ps", "ps1"},
		Short:   "Generate PowerShell environment variable template",
		Run: func(cmd *cobra.Command, args []string) {
			GenerateEnvironmentTemplate(constants.PowerShell)
		},
	}

	cmd.AddCommand(bashCmd)
	cmd.AddCommand(powershellCmd)
}
