package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"azure-staticwebapp-deployer/pkg/constants"
	utilities "azure-staticwebapp-deployer/pkg/utils"
)

var availableConfigFormats = []string{constants.JSON, constants.TOML, constants.YAML}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Generate configuration file templates",
	Long: fmt.Sprintf(`Generate configuration file templates in different formats.
Supported formats: %s (default: %s)
For environment variables, use: %s environment`, strings.Join(availableConfigFormats, ", "), constants.YAML, constants.CommandName),
	Run: configRun,
}

func configRun(cmd *cobra.Command, args []string) {
	format, _ := cmd.Flags().GetString(constants.Format)
	utilities.LogVerbose("The chosen format is %v", format)
	GenerateConfigTemplate(format)
}

func configSetup(cmd *cobra.Command) {
	cmd.Flags().StringP(constants.Format, "f", constants.YAML, "config file format")
}

// GenerateConfigTemplate generates configuration templates in different formats
func GenerateConfigTemplate(format string) {
	switch format {
	case constants.JSON:
		generateJSONConfig()
	case constants.TOML:
		generateTOMLConfig()
	case constants.YAML:
		generateYAMLConfig()
	default:
		utilities.PrintDefault("Error: Unsupported format '%s'. Supported formats: %s\n", format, strings.Join(availableConfigFormats, ", "))
		utilities.PrintDefault("For environment variables, use: %s environment\n", constants.CommandName)
	}
}
