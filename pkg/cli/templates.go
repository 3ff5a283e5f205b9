package cli

import (
	"fmt"
	"strings"

	"azure-staticwebapp-deployer/pkg/constants"
	utilities "azure-staticwebapp-deployer/pkg/utils"
)

// GenerateEnvironmentTemplate generates environment variable templates
func GenerateEnvironmentTemplate(shell string) {
	switch strings.ToLower(shell) {
	case constants.PowerShell, "ps1":
		generatePowerShellTemplate()
	case constants.Bash, "sh":
		generateBashTemplate()
	default:
		utilities.LogDefault("Unsupported shell type: shell=%s, supported=%s,%s", shell, constants.Bash, constants.PowerShell)
		generateBashTemplate()
	}
}

func generateBashTemplate() {
	fmt.Print(`# Azure subscription and deployment target
export AZURE_SUBSCRIPTION_ID="your-azure-subscription-id"
export AZURE_RESOURCE_GROUP="rg-wikidocs-dev"
export AZURE_LOCATION="centralus"
export AZURE_ENV_NAME="dev"
# Entra ID authentication for the deployed site
export AZURE_CLIENT_ID="your-entra-application-client-id"
export AZURE_TENANT_ID="your-azure-tenant-id"
`)
}

func generatePowerShellTemplate() {
	fmt.Print(`# Azure subscription and deployment target
$env:AZURE_SUBSCRIPTION_ID = "your-azure-subscription-id"
$env:AZURE_RESOURCE_GROUP = "rg-wikidocs-dev"
$env:AZURE_LOCATION = "centralus"
$env:AZURE_ENV_NAME = "dev"
# Entra ID authentication for the deployed site
$env:AZURE_CLIENT_ID = "your-entra-application-client-id"
$env:AZURE_TENANT_ID = "your-azure-tenant-id"
`)
}

// generateJSONConfig generates JSON configuration template
func generateJSONConfig() {
	fmt.Print(`{
  "subscription": "your-azure-subscription-id",
  "resource-group": "rg-wikidocs-dev",
  "environment": "dev",
  "application": "wikidocs",
  "location": "centralus",
  "sku": "Free",
  "client-id": "your-entra-application-client-id",
  "tenant-id": "your-azure-tenant-id",
  "tags": {
    "owner": "docs-team"
  }
}
`)
}

// generateTOMLConfig generates TOML configuration template
func generateTOMLConfig() {
	fmt.Print(`# Azure Static Web App Deployer Configuration
subscription = "your-azure-subscription-id"
resource-group = "rg-wikidocs-dev"
environment = "dev"
application = "wikidocs"
location = "centralus"
sku = "Free"
client-id = "your-entra-application-client-id"
tenant-id = "your-azure-tenant-id"

[tags]
owner = "docs-team"
`)
}

// generateYAMLConfig generates YAML configuration template
func generateYAMLConfig() {
	fmt.Print(`# Azure Static Web App Deployer Configuration
subscription: "your-azure-subscription-id"
resource-group: "rg-wikidocs-dev"
environment: "dev"
application: "wikidocs"
location: "centralus"
sku: "Free"
client-id: "your-entra-application-client-id"
tenant-id: "your-azure-tenant-id"
tags:
  owner: "docs-team"
`)
}
