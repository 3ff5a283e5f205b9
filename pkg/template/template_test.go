package template

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"azure-staticwebapp-deployer/pkg/constants"
	"azure-staticwebapp-deployer/pkg/params"
)

func testParameters() *params.DeploymentParameters {
	return &params.DeploymentParameters{
		EnvironmentName: "dev",
		ApplicationName: "wikidocs",
		Location:        "centralus",
		Sku:             "Free",
		ClientID:        "11111111-2222-3333-4444-555555555555",
		TenantID:        "66666666-7777-8888-9999-000000000000",
		Tags:            map[string]string{"owner": "docs-team"},
	}
}

func TestBuildDeclaresSiteAndConfig(t *testing.T) {
	tmpl := Build(testParameters(), "stapp-wikidocs-dev-abc123def4567")

	require.Len(t, tmpl.Resources, 2)

	site := tmpl.Resources[0]
	assert.Equal(t, "Microsoft.Web/staticSites", site.Type)
	assert.Equal(t, "[variables('staticSiteName')]", site.Name)
	require.NotNil(t, site.SKU)
	assert.Equal(t, "[parameters('staticWebAppSku')]", site.SKU.Name)
	assert.Equal(t, "Enabled", site.Properties["stagingEnvironmentPolicy"])

	config := tmpl.Resources[1]
	assert.Equal(t, "Microsoft.Web/staticSites/config", config.Type)
	assert.Equal(t, "[parameters('entraClientId')]", config.Properties[constants.SettingClientID])
	assert.Equal(t, "[parameters('entraTenantId')]", config.Properties[constants.SettingTenantID])
}

func TestBuildConfigDependsOnSite(t *testing.T) {
	tmpl := Build(testParameters(), "stapp-wikidocs-dev-abc123def4567")

	config := tmpl.Resources[1]
	require.Len(t, config.DependsOn, 1)
	assert.Equal(t, "[resourceId('Microsoft.Web/staticSites', variables('staticSiteName'))]", config.DependsOn[0])
}

func TestBuildOmitsConfigWithoutClientID(t *testing.T) {
	p := testParameters()
	p.ClientID = ""

	tmpl := Build(p, "stapp-wikidocs-dev-abc123def4567")

	require.Len(t, tmpl.Resources, 1)
	assert.Equal(t, "Microsoft.Web/staticSites", tmpl.Resources[0].Type)
}

func TestBuildMergesTagsWithSystemPrecedence(t *testing.T) {
	p := testParameters()
	p.Tags[constants.TagKeyEnvironment] = "spoofed"

	tmpl := Build(p, "stapp-wikidocs-dev-abc123def4567")

	tags := tmpl.Resources[0].Tags
	assert.Equal(t, "dev", tags[constants.TagKeyEnvironment])
	assert.Equal(t, "wikidocs", tags[constants.TagKeyApplication])
	assert.Equal(t, "docs-team", tags["owner"])
}

func TestBuildDeclaresOutputs(t *testing.T) {
	tmpl := Build(testParameters(), "stapp-wikidocs-dev-abc123def4567")

	for _, name := range []string{"staticWebAppId", "staticWebAppName", "defaultHostname", "siteUrl", "location", "environmentName"} {
		assert.Contains(t, tmpl.Outputs, name)
	}
	assert.Contains(t, tmpl.Outputs["siteUrl"].Value, "https://")
}

func TestBuildParameterConstraints(t *testing.T) {
	tmpl := Build(testParameters(), "stapp-wikidocs-dev-abc123def4567")

	location := tmpl.Parameters["location"]
	assert.Len(t, location.AllowedValues, len(params.AllowedLocations))

	sku := tmpl.Parameters["staticWebAppSku"]
	assert.Contains(t, sku.AllowedValues, "Free")
	assert.Contains(t, sku.AllowedValues, "Standard")

	clientID := tmpl.Parameters["entraClientId"]
	assert.Equal(t, "secureString", clientID.Type)

	env := tmpl.Parameters["environmentName"]
	require.NotNil(t, env.MaxLength)
	assert.Equal(t, params.MaxEnvironmentNameLength, *env.MaxLength)
}

func TestToMapRoundTrips(t *testing.T) {
	tmpl := Build(testParameters(), "stapp-wikidocs-dev-abc123def4567")

	m, err := tmpl.ToMap()
	require.NoError(t, err)

	assert.Equal(t, templateSchema, m["$schema"])
	assert.Equal(t, contentVersion, m["contentVersion"])
	resources, ok := m["resources"].([]any)
	require.True(t, ok)
	assert.Len(t, resources, 2)
}

func TestParameterFileRoundTrip(t *testing.T) {
	p := testParameters()
	file := ParameterFileFor(p)

	path := filepath.Join(t.TempDir(), "deploy.parameters.json")
	require.NoError(t, file.Write(path))

	loaded, err := ReadParameterFile(path)
	require.NoError(t, err)

	assert.Equal(t, parameterFileSchema, loaded.Schema)
	assert.Equal(t, contentVersion, loaded.ContentVersion)
	assert.Equal(t, "dev", loaded.Parameters["environmentName"].Value)
	assert.Equal(t, "centralus", loaded.Parameters["location"].Value)

	asMap := loaded.ToMap()
	entry, ok := asMap["staticWebAppSku"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Free", entry["value"])
}
