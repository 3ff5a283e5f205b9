package template

import (
	"encoding/json"
	"fmt"

	"azure-staticwebapp-deployer/pkg/constants"
	"azure-staticwebapp-deployer/pkg/naming"
	"azure-staticwebapp-deployer/pkg/params"
)

const (
	templateSchema  = "https://schema.management.azure.com/schemas/2019-04-01/deploymentTemplate.json#"
	contentVersion  = "1.0.0.0"
	staticSitesType = "Microsoft.Web/staticSites"
	configType      = "Microsoft.Web/staticSites/config"
	apiVersion      = "2023-12-01"

	// Docusaurus build layout served by the static site.
	appLocation    = "/"
	outputLocation = "build"
)

// Template is an ARM deployment template assembled from validated parameters.
// It serializes to the JSON the Resource Manager deployments API accepts.
type Template struct {
	Schema         string               `json:"$schema"`
	ContentVersion string               `json:"contentVersion"`
	Parameters     map[string]Parameter `json:"parameters"`
	Variables      map[string]any       `json:"variables,omitempty"`
	Resources      []Resource           `json:"resources"`
	Outputs        map[string]Output    `json:"outputs"`
}

// Parameter is a template parameter definition with its constraints.
type Parameter struct {
	Type          string `json:"type"`
	DefaultValue  any    `json:"defaultValue,omitempty"`
	AllowedValues []any  `json:"allowedValues,omitempty"`
	MaxLength     *int   `json:"maxLength,omitempty"`
	Metadata      *Meta  `json:"metadata,omitempty"`
}

// Meta carries the description shown by portal and CLI tooling.
type Meta struct {
	Description string `json:"description,omitempty"`
}

// Resource is a single desired-state resource declaration.
type Resource struct {
	Type       string            `json:"type"`
	APIVersion string            `json:"apiVersion"`
	Name       string            `json:"name"`
	Location   string            `json:"location,omitempty"`
	Tags       map[string]string `json:"tags,omitempty"`
	SKU        *SKU              `json:"sku,omitempty"`
	Properties map[string]any    `json:"properties,omitempty"`
	DependsOn  []string          `json:"dependsOn,omitempty"`
}

// SKU names the hosting plan tier of the static site.
type SKU struct {
	Name string `json:"name"`
	Tier string `json:"tier"`
}

// Output is a template output definition.
type Output struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Build assembles the deployment template for a validated parameter set.
// The static site name is derived client-side and baked into a template
// variable so the same inputs always declare the same resource.
//
// The appsettings sub-resource is declared only when a client ID is present,
// and always with an explicit dependsOn edge to the parent site: the
// Resource Manager does not order independently declared resources, and
// applying configuration before the site exists fails the deployment.
func Build(p *params.DeploymentParameters, siteName string) *Template {
	tags := naming.MergeTags(p.Tags, naming.SystemTags(p.ApplicationName, p.EnvironmentName))

	siteResourceID := fmt.Sprintf("[resourceId('%s', variables('staticSiteName'))]", staticSitesType)

	resources := []Resource{
		{
			Type:       staticSitesType,
			APIVersion: apiVersion,
			Name:       "[variables('staticSiteName')]",
			Location:   "[parameters('location')]",
			Tags:       tags,
			SKU: &SKU{
				Name: "[parameters('staticWebAppSku')]",
				Tier: "[parameters('staticWebAppSku')]",
			},
			Properties: map[string]any{
				"buildProperties": map[string]any{
					"appLocation":    appLocation,
					"outputLocation": outputLocation,
				},
				"stagingEnvironmentPolicy": "Enabled",
				"allowConfigFileUpdates":   true,
			},
		},
	}

	if p.ClientID != "" {
		resources = append(resources, Resource{
			Type:       configType,
			APIVersion: apiVersion,
			Name:       "[format('{0}/appsettings', variables('staticSiteName'))]",
			Properties: map[string]any{
				constants.SettingClientID: "[parameters('entraClientId')]",
				constants.SettingTenantID: "[parameters('entraTenantId')]",
			},
			DependsOn: []string{siteResourceID},
		})
	}

	return &Template{
		Schema:         templateSchema,
		ContentVersion: contentVersion,
		Parameters:     parameterDefinitions(),
		Variables: map[string]any{
			"staticSiteName": siteName,
		},
		Resources: resources,
		Outputs: map[string]Output{
			"staticWebAppId":   {Type: "string", Value: siteResourceID},
			"staticWebAppName": {Type: "string", Value: "[variables('staticSiteName')]"},
			"defaultHostname": {
				Type:  "string",
				Value: fmt.Sprintf("[reference(%s).defaultHostname]", trimBrackets(siteResourceID)),
			},
			"siteUrl": {
				Type:  "string",
				Value: fmt.Sprintf("[format('https://{0}', reference(%s).defaultHostname)]", trimBrackets(siteResourceID)),
			},
			"location":        {Type: "string", Value: "[parameters('location')]"},
			"environmentName": {Type: "string", Value: "[parameters('environmentName')]"},
		},
	}
}

func parameterDefinitions() map[string]Parameter {
	return map[string]Parameter{
		"environmentName": {
			Type:      "string",
			MaxLength: intPtr(params.MaxEnvironmentNameLength),
			Metadata:  &Meta{Description: "Deployment environment name, e.g. dev or prod."},
		},
		"applicationName": {
			Type:      "string",
			MaxLength: intPtr(params.MaxApplicationNameLength),
			Metadata:  &Meta{Description: "Application name used in derived resource names."},
		},
		"location": {
			Type:          "string",
			DefaultValue:  constants.DefaultLocation,
			AllowedValues: anySlice(params.AllowedLocations),
			Metadata:      &Meta{Description: "Region hosting the static site."},
		},
		"staticWebAppSku": {
			Type:          "string",
			DefaultValue:  constants.DefaultSku,
			AllowedValues: anySlice(params.AllowedSkus),
			Metadata:      &Meta{Description: "Hosting plan tier."},
		},
		"entraClientId": {
			Type:     "secureString",
			Metadata: &Meta{Description: "Entra ID application (client) ID for authentication."},
		},
		"entraTenantId": {
			Type:         "string",
			DefaultValue: "",
			Metadata:     &Meta{Description: "Entra ID tenant ID; defaults to the deploying tenant."},
		},
	}
}

// ToMap renders the template as the generic JSON object the deployments API
// expects for its Template field.
func (t *Template) ToMap() (map[string]any, error) {
	raw, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal template: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("failed to convert template to map: %w", err)
	}
	return m, nil
}

// JSON renders the template as indented JSON for display and file output.
func (t *Template) JSON() ([]byte, error) {
	return json.MarshalIndent(t, "", "  ")
}

func trimBrackets(expr string) string {
	return expr[1 : len(expr)-1]
}

func intPtr(v int) *int {
	return &v
}

func anySlice(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
