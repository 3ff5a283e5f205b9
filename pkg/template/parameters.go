package template

import (
	"encoding/json"
	"fmt"
	"os"

	"azure-staticwebapp-deployer/pkg/params"
)

const parameterFileSchema = "https://schema.management.azure.com/schemas/2019-04-01/deploymentParameters.json#"

// ParameterFile is the versioned JSON parameter document accepted alongside
// a deployment template.
type ParameterFile struct {
	Schema         string                    `json:"$schema"`
	ContentVersion string                    `json:"contentVersion"`
	Parameters     map[string]ParameterValue `json:"parameters"`
}

// ParameterValue wraps a single parameter value.
type ParameterValue struct {
	Value any `json:"value"`
}

// ParameterFileFor builds the parameter document matching Build's template
// for the given parameter set.
func ParameterFileFor(p *params.DeploymentParameters) *ParameterFile {
	return &ParameterFile{
		Schema:         parameterFileSchema,
		ContentVersion: contentVersion,
		Parameters: map[string]ParameterValue{
			"environmentName": {Value: p.EnvironmentName},
			"applicationName": {Value: p.ApplicationName},
			"location":        {Value: p.Location},
			"staticWebAppSku": {Value: p.Sku},
			"entraClientId":   {Value: p.ClientID},
			"entraTenantId":   {Value: p.TenantID},
		},
	}
}

// ReadParameterFile loads and parses a parameter document from disk.
func ReadParameterFile(path string) (*ParameterFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read parameter file %s: %w", path, err)
	}
	var f ParameterFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("failed to parse parameter file %s: %w", path, err)
	}
	return &f, nil
}

// Write renders the parameter document to disk as indented JSON.
func (f *ParameterFile) Write(path string) error {
	raw, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal parameter file: %w", err)
	}
	if err := os.WriteFile(path, append(raw, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write parameter file %s: %w", path, err)
	}
	return nil
}

// ToMap renders the parameters in the shape the deployments API expects for
// its Parameters field: name -> {value}.
func (f *ParameterFile) ToMap() map[string]any {
	out := make(map[string]any, len(f.Parameters))
	for name, v := range f.Parameters {
		out[name] = map[string]any{"value": v.Value}
	}
	return out
}
