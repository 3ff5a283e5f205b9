package deploy

import (
	"encoding/json"
	"fmt"
	"os"

	"azure-staticwebapp-deployer/pkg/types"
)

// DefaultOutputFile names the local artifact holding the outputs of the
// latest successful deployment for an environment.
func DefaultOutputFile(environmentName string) string {
	return fmt.Sprintf(".deploy-outputs-%s.json", environmentName)
}

// ParseOutputs maps the raw ARM deployment outputs (name -> {type, value})
// into the local outputs contract. Unknown outputs are ignored.
func ParseOutputs(raw map[string]any) *types.DeploymentOutputs {
	return &types.DeploymentOutputs{
		StaticWebAppID:   outputString(raw, "staticWebAppId"),
		StaticWebAppName: outputString(raw, "staticWebAppName"),
		DefaultHostname:  outputString(raw, "defaultHostname"),
		SiteURL:          outputString(raw, "siteUrl"),
		Location:         outputString(raw, "location"),
		EnvironmentName:  outputString(raw, "environmentName"),
	}
}

func outputString(raw map[string]any, name string) string {
	entry, ok := raw[name].(map[string]any)
	if !ok {
		return ""
	}
	value, _ := entry["value"].(string)
	return value
}

// WriteOutputs persists the outputs artifact. Mode 0600 because the file
// carries the deployment token.
func WriteOutputs(path string, outputs *types.DeploymentOutputs) error {
	raw, err := json.MarshalIndent(outputs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal deployment outputs: %w", err)
	}
	if err := os.WriteFile(path, append(raw, '\n'), 0o600); err != nil {
		return fmt.Errorf("failed to write deployment outputs to %s: %w", path, err)
	}
	return nil
}

// ReadOutputs loads a previously captured outputs artifact.
func ReadOutputs(path string) (*types.DeploymentOutputs, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read deployment outputs from %s: %w", path, err)
	}
	var outputs types.DeploymentOutputs
	if err := json.Unmarshal(raw, &outputs); err != nil {
		return nil, fmt.Errorf("failed to parse deployment outputs from %s: %w", path, err)
	}
	return &outputs, nil
}
