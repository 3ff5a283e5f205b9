package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"

	"azure-staticwebapp-deployer/pkg/types"
)

// ResourceGroupExists checks whether the resource group is present in the
// subscription.
func (c *Clients) ResourceGroupExists(ctx context.Context, name string) (bool, error) {
	resp, err := c.groups.CheckExistence(ctx, name, nil)
	if err != nil {
		return false, fmt.Errorf("failed to check resource group %s: %w", name, err)
	}
	return resp.Success, nil
}

// CreateResourceGroup creates or updates the resource group. Resource group
// creation is idempotent on the provider side.
func (c *Clients) CreateResourceGroup(ctx context.Context, name, location string, tags map[string]string) error {
	_, err := c.groups.CreateOrUpdate(ctx, name, armresources.ResourceGroup{
		Location: to.Ptr(location),
		Tags:     toTagMap(tags),
	}, nil)
	if err != nil {
		return fmt.Errorf("failed to create resource group %s: %w", name, err)
	}
	return nil
}

// ValidateDeployment submits the template for server-side validation without
// applying it. Provider rejections are returned verbatim.
func (c *Clients) ValidateDeployment(ctx context.Context, resourceGroup, deploymentName string, tmpl, parameters map[string]any) error {
	poller, err := c.deployments.BeginValidate(ctx, resourceGroup, deploymentName, deploymentFor(tmpl, parameters), nil)
	if err != nil {
		return err
	}
	result, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return err
	}
	if result.Error != nil && result.Error.Message != nil {
		return fmt.Errorf("%s", *result.Error.Message)
	}
	return nil
}

// WhatIfDeployment runs a preview evaluation and maps the provider's change
// list into the local preview contract. No cloud state is mutated.
func (c *Clients) WhatIfDeployment(ctx context.Context, resourceGroup, deploymentName string, tmpl, parameters map[string]any) (*types.DeploymentPreview, error) {
	poller, err := c.deployments.BeginWhatIf(ctx, resourceGroup, deploymentName, armresources.DeploymentWhatIf{
		Properties: &armresources.DeploymentWhatIfProperties{
			Template:   tmpl,
			Parameters: parameters,
			Mode:       to.Ptr(armresources.DeploymentModeIncremental),
		},
	}, nil)
	if err != nil {
		return nil, err
	}
	result, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return nil, err
	}

	preview := &types.DeploymentPreview{}
	if result.Status != nil {
		preview.Status = *result.Status
	}
	if result.Properties != nil {
		for _, change := range result.Properties.Changes {
			if change == nil {
				continue
			}
			entry := &types.DeploymentPreviewChange{}
			if change.ChangeType != nil {
				entry.ChangeType = types.ChangeType(*change.ChangeType)
			}
			if change.ResourceID != nil {
				entry.ResourceID = *change.ResourceID
			}
			if change.UnsupportedReason != nil {
				entry.UnsupportedReason = *change.UnsupportedReason
			}
			preview.Changes = append(preview.Changes, entry)
		}
	}
	return preview, nil
}

// CreateDeployment submits the deployment in incremental mode and waits for
// the provider to finish reconciling. Returns the raw template outputs.
func (c *Clients) CreateDeployment(ctx context.Context, resourceGroup, deploymentName string, tmpl, parameters map[string]any) (map[string]any, error) {
	poller, err := c.deployments.BeginCreateOrUpdate(ctx, resourceGroup, deploymentName, deploymentFor(tmpl, parameters), nil)
	if err != nil {
		return nil, err
	}
	result, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return nil, err
	}

	if result.Properties == nil {
		return nil, fmt.Errorf("deployment %s finished without properties", deploymentName)
	}
	outputs, _ := result.Properties.Outputs.(map[string]any)
	return outputs, nil
}

// DeploymentToken fetches the static site's deployment credential, used by
// CI to publish build output.
func (c *Clients) DeploymentToken(ctx context.Context, resourceGroup, siteName string) (string, error) {
	resp, err := c.staticSites.ListStaticSiteSecrets(ctx, resourceGroup, siteName, nil)
	if err != nil {
		return "", fmt.Errorf("failed to list static site secrets for %s: %w", siteName, err)
	}
	if key, ok := resp.Properties["apiKey"]; ok && key != nil {
		return *key, nil
	}
	return "", fmt.Errorf("static site %s returned no deployment token", siteName)
}

func deploymentFor(tmpl, parameters map[string]any) armresources.Deployment {
	return armresources.Deployment{
		Properties: &armresources.DeploymentProperties{
			Template:   tmpl,
			Parameters: parameters,
			Mode:       to.Ptr(armresources.DeploymentModeIncremental),
		},
	}
}

func toTagMap(tags map[string]string) map[string]*string {
	if len(tags) == 0 {
		return nil
	}
	out := make(map[string]*string, len(tags))
	for k, v := range tags {
		out[k] = to.Ptr(v)
	}
	return out
}
