package deploy

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"azure-staticwebapp-deployer/pkg/naming"
	"azure-staticwebapp-deployer/pkg/params"
	"azure-staticwebapp-deployer/pkg/template"
	"azure-staticwebapp-deployer/pkg/types"
	utilities "azure-staticwebapp-deployer/pkg/utils"
)

// AzureAPI is the subset of cloud operations the pipeline drives. The real
// implementation lives in pkg/azure; tests substitute a fake.
type AzureAPI interface {
	VerifyCredential(ctx context.Context) error
	CurrentTenantID(ctx context.Context) (string, error)
	ResourceGroupExists(ctx context.Context, name string) (bool, error)
	CreateResourceGroup(ctx context.Context, name, location string, tags map[string]string) error
	ValidateDeployment(ctx context.Context, resourceGroup, deploymentName string, tmpl, parameters map[string]any) error
	WhatIfDeployment(ctx context.Context, resourceGroup, deploymentName string, tmpl, parameters map[string]any) (*types.DeploymentPreview, error)
	CreateDeployment(ctx context.Context, resourceGroup, deploymentName string, tmpl, parameters map[string]any) (map[string]any, error)
	DeploymentToken(ctx context.Context, resourceGroup, siteName string) (string, error)
}

// Options configures a single pipeline run.
type Options struct {
	Params         *params.DeploymentParameters
	SubscriptionID string
	ResourceGroup  string // empty means the derived rg-<app>-<env> default
	WhatIf         bool
	ValidateOnly   bool
	OutputFile     string // empty means .deploy-outputs-<env>.json
}

// Result carries what a run produced: a preview in what-if mode, outputs
// otherwise. ValidateOnly runs produce neither.
type Result struct {
	ResourceGroup string
	SiteName      string
	Preview       *types.DeploymentPreview
	Outputs       *types.DeploymentOutputs
}

// Pipeline runs the deployment stages sequentially and fail-fast. No stage
// retries; any failure aborts the run and leaves cloud state for re-run
// recovery.
type Pipeline struct {
	azure AzureAPI
	opts  Options
}

func New(api AzureAPI, opts Options) *Pipeline {
	return &Pipeline{azure: api, opts: opts}
}

// Run executes validation, preflight, resource-group ensure, template
// validation, then deployment (or preview), then output capture.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	prm := p.opts.Params

	// Parameter validation carries no side effects and runs before any
	// network traffic.
	if err := prm.Validate(); err != nil {
		return nil, err
	}

	if p.opts.SubscriptionID == "" {
		return nil, &PrerequisiteError{
			Reason:      "no subscription ID configured",
			Remediation: "set AZURE_SUBSCRIPTION_ID or pass --subscription",
		}
	}
	if err := p.azure.VerifyCredential(ctx); err != nil {
		return nil, &PrerequisiteError{
			Reason:      "no authenticated Azure session",
			Remediation: "run 'az login' or configure service principal environment variables",
			Err:         err,
		}
	}

	if prm.TenantID == "" {
		tenantID, err := p.azure.CurrentTenantID(ctx)
		if err != nil {
			return nil, &PrerequisiteError{Reason: "failed to discover tenant ID", Err: err}
		}
		prm.TenantID = tenantID
		utilities.LogVerbose("Tenant ID defaulted to the authenticated tenant: %s", tenantID)
	}

	resourceGroup := p.opts.ResourceGroup
	if resourceGroup == "" {
		resourceGroup = naming.ResourceGroupName(prm.ApplicationName, prm.EnvironmentName)
	}

	scopeID := naming.ScopeID(p.opts.SubscriptionID, resourceGroup)
	siteName := naming.StaticSiteName(prm.ApplicationName, prm.EnvironmentName, naming.ScopeToken(scopeID))
	result := &Result{ResourceGroup: resourceGroup, SiteName: siteName}

	utilities.LogDefault("Deployment target: resource_group=%s, site=%s, location=%s, sku=%s",
		resourceGroup, siteName, prm.Location, prm.Sku)

	if err := p.ensureResourceGroup(ctx, resourceGroup, prm); err != nil {
		return nil, err
	}

	tmpl, parameters, err := renderTemplate(prm, siteName)
	if err != nil {
		return nil, err
	}

	deploymentName := fmt.Sprintf("%s-%s", siteName, uuid.New().String()[:8])

	utilities.LogDefault("Validating deployment template: deployment=%s", deploymentName)
	if err := p.azure.ValidateDeployment(ctx, resourceGroup, deploymentName, tmpl, parameters); err != nil {
		return nil, &TemplateValidationError{Err: err}
	}

	if p.opts.ValidateOnly {
		utilities.LogDefault("Template validation succeeded")
		return result, nil
	}

	if p.opts.WhatIf {
		utilities.LogDefault("Running what-if evaluation, no changes will be applied")
		preview, err := p.azure.WhatIfDeployment(ctx, resourceGroup, deploymentName, tmpl, parameters)
		if err != nil {
			return nil, &DeploymentError{DeploymentName: deploymentName, Err: err}
		}
		result.Preview = preview
		return result, nil
	}

	utilities.LogDefault("Submitting deployment: %s", deploymentName)
	rawOutputs, err := p.azure.CreateDeployment(ctx, resourceGroup, deploymentName, tmpl, parameters)
	if err != nil {
		return nil, &DeploymentError{DeploymentName: deploymentName, Err: err}
	}

	outputs := ParseOutputs(rawOutputs)
	outputs.ResourceGroup = resourceGroup
	if outputs.StaticWebAppName == "" {
		outputs.StaticWebAppName = siteName
	}

	token, err := p.azure.DeploymentToken(ctx, resourceGroup, outputs.StaticWebAppName)
	if err != nil {
		// The site deployed; a missing token only blocks CI publishing and
		// can be fetched again later.
		utilities.LogWarning("Could not fetch deployment token: %v", err)
	} else {
		outputs.DeploymentToken = token
	}

	outputFile := p.opts.OutputFile
	if outputFile == "" {
		outputFile = DefaultOutputFile(prm.EnvironmentName)
	}
	if err := WriteOutputs(outputFile, outputs); err != nil {
		return nil, err
	}
	utilities.LogDefault("Deployment outputs written: %s", outputFile)

	result.Outputs = outputs
	return result, nil
}

// ensureResourceGroup creates the group only when absent. In what-if and
// validate-only modes nothing is created: a missing group is reported as a
// prerequisite instead, keeping those modes mutation-free.
func (p *Pipeline) ensureResourceGroup(ctx context.Context, resourceGroup string, prm *params.DeploymentParameters) error {
	exists, err := p.azure.ResourceGroupExists(ctx, resourceGroup)
	if err != nil {
		return &PrerequisiteError{Reason: "failed to check resource group existence", Err: err}
	}
	if exists {
		utilities.LogVerbose("Resource group exists: %s", resourceGroup)
		return nil
	}

	if p.opts.WhatIf || p.opts.ValidateOnly {
		return &PrerequisiteError{
			Reason:      fmt.Sprintf("resource group %s does not exist", resourceGroup),
			Remediation: "run a full deploy first, preview and validation modes create nothing",
		}
	}

	utilities.LogDefault("Creating resource group: %s", resourceGroup)
	tags := naming.MergeTags(prm.Tags, naming.SystemTags(prm.ApplicationName, prm.EnvironmentName))
	if err := p.azure.CreateResourceGroup(ctx, resourceGroup, prm.Location, tags); err != nil {
		return &DeploymentError{DeploymentName: resourceGroup, Err: err}
	}
	return nil
}

func renderTemplate(prm *params.DeploymentParameters, siteName string) (map[string]any, map[string]any, error) {
	tmpl, err := template.Build(prm, siteName).ToMap()
	if err != nil {
		return nil, nil, err
	}
	parameters := template.ParameterFileFor(prm).ToMap()
	return tmpl, parameters, nil
}
