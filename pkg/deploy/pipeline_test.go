package deploy

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"azure-staticwebapp-deployer/pkg/params"
	"azure-staticwebapp-deployer/pkg/types"
)

// fakeAzure records every call the pipeline makes so tests can assert on
// ordering and on the absence of mutating calls.
type fakeAzure struct {
	calls []string

	credentialErr error
	tenantID      string
	groupExists   bool
	existsErr     error
	validateErr   error
	deployErr     error
	token         string
	tokenErr      error
	outputs       map[string]any
	preview       *types.DeploymentPreview
}

func (f *fakeAzure) record(call string) { f.calls = append(f.calls, call) }

func (f *fakeAzure) VerifyCredential(ctx context.Context) error {
	f.record("VerifyCredential")
	return f.credentialErr
}

func (f *fakeAzure) CurrentTenantID(ctx context.Context) (string, error) {
	f.record("CurrentTenantID")
	return f.tenantID, nil
}

func (f *fakeAzure) ResourceGroupExists(ctx context.Context, name string) (bool, error) {
	f.record("ResourceGroupExists:" + name)
	return f.groupExists, f.existsErr
}

func (f *fakeAzure) CreateResourceGroup(ctx context.Context, name, location string, tags map[string]string) error {
	f.record("CreateResourceGroup:" + name)
	return nil
}

func (f *fakeAzure) ValidateDeployment(ctx context.Context, rg, name string, tmpl, parameters map[string]any) error {
	f.record("ValidateDeployment")
	return f.validateErr
}

func (f *fakeAzure) WhatIfDeployment(ctx context.Context, rg, name string, tmpl, parameters map[string]any) (*types.DeploymentPreview, error) {
	f.record("WhatIfDeployment")
	if f.preview != nil {
		return f.preview, nil
	}
	return &types.DeploymentPreview{Status: "Succeeded"}, nil
}

func (f *fakeAzure) CreateDeployment(ctx context.Context, rg, name string, tmpl, parameters map[string]any) (map[string]any, error) {
	f.record("CreateDeployment")
	if f.deployErr != nil {
		return nil, f.deployErr
	}
	return f.outputs, nil
}

func (f *fakeAzure) DeploymentToken(ctx context.Context, rg, siteName string) (string, error) {
	f.record("DeploymentToken:" + siteName)
	return f.token, f.tokenErr
}

func (f *fakeAzure) mutatingCalls() []string {
	var out []string
	for _, c := range f.calls {
		if c == "CreateDeployment" || len(c) > 19 && c[:19] == "CreateResourceGroup" {
			out = append(out, c)
		}
	}
	return out
}

func validParams() *params.DeploymentParameters {
	return &params.DeploymentParameters{
		EnvironmentName: "dev",
		ApplicationName: "wikidocs",
		Location:        "centralus",
		Sku:             "Free",
		ClientID:        "11111111-2222-3333-4444-555555555555",
		TenantID:        "66666666-7777-8888-9999-000000000000",
	}
}

func fakeOutputsFor(siteName string) map[string]any {
	hostname := "happy-bush-0a1b2c3d.azurestaticapps.net"
	return map[string]any{
		"staticWebAppId":   map[string]any{"type": "String", "value": "/subscriptions/sub/resourceGroups/rg/providers/Microsoft.Web/staticSites/" + siteName},
		"staticWebAppName": map[string]any{"type": "String", "value": siteName},
		"defaultHostname":  map[string]any{"type": "String", "value": hostname},
		"siteUrl":          map[string]any{"type": "String", "value": "https://" + hostname},
		"location":         map[string]any{"type": "String", "value": "centralus"},
		"environmentName":  map[string]any{"type": "String", "value": "dev"},
	}
}

func newPipeline(t *testing.T, fake *fakeAzure, mutate func(*Options)) *Pipeline {
	t.Helper()
	opts := Options{
		Params:         validParams(),
		SubscriptionID: "00000000-0000-0000-0000-000000000000",
		OutputFile:     filepath.Join(t.TempDir(), "outputs.json"),
	}
	if mutate != nil {
		mutate(&opts)
	}
	return New(fake, opts)
}

func TestRunRejectsInvalidLocationBeforeAnyCall(t *testing.T) {
	fake := &fakeAzure{}
	p := newPipeline(t, fake, func(o *Options) {
		o.Params.Location = "unsupported-region"
	})

	_, err := p.Run(context.Background())

	var verr *params.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Empty(t, fake.calls, "validation failures must precede any network call")
}

func TestRunRequiresSubscription(t *testing.T) {
	fake := &fakeAzure{}
	p := newPipeline(t, fake, func(o *Options) { o.SubscriptionID = "" })

	_, err := p.Run(context.Background())

	var perr *PrerequisiteError
	require.ErrorAs(t, err, &perr)
	assert.Empty(t, fake.calls)
}

func TestRunFailsFastWithoutAuthenticatedSession(t *testing.T) {
	fake := &fakeAzure{credentialErr: errors.New("no token")}
	p := newPipeline(t, fake, nil)

	_, err := p.Run(context.Background())

	var perr *PrerequisiteError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Remediation, "az login")
	assert.Equal(t, []string{"VerifyCredential"}, fake.calls,
		"no cloud API call may follow a failed prerequisite check")
}

func TestRunDefaultsTenantFromCredential(t *testing.T) {
	fake := &fakeAzure{tenantID: "tenant-from-token", groupExists: true}
	p := newPipeline(t, fake, func(o *Options) {
		o.Params.TenantID = ""
	})
	fake.outputs = fakeOutputsFor("ignored")

	_, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Contains(t, fake.calls, "CurrentTenantID")
	assert.Equal(t, "tenant-from-token", p.opts.Params.TenantID)
}

func TestRunCreatesResourceGroupOnlyWhenAbsent(t *testing.T) {
	fake := &fakeAzure{groupExists: false, outputs: fakeOutputsFor("site")}
	p := newPipeline(t, fake, nil)

	_, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Contains(t, fake.calls, "CreateResourceGroup:rg-wikidocs-dev")

	fake2 := &fakeAzure{groupExists: true, outputs: fakeOutputsFor("site")}
	p2 := newPipeline(t, fake2, nil)

	_, err = p2.Run(context.Background())
	require.NoError(t, err)
	for _, call := range fake2.calls {
		assert.NotContains(t, call, "CreateResourceGroup")
	}
}

func TestRunWhatIfNeverMutates(t *testing.T) {
	fake := &fakeAzure{
		groupExists: true,
		preview: &types.DeploymentPreview{
			Status: "Succeeded",
			Changes: []*types.DeploymentPreviewChange{
				{ChangeType: types.ChangeTypeCreate, ResourceID: "/some/id"},
			},
		},
	}
	p := newPipeline(t, fake, func(o *Options) { o.WhatIf = true })

	result, err := p.Run(context.Background())
	require.NoError(t, err)

	require.NotNil(t, result.Preview)
	assert.Nil(t, result.Outputs)
	assert.Empty(t, fake.mutatingCalls(), "what-if mode must not mutate cloud state")
	assert.Contains(t, result.Preview.Summary(), "create=1")
}

func TestRunWhatIfRequiresExistingResourceGroup(t *testing.T) {
	fake := &fakeAzure{groupExists: false}
	p := newPipeline(t, fake, func(o *Options) { o.WhatIf = true })

	_, err := p.Run(context.Background())

	var perr *PrerequisiteError
	require.ErrorAs(t, err, &perr)
	assert.Empty(t, fake.mutatingCalls())
}

func TestRunValidateOnlyStopsAfterValidation(t *testing.T) {
	fake := &fakeAzure{groupExists: true}
	p := newPipeline(t, fake, func(o *Options) { o.ValidateOnly = true })

	result, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Nil(t, result.Preview)
	assert.Nil(t, result.Outputs)
	assert.Contains(t, fake.calls, "ValidateDeployment")
	assert.NotContains(t, fake.calls, "WhatIfDeployment")
	assert.Empty(t, fake.mutatingCalls())
}

func TestRunSurfacesTemplateValidationError(t *testing.T) {
	fake := &fakeAzure{groupExists: true, validateErr: errors.New("InvalidTemplate: bad reference")}
	p := newPipeline(t, fake, nil)

	_, err := p.Run(context.Background())

	var terr *TemplateValidationError
	require.ErrorAs(t, err, &terr)
	assert.Contains(t, terr.Error(), "InvalidTemplate")
	assert.Empty(t, fake.mutatingCalls())
}

func TestRunSurfacesDeploymentError(t *testing.T) {
	fake := &fakeAzure{groupExists: true, deployErr: errors.New("reconciliation failed")}
	p := newPipeline(t, fake, nil)

	_, err := p.Run(context.Background())

	var derr *DeploymentError
	require.ErrorAs(t, err, &derr)
	assert.Contains(t, derr.Error(), "reconciliation failed")
}

func TestRunCapturesOutputsAndToken(t *testing.T) {
	siteName := derivedSiteName("00000000-0000-0000-0000-000000000000", "rg-wikidocs-dev")
	fake := &fakeAzure{groupExists: true, outputs: fakeOutputsFor(siteName), token: "secret-token"}

	outputFile := filepath.Join(t.TempDir(), "outputs.json")
	p := newPipeline(t, fake, func(o *Options) { o.OutputFile = outputFile })

	result, err := p.Run(context.Background())
	require.NoError(t, err)

	require.NotNil(t, result.Outputs)
	assert.Regexp(t, `^stapp-wikidocs-dev-[a-z0-9]+$`, result.SiteName)
	assert.Equal(t, siteName, result.Outputs.StaticWebAppName)
	assert.NotEmpty(t, result.Outputs.DefaultHostname)
	assert.Equal(t, "https://"+result.Outputs.DefaultHostname, result.Outputs.SiteURL)
	assert.Equal(t, "secret-token", result.Outputs.DeploymentToken)
	assert.Equal(t, "rg-wikidocs-dev", result.Outputs.ResourceGroup)

	persisted, err := ReadOutputs(outputFile)
	require.NoError(t, err)
	assert.Equal(t, result.Outputs, persisted)
}

func TestRunDerivedNameIsStableAcrossRuns(t *testing.T) {
	run := func() string {
		fake := &fakeAzure{groupExists: true, outputs: fakeOutputsFor("site")}
		p := newPipeline(t, fake, nil)
		result, err := p.Run(context.Background())
		require.NoError(t, err)
		return result.SiteName
	}

	assert.Equal(t, run(), run())
}

func TestRunContinuesWhenTokenFetchFails(t *testing.T) {
	fake := &fakeAzure{groupExists: true, outputs: fakeOutputsFor("site"), tokenErr: errors.New("forbidden")}
	p := newPipeline(t, fake, nil)

	result, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, result.Outputs.DeploymentToken)
}

// derivedSiteName mirrors the pipeline's name derivation for assertions.
func derivedSiteName(subscriptionID, resourceGroup string) string {
	p := New(&fakeAzure{groupExists: true, outputs: map[string]any{}}, Options{
		Params:         validParams(),
		SubscriptionID: subscriptionID,
		ResourceGroup:  resourceGroup,
		ValidateOnly:   true,
	})
	result, err := p.Run(context.Background())
	if err != nil {
		panic(fmt.Sprintf("derivedSiteName: %v", err))
	}
	return result.SiteName
}
