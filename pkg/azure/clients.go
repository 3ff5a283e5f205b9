package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/appservice/armappservice/v2"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/golang-jwt/jwt/v5"
	msgraph "github.com/microsoftgraph/msgraph-sdk-go"
)

const managementScope = "https://management.azure.com/.default"

// Clients bundles the Azure SDK clients used by the deployment pipeline.
// All clients share a single DefaultAzureCredential, so any authentication
// method that credential chain supports (CLI login, environment variables,
// managed identity) works here.
type Clients struct {
	SubscriptionID string

	credential  *azidentity.DefaultAzureCredential
	groups      *armresources.ResourceGroupsClient
	deployments *armresources.DeploymentsClient
	staticSites *armappservice.StaticSitesClient
	graph       *msgraph.GraphServiceClient
}

// NewClients builds the client set for a subscription. Credential validity
// is not proven here; call VerifyCredential before the first cloud call.
func NewClients(subscriptionID string) (*Clients, error) {
	if subscriptionID == "" {
		return nil, fmt.Errorf("subscription ID is required to initialize Azure clients")
	}

	credential, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to obtain a credential: %w", err)
	}

	groups, err := armresources.NewResourceGroupsClient(subscriptionID, credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource groups client: %w", err)
	}

	deployments, err := armresources.NewDeploymentsClient(subscriptionID, credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create deployments client: %w", err)
	}

	staticSites, err := armappservice.NewStaticSitesClient(subscriptionID, credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create static sites client: %w", err)
	}

	return &Clients{
		SubscriptionID: subscriptionID,
		credential:     credential,
		groups:         groups,
		deployments:    deployments,
		staticSites:    staticSites,
	}, nil
}

// VerifyCredential proves the credential chain yields a management-plane
// token, surfacing authentication problems before any deployment work.
func (c *Clients) VerifyCredential(ctx context.Context) error {
	_, err := c.credential.GetToken(ctx, policy.TokenRequestOptions{
		Scopes: []string{managementScope},
	})
	if err != nil {
		return fmt.Errorf("authentication failed, check your Azure credentials and permissions: %w", err)
	}
	return nil
}

// CurrentTenantID reports the tenant the credential authenticated against,
// read from the tid claim of a management-plane token. Used as the default
// when no tenant ID is configured.
func (c *Clients) CurrentTenantID(ctx context.Context) (string, error) {
	token, err := c.credential.GetToken(ctx, policy.TokenRequestOptions{
		Scopes: []string{managementScope},
	})
	if err != nil {
		return "", fmt.Errorf("failed to obtain a token for tenant discovery: %w", err)
	}

	// The token was just issued by Entra ID over TLS; its claims are read
	// without signature verification because this process is the audience.
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token.Token, claims); err != nil {
		return "", fmt.Errorf("failed to parse access token: %w", err)
	}

	tenantID, _ := claims["tid"].(string)
	if tenantID == "" {
		return "", fmt.Errorf("access token carries no tenant claim")
	}
	return tenantID, nil
}
