package azure

import (
	"context"
	"fmt"

	msgraph "github.com/microsoftgraph/msgraph-sdk-go"
	"github.com/microsoftgraph/msgraph-sdk-go/applications"
	"github.com/microsoftgraph/msgraph-sdk-go/models"

	utilities "azure-staticwebapp-deployer/pkg/utils"
)

// GetGraphClient lazily builds the Microsoft Graph client on the shared
// credential. Only the redirect-uri command needs Graph access, so the
// client is not constructed up front.
func (c *Clients) GetGraphClient() (*msgraph.GraphServiceClient, error) {
	if c.graph == nil {
		client, err := msgraph.NewGraphServiceClientWithCredentials(c.credential, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create Microsoft Graph client: %w", err)
		}
		c.graph = client
	}
	return c.graph, nil
}

// AddRedirectURI appends a SPA redirect URI to the Entra ID application
// registration identified by its client ID. The operation is idempotent:
// a URI already present is left untouched.
func (c *Clients) AddRedirectURI(ctx context.Context, clientID, redirectURI string) error {
	graph, err := c.GetGraphClient()
	if err != nil {
		return err
	}

	utilities.LogVerbose("Looking for Entra ID application with client ID: %s", clientID)

	filter := fmt.Sprintf("appId eq '%s'", clientID)
	apps, err := graph.Applications().Get(ctx, &applications.ApplicationsRequestBuilderGetRequestConfiguration{
		QueryParameters: &applications.ApplicationsRequestBuilderGetQueryParameters{
			Filter: &filter,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to get application by client ID: %w", err)
	}

	if apps.GetValue() == nil || len(apps.GetValue()) == 0 {
		return fmt.Errorf("no application found with client ID: '%s'", clientID)
	}

	targetApp := apps.GetValue()[0]
	var applicationID string
	if targetApp.GetId() != nil {
		applicationID = *targetApp.GetId()
	}

	var existingURIs []string
	if spa := targetApp.GetSpa(); spa != nil {
		existingURIs = spa.GetRedirectUris()
	}

	for _, uri := range existingURIs {
		if uri == redirectURI {
			utilities.LogDefault("Redirect URI already registered: %s", redirectURI)
			return nil
		}
	}

	spa := models.NewSpaApplication()
	spa.SetRedirectUris(append(existingURIs, redirectURI))

	updateApp := models.NewApplication()
	updateApp.SetSpa(spa)

	_, err = graph.Applications().ByApplicationId(applicationID).Patch(ctx, updateApp, nil)
	if err != nil {
		return fmt.Errorf("failed to update redirect URIs for application (appId: %s): %w", clientID, err)
	}

	utilities.LogDefault("Redirect URI registered: %s", redirectURI)
	return nil
}
