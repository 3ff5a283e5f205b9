package types

// DeploymentOutputs is the contract written to the local outputs artifact
// after a successful deployment. Downstream automation (CI variable setup,
// redirect URI updates) consumes it as plain configuration values.
type DeploymentOutputs struct {
	StaticWebAppID   string `json:"staticWebAppId"`
	StaticWebAppName string `json:"staticWebAppName"`
	DefaultHostname  string `json:"defaultHostname"`
	SiteURL          string `json:"siteUrl"`
	DeploymentToken  string `json:"deploymentToken,omitempty"`
	Location         string `json:"location"`
	EnvironmentName  string `json:"environmentName"`
	ResourceGroup    string `json:"resourceGroup"`
}

const redactedPlaceholder = "<redacted>"

// Redacted returns a copy safe for printing: the deployment token is
// replaced with a placeholder when present.
func (o DeploymentOutputs) Redacted() DeploymentOutputs {
	if o.DeploymentToken != "" {
		o.DeploymentToken = redactedPlaceholder
	}
	return o
}

// RedirectURI computes the Entra ID callback URI for the deployed site,
// needed when updating the application registration after first deployment.
func (o DeploymentOutputs) RedirectURI() string {
	if o.SiteURL == "" {
		return ""
	}
	return o.SiteURL + "/.auth/login/aad/callback"
}
