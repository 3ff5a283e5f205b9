package params

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"azure-staticwebapp-deployer/pkg/constants"
)

// Limits imposed by the static site resource naming rules.
const (
	MaxEnvironmentNameLength = 10
	MaxApplicationNameLength = 20
)

// AllowedLocations lists the regions where the static site resource type is
// available. Deployments to any other region are rejected locally, before a
// resource group or deployment call is made.
var AllowedLocations = []string{
	"westus2",
	"centralus",
	"eastus2",
	"westeurope",
	"eastasia",
}

// AllowedSkus lists the supported hosting plan tiers.
var AllowedSkus = []string{"Free", "Standard"}

// DeploymentParameters holds the validated input set for a single deployment
// invocation. ClientID is treated as a secure value: it is passed to the
// template as a secureString parameter and never written to logs.
type DeploymentParameters struct {
	EnvironmentName string
	ApplicationName string
	Location        string
	Sku             string
	ClientID        string
	TenantID        string
	Tags            map[string]string
}

// ValidationError reports a parameter that failed validation, with the
// allowed set when the field is enum-constrained.
type ValidationError struct {
	Field   string
	Value   string
	Allowed []string
	Reason  string
}

func (e *ValidationError) Error() string {
	if len(e.Allowed) > 0 {
		return fmt.Sprintf("invalid value %q for %s: allowed values are %s",
			e.Value, e.Field, strings.Join(e.Allowed, ", "))
	}
	return fmt.Sprintf("invalid value %q for %s: %s", e.Value, e.Field, e.Reason)
}

// FromViper assembles parameters from the resolved viper configuration
// (flags, environment variables, config file, defaults — in that order).
func FromViper() *DeploymentParameters {
	return &DeploymentParameters{
		EnvironmentName: viper.GetString(constants.Environment),
		ApplicationName: viper.GetString(constants.Application),
		Location:        viper.GetString(constants.Location),
		Sku:             viper.GetString(constants.Sku),
		ClientID:        viper.GetString(constants.ClientID),
		TenantID:        viper.GetString(constants.TenantID),
		Tags:            viper.GetStringMapString(constants.Tags),
	}
}

// Validate checks every constrained field and returns the first violation.
// It has no side effects; callers rely on it running before any cloud call.
func (p *DeploymentParameters) Validate() error {
	if p.EnvironmentName == "" {
		return &ValidationError{Field: "environmentName", Reason: "must not be empty"}
	}
	if len(p.EnvironmentName) > MaxEnvironmentNameLength {
		return &ValidationError{
			Field:  "environmentName",
			Value:  p.EnvironmentName,
			Reason: fmt.Sprintf("must be at most %d characters", MaxEnvironmentNameLength),
		}
	}
	if p.ApplicationName == "" {
		return &ValidationError{Field: "applicationName", Reason: "must not be empty"}
	}
	if len(p.ApplicationName) > MaxApplicationNameLength {
		return &ValidationError{
			Field:  "applicationName",
			Value:  p.ApplicationName,
			Reason: fmt.Sprintf("must be at most %d characters", MaxApplicationNameLength),
		}
	}
	if !contains(AllowedLocations, p.Location) {
		return &ValidationError{Field: "location", Value: p.Location, Allowed: AllowedLocations}
	}
	if !contains(AllowedSkus, p.Sku) {
		return &ValidationError{Field: "staticWebAppSku", Value: p.Sku, Allowed: AllowedSkus}
	}
	return nil
}

func contains(set []string, value string) bool {
	for _, v := range set {
		if v == value {
			return true
		}
	}
	return false
}
