package naming

import (
	"crypto/sha256"
	"fmt"
	"math/big"
	"strings"

	"azure-staticwebapp-deployer/pkg/constants"
)

// ScopeTokenLength matches the 13-character token produced by the ARM
// uniqueString() function, which this derivation stands in for.
const ScopeTokenLength = 13

// ScopeToken derives a deterministic uniqueness token from the identity of
// the deployment scope (the resource group's fully qualified resource ID).
// Identical scopes always yield identical tokens, so redeploying into the
// same group reuses the same resource names without operator coordination.
func ScopeToken(scopeID string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(scopeID)))

	// Base-36 encode the digest and keep the leading characters, mirroring
	// the shape of ARM's uniqueString output.
	encoded := new(big.Int).SetBytes(sum[:]).Text(36)
	if len(encoded) > ScopeTokenLength {
		encoded = encoded[:ScopeTokenLength]
	}
	return encoded
}

// StaticSiteName builds the globally unique static site resource name.
func StaticSiteName(appName, envName, scopeToken string) string {
	return fmt.Sprintf("stapp-%s-%s-%s", appName, envName, scopeToken)
}

// ResourceGroupName builds the default resource group name for an
// application/environment pair. Operators can override it via flag or the
// AZURE_RESOURCE_GROUP environment variable.
func ResourceGroupName(appName, envName string) string {
	return fmt.Sprintf("rg-%s-%s", appName, envName)
}

// ScopeID builds the fully qualified resource ID of a resource group, the
// deployment scope whose identity seeds ScopeToken.
func ScopeID(subscriptionID, resourceGroup string) string {
	return fmt.Sprintf("/subscriptions/%s/resourceGroups/%s", subscriptionID, resourceGroup)
}

// SystemTags returns the governance tags stamped on every deployed resource.
func SystemTags(appName, envName string) map[string]string {
	return map[string]string{
		constants.TagKeyEnvironment: envName,
		constants.TagKeyApplication: appName,
		constants.TagKeyManagedBy:   constants.TagValueManagedBy,
	}
}

// MergeTags unions user-supplied tags with system tags. On key collision the
// system tag wins, so required governance tags cannot be overridden.
func MergeTags(userTags, systemTags map[string]string) map[string]string {
	merged := make(map[string]string, len(userTags)+len(systemTags))
	for k, v := range userTags {
		merged[k] = v
	}
	for k, v := range systemTags {
		merged[k] = v
	}
	return merged
}
