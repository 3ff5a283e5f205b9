package constants

const (
	// Deployment related keywords and Viper keys
	Environment    = "environment"
	Application    = "application"
	Location       = "location"
	Sku            = "sku"
	ResourceGroup  = "resource-group"
	SubscriptionID = "subscription"
	Tags           = "tags"
	OutputFile     = "output-file"
	WhatIf         = "what-if"

	// Authentication related keywords and Viper keys
	ClientID = "client-id"
	TenantID = "tenant-id"

	// Other keywords and Viper keys
	Format      = "format"
	Verbose     = "verbose"
	ShowSecrets = "show-secrets"
	Shell       = "shell"
	ConfigFile  = "config"
	Bash        = "bash"
	PowerShell  = "powershell"
	JSON        = "json"
	YAML        = "yaml"
	TOML        = "toml"
	CommandName = "azure-staticwebapp-deployer"

	// Environment variable names
	EnvSubscriptionID = "AZURE_SUBSCRIPTION_ID"
	EnvResourceGroup  = "AZURE_RESOURCE_GROUP"
	EnvLocation       = "AZURE_LOCATION"
	EnvClientID       = "AZURE_CLIENT_ID"
	EnvTenantID       = "AZURE_TENANT_ID"
	EnvEnvironment    = "AZURE_ENV_NAME"
	EnvConfigFile     = "CONFIG_FILE"

	// Defaults
	DefaultEnvironment = "dev"
	DefaultApplication = "wikidocs"
	DefaultLocation    = "centralus"
	DefaultSku         = "Free"
)

// System tag keys stamped on every deployed resource. User-supplied tags
// never override these.
const (
	TagKeyEnvironment = "environment"
	TagKeyApplication = "application"
	TagKeyManagedBy   = "managed-by"

	TagValueManagedBy = CommandName
)

// Application settings injected into the static site configuration and read
// by the Entra ID authentication integration at request time.
const (
	SettingClientID = "AZURE_CLIENT_ID"
	SettingTenantID = "AZURE_TENANT_ID"
)
