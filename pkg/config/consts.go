package config

const (
	// EnvPrefix namespaces every environment variable consumed by the app.
	EnvPrefix = "WARDROBE"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)
