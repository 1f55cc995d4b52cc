package config

const (
	// EnvPrefix namespaces every environment variable the service reads.
	EnvPrefix = "amara"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "AMARA_DB_DSN"
	EnvDBHost = "AMARA_DB_HOST"
	EnvDBUser = "AMARA_DB_USER"
	EnvDBName = "AMARA_DB_NAME"
)

var requiredDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
