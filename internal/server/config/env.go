package config

import "os"

// parseEnv overlays secret-bearing settings from environment variables so
// deployments never have to put credentials on the command line.
//
// Recognized variables:
//
//	DATABASE_DSN, JWT_SECRET_KEY,
//	S3_ACCESS_KEY, S3_SECRET_KEY, S3_BUCKET, S3_REGION, S3_BASE_ENDPOINT,
//	SHARE_BASE_URL, ANTHROPIC_API_KEY, SUMMARY_MODEL
func parseEnv(config *Config) {
	set := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}

	set(&config.DatabaseDSN, "DATABASE_DSN")
	set(&config.SecretKey, "JWT_SECRET_KEY")
	set(&config.S3AccessKey, "S3_ACCESS_KEY")
	set(&config.S3SecretKey, "S3_SECRET_KEY")
	set(&config.S3Bucket, "S3_BUCKET")
	set(&config.S3Region, "S3_REGION")
	set(&config.S3BaseEndpoint, "S3_BASE_ENDPOINT")
	set(&config.ShareBaseURL, "SHARE_BASE_URL")
	set(&config.AnthropicAPIKey, "ANTHROPIC_API_KEY")
	set(&config.SummaryModel, "SUMMARY_MODEL")
}
