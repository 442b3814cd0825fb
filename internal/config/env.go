package config

import (
	"os"
)

type envVar struct {
	name  string
	desc  string
	apply func(*Config, string)
}

var supportedEnvVars = []envVar{
	{
		// Only here for documentation purposes.  Does not override any values in the config as this environment variable
		// points to where the config should be loaded.  It is handled prior to loading the config.
		name:  "YOMU_CONFIG_PATH",
		desc:  "Sets the path to the config file.  Default: OS-specific config directory",
		apply: func(c *Config, s string) {}, // Special case, no-op
	},
	{
		name:  "YOMU_CONFIG_API_BASE_URL",
		desc:  "Sets the base URL of the manga site API.  Default: http://127.0.0.1:8000",
		apply: func(c *Config, s string) { c.API.BaseURL = s },
	},
	{
		name:  "YOMU_CONFIG_AUTH_ACCESS_TOKEN",
		desc:  "Sets the API access token.  Default: None",
		apply: func(c *Config, s string) { c.Auth.AccessToken = s },
	},
	{
		name:  "YOMU_CONFIG_AUTH_REFRESH_TOKEN",
		desc:  "Sets the API refresh token.  Default: None",
		apply: func(c *Config, s string) { c.Auth.RefreshToken = s },
	},
	{
		name:  "YOMU_CONFIG_HISTORY_FILE_PATH",
		desc:  "Sets the reading history file path.  Default: OS-specific",
		apply: func(c *Config, s string) { c.History.FilePath = s },
	},
	{
		name:  "YOMU_CONFIG_LOGGING_LEVEL",
		desc:  "Sets the logging level.  One of: debug, info, warn, error.  Default: info",
		apply: func(c *Config, s string) { c.Logging.Level = s },
	},
	{
		name:  "YOMU_CONFIG_LOGGING_FILE_PATH",
		desc:  "Sets the logging file path.  Default: OS-specific",
		apply: func(c *Config, s string) { c.Logging.FilePath = s },
	},
}

func applyEnvVarOverrides(c *Config) {
	for _, envVar := range supportedEnvVars {
		if value := os.Getenv(envVar.name); value != "" {
			envVar.apply(c, value)
		}
	}
}
