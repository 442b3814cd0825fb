package config

import (
	"github.com/stretchr/testify/assert"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func setupTestConfig(t *testing.T) string {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "yomu-config-test")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}

	t.Cleanup(func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			t.Fatalf("Failed to remove temp directory: %v", err)
		}
	})

	tmpConfigPath := filepath.Join(tmpDir, "config.yaml")
	setEnv(t, "YOMU_CONFIG_PATH", tmpConfigPath)

	t.Cleanup(func() {
		cleanupEnvVars(t)
	})

	return tmpConfigPath
}

// TestConfigIntegration tests the config package with actual file operations
// This test uses a temporary directory to avoid interfering with real user configs
func TestConfigIntegration(t *testing.T) {
	// Test loading when no config exists (should create default)
	t.Run("LoadDefaultConfig", func(t *testing.T) {
		tmpConfigPath := setupTestConfig(t)
		config := loadConfig(t)

		// Verify default values
		assert.Equal(t, "http://127.0.0.1:8000", config.API.BaseURL)
		assert.Equal(t, "info", config.Logging.Level)
		assert.NotEmpty(t, config.Logging.FilePath)
		assert.NotEmpty(t, config.History.FilePath)

		// Verify file was created
		if _, err := os.Stat(tmpConfigPath); os.IsNotExist(err) {
			t.Errorf("Config file was not created at %s", tmpConfigPath)
		}

		// Load the file from disk to assert that the 'dynamic' configurations were not saved when the default config was written
		savedConfig, _ := loadFromDisk(tmpConfigPath)
		assert.Empty(t, savedConfig.Logging.FilePath)
		assert.Empty(t, savedConfig.History.FilePath)
	})

	// Test saving and loading custom values
	t.Run("SaveAndLoadConfig", func(t *testing.T) {
		tmpConfigPath := setupTestConfig(t)
		// Create a config with custom values
		customConfig := &Config{
			API: APIConfig{
				BaseURL: "https://manga.example.com",
			},
			Auth: AuthConfig{
				AccessToken:  "test-access",
				RefreshToken: "test-refresh",
			},
			History: HistoryConfig{
				FilePath: "/var/lib/yomu/history.yaml",
			},
			Logging: LoggingConfig{
				Level:    "error",
				FilePath: "/var/log/yomu.log",
			},
		}

		saveConfig(t, customConfig, tmpConfigPath)
		loadedConfig := loadConfig(t)

		// Verify loaded values match what we saved
		assert.Equal(t, "https://manga.example.com", loadedConfig.API.BaseURL)
		assert.Equal(t, "test-access", loadedConfig.Auth.AccessToken)
		assert.Equal(t, "test-refresh", loadedConfig.Auth.RefreshToken)
		assert.Equal(t, "/var/lib/yomu/history.yaml", loadedConfig.History.FilePath)
		assert.Equal(t, "error", loadedConfig.Logging.Level)
		assert.Equal(t, "/var/log/yomu.log", loadedConfig.Logging.FilePath)
	})

	// Test invalid YAML handling
	t.Run("InvalidConfig", func(t *testing.T) {
		tmpConfigPath := setupTestConfig(t)
		// Write invalid YAML to the config file
		if err := os.WriteFile(tmpConfigPath, []byte("invalid: yaml: ["), 0600); err != nil {
			t.Fatalf("Failed to write invalid config: %v", err)
		}

		// Attempt to load the invalid config
		_, err := Load()
		if err == nil {
			t.Error("Expected error when loading invalid YAML, got nil")
		}
	})

	t.Run("EnvironmentVariableOverrides", func(t *testing.T) {
		setupTestConfig(t)

		setEnv(t, "YOMU_CONFIG_API_BASE_URL", "https://override.example.com")
		setEnv(t, "YOMU_CONFIG_AUTH_ACCESS_TOKEN", "env-access")
		setEnv(t, "YOMU_CONFIG_AUTH_REFRESH_TOKEN", "env-refresh")
		setEnv(t, "YOMU_CONFIG_LOGGING_LEVEL", "warn")
		setEnv(t, "YOMU_CONFIG_LOGGING_FILE_PATH", "/yomu.log")
		setEnv(t, "YOMU_CONFIG_HISTORY_FILE_PATH", "/history.yaml")

		config := loadConfig(t)

		assert.Equal(t, "https://override.example.com", config.API.BaseURL)
		assert.Equal(t, "env-access", config.Auth.AccessToken)
		assert.Equal(t, "env-refresh", config.Auth.RefreshToken)
		assert.Equal(t, "warn", config.Logging.Level)
		assert.Equal(t, "/yomu.log", config.Logging.FilePath)
		assert.Equal(t, "/history.yaml", config.History.FilePath)

		// Remove one env var, then reload the config.
		// This ensures that the env var overrides were not persisted to disk.
		unsetEnv(t, "YOMU_CONFIG_LOGGING_LEVEL")

		config = loadConfig(t)

		assert.Equal(t, "info", config.Logging.Level)
	})

	t.Run("ModifyConfig", func(t *testing.T) {
		setupTestConfig(t)
		config := loadConfig(t)

		assert.Empty(t, config.Auth.AccessToken)

		err := UpdateConfig(func(config *Config) {
			config.Auth.AccessToken = "persisted-token"
		})
		if err != nil {
			t.Fatalf("Failed to update config: %v", err)
		}

		// Reload the config and ensure it has the new value
		config = loadConfig(t)
		assert.Equal(t, "persisted-token", config.Auth.AccessToken)
	})

	t.Run("TokenStore", func(t *testing.T) {
		setupTestConfig(t)
		loadConfig(t)

		store := TokenStore{}
		if err := store.Save("access-1", "refresh-1"); err != nil {
			t.Fatalf("Failed to save tokens: %v", err)
		}

		config := loadConfig(t)
		assert.Equal(t, "access-1", config.Auth.AccessToken)
		assert.Equal(t, "refresh-1", config.Auth.RefreshToken)

		if err := store.Clear(); err != nil {
			t.Fatalf("Failed to clear tokens: %v", err)
		}

		config = loadConfig(t)
		assert.Empty(t, config.Auth.AccessToken)
		assert.Empty(t, config.Auth.RefreshToken)
	})
}

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	err := os.Setenv(key, value)
	if err != nil {
		t.Fatalf("Failed to set environment variable: %v", err)
	}
}

func unsetEnv(t *testing.T, key string) {
	t.Helper()
	err := os.Unsetenv(key)
	if err != nil {
		t.Fatalf("Failed to unset environment variable: %v", err)
	}
}

func saveConfig(t *testing.T, config *Config, configPath string) {
	t.Helper()
	if err := save(config, configPath); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}
}

func loadConfig(t *testing.T) *Config {
	t.Helper()
	config, err := Load()
	if err != nil {
		t.Fatalf("Loading of config failed: %v", err)
	}
	return config
}

// Removes any env vars with the YOMU_CONFIG prefix to ensure test isolation
func cleanupEnvVars(t *testing.T) {
	t.Helper()

	for _, envVar := range os.Environ() {
		if key := strings.Split(envVar, "=")[0]; strings.HasPrefix(key, "YOMU_CONFIG") {
			unsetEnv(t, key)
		}
	}
}
