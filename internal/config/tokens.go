package config

// TokenStore persists session tokens through the config file.  It exists so the
// session package can depend on a small interface instead of this package.
type TokenStore struct{}

// Save writes both tokens to the config file on disk.
func (TokenStore) Save(access, refresh string) error {
	return UpdateConfig(func(c *Config) {
		c.Auth.AccessToken = access
		c.Auth.RefreshToken = refresh
	})
}

// Clear removes both tokens from the config file on disk.
func (TokenStore) Clear() error {
	return UpdateConfig(func(c *Config) {
		c.Auth.AccessToken = ""
		c.Auth.RefreshToken = ""
	})
}
