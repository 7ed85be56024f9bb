package config

import "fmt"

// AuthConfig holds the shared secret for the API-key gate.
// The loader falls back to the well-known default "changeme" when no key is
// configured; that weak default is kept for compatibility and must be
// overridden in any real deployment.
type AuthConfig struct {
	APIKey string `koanf:"apikey"`
}

func (c *AuthConfig) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("auth api key is not configured")
	}
	return nil
}
