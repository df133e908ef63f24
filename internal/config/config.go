package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/ziadkadry99/rsvpbridge/internal/whatsapp"
)

// EnvPrefix marks environment overrides for any config key, e.g.
// RSVP_API_VERSION -> api_version, RSVP_MESSAGES__PROMPT -> messages.prompt.
const EnvPrefix = "RSVP_"

// legacyEnv maps the plain environment variables of earlier deployments to
// config keys.
var legacyEnv = map[string]string{
	"WEBHOOK_VERIFY_TOKEN": "verify_token",
	"WA_PHONE_NUMBER_ID":   "phone_number_id",
	"WA_ACCESS_TOKEN":      "access_token",
	"PORT":                 "port",
}

// Load reads configuration from the given YAML file, then overlays the
// legacy environment variables and finally RSVP_* overrides. Blank
// environment values are ignored.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.ProviderWithValue("", ".", func(key, value string) (string, interface{}) {
		mapped, ok := legacyEnv[key]
		if !ok || strings.TrimSpace(value) == "" {
			return "", nil
		}
		return mapped, value
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env: %w", err)
	}

	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, interface{}) {
		if strings.TrimSpace(value) == "" {
			return "", nil
		}
		name := strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
		return strings.ReplaceAll(name, "__", "."), value
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path. The file
// holds the access token, so it is written owner-only.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.VerifyToken == "" {
		return fmt.Errorf("verify_token is required (WEBHOOK_VERIFY_TOKEN)")
	}
	if c.PhoneNumberID == "" {
		return fmt.Errorf("phone_number_id is required (WA_PHONE_NUMBER_ID)")
	}
	if c.AccessToken == "" {
		return fmt.Errorf("access_token is required (WA_ACCESS_TOKEN)")
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d: must be between 1 and 65535", c.Port)
	}

	if c.APIVersion == "" {
		return fmt.Errorf("api_version is required")
	}
	if err := validateHTTPURL("api_base_url", c.APIBaseURL); err != nil {
		return err
	}
	if err := validateHTTPURL("ticket.qr_base_url", c.Ticket.QRBaseURL); err != nil {
		return err
	}

	if c.WebhookPath != "" && !strings.HasPrefix(c.WebhookPath, "/") {
		return fmt.Errorf("invalid webhook_path %q: must start with /", c.WebhookPath)
	}

	if strings.TrimSpace(c.TriggerPhrase) == "" {
		return fmt.Errorf("trigger_phrase is required")
	}

	if c.SendTimeoutSeconds < 0 {
		return fmt.Errorf("send_timeout_seconds must be non-negative")
	}
	if c.ShutdownTimeoutSeconds < 0 {
		return fmt.Errorf("shutdown_timeout_seconds must be non-negative")
	}

	return nil
}

func validateHTTPURL(key, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid %s %q: must be an absolute http(s) URL", key, raw)
	}
	return nil
}

// ClientConfig returns the WhatsApp client settings.
func (c *Config) ClientConfig() whatsapp.ClientConfig {
	return whatsapp.ClientConfig{
		BaseURL:       c.APIBaseURL,
		APIVersion:    c.APIVersion,
		PhoneNumberID: c.PhoneNumberID,
		AccessToken:   c.AccessToken,
		Timeout:       time.Duration(c.SendTimeoutSeconds) * time.Second,
	}
}

// ShutdownTimeout returns how long serve waits for in-flight work on exit.
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}
