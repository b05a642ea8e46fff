// Package config provides types for handling configuration parameters.
package config

import (
	"flag"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v6"
)

// Config handles server-related constants and parameters.
type Config struct {
	ServerConfig  *ServerConfig
	SecretConfig  *SecretConfig
	StorageConfig *StorageConfig
	OAuthConfig   *OAuthConfig
	WebhookConfig *WebhookConfig
}

// ServerConfig defines default server-related constants and parameters and overwrites them with environment variables.
type ServerConfig struct {
	ServerAddress string `env:"SERVER_ADDRESS" envDefault:":8080"`
	BaseURL       string `env:"BASE_URL" envDefault:"http://localhost:8080"`
	SecureCookies bool   `env:"SECURE_COOKIES" envDefault:"false"`
}

// SecretConfig retrieves signing-key parameters from environment.
type SecretConfig struct {
	SessionKey string `env:"SESSION_KEY" envDefault:"jds__63h3_7ds"`
	AuthCookie string `env:"AUTH_COOKIE_NAME" envDefault:"dcs_session"`
}

// StorageConfig retrieves DB-related parameters from environment.
type StorageConfig struct {
	DatabaseDSN string `env:"DATABASE_DSN"`
}

// OAuthConfig retrieves Discord OAuth2 parameters from environment.
type OAuthConfig struct {
	ClientID     string `env:"DISCORD_CLIENT_ID"`
	ClientSecret string `env:"DISCORD_CLIENT_SECRET"`
	RedirectURI  string `env:"DISCORD_REDIRECT_URI"`
	Scopes       string `env:"DISCORD_SCOPES" envDefault:"identify"`
	// Endpoint overrides are used in tests and left empty in production.
	AuthorizeEndpoint string `env:"DISCORD_AUTHORIZE_ENDPOINT"`
	TokenEndpoint     string `env:"DISCORD_TOKEN_ENDPOINT"`
	UserEndpoint      string `env:"DISCORD_USER_ENDPOINT"`
}

// WebhookConfig retrieves webhook dispatching parameters from environment.
type WebhookConfig struct {
	DeliveryTimeoutSeconds int    `env:"WEBHOOK_TIMEOUT_SECONDS" envDefault:"5"`
	Milestones             string `env:"CLICK_MILESTONES" envDefault:"100,500,1000,5000,10000,50000,100000"`
}

// MilestoneThresholds parses the configured milestone set into an ascending slice.
func (c *WebhookConfig) MilestoneThresholds() []int64 {
	var thresholds []int64
	for _, chunk := range strings.Split(c.Milestones, ",") {
		value, err := strconv.ParseInt(strings.TrimSpace(chunk), 10, 64)
		if err != nil {
			continue
		}
		thresholds = append(thresholds, value)
	}
	return thresholds
}

// NewServerConfig sets up a server configuration.
func NewServerConfig() (*ServerConfig, error) {
	cfg := ServerConfig{}
	err := env.Parse(&cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// NewSecretConfig sets up a secret configuration.
func NewSecretConfig() (*SecretConfig, error) {
	cfg := SecretConfig{}
	err := env.Parse(&cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// NewStorageConfig sets up a storage configuration.
func NewStorageConfig() (*StorageConfig, error) {
	cfg := StorageConfig{}
	err := env.Parse(&cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// NewOAuthConfig sets up an OAuth configuration.
func NewOAuthConfig() (*OAuthConfig, error) {
	cfg := OAuthConfig{}
	err := env.Parse(&cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// NewWebhookConfig sets up a webhook configuration.
func NewWebhookConfig() (*WebhookConfig, error) {
	cfg := WebhookConfig{}
	err := env.Parse(&cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// NewDefaultConfiguration sets up a total configuration.
func NewDefaultConfiguration() (*Config, error) {
	serverCfg, err := NewServerConfig()
	if err != nil {
		return nil, err
	}
	secretCfg, err := NewSecretConfig()
	if err != nil {
		return nil, err
	}
	storageCfg, err := NewStorageConfig()
	if err != nil {
		return nil, err
	}
	oauthCfg, err := NewOAuthConfig()
	if err != nil {
		return nil, err
	}
	webhookCfg, err := NewWebhookConfig()
	if err != nil {
		return nil, err
	}
	return &Config{
		ServerConfig:  serverCfg,
		SecretConfig:  secretCfg,
		StorageConfig: storageCfg,
		OAuthConfig:   oauthCfg,
		WebhookConfig: webhookCfg,
	}, nil
}

// ParseFlags parses command line arguments and stores them.
func (c *Config) ParseFlags() {
	flag.StringVar(&c.ServerConfig.ServerAddress, "a", c.ServerConfig.ServerAddress, "Server address")
	flag.StringVar(&c.ServerConfig.BaseURL, "b", c.ServerConfig.BaseURL, "Base url")
	flag.StringVar(&c.StorageConfig.DatabaseDSN, "d", c.StorageConfig.DatabaseDSN, "PSQL DB connection DSN")
	flag.Parse()
}
