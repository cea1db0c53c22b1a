package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the configuration for the application.
type Config struct {
	Environment   string `mapstructure:"environment"`
	DevModeBypass bool   `mapstructure:"dev_mode_bypass"`
	Debug         bool   `mapstructure:"debug"`

	Server struct {
		Host string `mapstructure:"host"`
		Port int    `mapstructure:"port"`
	} `mapstructure:"server"`

	DB struct {
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
		SSLMode  string `mapstructure:"sslmode"`
	} `mapstructure:"db"`

	Auth struct {
		IssuerURL    string `mapstructure:"issuer_url"`
		ClientID     string `mapstructure:"client_id"`
		ClientSecret string `mapstructure:"client_secret"`
		RedirectURL  string `mapstructure:"redirect_url"`
	} `mapstructure:"auth"`

	Telemetry struct {
		// Backend selects the sink: "postgres" or "log".
		Backend string `mapstructure:"backend"`
	} `mapstructure:"telemetry"`

	Dispatcher struct {
		// BaseURL prefixes the opaque endpoint references in the tool
		// catalog when invoking tool actions.
		BaseURL string `mapstructure:"base_url"`
		// StepTimeout bounds one tool invocation inside a pipeline.
		// Zero disables the bound.
		StepTimeout time.Duration `mapstructure:"step_timeout"`
	} `mapstructure:"dispatcher"`

	TLS struct {
		Enable    bool     `mapstructure:"enable"`
		CertFile  string   `mapstructure:"cert_file"`
		KeyFile   string   `mapstructure:"key_file"`
		Hostnames []string `mapstructure:"hostnames"`
	} `mapstructure:"tls"`
}

// LoadConfig loads the configuration from a file and the environment.
// An empty path falls back to config.yaml in the working directory or ./config.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}
	v.SetEnvPrefix("ORCHESTRATOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("environment", "dev")
	v.SetDefault("server.port", 8080)
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("telemetry.backend", "log")
	v.SetDefault("dispatcher.step_timeout", "60s")

	if err := v.ReadInConfig(); err != nil {
		// Missing file is fine; env vars and defaults still apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.Auth.IssuerURL = normalizeIssuer(cfg.Auth.IssuerURL)

	return &cfg, nil
}

// normalizeIssuer puts the OIDC issuer string in a predictable form so users
// can paste the full URL from their IdP console. It strips any trailing
// slash and leaves scheme and path intact.
func normalizeIssuer(input string) string {
	iss := strings.TrimSpace(input)
	return strings.TrimRight(iss, "/")
}
