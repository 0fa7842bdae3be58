package config

import (
	"fmt"
	"os"
	"strings"
)

type Config struct {
	// BackendURL is the base URL of the backup orchestration API that
	// the console proxies to, e.g. https://api.backupdesk.internal.
	BackendURL     string
	HTTPListenAddr string
	StaticDir      string
	LogLevel       string
	ServiceName    string

	// Client TLS material for the backend connection. Empty means the
	// system trust store over plain https, or plaintext http.
	BackendTLSCert       string
	BackendTLSKey        string
	BackendTLSCACert     string
	BackendTLSServerName string
}

func Load() (*Config, error) {
	cfg := &Config{
		BackendURL:           getEnv("BACKEND_URL", ""),
		HTTPListenAddr:       getEnv("HTTP_LISTEN_ADDR", ":8090"),
		StaticDir:            getEnv("STATIC_DIR", "./dist"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		ServiceName:          getEnv("SERVICE_NAME", ""),
		BackendTLSCert:       getEnv("BACKEND_TLS_CERT", ""),
		BackendTLSKey:        getEnv("BACKEND_TLS_KEY", ""),
		BackendTLSCACert:     getEnv("BACKEND_TLS_CA_CERT", ""),
		BackendTLSServerName: getEnv("BACKEND_TLS_SERVER_NAME", ""),
	}

	return cfg, nil
}

// Validate checks that the fields a given service needs are present.
func (c *Config) Validate(service string) error {
	var missing []string

	switch service {
	case "console-web":
		if c.BackendURL == "" {
			missing = append(missing, "BACKEND_URL")
		}
		if c.HTTPListenAddr == "" {
			missing = append(missing, "HTTP_LISTEN_ADDR")
		}
		if c.StaticDir == "" {
			missing = append(missing, "STATIC_DIR")
		}
	default:
		return fmt.Errorf("unknown service %q", service)
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
