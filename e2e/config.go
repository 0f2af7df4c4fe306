package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// BROKER_ADDR points at a running broker, e.g. http://localhost:8080.
	// The suite skips when it is unset.
	BrokerAddr string `envconfig:"BROKER_ADDR"`
	// E2E_USER_PASSWORD overrides the throwaway password used for the
	// register/login flow.
	UserPassword string `envconfig:"E2E_USER_PASSWORD" default:"an e2e only password"`
	HTTPTimeout  int    `envconfig:"E2E_HTTP_TIMEOUT_SECONDS" default:"10"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
