package config

import (
	"errors"
	"fmt"
	"time"
)

const defaultAdapterTimeout = 10 * time.Second

// ClientConfig is the configuration of the CLI client.
type ClientConfig struct {
	Adapter Adapter
}

// GetClientConfig reads the client configuration from the .env file and the
// environment. Flags are left to the client's subcommands.
func GetClientConfig() (*ClientConfig, error) {
	b := newConfigBuilder().withDotEnv(dotEnvFile).withEnv()
	if b.err != nil {
		return nil, fmt.Errorf("error get client config: %w", b.err)
	}
	if len(b.configs) == 0 {
		return nil, errors.New("error get client config: no config sources")
	}

	cfg := &ClientConfig{Adapter: b.configs[0].Adapter}
	if cfg.Adapter.RequestTimeout == 0 {
		cfg.Adapter.RequestTimeout = defaultAdapterTimeout
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
