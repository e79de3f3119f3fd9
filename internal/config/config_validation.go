// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strconv"
)

// validate checks that the merged [StructuredConfig] can be used to start
// the server. It runs after defaults are applied.
func (cfg *StructuredConfig) validate() error {
	port, err := strconv.Atoi(cfg.Server.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("%w: port %q", ErrInvalidServerConfigs, cfg.Server.Port)
	}

	if cfg.Server.Mode != ModeDevelopment && cfg.Server.Mode != ModeProduction {
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidServerConfigs, cfg.Server.Mode)
	}

	if cfg.Server.RequestTimeout < 0 {
		return fmt.Errorf("%w: negative request timeout", ErrInvalidServerConfigs)
	}

	if cfg.Server.HTTPSMode && (cfg.Server.TLS.KeyFile == "" || cfg.Server.TLS.CertFile == "") {
		return ErrInvalidTLSConfigs
	}

	if cfg.App.MaxBorrowedBooks < 1 || cfg.App.BorrowPeriod <= 0 || cfg.App.PenaltyDuration <= 0 {
		return ErrInvalidAppConfigs
	}

	if cfg.Workers.PenaltySweepInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	return nil
}
