// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui implements the interactive terminal client of the library API.
//
// It shows books and members in two filterable lists and lends or takes back
// books through a small form. Every action goes through an
// [adapter.ServerAdapter].
package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/eigen-library/internal/adapter"
	"github.com/MKhiriev/eigen-library/internal/logger"
)

type TUI struct {
	adapter  adapter.ServerAdapter
	humanize func(error) string

	logger *logger.Logger
}

// New builds the interactive client. humanize turns adapter errors into the
// text shown to the user; nil shows err.Error().
func New(serverAdapter adapter.ServerAdapter, humanize func(error) string, logger *logger.Logger) *TUI {
	return &TUI{
		adapter:  serverAdapter,
		humanize: humanize,
		logger:   logger,
	}
}

// Run blocks until the user quits or ctx is cancelled.
func (t *TUI) Run(ctx context.Context) error {
	t.logger.Debug().Msg("starting interactive client")

	_, err := tea.NewProgram(newModel(ctx, t.adapter, t.humanize), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil && errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
