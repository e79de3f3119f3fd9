// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command-line client of the library API.
//
// Each subcommand maps to one [adapter.ServerAdapter] call and prints the
// result as a table or a short status line. The tui command starts the
// interactive terminal UI from package tui instead.
package client
