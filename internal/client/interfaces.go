// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run executes the subcommand named by args[0] and returns when it is done.
	Run(ctx context.Context, args []string) error
}

// Interactive is a full-screen client session, such as the terminal UI.
type Interactive interface {
	// Run blocks until the user quits or ctx is cancelled.
	Run(ctx context.Context) error
}
