// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/eigen-library/internal/logger"
)

// PenaltySweeper periodically clears expired member penalties so the
// penalty_until column only holds penalties that are still running.
// Borrowing checks compare against the current time as well, so a missed
// sweep never lets a penalized member borrow or blocks a released one.
type PenaltySweeper struct {
	releaser PenaltyReleaser
	interval time.Duration

	logger *logger.Logger
}

func NewPenaltySweeper(releaser PenaltyReleaser, interval time.Duration, logger *logger.Logger) *PenaltySweeper {
	return &PenaltySweeper{
		releaser: releaser,
		interval: interval,
		logger:   logger.Named("penalty-sweeper"),
	}
}

// Run starts the sweep loop. A non-positive interval disables the sweeper.
func (p *PenaltySweeper) Run(ctx context.Context) {
	if p.interval <= 0 {
		p.logger.Warn().Dur("interval", p.interval).Msg("penalty sweeper disabled")
		return
	}

	go p.loop(ctx)
}

func (p *PenaltySweeper) loop(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.logger.Info().Dur("interval", p.interval).Msg("penalty sweeper started")

	for {
		select {
		case <-ctx.Done():
			p.logger.Info().Msg("penalty sweeper stopped")
			return
		case <-ticker.C:
			p.sweep(ctx)
		}
	}
}

func (p *PenaltySweeper) sweep(ctx context.Context) {
	released, err := p.releaser.ReleaseExpiredPenalties(ctx)
	if err != nil {
		p.logger.Err(err).Msg("error releasing expired penalties")
		return
	}

	if released > 0 {
		p.logger.Info().Int64("released", released).Msg("expired penalties released")
	}
}
