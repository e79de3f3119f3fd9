package service

import (
	"context"

	"github.com/MKhiriev/eigen-library/internal/config"
	"github.com/MKhiriev/eigen-library/internal/logger"
	"github.com/MKhiriev/eigen-library/internal/store"
)

type appInfoService struct {
	appVersion string
	pinger     store.Pinger

	logger *logger.Logger
}

func NewAppInfoService(cfg config.App, pinger store.Pinger, logger *logger.Logger) (AppInfoService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{
		appVersion: cfg.Version,
		pinger:     pinger,
		logger:     logger,
	}, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.appVersion
}

// CheckHealth reports whether the database answers. Without a pinger the
// service is considered healthy.
func (s *appInfoService) CheckHealth(ctx context.Context) error {
	if s.pinger == nil {
		return nil
	}

	if err := s.pinger.Ping(ctx); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*appInfoService.CheckHealth").Msg("database ping failed")
		return err
	}

	return nil
}
