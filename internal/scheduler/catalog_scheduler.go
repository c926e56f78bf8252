package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"

	"github.com/youvit/gramedia-display-backend/internal/app/service"
	"github.com/youvit/gramedia-display-backend/pkg/logger"
)

// CatalogScheduler periodically re-warms the catalog cache so pickers stay
// fresh even when names are added to the spreadsheet out of band.
type CatalogScheduler struct {
	cron           *cron.Cron
	catalogService service.CatalogService
	spec           string
}

func NewCatalogScheduler(catalogService service.CatalogService, spec string) *CatalogScheduler {
	return &CatalogScheduler{
		cron:           cron.New(),
		catalogService: catalogService,
		spec:           spec,
	}
}

func (s *CatalogScheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		if err := s.catalogService.RefreshCache(context.Background()); err != nil {
			logger.Error("Failed to refresh catalog cache", err)
			return
		}

		logger.Debug("Scheduled catalog refresh completed", nil)
	})

	if err != nil {
		logger.Error("Failed to add cron job for catalog refresh", err)
		return err
	}

	s.cron.Start()
	logger.Info("Catalog scheduler started", map[string]interface{}{
		"spec": s.spec,
	})

	return nil
}

func (s *CatalogScheduler) Stop() {
	logger.Info("Stopping catalog scheduler...", nil)
	s.cron.Stop()
	logger.Info("Catalog scheduler stopped", nil)
}
