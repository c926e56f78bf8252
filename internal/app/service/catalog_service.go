package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/youvit/gramedia-display-backend/internal/app/repository"
	"github.com/youvit/gramedia-display-backend/pkg/cache"
	"github.com/youvit/gramedia-display-backend/pkg/logger"
)

var ErrEmptyCatalogName = errors.New("name must not be empty")

const (
	cacheKeyStores    = "catalog:stores"
	cacheKeyEmployees = "catalog:employees"
)

// CatalogService exposes the store and employee catalogs: sorted
// deduplicated listings and idempotent appends. Comparison is on trimmed
// string equality.
type CatalogService interface {
	ListStores(ctx context.Context) ([]string, error)
	ListEmployees(ctx context.Context) ([]string, error)
	AddStore(ctx context.Context, name string) error
	AddEmployee(ctx context.Context, name string) error

	// RefreshCache re-warms both catalog cache entries; no-op without a cache.
	RefreshCache(ctx context.Context) error
}

type catalogService struct {
	storeRepo    repository.CatalogRepository
	employeeRepo repository.CatalogRepository
	cache        *cache.Client // nil when Redis is not configured
}

func NewCatalogService(storeRepo, employeeRepo repository.CatalogRepository, cacheClient *cache.Client) CatalogService {
	return &catalogService{
		storeRepo:    storeRepo,
		employeeRepo: employeeRepo,
		cache:        cacheClient,
	}
}

func (s *catalogService) ListStores(ctx context.Context) ([]string, error) {
	return s.list(ctx, s.storeRepo, cacheKeyStores)
}

func (s *catalogService) ListEmployees(ctx context.Context) ([]string, error) {
	return s.list(ctx, s.employeeRepo, cacheKeyEmployees)
}

func (s *catalogService) AddStore(ctx context.Context, name string) error {
	return s.add(ctx, s.storeRepo, cacheKeyStores, name)
}

func (s *catalogService) AddEmployee(ctx context.Context, name string) error {
	return s.add(ctx, s.employeeRepo, cacheKeyEmployees, name)
}

func (s *catalogService) list(ctx context.Context, repo repository.CatalogRepository, cacheKey string) ([]string, error) {
	if s.cache != nil {
		if names, ok := s.cache.GetNames(ctx, cacheKey); ok {
			return names, nil
		}
	}

	names, err := s.loadNames(ctx, repo)
	if err != nil {
		logger.Error("Failed to list catalog names", err, map[string]interface{}{
			"catalog": cacheKey,
		})
		return nil, err
	}

	if s.cache != nil {
		s.cache.SetNames(ctx, cacheKey, names)
	}
	return names, nil
}

// add appends a trimmed name unless it is already present; adding an
// existing name is a no-op. The existence check and the append are not
// atomic across concurrent submissions (documented limitation).
func (s *catalogService) add(ctx context.Context, repo repository.CatalogRepository, cacheKey, name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ErrEmptyCatalogName
	}

	existing, err := repo.ListNames(ctx)
	if err != nil {
		logger.Error("Failed to read catalog before add", err, map[string]interface{}{
			"catalog": cacheKey,
		})
		return err
	}
	for _, n := range existing {
		if strings.TrimSpace(n) == trimmed {
			logger.Debug("Catalog name already present", map[string]interface{}{
				"catalog": cacheKey,
				"name":    trimmed,
			})
			return nil
		}
	}

	if err := repo.AppendName(ctx, trimmed); err != nil {
		logger.Error("Failed to append catalog name", err, map[string]interface{}{
			"catalog": cacheKey,
			"name":    trimmed,
		})
		return err
	}

	logger.Info("Catalog name added", map[string]interface{}{
		"catalog": cacheKey,
		"name":    trimmed,
	})

	if s.cache != nil {
		s.cache.Invalidate(ctx, cacheKey)
	}
	return nil
}

// loadNames reads, trims, deduplicates and sorts a catalog.
func (s *catalogService) loadNames(ctx context.Context, repo repository.CatalogRepository) ([]string, error) {
	raw, err := repo.ListNames(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(raw))
	names := make([]string, 0, len(raw))
	for _, n := range raw {
		trimmed := strings.TrimSpace(n)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		names = append(names, trimmed)
	}
	sort.Strings(names)
	return names, nil
}

func (s *catalogService) RefreshCache(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}

	stores, err := s.loadNames(ctx, s.storeRepo)
	if err != nil {
		return err
	}
	employees, err := s.loadNames(ctx, s.employeeRepo)
	if err != nil {
		return err
	}

	s.cache.SetNames(ctx, cacheKeyStores, stores)
	s.cache.SetNames(ctx, cacheKeyEmployees, employees)

	logger.Debug("Catalog cache refreshed", map[string]interface{}{
		"stores":    len(stores),
		"employees": len(employees),
	})
	return nil
}
