package application

import (
	"sync"
	"time"

	"dashboard/internal/dataset/domain"
	shareddomain "dashboard/internal/shared/domain"
	sharedinfra "dashboard/internal/shared/infrastructure"
)

// Loader abstrait le chargement des tables brutes (CSV, PostgreSQL, ...)
type Loader interface {
	Load() (*domain.RawTables, error)
}

// DatasetService construit et met en cache les datasets de ventes d'une
// session. La construction de base est coûteuse par rapport aux appels
// d'analyse répétés: chaque combinaison de filtres n'est construite
// qu'une fois, et seule une invalidation explicite (Reload) force une
// reconstruction
type DatasetService struct {
	loader     Loader
	cache      sharedinfra.Cache
	cacheTTL   time.Duration
	baseStatus string

	mu  sync.RWMutex
	raw *domain.RawTables
}

// NewDatasetService crée un nouveau service de datasets
// baseStatus restreint le dataset de base à un statut de commande
// (vide = tous les statuts)
func NewDatasetService(loader Loader, cache sharedinfra.Cache, baseStatus string) *DatasetService {
	return &DatasetService{
		loader:     loader,
		cache:      cache,
		cacheTTL:   12 * time.Hour,
		baseStatus: baseStatus,
	}
}

// BaseStatus retourne le filtre de statut du dataset de base
func (s *DatasetService) BaseStatus() string {
	return s.baseStatus
}

// Base retourne le dataset de base de la session (tous filtres
// temporels désactivés, statut de base appliqué)
func (s *DatasetService) Base() (*domain.SalesDataset, error) {
	return s.Dataset(domain.BuildOptions{Status: s.baseStatus})
}

// Dataset retourne le dataset correspondant aux options, construit à la
// demande puis mis en cache. Le dataset retourné est immuable: les
// lecteurs qui en détiennent une référence ne voient jamais un état
// partiellement reconstruit
func (s *DatasetService) Dataset(opts domain.BuildOptions) (*domain.SalesDataset, error) {
	key := buildKey(opts)
	if cached, found := s.cache.Get(key); found {
		return cached.(*domain.SalesDataset), nil
	}

	raw, err := s.rawTables()
	if err != nil {
		return nil, err
	}

	dataset, err := domain.BuildSalesDataset(raw, opts)
	if err != nil {
		return nil, err
	}

	s.cache.Set(key, dataset, s.cacheTTL)
	return dataset, nil
}

// YearDataset retourne le dataset de base restreint à une année
func (s *DatasetService) YearDataset(year int) (*domain.SalesDataset, error) {
	period, err := shareddomain.NewYearPeriod(year)
	if err != nil {
		return nil, err
	}
	return s.Dataset(domain.BuildOptions{Status: s.baseStatus, Period: period})
}

// Reload recharge les sources brutes et invalide le cache
// Les nouvelles tables remplacent les anciennes de façon atomique; les
// lecteurs conservant un ancien dataset ne sont pas affectés
func (s *DatasetService) Reload() error {
	raw, err := s.loader.Load()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.raw = raw
	s.mu.Unlock()

	s.cache.Clear()
	return nil
}

// rawTables retourne les tables brutes, chargées au premier accès
func (s *DatasetService) rawTables() (*domain.RawTables, error) {
	s.mu.RLock()
	raw := s.raw
	s.mu.RUnlock()
	if raw != nil {
		return raw, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.raw != nil {
		return s.raw, nil
	}

	raw, err := s.loader.Load()
	if err != nil {
		return nil, err
	}
	s.raw = raw
	return raw, nil
}

// buildKey construit la clé de cache d'une combinaison de filtres
func buildKey(opts domain.BuildOptions) string {
	return sharedinfra.NewCacheKeyBuilder().
		Add("dataset").
		Add(opts.Status).
		AddInt(opts.Period.Year()).
		AddInt(opts.Period.Month()).
		Build()
}
