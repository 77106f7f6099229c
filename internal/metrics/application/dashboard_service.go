package application

import (
	"fmt"
	"sync"
	"time"

	datasetapp "dashboard/internal/dataset/application"
	"dashboard/internal/metrics/domain"
	sharedinfra "dashboard/internal/shared/infrastructure"
)

// Nombre de catégories retenues pour le graphique des meilleures
// catégories
const topCategoriesLimit = 10

// DashboardService calcule la vue d'ensemble d'une année: tous les
// groupes de métriques consommés par la couche de présentation
// Les groupes sont indépendants et purs: ils sont calculés en parallèle
// sur le dataset immuable, et l'indisponibilité de l'un (colonne absente,
// agrégat vide) ne bloque jamais les autres
type DashboardService struct {
	datasets *datasetapp.DatasetService
	cache    sharedinfra.Cache
	cacheTTL time.Duration
}

// NewDashboardService crée une nouvelle instance de DashboardService
func NewDashboardService(datasets *datasetapp.DatasetService, cache sharedinfra.Cache) *DashboardService {
	return &DashboardService{
		datasets: datasets,
		cache:    cache,
		cacheTTL: 5 * time.Minute,
	}
}

// Overview calcule (ou sert depuis le cache) la vue d'ensemble d'une
// année. L'année précédente vaut year-1 et n'est considérée disponible
// que si elle existe dans le dataset
func (s *DashboardService) Overview(year int) (*domain.DashboardOverview, error) {
	cacheKey := s.buildCacheKey(year)
	if cached, found := s.cache.Get(cacheKey); found {
		return cached.(*domain.DashboardOverview), nil
	}

	dataset, err := s.datasets.Base()
	if err != nil {
		return nil, err
	}

	calc := NewMetricsCalculator(dataset)

	previousYear := 0
	if dataset.HasYear(year - 1) {
		previousYear = year - 1
	}

	overview := domain.NewDashboardOverview(year, previousYear)

	// Chaque goroutine écrit un champ distinct de l'overview; wg.Wait
	// établit le happens-before avant toute lecture
	var wg sync.WaitGroup
	errChan := make(chan error, 6)

	wg.Add(1)
	go func() {
		defer wg.Done()
		overview.SetRevenue(calc.RevenueMetrics(year, previousYear))
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		trends := calc.MonthlyTrends(year)
		overview.SetMonthlyTrends(trends)
		overview.SetAverageMonthlyGrowth(domain.AverageMonthlyGrowth(trends))
		if previousYear > 0 {
			overview.SetPreviousTrends(calc.MonthlyTrends(previousYear))
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		satisfaction, err := calc.CustomerSatisfaction(year)
		if err != nil {
			if !domain.IsUnavailable(err) {
				errChan <- fmt.Errorf("customer satisfaction: %w", err)
			}
			return
		}
		overview.SetSatisfaction(satisfaction)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		delivery, err := calc.DeliveryPerformance(year)
		if err != nil {
			if !domain.IsUnavailable(err) {
				errChan <- fmt.Errorf("delivery performance: %w", err)
			}
			return
		}
		overview.SetDelivery(delivery)

		if previousYear > 0 {
			if previous, err := calc.DeliveryPerformance(previousYear); err == nil {
				overview.SetPreviousDelivery(previous)
			}
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		buckets, err := calc.SatisfactionByDeliverySpeed(year)
		if err != nil {
			if !domain.IsUnavailable(err) {
				errChan <- fmt.Errorf("satisfaction by delivery speed: %w", err)
			}
			return
		}
		overview.SetSatisfactionBySpeed(buckets)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		categories, err := calc.CategoryRevenue(year, topCategoriesLimit)
		if err == nil {
			overview.SetTopCategories(categories)
		} else if !domain.IsUnavailable(err) {
			errChan <- fmt.Errorf("category revenue: %w", err)
			return
		}

		states, err := calc.StateRevenue(year)
		if err != nil {
			if !domain.IsUnavailable(err) {
				errChan <- fmt.Errorf("state revenue: %w", err)
			}
			return
		}
		overview.SetRevenueByState(states)
	}()

	wg.Wait()
	close(errChan)

	for err := range errChan {
		if err != nil {
			return nil, err
		}
	}

	s.cache.Set(cacheKey, overview, s.cacheTTL)
	return overview, nil
}

// InvalidateYear invalide la vue d'ensemble en cache d'une année
func (s *DashboardService) InvalidateYear(year int) {
	s.cache.Delete(s.buildCacheKey(year))
}

// buildCacheKey construit la clé de cache d'une année
func (s *DashboardService) buildCacheKey(year int) string {
	return sharedinfra.NewCacheKeyBuilder().
		Add("dashboard").
		Add("overview").
		AddInt(year).
		Build()
}
