package application

import (
	"sort"

	datasetdomain "dashboard/internal/dataset/domain"
	"dashboard/internal/metrics/domain"
	shareddomain "dashboard/internal/shared/domain"
)

// MetricsCalculator calcule les groupes de métriques indépendants sur un
// dataset de ventes immuable. Aucune méthode ne mute le dataset ni ne
// partage d'état entre appels: les lectures concurrentes sont sûres
type MetricsCalculator struct {
	dataset *datasetdomain.SalesDataset
}

// NewMetricsCalculator crée une nouvelle instance de MetricsCalculator
func NewMetricsCalculator(dataset *datasetdomain.SalesDataset) *MetricsCalculator {
	return &MetricsCalculator{dataset: dataset}
}

// Dataset retourne le dataset analysé
func (c *MetricsCalculator) Dataset() *datasetdomain.SalesDataset {
	return c.dataset
}

// RevenueMetrics calcule le chiffre d'affaires, le nombre de commandes
// distinctes et la valeur moyenne de commande d'une année
// Quand previousYear > 0 et que cette année existe dans le dataset, la
// comparaison N-1 est attachée; sinon elle reste absente et l'affichage
// doit rendre "N/A" plutôt qu'une variation depuis un faux zéro
func (c *MetricsCalculator) RevenueMetrics(year, previousYear int) *domain.RevenueMetrics {
	revenue, orders, avg := c.revenueTotals(year)

	metrics := domain.NewRevenueMetrics(
		year,
		shareddomain.MustNewMoney(revenue, domain.Currency),
		orders,
		shareddomain.MustNewMoney(avg, domain.Currency),
	)

	if previousYear > 0 && c.dataset.HasYear(previousYear) {
		prevRevenue, prevOrders, prevAvg := c.revenueTotals(previousYear)
		metrics.SetPrevious(domain.NewRevenueComparison(
			previousYear,
			shareddomain.MustNewMoney(prevRevenue, domain.Currency),
			prevOrders,
			shareddomain.MustNewMoney(prevAvg, domain.Currency),
		))
	}

	return metrics
}

// revenueTotals retourne (revenu total, commandes distinctes, valeur
// moyenne) d'une année. La moyenne vaut 0 quand aucune commande ne
// qualifie, jamais une division par zéro
func (c *MetricsCalculator) revenueTotals(year int) (float64, int, float64) {
	var revenue float64
	orders := make(map[string]bool)

	for _, row := range c.dataset.YearRows(year) {
		revenue += row.Price
		orders[row.OrderID] = true
	}

	var avg float64
	if len(orders) > 0 {
		avg = revenue / float64(len(orders))
	}
	return revenue, len(orders), avg
}

// MonthlyTrends calcule la série mensuelle d'une année: revenu par mois
// présent, trié par mois croissant, avec la croissance par rapport au
// mois précédent de la séquence
// Le premier mois n'a pas de précédent dans l'appel: sa croissance vaut
// 0 (valeur neutre). Un revenu précédent nul donne aussi 0, jamais une
// division par zéro
func (c *MetricsCalculator) MonthlyTrends(year int) []*domain.MonthlyTrend {
	revenueByMonth := make(map[int]float64)
	for _, row := range c.dataset.YearRows(year) {
		revenueByMonth[row.PurchaseMonth] += row.Price
	}

	months := make([]int, 0, len(revenueByMonth))
	for month := range revenueByMonth {
		months = append(months, month)
	}
	sort.Ints(months)

	trends := make([]*domain.MonthlyTrend, 0, len(months))
	for i, month := range months {
		revenue := revenueByMonth[month]

		var growth float64
		if i > 0 {
			if previous := revenueByMonth[months[i-1]]; previous != 0 {
				growth = (revenue - previous) / previous * 100
			}
		}

		trends = append(trends, domain.NewMonthlyTrend(
			month,
			shareddomain.MustNewMoney(revenue, domain.Currency),
			growth,
		))
	}

	return trends
}

// CustomerSatisfaction calcule la note moyenne d'une année sur les
// commandes distinctes notées
// Un avis appartient à la commande, pas à chacune de ses lignes: les
// lignes sont dédupliquées par commande avant la moyenne. Les commandes
// sans note sont exclues du numérateur et du dénominateur
func (c *MetricsCalculator) CustomerSatisfaction(year int) (*domain.SatisfactionMetrics, error) {
	if !c.dataset.Columns().ReviewScore {
		return nil, domain.NewMissingColumnError(datasetdomain.ColReviewScore)
	}

	var sum float64
	var count int
	seen := make(map[string]bool)

	for _, row := range c.dataset.YearRows(year) {
		if seen[row.OrderID] {
			continue
		}
		seen[row.OrderID] = true

		if row.ReviewScore == nil {
			continue
		}
		sum += *row.ReviewScore
		count++
	}

	if count == 0 {
		return nil, domain.ErrEmptyAggregate
	}
	return domain.NewSatisfactionMetrics(sum/float64(count), count), nil
}

// DeliveryPerformance calcule le délai moyen de livraison d'une année
// sur les commandes distinctes livrées
// Si toutes les commandes de l'année manquent de données de livraison,
// le résultat est indisponible: la moyenne d'un ensemble vide n'est
// jamais rapportée comme 0
func (c *MetricsCalculator) DeliveryPerformance(year int) (*domain.DeliveryMetrics, error) {
	if !c.dataset.Columns().DeliveryDays {
		return nil, domain.NewMissingColumnError("delivery_days")
	}

	var sum float64
	var count int
	seen := make(map[string]bool)

	for _, row := range c.dataset.YearRows(year) {
		if seen[row.OrderID] {
			continue
		}
		seen[row.OrderID] = true

		if row.DeliveryDays == nil {
			continue
		}
		sum += float64(*row.DeliveryDays)
		count++
	}

	if count == 0 {
		return nil, domain.ErrEmptyAggregate
	}
	return domain.NewDeliveryMetrics(sum/float64(count), count), nil
}

// SatisfactionByDeliverySpeed calcule la note moyenne par tranche de
// délai de livraison
// Déduplication par commande, puis exclusion des commandes sans note ou
// sans délai. Une tranche sans commande qualifiée est absente de la map
// (pas un zéro): l'affichage doit la sauter ou l'étiqueter explicitement
func (c *MetricsCalculator) SatisfactionByDeliverySpeed(year int) (map[string]float64, error) {
	columns := c.dataset.Columns()
	if !columns.ReviewScore {
		return nil, domain.NewMissingColumnError(datasetdomain.ColReviewScore)
	}
	if !columns.DeliveryDays {
		return nil, domain.NewMissingColumnError("delivery_days")
	}

	sums := make(map[string]float64)
	counts := make(map[string]int)
	seen := make(map[string]bool)

	for _, row := range c.dataset.YearRows(year) {
		if seen[row.OrderID] {
			continue
		}
		seen[row.OrderID] = true

		if row.ReviewScore == nil || row.DeliveryDays == nil {
			continue
		}
		bucket := domain.DeliveryBucket(*row.DeliveryDays)
		sums[bucket] += *row.ReviewScore
		counts[bucket]++
	}

	buckets := make(map[string]float64, len(sums))
	for bucket, sum := range sums {
		buckets[bucket] = sum / float64(counts[bucket])
	}
	return buckets, nil
}

// CategoryRevenue calcule le revenu par catégorie de produits d'une
// année, trié par revenu décroissant et limité aux limit premières
// (limit <= 0 = toutes)
func (c *MetricsCalculator) CategoryRevenue(year, limit int) ([]*domain.CategoryRevenue, error) {
	if !c.dataset.Columns().ProductCategory {
		return nil, domain.NewMissingColumnError(datasetdomain.ColProductCategory)
	}

	revenueByCategory := make(map[string]float64)
	for _, row := range c.dataset.YearRows(year) {
		if row.ProductCategory == "" {
			continue
		}
		revenueByCategory[row.ProductCategory] += row.Price
	}
	if len(revenueByCategory) == 0 {
		return nil, domain.ErrEmptyAggregate
	}

	categories := make([]*domain.CategoryRevenue, 0, len(revenueByCategory))
	for category, revenue := range revenueByCategory {
		categories = append(categories, domain.NewCategoryRevenue(
			category,
			shareddomain.MustNewMoney(revenue, domain.Currency),
		))
	}
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Revenue().Amount() != categories[j].Revenue().Amount() {
			return categories[i].Revenue().Amount() > categories[j].Revenue().Amount()
		}
		return categories[i].Category() < categories[j].Category()
	})

	if limit > 0 && len(categories) > limit {
		categories = categories[:limit]
	}
	return categories, nil
}

// StateRevenue calcule le revenu par état géographique d'une année,
// trié par revenu décroissant
func (c *MetricsCalculator) StateRevenue(year int) ([]*domain.StateRevenue, error) {
	if !c.dataset.Columns().CustomerState {
		return nil, domain.NewMissingColumnError(datasetdomain.ColCustomerState)
	}

	revenueByState := make(map[string]float64)
	for _, row := range c.dataset.YearRows(year) {
		if row.CustomerState == "" {
			continue
		}
		revenueByState[row.CustomerState] += row.Price
	}
	if len(revenueByState) == 0 {
		return nil, domain.ErrEmptyAggregate
	}

	states := make([]*domain.StateRevenue, 0, len(revenueByState))
	for state, revenue := range revenueByState {
		states = append(states, domain.NewStateRevenue(
			state,
			shareddomain.MustNewMoney(revenue, domain.Currency),
		))
	}
	sort.Slice(states, func(i, j int) bool {
		if states[i].Revenue().Amount() != states[j].Revenue().Amount() {
			return states[i].Revenue().Amount() > states[j].Revenue().Amount()
		}
		return states[i].State() < states[j].State()
	})

	return states, nil
}
