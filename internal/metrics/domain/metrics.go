package domain

import (
	"dashboard/internal/shared/domain"
)

// Devise des montants agrégés
const Currency = "USD"

// Libellés des tranches de délai de livraison
const (
	BucketFast   = "1-3 days" // [0, 3] jours
	BucketMedium = "4-7 days" // (3, 7] jours
	BucketSlow   = "8+ days"  // (7, ∞) jours
)

// DeliveryBucketLabels retourne les libellés de tranche dans l'ordre
// d'affichage
func DeliveryBucketLabels() []string {
	return []string{BucketFast, BucketMedium, BucketSlow}
}

// DeliveryBucket retourne la tranche d'un délai de livraison en jours
func DeliveryBucket(days int) string {
	switch {
	case days <= 3:
		return BucketFast
	case days <= 7:
		return BucketMedium
	default:
		return BucketSlow
	}
}

// RevenueMetrics représente les métriques de revenus d'une année
type RevenueMetrics struct {
	year              int
	totalRevenue      domain.Money
	totalOrders       int
	averageOrderValue domain.Money
	previous          *RevenueComparison
}

// NewRevenueMetrics crée une nouvelle instance de RevenueMetrics
func NewRevenueMetrics(year int, totalRevenue domain.Money, totalOrders int, averageOrderValue domain.Money) *RevenueMetrics {
	return &RevenueMetrics{
		year:              year,
		totalRevenue:      totalRevenue,
		totalOrders:       totalOrders,
		averageOrderValue: averageOrderValue,
	}
}

// Year retourne l'année analysée
func (m *RevenueMetrics) Year() int {
	return m.year
}

// TotalRevenue retourne le chiffre d'affaires total
func (m *RevenueMetrics) TotalRevenue() domain.Money {
	return m.totalRevenue
}

// TotalOrders retourne le nombre de commandes distinctes
func (m *RevenueMetrics) TotalOrders() int {
	return m.totalOrders
}

// AverageOrderValue retourne la valeur moyenne d'une commande
func (m *RevenueMetrics) AverageOrderValue() domain.Money {
	return m.averageOrderValue
}

// Previous retourne la comparaison avec l'année précédente
// nil signifie "pas de comparaison disponible": l'affichage doit rendre
// "N/A", jamais une variation depuis un faux zéro
func (m *RevenueMetrics) Previous() *RevenueComparison {
	return m.previous
}

// SetPrevious attache la comparaison avec l'année précédente
func (m *RevenueMetrics) SetPrevious(previous *RevenueComparison) {
	m.previous = previous
}

// RevenueComparison représente les mêmes métriques pour l'année N-1
type RevenueComparison struct {
	year              int
	totalRevenue      domain.Money
	totalOrders       int
	averageOrderValue domain.Money
}

// NewRevenueComparison crée une nouvelle instance de RevenueComparison
func NewRevenueComparison(year int, totalRevenue domain.Money, totalOrders int, averageOrderValue domain.Money) *RevenueComparison {
	return &RevenueComparison{
		year:              year,
		totalRevenue:      totalRevenue,
		totalOrders:       totalOrders,
		averageOrderValue: averageOrderValue,
	}
}

// Year retourne l'année de comparaison
func (c *RevenueComparison) Year() int {
	return c.year
}

// TotalRevenue retourne le chiffre d'affaires de l'année de comparaison
func (c *RevenueComparison) TotalRevenue() domain.Money {
	return c.totalRevenue
}

// TotalOrders retourne le nombre de commandes de l'année de comparaison
func (c *RevenueComparison) TotalOrders() int {
	return c.totalOrders
}

// AverageOrderValue retourne la valeur moyenne de commande de l'année de
// comparaison
func (c *RevenueComparison) AverageOrderValue() domain.Money {
	return c.averageOrderValue
}

// MonthlyTrend représente le revenu et la croissance d'un mois
type MonthlyTrend struct {
	month         int
	revenue       domain.Money
	revenueGrowth float64 // en %, 0 = valeur neutre
}

// NewMonthlyTrend crée une nouvelle instance de MonthlyTrend
func NewMonthlyTrend(month int, revenue domain.Money, revenueGrowth float64) *MonthlyTrend {
	return &MonthlyTrend{
		month:         month,
		revenue:       revenue,
		revenueGrowth: revenueGrowth,
	}
}

// Month retourne le mois (1..12)
func (t *MonthlyTrend) Month() int {
	return t.month
}

// Revenue retourne le revenu du mois
func (t *MonthlyTrend) Revenue() domain.Money {
	return t.revenue
}

// RevenueGrowth retourne la croissance par rapport au mois précédent de
// la séquence, en pourcentage
func (t *MonthlyTrend) RevenueGrowth() float64 {
	return t.revenueGrowth
}

// AverageMonthlyGrowth retourne la moyenne des croissances mensuelles
// d'une séquence, y compris le 0 neutre du premier mois
// Ce biais du premier mois est un comportement connu et assumé
func AverageMonthlyGrowth(trends []*MonthlyTrend) float64 {
	if len(trends) == 0 {
		return 0
	}
	var sum float64
	for _, t := range trends {
		sum += t.revenueGrowth
	}
	return sum / float64(len(trends))
}

// SatisfactionMetrics représente la satisfaction client d'une année
type SatisfactionMetrics struct {
	averageReviewScore float64
	orders             int
}

// NewSatisfactionMetrics crée une nouvelle instance de SatisfactionMetrics
func NewSatisfactionMetrics(averageReviewScore float64, orders int) *SatisfactionMetrics {
	return &SatisfactionMetrics{
		averageReviewScore: averageReviewScore,
		orders:             orders,
	}
}

// AverageReviewScore retourne la note moyenne sur les commandes notées
func (m *SatisfactionMetrics) AverageReviewScore() float64 {
	return m.averageReviewScore
}

// Orders retourne le nombre de commandes notées
func (m *SatisfactionMetrics) Orders() int {
	return m.orders
}

// DeliveryMetrics représente la performance de livraison d'une année
type DeliveryMetrics struct {
	averageDeliveryDays float64
	orders              int
}

// NewDeliveryMetrics crée une nouvelle instance de DeliveryMetrics
func NewDeliveryMetrics(averageDeliveryDays float64, orders int) *DeliveryMetrics {
	return &DeliveryMetrics{
		averageDeliveryDays: averageDeliveryDays,
		orders:              orders,
	}
}

// AverageDeliveryDays retourne le délai moyen de livraison en jours
func (m *DeliveryMetrics) AverageDeliveryDays() float64 {
	return m.averageDeliveryDays
}

// Orders retourne le nombre de commandes livrées prises en compte
func (m *DeliveryMetrics) Orders() int {
	return m.orders
}

// CategoryRevenue représente le revenu d'une catégorie de produits
type CategoryRevenue struct {
	category string
	revenue  domain.Money
}

// NewCategoryRevenue crée une nouvelle instance de CategoryRevenue
func NewCategoryRevenue(category string, revenue domain.Money) *CategoryRevenue {
	return &CategoryRevenue{category: category, revenue: revenue}
}

// Category retourne le nom de la catégorie
func (c *CategoryRevenue) Category() string {
	return c.category
}

// Revenue retourne le revenu de la catégorie
func (c *CategoryRevenue) Revenue() domain.Money {
	return c.revenue
}

// StateRevenue représente le revenu d'un état géographique
type StateRevenue struct {
	state   string
	revenue domain.Money
}

// NewStateRevenue crée une nouvelle instance de StateRevenue
func NewStateRevenue(state string, revenue domain.Money) *StateRevenue {
	return &StateRevenue{state: state, revenue: revenue}
}

// State retourne le code de l'état
func (s *StateRevenue) State() string {
	return s.state
}

// Revenue retourne le revenu de l'état
func (s *StateRevenue) Revenue() domain.Money {
	return s.revenue
}
