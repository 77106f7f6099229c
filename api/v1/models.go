package v1

import (
	metricsdomain "dashboard/internal/metrics/domain"
)

// HealthResponse représente la réponse du endpoint de santé
type HealthResponse struct {
	Status string `json:"status"`
}

// ErrorResponse représente une erreur renvoyée au client
type ErrorResponse struct {
	Error string `json:"error"`
}

// YearsResponse liste les années disponibles dans le dataset
type YearsResponse struct {
	Years []int `json:"years"`
}

// ReloadResponse confirme un rechargement des données sources
type ReloadResponse struct {
	Status string `json:"status"`
	Rows   int    `json:"rows"`
}

// RevenueModel représente les métriques de revenus d'une année
type RevenueModel struct {
	Year              int     `json:"year"`
	TotalRevenue      float64 `json:"total_revenue"`
	TotalOrders       int     `json:"total_orders"`
	AverageOrderValue float64 `json:"average_order_value"`
	Currency          string  `json:"currency"`

	// nil = pas d'année de comparaison: rendu "N/A" côté client
	Previous *RevenueComparisonModel `json:"previous,omitempty"`
}

// RevenueComparisonModel représente les revenus de l'année N-1
type RevenueComparisonModel struct {
	Year              int     `json:"year"`
	TotalRevenue      float64 `json:"total_revenue"`
	TotalOrders       int     `json:"total_orders"`
	AverageOrderValue float64 `json:"average_order_value"`
}

// MonthlyTrendModel représente le revenu et la croissance d'un mois
type MonthlyTrendModel struct {
	Month         int     `json:"month"`
	Revenue       float64 `json:"revenue"`
	RevenueGrowth float64 `json:"revenue_growth"`
}

// MonthlyTrendsResponse liste les tendances mensuelles d'une année
type MonthlyTrendsResponse struct {
	Year                 int                  `json:"year"`
	Trends               []*MonthlyTrendModel `json:"trends"`
	AverageMonthlyGrowth float64              `json:"average_monthly_growth"`
}

// SatisfactionResponse représente la satisfaction client d'une année
// Available=false signale une métrique indisponible, jamais une erreur
// serveur
type SatisfactionResponse struct {
	Year               int     `json:"year"`
	Available          bool    `json:"available"`
	Reason             string  `json:"reason,omitempty"`
	AverageReviewScore float64 `json:"average_review_score,omitempty"`
	Orders             int     `json:"orders,omitempty"`
}

// DeliveryResponse représente la performance de livraison d'une année
type DeliveryResponse struct {
	Year                int     `json:"year"`
	Available           bool    `json:"available"`
	Reason              string  `json:"reason,omitempty"`
	AverageDeliveryDays float64 `json:"average_delivery_days,omitempty"`
	Orders              int     `json:"orders,omitempty"`
}

// SatisfactionBySpeedResponse représente la note moyenne par tranche de
// délai de livraison
type SatisfactionBySpeedResponse struct {
	Year      int                `json:"year"`
	Available bool               `json:"available"`
	Reason    string             `json:"reason,omitempty"`
	Buckets   map[string]float64 `json:"buckets,omitempty"`
}

// CategoryRevenueModel représente le revenu d'une catégorie de produits
type CategoryRevenueModel struct {
	Category string  `json:"category"`
	Revenue  float64 `json:"revenue"`
}

// CategoriesResponse liste les catégories les plus rentables d'une année
type CategoriesResponse struct {
	Year       int                     `json:"year"`
	Available  bool                    `json:"available"`
	Reason     string                  `json:"reason,omitempty"`
	Categories []*CategoryRevenueModel `json:"categories,omitempty"`
}

// StateRevenueModel représente le revenu d'un état
type StateRevenueModel struct {
	State   string  `json:"state"`
	Revenue float64 `json:"revenue"`
}

// StatesResponse liste le revenu par état d'une année
type StatesResponse struct {
	Year      int                  `json:"year"`
	Available bool                 `json:"available"`
	Reason    string               `json:"reason,omitempty"`
	States    []*StateRevenueModel `json:"states,omitempty"`
}

// DashboardResponse agrège toutes les métriques d'une année pour le
// tableau de bord
type DashboardResponse struct {
	Year                 int                          `json:"year"`
	PreviousYear         int                          `json:"previous_year,omitempty"`
	Revenue              *RevenueModel                `json:"revenue,omitempty"`
	MonthlyTrends        []*MonthlyTrendModel         `json:"monthly_trends,omitempty"`
	PreviousTrends       []*MonthlyTrendModel         `json:"previous_trends,omitempty"`
	AverageMonthlyGrowth float64                      `json:"average_monthly_growth"`
	Satisfaction         *SatisfactionResponse        `json:"satisfaction,omitempty"`
	Delivery             *DeliveryResponse            `json:"delivery,omitempty"`
	PreviousDelivery     *DeliveryResponse            `json:"previous_delivery,omitempty"`
	SatisfactionBySpeed  *SatisfactionBySpeedResponse `json:"satisfaction_by_speed,omitempty"`
	TopCategories        []*CategoryRevenueModel      `json:"top_categories,omitempty"`
	RevenueByState       []*StateRevenueModel         `json:"revenue_by_state,omitempty"`
}

func toRevenueModel(m *metricsdomain.RevenueMetrics) *RevenueModel {
	if m == nil {
		return nil
	}
	model := &RevenueModel{
		Year:              m.Year(),
		TotalRevenue:      m.TotalRevenue().Amount(),
		TotalOrders:       m.TotalOrders(),
		AverageOrderValue: m.AverageOrderValue().Amount(),
		Currency:          m.TotalRevenue().Currency(),
	}
	if previous := m.Previous(); previous != nil {
		model.Previous = &RevenueComparisonModel{
			Year:              previous.Year(),
			TotalRevenue:      previous.TotalRevenue().Amount(),
			TotalOrders:       previous.TotalOrders(),
			AverageOrderValue: previous.AverageOrderValue().Amount(),
		}
	}
	return model
}

func toTrendModels(trends []*metricsdomain.MonthlyTrend) []*MonthlyTrendModel {
	if trends == nil {
		return nil
	}
	models := make([]*MonthlyTrendModel, 0, len(trends))
	for _, t := range trends {
		models = append(models, &MonthlyTrendModel{
			Month:         t.Month(),
			Revenue:       t.Revenue().Amount(),
			RevenueGrowth: t.RevenueGrowth(),
		})
	}
	return models
}

func toCategoryModels(categories []*metricsdomain.CategoryRevenue) []*CategoryRevenueModel {
	if categories == nil {
		return nil
	}
	models := make([]*CategoryRevenueModel, 0, len(categories))
	for _, c := range categories {
		models = append(models, &CategoryRevenueModel{
			Category: c.Category(),
			Revenue:  c.Revenue().Amount(),
		})
	}
	return models
}

func toStateModels(states []*metricsdomain.StateRevenue) []*StateRevenueModel {
	if states == nil {
		return nil
	}
	models := make([]*StateRevenueModel, 0, len(states))
	for _, s := range states {
		models = append(models, &StateRevenueModel{
			State:   s.State(),
			Revenue: s.Revenue().Amount(),
		})
	}
	return models
}
