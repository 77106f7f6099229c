package domain

// DashboardOverview regroupe tous les groupes de métriques d'une année
// pour un affichage en un seul appel
// Un groupe à nil est indisponible (colonne absente ou agrégat vide);
// l'indisponibilité d'un groupe ne bloque jamais le calcul des autres
type DashboardOverview struct {
	year         int
	previousYear int // 0 = pas d'année précédente dans le dataset

	revenue              *RevenueMetrics
	monthlyTrends        []*MonthlyTrend
	previousTrends       []*MonthlyTrend
	averageMonthlyGrowth float64
	satisfaction         *SatisfactionMetrics
	delivery             *DeliveryMetrics
	previousDelivery     *DeliveryMetrics
	satisfactionBySpeed  map[string]float64
	topCategories        []*CategoryRevenue
	revenueByState       []*StateRevenue
}

// NewDashboardOverview crée une nouvelle instance de DashboardOverview
func NewDashboardOverview(year, previousYear int) *DashboardOverview {
	return &DashboardOverview{
		year:         year,
		previousYear: previousYear,
	}
}

// Year retourne l'année sélectionnée
func (o *DashboardOverview) Year() int {
	return o.year
}

// PreviousYear retourne l'année de comparaison (0 si indisponible)
func (o *DashboardOverview) PreviousYear() int {
	return o.previousYear
}

// Revenue retourne les métriques de revenus
func (o *DashboardOverview) Revenue() *RevenueMetrics {
	return o.revenue
}

// SetRevenue définit les métriques de revenus
func (o *DashboardOverview) SetRevenue(revenue *RevenueMetrics) {
	o.revenue = revenue
}

// MonthlyTrends retourne la série mensuelle de l'année sélectionnée
func (o *DashboardOverview) MonthlyTrends() []*MonthlyTrend {
	return append([]*MonthlyTrend{}, o.monthlyTrends...)
}

// SetMonthlyTrends définit la série mensuelle
func (o *DashboardOverview) SetMonthlyTrends(trends []*MonthlyTrend) {
	o.monthlyTrends = trends
}

// PreviousTrends retourne la série mensuelle de l'année précédente
// (nil quand l'année précédente est absente du dataset)
func (o *DashboardOverview) PreviousTrends() []*MonthlyTrend {
	if o.previousTrends == nil {
		return nil
	}
	return append([]*MonthlyTrend{}, o.previousTrends...)
}

// SetPreviousTrends définit la série mensuelle de l'année précédente
func (o *DashboardOverview) SetPreviousTrends(trends []*MonthlyTrend) {
	o.previousTrends = trends
}

// AverageMonthlyGrowth retourne la croissance mensuelle moyenne
func (o *DashboardOverview) AverageMonthlyGrowth() float64 {
	return o.averageMonthlyGrowth
}

// SetAverageMonthlyGrowth définit la croissance mensuelle moyenne
func (o *DashboardOverview) SetAverageMonthlyGrowth(growth float64) {
	o.averageMonthlyGrowth = growth
}

// Satisfaction retourne la satisfaction client (nil = indisponible)
func (o *DashboardOverview) Satisfaction() *SatisfactionMetrics {
	return o.satisfaction
}

// SetSatisfaction définit la satisfaction client
func (o *DashboardOverview) SetSatisfaction(satisfaction *SatisfactionMetrics) {
	o.satisfaction = satisfaction
}

// Delivery retourne la performance de livraison (nil = indisponible)
func (o *DashboardOverview) Delivery() *DeliveryMetrics {
	return o.delivery
}

// SetDelivery définit la performance de livraison
func (o *DashboardOverview) SetDelivery(delivery *DeliveryMetrics) {
	o.delivery = delivery
}

// PreviousDelivery retourne la performance de livraison de l'année
// précédente (nil = indisponible)
func (o *DashboardOverview) PreviousDelivery() *DeliveryMetrics {
	return o.previousDelivery
}

// SetPreviousDelivery définit la performance de livraison N-1
func (o *DashboardOverview) SetPreviousDelivery(delivery *DeliveryMetrics) {
	o.previousDelivery = delivery
}

// SatisfactionBySpeed retourne la note moyenne par tranche de délai
// (nil = indisponible; une tranche sans commande est absente de la map)
func (o *DashboardOverview) SatisfactionBySpeed() map[string]float64 {
	return o.satisfactionBySpeed
}

// SetSatisfactionBySpeed définit la note moyenne par tranche de délai
func (o *DashboardOverview) SetSatisfactionBySpeed(buckets map[string]float64) {
	o.satisfactionBySpeed = buckets
}

// TopCategories retourne les meilleures catégories (nil = indisponible)
func (o *DashboardOverview) TopCategories() []*CategoryRevenue {
	if o.topCategories == nil {
		return nil
	}
	return append([]*CategoryRevenue{}, o.topCategories...)
}

// SetTopCategories définit les meilleures catégories
func (o *DashboardOverview) SetTopCategories(categories []*CategoryRevenue) {
	o.topCategories = categories
}

// RevenueByState retourne le revenu par état (nil = indisponible)
func (o *DashboardOverview) RevenueByState() []*StateRevenue {
	if o.revenueByState == nil {
		return nil
	}
	return append([]*StateRevenue{}, o.revenueByState...)
}

// SetRevenueByState définit le revenu par état
func (o *DashboardOverview) SetRevenueByState(states []*StateRevenue) {
	o.revenueByState = states
}
