package v1

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/render"

	datasetapp "dashboard/internal/dataset/application"
	datasetdomain "dashboard/internal/dataset/domain"
	exportapp "dashboard/internal/export/application"
	metricsapp "dashboard/internal/metrics/application"
	metricsdomain "dashboard/internal/metrics/domain"
)

// Nombre de catégories retournées par le endpoint des catégories
const topCategoriesLimit = 10

// Handlers regroupe les handlers HTTP de l'API v1
type Handlers struct {
	datasets  *datasetapp.DatasetService
	dashboard *metricsapp.DashboardService
	exports   *exportapp.ExportService
}

// NewHandlers crée une nouvelle instance de Handlers
func NewHandlers(datasets *datasetapp.DatasetService, dashboard *metricsapp.DashboardService, exports *exportapp.ExportService) *Handlers {
	return &Handlers{
		datasets:  datasets,
		dashboard: dashboard,
		exports:   exports,
	}
}

// Health répond au healthcheck
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, HealthResponse{Status: "ok"})
}

// Years liste les années disponibles dans le dataset de base
func (h *Handlers) Years(w http.ResponseWriter, r *http.Request) {
	dataset, err := h.datasets.Base()
	if err != nil {
		renderError(w, r, http.StatusInternalServerError, err)
		return
	}
	render.JSON(w, r, YearsResponse{Years: dataset.Years()})
}

// Reload recharge les tables sources et invalide les caches
func (h *Handlers) Reload(w http.ResponseWriter, r *http.Request) {
	if err := h.datasets.Reload(); err != nil {
		renderError(w, r, http.StatusInternalServerError, err)
		return
	}
	dataset, err := h.datasets.Base()
	if err != nil {
		renderError(w, r, http.StatusInternalServerError, err)
		return
	}
	render.JSON(w, r, ReloadResponse{Status: "reloaded", Rows: dataset.Len()})
}

// Dashboard retourne toutes les métriques d'une année en une réponse
func (h *Handlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	year, _, err := h.resolveYear(r)
	if err != nil {
		renderError(w, r, http.StatusBadRequest, err)
		return
	}

	overview, err := h.dashboard.Overview(year)
	if err != nil {
		renderError(w, r, http.StatusInternalServerError, err)
		return
	}

	response := &DashboardResponse{
		Year:                 overview.Year(),
		PreviousYear:         overview.PreviousYear(),
		Revenue:              toRevenueModel(overview.Revenue()),
		MonthlyTrends:        toTrendModels(overview.MonthlyTrends()),
		PreviousTrends:       toTrendModels(overview.PreviousTrends()),
		AverageMonthlyGrowth: overview.AverageMonthlyGrowth(),
		TopCategories:        toCategoryModels(overview.TopCategories()),
		RevenueByState:       toStateModels(overview.RevenueByState()),
	}
	if satisfaction := overview.Satisfaction(); satisfaction != nil {
		response.Satisfaction = &SatisfactionResponse{
			Year:               overview.Year(),
			Available:          true,
			AverageReviewScore: satisfaction.AverageReviewScore(),
			Orders:             satisfaction.Orders(),
		}
	}
	if delivery := overview.Delivery(); delivery != nil {
		response.Delivery = &DeliveryResponse{
			Year:                overview.Year(),
			Available:           true,
			AverageDeliveryDays: delivery.AverageDeliveryDays(),
			Orders:              delivery.Orders(),
		}
	}
	if previous := overview.PreviousDelivery(); previous != nil {
		response.PreviousDelivery = &DeliveryResponse{
			Year:                overview.PreviousYear(),
			Available:           true,
			AverageDeliveryDays: previous.AverageDeliveryDays(),
			Orders:              previous.Orders(),
		}
	}
	if buckets := overview.SatisfactionBySpeed(); buckets != nil {
		response.SatisfactionBySpeed = &SatisfactionBySpeedResponse{
			Year:      overview.Year(),
			Available: true,
			Buckets:   buckets,
		}
	}

	render.JSON(w, r, response)
}

// Revenue retourne les métriques de revenus d'une année
func (h *Handlers) Revenue(w http.ResponseWriter, r *http.Request) {
	year, dataset, err := h.resolveYear(r)
	if err != nil {
		renderError(w, r, http.StatusBadRequest, err)
		return
	}

	previousYear := 0
	if dataset.HasYear(year - 1) {
		previousYear = year - 1
	}

	calculator := metricsapp.NewMetricsCalculator(dataset)
	render.JSON(w, r, toRevenueModel(calculator.RevenueMetrics(year, previousYear)))
}

// MonthlyTrends retourne les tendances mensuelles d'une année
func (h *Handlers) MonthlyTrends(w http.ResponseWriter, r *http.Request) {
	year, dataset, err := h.resolveYear(r)
	if err != nil {
		renderError(w, r, http.StatusBadRequest, err)
		return
	}

	calculator := metricsapp.NewMetricsCalculator(dataset)
	trends := calculator.MonthlyTrends(year)
	render.JSON(w, r, &MonthlyTrendsResponse{
		Year:                 year,
		Trends:               toTrendModels(trends),
		AverageMonthlyGrowth: metricsdomain.AverageMonthlyGrowth(trends),
	})
}

// Satisfaction retourne la satisfaction client d'une année
func (h *Handlers) Satisfaction(w http.ResponseWriter, r *http.Request) {
	year, dataset, err := h.resolveYear(r)
	if err != nil {
		renderError(w, r, http.StatusBadRequest, err)
		return
	}

	calculator := metricsapp.NewMetricsCalculator(dataset)
	satisfaction, err := calculator.CustomerSatisfaction(year)
	if err != nil {
		if metricsdomain.IsUnavailable(err) {
			render.JSON(w, r, &SatisfactionResponse{Year: year, Reason: metricsdomain.UnavailableReason(err)})
			return
		}
		renderError(w, r, http.StatusInternalServerError, err)
		return
	}
	render.JSON(w, r, &SatisfactionResponse{
		Year:               year,
		Available:          true,
		AverageReviewScore: satisfaction.AverageReviewScore(),
		Orders:             satisfaction.Orders(),
	})
}

// Delivery retourne la performance de livraison d'une année
func (h *Handlers) Delivery(w http.ResponseWriter, r *http.Request) {
	year, dataset, err := h.resolveYear(r)
	if err != nil {
		renderError(w, r, http.StatusBadRequest, err)
		return
	}

	calculator := metricsapp.NewMetricsCalculator(dataset)
	delivery, err := calculator.DeliveryPerformance(year)
	if err != nil {
		if metricsdomain.IsUnavailable(err) {
			render.JSON(w, r, &DeliveryResponse{Year: year, Reason: metricsdomain.UnavailableReason(err)})
			return
		}
		renderError(w, r, http.StatusInternalServerError, err)
		return
	}
	render.JSON(w, r, &DeliveryResponse{
		Year:                year,
		Available:           true,
		AverageDeliveryDays: delivery.AverageDeliveryDays(),
		Orders:              delivery.Orders(),
	})
}

// SatisfactionByDeliverySpeed retourne la note moyenne par tranche de
// délai de livraison
func (h *Handlers) SatisfactionByDeliverySpeed(w http.ResponseWriter, r *http.Request) {
	year, dataset, err := h.resolveYear(r)
	if err != nil {
		renderError(w, r, http.StatusBadRequest, err)
		return
	}

	calculator := metricsapp.NewMetricsCalculator(dataset)
	buckets, err := calculator.SatisfactionByDeliverySpeed(year)
	if err != nil {
		if metricsdomain.IsUnavailable(err) {
			render.JSON(w, r, &SatisfactionBySpeedResponse{Year: year, Reason: metricsdomain.UnavailableReason(err)})
			return
		}
		renderError(w, r, http.StatusInternalServerError, err)
		return
	}
	render.JSON(w, r, &SatisfactionBySpeedResponse{
		Year:      year,
		Available: true,
		Buckets:   buckets,
	})
}

// Categories retourne les catégories les plus rentables d'une année
func (h *Handlers) Categories(w http.ResponseWriter, r *http.Request) {
	year, dataset, err := h.resolveYear(r)
	if err != nil {
		renderError(w, r, http.StatusBadRequest, err)
		return
	}

	calculator := metricsapp.NewMetricsCalculator(dataset)
	categories, err := calculator.CategoryRevenue(year, topCategoriesLimit)
	if err != nil {
		if metricsdomain.IsUnavailable(err) {
			render.JSON(w, r, &CategoriesResponse{Year: year, Reason: metricsdomain.UnavailableReason(err)})
			return
		}
		renderError(w, r, http.StatusInternalServerError, err)
		return
	}
	render.JSON(w, r, &CategoriesResponse{
		Year:       year,
		Available:  true,
		Categories: toCategoryModels(categories),
	})
}

// States retourne le revenu par état d'une année
func (h *Handlers) States(w http.ResponseWriter, r *http.Request) {
	year, dataset, err := h.resolveYear(r)
	if err != nil {
		renderError(w, r, http.StatusBadRequest, err)
		return
	}

	calculator := metricsapp.NewMetricsCalculator(dataset)
	states, err := calculator.StateRevenue(year)
	if err != nil {
		if metricsdomain.IsUnavailable(err) {
			render.JSON(w, r, &StatesResponse{Year: year, Reason: metricsdomain.UnavailableReason(err)})
			return
		}
		renderError(w, r, http.StatusInternalServerError, err)
		return
	}
	render.JSON(w, r, &StatesResponse{
		Year:      year,
		Available: true,
		States:    toStateModels(states),
	})
}

// ExportCSV retourne le dataset de ventes en CSV
// year=0 (absent) exporte toutes les années
func (h *Handlers) ExportCSV(w http.ResponseWriter, r *http.Request) {
	year, err := parseOptionalYear(r)
	if err != nil {
		renderError(w, r, http.StatusBadRequest, err)
		return
	}

	data, err := h.exports.ExportSalesToCSV(year)
	if err != nil {
		renderError(w, r, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="sales.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// ExportParquet retourne le dataset de ventes en parquet
func (h *Handlers) ExportParquet(w http.ResponseWriter, r *http.Request) {
	year, err := parseOptionalYear(r)
	if err != nil {
		renderError(w, r, http.StatusBadRequest, err)
		return
	}

	data, err := h.exports.ExportSalesToParquet(year)
	if err != nil {
		renderError(w, r, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", `attachment; filename="sales.parquet"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// resolveYear détermine l'année demandée
// Sans paramètre "year", l'année la plus récente du dataset est retenue
func (h *Handlers) resolveYear(r *http.Request) (int, *datasetdomain.SalesDataset, error) {
	dataset, err := h.datasets.Base()
	if err != nil {
		return 0, nil, err
	}

	year, err := parseOptionalYear(r)
	if err != nil {
		return 0, nil, err
	}
	if year == 0 {
		years := dataset.Years()
		if len(years) == 0 {
			return 0, nil, fmt.Errorf("no data available")
		}
		year = years[0]
	}
	return year, dataset, nil
}

// parseOptionalYear lit le paramètre "year", 0 si absent
func parseOptionalYear(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("year")
	if raw == "" {
		return 0, nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil || year <= 0 {
		return 0, fmt.Errorf("invalid year parameter: %q", raw)
	}
	return year, nil
}

func renderError(w http.ResponseWriter, r *http.Request, status int, err error) {
	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{Error: err.Error()})
}
