package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"dashboard/api"
	v1 "dashboard/api/v1"
	"dashboard/database"
	datasetapp "dashboard/internal/dataset/application"
	datasetinfra "dashboard/internal/dataset/infrastructure"
	exportapp "dashboard/internal/export/application"
	metricsapp "dashboard/internal/metrics/application"
	sharedinfra "dashboard/internal/shared/infrastructure"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Attention: fichier .env non trouvé, utilisation des valeurs par défaut")
	}

	loader, err := newLoader()
	if err != nil {
		log.Fatal("❌ Erreur initialisation source de données:", err)
	}
	defer database.Close()

	// Cache partagé: Reload() invalide aussi les entrées du dashboard
	cache := sharedinfra.NewShardedCache(16)

	datasets := datasetapp.NewDatasetService(loader, cache, "delivered")
	dashboard := metricsapp.NewDashboardService(datasets, cache)
	exports := exportapp.NewExportService(datasets)

	handlers := v1.NewHandlers(datasets, dashboard, exports)
	router := api.NewRouter(handlers)

	port := getEnv("HTTP_PORT", "8080")
	log.Printf("Serveur démarré sur :%s", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}

// newLoader choisit la source de données
// DATA_DIR défini = fichiers CSV, sinon PostgreSQL
func newLoader() (datasetapp.Loader, error) {
	if dir := os.Getenv("DATA_DIR"); dir != "" {
		log.Printf("Source de données: CSV (%s)", dir)
		return datasetinfra.NewCSVLoader(dir), nil
	}

	if err := database.Init(database.ConnStrFromEnv()); err != nil {
		return nil, err
	}
	log.Println("Source de données: PostgreSQL")
	return datasetinfra.NewPostgresLoader(database.DB), nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
