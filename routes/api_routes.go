// routes/api_routes.go
package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/LilVoxy/coursework_dwh/metrics"
	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// SetupRoutes настраивает маршруты операционного API
func SetupRoutes(router *mux.Router, repo models.ETLLogRepository, archive *utils.ReportArchive, registry *metrics.Registry) {
	// Применяем CORS middleware
	router.Use(corsMiddleware)

	// API состояния процесса слияния
	router.HandleFunc("/api/etl/status", GetStatusHandler(repo)).Methods("GET", "OPTIONS")

	// API журнала запусков
	router.HandleFunc("/api/etl/runs", GetRunsHandler(repo)).Methods("GET", "OPTIONS")

	// API отчёта последнего цикла
	router.HandleFunc("/api/etl/report/latest", GetLatestReportHandler(archive)).Methods("GET", "OPTIONS")

	// Экспорт метрик Prometheus
	router.Handle("/metrics", registry.Handler()).Methods("GET")
}

// corsMiddleware разрешает кросс-доменные запросы к операционному API
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
