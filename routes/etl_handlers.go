// routes/etl_handlers.go
package routes

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// RunsResponse структура ответа API для журнала запусков
type RunsResponse struct {
	Runs []models.ETLRunLog `json:"runs"`
}

// GetStatusHandler возвращает обработчик сводки состояния процесса слияния
func GetStatusHandler(repo models.ETLLogRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lastRun, err := repo.GetLastSuccessfulRun()
		if err != nil {
			log.Printf("Ошибка при получении последнего успешного запуска: %v", err)
			http.Error(w, "внутренняя ошибка сервера", http.StatusInternalServerError)
			return
		}

		// Сводка строится по запускам последних 30 дней
		runs, err := repo.GetETLRunStats(30)
		if err != nil {
			log.Printf("Ошибка при получении статистики запусков: %v", err)
			http.Error(w, "внутренняя ошибка сервера", http.StatusInternalServerError)
			return
		}

		monitor := models.ETLStateMonitor{
			LastSuccessfulRun: lastRun,
		}

		var totalExecution float64
		for _, run := range runs {
			switch run.Status {
			case "success":
				monitor.TotalSuccessfulRuns++
				totalExecution += run.ExecutionTimeSeconds
			case "failed":
				monitor.TotalFailedRuns++
			}
			monitor.TotalFactsMerged += run.FactsMerged
			monitor.TotalRowsExcluded += run.RowsExcluded
		}

		if monitor.TotalSuccessfulRuns > 0 {
			monitor.AvgExecutionTimeSeconds = totalExecution / float64(monitor.TotalSuccessfulRuns)
		}

		writeJSON(w, monitor)
	}
}

// GetRunsHandler возвращает обработчик журнала запусков
// Параметр days ограничивает период выборки (по умолчанию 7 дней)
func GetRunsHandler(repo models.ETLLogRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		days := 7
		if raw := r.URL.Query().Get("days"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				http.Error(w, "некорректный параметр days", http.StatusBadRequest)
				return
			}
			days = parsed
		}

		runs, err := repo.GetETLRunStats(days)
		if err != nil {
			log.Printf("Ошибка при получении журнала запусков: %v", err)
			http.Error(w, "внутренняя ошибка сервера", http.StatusInternalServerError)
			return
		}

		writeJSON(w, RunsResponse{Runs: runs})
	}
}

// GetLatestReportHandler возвращает обработчик отчёта последнего цикла
func GetLatestReportHandler(archive *utils.ReportArchive) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := archive.LoadLatest()
		if err != nil {
			log.Printf("Ошибка при чтении архива отчётов: %v", err)
			http.Error(w, "внутренняя ошибка сервера", http.StatusInternalServerError)
			return
		}

		if report == nil {
			http.Error(w, "отчёты еще не сформированы", http.StatusNotFound)
			return
		}

		writeJSON(w, report)
	}
}

// writeJSON сериализует ответ API в JSON
func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Ошибка при сериализации ответа API: %v", err)
	}
}
