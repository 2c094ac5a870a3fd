package models

import (
	"time"
)

// ETLRunLog представляет запись журнала о запуске цикла слияния
type ETLRunLog struct {
	ID                   int       `json:"id"`
	RunID                string    `json:"run_id"`
	StartTime            time.Time `json:"start_time"`
	EndTime              time.Time `json:"end_time"`
	Status               string    `json:"status"` // "success", "failed", "in_progress"
	CustomersMerged      int       `json:"customers_merged"`
	RestaurantsMerged    int       `json:"restaurants_merged"`
	LocationsMerged      int       `json:"locations_merged"`
	DatesMerged          int       `json:"dates_merged"`
	FactsMerged          int       `json:"facts_merged"`
	RowsExcluded         int       `json:"rows_excluded"`
	OrphansFound         int       `json:"orphans_found"`
	FactsDeleted         int       `json:"facts_deleted"`
	LastProcessedOrderID int       `json:"last_processed_order_id"`
	ErrorMessage         string    `json:"error_message,omitempty"`
	ExecutionTimeSeconds float64   `json:"execution_time_seconds"`
}

// ETLLogRepository представляет репозиторий для работы с журналом запусков
type ETLLogRepository interface {
	// CreateLogEntry создает новую запись о запуске цикла
	CreateLogEntry(runID string, startTime time.Time) (int, error)

	// UpdateLogEntrySuccess обновляет запись при успешном завершении цикла
	UpdateLogEntrySuccess(id int, report *CycleReport) error

	// UpdateLogEntryFailure обновляет запись при неудачном завершении цикла
	UpdateLogEntryFailure(id int, endTime time.Time, errorMessage string) error

	// GetLastSuccessfulRun получает информацию о последнем успешном запуске
	GetLastSuccessfulRun() (*ETLRunLog, error)

	// GetETLRunStats получает статистику о запусках за определенный период
	GetETLRunStats(days int) ([]ETLRunLog, error)
}

// ETLStateMonitor предоставляет сводку о состоянии процесса слияния
// для операционного HTTP-интерфейса
type ETLStateMonitor struct {
	LastSuccessfulRun       *ETLRunLog `json:"last_successful_run"`
	TotalSuccessfulRuns     int        `json:"total_successful_runs"`
	TotalFailedRuns         int        `json:"total_failed_runs"`
	AvgExecutionTimeSeconds float64    `json:"avg_execution_time_seconds"`
	TotalFactsMerged        int        `json:"total_facts_merged"`
	TotalRowsExcluded       int        `json:"total_rows_excluded"`
}
