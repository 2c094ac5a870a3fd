package models

import (
	"database/sql"
	"fmt"
	"time"
)

// MySQLETLLogRepository реализация ETLLogRepository для MySQL
type MySQLETLLogRepository struct {
	db *sql.DB
}

// NewMySQLETLLogRepository создает новый экземпляр MySQLETLLogRepository
func NewMySQLETLLogRepository(db *sql.DB) *MySQLETLLogRepository {
	return &MySQLETLLogRepository{
		db: db,
	}
}

// CreateETLLogTable создает таблицу журнала запусков, если она не существует
func (r *MySQLETLLogRepository) CreateETLLogTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS delivery_analytics.etl_run_log (
		id INT AUTO_INCREMENT PRIMARY KEY,
		run_id CHAR(36) NOT NULL,
		start_time TIMESTAMP NOT NULL,
		end_time TIMESTAMP NULL,
		status ENUM('success', 'failed', 'in_progress') NOT NULL DEFAULT 'in_progress',
		customers_merged INT DEFAULT 0,
		restaurants_merged INT DEFAULT 0,
		locations_merged INT DEFAULT 0,
		dates_merged INT DEFAULT 0,
		facts_merged INT DEFAULT 0,
		rows_excluded INT DEFAULT 0,
		orphans_found INT DEFAULT 0,
		facts_deleted INT DEFAULT 0,
		last_processed_order_id INT DEFAULT 0,
		error_message TEXT,
		execution_time_seconds FLOAT
	);
	`

	_, err := r.db.Exec(query)
	if err != nil {
		return fmt.Errorf("ошибка при создании таблицы etl_run_log: %w", err)
	}

	return nil
}

// CreateLogEntry создает новую запись о запуске цикла
func (r *MySQLETLLogRepository) CreateLogEntry(runID string, startTime time.Time) (int, error) {
	query := `
	INSERT INTO delivery_analytics.etl_run_log (run_id, start_time, status)
	VALUES (?, ?, 'in_progress')
	`

	result, err := r.db.Exec(query, runID, startTime)
	if err != nil {
		return 0, fmt.Errorf("ошибка при создании записи о запуске цикла: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("ошибка при получении ID созданной записи: %w", err)
	}

	return int(id), nil
}

// UpdateLogEntrySuccess обновляет запись при успешном завершении цикла
func (r *MySQLETLLogRepository) UpdateLogEntrySuccess(id int, report *CycleReport) error {
	query := `
	UPDATE delivery_analytics.etl_run_log
	SET
		end_time = ?,
		status = 'success',
		customers_merged = ?,
		restaurants_merged = ?,
		locations_merged = ?,
		dates_merged = ?,
		facts_merged = ?,
		rows_excluded = ?,
		orphans_found = ?,
		facts_deleted = ?,
		last_processed_order_id = ?,
		execution_time_seconds = ?
	WHERE id = ?
	`

	_, err := r.db.Exec(
		query,
		report.EndTime,
		report.Merged.Customers,
		report.Merged.Restaurants,
		report.Merged.Locations,
		report.Merged.Dates,
		report.Merged.Facts,
		len(report.Excluded),
		report.OrphansTotal,
		report.FactsDeleted,
		report.LastProcessedOrderID,
		report.ExecutionTimeSeconds,
		id,
	)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении записи журнала %d: %w", id, err)
	}

	return nil
}

// UpdateLogEntryFailure обновляет запись при неудачном завершении цикла
func (r *MySQLETLLogRepository) UpdateLogEntryFailure(id int, endTime time.Time, errorMessage string) error {
	query := `
	UPDATE delivery_analytics.etl_run_log
	SET
		end_time = ?,
		status = 'failed',
		error_message = ?
	WHERE id = ?
	`

	_, err := r.db.Exec(query, endTime, errorMessage, id)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении записи журнала %d: %w", id, err)
	}

	return nil
}

// GetLastSuccessfulRun получает информацию о последнем успешном запуске
func (r *MySQLETLLogRepository) GetLastSuccessfulRun() (*ETLRunLog, error) {
	query := `
	SELECT id, run_id, start_time, end_time, status,
		customers_merged, restaurants_merged, locations_merged,
		dates_merged, facts_merged, rows_excluded, orphans_found,
		facts_deleted, last_processed_order_id,
		COALESCE(error_message, ''), COALESCE(execution_time_seconds, 0)
	FROM delivery_analytics.etl_run_log
	WHERE status = 'success'
	ORDER BY id DESC
	LIMIT 1
	`

	runLog := &ETLRunLog{}
	err := r.db.QueryRow(query).Scan(
		&runLog.ID,
		&runLog.RunID,
		&runLog.StartTime,
		&runLog.EndTime,
		&runLog.Status,
		&runLog.CustomersMerged,
		&runLog.RestaurantsMerged,
		&runLog.LocationsMerged,
		&runLog.DatesMerged,
		&runLog.FactsMerged,
		&runLog.RowsExcluded,
		&runLog.OrphansFound,
		&runLog.FactsDeleted,
		&runLog.LastProcessedOrderID,
		&runLog.ErrorMessage,
		&runLog.ExecutionTimeSeconds,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			// Успешных запусков еще не было
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка при получении последнего успешного запуска: %w", err)
	}

	return runLog, nil
}

// GetETLRunStats получает статистику о запусках за последние days дней
func (r *MySQLETLLogRepository) GetETLRunStats(days int) ([]ETLRunLog, error) {
	query := `
	SELECT id, run_id, start_time, COALESCE(end_time, start_time), status,
		customers_merged, restaurants_merged, locations_merged,
		dates_merged, facts_merged, rows_excluded, orphans_found,
		facts_deleted, last_processed_order_id,
		COALESCE(error_message, ''), COALESCE(execution_time_seconds, 0)
	FROM delivery_analytics.etl_run_log
	WHERE start_time >= DATE_SUB(NOW(), INTERVAL ? DAY)
	ORDER BY id DESC
	`

	rows, err := r.db.Query(query, days)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении статистики запусков: %w", err)
	}
	defer rows.Close()

	var runs []ETLRunLog
	for rows.Next() {
		var runLog ETLRunLog
		if err := rows.Scan(
			&runLog.ID,
			&runLog.RunID,
			&runLog.StartTime,
			&runLog.EndTime,
			&runLog.Status,
			&runLog.CustomersMerged,
			&runLog.RestaurantsMerged,
			&runLog.LocationsMerged,
			&runLog.DatesMerged,
			&runLog.FactsMerged,
			&runLog.RowsExcluded,
			&runLog.OrphansFound,
			&runLog.FactsDeleted,
			&runLog.LastProcessedOrderID,
			&runLog.ErrorMessage,
			&runLog.ExecutionTimeSeconds,
		); err != nil {
			return nil, fmt.Errorf("ошибка при обработке записи журнала: %w", err)
		}
		runs = append(runs, runLog)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка после итерации по журналу запусков: %w", err)
	}

	return runs, nil
}
