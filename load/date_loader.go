package load

import (
	"database/sql"
	"fmt"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// DateLoader отвечает за слияние записей календарного измерения
type DateLoader struct {
	logger *utils.ETLLogger
}

// NewDateLoader создает новый экземпляр DateLoader
func NewDateLoader(logger *utils.ETLLogger) *DateLoader {
	return &DateLoader{
		logger: logger,
	}
}

// Load сливает календарные записи в хранилище
// Атрибуты даты — чистая функция ключа, поэтому повторное слияние
// той же даты безопасно: вставка при отсутствии, обновление при наличии
func (l *DateLoader) Load(tx *sql.Tx, dates []models.DateDimension) (int, error) {
	if len(dates) == 0 {
		l.logger.Debug("Нет календарных записей для загрузки")
		return 0, nil
	}

	stmt, err := tx.Prepare(`
		INSERT INTO delivery_analytics.date_dimension
		(date_key, full_date, year, quarter, month, month_name,
		day_of_month, day_of_week, is_weekend)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
		full_date = VALUES(full_date),
		year = VALUES(year),
		quarter = VALUES(quarter),
		month = VALUES(month),
		month_name = VALUES(month_name),
		day_of_month = VALUES(day_of_month),
		day_of_week = VALUES(day_of_week),
		is_weekend = VALUES(is_weekend)
	`)
	if err != nil {
		return 0, fmt.Errorf("ошибка при подготовке запроса календарного измерения: %w", err)
	}
	defer stmt.Close()

	for _, date := range dates {
		_, err := stmt.Exec(
			date.DateKey,
			date.FullDate.Format("2006-01-02"),
			date.Year,
			date.Quarter,
			date.Month,
			date.MonthName,
			date.DayOfMonth,
			date.DayOfWeek,
			date.IsWeekend,
		)
		if err != nil {
			return 0, fmt.Errorf("ошибка при слиянии даты %d: %w", date.DateKey, err)
		}
	}

	l.logger.Info("Слито календарных записей: %d", len(dates))
	return len(dates), nil
}
