package extractors

import (
	"database/sql"
	"fmt"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// LocationExtractor извлекает данные о локациях из staging БД
type LocationExtractor struct {
	db     *sql.DB
	logger *utils.ETLLogger
}

// NewLocationExtractor создает новый экземпляр LocationExtractor
func NewLocationExtractor(db *sql.DB, logger *utils.ETLLogger) *LocationExtractor {
	return &LocationExtractor{
		db:     db,
		logger: logger,
	}
}

// ExtractLocations извлекает данные о локациях
func (e *LocationExtractor) ExtractLocations() ([]models.LocationStaging, error) {
	e.logger.Debug("Начало извлечения данных о локациях")

	query := `
		SELECT country, state, city
		FROM locations
		ORDER BY country, state, city
	`

	rows, err := e.db.Query(query)
	if err != nil {
		e.logger.Error("Ошибка при извлечении данных о локациях: %v", err)
		return nil, fmt.Errorf("ошибка запроса локаций: %w", err)
	}
	defer rows.Close()

	var locations []models.LocationStaging
	for rows.Next() {
		var raw [3]sql.NullString
		if err := rows.Scan(&raw[0], &raw[1], &raw[2]); err != nil {
			e.logger.Error("Ошибка при обработке данных локации: %v", err)
			return nil, fmt.Errorf("ошибка обработки данных локации: %w", err)
		}

		locations = append(locations, models.LocationStaging{
			Country: raw[0].String,
			State:   raw[1].String,
			City:    raw[2].String,
		})
	}

	if err = rows.Err(); err != nil {
		e.logger.Error("Ошибка после итерации по локациям: %v", err)
		return nil, fmt.Errorf("ошибка после итерации по локациям: %w", err)
	}

	e.logger.Debug("Извлечено %d локаций", len(locations))
	return locations, nil
}
