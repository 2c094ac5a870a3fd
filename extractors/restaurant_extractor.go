package extractors

import (
	"database/sql"
	"fmt"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// RestaurantExtractor извлекает данные о ресторанах из staging БД
type RestaurantExtractor struct {
	db     *sql.DB
	logger *utils.ETLLogger
}

// NewRestaurantExtractor создает новый экземпляр RestaurantExtractor
func NewRestaurantExtractor(db *sql.DB, logger *utils.ETLLogger) *RestaurantExtractor {
	return &RestaurantExtractor{
		db:     db,
		logger: logger,
	}
}

// ExtractRestaurants извлекает данные о ресторанах
func (e *RestaurantExtractor) ExtractRestaurants() ([]models.RestaurantStaging, error) {
	e.logger.Debug("Начало извлечения данных о ресторанах")

	query := `
		SELECT id, name, city, rating, cuisines
		FROM restaurants
		ORDER BY id
	`

	rows, err := e.db.Query(query)
	if err != nil {
		e.logger.Error("Ошибка при извлечении данных о ресторанах: %v", err)
		return nil, fmt.Errorf("ошибка запроса ресторанов: %w", err)
	}
	defer rows.Close()

	var restaurants []models.RestaurantStaging
	for rows.Next() {
		var raw [5]sql.NullString
		if err := rows.Scan(&raw[0], &raw[1], &raw[2], &raw[3], &raw[4]); err != nil {
			e.logger.Error("Ошибка при обработке данных ресторана: %v", err)
			return nil, fmt.Errorf("ошибка обработки данных ресторана: %w", err)
		}

		restaurants = append(restaurants, models.RestaurantStaging{
			RestaurantID: raw[0].String,
			Name:         raw[1].String,
			City:         raw[2].String,
			Rating:       raw[3].String,
			Cuisines:     raw[4].String,
		})
	}

	if err = rows.Err(); err != nil {
		e.logger.Error("Ошибка после итерации по ресторанам: %v", err)
		return nil, fmt.Errorf("ошибка после итерации по ресторанам: %w", err)
	}

	e.logger.Debug("Извлечено %d ресторанов", len(restaurants))
	return restaurants, nil
}
