package load

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// RestaurantLoader отвечает за слияние записей измерения ресторанов
type RestaurantLoader struct {
	logger *utils.ETLLogger
}

// NewRestaurantLoader создает новый экземпляр RestaurantLoader
func NewRestaurantLoader(logger *utils.ETLLogger) *RestaurantLoader {
	return &RestaurantLoader{
		logger: logger,
	}
}

// Load сливает записи ресторанов в хранилище
// location_key намеренно отсутствует в списке обновления: назначенная
// гео-сопоставлением локация никогда не перезаписывается слиянием
func (l *RestaurantLoader) Load(tx *sql.Tx, restaurants []models.RestaurantDimension) (int, error) {
	if len(restaurants) == 0 {
		l.logger.Debug("Нет данных ресторанов для загрузки")
		return 0, nil
	}

	startTime := time.Now()
	l.logger.Info("Начало слияния измерения ресторанов (всего: %d)", len(restaurants))

	stmt, err := tx.Prepare(`
		INSERT INTO delivery_analytics.restaurant_dimension
		(restaurant_nk, name, city, rating, cuisines, last_updated)
		VALUES (?, ?, ?, ?, ?, NOW())
		ON DUPLICATE KEY UPDATE
		name = VALUES(name),
		city = VALUES(city),
		rating = VALUES(rating),
		cuisines = VALUES(cuisines),
		last_updated = NOW()
	`)
	if err != nil {
		return 0, fmt.Errorf("ошибка при подготовке запроса измерения ресторанов: %w", err)
	}
	defer stmt.Close()

	processed := 0

	for _, restaurant := range restaurants {
		_, err := stmt.Exec(
			restaurant.RestaurantNK,
			restaurant.Name,
			restaurant.City,
			restaurant.Rating,
			restaurant.Cuisines,
		)
		if err != nil {
			return processed, fmt.Errorf("ошибка при слиянии ресторана %s: %w", restaurant.RestaurantNK, err)
		}

		processed++

		// Логируем прогресс каждые 100 ресторанов
		if processed%100 == 0 {
			l.logger.Debug("Слито %d из %d ресторанов...", processed, len(restaurants))
		}
	}

	l.logger.Info("Слияние измерения ресторанов завершено. Записей: %d. Длительность: %v",
		processed, time.Since(startTime))
	return processed, nil
}
