package load

import (
	"database/sql"
	"fmt"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// LocationLoader отвечает за слияние записей измерения локаций
type LocationLoader struct {
	logger *utils.ETLLogger
}

// NewLocationLoader создает новый экземпляр LocationLoader
func NewLocationLoader(logger *utils.ETLLogger) *LocationLoader {
	return &LocationLoader{
		logger: logger,
	}
}

// Load сливает записи локаций в хранилище
// Суррогатный ключ закреплен за естественным ключом навсегда:
// повторная подача локации обновляет атрибуты, не трогая ключ
func (l *LocationLoader) Load(tx *sql.Tx, locations []models.LocationDimension) (int, error) {
	if len(locations) == 0 {
		l.logger.Debug("Нет записей локаций для загрузки")
		return 0, nil
	}

	stmt, err := tx.Prepare(`
		INSERT INTO delivery_analytics.location_dimension
		(location_nk, country, state, city, last_updated)
		VALUES (?, ?, ?, ?, NOW())
		ON DUPLICATE KEY UPDATE
		country = VALUES(country),
		state = VALUES(state),
		city = VALUES(city),
		last_updated = NOW()
	`)
	if err != nil {
		return 0, fmt.Errorf("ошибка при подготовке запроса измерения локаций: %w", err)
	}
	defer stmt.Close()

	for _, location := range locations {
		_, err := stmt.Exec(
			location.LocationNK,
			location.Country,
			location.State,
			location.City,
		)
		if err != nil {
			return 0, fmt.Errorf("ошибка при слиянии локации %s: %w", location.LocationNK, err)
		}
	}

	l.logger.Info("Слито записей локаций: %d", len(locations))
	return len(locations), nil
}
