package load

import (
	"database/sql"
	"fmt"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/transform"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// GeoLinkage назначает ресторанам ключ локации приближенным сопоставлением
// города: город локации должен быть подстрокой (без учета регистра)
// свободного текстового поля города ресторана
type GeoLinkage struct {
	logger *utils.ETLLogger
}

// NewGeoLinkage создает новый экземпляр GeoLinkage
func NewGeoLinkage(logger *utils.ETLLogger) *GeoLinkage {
	return &GeoLinkage{
		logger: logger,
	}
}

// Resolve выполняет гео-сопоставление внутри транзакции цикла
// Обрабатываются только рестораны с NULL-ключом локации: однажды
// назначенная локация не перезаписывается. Возвращает количество
// назначенных ключей и количество неоднозначных сопоставлений
func (g *GeoLinkage) Resolve(tx *sql.Tx) (int, int, error) {
	g.logger.Debug("Начало гео-сопоставления ресторанов и локаций")

	candidates, err := g.loadLocationCandidates(tx)
	if err != nil {
		return 0, 0, err
	}

	if len(candidates) == 0 {
		g.logger.Debug("Измерение локаций пусто, гео-сопоставление пропущено")
		return 0, 0, nil
	}

	unlinked, err := g.loadUnlinkedRestaurants(tx)
	if err != nil {
		return 0, 0, err
	}

	stmt, err := tx.Prepare(`
		UPDATE delivery_analytics.restaurant_dimension
		SET location_key = ?, last_updated = NOW()
		WHERE restaurant_key = ? AND location_key IS NULL
	`)
	if err != nil {
		return 0, 0, fmt.Errorf("ошибка при подготовке запроса гео-сопоставления: %w", err)
	}
	defer stmt.Close()

	assigned := 0
	ambiguous := 0

	for _, restaurant := range unlinked {
		locationKey, matches := transform.MatchLocation(restaurant.City, candidates)
		if matches == 0 {
			// Нет совпадений: ключ локации остаётся NULL
			continue
		}

		if matches > 1 {
			// Неоднозначность наследована от исходной модели данных:
			// выбор детерминирован ранжированием, но не осмыслен
			ambiguous++
			g.logger.Warn("Неоднозначное гео-сопоставление для ресторана %d (город %q): кандидатов %d, выбрана локация %d",
				restaurant.RestaurantKey, restaurant.City, matches, locationKey)
		}

		if _, err := stmt.Exec(locationKey, restaurant.RestaurantKey); err != nil {
			return assigned, ambiguous, fmt.Errorf("ошибка при назначении локации ресторану %d: %w",
				restaurant.RestaurantKey, err)
		}
		assigned++
	}

	// Доливаем ключ локации в факты, слитые раньше, чем их ресторан
	// получил локацию: заказы извлекаются по водяному знаку и повторно
	// не подаются, поэтому без дозаполнения такой факт остался бы
	// с NULL-ключом навсегда
	backfill, err := tx.Exec(`
		UPDATE delivery_analytics.order_facts f
		JOIN delivery_analytics.restaurant_dimension r ON f.restaurant_key = r.restaurant_key
		SET f.location_key = r.location_key, f.last_updated = NOW()
		WHERE f.location_key IS NULL AND r.location_key IS NOT NULL
	`)
	if err != nil {
		return assigned, ambiguous, fmt.Errorf("ошибка при дозаполнении локаций фактов: %w", err)
	}
	if n, err := backfill.RowsAffected(); err == nil && n > 0 {
		g.logger.Info("Дозаполнены ключи локаций у ранее слитых фактов: %d", n)
	}

	g.logger.Info("Гео-сопоставление завершено. Назначено локаций: %d, неоднозначных: %d", assigned, ambiguous)
	return assigned, ambiguous, nil
}

// loadLocationCandidates читает кандидатов сопоставления из измерения локаций
func (g *GeoLinkage) loadLocationCandidates(tx *sql.Tx) ([]transform.LocationCandidate, error) {
	rows, err := tx.Query("SELECT location_key, city FROM delivery_analytics.location_dimension ORDER BY location_key")
	if err != nil {
		return nil, fmt.Errorf("ошибка при чтении локаций для гео-сопоставления: %w", err)
	}
	defer rows.Close()

	var candidates []transform.LocationCandidate
	for rows.Next() {
		var candidate transform.LocationCandidate
		var city sql.NullString
		if err := rows.Scan(&candidate.Key, &city); err != nil {
			return nil, fmt.Errorf("ошибка при обработке локации: %w", err)
		}
		candidate.City = city.String
		candidates = append(candidates, candidate)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка после итерации по локациям: %w", err)
	}

	return candidates, nil
}

// loadUnlinkedRestaurants читает рестораны без назначенной локации
func (g *GeoLinkage) loadUnlinkedRestaurants(tx *sql.Tx) ([]models.RestaurantDimension, error) {
	rows, err := tx.Query(`
		SELECT restaurant_key, city
		FROM delivery_analytics.restaurant_dimension
		WHERE location_key IS NULL
		ORDER BY restaurant_key
	`)
	if err != nil {
		return nil, fmt.Errorf("ошибка при чтении ресторанов без локации: %w", err)
	}
	defer rows.Close()

	var restaurants []models.RestaurantDimension
	for rows.Next() {
		var restaurant models.RestaurantDimension
		var city sql.NullString
		if err := rows.Scan(&restaurant.RestaurantKey, &city); err != nil {
			return nil, fmt.Errorf("ошибка при обработке ресторана без локации: %w", err)
		}
		restaurant.City = city.String
		restaurants = append(restaurants, restaurant)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка после итерации по ресторанам без локации: %w", err)
	}

	return restaurants, nil
}
