package load

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// restaurantRef хранит суррогатный ключ ресторана вместе с ключом его
// локации: факт наследует локацию от своего ресторана
type restaurantRef struct {
	key         int
	locationKey sql.NullInt64
}

// FactLoader отвечает за слияние фактов заказов
type FactLoader struct {
	logger *utils.ETLLogger
}

// NewFactLoader создает новый экземпляр FactLoader
func NewFactLoader(logger *utils.ETLLogger) *FactLoader {
	return &FactLoader{
		logger: logger,
	}
}

// Load разрешает внешние ключи строк фактов по естественным ключам
// измерений и сливает их в фактовую таблицу. Строки, чей клиент или
// ресторан не найден в измерениях, исключаются и попадают в отчёт:
// отсутствие ссылки — проблема данных, а не повод прерывать цикл.
// Для существующих естественных ключей перезаписываются все внешние
// ключи и меры; количество и сумма никогда не инкрементируются
func (l *FactLoader) Load(tx *sql.Tx, facts []models.OrderFactRow) (int, []models.ExcludedRow, error) {
	if len(facts) == 0 {
		l.logger.Debug("Нет строк фактов для загрузки")
		return 0, nil, nil
	}

	startTime := time.Now()
	l.logger.Info("Начало слияния фактов заказов (всего: %d)", len(facts))

	// Словари соответствия естественных ключей суррогатным строим внутри
	// транзакции цикла: слияния измерений уже зафиксированы в ней же
	customerKeys, err := l.loadCustomerKeys(tx)
	if err != nil {
		return 0, nil, err
	}

	restaurantKeys, err := l.loadRestaurantKeys(tx)
	if err != nil {
		return 0, nil, err
	}

	dateKeys, err := l.loadDateKeys(tx)
	if err != nil {
		return 0, nil, err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO delivery_analytics.order_facts
		(order_nk, date_key, customer_key, restaurant_key, location_key,
		quantity, amount, currency, last_updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW())
		ON DUPLICATE KEY UPDATE
		date_key = VALUES(date_key),
		customer_key = VALUES(customer_key),
		restaurant_key = VALUES(restaurant_key),
		location_key = VALUES(location_key),
		quantity = VALUES(quantity),
		amount = VALUES(amount),
		currency = VALUES(currency),
		last_updated = NOW()
	`)
	if err != nil {
		return 0, nil, fmt.Errorf("ошибка при подготовке запроса фактов: %w", err)
	}
	defer stmt.Close()

	processed := 0
	var excluded []models.ExcludedRow

	for _, fact := range facts {
		customerKey, ok := customerKeys[fact.CustomerNK]
		if !ok {
			refErr := &models.UnresolvedReferenceError{Dimension: "customer_dimension", NaturalKey: fact.CustomerNK}
			l.logger.Error("Строка факта %s исключена: %v", fact.NaturalKey, refErr)
			excluded = append(excluded, models.ExcludedRow{
				NaturalKey: fact.NaturalKey,
				Reason:     models.ReasonUnresolvedReference,
				Detail:     refErr.Error(),
			})
			continue
		}

		restaurant, ok := restaurantKeys[fact.RestaurantNK]
		if !ok {
			refErr := &models.UnresolvedReferenceError{Dimension: "restaurant_dimension", NaturalKey: fact.RestaurantNK}
			l.logger.Error("Строка факта %s исключена: %v", fact.NaturalKey, refErr)
			excluded = append(excluded, models.ExcludedRow{
				NaturalKey: fact.NaturalKey,
				Reason:     models.ReasonUnresolvedReference,
				Detail:     refErr.Error(),
			})
			continue
		}

		if !dateKeys[fact.DateKey] {
			refErr := &models.UnresolvedReferenceError{Dimension: "date_dimension", NaturalKey: fmt.Sprintf("%d", fact.DateKey)}
			l.logger.Error("Строка факта %s исключена: %v", fact.NaturalKey, refErr)
			excluded = append(excluded, models.ExcludedRow{
				NaturalKey: fact.NaturalKey,
				Reason:     models.ReasonUnresolvedReference,
				Detail:     refErr.Error(),
			})
			continue
		}

		_, err := stmt.Exec(
			fact.NaturalKey,
			fact.DateKey,
			customerKey,
			restaurant.key,
			restaurant.locationKey,
			fact.Quantity,
			fact.Amount,
			fact.Currency,
		)
		if err != nil {
			return processed, excluded, fmt.Errorf("ошибка при слиянии факта %s: %w", fact.NaturalKey, err)
		}

		processed++

		// Логируем прогресс каждые 100 фактов
		if processed%100 == 0 {
			l.logger.Debug("Слито %d из %d фактов...", processed, len(facts))
		}
	}

	l.logger.Info("Слияние фактов завершено. Записей: %d, исключено: %d. Длительность: %v",
		processed, len(excluded), time.Since(startTime))
	return processed, excluded, nil
}

// loadCustomerKeys строит словарь естественный ключ → суррогатный ключ
// для измерения клиентов
func (l *FactLoader) loadCustomerKeys(tx *sql.Tx) (map[string]int, error) {
	rows, err := tx.Query("SELECT customer_nk, customer_key FROM delivery_analytics.customer_dimension")
	if err != nil {
		return nil, fmt.Errorf("ошибка при чтении ключей клиентов: %w", err)
	}
	defer rows.Close()

	keys := make(map[string]int)
	for rows.Next() {
		var nk string
		var key int
		if err := rows.Scan(&nk, &key); err != nil {
			return nil, fmt.Errorf("ошибка при обработке ключа клиента: %w", err)
		}
		keys[nk] = key
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка после итерации по ключам клиентов: %w", err)
	}

	return keys, nil
}

// loadRestaurantKeys строит словарь естественный ключ → суррогатный ключ
// ресторана вместе с ключом его локации
func (l *FactLoader) loadRestaurantKeys(tx *sql.Tx) (map[string]restaurantRef, error) {
	rows, err := tx.Query("SELECT restaurant_nk, restaurant_key, location_key FROM delivery_analytics.restaurant_dimension")
	if err != nil {
		return nil, fmt.Errorf("ошибка при чтении ключей ресторанов: %w", err)
	}
	defer rows.Close()

	keys := make(map[string]restaurantRef)
	for rows.Next() {
		var nk string
		var ref restaurantRef
		if err := rows.Scan(&nk, &ref.key, &ref.locationKey); err != nil {
			return nil, fmt.Errorf("ошибка при обработке ключа ресторана: %w", err)
		}
		keys[nk] = ref
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка после итерации по ключам ресторанов: %w", err)
	}

	return keys, nil
}

// loadDateKeys строит множество существующих ключей календарного измерения
func (l *FactLoader) loadDateKeys(tx *sql.Tx) (map[int]bool, error) {
	rows, err := tx.Query("SELECT date_key FROM delivery_analytics.date_dimension")
	if err != nil {
		return nil, fmt.Errorf("ошибка при чтении ключей дат: %w", err)
	}
	defer rows.Close()

	keys := make(map[int]bool)
	for rows.Next() {
		var key int
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("ошибка при обработке ключа даты: %w", err)
		}
		keys[key] = true
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка после итерации по ключам дат: %w", err)
	}

	return keys, nil
}
