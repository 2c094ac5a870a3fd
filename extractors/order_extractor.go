package extractors

import (
	"database/sql"
	"fmt"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// OrderExtractor извлекает данные о заказах из staging БД
type OrderExtractor struct {
	db     *sql.DB
	logger *utils.ETLLogger
}

// NewOrderExtractor создает новый экземпляр OrderExtractor
func NewOrderExtractor(db *sql.DB, logger *utils.ETLLogger) *OrderExtractor {
	return &OrderExtractor{
		db:     db,
		logger: logger,
	}
}

// ExtractOrders извлекает данные о заказах инкрементально
// lastProcessedOrderID — ID последнего заказа, обработанного предыдущим
// успешным циклом; извлекаются только более новые строки
func (e *OrderExtractor) ExtractOrders(lastProcessedOrderID, batchSize int) ([]models.OrderStaging, error) {
	e.logger.Debug("Начало извлечения данных о заказах (после ID %d)", lastProcessedOrderID)

	query := `
		SELECT id, user_id, restaurant_id, order_date, sales_qty, sales_amount, currency
		FROM orders
		WHERE id > ?
		ORDER BY id
		LIMIT ?
	`

	rows, err := e.db.Query(query, lastProcessedOrderID, batchSize)
	if err != nil {
		e.logger.Error("Ошибка при извлечении данных о заказах: %v", err)
		return nil, fmt.Errorf("ошибка запроса заказов: %w", err)
	}
	defer rows.Close()

	var orders []models.OrderStaging
	for rows.Next() {
		var id int
		var raw [6]sql.NullString
		if err := rows.Scan(&id, &raw[0], &raw[1], &raw[2], &raw[3], &raw[4], &raw[5]); err != nil {
			e.logger.Error("Ошибка при обработке данных заказа: %v", err)
			return nil, fmt.Errorf("ошибка обработки данных заказа: %w", err)
		}

		orders = append(orders, models.OrderStaging{
			ID:           id,
			UserID:       raw[0].String,
			RestaurantID: raw[1].String,
			OrderDate:    raw[2].String,
			Quantity:     raw[3].String,
			Amount:       raw[4].String,
			Currency:     raw[5].String,
		})
	}

	if err = rows.Err(); err != nil {
		e.logger.Error("Ошибка после итерации по заказам: %v", err)
		return nil, fmt.Errorf("ошибка после итерации по заказам: %w", err)
	}

	e.logger.Debug("Извлечено %d заказов", len(orders))
	return orders, nil
}

// GetLastOrderID получает максимальный ID заказа в staging-области
func (e *OrderExtractor) GetLastOrderID() (int, error) {
	var lastID sql.NullInt64

	err := e.db.QueryRow("SELECT MAX(id) FROM orders").Scan(&lastID)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		e.logger.Error("Ошибка при получении ID последнего заказа: %v", err)
		return 0, fmt.Errorf("ошибка получения ID последнего заказа: %w", err)
	}

	return int(lastID.Int64), nil
}
