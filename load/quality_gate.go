package load

import (
	"database/sql"
	"fmt"

	"github.com/LilVoxy/coursework_dwh/utils"
)

// Проверки внешних ключей фактовой таблицы
// Факт с location_key = NULL легален, поэтому для локаций сиротой
// считается только ненулевой ключ без записи в измерении
var orphanChecks = []struct {
	name  string
	query string
}{
	{
		name: "date_key",
		query: `SELECT COUNT(*)
			FROM delivery_analytics.order_facts f
			LEFT JOIN delivery_analytics.date_dimension d ON f.date_key = d.date_key
			WHERE d.date_key IS NULL`,
	},
	{
		name: "customer_key",
		query: `SELECT COUNT(*)
			FROM delivery_analytics.order_facts f
			LEFT JOIN delivery_analytics.customer_dimension c ON f.customer_key = c.customer_key
			WHERE c.customer_key IS NULL`,
	},
	{
		name: "restaurant_key",
		query: `SELECT COUNT(*)
			FROM delivery_analytics.order_facts f
			LEFT JOIN delivery_analytics.restaurant_dimension r ON f.restaurant_key = r.restaurant_key
			WHERE r.restaurant_key IS NULL`,
	},
	{
		name: "location_key",
		query: `SELECT COUNT(*)
			FROM delivery_analytics.order_facts f
			LEFT JOIN delivery_analytics.location_dimension l ON f.location_key = l.location_key
			WHERE f.location_key IS NOT NULL AND l.location_key IS NULL`,
	},
}

// Отношения хранилища для итоговой сводки количества строк
var countedRelations = []string{
	"date_dimension",
	"customer_dimension",
	"restaurant_dimension",
	"location_dimension",
	"order_facts",
}

// QualityGate выполняет пост-проверку после каждого цикла слияния:
// поиск сирот по внешним ключам, удаление фактов с сигнальными значениями
// суммы и сводка количества строк по отношениям
type QualityGate struct {
	logger *utils.ETLLogger
}

// NewQualityGate создает новый экземпляр QualityGate
func NewQualityGate(logger *utils.ETLLogger) *QualityGate {
	return &QualityGate{
		logger: logger,
	}
}

// QualityResult содержит итог проверки качества одного цикла
type QualityResult struct {
	Orphans      map[string]int
	FactsDeleted int
	RowCounts    map[string]int
}

// Run выполняет проверку качества внутри транзакции цикла
// Ненулевое количество сирот — нарушение целостности, о котором
// сообщается, но которое не откатывает цикл: сироты могут отражать
// легитимные исключения по неразрешенным ссылкам
func (q *QualityGate) Run(tx *sql.Tx) (*QualityResult, error) {
	q.logger.Debug("Начало проверки качества данных")

	result := &QualityResult{
		Orphans:   make(map[string]int),
		RowCounts: make(map[string]int),
	}

	// 1. Удаляем факты с сигнальными значениями суммы: ровно 0.0 и -1.0
	// источник использует как пометку непригодной строки, это не
	// легитимные заказы с нулевой суммой
	deleteResult, err := tx.Exec(`
		DELETE FROM delivery_analytics.order_facts
		WHERE amount = 0.0 OR amount = -1.0
	`)
	if err != nil {
		return nil, fmt.Errorf("ошибка при удалении фактов с сигнальными суммами: %w", err)
	}

	deleted, err := deleteResult.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("ошибка при подсчете удаленных фактов: %w", err)
	}
	result.FactsDeleted = int(deleted)

	if result.FactsDeleted > 0 {
		q.logger.Info("Удалено фактов с сигнальными значениями суммы: %d", result.FactsDeleted)
	}

	// 2. Считаем сирот по каждому внешнему ключу фактовой таблицы
	for _, check := range orphanChecks {
		var count int
		if err := tx.QueryRow(check.query).Scan(&count); err != nil {
			return nil, fmt.Errorf("ошибка при проверке сирот по %s: %w", check.name, err)
		}

		result.Orphans[check.name] = count
		if count > 0 {
			q.logger.Warn("Нарушение целостности: %d фактов-сирот по ключу %s", count, check.name)
		}
	}

	// 3. Сводка количества строк по отношениям
	for _, relation := range countedRelations {
		var count int
		query := fmt.Sprintf("SELECT COUNT(*) FROM delivery_analytics.%s", relation)
		if err := tx.QueryRow(query).Scan(&count); err != nil {
			return nil, fmt.Errorf("ошибка при подсчете строк %s: %w", relation, err)
		}
		result.RowCounts[relation] = count
	}

	q.logger.Info("Проверка качества завершена. Строк: факты=%d, клиенты=%d, рестораны=%d, локации=%d, даты=%d",
		result.RowCounts["order_facts"], result.RowCounts["customer_dimension"],
		result.RowCounts["restaurant_dimension"], result.RowCounts["location_dimension"],
		result.RowCounts["date_dimension"])
	return result, nil
}
