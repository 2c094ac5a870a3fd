package load

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// CustomerLoader отвечает за слияние записей измерения клиентов
type CustomerLoader struct {
	logger *utils.ETLLogger
}

// NewCustomerLoader создает новый экземпляр CustomerLoader
func NewCustomerLoader(logger *utils.ETLLogger) *CustomerLoader {
	return &CustomerLoader{
		logger: logger,
	}
}

// Load сливает записи клиентов в хранилище
// Полное обновление атрибутов, а не частичное: если поле источника
// стало NULL, атрибут измерения тоже становится NULL
func (l *CustomerLoader) Load(tx *sql.Tx, customers []models.CustomerDimension) (int, error) {
	if len(customers) == 0 {
		l.logger.Debug("Нет данных клиентов для загрузки")
		return 0, nil
	}

	startTime := time.Now()
	l.logger.Info("Начало слияния измерения клиентов (всего: %d)", len(customers))

	stmt, err := tx.Prepare(`
		INSERT INTO delivery_analytics.customer_dimension
		(customer_nk, name, email, age, gender, marital_status, occupation,
		family_size, income_bracket, income_rank, education_level, education_rank, last_updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())
		ON DUPLICATE KEY UPDATE
		name = VALUES(name),
		email = VALUES(email),
		age = VALUES(age),
		gender = VALUES(gender),
		marital_status = VALUES(marital_status),
		occupation = VALUES(occupation),
		family_size = VALUES(family_size),
		income_bracket = VALUES(income_bracket),
		income_rank = VALUES(income_rank),
		education_level = VALUES(education_level),
		education_rank = VALUES(education_rank),
		last_updated = NOW()
	`)
	if err != nil {
		return 0, fmt.Errorf("ошибка при подготовке запроса измерения клиентов: %w", err)
	}
	defer stmt.Close()

	processed := 0

	for _, customer := range customers {
		_, err := stmt.Exec(
			customer.CustomerNK,
			customer.Name,
			customer.Email,
			customer.Age,
			customer.Gender,
			customer.MaritalStatus,
			customer.Occupation,
			customer.FamilySize,
			customer.IncomeBracket,
			customer.IncomeRank,
			customer.EducationLevel,
			customer.EducationRank,
		)
		if err != nil {
			return processed, fmt.Errorf("ошибка при слиянии клиента %s: %w", customer.CustomerNK, err)
		}

		processed++

		// Логируем прогресс каждые 100 клиентов
		if processed%100 == 0 {
			l.logger.Debug("Слито %d из %d клиентов...", processed, len(customers))
		}
	}

	l.logger.Info("Слияние измерения клиентов завершено. Записей: %d. Длительность: %v",
		processed, time.Since(startTime))
	return processed, nil
}
