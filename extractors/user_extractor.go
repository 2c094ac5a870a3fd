package extractors

import (
	"database/sql"
	"fmt"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// UserExtractor извлекает данные о пользователях из staging БД
type UserExtractor struct {
	db     *sql.DB
	logger *utils.ETLLogger
}

// NewUserExtractor создает новый экземпляр UserExtractor
func NewUserExtractor(db *sql.DB, logger *utils.ETLLogger) *UserExtractor {
	return &UserExtractor{
		db:     db,
		logger: logger,
	}
}

// ExtractUsers извлекает данные о пользователях
// Все поля читаются как текст: staging-область слабо типизирована,
// приведение типов — обязанность фазы Transform
func (e *UserExtractor) ExtractUsers() ([]models.UserStaging, error) {
	e.logger.Debug("Начало извлечения данных о пользователях")

	query := `
		SELECT user_id, name, email, age, gender, marital_status,
			occupation, monthly_income, educational_qualifications, family_size
		FROM users
		ORDER BY user_id
	`

	rows, err := e.db.Query(query)
	if err != nil {
		e.logger.Error("Ошибка при извлечении данных о пользователях: %v", err)
		return nil, fmt.Errorf("ошибка запроса пользователей: %w", err)
	}
	defer rows.Close()

	var users []models.UserStaging
	for rows.Next() {
		var raw [10]sql.NullString
		if err := rows.Scan(&raw[0], &raw[1], &raw[2], &raw[3], &raw[4],
			&raw[5], &raw[6], &raw[7], &raw[8], &raw[9]); err != nil {
			e.logger.Error("Ошибка при обработке данных пользователя: %v", err)
			return nil, fmt.Errorf("ошибка обработки данных пользователя: %w", err)
		}

		users = append(users, models.UserStaging{
			UserID:        raw[0].String,
			Name:          raw[1].String,
			Email:         raw[2].String,
			Age:           raw[3].String,
			Gender:        raw[4].String,
			MaritalStatus: raw[5].String,
			Occupation:    raw[6].String,
			MonthlyIncome: raw[7].String,
			Education:     raw[8].String,
			FamilySize:    raw[9].String,
		})
	}

	// Проверяем ошибки после итерации по результатам
	if err = rows.Err(); err != nil {
		e.logger.Error("Ошибка после итерации по пользователям: %v", err)
		return nil, fmt.Errorf("ошибка после итерации по пользователям: %w", err)
	}

	e.logger.Debug("Извлечено %d пользователей", len(users))
	return users, nil
}
