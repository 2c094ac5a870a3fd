package transform

import (
	"strings"
	"time"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// CustomerDimensionProcessor отвечает за преобразование данных клиентов
type CustomerDimensionProcessor struct {
	logger *utils.ETLLogger
}

// NewCustomerDimensionProcessor создает новый экземпляр CustomerDimensionProcessor
func NewCustomerDimensionProcessor(logger *utils.ETLLogger) *CustomerDimensionProcessor {
	return &CustomerDimensionProcessor{
		logger: logger,
	}
}

// ProcessCustomerDimension преобразует staging-записи пользователей в записи
// измерения клиентов. Производные атрибуты (категория дохода, уровень
// образования) пересчитываются для каждой обновляемой записи: они никогда
// не задаются вручную. Строки с неприводимыми значениями исключаются
// и попадают в отчёт цикла
func (p *CustomerDimensionProcessor) ProcessCustomerDimension(users []models.UserStaging) ([]models.CustomerDimension, []models.ExcludedRow) {
	p.logger.Debug("Обработка измерения клиентов...")

	if len(users) == 0 {
		p.logger.Debug("Нет данных клиентов для обработки")
		return []models.CustomerDimension{}, nil
	}

	transformed := make([]models.CustomerDimension, 0, len(users))
	var excluded []models.ExcludedRow

	for _, user := range users {
		naturalKey := strings.TrimSpace(user.UserID)
		if naturalKey == "" {
			excluded = append(excluded, models.ExcludedRow{
				NaturalKey: naturalKey,
				Reason:     models.ReasonMalformedInput,
				Detail:     "пустой идентификатор клиента",
			})
			continue
		}

		age, err := coerceNullInt("users", "age", user.Age)
		if err != nil {
			p.logger.Error("Ошибка приведения возраста клиента %s: %v", naturalKey, err)
			excluded = append(excluded, models.ExcludedRow{
				NaturalKey: naturalKey,
				Reason:     models.ReasonMalformedInput,
				Detail:     err.Error(),
			})
			continue
		}

		familySize, err := coerceNullInt("users", "family_size", user.FamilySize)
		if err != nil {
			p.logger.Error("Ошибка приведения размера семьи клиента %s: %v", naturalKey, err)
			excluded = append(excluded, models.ExcludedRow{
				NaturalKey: naturalKey,
				Reason:     models.ReasonMalformedInput,
				Detail:     err.Error(),
			})
			continue
		}

		// Обогащение: категория дохода и уровень образования
		incomeBracket, incomeRank := ClassifyIncome(user.MonthlyIncome)
		educationLevel, educationRank := ClassifyEducation(user.Education)

		transformed = append(transformed, models.CustomerDimension{
			CustomerNK:     naturalKey,
			Name:           strings.TrimSpace(user.Name),
			Email:          strings.TrimSpace(user.Email),
			Age:            age,
			Gender:         strings.TrimSpace(user.Gender),
			MaritalStatus:  strings.TrimSpace(user.MaritalStatus),
			Occupation:     strings.TrimSpace(user.Occupation),
			FamilySize:     familySize,
			IncomeBracket:  incomeBracket,
			IncomeRank:     incomeRank,
			EducationLevel: educationLevel,
			EducationRank:  educationRank,
			LastUpdated:    time.Now(),
		})
	}

	p.logger.Info("Обработано измерение клиентов. Трансформировано записей: %d, исключено: %d",
		len(transformed), len(excluded))
	return transformed, excluded
}
