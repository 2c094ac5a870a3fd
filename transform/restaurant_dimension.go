package transform

import (
	"strings"
	"time"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// RestaurantDimensionProcessor отвечает за преобразование данных ресторанов
type RestaurantDimensionProcessor struct {
	logger *utils.ETLLogger
}

// NewRestaurantDimensionProcessor создает новый экземпляр RestaurantDimensionProcessor
func NewRestaurantDimensionProcessor(logger *utils.ETLLogger) *RestaurantDimensionProcessor {
	return &RestaurantDimensionProcessor{
		logger: logger,
	}
}

// ProcessRestaurantDimension преобразует staging-записи ресторанов в записи
// измерения. Рейтинг приводится к числу, заглушки источника ("NEW", "-")
// становятся NULL. Ключ локации здесь не назначается: это делает
// гео-сопоставление в фазе Load, и только для записей без ключа
func (p *RestaurantDimensionProcessor) ProcessRestaurantDimension(restaurants []models.RestaurantStaging) ([]models.RestaurantDimension, []models.ExcludedRow) {
	p.logger.Debug("Обработка измерения ресторанов...")

	if len(restaurants) == 0 {
		p.logger.Debug("Нет данных ресторанов для обработки")
		return []models.RestaurantDimension{}, nil
	}

	transformed := make([]models.RestaurantDimension, 0, len(restaurants))
	var excluded []models.ExcludedRow

	for _, restaurant := range restaurants {
		naturalKey := strings.TrimSpace(restaurant.RestaurantID)
		if naturalKey == "" {
			excluded = append(excluded, models.ExcludedRow{
				NaturalKey: naturalKey,
				Reason:     models.ReasonMalformedInput,
				Detail:     "пустой идентификатор ресторана",
			})
			continue
		}

		rating, err := coerceNullFloat("restaurants", "rating", restaurant.Rating)
		if err != nil {
			p.logger.Error("Ошибка приведения рейтинга ресторана %s: %v", naturalKey, err)
			excluded = append(excluded, models.ExcludedRow{
				NaturalKey: naturalKey,
				Reason:     models.ReasonMalformedInput,
				Detail:     err.Error(),
			})
			continue
		}

		transformed = append(transformed, models.RestaurantDimension{
			RestaurantNK: naturalKey,
			Name:         strings.TrimSpace(restaurant.Name),
			City:         strings.TrimSpace(restaurant.City),
			Rating:       rating,
			Cuisines:     strings.TrimSpace(restaurant.Cuisines),
			LastUpdated:  time.Now(),
		})
	}

	p.logger.Info("Обработано измерение ресторанов. Трансформировано записей: %d, исключено: %d",
		len(transformed), len(excluded))
	return transformed, excluded
}
