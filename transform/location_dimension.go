package transform

import (
	"strings"
	"time"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// LocationDimensionProcessor отвечает за преобразование данных локаций
type LocationDimensionProcessor struct {
	logger *utils.ETLLogger
}

// NewLocationDimensionProcessor создает новый экземпляр LocationDimensionProcessor
func NewLocationDimensionProcessor(logger *utils.ETLLogger) *LocationDimensionProcessor {
	return &LocationDimensionProcessor{
		logger: logger,
	}
}

// ProcessLocationDimension преобразует staging-записи локаций в записи
// измерения. Город обязателен: без него запись бесполезна для
// гео-сопоставления и исключается. Дубликаты по естественному ключу
// схлопываются, чтобы в одном батче не было конкурирующих вставок
func (p *LocationDimensionProcessor) ProcessLocationDimension(locations []models.LocationStaging) ([]models.LocationDimension, []models.ExcludedRow) {
	p.logger.Debug("Обработка измерения локаций...")

	if len(locations) == 0 {
		p.logger.Debug("Нет данных локаций для обработки")
		return []models.LocationDimension{}, nil
	}

	transformed := make([]models.LocationDimension, 0, len(locations))
	seen := make(map[string]bool)
	var excluded []models.ExcludedRow

	for _, location := range locations {
		city := strings.TrimSpace(location.City)
		naturalKey := BuildLocationNaturalKey(location.Country, location.State, location.City)

		if city == "" {
			excluded = append(excluded, models.ExcludedRow{
				NaturalKey: naturalKey,
				Reason:     models.ReasonMalformedInput,
				Detail:     "пустой город локации",
			})
			continue
		}

		if seen[naturalKey] {
			continue
		}
		seen[naturalKey] = true

		transformed = append(transformed, models.LocationDimension{
			LocationNK:  naturalKey,
			Country:     strings.TrimSpace(location.Country),
			State:       strings.TrimSpace(location.State),
			City:        city,
			LastUpdated: time.Now(),
		})
	}

	p.logger.Info("Обработано измерение локаций. Трансформировано записей: %d, исключено: %d",
		len(transformed), len(excluded))
	return transformed, excluded
}
