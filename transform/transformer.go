package transform

import (
	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// Transformer координирует фазу Transform: строит записи измерений,
// календарь и строки фактов из извлеченных staging-данных.
// Промежуточные результаты (календарные записи, естественные ключи)
// передаются между компонентами явными значениями, без общего
// изменяемого состояния
type Transformer struct {
	logger *utils.ETLLogger

	customerProcessor   *CustomerDimensionProcessor
	restaurantProcessor *RestaurantDimensionProcessor
	locationProcessor   *LocationDimensionProcessor
	dateProcessor       *DateDimensionProcessor
	factProcessor       *OrderFactProcessor
}

// NewTransformer создает новый экземпляр Transformer
func NewTransformer(logger *utils.ETLLogger, currencyRate float64, targetCurrency string) *Transformer {
	return &Transformer{
		logger:              logger,
		customerProcessor:   NewCustomerDimensionProcessor(logger),
		restaurantProcessor: NewRestaurantDimensionProcessor(logger),
		locationProcessor:   NewLocationDimensionProcessor(logger),
		dateProcessor:       NewDateDimensionProcessor(logger),
		factProcessor:       NewOrderFactProcessor(logger, currencyRate, targetCurrency),
	}
}

// Transform выполняет фазу трансформации для одного цикла слияния
// Построчные проблемы не прерывают цикл: испорченные строки исключаются
// и накапливаются в TransformedData.Excluded для итогового отчёта
func (t *Transformer) Transform(extracted *models.ExtractedData) (*models.TransformedData, error) {
	t.logger.Info("Начало фазы Transform (Преобразование данных)")

	transformed := &models.TransformedData{}

	// Измерения
	var excluded []models.ExcludedRow
	transformed.Customers, excluded = t.customerProcessor.ProcessCustomerDimension(extracted.Users)
	transformed.Excluded = append(transformed.Excluded, excluded...)

	transformed.Restaurants, excluded = t.restaurantProcessor.ProcessRestaurantDimension(extracted.Restaurants)
	transformed.Excluded = append(transformed.Excluded, excluded...)

	transformed.Locations, excluded = t.locationProcessor.ProcessLocationDimension(extracted.Locations)
	transformed.Excluded = append(transformed.Excluded, excluded...)

	// Факты и календарь: календарное измерение строится по датам,
	// оставшимся после нормализации временных меток
	facts, orderTimes, excludedFacts := t.factProcessor.ProcessOrderFacts(extracted.Orders)
	transformed.Facts = facts
	transformed.Excluded = append(transformed.Excluded, excludedFacts...)

	transformed.Dates = t.dateProcessor.ProcessDateDimension(orderTimes)

	t.logger.Info("Фаза Transform завершена. Измерений: %d клиентов, %d ресторанов, %d локаций, %d дат; фактов: %d; исключено строк: %d",
		len(transformed.Customers), len(transformed.Restaurants), len(transformed.Locations),
		len(transformed.Dates), len(transformed.Facts), len(transformed.Excluded))

	return transformed, nil
}
