package transform

import (
	"strings"
	"time"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// OrderFactProcessor отвечает за преобразование staging-заказов
// в строки фактов
type OrderFactProcessor struct {
	logger *utils.ETLLogger

	// Параметры нормализации валюты
	currencyRate   float64
	targetCurrency string
}

// NewOrderFactProcessor создает новый экземпляр OrderFactProcessor
func NewOrderFactProcessor(logger *utils.ETLLogger, currencyRate float64, targetCurrency string) *OrderFactProcessor {
	return &OrderFactProcessor{
		logger:         logger,
		currencyRate:   currencyRate,
		targetCurrency: targetCurrency,
	}
}

// ProcessOrderFacts строит строки фактов по staging-заказам
// Для каждого заказа: нормализация временной метки, сборка естественного
// ключа из исходных текстовых форм шести бизнес-полей, приведение мер
// и нормализация валюты. Ключ собирается до нормализации валюты, чтобы
// повторная подача того же заказа давала тот же ключ
// Вторым результатом возвращаются времена заказов для календарного измерения
func (p *OrderFactProcessor) ProcessOrderFacts(orders []models.OrderStaging) ([]models.OrderFactRow, []time.Time, []models.ExcludedRow) {
	p.logger.Debug("Обработка фактов заказов...")

	facts := make([]models.OrderFactRow, 0, len(orders))
	orderTimes := make([]time.Time, 0, len(orders))
	var excluded []models.ExcludedRow

	for _, order := range orders {
		orderTime, normalizedTS, err := NormalizeOrderTimestamp(order.OrderDate)
		if err != nil {
			p.logger.Error("Ошибка нормализации временной метки заказа (клиент %s, ресторан %s): %v",
				order.UserID, order.RestaurantID, err)
			excluded = append(excluded, models.ExcludedRow{
				NaturalKey: BuildOrderNaturalKey(order.UserID, order.RestaurantID,
					strings.TrimSpace(order.OrderDate), order.Currency, order.Quantity, order.Amount),
				Reason: models.ReasonMalformedTimestamp,
				Detail: err.Error(),
			})
			continue
		}

		naturalKey := BuildOrderNaturalKey(order.UserID, order.RestaurantID,
			normalizedTS, order.Currency, order.Quantity, order.Amount)

		quantity, err := coerceInt("orders", "sales_qty", order.Quantity)
		if err != nil {
			p.logger.Error("Ошибка приведения количества заказа %s: %v", naturalKey, err)
			excluded = append(excluded, models.ExcludedRow{
				NaturalKey: naturalKey,
				Reason:     models.ReasonMalformedInput,
				Detail:     err.Error(),
			})
			continue
		}

		amount, err := coerceFloat("orders", "sales_amount", order.Amount)
		if err != nil {
			p.logger.Error("Ошибка приведения суммы заказа %s: %v", naturalKey, err)
			excluded = append(excluded, models.ExcludedRow{
				NaturalKey: naturalKey,
				Reason:     models.ReasonMalformedInput,
				Detail:     err.Error(),
			})
			continue
		}

		// Нормализация валюты: суммы в USD пересчитываются в целевую валюту.
		// Сигнальные значения суммы (0.0 и -1.0) — пометки непригодной
		// строки, а не деньги: их не пересчитываем, иначе проверка
		// качества не найдёт такой факт по точному значению
		currency := strings.TrimSpace(order.Currency)
		if amount != 0.0 && amount != -1.0 {
			amount, currency = NormalizeCurrency(amount, order.Currency, p.currencyRate, p.targetCurrency)
		}

		facts = append(facts, models.OrderFactRow{
			NaturalKey:   naturalKey,
			CustomerNK:   strings.TrimSpace(order.UserID),
			RestaurantNK: strings.TrimSpace(order.RestaurantID),
			DateKey:      DateKey(orderTime),
			Quantity:     quantity,
			Amount:       amount,
			Currency:     currency,
		})
		orderTimes = append(orderTimes, orderTime)
	}

	p.logger.Info("Обработаны факты заказов. Трансформировано строк: %d, исключено: %d",
		len(facts), len(excluded))
	return facts, orderTimes, excluded
}
