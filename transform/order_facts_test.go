package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

func TestProcessOrderFacts(t *testing.T) {
	processor := NewOrderFactProcessor(utils.NewSilentLogger(), 87, "INR")

	orders := []models.OrderStaging{
		{ID: 1, UserID: "7", RestaurantID: "3", OrderDate: "2019-11-02T10:00:00",
			Quantity: "2", Amount: "500", Currency: "USD"},
	}

	facts, orderTimes, excluded := processor.ProcessOrderFacts(orders)
	require.Len(t, facts, 1)
	require.Len(t, orderTimes, 1)
	assert.Empty(t, excluded)

	fact := facts[0]
	// Ключ собран из исходных текстовых форм до нормализации валюты
	assert.Equal(t, "7|3|2019-11-02 10:00:00|USD|2|500", fact.NaturalKey)
	assert.Equal(t, "7", fact.CustomerNK)
	assert.Equal(t, "3", fact.RestaurantNK)
	assert.Equal(t, 20191102, fact.DateKey)
	assert.Equal(t, 2, fact.Quantity)

	// Нормализация валюты: 500 USD × 87 = 43500 INR
	assert.Equal(t, 43500.0, fact.Amount)
	assert.Equal(t, "INR", fact.Currency)
}

func TestProcessOrderFactsIdempotentKey(t *testing.T) {
	processor := NewOrderFactProcessor(utils.NewSilentLogger(), 87, "INR")

	// Один и тот же заказ в двух батчах дает один и тот же естественный ключ
	order := models.OrderStaging{UserID: "7", RestaurantID: "3",
		OrderDate: "2019-11-02 10:00:00", Quantity: "2", Amount: "500", Currency: "INR"}

	first, _, _ := processor.ProcessOrderFacts([]models.OrderStaging{order})
	second, _, _ := processor.ProcessOrderFacts([]models.OrderStaging{order})
	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].NaturalKey, second[0].NaturalKey)
}

func TestProcessOrderFactsAmendedAmountDistinctKey(t *testing.T) {
	processor := NewOrderFactProcessor(utils.NewSilentLogger(), 87, "INR")

	// Текстовая форма суммы — компонент естественного ключа: заказ
	// с исправленной суммой даёт новую строку факта, а не перезапись
	orders := []models.OrderStaging{
		{UserID: "7", RestaurantID: "3", OrderDate: "2019-11-02 10:00:00",
			Quantity: "2", Amount: "500", Currency: "INR"},
		{UserID: "7", RestaurantID: "3", OrderDate: "2019-11-02 10:00:00",
			Quantity: "2", Amount: "600", Currency: "INR"},
	}

	facts, _, excluded := processor.ProcessOrderFacts(orders)
	require.Len(t, facts, 2)
	assert.Empty(t, excluded)
	assert.NotEqual(t, facts[0].NaturalKey, facts[1].NaturalKey)
}

func TestProcessOrderFactsSentinelAmountNotConverted(t *testing.T) {
	processor := NewOrderFactProcessor(utils.NewSilentLogger(), 87, "INR")

	// Сигнальные суммы не проходят пересчёт валюты: -1.0 в USD должна
	// дойти до хранилища как -1.0, чтобы проверка качества её удалила
	orders := []models.OrderStaging{
		{UserID: "7", RestaurantID: "3", OrderDate: "2019-11-02 10:00:00",
			Quantity: "1", Amount: "-1.0", Currency: "USD"},
		{UserID: "8", RestaurantID: "3", OrderDate: "2019-11-02 10:00:00",
			Quantity: "1", Amount: "0", Currency: "USD"},
	}

	facts, _, excluded := processor.ProcessOrderFacts(orders)
	require.Len(t, facts, 2)
	assert.Empty(t, excluded)

	assert.Equal(t, -1.0, facts[0].Amount)
	assert.Equal(t, "USD", facts[0].Currency)
	assert.Equal(t, 0.0, facts[1].Amount)
	assert.Equal(t, "USD", facts[1].Currency)
}

func TestProcessOrderFactsMalformedTimestamp(t *testing.T) {
	processor := NewOrderFactProcessor(utils.NewSilentLogger(), 87, "INR")

	orders := []models.OrderStaging{
		{UserID: "7", RestaurantID: "3", OrderDate: "не дата",
			Quantity: "2", Amount: "500", Currency: "INR"},
		{UserID: "8", RestaurantID: "4", OrderDate: "2019-11-03 12:00:00",
			Quantity: "1", Amount: "250", Currency: "INR"},
	}

	facts, orderTimes, excluded := processor.ProcessOrderFacts(orders)

	// Испорченная метка исключает строку, но не прерывает обработку батча
	require.Len(t, facts, 1)
	assert.Equal(t, "8", facts[0].CustomerNK)
	assert.Len(t, orderTimes, 1)

	require.Len(t, excluded, 1)
	assert.Equal(t, models.ReasonMalformedTimestamp, excluded[0].Reason)
}

func TestProcessOrderFactsMalformedMeasures(t *testing.T) {
	processor := NewOrderFactProcessor(utils.NewSilentLogger(), 87, "INR")

	orders := []models.OrderStaging{
		{UserID: "7", RestaurantID: "3", OrderDate: "2019-11-02 10:00:00",
			Quantity: "два", Amount: "500", Currency: "INR"},
		{UserID: "7", RestaurantID: "3", OrderDate: "2019-11-02 10:00:00",
			Quantity: "2", Amount: "пятьсот", Currency: "INR"},
	}

	facts, _, excluded := processor.ProcessOrderFacts(orders)
	assert.Empty(t, facts)
	require.Len(t, excluded, 2)
	for _, row := range excluded {
		assert.Equal(t, models.ReasonMalformedInput, row.Reason)
	}
}
