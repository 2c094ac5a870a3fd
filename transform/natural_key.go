package transform

import (
	"strings"
	"time"

	"github.com/LilVoxy/coursework_dwh/models"
)

// Разделитель компонентов естественного ключа
const naturalKeyDelimiter = "|"

// Каноническое представление временной метки заказа
const canonicalTimestampLayout = "2006-01-02 15:04:05"

// Поддерживаемые форматы временных меток в staging-области
// Порядок важен: первым пробуется канонический формат
var orderTimestampLayouts = []string{
	canonicalTimestampLayout,
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
	"02-01-2006 15:04:05",
	"02-01-2006 15:04",
	"02/01/2006 15:04",
}

// NormalizeOrderTimestamp приводит временную метку заказа к каноническому
// виду YYYY-MM-DD HH:MM:SS. Нераспознанный формат — типизированная ошибка
// MalformedTimestampError: строка исключается из слияния фактов, а не
// обнуляется молча
func NormalizeOrderTimestamp(raw string) (time.Time, string, error) {
	trimmed := strings.TrimSpace(raw)

	for _, layout := range orderTimestampLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, t.Format(canonicalTimestampLayout), nil
		}
	}

	return time.Time{}, "", &models.MalformedTimestampError{Value: raw}
}

// BuildOrderNaturalKey собирает естественный ключ заказа из шести
// бизнес-полей: идентификаторы клиента и ресторана, нормализованная
// временная метка, код валюты и текстовые формы количества и суммы.
// Две staging-строки с одинаковым бизнес-содержимым дают одинаковый
// ключ независимо от запуска и порядка батчей — на этом держится
// идемпотентность всех последующих слияний
func BuildOrderNaturalKey(customerID, restaurantID, normalizedTS, currency, quantity, amount string) string {
	return strings.Join([]string{
		strings.TrimSpace(customerID),
		strings.TrimSpace(restaurantID),
		normalizedTS,
		strings.TrimSpace(currency),
		strings.TrimSpace(quantity),
		strings.TrimSpace(amount),
	}, naturalKeyDelimiter)
}

// BuildLocationNaturalKey собирает естественный ключ локации
// из страны, региона и города
func BuildLocationNaturalKey(country, state, city string) string {
	return strings.Join([]string{
		strings.TrimSpace(country),
		strings.TrimSpace(state),
		strings.TrimSpace(city),
	}, naturalKeyDelimiter)
}
