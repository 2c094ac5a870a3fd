package transform

import (
	"strings"
	"unicode"
)

// Категории месячного дохода с фиксированным порядком сортировки
const (
	IncomeNone     = "None"
	IncomeBelow10k = "Below 10k"
	Income10to25k  = "10k-25k"
	Income25to50k  = "25k-50k"
	IncomeAbove50k = "50k+"
	IncomeUnknown  = "Unknown"
)

// Уровни образования с фиксированным порядком сортировки
const (
	EducationBasic    = "Basic Education"
	EducationHigher   = "Higher Education"
	EducationDoctoral = "Doctoral"
	EducationUnknown  = "Unknown"
)

// normalizeRawLabel приводит исходный текст к нижнему регистру и убирает
// пробелы и знаки препинания, чтобы классификация не зависела от
// оформления значения в источнике
func normalizeRawLabel(raw string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(raw) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ClassifyIncome относит произвольный текст дохода ровно к одной категории
// и возвращает ранг для стабильной сортировки ниже по потоку.
// Функция тотальна: любое значение получает категорию, в крайнем случае Unknown
func ClassifyIncome(raw string) (string, int) {
	normalized := normalizeRawLabel(raw)

	switch {
	case strings.Contains(normalized, "noincome"):
		return IncomeNone, 0
	case strings.Contains(normalized, "below"):
		return IncomeBelow10k, 1
	case strings.Contains(normalized, "10001"), strings.Contains(normalized, "10to25"), strings.Contains(normalized, "10k"):
		return Income10to25k, 2
	case strings.Contains(normalized, "25001"), strings.Contains(normalized, "25to50"), strings.Contains(normalized, "25k"):
		return Income25to50k, 3
	case strings.Contains(normalized, "morethan"), strings.Contains(normalized, "50000"), strings.Contains(normalized, "50k"):
		return IncomeAbove50k, 4
	default:
		return IncomeUnknown, 9
	}
}

// ClassifyEducation относит произвольный текст образования ровно к одному
// из трех упорядоченных уровней; ранги 1, 2, 3, для Unknown — 0.
// Проверка PhD идет первой, поскольку "Ph.D" нередко записан вместе
// со словом graduate
func ClassifyEducation(raw string) (string, int) {
	normalized := normalizeRawLabel(raw)

	switch {
	case strings.Contains(normalized, "phd"), strings.Contains(normalized, "doctor"):
		return EducationDoctoral, 3
	case strings.Contains(normalized, "uneducated"), strings.Contains(normalized, "school"):
		return EducationBasic, 1
	case strings.Contains(normalized, "graduate"):
		// Покрывает graduate и post graduate
		return EducationHigher, 2
	default:
		return EducationUnknown, 0
	}
}

// NormalizeCurrency приводит суммы в USD к целевой валюте по фиксированному
// курсу; остальные валюты проходят без изменений. Курс и код целевой
// валюты — внешние параметры конфигурации
func NormalizeCurrency(amount float64, currency string, rate float64, target string) (float64, string) {
	trimmed := strings.TrimSpace(currency)
	if strings.EqualFold(trimmed, "USD") {
		return amount * rate, target
	}
	return amount, trimmed
}
