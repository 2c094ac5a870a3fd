package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyIncome(t *testing.T) {
	cases := []struct {
		raw     string
		bracket string
		rank    int
	}{
		{"No Income", IncomeNone, 0},
		{"no income", IncomeNone, 0},
		{"Below Rs.10000", IncomeBelow10k, 1},
		{"BELOW 10000", IncomeBelow10k, 1},
		{"10001 to 25000", Income10to25k, 2},
		{"10k-25k", Income10to25k, 2},
		{"25001 to 50000", Income25to50k, 3},
		{"25k-50k", Income25to50k, 3},
		{"More than 50000", IncomeAbove50k, 4},
		{"50k+", IncomeAbove50k, 4},
		{"", IncomeUnknown, 9},
		{"что-то невнятное", IncomeUnknown, 9},
	}

	for _, tc := range cases {
		bracket, rank := ClassifyIncome(tc.raw)
		assert.Equal(t, tc.bracket, bracket, "значение %q", tc.raw)
		assert.Equal(t, tc.rank, rank, "значение %q", tc.raw)
	}
}

func TestClassifyIncomeTotality(t *testing.T) {
	// Любой текст получает ровно одну категорию
	known := map[string]bool{
		IncomeNone: true, IncomeBelow10k: true, Income10to25k: true,
		Income25to50k: true, IncomeAbove50k: true, IncomeUnknown: true,
	}

	for _, raw := range []string{"", " ", "!!!", "12345", "доход", "Rs. ???", "NaN", "-1"} {
		bracket, _ := ClassifyIncome(raw)
		assert.True(t, known[bracket], "значение %q отнесено к неизвестной категории %q", raw, bracket)
	}
}

func TestClassifyEducation(t *testing.T) {
	cases := []struct {
		raw   string
		level string
		rank  int
	}{
		{"Graduate", EducationHigher, 2},
		{"Post Graduate", EducationHigher, 2},
		{"Ph.D", EducationDoctoral, 3},
		{"PhD", EducationDoctoral, 3},
		{"School", EducationBasic, 1},
		{"Uneducated", EducationBasic, 1},
		{"", EducationUnknown, 0},
		{"неизвестно", EducationUnknown, 0},
	}

	for _, tc := range cases {
		level, rank := ClassifyEducation(tc.raw)
		assert.Equal(t, tc.level, level, "значение %q", tc.raw)
		assert.Equal(t, tc.rank, rank, "значение %q", tc.raw)
	}
}

func TestNormalizeCurrency(t *testing.T) {
	// Сценарий из постановки: 500 USD при курсе 87 дают 43500 INR
	amount, currency := NormalizeCurrency(500, "USD", 87, "INR")
	assert.Equal(t, 43500.0, amount)
	assert.Equal(t, "INR", currency)

	// Регистр кода валюты не имеет значения
	amount, currency = NormalizeCurrency(10, "usd", 87, "INR")
	assert.Equal(t, 870.0, amount)
	assert.Equal(t, "INR", currency)

	// Остальные валюты проходят без изменений
	amount, currency = NormalizeCurrency(500, "INR", 87, "INR")
	assert.Equal(t, 500.0, amount)
	assert.Equal(t, "INR", currency)

	amount, currency = NormalizeCurrency(500, " EUR ", 87, "INR")
	assert.Equal(t, 500.0, amount)
	assert.Equal(t, "EUR", currency)
}
