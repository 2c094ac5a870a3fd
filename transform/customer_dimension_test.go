package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

func TestProcessCustomerDimension(t *testing.T) {
	processor := NewCustomerDimensionProcessor(utils.NewSilentLogger())

	users := []models.UserStaging{
		{
			UserID:        "7",
			Name:          " Ivan ",
			Email:         "ivan@example.com",
			Age:           "30",
			Gender:        "Male",
			MonthlyIncome: "More than 50000",
			Education:     "Post Graduate",
			FamilySize:    "4",
		},
	}

	customers, excluded := processor.ProcessCustomerDimension(users)
	require.Len(t, customers, 1)
	assert.Empty(t, excluded)

	customer := customers[0]
	assert.Equal(t, "7", customer.CustomerNK)
	assert.Equal(t, "Ivan", customer.Name)
	require.True(t, customer.Age.Valid)
	assert.EqualValues(t, 30, customer.Age.Int64)
	require.True(t, customer.FamilySize.Valid)
	assert.EqualValues(t, 4, customer.FamilySize.Int64)

	// Производные атрибуты пересчитаны обогащением
	assert.Equal(t, IncomeAbove50k, customer.IncomeBracket)
	assert.Equal(t, 4, customer.IncomeRank)
	assert.Equal(t, EducationHigher, customer.EducationLevel)
	assert.Equal(t, 2, customer.EducationRank)
}

func TestProcessCustomerDimensionNullFields(t *testing.T) {
	processor := NewCustomerDimensionProcessor(utils.NewSilentLogger())

	// Отсутствующие числовые поля становятся NULL, а не нулями
	users := []models.UserStaging{
		{UserID: "8", Age: "", FamilySize: "N/A", MonthlyIncome: "", Education: ""},
	}

	customers, excluded := processor.ProcessCustomerDimension(users)
	require.Len(t, customers, 1)
	assert.Empty(t, excluded)

	assert.False(t, customers[0].Age.Valid)
	assert.False(t, customers[0].FamilySize.Valid)
	assert.Equal(t, IncomeUnknown, customers[0].IncomeBracket)
	assert.Equal(t, EducationUnknown, customers[0].EducationLevel)
}

func TestProcessCustomerDimensionMalformed(t *testing.T) {
	processor := NewCustomerDimensionProcessor(utils.NewSilentLogger())

	users := []models.UserStaging{
		{UserID: "9", Age: "тридцать"},
		{UserID: "", Age: "25"},
		{UserID: "10", Age: "25"},
	}

	customers, excluded := processor.ProcessCustomerDimension(users)
	require.Len(t, customers, 1)
	assert.Equal(t, "10", customers[0].CustomerNK)

	// Испорченные строки исключены с причиной, цикл не прерван
	require.Len(t, excluded, 2)
	for _, row := range excluded {
		assert.Equal(t, models.ReasonMalformedInput, row.Reason)
	}
}
