package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

func TestProcessRestaurantDimension(t *testing.T) {
	processor := NewRestaurantDimensionProcessor(utils.NewSilentLogger())

	restaurants := []models.RestaurantStaging{
		{RestaurantID: " 3 ", Name: "Empire", City: "Bangalore, Koramangala",
			Rating: "4.1", Cuisines: "North Indian"},
		// Заглушки рейтинга источника становятся NULL
		{RestaurantID: "4", Name: "Новое кафе", City: "Pune", Rating: "NEW"},
		{RestaurantID: "5", Name: "Без рейтинга", City: "Delhi", Rating: "-"},
	}

	transformed, excluded := processor.ProcessRestaurantDimension(restaurants)
	require.Len(t, transformed, 3)
	assert.Empty(t, excluded)

	assert.Equal(t, "3", transformed[0].RestaurantNK)
	require.True(t, transformed[0].Rating.Valid)
	assert.Equal(t, 4.1, transformed[0].Rating.Float64)

	assert.False(t, transformed[1].Rating.Valid)
	assert.False(t, transformed[2].Rating.Valid)

	// Ключ локации не назначается на этапе трансформации
	for _, r := range transformed {
		assert.False(t, r.LocationKey.Valid)
	}
}

func TestProcessRestaurantDimensionExcludesMalformed(t *testing.T) {
	processor := NewRestaurantDimensionProcessor(utils.NewSilentLogger())

	restaurants := []models.RestaurantStaging{
		{RestaurantID: "", Name: "Без идентификатора"},
		{RestaurantID: "6", Name: "Плохой рейтинг", Rating: "отлично"},
	}

	transformed, excluded := processor.ProcessRestaurantDimension(restaurants)
	assert.Empty(t, transformed)
	require.Len(t, excluded, 2)
	for _, row := range excluded {
		assert.Equal(t, models.ReasonMalformedInput, row.Reason)
	}
}
