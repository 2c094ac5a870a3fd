package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

func TestProcessLocationDimension(t *testing.T) {
	processor := NewLocationDimensionProcessor(utils.NewSilentLogger())

	locations := []models.LocationStaging{
		{Country: "India", State: " Karnataka ", City: " Bangalore "},
		// Дубликат по естественному ключу схлопывается
		{Country: "India", State: "Karnataka", City: "Bangalore"},
		{Country: "India", State: "Maharashtra", City: "Pune"},
	}

	transformed, excluded := processor.ProcessLocationDimension(locations)
	require.Len(t, transformed, 2)
	assert.Empty(t, excluded)

	assert.Equal(t, "India", transformed[0].Country)
	assert.Equal(t, "Karnataka", transformed[0].State)
	assert.Equal(t, "Bangalore", transformed[0].City)
	assert.Equal(t, transformed[0].LocationNK,
		BuildLocationNaturalKey("India", "Karnataka", "Bangalore"))
}

func TestProcessLocationDimensionExcludesEmptyCity(t *testing.T) {
	processor := NewLocationDimensionProcessor(utils.NewSilentLogger())

	locations := []models.LocationStaging{
		{Country: "India", State: "Karnataka", City: "  "},
	}

	transformed, excluded := processor.ProcessLocationDimension(locations)
	assert.Empty(t, transformed)
	require.Len(t, excluded, 1)
	assert.Equal(t, models.ReasonMalformedInput, excluded[0].Reason)
}
