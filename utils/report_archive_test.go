package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LilVoxy/coursework_dwh/models"
)

func TestReportArchiveSaveLoad(t *testing.T) {
	archive, err := NewReportArchive(t.TempDir())
	require.NoError(t, err)

	report := &models.CycleReport{
		RunID:     "a1b2c3",
		StartTime: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		Status:    "success",
		Merged:    models.MergeCounters{Facts: 42},
		Excluded: []models.ExcludedRow{
			{NaturalKey: "7|3|x", Reason: models.ReasonMalformedTimestamp, Detail: "не дата"},
		},
		LastProcessedOrderID: 257,
	}

	path, err := archive.Save(report)
	require.NoError(t, err)
	assert.Equal(t, "report_a1b2c3.json.snappy", filepath.Base(path))

	loaded, err := archive.Load("a1b2c3")
	require.NoError(t, err)
	assert.Equal(t, report.RunID, loaded.RunID)
	assert.Equal(t, 42, loaded.Merged.Facts)
	assert.Equal(t, 257, loaded.LastProcessedOrderID)
	require.Len(t, loaded.Excluded, 1)
	assert.Equal(t, models.ReasonMalformedTimestamp, loaded.Excluded[0].Reason)
}

func TestReportArchiveLoadLatest(t *testing.T) {
	dir := t.TempDir()
	archive, err := NewReportArchive(dir)
	require.NoError(t, err)

	first, err := archive.Save(&models.CycleReport{RunID: "old", Status: "success"})
	require.NoError(t, err)
	_, err = archive.Save(&models.CycleReport{RunID: "new", Status: "success"})
	require.NoError(t, err)

	// Разводим времена изменения: файловые системы могут давать
	// одинаковые метки при быстрой записи подряд
	past := time.Now().Add(-time.Minute)
	require.NoError(t, os.Chtimes(first, past, past))

	latest, err := archive.LoadLatest()
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "new", latest.RunID)
}

func TestReportArchiveLoadLatestEmpty(t *testing.T) {
	archive, err := NewReportArchive(t.TempDir())
	require.NoError(t, err)

	latest, err := archive.LoadLatest()
	require.NoError(t, err)
	assert.Nil(t, latest)
}
