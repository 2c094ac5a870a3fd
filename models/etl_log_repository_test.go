package models

import (
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateLogEntry(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	startTime := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectExec("INSERT INTO delivery_analytics.etl_run_log").
		WithArgs("run-1", startTime).
		WillReturnResult(sqlmock.NewResult(7, 1))

	repo := NewMySQLETLLogRepository(db)
	id, err := repo.CreateLogEntry("run-1", startTime)
	require.NoError(t, err)
	assert.Equal(t, 7, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateLogEntrySuccess(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	endTime := time.Date(2025, 3, 1, 12, 5, 0, 0, time.UTC)
	report := &CycleReport{
		EndTime: endTime,
		Merged:  MergeCounters{Dates: 1, Customers: 2, Restaurants: 3, Locations: 4, Facts: 5},
		Excluded: []ExcludedRow{
			{NaturalKey: "x", Reason: ReasonMalformedInput},
		},
		OrphansTotal:         2,
		FactsDeleted:         1,
		LastProcessedOrderID: 257,
		ExecutionTimeSeconds: 300.0,
	}

	mock.ExpectExec("UPDATE delivery_analytics.etl_run_log").
		WithArgs(endTime, 2, 3, 4, 1, 5, 1, 2, 1, 257, 300.0, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewMySQLETLLogRepository(db)
	require.NoError(t, repo.UpdateLogEntrySuccess(7, report))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetLastSuccessfulRun(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	end := start.Add(5 * time.Minute)
	columns := []string{
		"id", "run_id", "start_time", "end_time", "status",
		"customers_merged", "restaurants_merged", "locations_merged",
		"dates_merged", "facts_merged", "rows_excluded", "orphans_found",
		"facts_deleted", "last_processed_order_id",
		"error_message", "execution_time_seconds",
	}
	mock.ExpectQuery("WHERE status = 'success'").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(7, "run-1", start, end, "success",
				2, 3, 4, 1, 5, 1, 0, 0, 257, "", 300.0))

	repo := NewMySQLETLLogRepository(db)
	runLog, err := repo.GetLastSuccessfulRun()
	require.NoError(t, err)
	require.NotNil(t, runLog)

	// Водяной знак следующего цикла — ID последнего обработанного заказа
	assert.Equal(t, 257, runLog.LastProcessedOrderID)
	assert.Equal(t, "success", runLog.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetLastSuccessfulRunEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("WHERE status = 'success'").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := NewMySQLETLLogRepository(db)
	runLog, err := repo.GetLastSuccessfulRun()
	require.NoError(t, err)
	assert.Nil(t, runLog)
	assert.NoError(t, mock.ExpectationsWereMet())
}
