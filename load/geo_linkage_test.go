package load

import (
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LilVoxy/coursework_dwh/utils"
)

func TestGeoLinkageAssignsOnlyUnlinked(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT location_key, city FROM delivery_analytics.location_dimension").
		WillReturnRows(sqlmock.NewRows([]string{"location_key", "city"}).
			AddRow(1, "Bangalore").
			AddRow(2, "Pune"))
	// Читаются только рестораны с NULL-ключом локации
	mock.ExpectQuery("WHERE location_key IS NULL").
		WillReturnRows(sqlmock.NewRows([]string{"restaurant_key", "city"}).
			AddRow(10, "Bangalore, Koramangala").
			AddRow(11, "Неизвестный город"))

	prep := mock.ExpectPrepare("UPDATE delivery_analytics.restaurant_dimension")
	// Обновляется только ресторан 10: у ресторана 11 нет совпадений,
	// его ключ локации остаётся NULL
	prep.ExpectExec().
		WithArgs(1, 10).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE delivery_analytics.order_facts").
		WillReturnResult(sqlmock.NewResult(0, 0))

	tx, err := db.Begin()
	require.NoError(t, err)

	linkage := NewGeoLinkage(utils.NewSilentLogger())
	assigned, ambiguous, err := linkage.Resolve(tx)
	require.NoError(t, err)
	assert.Equal(t, 1, assigned)
	assert.Zero(t, ambiguous)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGeoLinkageCountsAmbiguousMatches(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT location_key, city FROM delivery_analytics.location_dimension").
		WillReturnRows(sqlmock.NewRows([]string{"location_key", "city"}).
			AddRow(1, "Delhi").
			AddRow(2, "New Delhi"))
	mock.ExpectQuery("WHERE location_key IS NULL").
		WillReturnRows(sqlmock.NewRows([]string{"restaurant_key", "city"}).
			AddRow(10, "New Delhi"))

	prep := mock.ExpectPrepare("UPDATE delivery_analytics.restaurant_dimension")
	// Обе локации совпадают по подстроке; детерминированное ранжирование
	// выбирает более короткий город
	prep.ExpectExec().
		WithArgs(1, 10).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE delivery_analytics.order_facts").
		WillReturnResult(sqlmock.NewResult(0, 0))

	tx, err := db.Begin()
	require.NoError(t, err)

	linkage := NewGeoLinkage(utils.NewSilentLogger())
	assigned, ambiguous, err := linkage.Resolve(tx)
	require.NoError(t, err)
	assert.Equal(t, 1, assigned)
	assert.Equal(t, 1, ambiguous)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGeoLinkageBackfillsFactLocations(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT location_key, city FROM delivery_analytics.location_dimension").
		WillReturnRows(sqlmock.NewRows([]string{"location_key", "city"}).
			AddRow(1, "Bangalore"))
	// Все рестораны уже получили локацию в прошлых циклах
	mock.ExpectQuery("WHERE location_key IS NULL").
		WillReturnRows(sqlmock.NewRows([]string{"restaurant_key", "city"}))
	mock.ExpectPrepare("UPDATE delivery_analytics.restaurant_dimension")

	// Факты, слитые до привязки их ресторана, получают ключ локации
	// задним числом: заказы по водяному знаку повторно не подаются
	mock.ExpectExec("UPDATE delivery_analytics.order_facts").
		WillReturnResult(sqlmock.NewResult(0, 2))

	tx, err := db.Begin()
	require.NoError(t, err)

	linkage := NewGeoLinkage(utils.NewSilentLogger())
	assigned, ambiguous, err := linkage.Resolve(tx)
	require.NoError(t, err)
	assert.Zero(t, assigned)
	assert.Zero(t, ambiguous)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGeoLinkageSkipsWhenNoLocations(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT location_key, city FROM delivery_analytics.location_dimension").
		WillReturnRows(sqlmock.NewRows([]string{"location_key", "city"}))

	tx, err := db.Begin()
	require.NoError(t, err)

	linkage := NewGeoLinkage(utils.NewSilentLogger())
	assigned, ambiguous, err := linkage.Resolve(tx)
	require.NoError(t, err)
	assert.Zero(t, assigned)
	assert.Zero(t, ambiguous)
	assert.NoError(t, mock.ExpectationsWereMet())
}
