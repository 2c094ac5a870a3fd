package load

import (
	"database/sql"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

func TestCustomerLoaderUpsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	prep := mock.ExpectPrepare("INSERT INTO delivery_analytics.customer_dimension")
	prep.ExpectExec().
		WithArgs("7", "Анна", "anna@example.com", int64(24), "Female", "Single",
			"Student", int64(4), "Below Rs.10000", 1, "Higher Education", 2).
		WillReturnResult(sqlmock.NewResult(1, 1))
	prep.ExpectExec().
		WithArgs("8", "Пётр", "", nil, "Male", "", "", nil, "Unknown", 9, "Unknown", 0).
		WillReturnResult(sqlmock.NewResult(2, 1))

	tx, err := db.Begin()
	require.NoError(t, err)

	loader := NewCustomerLoader(utils.NewSilentLogger())
	customers := []models.CustomerDimension{
		{
			CustomerNK: "7", Name: "Анна", Email: "anna@example.com",
			Age:    sql.NullInt64{Int64: 24, Valid: true},
			Gender: "Female", MaritalStatus: "Single", Occupation: "Student",
			FamilySize:    sql.NullInt64{Int64: 4, Valid: true},
			IncomeBracket: "Below Rs.10000", IncomeRank: 1,
			EducationLevel: "Higher Education", EducationRank: 2,
		},
		{
			// NULL-поля источника остаются NULL и в измерении
			CustomerNK: "8", Name: "Пётр", Gender: "Male",
			IncomeBracket: "Unknown", IncomeRank: 9,
			EducationLevel: "Unknown", EducationRank: 0,
		},
	}

	processed, err := loader.Load(tx, customers)
	require.NoError(t, err)
	assert.Equal(t, 2, processed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerLoaderEmptyBatch(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	tx, err := db.Begin()
	require.NoError(t, err)

	loader := NewCustomerLoader(utils.NewSilentLogger())
	processed, err := loader.Load(tx, nil)
	require.NoError(t, err)
	assert.Zero(t, processed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
