package transform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LilVoxy/coursework_dwh/utils"
)

func TestBuildDateRecord(t *testing.T) {
	// 2 ноября 2019 — суббота
	record := BuildDateRecord(time.Date(2019, 11, 2, 10, 30, 0, 0, time.UTC))

	assert.Equal(t, 20191102, record.DateKey)
	assert.Equal(t, 2019, record.Year)
	assert.Equal(t, 4, record.Quarter)
	assert.Equal(t, 11, record.Month)
	assert.Equal(t, "Nov", record.MonthName)
	assert.Equal(t, 2, record.DayOfMonth)
	assert.Equal(t, 6, record.DayOfWeek)
	assert.True(t, record.IsWeekend)
}

func TestBuildDateRecordISOWeekdays(t *testing.T) {
	// ISO-нумерация: понедельник = 1, воскресенье = 7
	cases := []struct {
		date      time.Time
		dayOfWeek int
		weekend   bool
	}{
		{time.Date(2019, 11, 4, 0, 0, 0, 0, time.UTC), 1, false},  // понедельник
		{time.Date(2019, 11, 6, 0, 0, 0, 0, time.UTC), 3, false},  // среда
		{time.Date(2019, 11, 8, 0, 0, 0, 0, time.UTC), 5, false},  // пятница
		{time.Date(2019, 11, 9, 0, 0, 0, 0, time.UTC), 6, true},   // суббота
		{time.Date(2019, 11, 10, 0, 0, 0, 0, time.UTC), 7, true},  // воскресенье
	}

	for _, tc := range cases {
		record := BuildDateRecord(tc.date)
		assert.Equal(t, tc.dayOfWeek, record.DayOfWeek, "дата %v", tc.date)
		assert.Equal(t, tc.weekend, record.IsWeekend, "дата %v", tc.date)
	}
}

func TestBuildDateRecordQuarters(t *testing.T) {
	cases := map[time.Month]int{
		time.January: 1, time.March: 1,
		time.April: 2, time.June: 2,
		time.July: 3, time.September: 3,
		time.October: 4, time.December: 4,
	}

	for month, quarter := range cases {
		record := BuildDateRecord(time.Date(2020, month, 15, 0, 0, 0, 0, time.UTC))
		assert.Equal(t, quarter, record.Quarter, "месяц %v", month)
	}
}

func TestBuildDateRecordIsPure(t *testing.T) {
	// Чистая функция даты: повторный вызов дает идентичную запись,
	// время внутри суток на результат не влияет
	morning := BuildDateRecord(time.Date(2020, 2, 29, 8, 0, 0, 0, time.UTC))
	evening := BuildDateRecord(time.Date(2020, 2, 29, 23, 59, 59, 0, time.UTC))
	assert.Equal(t, morning, evening)
}

func TestProcessDateDimension(t *testing.T) {
	processor := NewDateDimensionProcessor(utils.NewSilentLogger())

	// Дубликаты дат схлопываются, результат отсортирован по ключу
	times := []time.Time{
		time.Date(2019, 11, 3, 12, 0, 0, 0, time.UTC),
		time.Date(2019, 11, 2, 10, 0, 0, 0, time.UTC),
		time.Date(2019, 11, 2, 18, 30, 0, 0, time.UTC),
	}

	dates := processor.ProcessDateDimension(times)
	require.Len(t, dates, 2)
	assert.Equal(t, 20191102, dates[0].DateKey)
	assert.Equal(t, 20191103, dates[1].DateKey)
}

func TestProcessDateDimensionEmpty(t *testing.T) {
	processor := NewDateDimensionProcessor(utils.NewSilentLogger())
	assert.Empty(t, processor.ProcessDateDimension(nil))
}
