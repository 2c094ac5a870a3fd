package transform

import (
	"sort"
	"time"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// Сокращенные названия месяцев для календарного измерения
var monthAbbreviations = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// DateKey возвращает целочисленный ключ даты вида YYYYMMDD
func DateKey(t time.Time) int {
	year, month, day := t.Date()
	return year*10000 + int(month)*100 + day
}

// BuildDateRecord формирует запись календарного измерения для одной даты
// Чистая функция даты: повторный вызов для той же даты дает ту же запись
func BuildDateRecord(t time.Time) models.DateDimension {
	year, month, day := t.Date()

	// ISO-нумерация дней недели: Пн=1 … Вс=7
	dayOfWeek := int(t.Weekday())
	if dayOfWeek == 0 {
		dayOfWeek = 7
	}

	return models.DateDimension{
		DateKey:    DateKey(t),
		FullDate:   time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
		Year:       year,
		Quarter:    (int(month)-1)/3 + 1,
		Month:      int(month),
		MonthName:  monthAbbreviations[int(month)-1],
		DayOfMonth: day,
		DayOfWeek:  dayOfWeek,
		IsWeekend:  dayOfWeek == 6 || dayOfWeek == 7,
	}
}

// DateDimensionProcessor отвечает за построение календарного измерения
type DateDimensionProcessor struct {
	logger *utils.ETLLogger
}

// NewDateDimensionProcessor создает новый экземпляр DateDimensionProcessor
func NewDateDimensionProcessor(logger *utils.ETLLogger) *DateDimensionProcessor {
	return &DateDimensionProcessor{
		logger: logger,
	}
}

// ProcessDateDimension строит календарные записи по всем различным датам
// заказов текущего цикла
func (p *DateDimensionProcessor) ProcessDateDimension(orderTimes []time.Time) []models.DateDimension {
	p.logger.Debug("Обработка календарного измерения...")

	// Убираем дубликаты дат по ключу YYYYMMDD
	seen := make(map[int]models.DateDimension)
	for _, t := range orderTimes {
		record := BuildDateRecord(t)
		seen[record.DateKey] = record
	}

	dates := make([]models.DateDimension, 0, len(seen))
	for _, record := range seen {
		dates = append(dates, record)
	}

	// Стабильный порядок загрузки
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].DateKey < dates[j].DateKey
	})

	p.logger.Info("Обработано календарное измерение. Различных дат: %d", len(dates))
	return dates
}
