package transform

import (
	"database/sql"
	"strconv"
	"strings"

	"github.com/LilVoxy/coursework_dwh/models"
)

// Значения-заглушки, которые источник использует вместо отсутствующего числа
var nullLikeValues = map[string]bool{
	"":     true,
	"-":    true,
	"na":   true,
	"n/a":  true,
	"nan":  true,
	"null": true,
	"new":  true,
}

// isNullLike сообщает, следует ли трактовать текст как отсутствующее значение
func isNullLike(raw string) bool {
	return nullLikeValues[strings.ToLower(strings.TrimSpace(raw))]
}

// coerceNullInt приводит текст к целому числу
// Пустые и заглушечные значения дают NULL, неприводимые — типизированную ошибку
func coerceNullInt(relation, field, raw string) (sql.NullInt64, error) {
	trimmed := strings.TrimSpace(raw)
	if isNullLike(trimmed) {
		return sql.NullInt64{}, nil
	}

	value, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return sql.NullInt64{}, &models.MalformedInputError{
			Relation: relation,
			Field:    field,
			Value:    raw,
			Err:      err,
		}
	}

	return sql.NullInt64{Int64: value, Valid: true}, nil
}

// coerceNullFloat приводит текст к числу с плавающей точкой
func coerceNullFloat(relation, field, raw string) (sql.NullFloat64, error) {
	trimmed := strings.TrimSpace(raw)
	if isNullLike(trimmed) {
		return sql.NullFloat64{}, nil
	}

	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return sql.NullFloat64{}, &models.MalformedInputError{
			Relation: relation,
			Field:    field,
			Value:    raw,
			Err:      err,
		}
	}

	return sql.NullFloat64{Float64: value, Valid: true}, nil
}

// coerceInt приводит обязательное числовое поле; отсутствие значения —
// такая же ошибка приведения, как и мусор в поле
func coerceInt(relation, field, raw string) (int, error) {
	trimmed := strings.TrimSpace(raw)

	value, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return 0, &models.MalformedInputError{
			Relation: relation,
			Field:    field,
			Value:    raw,
			Err:      err,
		}
	}

	return int(value), nil
}

// coerceFloat приводит обязательное дробное поле
func coerceFloat(relation, field, raw string) (float64, error) {
	trimmed := strings.TrimSpace(raw)

	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, &models.MalformedInputError{
			Relation: relation,
			Field:    field,
			Value:    raw,
			Err:      err,
		}
	}

	return value, nil
}
