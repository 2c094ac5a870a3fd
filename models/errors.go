package models

import "fmt"

// Причины исключения строки из цикла слияния
const (
	ReasonMalformedTimestamp  = "malformed_timestamp"
	ReasonMalformedInput      = "malformed_input"
	ReasonUnresolvedReference = "unresolved_reference"
)

// MalformedTimestampError — временная метка заказа не распознана ни одним
// из поддерживаемых форматов; строка исключается из слияния фактов
type MalformedTimestampError struct {
	Value string
}

func (e *MalformedTimestampError) Error() string {
	return fmt.Sprintf("нераспознанный формат временной метки: %q", e.Value)
}

// MalformedInputError — значение staging-поля не приводится к целевому типу
type MalformedInputError struct {
	Relation string
	Field    string
	Value    string
	Err      error
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("неприводимое значение %s.%s = %q: %v", e.Relation, e.Field, e.Value, e.Err)
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}

// UnresolvedReferenceError — естественный ключ клиента или ресторана из
// строки факта не найден в соответствующем измерении
type UnresolvedReferenceError struct {
	Dimension  string
	NaturalKey string
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("естественный ключ %q не найден в измерении %s", e.NaturalKey, e.Dimension)
}

// TransactionFailureError — сбой хранилища внутри цикла; вся транзакция
// цикла откатывается, запуск завершается с ошибкой
type TransactionFailureError struct {
	Stage string
	Err   error
}

func (e *TransactionFailureError) Error() string {
	return fmt.Sprintf("сбой транзакции на этапе %q: %v", e.Stage, e.Err)
}

func (e *TransactionFailureError) Unwrap() error {
	return e.Err
}

// ExcludedRow описывает строку, исключённую из цикла, с указанием причины
// Исключения локальны: цикл продолжается, а все исключённые ключи попадают
// в итоговый отчёт
type ExcludedRow struct {
	NaturalKey string `json:"natural_key"`
	Reason     string `json:"reason"`
	Detail     string `json:"detail,omitempty"`
}
