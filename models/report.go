package models

import "time"

// MergeCounters содержит количество строк, прошедших слияние, по отношениям
type MergeCounters struct {
	Dates       int `json:"dates"`
	Customers   int `json:"customers"`
	Restaurants int `json:"restaurants"`
	Locations   int `json:"locations"`
	Facts       int `json:"facts"`
}

// LoadResult содержит итог фазы Load одного цикла
type LoadResult struct {
	Merged       MergeCounters  `json:"merged"`
	Excluded     []ExcludedRow  `json:"excluded,omitempty"`
	GeoAssigned  int            `json:"geo_assigned"`
	GeoAmbiguous int            `json:"geo_ambiguous"`
	Orphans      map[string]int `json:"orphans"`
	FactsDeleted int            `json:"facts_deleted"`
	RowCounts    map[string]int `json:"row_counts"`
}

// CycleReport — итоговый отчёт одного цикла слияния
// Все восстановленные построчные ошибки агрегируются сюда; молча не
// проглатывается ничего
type CycleReport struct {
	RunID                string         `json:"run_id"`
	StartTime            time.Time      `json:"start_time"`
	EndTime              time.Time      `json:"end_time"`
	Status               string         `json:"status"` // "success", "failed"
	Merged               MergeCounters  `json:"merged"`
	Excluded             []ExcludedRow  `json:"excluded,omitempty"`
	GeoAssigned          int            `json:"geo_assigned"`
	GeoAmbiguous         int            `json:"geo_ambiguous"`
	Orphans              map[string]int `json:"orphans,omitempty"`
	OrphansTotal         int            `json:"orphans_total"`
	FactsDeleted         int            `json:"facts_deleted"`
	RowCounts            map[string]int `json:"row_counts,omitempty"`
	LastProcessedOrderID int            `json:"last_processed_order_id"`
	ErrorMessage         string         `json:"error_message,omitempty"`
	ExecutionTimeSeconds float64        `json:"execution_time_seconds"`
}

// ApplyLoadResult переносит итог фазы Load в отчёт цикла
func (r *CycleReport) ApplyLoadResult(result *LoadResult) {
	r.Merged = result.Merged
	r.Excluded = append(r.Excluded, result.Excluded...)
	r.GeoAssigned = result.GeoAssigned
	r.GeoAmbiguous = result.GeoAmbiguous
	r.Orphans = result.Orphans
	r.FactsDeleted = result.FactsDeleted
	r.RowCounts = result.RowCounts

	r.OrphansTotal = 0
	for _, n := range result.Orphans {
		r.OrphansTotal += n
	}
}

// Finish фиксирует завершение цикла и рассчитывает длительность
func (r *CycleReport) Finish(status string, endTime time.Time) {
	r.Status = status
	r.EndTime = endTime
	r.ExecutionTimeSeconds = endTime.Sub(r.StartTime).Seconds()
}

// ExcludedByReason возвращает количество исключённых строк по причинам
func (r *CycleReport) ExcludedByReason() map[string]int {
	counts := make(map[string]int)
	for _, row := range r.Excluded {
		counts[row.Reason]++
	}
	return counts
}
