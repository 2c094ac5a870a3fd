package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/LilVoxy/coursework_dwh/models"
)

// Registry содержит метрики процесса слияния
type Registry struct {
	reg *prometheus.Registry

	CyclesTotal      *prometheus.CounterVec
	RowsMerged       *prometheus.CounterVec
	RowsExcluded     *prometheus.CounterVec
	GeoAmbiguous     prometheus.Counter
	GeoAssigned      prometheus.Counter
	FactsDeleted     prometheus.Counter
	OrphanRows       *prometheus.GaugeVec
	RelationRows     *prometheus.GaugeVec
	CycleDurationSec prometheus.Histogram
}

// NewRegistry создает реестр метрик процесса слияния
func NewRegistry() *Registry {
	r := prometheus.NewRegistry()

	cycles := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "dwh_cycles_total"}, []string{"status"})
	merged := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "dwh_rows_merged_total"}, []string{"relation"})
	excluded := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "dwh_rows_excluded_total"}, []string{"reason"})
	geoAmbiguous := prometheus.NewCounter(prometheus.CounterOpts{Name: "dwh_geo_ambiguous_matches_total"})
	geoAssigned := prometheus.NewCounter(prometheus.CounterOpts{Name: "dwh_geo_assigned_total"})
	factsDeleted := prometheus.NewCounter(prometheus.CounterOpts{Name: "dwh_facts_deleted_total"})
	orphans := prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: "dwh_orphan_rows"}, []string{"foreign_key"})
	relationRows := prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: "dwh_relation_rows"}, []string{"relation"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "dwh_cycle_duration_seconds",
		Buckets: prometheus.DefBuckets,
	})

	r.MustRegister(cycles, merged, excluded, geoAmbiguous, geoAssigned, factsDeleted, orphans, relationRows, duration)
	return &Registry{
		reg:              r,
		CyclesTotal:      cycles,
		RowsMerged:       merged,
		RowsExcluded:     excluded,
		GeoAmbiguous:     geoAmbiguous,
		GeoAssigned:      geoAssigned,
		FactsDeleted:     factsDeleted,
		OrphanRows:       orphans,
		RelationRows:     relationRows,
		CycleDurationSec: duration,
	}
}

// ObserveCycle переносит итог цикла в метрики
func (r *Registry) ObserveCycle(report *models.CycleReport) {
	r.CyclesTotal.WithLabelValues(report.Status).Inc()
	r.CycleDurationSec.Observe(report.ExecutionTimeSeconds)

	r.RowsMerged.WithLabelValues("date_dimension").Add(float64(report.Merged.Dates))
	r.RowsMerged.WithLabelValues("customer_dimension").Add(float64(report.Merged.Customers))
	r.RowsMerged.WithLabelValues("restaurant_dimension").Add(float64(report.Merged.Restaurants))
	r.RowsMerged.WithLabelValues("location_dimension").Add(float64(report.Merged.Locations))
	r.RowsMerged.WithLabelValues("order_facts").Add(float64(report.Merged.Facts))

	for reason, count := range report.ExcludedByReason() {
		r.RowsExcluded.WithLabelValues(reason).Add(float64(count))
	}

	r.GeoAmbiguous.Add(float64(report.GeoAmbiguous))
	r.GeoAssigned.Add(float64(report.GeoAssigned))
	r.FactsDeleted.Add(float64(report.FactsDeleted))

	for fk, count := range report.Orphans {
		r.OrphanRows.WithLabelValues(fk).Set(float64(count))
	}

	for relation, count := range report.RowCounts {
		r.RelationRows.WithLabelValues(relation).Set(float64(count))
	}
}

// Handler возвращает HTTP-обработчик для экспорта метрик
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
