// Package metrics expone las métricas Prometheus de la API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ImportLines líneas procesadas por la importación de productos, por resultado.
	ImportLines = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seraphine_import_lines_total",
			Help: "Lines processed by the batch product import",
		},
		[]string{"result"}, // item, error, duplicate
	)

	// ImportBatches lotes importados, por modo.
	ImportBatches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seraphine_import_batches_total",
			Help: "Batch product imports",
		},
		[]string{"mode"}, // dry_run, commit
	)

	// AccessDenied accesos rechazados por la política de módulos.
	AccessDenied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seraphine_access_denied_total",
			Help: "Requests rejected by the module access policy",
		},
		[]string{"module", "action", "reason"},
	)

	// StockMovements movimientos de stock registrados.
	StockMovements = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seraphine_stock_movements_total",
			Help: "Stock movements registered",
		},
		[]string{"type"},
	)

	// HTTPRequestDuration latencia de las peticiones HTTP.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "seraphine_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// RecordImport registra el resultado de un lote.
func RecordImport(dryRun bool, items, lineErrors, duplicates int) {
	mode := "commit"
	if dryRun {
		mode = "dry_run"
	}
	ImportBatches.WithLabelValues(mode).Inc()
	ImportLines.WithLabelValues("item").Add(float64(items))
	ImportLines.WithLabelValues("error").Add(float64(lineErrors))
	ImportLines.WithLabelValues("duplicate").Add(float64(duplicates))
}
