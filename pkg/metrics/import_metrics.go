package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ImportRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookline_import_rows_total",
		Help: "Rows processed by the bulk import pipeline, by import type and result.",
	}, []string{"type", "result"})

	ImportBatches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookline_import_batches_total",
		Help: "Import batches finalized, by import type and terminal status.",
	}, []string{"type", "status"})

	ImportRollbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookline_import_rollbacks_total",
		Help: "Import batch rollbacks, by import type.",
	}, []string{"type"})
)
