package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/seraphine/pkg/metrics"
)

func TestRecordImport(t *testing.T) {
	beforeItems := testutil.ToFloat64(metrics.ImportLines.WithLabelValues("item"))
	beforeErrors := testutil.ToFloat64(metrics.ImportLines.WithLabelValues("error"))
	beforeDry := testutil.ToFloat64(metrics.ImportBatches.WithLabelValues("dry_run"))

	metrics.RecordImport(true, 3, 2, 0)

	assert.Equal(t, beforeItems+3, testutil.ToFloat64(metrics.ImportLines.WithLabelValues("item")))
	assert.Equal(t, beforeErrors+2, testutil.ToFloat64(metrics.ImportLines.WithLabelValues("error")))
	assert.Equal(t, beforeDry+1, testutil.ToFloat64(metrics.ImportBatches.WithLabelValues("dry_run")))
}
