package stats

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dump writes p to a temp file and returns the exposition text.
func dump(t *testing.T, p *Prometheus) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "metrics.prom")
	require.NoError(t, p.WriteTextfile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestPrometheus_IncCounter_Accumulates(t *testing.T) {
	p := NewPrometheus()

	p.IncCounter(MetricColdStartMisses, 3)
	p.IncCounter(MetricColdStartMisses, 4)

	assert.Contains(t, dump(t, p), MetricColdStartMisses+" 7\n")
}

func TestPrometheus_SetGauge_Overwrites(t *testing.T) {
	p := NewPrometheus()

	p.SetGauge(MetricColdStartCacheEntries, 10)
	p.SetGauge(MetricColdStartCacheEntries, 2)

	assert.Contains(t, dump(t, p), MetricColdStartCacheEntries+" 2\n")
}

func TestPrometheus_SeparateInstances_DoNotShareSeries(t *testing.T) {
	// GIVEN two collectors publishing the same metric name
	a := NewPrometheus()
	b := NewPrometheus()

	// WHEN both register it
	a.IncCounter(MetricReshardKeysLost, 1)
	b.IncCounter(MetricReshardKeysLost, 5)

	// THEN neither panics on duplicate registration and values stay apart
	assert.Contains(t, dump(t, a), MetricReshardKeysLost+" 1\n")
	assert.Contains(t, dump(t, b), MetricReshardKeysLost+" 5\n")
}

func TestPrometheus_ObserveHistogram_CountsObservations(t *testing.T) {
	p := NewPrometheus()
	p.ObserveHistogram(MetricColdStartMissPercent, 100)
	p.ObserveHistogram(MetricColdStartMissPercent, 40)

	out := dump(t, p)
	assert.Contains(t, out, MetricColdStartMissPercent+"_count 2\n")
	assert.Contains(t, out, MetricColdStartMissPercent+"_sum 140\n")
}

func TestPrometheus_WriteTextfile_BadPath(t *testing.T) {
	p := NewPrometheus()
	p.IncCounter(MetricColdStartRequests, 1)

	err := p.WriteTextfile(filepath.Join(t.TempDir(), "missing", "dir", "m.prom"))
	assert.Error(t, err)
}

func TestNoop_ImplementsCollector(t *testing.T) {
	var c Collector = Noop{}
	c.IncCounter("x", 1)
	c.SetGauge("x", 1)
	c.ObserveHistogram("x", 1)
}
