package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotEmpty(t *testing.T) {
	c := NewCollector()
	snap := c.Snapshot()

	assert.Nil(t, snap.DatasetLoad)
	assert.Nil(t, snap.Recommend)
	assert.Nil(t, snap.Outcomes)
	assert.GreaterOrEqual(t, snap.UptimeSeconds, 0.0)
}

func TestRecordTiming(t *testing.T) {
	c := NewCollector()
	c.RecordTiming(OpVectorize, 10*time.Millisecond)
	c.RecordTiming(OpVectorize, 30*time.Millisecond)

	snap := c.Snapshot()
	require.NotNil(t, snap.Vectorize)
	assert.Equal(t, int64(2), snap.Vectorize.Count)
	assert.Equal(t, int64(40), snap.Vectorize.TotalTimeMs)
	assert.Equal(t, int64(10), snap.Vectorize.MinTimeMs)
	assert.Equal(t, int64(30), snap.Vectorize.MaxTimeMs)
	assert.InDelta(t, 20.0, snap.Vectorize.AvgTimeMs, 0.001)
}

func TestRecordResultCountsErrors(t *testing.T) {
	c := NewCollector()
	c.RecordResult(OpDatasetLoad, time.Millisecond, errors.New("boom"))
	c.RecordResult(OpDatasetLoad, time.Millisecond, nil)

	snap := c.Snapshot()
	require.NotNil(t, snap.DatasetLoad)
	assert.Equal(t, int64(2), snap.DatasetLoad.Count)
	assert.Equal(t, int64(1), snap.DatasetLoad.Errors)
}

func TestRecordOutcomeFeedsPrometheus(t *testing.T) {
	c := NewCollector()
	c.RecordOutcome(OutcomeOK)
	c.RecordOutcome(OutcomeOK)
	c.RecordOutcome(OutcomeNoMatch)

	snap := c.Snapshot()
	assert.Equal(t, int64(2), snap.Outcomes[OutcomeOK])
	assert.Equal(t, int64(1), snap.Outcomes[OutcomeNoMatch])

	assert.InDelta(t, 2.0, testutil.ToFloat64(c.queries.WithLabelValues(OutcomeOK)), 0.001)
	assert.Equal(t, 2, testutil.CollectAndCount(c.queries, "movierec_queries_total"))
}

func TestNilCollectorIsNoop(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() {
		c.RecordTiming(OpRecommend, time.Millisecond)
		c.RecordOutcome(OutcomeOK)
	})
}

func TestCollectorConcurrent(t *testing.T) {
	c := NewCollector()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.RecordTiming(OpRecommend, time.Millisecond)
		}()
	}
	wg.Wait()

	snap := c.Snapshot()
	require.NotNil(t, snap.Recommend)
	assert.Equal(t, int64(20), snap.Recommend.Count)
}
