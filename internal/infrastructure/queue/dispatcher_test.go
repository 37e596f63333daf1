package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heronet/sellnet/internal/core/ports"
)

type recordingHost struct {
	mu      sync.Mutex
	deleted []string
	fail    map[string]bool
	done    chan struct{}
	want    int
}

func newRecordingHost(want int) *recordingHost {
	return &recordingHost{fail: map[string]bool{}, done: make(chan struct{}), want: want}
}

func (h *recordingHost) Upload(context.Context, ports.PhotoUpload, ports.Transformation) (*ports.UploadedPhoto, error) {
	return nil, errors.New("not implemented")
}

func (h *recordingHost) Delete(_ context.Context, publicID string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.deleted = append(h.deleted, publicID)
	if len(h.deleted) == h.want {
		close(h.done)
	}
	if h.fail[publicID] {
		return errors.New("boom")
	}
	return nil
}

func (h *recordingHost) snapshot() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.deleted...)
}

// testMetrics returns unregistered collectors so every test starts from zero.
func testMetrics() Metrics {
	return Metrics{
		Results:  prometheus.NewCounterVec(prometheus.CounterOpts{Name: "results"}, []string{"result"}),
		Depth:    prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: "depth"}, []string{"worker_id"}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{Name: "duration"}),
	}
}

func TestDispatcher_DeletesEveryImage(t *testing.T) {
	host := newRecordingHost(4)
	host.fail["b"] = true

	m := testMetrics()
	d := NewDispatcher(2, host, m, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	d.Enqueue(ports.PhotoCleanupJob{ProductID: "p1", PublicIDs: []string{"a", "b"}})
	d.Enqueue(ports.PhotoCleanupJob{ProductID: "p2", PublicIDs: []string{"c", "d"}})

	select {
	case <-host.done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for clean-up")
	}
	cancel()
	d.Wait()

	assert.ElementsMatch(t, []string{"a", "b", "c", "d"}, host.snapshot(), "a failed removal must not stop the job")
	assert.Equal(t, 3.0, testutil.ToFloat64(m.Results.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Results.WithLabelValues("error")))
}

func TestDispatcher_PreservesOrderPerProduct(t *testing.T) {
	host := newRecordingHost(3)
	d := NewDispatcher(4, host, testMetrics(), zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue(ports.PhotoCleanupJob{ProductID: "p1", PublicIDs: []string{"1"}})
	d.Enqueue(ports.PhotoCleanupJob{ProductID: "p1", PublicIDs: []string{"2"}})
	d.Enqueue(ports.PhotoCleanupJob{ProductID: "p1", PublicIDs: []string{"3"}})

	select {
	case <-host.done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for clean-up")
	}
	assert.Equal(t, []string{"1", "2", "3"}, host.snapshot())
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(8, nil, testMetrics(), zerolog.Nop())
	first := d.shardIndex("product-42")
	for i := 0; i < 10; i++ {
		require.Equal(t, first, d.shardIndex("product-42"))
	}
	assert.GreaterOrEqual(t, first, 0)
	assert.Less(t, first, 8)
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	m := testMetrics()
	d := NewDispatcher(1, newRecordingHost(-1), m, zerolog.Nop())
	// Workers are not started, so the queue fills up.
	for i := 0; i < channelBuffer+5; i++ {
		d.Enqueue(ports.PhotoCleanupJob{ProductID: "p", PublicIDs: []string{"x"}})
	}
	assert.Len(t, d.workers[0], channelBuffer)
	assert.Equal(t, 5.0, testutil.ToFloat64(m.Results.WithLabelValues("dropped")))
	assert.Equal(t, float64(channelBuffer), testutil.ToFloat64(m.Depth.WithLabelValues("0")))
}

func TestDispatcher_IgnoresEmptyJobs(t *testing.T) {
	d := NewDispatcher(1, newRecordingHost(-1), testMetrics(), zerolog.Nop())
	d.Enqueue(ports.PhotoCleanupJob{ProductID: "p"})
	assert.Len(t, d.workers[0], 0)
}
