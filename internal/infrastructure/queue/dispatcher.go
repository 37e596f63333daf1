package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/heronet/sellnet/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	deleteTimeout  = 30 * time.Second
)

// Metrics are the collectors a Dispatcher reports to.
type Metrics struct {
	// Results counts removed images by result: ok, error, dropped.
	Results *prometheus.CounterVec
	// Depth is the number of queued jobs per worker_id.
	Depth    *prometheus.GaugeVec
	Duration prometheus.Observer
}

// Dispatcher removes images of deleted or never-stored products in the
// background. Jobs are routed to a fixed set of workers by hashing the product
// id, so all jobs for one product run in order on the same worker.
type Dispatcher struct {
	workers []chan ports.PhotoCleanupJob
	host    ports.PhotoHost
	metrics Metrics
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, host ports.PhotoHost, m Metrics, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.PhotoCleanupJob, numWorkers),
		host:    host,
		metrics: m,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.PhotoCleanupJob, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Enqueue hands a job to the worker responsible for its product. It never
// blocks: when that worker's queue is full the job is dropped and logged.
func (d *Dispatcher) Enqueue(job ports.PhotoCleanupJob) {
	if len(job.PublicIDs) == 0 {
		return
	}
	idx := d.shardIndex(job.ProductID)
	select {
	case d.workers[idx] <- job:
		d.depth(idx).Inc()
	default:
		d.metrics.Results.WithLabelValues("dropped").Add(float64(len(job.PublicIDs)))
		d.log.Warn().
			Str("product_id", job.ProductID).
			Strs("public_ids", job.PublicIDs).
			Int("worker_id", idx).
			Msg("clean-up queue full, images left behind")
	}
}

// shardIndex maps a product id deterministically to a worker index.
func (d *Dispatcher) shardIndex(productID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(productID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) depth(id int) prometheus.Gauge {
	return d.metrics.Depth.WithLabelValues(strconv.Itoa(id))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.PhotoCleanupJob) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-ch:
			if !ok {
				return
			}
			d.depth(id).Dec()
			d.process(ctx, id, job)
		}
	}
}

func (d *Dispatcher) process(ctx context.Context, id int, job ports.PhotoCleanupJob) {
	timer := prometheus.NewTimer(d.metrics.Duration)
	defer timer.ObserveDuration()

	for _, publicID := range job.PublicIDs {
		delCtx, cancel := context.WithTimeout(ctx, deleteTimeout)
		err := d.host.Delete(delCtx, publicID)
		cancel()

		if err != nil {
			d.metrics.Results.WithLabelValues("error").Inc()
			d.log.Error().Err(err).
				Str("product_id", job.ProductID).
				Str("public_id", publicID).
				Int("worker_id", id).
				Msg("image removal failed")
			continue
		}
		d.metrics.Results.WithLabelValues("ok").Inc()
	}
}
