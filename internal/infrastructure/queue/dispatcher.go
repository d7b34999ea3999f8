package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/parceltrack/tracking-system/internal/core/ports"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// Dispatcher routes location updates to a fixed set of workers using
// consistent hashing on the tracking number. Updates for one shipment always
// land on the same worker, so broadcasts for a shipment go out in the order
// they were published; different shipments proceed in parallel.
type Dispatcher struct {
	workers []chan ports.LocationUpdateInput
	service ports.TrackingService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.TrackingService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.LocationUpdateInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.LocationUpdateInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands an update to the worker responsible for its tracking number.
// Non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(in ports.LocationUpdateInput) {
	d.workers[d.shardIndex(in.TrackingNumber)] <- in
}

// shardIndex maps a tracking number deterministically to a worker index.
func (d *Dispatcher) shardIndex(trackingNumber string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(trackingNumber))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.LocationUpdateInput) {
	for {
		select {
		case <-ctx.Done():
			return
		case in, ok := <-ch:
			if !ok {
				return
			}
			if err := d.service.Process(ctx, in); err != nil {
				d.log.Error().Err(err).
					Str("tracking_number", in.TrackingNumber).
					Int("worker_id", id).
					Msg("location update processing failed")
			}
		}
	}
}
