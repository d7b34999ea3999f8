// Package realtime implements the in-process broadcast hub that republishes
// live shipment updates to subscribed observers. Subscriptions are keyed by
// tracking number and live exactly as long as the observer's connection;
// nothing is persisted and new subscribers receive no backlog.
package realtime

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/parceltrack/tracking-system/internal/core/ports"
)

const defaultBufferSize = 16

// Subscriber is one observer's handle on a shipment topic. Messages arrive on
// C; when the hub removes the subscriber, C is closed.
type Subscriber struct {
	ID    string
	Topic string

	ch     chan ports.BroadcastPayload
	mu     sync.Mutex
	closed bool
}

// C returns the channel broadcast payloads are delivered on.
func (s *Subscriber) C() <-chan ports.BroadcastPayload {
	return s.ch
}

// send delivers non-blocking: a full buffer means the payload is dropped for
// this subscriber rather than stalling the publish.
func (s *Subscriber) send(p ports.BroadcastPayload) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}
	select {
	case s.ch <- p:
		return true
	default:
		return false
	}
}

func (s *Subscriber) close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		close(s.ch)
		s.closed = true
	}
}

// Hub maintains an explicit mapping from tracking number to the set of
// subscriber handles observing it. All methods are safe for concurrent use.
type Hub struct {
	mu         sync.RWMutex
	topics     map[string]map[*Subscriber]struct{}
	bufferSize int
	closed     bool
	log        zerolog.Logger
}

// NewHub creates a Hub. bufferSize is the per-subscriber channel buffer; a
// minimum of 1 is enforced so sends stay non-blocking.
func NewHub(bufferSize int, log zerolog.Logger) *Hub {
	if bufferSize < 1 {
		bufferSize = defaultBufferSize
	}
	return &Hub{
		topics:     make(map[string]map[*Subscriber]struct{}),
		bufferSize: bufferSize,
		log:        log,
	}
}

// Subscribe registers a new observer on the given shipment topic.
// If the hub is already closed the returned subscriber's channel is closed.
func (h *Hub) Subscribe(trackingNumber string) *Subscriber {
	sub := &Subscriber{
		ID:    uuid.NewString(),
		Topic: trackingNumber,
		ch:    make(chan ports.BroadcastPayload, h.bufferSize),
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		sub.close()
		return sub
	}

	subs, ok := h.topics[trackingNumber]
	if !ok {
		subs = make(map[*Subscriber]struct{})
		h.topics[trackingNumber] = subs
	}
	subs[sub] = struct{}{}

	h.log.Debug().Str("tracking_number", trackingNumber).Str("subscriber_id", sub.ID).Msg("observer subscribed")
	return sub
}

// Unsubscribe removes the observer and closes its channel. Safe to call more
// than once; the topic entry is dropped when its last observer leaves.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	if subs, ok := h.topics[sub.Topic]; ok {
		delete(subs, sub)
		if len(subs) == 0 {
			delete(h.topics, sub.Topic)
		}
	}
	h.mu.Unlock()

	sub.close()
}

// Publish fans the payload out to every observer currently subscribed to the
// shipment's topic and returns how many received it. Observers of other
// topics never see the payload. There is no acknowledgment and no memory of
// past events.
func (h *Hub) Publish(trackingNumber string, payload ports.BroadcastPayload) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return 0
	}

	delivered := 0
	for sub := range h.topics[trackingNumber] {
		if sub.send(payload) {
			delivered++
		} else {
			h.log.Warn().
				Str("tracking_number", trackingNumber).
				Str("subscriber_id", sub.ID).
				Msg("broadcast dropped for slow observer")
		}
	}
	return delivered
}

// Subscribers reports the number of observers on a topic.
func (h *Hub) Subscribers(trackingNumber string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[trackingNumber])
}

// Close shuts the hub down and closes every subscriber channel. Idempotent.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true

	for _, subs := range h.topics {
		for sub := range subs {
			sub.close()
		}
	}
	clear(h.topics)
}
