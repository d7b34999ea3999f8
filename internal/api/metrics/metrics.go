// Package metrics defines all custom Prometheus metrics for the tracking
// backend. It is the single source of truth for metric names, labels, and
// help strings; promauto registers everything with the default registry at
// package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tracking"

// ── Realtime update metrics ───────────────────────────────────────────────────

// LocationUpdatesTotal counts location updates that entered processing.
// Labels:
//   - status: the status carried by the update (raw string, may be unknown)
//   - result: "processed" or "malformed"
var LocationUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "location_updates_total",
		Help:      "Total number of location updates received, by status and result.",
	},
	[]string{"status", "result"},
)

// BroadcastDeliveriesTotal counts individual observer deliveries performed by
// the hub (one publish to N observers counts N).
var BroadcastDeliveriesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "broadcast_deliveries_total",
		Help:      "Total number of broadcast payloads delivered to observers.",
	},
)

// ObserversConnected tracks the number of websocket observers currently
// subscribed to any shipment topic.
var ObserversConnected = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "observers_connected",
		Help:      "Current number of connected tracking observers.",
	},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsTotal counts adapter invocations by channel and outcome.
// Labels:
//   - channel: "email", "sms", or "push"
//   - result:  "success" or "failure"
var NotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total number of notification attempts, by channel and result.",
	},
	[]string{"channel", "result"},
)

// NotificationDuration measures one adapter invocation end-to-end.
// Label:
//   - channel: "email", "sms", or "push"
var NotificationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "notification_duration_seconds",
		Help:      "Duration of a single notification channel send.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"channel"},
)

// FanoutSkippedTotal counts fan-out cycles skipped because the shipment could
// not be resolved to a contact.
var FanoutSkippedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fanout_skipped_total",
		Help:      "Total number of notification fan-outs skipped for unresolvable shipments.",
	},
)

// ── Shipment metrics ──────────────────────────────────────────────────────────

// ShipmentsCreatedTotal counts newly created shipments.
var ShipmentsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "shipments_created_total",
		Help:      "Total number of shipments created.",
	},
)
