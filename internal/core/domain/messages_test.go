package domain

import "testing"

func TestMessageFor_KnownStatuses(t *testing.T) {
	cases := map[ShipmentStatus]string{
		StatusPending:        "Your shipment has been registered and is awaiting dispatch.",
		StatusDispatched:     "Your shipment has been dispatched from our facility.",
		StatusInTransit:      "Your shipment is on the move and in transit.",
		StatusOutForDelivery: "Your shipment is out for delivery and will arrive soon.",
		StatusDelivered:      "Your shipment has been delivered. Thank you!",
	}

	for status, want := range cases {
		if got := MessageFor(status); got != want {
			t.Errorf("MessageFor(%q) = %q, want %q", status, got, want)
		}
		if !status.Known() {
			t.Errorf("expected %q to be a known status", status)
		}
	}
}

func TestMessageFor_UnknownStatusFallsBack(t *testing.T) {
	for _, status := range []ShipmentStatus{"customs_hold", "", "DELIVERED"} {
		if got := MessageFor(status); got != genericStatusMessage {
			t.Errorf("MessageFor(%q) = %q, want generic fallback", status, got)
		}
		if status.Known() {
			t.Errorf("%q must not be a known status", status)
		}
	}
}
