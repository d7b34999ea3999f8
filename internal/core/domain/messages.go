package domain

// statusMessages maps each defined status to the customer-facing text shared
// by every notification channel.
var statusMessages = map[ShipmentStatus]string{
	StatusPending:        "Your shipment has been registered and is awaiting dispatch.",
	StatusDispatched:     "Your shipment has been dispatched from our facility.",
	StatusInTransit:      "Your shipment is on the move and in transit.",
	StatusOutForDelivery: "Your shipment is out for delivery and will arrive soon.",
	StatusDelivered:      "Your shipment has been delivered. Thank you!",
}

// genericStatusMessage is used for any status outside the defined set.
// Unknown statuses never cause an error, only a less specific message.
const genericStatusMessage = "There is a new update on your shipment."

// MessageFor returns the notification text for a status, falling back to a
// generic message for unrecognized values.
func MessageFor(status ShipmentStatus) string {
	if msg, ok := statusMessages[status]; ok {
		return msg
	}
	return genericStatusMessage
}
