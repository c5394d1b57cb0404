package order

import (
	"go.uber.org/zap"
)

// Event identifies a change on an order that observers are notified about.
type Event string

const (
	EventItemAdded Event = "item_added"
	EventPaid      Event = "paid"
	EventReady     Event = "ready"
	EventDelivered Event = "delivered"
	EventCancelled Event = "cancelled"
)

// Observer receives order change notifications. Notification happens
// synchronously on the goroutine mutating the order.
type Observer interface {
	OrderUpdated(o *Order, event Event)
}

// KitchenDisplay logs the events the kitchen cares about: new items to
// prepare and confirmed payments.
type KitchenDisplay struct {
	lg *zap.Logger
}

// NewKitchenDisplay creates a kitchen display backed by the given logger.
func NewKitchenDisplay(lg *zap.Logger) *KitchenDisplay {
	return &KitchenDisplay{lg: lg}
}

func (d *KitchenDisplay) OrderUpdated(o *Order, event Event) {
	switch event {
	case EventItemAdded, EventPaid:
		d.lg.Info("kitchen notified",
			zap.String("order_id", o.ID()),
			zap.String("event", string(event)),
		)
	}
}

// CustomerNotifier logs the events a customer-facing display announces:
// order ready and delivered.
type CustomerNotifier struct {
	lg *zap.Logger
}

// NewCustomerNotifier creates a customer notifier backed by the given logger.
func NewCustomerNotifier(lg *zap.Logger) *CustomerNotifier {
	return &CustomerNotifier{lg: lg}
}

func (n *CustomerNotifier) OrderUpdated(o *Order, event Event) {
	switch event {
	case EventReady, EventDelivered:
		n.lg.Info("customer notified",
			zap.String("order_id", o.ID()),
			zap.String("event", string(event)),
		)
	}
}
