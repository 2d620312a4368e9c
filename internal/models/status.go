package models

// Shipment statuses shared by orders and packages. The admin update path may
// write any of these; transition order is not enforced.
const (
	StatusPending               = "pending"
	StatusInWarehouse           = "in-warehouse"
	StatusPreparing             = "preparing"
	StatusInTransit             = "in-transit"
	StatusOutForDelivery        = "out-for-delivery"
	StatusDelivered             = "delivered"
	StatusFailedDeliveryAttempt = "failed-delivery-attempt"
)

var shipmentStatuses = map[string]struct{}{
	StatusPending:               {},
	StatusInWarehouse:           {},
	StatusPreparing:             {},
	StatusInTransit:             {},
	StatusOutForDelivery:        {},
	StatusDelivered:             {},
	StatusFailedDeliveryAttempt: {},
}

// IsValidStatus reports whether value belongs to the shipment status vocabulary.
func IsValidStatus(value string) bool {
	_, ok := shipmentStatuses[value]
	return ok
}
