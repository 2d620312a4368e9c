package models

import "testing"

func TestIsValidStatusAcceptsVocabulary(t *testing.T) {
	valid := []string{
		StatusPending,
		StatusInWarehouse,
		StatusPreparing,
		StatusInTransit,
		StatusOutForDelivery,
		StatusDelivered,
		StatusFailedDeliveryAttempt,
	}
	for _, status := range valid {
		if !IsValidStatus(status) {
			t.Fatalf("expected %q to be a valid status", status)
		}
	}
}

func TestIsValidStatusRejectsUnknown(t *testing.T) {
	for _, status := range []string{"", "Pending", "shipped", "in_transit", "all", "previous-orders"} {
		if IsValidStatus(status) {
			t.Fatalf("expected %q to be rejected", status)
		}
	}
}
