package handlers

import (
	"testing"
	"time"

	"backend/internal/models"
)

func TestBuildOrderUpdateRejectsUnknownStatus(t *testing.T) {
	req := updateOrderRequest{Status: "teleported", PaymentStatus: paymentStatusUnpaid}
	if _, err := buildOrderUpdate(req, time.Now()); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestBuildOrderUpdatePaidSetsPaymentFields(t *testing.T) {
	now := time.Now()
	req := updateOrderRequest{Status: models.StatusInWarehouse, PaymentStatus: paymentStatusPaid}

	set, err := buildOrderUpdate(req, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set["isPaid"] != true {
		t.Fatalf("expected isPaid=true, got %v", set["isPaid"])
	}
	if set["paidAt"] != now {
		t.Fatalf("expected paidAt=%v, got %v", now, set["paidAt"])
	}
	if set["isDelivered"] != false {
		t.Fatalf("expected isDelivered=false, got %v", set["isDelivered"])
	}
	if _, ok := set["deliveredAt"]; ok {
		t.Fatal("expected no deliveredAt before delivery")
	}
}

func TestBuildOrderUpdateDeliveredSetsDeliveryFields(t *testing.T) {
	now := time.Now()
	req := updateOrderRequest{Status: models.StatusDelivered, PaymentStatus: paymentStatusUnpaid}

	set, err := buildOrderUpdate(req, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set["isDelivered"] != true {
		t.Fatalf("expected isDelivered=true, got %v", set["isDelivered"])
	}
	if set["deliveredAt"] != now {
		t.Fatalf("expected deliveredAt=%v, got %v", now, set["deliveredAt"])
	}
}

func TestBuildOrderUpdateRejectsNegativeAmounts(t *testing.T) {
	negative := -1.0
	req := updateOrderRequest{
		Status:        models.StatusPending,
		PaymentStatus: paymentStatusUnpaid,
		Insurance:     &negative,
	}
	if _, err := buildOrderUpdate(req, time.Now()); err == nil {
		t.Fatal("expected error for negative insurance")
	}
}

func TestBuildOrderUpdateFinancialFields(t *testing.T) {
	final := 305.0
	discount := 20.0
	req := updateOrderRequest{
		Status:           models.StatusPreparing,
		PaymentStatus:    paymentStatusUnpaid,
		FinalAmount:      &final,
		Discount:         &discount,
		AirwayBillNumber: "  AWB-778899  ",
	}

	set, err := buildOrderUpdate(req, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set["finalAmount"] != final {
		t.Fatalf("expected finalAmount=%v, got %v", final, set["finalAmount"])
	}
	if set["discount"] != discount {
		t.Fatalf("expected discount=%v, got %v", discount, set["discount"])
	}
	if set["airwayBillNumber"] != "AWB-778899" {
		t.Fatalf("expected trimmed airway bill number, got %v", set["airwayBillNumber"])
	}
	if _, ok := set["insurance"]; ok {
		t.Fatal("expected omitted insurance to stay unset")
	}
}
