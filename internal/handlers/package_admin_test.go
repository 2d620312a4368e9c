package handlers

import (
	"testing"
	"time"

	"backend/internal/models"
)

func TestBuildPackageUpdateRejectsUnknownStatus(t *testing.T) {
	req := updatePackageRequest{
		Vendor:         "Amazon",
		TrackingNumber: "TRK1",
		Value:          "120",
		Status:         "lost-in-space",
	}
	if _, err := buildPackageUpdate(req, time.Now()); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestBuildPackageUpdateSetsFields(t *testing.T) {
	price := 305.0
	now := time.Now()
	req := updatePackageRequest{
		Vendor:         " Amazon ",
		TrackingNumber: " TRK1 ",
		Value:          "120",
		Description:    "running shoes",
		ShipmentPrice:  &price,
		Status:         models.StatusInWarehouse,
	}

	set, err := buildPackageUpdate(req, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set["vendor"] != "Amazon" || set["trackingNumber"] != "TRK1" {
		t.Fatalf("expected trimmed vendor and tracking number, got %v / %v", set["vendor"], set["trackingNumber"])
	}
	if set["finalAmount"] != price {
		t.Fatalf("expected finalAmount=%v, got %v", price, set["finalAmount"])
	}
	if set["status"] != models.StatusInWarehouse {
		t.Fatalf("expected status %q, got %v", models.StatusInWarehouse, set["status"])
	}
	if set["updatedAt"] != now {
		t.Fatalf("expected updatedAt=%v, got %v", now, set["updatedAt"])
	}
}

func TestBuildPackageUpdateRejectsNegativePrice(t *testing.T) {
	price := -5.0
	req := updatePackageRequest{
		Vendor:         "Amazon",
		TrackingNumber: "TRK1",
		Value:          "120",
		ShipmentPrice:  &price,
		Status:         models.StatusPending,
	}
	if _, err := buildPackageUpdate(req, time.Now()); err == nil {
		t.Fatal("expected error for negative shipment price")
	}
}

func TestBuildPackageUpdateOmitsPriceWhenAbsent(t *testing.T) {
	req := updatePackageRequest{
		Vendor:         "Amazon",
		TrackingNumber: "TRK1",
		Value:          "120",
		Status:         models.StatusPending,
	}
	set, err := buildPackageUpdate(req, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := set["finalAmount"]; ok {
		t.Fatal("expected finalAmount to stay unset without a shipment price")
	}
}
