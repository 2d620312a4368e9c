package handlers

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestResolveCreationTargetSingleOrderRequiresAddress(t *testing.T) {
	req := createPackageRequest{
		TrackingNumber: "TRK1",
		Description:    "shoes",
		Value:          "120",
		Vendor:         "Amazon",
		Type:           creationSingleOrder,
	}

	if _, err := resolveCreationTarget(req); err == nil {
		t.Fatal("expected error when singleOrder has no address")
	}

	req.Address = "not-a-hex-id"
	if _, err := resolveCreationTarget(req); err == nil {
		t.Fatal("expected error for malformed address id")
	}

	req.Address = primitive.NewObjectID().Hex()
	target, err := resolveCreationTarget(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if target.Type != creationSingleOrder || target.AddressID.IsZero() {
		t.Fatalf("expected resolved singleOrder target, got %+v", target)
	}
}

func TestResolveCreationTargetConsolidationRequiresOrderID(t *testing.T) {
	req := createPackageRequest{
		TrackingNumber: "TRK2",
		Description:    "books",
		Value:          "40",
		Vendor:         "eBay",
		Type:           creationConsolidation,
	}

	if _, err := resolveCreationTarget(req); err == nil {
		t.Fatal("expected error when consolidation has no orderId")
	}

	orderID := primitive.NewObjectID()
	req.OrderID = orderID.Hex()
	target, err := resolveCreationTarget(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if target.OrderID != orderID {
		t.Fatalf("expected order id %s, got %s", orderID.Hex(), target.OrderID.Hex())
	}
}

func TestResolveCreationTargetRejectsUnknownType(t *testing.T) {
	req := createPackageRequest{Type: "bulk"}
	if _, err := resolveCreationTarget(req); err == nil {
		t.Fatal("expected error for unknown creation type")
	}
}
