package handlers

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"backend/internal/models"
)

func TestBuildPackageFilterScopesToOwner(t *testing.T) {
	userID := primitive.NewObjectID()
	query := buildPackageFilter(&userID, "", "", nil)

	if got := query["userId"]; got != userID {
		t.Fatalf("expected userId scope %v, got %v", userID, got)
	}

	admin := buildPackageFilter(nil, "", "", nil)
	if _, ok := admin["userId"]; ok {
		t.Fatal("expected no userId scope for admin query")
	}
}

func TestBuildPackageFilterSearchSpansFields(t *testing.T) {
	orderID := primitive.NewObjectID()
	query := buildPackageFilter(nil, "TRK", "", []primitive.ObjectID{orderID})

	or, ok := query["$or"].([]bson.M)
	if !ok {
		t.Fatalf("expected $or clause, got %v", query)
	}
	if len(or) != 4 {
		t.Fatalf("expected 4 search branches (3 fields + order names), got %d", len(or))
	}

	regex, ok := or[0]["trackingNumber"].(bson.M)
	if !ok || regex["$options"] != "i" {
		t.Fatalf("expected case-insensitive trackingNumber regex, got %v", or[0])
	}

	// Without matching order names the orderId branch stays out.
	query = buildPackageFilter(nil, "TRK", "", nil)
	or = query["$or"].([]bson.M)
	if len(or) != 3 {
		t.Fatalf("expected 3 search branches without order matches, got %d", len(or))
	}
}

func TestBuildPackageFilterStatusFilter(t *testing.T) {
	query := buildPackageFilter(nil, "", models.StatusInTransit, nil)
	if got := query["status"]; got != models.StatusInTransit {
		t.Fatalf("expected status constraint %q, got %v", models.StatusInTransit, got)
	}
}

func TestBuildPackageFilterUnrecognizedFilterAddsNothing(t *testing.T) {
	for _, filter := range []string{"all", "previous-orders", "bogus", ""} {
		query := buildPackageFilter(nil, "", filter, nil)
		if len(query) != 0 {
			t.Fatalf("expected empty query for filter %q, got %v", filter, query)
		}
	}
}

func TestPackageSortDirection(t *testing.T) {
	newest := packageSort(filterAll)
	if newest[0].Key != "createdAt" || newest[0].Value != -1 {
		t.Fatalf("expected newest-first sort for %q, got %v", filterAll, newest)
	}

	oldest := packageSort(filterPreviousOrders)
	if oldest[0].Key != "createdAt" || oldest[0].Value != 1 {
		t.Fatalf("expected oldest-first sort for %q, got %v", filterPreviousOrders, oldest)
	}

	if fallback := packageSort("bogus"); fallback[0].Value != -1 {
		t.Fatalf("expected newest-first fallback sort, got %v", fallback)
	}
}
