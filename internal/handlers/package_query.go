package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/models"
)

const (
	filterAll            = "all"
	filterPreviousOrders = "previous-orders"
)

// buildPackageFilter assembles the packages query. A search term matches
// case-insensitively against tracking number, description and vendor, plus
// any order whose display name matched (pre-resolved to matchingOrderIDs).
// A known status filter narrows to that status; anything else adds nothing.
func buildPackageFilter(userID *primitive.ObjectID, search, filter string, matchingOrderIDs []primitive.ObjectID) bson.M {
	query := bson.M{}

	if userID != nil {
		query["userId"] = *userID
	}

	if search = strings.TrimSpace(search); search != "" {
		or := []bson.M{
			{"trackingNumber": bson.M{"$regex": search, "$options": "i"}},
			{"description": bson.M{"$regex": search, "$options": "i"}},
			{"vendor": bson.M{"$regex": search, "$options": "i"}},
		}
		if len(matchingOrderIDs) > 0 {
			or = append(or, bson.M{"orderId": bson.M{"$in": matchingOrderIDs}})
		}
		query["$or"] = or
	}

	if models.IsValidStatus(filter) {
		query["status"] = filter
	}

	return query
}

// packageSort picks the listing order: previous-orders browses oldest-first,
// everything else newest-first.
func packageSort(filter string) bson.D {
	if filter == filterPreviousOrders {
		return bson.D{{Key: "createdAt", Value: 1}}
	}
	return bson.D{{Key: "createdAt", Value: -1}}
}

type packageListItem struct {
	ID             string          `json:"id"`
	TrackingNumber string          `json:"trackingNumber"`
	Description    string          `json:"description,omitempty"`
	Value          string          `json:"value"`
	Vendor         string          `json:"vendor"`
	Status         string          `json:"status"`
	FinalAmount    float64         `json:"finalAmount,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	OrderID        string          `json:"orderId,omitempty"`
	OrderName      string          `json:"orderName,omitempty"`
	PaymentStatus  string          `json:"paymentStatus,omitempty"`
	Address        *models.Address `json:"address"`
}

// GetUserPackages lists the authenticated user's packages with order-name and
// address enrichment.
func GetUserPackages(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /user/packages"
		defer handlePanic(c, route)

		clerkID, ok := clerkIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"clerkId": clerkID}).Decode(&user); err != nil {
			respondWithError(c, http.StatusNotFound, route, "user not found")
			return
		}

		listPackages(c, db, route, &user.ID)
	}
}

// GetAllPackages is the admin listing across all users.
func GetAllPackages(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/packages"
		defer handlePanic(c, route)

		listPackages(c, db, route, nil)
	}
}

func listPackages(c *gin.Context, db *mongo.Database, route string, userID *primitive.ObjectID) {
	page, pageSize, err := parsePaginationParams(c.Query("page"), c.Query("pageSize"))
	if err != nil {
		respondWithError(c, http.StatusBadRequest, route, "invalid pagination params")
		return
	}

	search := strings.TrimSpace(c.Query("search"))
	filter := strings.TrimSpace(c.Query("filter"))

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var matchingOrderIDs []primitive.ObjectID
	if search != "" {
		orderFilter := bson.M{"name": bson.M{"$regex": search, "$options": "i"}}
		if userID != nil {
			orderFilter["user"] = *userID
		}
		matchingOrderIDs, err = findOrderIDs(ctx, db, orderFilter)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "retrieval failed")
			return
		}
	}

	query := buildPackageFilter(userID, search, filter, matchingOrderIDs)
	skip := paginationSkip(page, pageSize)

	total, err := db.Collection("packages").CountDocuments(ctx, query)
	if err != nil {
		respondWithError(c, http.StatusInternalServerError, route, "retrieval failed")
		return
	}

	findOptions := options.Find().
		SetSort(packageSort(filter)).
		SetSkip(skip).
		SetLimit(pageSize)

	cursor, err := db.Collection("packages").Find(ctx, query, findOptions)
	if err != nil {
		respondWithError(c, http.StatusInternalServerError, route, "retrieval failed")
		return
	}
	defer cursor.Close(ctx)

	packages := make([]models.Package, 0, pageSize)
	if err := cursor.All(ctx, &packages); err != nil {
		respondWithError(c, http.StatusInternalServerError, route, "retrieval failed")
		return
	}

	items, err := enrichPackages(ctx, db, packages)
	if err != nil {
		respondWithError(c, http.StatusInternalServerError, route, "retrieval failed")
		return
	}

	log.Printf("[%s] returning %d of %d packages", route, len(items), total)
	c.JSON(http.StatusOK, gin.H{
		"data":    items,
		"hasNext": hasNextPage(total, skip, len(items)),
		"pagination": gin.H{
			"page":     page,
			"pageSize": pageSize,
			"total":    total,
		},
	})
}

func findOrderIDs(ctx context.Context, db *mongo.Database, filter bson.M) ([]primitive.ObjectID, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cursor, err := db.Collection("orders").Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	ids := make([]primitive.ObjectID, 0)
	for cursor.Next(ctx) {
		var doc struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		ids = append(ids, doc.ID)
	}
	return ids, cursor.Err()
}

// enrichPackages joins each page of packages against its owning orders and
// their delivery addresses. An unresolved address stays null rather than
// failing the listing.
func enrichPackages(ctx context.Context, db *mongo.Database, packages []models.Package) ([]packageListItem, error) {
	orderIDs := make([]primitive.ObjectID, 0, len(packages))
	seen := make(map[primitive.ObjectID]struct{}, len(packages))
	for _, pkg := range packages {
		if pkg.OrderID.IsZero() {
			continue
		}
		if _, ok := seen[pkg.OrderID]; ok {
			continue
		}
		seen[pkg.OrderID] = struct{}{}
		orderIDs = append(orderIDs, pkg.OrderID)
	}

	orderByID := make(map[primitive.ObjectID]models.Order, len(orderIDs))
	addressByID := make(map[primitive.ObjectID]models.Address)

	if len(orderIDs) > 0 {
		cursor, err := db.Collection("orders").Find(ctx, bson.M{"_id": bson.M{"$in": orderIDs}})
		if err != nil {
			return nil, err
		}
		var orders []models.Order
		if err := cursor.All(ctx, &orders); err != nil {
			return nil, err
		}

		addressIDs := make([]primitive.ObjectID, 0, len(orders))
		for _, order := range orders {
			orderByID[order.ID] = order
			if !order.Address.IsZero() {
				addressIDs = append(addressIDs, order.Address)
			}
		}

		if len(addressIDs) > 0 {
			addrCursor, err := db.Collection("addresses").Find(ctx, bson.M{"_id": bson.M{"$in": addressIDs}})
			if err != nil {
				return nil, err
			}
			var addresses []models.Address
			if err := addrCursor.All(ctx, &addresses); err != nil {
				return nil, err
			}
			for _, address := range addresses {
				addressByID[address.ID] = address
			}
		}
	}

	items := make([]packageListItem, 0, len(packages))
	for _, pkg := range packages {
		item := packageListItem{
			ID:             pkg.ID.Hex(),
			TrackingNumber: pkg.TrackingNumber,
			Description:    pkg.Description,
			Value:          pkg.Value,
			Vendor:         pkg.Vendor,
			Status:         pkg.Status,
			FinalAmount:    pkg.FinalAmount,
			CreatedAt:      pkg.CreatedAt,
		}
		if order, ok := orderByID[pkg.OrderID]; ok {
			item.OrderID = order.ID.Hex()
			item.OrderName = order.Name
			item.PaymentStatus = order.PaymentStatus
			if address, ok := addressByID[order.Address]; ok {
				item.Address = &address
			}
		}
		items = append(items, item)
	}

	return items, nil
}
