package mongostore

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	domproduct "example.com/shopfront/internal/domain/product"
)

var sortFields = map[domproduct.SortField]string{
	domproduct.SortByPrice:     "price",
	domproduct.SortByTitle:     "title",
	domproduct.SortByCreatedAt: "createdAt",
	domproduct.SortByUpdatedAt: "updatedAt",
}

// productFilter translates q into a filter document. Predicates are ANDed
// by sitting side by side; the text search is a single $or.
func productFilter(q domproduct.Query) bson.D {
	filter := bson.D{}

	if q.OnlyActive {
		filter = append(filter, bson.E{Key: "isActive", Value: true})
	}
	if q.MerchantID != "" {
		// An unparseable id maps to the nil ObjectID, which no product has.
		merchant, _ := parseID(q.MerchantID)
		filter = append(filter, bson.E{Key: "merchant", Value: merchant})
	}
	if q.Category != "" {
		filter = append(filter, bson.E{Key: "category", Value: q.Category})
	}

	price := bson.D{}
	if q.MinPrice != nil {
		price = append(price, bson.E{Key: "$gte", Value: *q.MinPrice})
	}
	if q.MaxPrice != nil {
		price = append(price, bson.E{Key: "$lte", Value: *q.MaxPrice})
	}
	if len(price) > 0 {
		filter = append(filter, bson.E{Key: "price", Value: price})
	}

	if q.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}
		filter = append(filter, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "title", Value: pattern}},
			bson.D{{Key: "description", Value: pattern}},
			bson.D{{Key: "category", Value: pattern}},
		}})
	}
	return filter
}

// productSort orders by the requested field and then by _id ascending.
func productSort(s domproduct.Sort) bson.D {
	field, ok := sortFields[s.Field]
	if !ok {
		field = "createdAt"
	}
	dir := -1
	if s.Direction == domproduct.Ascending {
		dir = 1
	}
	return bson.D{{Key: field, Value: dir}, {Key: "_id", Value: 1}}
}
