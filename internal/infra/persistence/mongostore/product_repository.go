package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domproduct "example.com/shopfront/internal/domain/product"
)

type ProductRepository struct {
	s    *Store
	coll *mongo.Collection
}

func (r *ProductRepository) Create(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	ctx, cancel := r.s.withTimeout(ctx)
	defer cancel()

	doc := newProductDocument(p)
	doc.ID = primitive.NewObjectID()
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, mapError(err, nil, nil)
	}
	return doc.toDomain(), nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domproduct.Product, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, domproduct.ErrProductNotFound
	}

	ctx, cancel := r.s.withTimeout(ctx)
	defer cancel()

	var doc productDocument
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		return nil, mapError(err, domproduct.ErrProductNotFound, nil)
	}
	return doc.toDomain(), nil
}

// Update sets every mutable field. merchant and createdAt are left alone.
func (r *ProductRepository) Update(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	oid, ok := parseID(p.ID)
	if !ok {
		return nil, domproduct.ErrProductNotFound
	}

	ctx, cancel := r.s.withTimeout(ctx)
	defer cancel()

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "title", Value: p.Title},
		{Key: "description", Value: p.Description},
		{Key: "price", Value: p.Price},
		{Key: "category", Value: p.Category},
		{Key: "isActive", Value: p.IsActive},
		{Key: "updatedAt", Value: bsonTime(p.UpdatedAt)},
	}}}

	var updated productDocument
	err := r.coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: oid}}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		return nil, mapError(err, domproduct.ErrProductNotFound, nil)
	}
	return updated.toDomain(), nil
}

func (r *ProductRepository) Find(ctx context.Context, opts domproduct.FindOptions) (*domproduct.PageResult, error) {
	ctx, cancel := r.s.withTimeout(ctx)
	defer cancel()

	filter := productFilter(opts.Query)

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, mapError(err, nil, nil)
	}

	findOpts := options.Find().
		SetSort(productSort(opts.Sort)).
		SetSkip(int64(opts.Page.Offset())).
		SetLimit(int64(opts.Page.Limit))

	cur, err := r.coll.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, mapError(err, nil, nil)
	}

	var docs []productDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, mapError(err, nil, nil)
	}

	items := make([]*domproduct.Product, 0, len(docs))
	for _, d := range docs {
		items = append(items, d.toDomain())
	}
	return &domproduct.PageResult{
		Items:      items,
		Pagination: domproduct.NewPagination(opts.Page, total),
	}, nil
}

func (r *ProductRepository) Count(ctx context.Context, q domproduct.Query) (int64, error) {
	ctx, cancel := r.s.withTimeout(ctx)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, productFilter(q))
	if err != nil {
		return 0, mapError(err, nil, nil)
	}
	return n, nil
}

func (r *ProductRepository) aggregate(ctx context.Context, pipeline mongo.Pipeline, out any) error {
	ctx, cancel := r.s.withTimeout(ctx)
	defer cancel()

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return mapError(err, nil, nil)
	}
	if err := cur.All(ctx, out); err != nil {
		return mapError(err, nil, nil)
	}
	return nil
}

func (r *ProductRepository) PriceRange(ctx context.Context) (domproduct.PriceRange, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: productFilter(domproduct.Query{OnlyActive: true})}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "min", Value: bson.D{{Key: "$min", Value: "$price"}}},
			{Key: "max", Value: bson.D{{Key: "$max", Value: "$price"}}},
		}}},
	}

	var rows []struct {
		Min float64 `bson:"min"`
		Max float64 `bson:"max"`
	}
	if err := r.aggregate(ctx, pipeline, &rows); err != nil {
		return domproduct.PriceRange{}, err
	}
	if len(rows) == 0 {
		return domproduct.PriceRange{}, nil
	}
	return domproduct.PriceRange{Min: rows[0].Min, Max: rows[0].Max}, nil
}

func (r *ProductRepository) CategoryStats(ctx context.Context, merchantID string) ([]domproduct.CategoryCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: productFilter(domproduct.Query{OnlyActive: true, MerchantID: merchantID})}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$category"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	var rows []struct {
		Category string `bson:"_id"`
		Count    int64  `bson:"count"`
	}
	if err := r.aggregate(ctx, pipeline, &rows); err != nil {
		return nil, err
	}

	stats := make([]domproduct.CategoryCount, 0, len(rows))
	for _, row := range rows {
		stats = append(stats, domproduct.CategoryCount{Category: row.Category, Count: row.Count})
	}
	return stats, nil
}

func (r *ProductRepository) TotalValue(ctx context.Context, merchantID string) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: productFilter(domproduct.Query{OnlyActive: true, MerchantID: merchantID})}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$price"}}},
		}}},
	}

	var rows []struct {
		Total float64 `bson:"total"`
	}
	if err := r.aggregate(ctx, pipeline, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}
