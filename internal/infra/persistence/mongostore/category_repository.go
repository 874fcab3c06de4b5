package mongostore

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domcategory "example.com/shopfront/internal/domain/category"
)

type CategoryRepository struct {
	s    *Store
	coll *mongo.Collection
}

func (r *CategoryRepository) Create(ctx context.Context, c *domcategory.Category) (*domcategory.Category, error) {
	ctx, cancel := r.s.withTimeout(ctx)
	defer cancel()

	doc := newCategoryDocument(c)
	doc.ID = primitive.NewObjectID()
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, mapError(err, nil, domcategory.ErrCategoryNameExists)
	}
	return doc.toDomain(), nil
}

func (r *CategoryRepository) Update(ctx context.Context, c *domcategory.Category) (*domcategory.Category, error) {
	oid, ok := parseID(c.ID)
	if !ok {
		return nil, domcategory.ErrCategoryNotFound
	}

	ctx, cancel := r.s.withTimeout(ctx)
	defer cancel()

	doc := newCategoryDocument(c)
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: doc.Name},
		{Key: "nameKey", Value: doc.NameKey},
		{Key: "subcategories", Value: doc.Subcategories},
		{Key: "updatedAt", Value: doc.UpdatedAt},
	}}}

	var updated categoryDocument
	err := r.coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: oid}}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		return nil, mapError(err, domcategory.ErrCategoryNotFound, domcategory.ErrCategoryNameExists)
	}
	return updated.toDomain(), nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	oid, ok := parseID(id)
	if !ok {
		return domcategory.ErrCategoryNotFound
	}

	ctx, cancel := r.s.withTimeout(ctx)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return mapError(err, nil, nil)
	}
	if res.DeletedCount == 0 {
		return domcategory.ErrCategoryNotFound
	}
	return nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*domcategory.Category, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, domcategory.ErrCategoryNotFound
	}

	ctx, cancel := r.s.withTimeout(ctx)
	defer cancel()

	var doc categoryDocument
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		return nil, mapError(err, domcategory.ErrCategoryNotFound, nil)
	}
	return doc.toDomain(), nil
}

func (r *CategoryRepository) FindByName(ctx context.Context, name string, excludeID string) (*domcategory.Category, error) {
	filter := bson.D{{Key: "nameKey", Value: domcategory.NameKey(name)}}
	if oid, ok := parseID(excludeID); ok {
		filter = append(filter, bson.E{Key: "_id", Value: bson.D{{Key: "$ne", Value: oid}}})
	}

	ctx, cancel := r.s.withTimeout(ctx)
	defer cancel()

	var doc categoryDocument
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError(err, nil, nil)
	}
	return doc.toDomain(), nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]*domcategory.Category, error) {
	ctx, cancel := r.s.withTimeout(ctx)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.D{},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, mapError(err, nil, nil)
	}

	var docs []categoryDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, mapError(err, nil, nil)
	}

	categories := make([]*domcategory.Category, 0, len(docs))
	for _, d := range docs {
		categories = append(categories, d.toDomain())
	}
	return categories, nil
}
