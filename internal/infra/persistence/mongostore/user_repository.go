package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	domuser "example.com/shopfront/internal/domain/user"
)

type UserRepository struct {
	s    *Store
	coll *mongo.Collection
}

func (r *UserRepository) Create(ctx context.Context, u *domuser.User) (*domuser.User, error) {
	ctx, cancel := r.s.withTimeout(ctx)
	defer cancel()

	doc := newUserDocument(u)
	doc.ID = primitive.NewObjectID()
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, mapError(err, nil, domuser.ErrEmailAlreadyUsed)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.D) (*domuser.User, error) {
	ctx, cancel := r.s.withTimeout(ctx)
	defer cancel()

	var doc userDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, mapError(err, domuser.ErrUserNotFound, nil)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domuser.User, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, domuser.ErrUserNotFound
	}
	return r.findOne(ctx, bson.D{{Key: "_id", Value: oid}})
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domuser.User, error) {
	return r.findOne(ctx, bson.D{{Key: "email", Value: domuser.NormalizeEmail(email)}})
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	ctx, cancel := r.s.withTimeout(ctx)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.D{{Key: "email", Value: domuser.NormalizeEmail(email)}})
	if err != nil {
		return false, mapError(err, nil, nil)
	}
	return n > 0, nil
}

func (r *UserRepository) ListByIDs(ctx context.Context, ids []string) ([]*domuser.User, error) {
	oids := make(bson.A, 0, len(ids))
	for _, id := range ids {
		if oid, ok := parseID(id); ok {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return []*domuser.User{}, nil
	}

	ctx, cancel := r.s.withTimeout(ctx)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: oids}}}})
	if err != nil {
		return nil, mapError(err, nil, nil)
	}

	var docs []userDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, mapError(err, nil, nil)
	}

	users := make([]*domuser.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, d.toDomain())
	}
	return users, nil
}
