package mongostore

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"example.com/shopfront/internal/apperr"
)

// mapError translates a driver error. Duplicate keys become conflict,
// missing documents become notFound, anything else is infrastructure.
func mapError(err error, notFound, conflict error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments) && notFound != nil:
		return notFound
	case conflict != nil && mongo.IsDuplicateKeyError(err):
		return conflict
	default:
		return apperr.Infra(err)
	}
}

// parseID turns a hex id into an ObjectID. Ids that are not valid hex can
// never match a stored document.
func parseID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}
