package model

import (
	"cookbook/internal/domain/repository"
	"cookbook/internal/errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParseID converts a hex id into an ObjectID, reporting repository.ErrInvalidID on bad input.
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, errors.Wrapf(repository.ErrInvalidID, "%q", id)
	}

	return oid, nil
}

// ParseIDs converts hex ids and silently drops malformed ones.
func ParseIDs(ids []string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			out = append(out, oid)
		}
	}

	return out
}
