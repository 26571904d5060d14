package mongodb

import (
	"cookbook/internal/errors"

	"go.mongodb.org/mongo-driver/mongo"
)

func isDuplicateKey(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}

func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}
