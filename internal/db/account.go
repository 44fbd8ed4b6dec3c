package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/babylonchain/restaking-ledger-service/internal/db/model"
)

func (db *Database) RegisterAccount(ctx context.Context, accountId string, registeredAt time.Time) error {
	client := db.collection(model.AccountCollection)
	_, err := client.InsertOne(ctx, model.NewAccountDocument(accountId, registeredAt))
	if err != nil {
		return duplicateKeyError(err, accountId, "Account already registered")
	}
	return nil
}

func (db *Database) IsAccountRegistered(ctx context.Context, accountId string) (bool, error) {
	client := db.collection(model.AccountCollection)
	count, err := client.CountDocuments(ctx, bson.M{"_id": accountId})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
