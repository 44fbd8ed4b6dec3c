package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/babylonchain/restaking-ledger-service/internal/db/model"
)

// NextCounterValue increments atomically, creating the counter on first use
func (db *Database) NextCounterValue(ctx context.Context, name string) (uint64, error) {
	client := db.collection(model.CounterCollection)
	filter := bson.M{"_id": name}
	update := bson.M{"$inc": bson.M{"value": int64(1)}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var result model.CounterDocument
	err := client.FindOneAndUpdate(ctx, filter, update, opts).Decode(&result)
	if err != nil {
		return 0, err
	}
	return result.Value, nil
}

func (db *Database) GetCounterValue(ctx context.Context, name string) (uint64, error) {
	client := db.collection(model.CounterCollection)
	var result model.CounterDocument
	err := client.FindOne(ctx, bson.M{"_id": name}).Decode(&result)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return 0, nil
		}
		return 0, err
	}
	return result.Value, nil
}
