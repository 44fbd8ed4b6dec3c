package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/babylonchain/restaking-ledger-service/internal/db/model"
)

func (db *Database) SaveUnpublishedEvent(ctx context.Context, sequence uint64, eventBody string) error {
	client := db.collection(model.UnpublishedEventCollection)
	_, err := client.InsertOne(ctx, model.NewUnpublishedEventDocument(sequence, eventBody))
	return err
}

func (db *Database) TakeUnpublishedEvents(ctx context.Context, limit int64) ([]UnpublishedEvent, error) {
	client := db.collection(model.UnpublishedEventCollection)
	opts := options.Find().SetSort(bson.M{"sequence": 1}).SetLimit(limit)
	cursor, err := client.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []model.UnpublishedEventDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	events := make([]UnpublishedEvent, 0, len(docs))
	for _, doc := range docs {
		if _, err := client.DeleteOne(ctx, bson.M{"_id": doc.Id}); err != nil {
			return events, err
		}
		events = append(events, UnpublishedEvent{Sequence: doc.Sequence, EventBody: doc.EventBody})
	}
	return events, nil
}
