package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/babylonchain/restaking-ledger-service/internal/db/model"
	"github.com/babylonchain/restaking-ledger-service/internal/ledger"
)

func (db *Database) FindStaker(ctx context.Context, stakerId string) (*ledger.Staker, error) {
	client := db.collection(model.StakerCollection)
	doc, err := findOne[model.StakerDocument](ctx, client, stakerId, "staker")
	if err != nil {
		return nil, err
	}
	return doc.ToStaker(), nil
}

// FindStakersByIds skips ids without a staker record
func (db *Database) FindStakersByIds(ctx context.Context, stakerIds []string) ([]*ledger.Staker, error) {
	client := db.collection(model.StakerCollection)
	filter := bson.M{"_id": bson.M{"$in": stakerIds}}
	cursor, err := client.Find(ctx, filter, options.Find().SetSort(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []model.StakerDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	stakers := make([]*ledger.Staker, 0, len(docs))
	for i := range docs {
		stakers = append(stakers, docs[i].ToStaker())
	}
	return stakers, nil
}

func (db *Database) SaveStaker(ctx context.Context, staker *ledger.Staker) error {
	client := db.collection(model.StakerCollection)
	return replaceOne(ctx, client, staker.StakerId, model.NewStakerDocument(staker))
}
