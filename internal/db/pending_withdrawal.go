package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/babylonchain/restaking-ledger-service/internal/db/model"
	"github.com/babylonchain/restaking-ledger-service/internal/ledger"
)

func (db *Database) InsertPendingWithdrawal(ctx context.Context, withdrawal *ledger.PendingWithdrawal) error {
	client := db.collection(model.PendingWithdrawalCollection)
	_, err := client.InsertOne(ctx, model.NewPendingWithdrawalDocument(withdrawal))
	if err != nil {
		return duplicateKeyError(
			err, fmt.Sprintf("%d", withdrawal.WithdrawalCertificate), "Withdrawal certificate already exists",
		)
	}
	return nil
}

func (db *Database) SavePendingWithdrawal(ctx context.Context, withdrawal *ledger.PendingWithdrawal) error {
	client := db.collection(model.PendingWithdrawalCollection)
	return replaceOne(ctx, client, withdrawal.WithdrawalCertificate, model.NewPendingWithdrawalDocument(withdrawal))
}

func (db *Database) DeletePendingWithdrawal(ctx context.Context, certificate uint64) error {
	client := db.collection(model.PendingWithdrawalCollection)
	result, err := client.DeleteOne(ctx, bson.M{"_id": certificate})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return &NotFoundError{
			Key:     fmt.Sprintf("%d", certificate),
			Message: "Pending withdrawal not found",
		}
	}
	return nil
}

func (db *Database) FindPendingWithdrawal(ctx context.Context, certificate uint64) (*ledger.PendingWithdrawal, error) {
	client := db.collection(model.PendingWithdrawalCollection)
	doc, err := findOne[model.PendingWithdrawalDocument](ctx, client, certificate, "pending withdrawal")
	if err != nil {
		return nil, err
	}
	return doc.ToPendingWithdrawal(), nil
}

func (db *Database) FindPendingWithdrawalsByOwner(ctx context.Context, owner string) ([]*ledger.PendingWithdrawal, error) {
	client := db.collection(model.PendingWithdrawalCollection)
	opts := options.Find().SetSort(bson.D{{Key: "unlock_time", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := client.Find(ctx, bson.M{"owner": owner}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []model.PendingWithdrawalDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	withdrawals := make([]*ledger.PendingWithdrawal, 0, len(docs))
	for i := range docs {
		withdrawals = append(withdrawals, docs[i].ToPendingWithdrawal())
	}
	return withdrawals, nil
}
