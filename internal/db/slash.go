package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/babylonchain/restaking-ledger-service/internal/db/model"
	"github.com/babylonchain/restaking-ledger-service/internal/ledger"
)

func (db *Database) InsertSlash(ctx context.Context, slash *ledger.Slash) error {
	client := db.collection(model.SlashCollection)
	_, err := client.InsertOne(ctx, model.NewSlashDocument(slash))
	if err != nil {
		return duplicateKeyError(err, fmt.Sprintf("%d", slash.SlashId), "Slash already exists")
	}
	return nil
}

func (db *Database) FindSlash(ctx context.Context, slashId uint64) (*ledger.Slash, error) {
	client := db.collection(model.SlashCollection)
	doc, err := findOne[model.SlashDocument](ctx, client, slashId, "slash")
	if err != nil {
		return nil, err
	}
	return doc.ToSlash(), nil
}

func (db *Database) DeleteSlash(ctx context.Context, slashId uint64) error {
	client := db.collection(model.SlashCollection)
	result, err := client.DeleteOne(ctx, bson.M{"_id": slashId})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return &NotFoundError{
			Key:     fmt.Sprintf("%d", slashId),
			Message: "Slash not found",
		}
	}
	return nil
}
