package db

import (
	"context"

	"github.com/babylonchain/restaking-ledger-service/internal/db/model"
	"github.com/babylonchain/restaking-ledger-service/internal/ledger"
)

func (db *Database) InsertConsumerChain(ctx context.Context, chain *ledger.ConsumerChain) error {
	client := db.collection(model.ConsumerChainCollection)
	_, err := client.InsertOne(ctx, model.NewConsumerChainDocument(chain))
	if err != nil {
		return duplicateKeyError(err, chain.ConsumerChainId, "Consumer chain already registered")
	}
	return nil
}

func (db *Database) FindConsumerChain(ctx context.Context, chainId string) (*ledger.ConsumerChain, error) {
	client := db.collection(model.ConsumerChainCollection)
	doc, err := findOne[model.ConsumerChainDocument](ctx, client, chainId, "consumer chain")
	if err != nil {
		return nil, err
	}
	return doc.ToConsumerChain(), nil
}

func (db *Database) FindConsumerChains(
	ctx context.Context, paginationToken string,
) (*DbResultMap[*ledger.ConsumerChain], error) {
	client := db.collection(model.ConsumerChainCollection)
	page, err := findPage(ctx, db, client, paginationToken, func(d model.ConsumerChainDocument) string {
		return d.ConsumerChainId
	})
	if err != nil {
		return nil, err
	}
	return mapResult(page, func(d model.ConsumerChainDocument) *ledger.ConsumerChain {
		return d.ToConsumerChain()
	}), nil
}

func (db *Database) SaveConsumerChain(ctx context.Context, chain *ledger.ConsumerChain) error {
	client := db.collection(model.ConsumerChainCollection)
	return replaceOne(ctx, client, chain.ConsumerChainId, model.NewConsumerChainDocument(chain))
}
