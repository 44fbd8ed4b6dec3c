package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/babylonchain/restaking-ledger-service/internal/db/model"
	"github.com/babylonchain/restaking-ledger-service/internal/ledger"
)

func (db *Database) FindStakingPool(ctx context.Context, poolId string) (*ledger.StakingPool, error) {
	client := db.collection(model.StakingPoolCollection)
	doc, err := findOne[model.StakingPoolDocument](ctx, client, poolId, "staking pool")
	if err != nil {
		return nil, err
	}
	return doc.ToStakingPool(), nil
}

func (db *Database) FindStakingPools(
	ctx context.Context, paginationToken string,
) (*DbResultMap[*ledger.StakingPool], error) {
	client := db.collection(model.StakingPoolCollection)
	page, err := findPage(ctx, db, client, paginationToken, func(d model.StakingPoolDocument) string {
		return d.PoolId
	})
	if err != nil {
		return nil, err
	}
	return mapResult(page, func(d model.StakingPoolDocument) *ledger.StakingPool {
		return d.ToStakingPool()
	}), nil
}

// SaveStakingPool upserts the whole pool record, including its lock flag
func (db *Database) SaveStakingPool(ctx context.Context, pool *ledger.StakingPool) error {
	client := db.collection(model.StakingPoolCollection)
	return replaceOne(ctx, client, pool.PoolId, model.NewStakingPoolDocument(pool))
}

func (db *Database) DeleteStakingPool(ctx context.Context, poolId string) error {
	client := db.collection(model.StakingPoolCollection)
	result, err := client.DeleteOne(ctx, bson.M{"_id": poolId})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return &NotFoundError{
			Key:     poolId,
			Message: "Staking pool not found",
		}
	}
	return nil
}
