package model

import (
	"context"
	"fmt"
	"time"

	"github.com/babylonchain/restaking-ledger-service/internal/config"
	"github.com/rs/zerolog/log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	StakingPoolCollection       = "staking_pools"
	StakerCollection            = "stakers"
	ConsumerChainCollection     = "consumer_chains"
	PendingWithdrawalCollection = "pending_withdrawals"
	SlashCollection             = "slashes"
	AccountCollection           = "accounts"
	CounterCollection           = "counters"
	UnpublishedEventCollection  = "unpublished_events"
)

// Keys keep their order, compound indexes depend on it
type index struct {
	Keys   bson.D
	Unique bool
}

var collections = map[string][]index{
	StakingPoolCollection: {{Keys: bson.D{}}},
	StakerCollection: {
		{Keys: bson.D{{Key: "bonding_chain_ids", Value: 1}}, Unique: false},
		{Keys: bson.D{{Key: "select_staking_pool", Value: 1}}, Unique: false},
	},
	ConsumerChainCollection: {{Keys: bson.D{{Key: "status", Value: 1}}, Unique: false}},
	PendingWithdrawalCollection: {
		{Keys: bson.D{{Key: "owner", Value: 1}, {Key: "unlock_time", Value: 1}, {Key: "_id", Value: 1}}, Unique: false},
	},
	SlashCollection:            {{Keys: bson.D{{Key: "consumer_chain_id", Value: 1}}, Unique: false}},
	AccountCollection:          {{Keys: bson.D{}}},
	CounterCollection:          {{Keys: bson.D{}}},
	UnpublishedEventCollection: {{Keys: bson.D{{Key: "sequence", Value: 1}}, Unique: false}},
}

func Setup(ctx context.Context, cfg *config.Config) error {
	if cfg.Db.Type == config.MemoryDbType {
		log.Info().Msg("In-memory store selected, skipping collection setup.")
		return nil
	}

	clientOps := options.Client().ApplyURI(cfg.Db.Address)
	client, err := mongo.Connect(ctx, clientOps)
	if err != nil {
		return err
	}

	// Create a context with timeout.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Access a database and create collections.
	database := client.Database(cfg.Db.DbName)

	// Create collections.
	for collection := range collections {
		createCollection(ctx, database, collection)
	}

	for name, idxs := range collections {
		for _, idx := range idxs {
			createIndex(ctx, database, name, idx)
		}
	}

	log.Info().Msg("Collections and Indexes created successfully.")
	return nil
}

func createCollection(ctx context.Context, database *mongo.Database, collectionName string) {
	// Check if the collection already exists.
	if _, err := database.Collection(collectionName).Indexes().CreateOne(ctx, mongo.IndexModel{}); err != nil {
		log.Debug().Msg(fmt.Sprintf("Collection maybe already exists: %s, skip the rest. info: %s", collectionName, err))
		return
	}

	// Create the collection.
	if err := database.CreateCollection(ctx, collectionName); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("Failed to create collection: " + collectionName)
		return
	}

	log.Debug().Msg("Collection created successfully: " + collectionName)
}

func createIndex(ctx context.Context, database *mongo.Database, collectionName string, idx index) {
	if len(idx.Keys) == 0 {
		return
	}

	index := mongo.IndexModel{
		Keys:    idx.Keys,
		Options: options.Index().SetUnique(idx.Unique),
	}

	if _, err := database.Collection(collectionName).Indexes().CreateOne(ctx, index); err != nil {
		log.Debug().Msg(fmt.Sprintf("Failed to create index on collection '%s': %v", collectionName, err))
		return
	}

	log.Debug().Msg("Index created successfully on collection: " + collectionName)
}
