package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/babylonchain/restaking-ledger-service/internal/config"
	"github.com/babylonchain/restaking-ledger-service/internal/db/model"
)

type Database struct {
	DbName string
	Client *mongo.Client
	cfg    config.DbConfig
}

type DbResultMap[T any] struct {
	Data            []T    `json:"data"`
	PaginationToken string `json:"paginationToken"`
}

// New returns the store selected by cfg.Type
func New(ctx context.Context, cfg config.DbConfig) (DBClient, error) {
	if cfg.Type == config.MemoryDbType {
		return NewMemoryDatabase(cfg), nil
	}
	return NewMongoDatabase(ctx, cfg)
}

func NewMongoDatabase(ctx context.Context, cfg config.DbConfig) (*Database, error) {
	clientOps := options.Client().ApplyURI(cfg.Address)
	client, err := mongo.Connect(ctx, clientOps)
	if err != nil {
		return nil, err
	}

	return &Database{
		DbName: cfg.DbName,
		Client: client,
		cfg:    cfg,
	}, nil
}

func (db *Database) Ping(ctx context.Context) error {
	err := db.Client.Ping(ctx, nil)
	if err != nil {
		return err
	}
	return nil
}

// RunInTransaction joins the session already carried by ctx, if any.
func (db *Database) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if mongo.SessionFromContext(ctx) != nil {
		return fn(ctx)
	}
	_, err := TxWithRetries(ctx, &dbTransactionClient{db.Client}, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, fn(sessCtx)
	})
	return err
}

func (db *Database) collection(name string) *mongo.Collection {
	return db.Client.Database(db.DbName).Collection(name)
}

// findOne decodes a single document by id, mapping a miss to NotFoundError
func findOne[T any](ctx context.Context, c *mongo.Collection, id interface{}, what string) (*T, error) {
	var doc T
	err := c.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, &NotFoundError{
				Key:     fmt.Sprintf("%v", id),
				Message: fmt.Sprintf("%s %v not found", what, id),
			}
		}
		return nil, err
	}
	return &doc, nil
}

func replaceOne(ctx context.Context, c *mongo.Collection, id interface{}, doc interface{}) error {
	_, err := c.ReplaceOne(ctx, bson.M{"_id": id}, doc, options.Replace().SetUpsert(true))
	return err
}

// findPage lists documents ordered by id after the pagination token
func findPage[T any](
	ctx context.Context, db *Database, c *mongo.Collection, paginationToken string, idOf func(T) string,
) (*DbResultMap[T], error) {
	filter := bson.M{}
	if paginationToken != "" {
		decoded, err := model.DecodePaginationToken[model.IdPagination](paginationToken)
		if err != nil {
			return nil, &InvalidPaginationTokenError{
				Message: "Invalid pagination token",
			}
		}
		filter = bson.M{"_id": bson.M{"$gt": decoded.Id}}
	}
	opts := options.Find().SetSort(bson.M{"_id": 1}).SetLimit(db.cfg.MaxPaginationLimit)

	cursor, err := c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []T
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return toResultMapWithPaginationToken(db.cfg, docs, func(d T) (string, error) {
		return model.BuildIdPaginationToken(idOf(d))
	})
}

// This function is used to build the result map with pagination token
// It will return the result map with pagination token if the result length is equal to the fetch limit
// Otherwise it will return the result map without pagination token. i.e pagination token will be empty string
func toResultMapWithPaginationToken[T any](cfg config.DbConfig, result []T, paginationKeyBuilder func(T) (string, error)) (*DbResultMap[T], error) {
	if len(result) > 0 && len(result) == int(cfg.MaxPaginationLimit) {
		paginationToken, err := paginationKeyBuilder(result[len(result)-1])
		if err != nil {
			return nil, err
		}
		return &DbResultMap[T]{
			Data:            result,
			PaginationToken: paginationToken,
		}, nil

	}

	return &DbResultMap[T]{
		Data:            result,
		PaginationToken: "",
	}, nil
}

// mapResult converts the documents of a page, keeping its token
func mapResult[D any, T any](page *DbResultMap[D], convert func(D) T) *DbResultMap[T] {
	data := make([]T, 0, len(page.Data))
	for _, d := range page.Data {
		data = append(data, convert(d))
	}
	return &DbResultMap[T]{Data: data, PaginationToken: page.PaginationToken}
}
