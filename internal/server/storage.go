package server

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	adminapp "github.com/sngm3741/storefinder/api/internal/admin/application"
	"github.com/sngm3741/storefinder/api/internal/config"
	"github.com/sngm3741/storefinder/api/internal/infrastructure/memory"
	mongodoc "github.com/sngm3741/storefinder/api/internal/infrastructure/mongo"
	publicapp "github.com/sngm3741/storefinder/api/internal/public/application"
	"github.com/sngm3741/storefinder/api/internal/seed"
)

// Backend は各リポジトリと疎通確認・終了処理をまとめたもの。
type Backend struct {
	Stores      publicapp.StoreRepository
	Reviews     publicapp.ReviewRepository
	Users       publicapp.UserRepository
	AdminStores adminapp.StoreRepository
	Ping        func(ctx context.Context) error
	Close       func(ctx context.Context) error
}

// MemoryBackend はプロセス内メモリの DB を Backend として公開する。
func MemoryBackend(db *memory.DB) *Backend {
	return &Backend{
		Stores:      db.Stores(),
		Reviews:     db.Reviews(),
		Users:       db.Users(),
		AdminStores: db.AdminStores(),
		Ping:        db.Ping,
		Close:       func(context.Context) error { return nil },
	}
}

// ConnectMongo は MongoDB に接続し、インデックスを用意した上で Backend を返す。
func ConnectMongo(ctx context.Context, cfg config.MongoConfig, logger *zap.Logger) (*Backend, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	clientOptions := options.Client().ApplyURI(cfg.URI).SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))
	client, err := mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("MongoDB 接続に失敗しました: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("MongoDB への疎通確認に失敗しました: %w", err)
	}

	db := client.Database(cfg.Database)
	if err := mongodoc.EnsureIndexes(connectCtx, db, mongodoc.Collections{
		Stores:  cfg.StoreCollection,
		Reviews: cfg.ReviewCollection,
		Users:   cfg.UserCollection,
	}); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	logger.Info("MongoDB に接続しました", zap.String("database", cfg.Database))

	return &Backend{
		Stores:      mongodoc.NewStoreRepository(db, cfg.StoreCollection),
		Reviews:     mongodoc.NewReviewRepository(db, cfg.ReviewCollection),
		Users:       mongodoc.NewUserRepository(db, cfg.UserCollection),
		AdminStores: mongodoc.NewAdminStoreRepository(db, cfg.StoreCollection),
		Ping: func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		},
		Close: client.Disconnect,
	}, nil
}

// OpenBackend は設定されたストレージドライバーに応じて Backend を生成する。
func OpenBackend(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Backend, error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		logger.Warn("メモリストレージで起動します。再起動するとデータは失われます")
		db := memory.New()
		seed.Generate(seed.DefaultOptions()).LoadMemory(db)
		return MemoryBackend(db), nil
	case config.DriverMongo:
		return ConnectMongo(ctx, cfg.Mongo, logger)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
