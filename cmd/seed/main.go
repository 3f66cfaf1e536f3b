package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/sngm3741/storefinder/api/internal/config"
	mongodoc "github.com/sngm3741/storefinder/api/internal/infrastructure/mongo"
	"github.com/sngm3741/storefinder/api/internal/logger"
	"github.com/sngm3741/storefinder/api/internal/seed"
)

type seedOptions struct {
	storeCount      int
	userCount       int
	reviewCount     int
	dropCollections bool
	randomSeed      int64
}

func main() {
	opts := parseFlags()

	cfg, err := config.LoadMongo()
	if err != nil {
		log.Fatalf("設定の読み込みに失敗しました: %v", err)
	}
	zl, err := logger.New(cfg.Env, cfg.Log.Level)
	if err != nil {
		log.Fatalf("ロガーの初期化に失敗しました: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		zl.Fatal("MongoDB 接続に失敗しました", zap.Error(err))
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	genOpts := seed.DefaultOptions()
	genOpts.Stores = opts.storeCount
	genOpts.Users = opts.userCount
	genOpts.Reviews = opts.reviewCount
	genOpts.RandomSeed = opts.randomSeed
	dataset := seed.Generate(genOpts)

	names := mongodoc.Collections{
		Stores:  cfg.Mongo.StoreCollection,
		Reviews: cfg.Mongo.ReviewCollection,
		Users:   cfg.Mongo.UserCollection,
	}
	db := client.Database(cfg.Mongo.Database)
	if err := mongodoc.WriteDataset(ctx, db, names, dataset.Stores, dataset.Reviews, dataset.Users, opts.dropCollections); err != nil {
		zl.Fatal("Seed に失敗しました", zap.Error(err))
	}

	zl.Info("Seed 完了",
		zap.Int("stores", len(dataset.Stores)),
		zap.Int("reviews", len(dataset.Reviews)),
		zap.Int("users", len(dataset.Users)),
		zap.String("database", cfg.Mongo.Database),
		zap.Bool("dropped", opts.dropCollections),
	)
	for _, u := range dataset.Users {
		zl.Info("seed user", zap.String("id", u.ID))
	}
}

func parseFlags() seedOptions {
	defaults := seed.DefaultOptions()
	var opts seedOptions
	flag.IntVar(&opts.storeCount, "stores", defaults.Stores, "生成する店舗数")
	flag.IntVar(&opts.userCount, "users", defaults.Users, "生成するユーザー数")
	flag.IntVar(&opts.reviewCount, "reviews", defaults.Reviews, "生成するレビュー総数")
	flag.BoolVar(&opts.dropCollections, "drop", true, "既存コレクションを削除してから投入する")
	flag.Int64Var(&opts.randomSeed, "seed", defaults.RandomSeed, "乱数シード（再現用）")
	flag.Parse()

	if opts.storeCount <= 0 {
		log.Fatal("stores は 1 以上を指定してください")
	}
	if opts.userCount < 0 || opts.reviewCount < 0 {
		log.Fatal("users / reviews は 0 以上を指定してください")
	}
	return opts
}
