package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"github.com/sngm3741/storefinder/api/internal/config"
	"github.com/sngm3741/storefinder/api/internal/logger"
	"github.com/sngm3741/storefinder/api/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	zl, err := logger.New(cfg.Env, cfg.Log.Level)
	if err != nil {
		log.Fatalf("ロガーの初期化に失敗しました: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	backend, err := server.OpenBackend(context.Background(), cfg, zl)
	if err != nil {
		zl.Fatal("ストレージの初期化に失敗しました", zap.Error(err))
	}

	app := server.New(cfg, zl, backend)
	if err := app.Run(); err != nil {
		zl.Fatal("サーバー起動に失敗", zap.Error(err))
	}
}
