package main

import (
	"context"
	"fmt"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"

	"github.com/vultisig/safe-api-plugin/api"
	"github.com/vultisig/safe-api-plugin/config"
	"github.com/vultisig/safe-api-plugin/plugin/safe"
	"github.com/vultisig/safe-api-plugin/storage"
)

func main() {
	cfg, err := config.GetConfigure()
	if err != nil {
		panic(err)
	}
	logger := logrus.New()

	sdClient, err := statsd.New(cfg.DatadogAddr())
	if err != nil {
		panic(err)
	}
	redisStorage, err := storage.NewRedisStorage(cfg.Redis)
	if err != nil {
		panic(err)
	}
	defer func() {
		if err := redisStorage.Close(); err != nil {
			fmt.Println("fail to close redis storage,", err)
		}
	}()
	redisOptions := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr(),
		Username: cfg.Redis.User,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}

	client := asynq.NewClient(redisOptions)
	defer func() {
		if err := client.Close(); err != nil {
			fmt.Println("fail to close asynq client,", err)
		}
	}()

	inspector := asynq.NewInspector(redisOptions)

	pluginConfig, err := safe.ResolvePluginConfig(cfg.PluginConfig(safe.PLUGIN_TYPE), cfg.Server.BaseConfigPath)
	if err != nil {
		logger.Fatalf("failed to load safe plugin config: %v", err)
	}
	safeConfig, err := safe.BuildConfig(context.Background(), *pluginConfig)
	if err != nil {
		logger.Fatalf("failed to build safe plugin config: %v", err)
	}
	p, err := safe.NewSafePlugin(safeConfig, logger.WithField("service", "plugin"))
	if err != nil {
		logger.Fatalf("failed to create safe plugin,err: %s", err)
	}

	server := api.NewServer(
		cfg.Server,
		redisStorage,
		client,
		inspector,
		sdClient,
		p,
		logger)
	if err := server.StartServer(); err != nil {
		panic(err)
	}
}
