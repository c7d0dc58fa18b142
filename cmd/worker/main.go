package main

import (
	"context"
	"fmt"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"

	"github.com/vultisig/safe-api-plugin/config"
	"github.com/vultisig/safe-api-plugin/internal/tasks"
	"github.com/vultisig/safe-api-plugin/plugin/safe"
	"github.com/vultisig/safe-api-plugin/service"
)

func main() {
	cfg, err := config.GetConfigure()
	if err != nil {
		panic(err)
	}

	sdClient, err := statsd.New(cfg.DatadogAddr())
	if err != nil {
		panic(err)
	}

	redisOptions := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr(),
		Username: cfg.Redis.User,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	logger := logrus.StandardLogger()

	pluginConfig, err := safe.ResolvePluginConfig(cfg.PluginConfig(safe.PLUGIN_TYPE), cfg.Server.BaseConfigPath)
	if err != nil {
		panic(fmt.Errorf("failed to load safe plugin config: %w", err))
	}
	safeConfig, err := safe.BuildConfig(context.Background(), *pluginConfig)
	if err != nil {
		panic(fmt.Errorf("failed to build safe plugin config: %w", err))
	}
	p, err := safe.NewSafePlugin(safeConfig, logger.WithField("service", "plugin"))
	if err != nil {
		panic(fmt.Errorf("failed to create safe plugin: %w", err))
	}

	srv := asynq.NewServer(
		redisOptions,
		asynq.Config{
			Logger:      logger,
			Concurrency: cfg.Worker.Concurrency,
			Queues: map[string]int{
				tasks.QUEUE_NAME: 10,
			},
		},
	)
	workerService := service.NewWorker(p, sdClient, logger)
	mux := asynq.NewServeMux()
	workerService.RegisterHandlers(mux)
	if err := srv.Run(mux); err != nil {
		panic(fmt.Errorf("could not run server: %w", err))
	}
}
