package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"

	"github.com/vultisig/safe-api-plugin/internal/tasks"
	"github.com/vultisig/safe-api-plugin/plugin"
)

type WorkerService struct {
	logger   *logrus.Logger
	sdClient statsd.ClientInterface
	plugin   plugin.Plugin
}

// NewWorker creates a new worker service
func NewWorker(p plugin.Plugin, sdClient statsd.ClientInterface, logger *logrus.Logger) *WorkerService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &WorkerService{
		logger:   logger,
		sdClient: sdClient,
		plugin:   p,
	}
}

func (s *WorkerService) incCounter(name string, tags []string) {
	if err := s.sdClient.Count(name, 1, tags, 1); err != nil {
		s.logger.Errorf("fail to count metric, err: %v", err)
	}
}

func (s *WorkerService) measureTime(name string, start time.Time, tags []string) {
	if err := s.sdClient.Timing(name, time.Since(start), tags, 1); err != nil {
		s.logger.Errorf("fail to measure time metric, err: %v", err)
	}
}

// RegisterHandlers wires the worker's task handlers into mux.
func (s *WorkerService) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(tasks.TypePluginInvoke, s.HandlePluginInvoke)
}

// HandlePluginInvoke runs one queued invocation. A failing invocation still
// completes the task; the failure is written into the result for the caller.
func (s *WorkerService) HandlePluginInvoke(ctx context.Context, t *asynq.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var payload tasks.InvokePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("json.Unmarshal failed: %v: %w", err, asynq.SkipRetry)
	}

	buf, err := s.invoke(ctx, payload)
	if err != nil {
		return err
	}
	if _, err := t.ResultWriter().Write(buf); err != nil {
		return fmt.Errorf("fail to write task result, err: %w", err)
	}
	return nil
}

// invoke runs the plugin method of payload and returns the encoded
// tasks.InvokeResult.
func (s *WorkerService) invoke(ctx context.Context, payload tasks.InvokePayload) ([]byte, error) {
	tags := []string{"plugin_method:" + payload.Method}
	defer s.measureTime("worker.plugin.invoke.latency", time.Now(), tags)
	logger := s.logger.WithFields(logrus.Fields{
		"method":     payload.Method,
		"request_id": payload.RequestID,
	})

	result, err := s.plugin.Invoke(ctx, payload.Method, payload.Args)
	if err != nil {
		s.incCounter("worker.plugin.invoke.error", tags)
		logger.WithError(err).Error("invoke task failed")
	} else {
		s.incCounter("worker.plugin.invoke.success", tags)
		logger.Info("invoke task completed")
	}

	buf, err := json.Marshal(tasks.NewInvokeResult(result, err))
	if err != nil {
		return nil, fmt.Errorf("fail to marshal task result, err: %w", err)
	}
	return buf, nil
}
