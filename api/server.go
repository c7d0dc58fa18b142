package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/go-playground/validator/v10"
	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/sirupsen/logrus"

	"github.com/vultisig/safe-api-plugin/internal/tasks"
	"github.com/vultisig/safe-api-plugin/plugin"
)

// SessionStorage remembers which task an async request id was queued as.
// Get returns storage.ErrNotFound for a missing key.
type SessionStorage interface {
	Get(ctx context.Context, key string) (string, error)
	SetNX(ctx context.Context, key string, value string, expiry time.Duration) (bool, error)
	Delete(ctx context.Context, key string) error
}

// TaskQueue is the part of *asynq.Client the server enqueues with.
type TaskQueue interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type Server struct {
	cfg       ServerConfig
	redis     SessionStorage
	client    TaskQueue
	inspector tasks.TaskInspector
	sdClient  statsd.ClientInterface
	plugin    plugin.Plugin
	logger    *logrus.Logger
}

// NewServer returns a new server.
func NewServer(
	cfg ServerConfig,
	redis SessionStorage,
	client TaskQueue,
	inspector tasks.TaskInspector,
	sdClient statsd.ClientInterface,
	p plugin.Plugin,
	logger *logrus.Logger,
) *Server {
	logger.Infof("Server plugin: %s %s", p.Name(), p.Version())
	return &Server{
		cfg:       cfg,
		redis:     redis,
		client:    client,
		inspector: inspector,
		sdClient:  sdClient,
		plugin:    p,
		logger:    logger,
	}
}

type requestValidator struct {
	validator *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

func (s *Server) newEcho() *echo.Echo {
	e := echo.New()
	e.Logger.SetLevel(log.DEBUG)
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("2M")) // set maximum allowed size for a request body to 2M
	e.Use(s.statsdMiddleware)
	e.Use(middleware.CORS())
	limiterStore := middleware.NewRateLimiterMemoryStoreWithConfig(
		middleware.RateLimiterMemoryStoreConfig{Rate: 5, Burst: 30, ExpiresIn: 5 * time.Minute},
	)
	e.Use(middleware.RateLimiter(limiterStore))

	e.Validator = &requestValidator{validator: validator.New()}

	e.GET("/ping", s.Ping)

	pluginGroup := e.Group("/plugin")
	pluginGroup.GET("/manifest", s.GetManifest)
	pluginGroup.POST("/invoke/:method", s.Invoke)
	pluginGroup.POST("/invoke/:method/async", s.InvokeAsync)
	pluginGroup.GET("/invoke/result/:taskId", s.GetInvokeResult)

	return e
}

func (s *Server) StartServer() error {
	e := s.newEcho()
	return e.Start(net.JoinHostPort(s.cfg.Host, strconv.FormatInt(s.cfg.Port, 10)))
}

func (s *Server) Ping(c echo.Context) error {
	return c.String(http.StatusOK, fmt.Sprintf("%s plugin server is running", s.plugin.Name()))
}
