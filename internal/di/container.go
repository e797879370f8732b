package di

import (
	"context"
	"fmt"
	"log/slog"

	"code-assist/internal/adapter/rest"
	appmiddleware "code-assist/internal/adapter/rest/middleware"
	"code-assist/internal/driver"
	"code-assist/internal/gateway"
	"code-assist/internal/infra/config"
	"code-assist/internal/infra/httpclient"
	"code-assist/internal/infra/logger"
	"code-assist/internal/metrics"
	"code-assist/internal/port"
	"code-assist/internal/usecase"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/labstack/echo/v4"
	"github.com/meilisearch/meilisearch-go"
	"golang.org/x/time/rate"
)

// ApplicationComponents holds all wired dependencies for the application.
type ApplicationComponents struct {
	Config *config.Config
	Logger *slog.Logger

	// Engine is the shared backend handle behind the retry policy.
	Engine  port.SearchEngine
	Metrics *metrics.Registry

	AskUsecase    usecase.AskContextUsecase
	AssistUsecase usecase.AssistUsecase

	Handler *rest.Handler
}

// NewApplicationComponents wires all dependencies from config.
func NewApplicationComponents(cfg *config.Config, log *slog.Logger) (*ApplicationComponents, error) {
	searchDriver, err := NewSearchDriver(cfg.Search)
	if err != nil {
		return nil, err
	}

	engine := gateway.NewRetryingSearchEngine(
		gateway.NewSearchEngineGateway(searchDriver),
		gateway.RetryPolicy{
			MaxAttempts:     cfg.Search.MaxAttempts,
			InitialInterval: cfg.Search.RetryInitialInterval,
			MaxInterval:     cfg.Search.RetryMaxInterval,
		},
		log,
	)

	registry := metrics.NewRegistry(true)

	contextLogger := logger.NewContextLogger(log)
	askUsecase := usecase.NewAskContextUsecase(engine, registry, contextLogger)
	assistUsecase := usecase.NewAssistUsecase(log)

	handler := rest.NewHandler(askUsecase, assistUsecase, engine, registry.Handler(), contextLogger)

	log.Info("application components wired",
		"backend", cfg.Search.Backend,
		"index", cfg.Search.Index,
		"timeout", cfg.Search.Timeout,
		"max_attempts", cfg.Search.MaxAttempts)

	return &ApplicationComponents{
		Config:        cfg,
		Logger:        log,
		Engine:        engine,
		Metrics:       registry,
		AskUsecase:    askUsecase,
		AssistUsecase: assistUsecase,
		Handler:       handler,
	}, nil
}

// RouteConfig builds the per-route middleware. The ask limiter is enabled
// only when a positive rate is configured; its cleanup loop stops with ctx.
func (a *ApplicationComponents) RouteConfig(ctx context.Context) rest.RouteConfig {
	routes := rest.RouteConfig{Counting: appmiddleware.CountRequests(a.Metrics)}
	if a.Config.RateLimit.RPS > 0 {
		routes.AskLimit = appmiddleware.NewRateLimiter(ctx, rate.Limit(a.Config.RateLimit.RPS), a.Config.RateLimit.Burst).Middleware()
	}
	return routes
}

// NewEchoServer builds the HTTP server over the wired handler.
func (a *ApplicationComponents) NewEchoServer(ctx context.Context) *echo.Echo {
	return rest.NewServer(a.Handler, rest.ServerOptions{
		Logger:          a.Logger,
		OTelEnabled:     a.Config.OTel.Enabled,
		OTelServiceName: a.Config.OTel.ServiceName,
		Routes:          a.RouteConfig(ctx),
	})
}

// NewSearchDriver creates the process-wide backend handle for the configured backend.
func NewSearchDriver(cfg config.SearchConfig) (gateway.SearchDriver, error) {
	switch cfg.Backend {
	case config.BackendElasticsearch:
		client, err := elasticsearch.NewClient(elasticsearch.Config{
			Addresses:    []string{cfg.ElasticsearchURL},
			Username:     cfg.ElasticsearchUsername,
			Password:     cfg.ElasticsearchPassword,
			Transport:    httpclient.SharedTransport(),
			DisableRetry: true,
		})
		if err != nil {
			return nil, fmt.Errorf("elasticsearch client: %w", err)
		}
		return driver.NewElasticsearchDriver(client, cfg.Index, cfg.Timeout), nil

	case config.BackendMeilisearch:
		client := meilisearch.New(cfg.MeilisearchHost,
			meilisearch.WithAPIKey(cfg.MeilisearchAPIKey),
			meilisearch.WithCustomClient(httpclient.NewPooledClient(0)),
			meilisearch.DisableRetries(),
		)
		return driver.NewMeilisearchDriver(client, cfg.Index, cfg.Timeout), nil

	default:
		return nil, fmt.Errorf("unsupported search backend %q", cfg.Backend)
	}
}
