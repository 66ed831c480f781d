package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/prtracker/internal/config"
	"github.com/2beens/prtracker/internal/credentials"
	"github.com/2beens/prtracker/internal/fetch"
	"github.com/2beens/prtracker/internal/logging"
	"github.com/2beens/prtracker/internal/pages"
	"github.com/2beens/prtracker/internal/telemetry/metrics"
	"github.com/2beens/prtracker/internal/telemetry/tracing"
	"github.com/2beens/prtracker/internal/terminal"
)

const serviceName = "prtracker-cli"

type GlobalOptions struct {
	Env        string
	ConfigPath string
}

// Session is everything a command needs once the configuration is loaded.
type Session struct {
	IndexPath  string
	Store      credentials.Store
	NewBrowser func(prompter terminal.Prompter) *terminal.Browser

	closers []func()
}

func (s *Session) onClose(fn func()) {
	s.closers = append(s.closers, fn)
}

// Close releases resources in reverse order of acquisition.
func (s *Session) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
	s.closers = nil
}

// Setup builds the session of one command run.
type Setup func(ctx context.Context, opts GlobalOptions, out io.Writer) (*Session, error)

// Configure is the production Setup: config file, logging, telemetry, credential store and API client.
func Configure(ctx context.Context, opts GlobalOptions, out io.Writer) (*Session, error) {
	cfg, err := config.Load(opts.Env, opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	sentryDSN := os.Getenv("SENTRY_DSN")
	if cfg.SentryEnabled && sentryDSN == "" {
		log.Warnln("sentry enabled but SENTRY_DSN env var not set")
	}
	logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.LogsPath,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         cfg.LogLevel,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled && sentryDSN != "",
		SentryDSN:        sentryDSN,
		SentryServerName: serviceName,
	})
	log.Debugf("running in [%s] environment against [%s]", cfg.Environment, cfg.BaseURL)

	session := &Session{IndexPath: cfg.IndexPath}

	otelShutdown, err := tracing.HoneycombSetup(cfg.HoneycombEnabled, serviceName)
	if err != nil {
		return nil, err
	}
	session.onClose(otelShutdown)

	promRegistry := metrics.SetupPrometheus()
	metricsManager := metrics.NewManager("prtracker", "client", promRegistry)
	if cfg.PushgatewayURL != "" {
		session.onClose(func() {
			if err := metrics.Push(cfg.PushgatewayURL, serviceName, promRegistry); err != nil {
				log.Errorf("metrics: %s", err)
			}
		})
	}

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		session.Close()
		return nil, err
	}
	session.Store = store
	session.onClose(closeStore)

	httpClient := fetch.NewTracedHttpClient(cfg.RequestTimeout())
	session.onClose(httpClient.CloseIdleConnections)

	client := fetch.NewClient(cfg.BaseURL, httpClient, store, metricsManager)
	app := pages.NewApp(store, client, metricsManager, cfg.IndexPath)
	session.NewBrowser = func(prompter terminal.Prompter) *terminal.Browser {
		return terminal.NewBrowser(app, prompter, out, cfg.ChartsDir, metricsManager)
	}

	return session, nil
}

func openStore(ctx context.Context, cfg *config.Config) (credentials.Store, func(), error) {
	origin, err := credentials.Origin(cfg.BaseURL)
	if err != nil {
		return nil, nil, err
	}

	storageTracer := tracing.NewStorageTracer(cfg.HoneycombEnabled, tracing.GlobalTracer)
	switch cfg.Storage {
	case config.StorageMemory:
		return credentials.NewMemoryStore(origin), func() {}, nil
	case config.StorageDisabled:
		return credentials.DisabledStore{}, func() {}, nil
	case config.StorageRedis:
		redisClient := credentials.NewRedisClient(cfg.RedisAddr(), cfg.RedisPassword)
		// an unreachable redis only means nobody is logged in
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warnf("redis %s: %s", cfg.RedisAddr(), err)
		}
		return credentials.NewRedisStore(origin, redisClient, storageTracer), func() {
			if err := redisClient.Close(); err != nil {
				log.Errorf("close redis client: %s", err)
			}
		}, nil
	default:
		sqliteStore, err := credentials.OpenSQLiteStore(cfg.StoragePath, origin, storageTracer)
		if err != nil {
			return nil, nil, err
		}
		return sqliteStore, func() {
			if err := sqliteStore.Close(); err != nil {
				log.Errorf("close storage: %s", err)
			}
		}, nil
	}
}
