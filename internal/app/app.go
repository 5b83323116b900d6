package app

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/pastelaria/internal/domain"
	healthcheck "github.com/vladislavdragonenkov/pastelaria/internal/health"
	"github.com/vladislavdragonenkov/pastelaria/internal/httpapi"
	"github.com/vladislavdragonenkov/pastelaria/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/pastelaria/internal/metrics"
	ordersvc "github.com/vladislavdragonenkov/pastelaria/internal/service/orders"
	"github.com/vladislavdragonenkov/pastelaria/internal/storage/memory"
	"github.com/vladislavdragonenkov/pastelaria/internal/storage/postgres"
	"github.com/vladislavdragonenkov/pastelaria/internal/version"
)

// Config описывает настройки запуска приложения.
type Config struct {
	HTTPAddr    string
	MetricsAddr string
	// PostgresDSN пустой — работаем на in-memory хранилище (режим разработки).
	PostgresDSN string
	// KafkaBrokers пустой — уведомления уходят в лог.
	KafkaBrokers string
}

// DefaultConfig возвращает базовые адреса API и HTTP-метрик.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:    ":8080",
		MetricsAddr: ":9090",
	}
}

// dependencies — собранный граф зависимостей приложения.
type dependencies struct {
	customers domain.CustomerRepository
	products  domain.ProductRepository
	orders    domain.OrderRepository
	uow       domain.OrderUnitOfWork
	notifier  domain.Notifier

	store    *postgres.Store // nil в in-memory режиме
	producer *kafka.Producer // nil без Kafka
}

// buildDependencies выбирает хранилище и транспорт уведомлений по конфигурации.
func buildDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*dependencies, error) {
	deps := &dependencies{}

	if cfg.PostgresDSN != "" {
		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		if err := store.EnsureSchema(ctx); err != nil {
			_ = store.Close()
			return nil, err
		}
		deps.store = store
		deps.customers = postgres.NewCustomerRepository(store)
		deps.products = postgres.NewProductRepository(store)
		deps.orders = postgres.NewOrderRepository(store)
		deps.uow = postgres.NewOrderUnitOfWork(store)
		logger.Info("postgres storage initialized")
	} else {
		products := memory.NewProductRepository()
		store := memory.NewOrderStore(products)
		deps.customers = memory.NewCustomerRepository()
		deps.products = products
		deps.orders = store
		deps.uow = store
		logger.Warn("no postgres dsn configured, using in-memory storage")
	}

	if cfg.KafkaBrokers != "" {
		brokers := strings.Split(cfg.KafkaBrokers, ",")
		producer, err := kafka.NewProducer(brokers)
		if err != nil {
			logger.WithError(err).Warn("failed to create kafka producer, falling back to log notifier")
		} else {
			deps.producer = producer
			deps.notifier = kafka.NewNotifier(producer, logger.WithField("component", "kafka-notifier"))
			logger.WithField("brokers", brokers).Info("kafka producer initialized")
		}
	}
	if deps.notifier == nil {
		deps.notifier = kafka.NewLogNotifier(logger.WithField("component", "log-notifier"))
	}

	return deps, nil
}

func (d *dependencies) close(logger *log.Entry) {
	if d.producer != nil {
		if err := d.producer.Close(); err != nil {
			logger.WithError(err).Warn("failed to close kafka producer")
		}
	}
	if d.store != nil {
		if err := d.store.Close(); err != nil {
			logger.WithError(err).Warn("failed to close postgres store")
		}
	}
}

// Run собирает приложение и обслуживает запросы до отмены контекста.
func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")

	deps, err := buildDependencies(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer deps.close(logger)

	orderMetrics := metrics.NewOrderMetrics()
	manager := ordersvc.NewManager(deps.uow, deps.orders, deps.customers, deps.notifier,
		logger.WithField("component", "orders"))

	handler := httpapi.NewHandler(deps.customers, deps.products, deps.orders, manager,
		logger.WithField("component", "httpapi"))
	router := httpapi.NewRouter(handler, orderMetrics)

	healthHandler := healthcheck.NewHandler(version.GetVersion())
	if deps.store != nil {
		healthHandler.RegisterChecker("postgres", healthcheck.NewSimpleChecker("postgres", func() error {
			return deps.store.Ping(context.Background())
		}))
	}

	metricsSrv := startMetricsServer(ctx, cfg.MetricsAddr, logger, healthHandler)

	apiSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}
	errCh := make(chan error, 1)
	go func() {
		logger.Infof("HTTP API слушает %s", cfg.HTTPAddr)
		errCh <- apiSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("получен сигнал остановки, останавливаем HTTP сервер")
		shutdownHTTP(apiSrv, logger)
		shutdownHTTP(metricsSrv, logger)
		return ctx.Err()
	case err := <-errCh:
		shutdownHTTP(metricsSrv, logger)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// startMetricsServer запускает HTTP-обработчик /metrics для Prometheus.
func startMetricsServer(ctx context.Context, addr string, logger *log.Entry, healthHandler *healthcheck.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/livez", healthcheck.LivenessHandler)
	mux.HandleFunc("/readyz", healthHandler.ReadinessHandler)

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		logger.Infof("метрики доступны по адресу %s/metrics", addr)
		logger.Infof("health checks: %s/healthz, %s/livez, %s/readyz", addr, addr, addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("metrics server failed")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownHTTP(srv, logger)
	}()

	return srv
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("http shutdown with error")
	}
}
