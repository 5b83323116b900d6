package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// OrderMetrics содержит метрики обработки заказов.
type OrderMetrics struct {
	// Счётчики исходов транзакций заказа
	ordersPlaced     prometheus.Counter
	ordersReplaced   prometheus.Counter
	ordersRolledBack prometheus.Counter

	// Гистограмма длительности транзакции заказа
	txDuration prometheus.Histogram

	// Счётчики уведомлений
	notificationsPublished prometheus.Counter
	notificationsFailed    prometheus.Counter

	// Гистограмма длительности HTTP-запросов по маршруту и методу
	httpDuration *prometheus.HistogramVec

	// Gauge открытых транзакций заказа
	openTransactions prometheus.Gauge
}

// NewOrderMetrics создаёт новый экземпляр метрик заказов.
func NewOrderMetrics() *OrderMetrics {
	return newOrderMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newOrderMetricsWithRegisterer(registerer prometheus.Registerer) *OrderMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &OrderMetrics{
		ordersPlaced: registerCounter(registerer, prometheus.CounterOpts{
			Name: "pastelaria_orders_placed_total",
			Help: "Total number of orders committed via the create path",
		}),
		ordersReplaced: registerCounter(registerer, prometheus.CounterOpts{
			Name: "pastelaria_orders_replaced_total",
			Help: "Total number of orders committed via the full-replace path",
		}),
		ordersRolledBack: registerCounter(registerer, prometheus.CounterOpts{
			Name: "pastelaria_orders_rolled_back_total",
			Help: "Total number of order transactions rolled back",
		}),
		txDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "pastelaria_order_tx_duration_seconds",
			Help:    "Duration of order transactions in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		notificationsPublished: registerCounter(registerer, prometheus.CounterOpts{
			Name: "pastelaria_notifications_published_total",
			Help: "Total number of order notifications published",
		}),
		notificationsFailed: registerCounter(registerer, prometheus.CounterOpts{
			Name: "pastelaria_notifications_failed_total",
			Help: "Total number of order notifications that failed to publish",
		}),
		httpDuration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "pastelaria_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"method", "route", "status"}),
		openTransactions: registerGauge(registerer, prometheus.GaugeOpts{
			Name: "pastelaria_order_open_transactions",
			Help: "Number of currently open order transactions",
		}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerGauge(registerer prometheus.Registerer, opts prometheus.GaugeOpts) prometheus.Gauge {
	collector := prometheus.NewGauge(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Gauge)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register gauge %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	collector := prometheus.NewHistogram(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Histogram)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	collector := prometheus.NewHistogramVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.HistogramVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram vec %q: %v", opts.Name, err))
	}
	return collector
}

// RecordOrderPlaced увеличивает счётчик оформленных заказов.
func (m *OrderMetrics) RecordOrderPlaced() {
	m.ordersPlaced.Inc()
}

// RecordOrderReplaced увеличивает счётчик полностью заменённых заказов.
func (m *OrderMetrics) RecordOrderReplaced() {
	m.ordersReplaced.Inc()
}

// RecordOrderRolledBack увеличивает счётчик откатов.
func (m *OrderMetrics) RecordOrderRolledBack() {
	m.ordersRolledBack.Inc()
}

// RecordTxDuration записывает длительность транзакции заказа.
func (m *OrderMetrics) RecordTxDuration(duration time.Duration) {
	m.txDuration.Observe(duration.Seconds())
}

// RecordNotificationPublished увеличивает счётчик отправленных уведомлений.
func (m *OrderMetrics) RecordNotificationPublished() {
	m.notificationsPublished.Inc()
}

// RecordNotificationFailed увеличивает счётчик неудачных уведомлений.
func (m *OrderMetrics) RecordNotificationFailed() {
	m.notificationsFailed.Inc()
}

// RecordHTTPRequest записывает длительность HTTP-запроса.
func (m *OrderMetrics) RecordHTTPRequest(method, route, status string, duration time.Duration) {
	m.httpDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}

// RecordTxOpened увеличивает количество открытых транзакций.
func (m *OrderMetrics) RecordTxOpened() {
	m.openTransactions.Inc()
}

// RecordTxClosed уменьшает количество открытых транзакций.
func (m *OrderMetrics) RecordTxClosed() {
	m.openTransactions.Dec()
}
