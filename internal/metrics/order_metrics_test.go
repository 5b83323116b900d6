package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestNewOrderMetrics(t *testing.T) {
	metrics := NewOrderMetrics()

	if metrics == nil {
		t.Fatal("NewOrderMetrics should not return nil")
	}

	if metrics.ordersPlaced == nil {
		t.Error("ordersPlaced counter should not be nil")
	}

	if metrics.ordersReplaced == nil {
		t.Error("ordersReplaced counter should not be nil")
	}

	if metrics.ordersRolledBack == nil {
		t.Error("ordersRolledBack counter should not be nil")
	}

	if metrics.txDuration == nil {
		t.Error("txDuration histogram should not be nil")
	}

	if metrics.notificationsPublished == nil {
		t.Error("notificationsPublished counter should not be nil")
	}

	if metrics.notificationsFailed == nil {
		t.Error("notificationsFailed counter should not be nil")
	}

	if metrics.httpDuration == nil {
		t.Error("httpDuration histogram vec should not be nil")
	}

	if metrics.openTransactions == nil {
		t.Error("openTransactions gauge should not be nil")
	}
}

func TestNewOrderMetrics_Rereadable(t *testing.T) {
	// Повторная регистрация в том же registry возвращает те же коллекторы.
	first := NewOrderMetrics()
	second := NewOrderMetrics()

	if first.ordersPlaced != second.ordersPlaced {
		t.Error("expected shared ordersPlaced collector across instances")
	}
}

func TestRecordOrderOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := newOrderMetricsWithRegisterer(reg)

	metrics.RecordOrderPlaced()
	metrics.RecordOrderPlaced()
	metrics.RecordOrderReplaced()
	metrics.RecordOrderRolledBack()

	assertCounter(t, metrics.ordersPlaced, 2.0)
	assertCounter(t, metrics.ordersReplaced, 1.0)
	assertCounter(t, metrics.ordersRolledBack, 1.0)
}

func TestRecordTxDuration(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := newOrderMetricsWithRegisterer(reg)

	metrics.RecordTxDuration(100 * time.Millisecond)
	metrics.RecordTxDuration(500 * time.Millisecond)
	metrics.RecordTxDuration(1 * time.Second)

	metric := &dto.Metric{}
	if err := metrics.txDuration.Write(metric); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}

	if metric.Histogram.GetSampleCount() != 3 {
		t.Errorf("expected 3 samples, got %d", metric.Histogram.GetSampleCount())
	}

	// 0.1 + 0.5 + 1.0 = 1.6
	sum := metric.Histogram.GetSampleSum()
	if sum < 1.5 || sum > 1.7 {
		t.Errorf("expected sum around 1.6, got %f", sum)
	}
}

func TestRecordNotifications(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := newOrderMetricsWithRegisterer(reg)

	metrics.RecordNotificationPublished()
	metrics.RecordNotificationPublished()
	metrics.RecordNotificationFailed()

	assertCounter(t, metrics.notificationsPublished, 2.0)
	assertCounter(t, metrics.notificationsFailed, 1.0)
}

func TestRecordHTTPRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := newOrderMetricsWithRegisterer(reg)

	metrics.RecordHTTPRequest("POST", "/orders", "201", 50*time.Millisecond)
	metrics.RecordHTTPRequest("POST", "/orders", "201", 75*time.Millisecond)
	metrics.RecordHTTPRequest("GET", "/orders", "200", 10*time.Millisecond)

	observer := metrics.httpDuration.WithLabelValues("POST", "/orders", "201")
	metric := &dto.Metric{}
	if err := observer.(prometheus.Histogram).Write(metric); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}

	if metric.Histogram.GetSampleCount() != 2 {
		t.Errorf("expected 2 samples for POST /orders 201, got %d", metric.Histogram.GetSampleCount())
	}
}

func TestTransactionLifecycle(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := newOrderMetricsWithRegisterer(reg)

	metrics.RecordTxOpened()
	metrics.RecordTxOpened()
	metrics.RecordTxClosed()

	metric := &dto.Metric{}
	if err := metrics.openTransactions.Write(metric); err != nil {
		t.Fatalf("failed to write gauge: %v", err)
	}

	if metric.Gauge.GetValue() != 1.0 {
		t.Errorf("expected 1.0 open transaction, got %f", metric.Gauge.GetValue())
	}
}

func assertCounter(t *testing.T, counter prometheus.Counter, want float64) {
	t.Helper()

	metric := &dto.Metric{}
	if err := counter.Write(metric); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	if got := metric.Counter.GetValue(); got != want {
		t.Errorf("expected counter value %f, got %f", want, got)
	}
}
