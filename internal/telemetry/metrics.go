package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/shaiso/Alerta/internal/domain"
)

// Prometheus метрики движка.
var (
	passesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "alerta_passes_total",
		Help: "Reconciliation passes by trigger",
	}, []string{"trigger"})

	alertsScheduledTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "alerta_alerts_scheduled_total",
		Help: "Alerts submitted to the host gateway",
	})

	alertsCancelledTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "alerta_alerts_cancelled_total",
		Help: "Alerts cancelled at the host gateway",
	})

	gatewayFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "alerta_gateway_failures_total",
		Help: "Failed gateway submissions and cancellations",
	})

	itemsDeferred = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "alerta_items_deferred",
		Help: "Items over budget in the last pass",
	})

	listsSkipped = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "alerta_lists_skipped",
		Help: "Lists outside the scan window in the last pass",
	})

	pendingOwned = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "alerta_pending_owned",
		Help: "Engine-owned alerts currently armed at the host",
	})

	passDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "alerta_pass_duration_seconds",
		Help:    "Reconciliation pass duration",
		Buckets: prometheus.DefBuckets,
	})
)

// MustRegister регистрирует метрики движка в реестре по умолчанию.
// Вызывается один раз из main.
func MustRegister() {
	prometheus.MustRegister(
		passesTotal,
		alertsScheduledTotal,
		alertsCancelledTotal,
		gatewayFailuresTotal,
		itemsDeferred,
		listsSkipped,
		pendingOwned,
		passDuration,
	)
}

// ObservePass фиксирует итоги одного пасса сверки.
func ObservePass(trigger string, s domain.Summary, d time.Duration) {
	passesTotal.WithLabelValues(trigger).Inc()
	alertsScheduledTotal.Add(float64(s.Scheduled))
	alertsCancelledTotal.Add(float64(s.Cancelled))
	gatewayFailuresTotal.Add(float64(s.Failed))
	itemsDeferred.Set(float64(s.Deferred))
	listsSkipped.Set(float64(s.SkippedLists))
	passDuration.Observe(d.Seconds())
}

// SetPendingOwned обновляет датчик числа своих взведённых алертов.
func SetPendingOwned(n int) {
	pendingOwned.Set(float64(n))
}
