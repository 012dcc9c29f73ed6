package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// SourcePreview 结账预览 / 优惠码校验
	SourcePreview = "preview"
	// SourceOrder 下单事务内的复核
	SourceOrder = "order"
)

// StoreMetrics 店铺业务与接口指标
type StoreMetrics struct {
	promoEvaluations *prometheus.CounterVec
	ordersCreated    *prometheus.CounterVec
	usageConflicts   prometheus.Counter
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
}

var (
	defaultOnce    sync.Once
	defaultMetrics *StoreMetrics
)

// Default 返回注册到默认 registry 的单例
func Default() *StoreMetrics {
	defaultOnce.Do(func() {
		defaultMetrics = New(prometheus.DefaultRegisterer)
	})
	return defaultMetrics
}

// New 在指定 registerer 上创建指标
func New(registerer prometheus.Registerer) *StoreMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	m := &StoreMetrics{
		promoEvaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kickslife_promo_evaluations_total",
			Help: "Promo code evaluations by source and outcome category.",
		}, []string{"source", "category"}),
		ordersCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kickslife_orders_created_total",
			Help: "Orders placed, split by whether a promo code was redeemed.",
		}, []string{"with_promo"}),
		usageConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kickslife_promo_redemption_conflicts_total",
			Help: "Orders aborted because the promo usage cap was reached at commit time.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kickslife_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kickslife_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"method", "route"}),
	}
	registerer.MustRegister(
		m.promoEvaluations,
		m.ordersCreated,
		m.usageConflicts,
		m.httpRequests,
		m.httpDuration,
	)
	return m
}

// ObservePromoEvaluation 记录一次优惠码评估
func (m *StoreMetrics) ObservePromoEvaluation(source, category string) {
	if m == nil {
		return
	}
	m.promoEvaluations.WithLabelValues(source, category).Inc()
}

// ObserveOrderCreated 记录一次下单
func (m *StoreMetrics) ObserveOrderCreated(withPromo bool) {
	if m == nil {
		return
	}
	m.ordersCreated.WithLabelValues(strconv.FormatBool(withPromo)).Inc()
}

// ObserveUsageConflict 记录一次并发兑换冲突
func (m *StoreMetrics) ObserveUsageConflict() {
	if m == nil {
		return
	}
	m.usageConflicts.Inc()
}

// ObserveHTTPRequest 记录接口请求
func (m *StoreMetrics) ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
