package engine

import "github.com/prometheus/client_golang/prometheus"

var (
	// 各入口的请求计数，按最终命中的策略打标签
	cartRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "recommend_cart_requests_total",
		Help: "Total cart recommendation requests by resolved strategy",
	}, []string{"strategy"})

	personalizedRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "recommend_personalized_requests_total",
		Help: "Total personalized recommendation requests by resolved strategy",
	}, []string{"strategy"})

	trendingRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "recommend_trending_requests_total",
		Help: "Total trending product requests",
	})

	cartLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "recommend_cart_latency_seconds",
		Help:    "Latency of cart recommendations",
		Buckets: prometheus.DefBuckets,
	})

	personalizedLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "recommend_personalized_latency_seconds",
		Help:    "Latency of personalized recommendations",
		Buckets: prometheus.DefBuckets,
	})

	trendingLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "recommend_trending_latency_seconds",
		Help:    "Latency of trending products",
		Buckets: prometheus.DefBuckets,
	})
)

// RegisterMetrics 把引擎指标注册到给定的 Registerer；nil 时使用全局默认。
// 指标注册是可选的，不调用也不影响推荐链路。
func RegisterMetrics(r prometheus.Registerer) {
	if r == nil {
		r = prometheus.DefaultRegisterer
	}
	r.MustRegister(
		cartRequests,
		personalizedRequests,
		trendingRequests,
		cartLatency,
		personalizedLatency,
		trendingLatency,
	)
}
