package pool

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "resource_pool"

// Metrics 用于 Prometheus 监控资源池的借出、归还、创建等指标。
type Metrics struct {
	Borrows         prometheus.Counter // 借出次数
	Returns         prometheus.Counter // 归还次数
	Generated       prometheus.Counter // 创建次数
	CapacityRejects prometheus.Counter // 池满拒绝次数
	ForeignReturns  prometheus.Counter // 非本池资源归还次数
	Idle            prometheus.Gauge   // 当前空闲数量
	Managed         prometheus.Gauge   // 创建过的资源总数
}

func newMetrics(name string, reg prometheus.Registerer) *Metrics {
	labels := prometheus.Labels{"pool": displayName(name)}
	counter := func(metric, help string) prometheus.Counter {
		c := prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   metricsNamespace,
			Name:        metric,
			Help:        help,
			ConstLabels: labels,
		})
		return register(reg, c)
	}
	gauge := func(metric, help string) prometheus.Gauge {
		g := prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   metricsNamespace,
			Name:        metric,
			Help:        help,
			ConstLabels: labels,
		})
		return register(reg, g)
	}
	return &Metrics{
		Borrows:         counter("borrows_total", "Objects lent out by the pool."),
		Returns:         counter("returns_total", "Objects given back to the pool."),
		Generated:       counter("generated_total", "Objects created through the factory."),
		CapacityRejects: counter("capacity_rejects_total", "Borrows refused because the pool was full."),
		ForeignReturns:  counter("foreign_returns_total", "Returns of objects the pool never created."),
		Idle:            gauge("idle_objects", "Objects currently available to borrow."),
		Managed:         gauge("managed_objects", "Objects created by the pool over its lifetime."),
	}
}

// register 注册到 reg，已存在同名指标时复用已有的
func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if reg == nil {
		return c
	}
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
	}
	return c
}
