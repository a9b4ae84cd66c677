package perf

import (
	"expvar"
	"net/http"

	"github.com/encodeous/metric"
)

var (
	DispatchLatency  = metric.NewHistogram("1m1s")
	RecomputeLatency = metric.NewHistogram("1m1s")
	RecomputesPerSec = metric.NewCounter("10s1s")
	RouteFlipsPerSec = metric.NewCounter("10s1s")
	PublishesPerSec  = metric.NewCounter("10s1s")
)

func init() {
	http.Handle("/debug/metrics", metric.Handler(metric.Exposed))
	expvar.Publish("adcn:DispatchLatency (µs)", DispatchLatency)
	expvar.Publish("adcn:RecomputeLatency (µs)", RecomputeLatency)
	expvar.Publish("adcn:Recomputes/s", RecomputesPerSec)
	expvar.Publish("adcn:RouteFlips/s", RouteFlipsPerSec)
	expvar.Publish("adcn:Publishes/s", PublishesPerSec)
}
