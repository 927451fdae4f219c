package provider

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.dedis.ch/zilliqa"
)

// Values of the status label of the requests.
const (
	statusOK        = "ok"
	statusRPC       = "rpc_error"
	statusTransport = "transport_error"
	statusInvalid   = "invalid"
)

var (
	promRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "zilliqa_rpc_requests_total",
		Help: "total number of requests sent to the endpoint",
	}, []string{"method", "status"})

	promLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "zilliqa_rpc_request_duration_seconds",
		Help:    "duration of the requests sent to the endpoint",
		Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"method"})
)

func init() {
	zilliqa.PromCollectors = append(zilliqa.PromCollectors, promRequests, promLatency)
}
