package node

import (
	"math"
	"strconv"
	"time"

	"github.com/NethermindEth/makimono/api"
	"github.com/NethermindEth/makimono/db"
	"github.com/NethermindEth/makimono/reader"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// latencyBuckets are in microseconds
var latencyBuckets = []float64{
	25,
	50,
	75,
	100,
	250,
	500,
	1000, // 1ms
	2000,
	3000,
	4000,
	5000,
	10000,
	50000,
	500000,
	math.Inf(0),
}

func makeMakimonoMetrics(registerer prometheus.Registerer, version string) {
	registerer.MustRegister(
		prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "makimono",
			Name:        "info",
			Help:        "Information about the makimono binary",
			ConstLabels: prometheus.Labels{"version": version},
		}),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

func makeDBMetrics(registerer prometheus.Registerer) db.EventListener {
	readLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "db",
		Name:      "read_latency",
		Buckets:   latencyBuckets,
	}, []string{"column"})
	registerer.MustRegister(readLatency)

	return &db.SelectiveListener{
		OnIOCb: func(col db.Column, duration time.Duration) {
			readLatency.WithLabelValues(col.String()).Observe(float64(duration.Microseconds()))
		},
	}
}

func makeReaderMetrics(registerer prometheus.Registerer) reader.EventListener {
	lookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "reader",
		Name:      "lookups",
	}, []string{"column", "result"})
	decodeFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "reader",
		Name:      "decode_failures",
	}, []string{"column"})
	registerer.MustRegister(lookups, decodeFailures)

	return &reader.SelectiveListener{
		OnLookupCb: func(col db.Column, found bool) {
			result := "found"
			if !found {
				result = "missing"
			}
			lookups.WithLabelValues(col.String(), result).Inc()
		},
		OnDecodeFailureCb: func(col db.Column) {
			decodeFailures.WithLabelValues(col.String()).Inc()
		},
	}
}

func makeAPIMetrics(registerer prometheus.Registerer) api.EventListener {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "api",
		Name:      "requests",
	}, []string{"route", "status"})
	requestLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "api",
		Name:      "request_latency",
		Buckets:   latencyBuckets,
	}, []string{"route"})
	registerer.MustRegister(requests, requestLatency)

	return &api.SelectiveListener{
		OnRequestCb: func(route string, status int, took time.Duration) {
			requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
			requestLatency.WithLabelValues(route).Observe(float64(took.Microseconds()))
		},
	}
}
