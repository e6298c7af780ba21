package observability

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the node's Prometheus collectors. All methods are
// nil-safe so wiring metrics stays optional in tests.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal *prometheus.CounterVec

	transactionsSubmitted prometheus.Counter
	blocksForged          prometheus.Counter
	consensusReplacements prometheus.Counter
	peerFetchFailures     prometheus.Counter
}

// NewMetrics creates and registers the node's collectors on a private
// registry, so multiple nodes can live in one process.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total count of HTTP requests processed by route and status.",
		}, []string{"route", "status"}),
		transactionsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ledger_transactions_submitted_total",
			Help: "Total transactions accepted into the pending buffer.",
		}),
		blocksForged: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ledger_blocks_forged_total",
			Help: "Total blocks forged by this node.",
		}),
		consensusReplacements: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "consensus_chain_replacements_total",
			Help: "Total times consensus replaced the local chain.",
		}),
		peerFetchFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "consensus_peer_fetch_failures_total",
			Help: "Total peer chain fetches skipped due to transport failure.",
		}),
	}

	m.registry.MustRegister(
		m.httpRequestsTotal,
		m.transactionsSubmitted,
		m.blocksForged,
		m.consensusReplacements,
		m.peerFetchFailures,
	)

	return m
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

// WrapHandler counts requests per route and response status.
func (m *Metrics) WrapHandler(route string, next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		m.httpRequestsTotal.WithLabelValues(route, strconv.Itoa(recorder.status)).Inc()
	})
}

// Handler exposes the registry for a /metrics route.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) TransactionSubmitted() {
	if m == nil {
		return
	}
	m.transactionsSubmitted.Inc()
}

func (m *Metrics) BlockForged() {
	if m == nil {
		return
	}
	m.blocksForged.Inc()
}

func (m *Metrics) ChainReplaced() {
	if m == nil {
		return
	}
	m.consensusReplacements.Inc()
}

func (m *Metrics) PeerFetchFailed() {
	if m == nil {
		return
	}
	m.peerFetchFailures.Inc()
}
