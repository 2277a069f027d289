package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/obelisk-mc/obelisk/pkg/protocol"
)

const namespace = "obelisk"

// Metrics holds the server's Prometheus collectors. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	reg *prometheus.Registry

	connsActive    prometheus.Gauge
	connsTotal     prometheus.Counter
	packets        *prometheus.CounterVec
	protocolErrors *prometheus.CounterVec
	logins         *prometheus.CounterVec
	bytes          *prometheus.CounterVec
}

// New creates the collectors on a fresh registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		reg: reg,
		connsActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connections_active",
			Help:      "Number of open client connections",
		}),
		connsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "connections_total",
			Help:      "Total number of accepted client connections",
		}),
		packets: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "packets_total",
			Help:      "Packets processed by connection state and direction",
		}, []string{"state", "direction"}),
		protocolErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "protocol_errors_total",
			Help:      "Connections closed because of a protocol error, by kind",
		}, []string{"kind"}),
		logins: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Login attempts by result",
		}, []string{"result"}),
		bytes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_total",
			Help:      "Bytes transferred on client connections",
		}, []string{"direction"}),
	}
}

// Registry returns the registry the collectors are registered on.
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

func (m *Metrics) ConnOpened() {
	if m == nil {
		return
	}
	m.connsActive.Inc()
	m.connsTotal.Inc()
}

func (m *Metrics) ConnClosed() {
	if m == nil {
		return
	}
	m.connsActive.Dec()
}

func (m *Metrics) PacketIn(state string) {
	if m == nil {
		return
	}
	m.packets.WithLabelValues(state, "in").Inc()
}

func (m *Metrics) PacketOut(state string) {
	if m == nil {
		return
	}
	m.packets.WithLabelValues(state, "out").Inc()
}

func (m *Metrics) BytesIn(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.bytes.WithLabelValues("in").Add(float64(n))
}

func (m *Metrics) BytesOut(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.bytes.WithLabelValues("out").Add(float64(n))
}

// Login records a login attempt; result is e.g. "success" or "already_online".
func (m *Metrics) Login(result string) {
	if m == nil {
		return
	}
	m.logins.WithLabelValues(result).Inc()
}

// ProtocolError records a fatal connection error under kind, as produced by
// ErrorKind or a caller's own mapping.
func (m *Metrics) ProtocolError(kind string) {
	if m == nil || kind == "" {
		return
	}
	m.protocolErrors.WithLabelValues(kind).Inc()
}

var errorKinds = []struct {
	err  error
	kind string
}{
	{protocol.ErrFrameLengthTooLong, "frame_length"},
	{protocol.ErrFrameOverrun, "frame_overrun"},
	{protocol.ErrMalformedVarInt, "malformed_varint"},
	{protocol.ErrInvalidBoolean, "invalid_boolean"},
	{protocol.ErrInvalidUTF8, "invalid_utf8"},
	{protocol.ErrStringTooLong, "string_too_long"},
	{protocol.ErrInsufficientData, "truncated"},
	{protocol.ErrTrailingData, "trailing_data"},
}

// ErrorKind maps a wire format error to a low-cardinality label.
func ErrorKind(err error) string {
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return "other"
}
