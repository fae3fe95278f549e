package metrics

import (
	"net/http"

	"go-ipconf/internal/parser"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Registry = prometheus.NewRegistry()

	ParseRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ipconf_parse_runs_total",
		Help: "Configuration texts parsed, by source.",
	}, []string{"source"})

	ParsedLines = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ipconf_parsed_lines_total",
		Help: "Input lines read by the parser.",
	})

	InterfacesFound = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ipconf_interfaces_found_total",
		Help: "Interfaces with at least one address after aggregation.",
	})

	SNMPErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ipconf_snmp_errors_total",
		Help: "Failed SNMP collections, by device.",
	}, []string{"device"})
)

func init() {
	Registry.MustRegister(ParseRuns, ParsedLines, InterfacesFound, SNMPErrors)
}

// Observe records one summarized parse run.
func Observe(source string, res *parser.Result) {
	ParseRuns.WithLabelValues(source).Inc()
	ParsedLines.Add(float64(res.Lines))
	InterfacesFound.Add(float64(res.InterfaceCount()))
}

func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
