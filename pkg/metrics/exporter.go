// Package metrics exports Prometheus-compatible metrics for trigger
// dispatch: operation, instance, and hook counters plus host gauges.
package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/common/expfmt"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// Exporter serves dispatch metrics at /metrics and implements
// platform.MetricsRecorder. Counters survive across operations for the
// lifetime of the process; the per-operation phase state itself is never
// persisted here, only aggregate counts.
type Exporter struct {
	mu        sync.RWMutex
	startTime time.Time

	operationsTotal map[string]int64 // kind -> count
	instancesTotal  map[string]int64 // phase -> count
	hooksTotal      map[string]int64 // phase -> count

	registry *promclient.Registry
}

// NewExporter creates a new exporter with Go runtime and process collectors
func NewExporter() *Exporter {
	registry := promclient.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return &Exporter{
		startTime:       time.Now(),
		operationsTotal: make(map[string]int64),
		instancesTotal:  make(map[string]int64),
		hooksTotal:      make(map[string]int64),
		registry:        registry,
	}
}

// RecordOperation counts one logical operation of the given kind
func (e *Exporter) RecordOperation(kind string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.operationsTotal[kind]++
}

// RecordInstance counts one handler instance constructed for a phase
func (e *Exporter) RecordInstance(phase string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.instancesTotal[phase]++
}

// RecordHookInvocation counts one hook body entered for a phase
func (e *Exporter) RecordHookInvocation(phase string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.hooksTotal[phase]++
}

// ServeHTTP serves Prometheus-compatible metrics
func (e *Exporter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	e.mu.RLock()
	operations := sortedCounts(e.operationsTotal)
	instances := sortedCounts(e.instancesTotal)
	hooks := sortedCounts(e.hooksTotal)
	uptime := int64(time.Since(e.startTime).Seconds())
	e.mu.RUnlock()

	fmt.Fprintf(w, "# HELP stp_uptime_seconds Time since the exporter started\n")
	fmt.Fprintf(w, "# TYPE stp_uptime_seconds gauge\n")
	fmt.Fprintf(w, "stp_uptime_seconds %d\n", uptime)

	fmt.Fprintf(w, "\n# HELP stp_operations_total Logical operations dispatched, by kind\n")
	fmt.Fprintf(w, "# TYPE stp_operations_total counter\n")
	for _, c := range operations {
		fmt.Fprintf(w, "stp_operations_total{kind=%q} %d\n", c.label, c.count)
	}

	fmt.Fprintf(w, "\n# HELP stp_handler_instances_total Handler instances constructed, by phase\n")
	fmt.Fprintf(w, "# TYPE stp_handler_instances_total counter\n")
	for _, c := range instances {
		fmt.Fprintf(w, "stp_handler_instances_total{phase=%q} %d\n", c.label, c.count)
	}

	fmt.Fprintf(w, "\n# HELP stp_hook_invocations_total Hook bodies entered, by phase\n")
	fmt.Fprintf(w, "# TYPE stp_hook_invocations_total counter\n")
	for _, c := range hooks {
		fmt.Fprintf(w, "stp_hook_invocations_total{phase=%q} %d\n", c.label, c.count)
	}

	e.writeHostMetrics(w)
	e.writeRuntimeMetrics(w)
}

// writeHostMetrics samples host CPU and memory
func (e *Exporter) writeHostMetrics(w http.ResponseWriter) {
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		fmt.Fprintf(w, "\n# HELP stp_host_cpu_usage Host CPU usage percentage (0-100)\n")
		fmt.Fprintf(w, "# TYPE stp_host_cpu_usage gauge\n")
		fmt.Fprintf(w, "stp_host_cpu_usage %.2f\n", percents[0])
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		fmt.Fprintf(w, "\n# HELP stp_host_memory_used_bytes Host memory in use\n")
		fmt.Fprintf(w, "# TYPE stp_host_memory_used_bytes gauge\n")
		fmt.Fprintf(w, "stp_host_memory_used_bytes %d\n", vm.Used)
	}
}

// writeRuntimeMetrics appends Go runtime metrics from the client registry
func (e *Exporter) writeRuntimeMetrics(w http.ResponseWriter) {
	metricFamilies, err := e.registry.Gather()
	if err != nil {
		fmt.Fprintf(w, "# Error gathering Prometheus metrics: %v\n", err)
		return
	}

	var buf bytes.Buffer
	encoder := expfmt.NewEncoder(&buf, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range metricFamilies {
		if err := encoder.Encode(mf); err != nil {
			fmt.Fprintf(w, "# Error encoding metric %s: %v\n", mf.GetName(), err)
		}
	}
	fmt.Fprintf(w, "\n%s", buf.String())
}

type labeledCount struct {
	label string
	count int64
}

// sortedCounts returns map entries in label order so output is stable
func sortedCounts(counts map[string]int64) []labeledCount {
	out := make([]labeledCount, 0, len(counts))
	for label, count := range counts {
		out = append(out, labeledCount{label: label, count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].label < out[j].label })
	return out
}
