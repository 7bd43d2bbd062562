// Package platform is the host-side adapter around the trigger guard: it
// owns operation lifecycles, splits record sets into sub-batches, constructs
// one handler instance per sub-batch per phase, and fires the lifecycle
// phases in platform order. The guard in pkg/trigger stays order-agnostic;
// this package is where the order is decided.
package platform

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/VukDukic/Simple-Trigger-Pattern/pkg/logging"
	"github.com/VukDukic/Simple-Trigger-Pattern/pkg/trigger"
)

// DefaultSubBatchLimit is the maximum records per handler instance when the
// config does not say otherwise.
const DefaultSubBatchLimit = 200

// HandlerFactory constructs a concrete handler instance for one sub-batch.
// Implementations typically call trigger.NewHandler(ctx) and embed the
// result; the returned value is probed for the hook interfaces in hooks.go.
type HandlerFactory func(ctx *trigger.Context) (interface{}, error)

// MetricsRecorder is an interface for recording dispatch metrics
type MetricsRecorder interface {
	RecordOperation(kind string)
	RecordInstance(phase string)
	RecordHookInvocation(phase string)
}

// Config configures a Dispatcher
type Config struct {
	// SubBatchLimit is the maximum records per sub-batch. Zero means
	// DefaultSubBatchLimit.
	SubBatchLimit int

	// Logger receives dispatch logs. Nil means a default INFO text logger.
	Logger *logging.Logger

	// Metrics receives dispatch metrics. Optional.
	Metrics MetricsRecorder
}

// Dispatcher runs logical operations end to end. Each Run begins a scoped
// registry entry, dispatches every phase the operation kind fires, and tears
// the entry down on return so no phase state survives the operation.
type Dispatcher struct {
	registry *trigger.Registry
	factory  HandlerFactory
	limit    int
	logger   *logging.Logger
	metrics  MetricsRecorder
}

// NewDispatcher creates a dispatcher for the given handler factory
func NewDispatcher(factory HandlerFactory, cfg Config) (*Dispatcher, error) {
	if factory == nil {
		return nil, errors.New("handler factory is required")
	}

	limit := cfg.SubBatchLimit
	if limit == 0 {
		limit = DefaultSubBatchLimit
	}
	if limit < 0 {
		return nil, fmt.Errorf("invalid sub-batch limit: %d", limit)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewLogger(logging.INFO, false)
	}

	return &Dispatcher{
		registry: trigger.NewRegistry(),
		factory:  factory,
		limit:    limit,
		logger:   logger.WithComponent("dispatcher"),
		metrics:  cfg.Metrics,
	}, nil
}

// Report summarizes one logical operation's dispatch
type Report struct {
	OperationID     string         `json:"operation_id" yaml:"operation_id"`
	Kind            OperationKind  `json:"kind" yaml:"kind"`
	Records         int            `json:"records" yaml:"records"`
	SubBatches      int            `json:"sub_batches" yaml:"sub_batches"`
	Instances       int            `json:"instances" yaml:"instances"`
	HookInvocations map[string]int `json:"hook_invocations,omitempty" yaml:"hook_invocations,omitempty"`
	PhasesRun       []string       `json:"phases_run,omitempty" yaml:"phases_run,omitempty"`
	ElapsedMs       float64        `json:"elapsed_ms" yaml:"elapsed_ms"`
}

// Run executes one logical operation over the given records. The host
// contract: one registry entry per operation, sequential sub-batch dispatch,
// before-phases then after-phases, one fresh handler instance per sub-batch
// per phase, teardown on return even when a handler fails.
func (d *Dispatcher) Run(kind OperationKind, records []Record) (*Report, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("unknown operation kind: %s", kind)
	}

	operationID := uuid.New().String()
	report := &Report{
		OperationID:     operationID,
		Kind:            kind,
		Records:         len(records),
		HookInvocations: make(map[string]int),
	}

	chunks := chunkRecords(records, d.limit)
	report.SubBatches = len(chunks)
	if len(chunks) == 0 {
		// The host never fires phases for an empty record set
		d.logger.Debug("Skipping empty operation", map[string]interface{}{
			"operation_id": operationID,
			"kind":         string(kind),
		})
		return report, nil
	}

	start := time.Now()
	state := d.registry.Begin(operationID)
	defer d.registry.End(operationID)

	if d.metrics != nil {
		d.metrics.RecordOperation(string(kind))
	}
	d.logger.Info("Operation started", map[string]interface{}{
		"operation_id": operationID,
		"kind":         string(kind),
		"records":      len(records),
		"sub_batches":  len(chunks),
	})

	for _, phase := range kind.Phases() {
		for _, chunk := range chunks {
			ctx := &trigger.Context{
				OperationID: operationID,
				BatchSize:   len(chunk),
				Executing:   true,
				State:       state,
			}

			handler, err := d.factory(ctx)
			if err != nil {
				d.logger.Error("Handler construction failed", map[string]interface{}{
					"operation_id": operationID,
					"phase":        string(phase),
				})
				return report, fmt.Errorf("constructing handler for phase %s: %w", phase, err)
			}
			report.Instances++
			if d.metrics != nil {
				d.metrics.RecordInstance(string(phase))
			}

			invoked, err := invokeHook(handler, phase, chunk)
			if err != nil {
				return report, fmt.Errorf("phase %s: %w", phase, err)
			}
			if invoked {
				report.HookInvocations[string(phase)]++
				if d.metrics != nil {
					d.metrics.RecordHookInvocation(string(phase))
				}
			}
		}
	}

	// Record which phases the guard saw before the state is torn down
	snapshot := state.Snapshot()
	for _, phase := range trigger.AllPhases() {
		if snapshot[phase] {
			report.PhasesRun = append(report.PhasesRun, string(phase))
		}
	}
	report.ElapsedMs = float64(time.Since(start).Microseconds()) / 1000.0

	d.logger.Info("Operation finished", map[string]interface{}{
		"operation_id": operationID,
		"instances":    report.Instances,
		"phases_run":   report.PhasesRun,
	})
	return report, nil
}

// invokeHook calls the hook matching phase if the handler implements it.
// Returns false when the handler does not handle the phase.
func invokeHook(handler interface{}, phase trigger.Phase, records []Record) (bool, error) {
	switch phase {
	case trigger.PhaseBeforeInsert:
		if hook, ok := handler.(BeforeInserter); ok {
			return true, hook.BeforeInsert(records)
		}
	case trigger.PhaseBeforeUpdate:
		if hook, ok := handler.(BeforeUpdater); ok {
			return true, hook.BeforeUpdate(records)
		}
	case trigger.PhaseBeforeDelete:
		if hook, ok := handler.(BeforeDeleter); ok {
			return true, hook.BeforeDelete(records)
		}
	case trigger.PhaseAfterInsert:
		if hook, ok := handler.(AfterInserter); ok {
			return true, hook.AfterInsert(records)
		}
	case trigger.PhaseAfterUpdate:
		if hook, ok := handler.(AfterUpdater); ok {
			return true, hook.AfterUpdate(records)
		}
	case trigger.PhaseAfterDelete:
		if hook, ok := handler.(AfterDeleter); ok {
			return true, hook.AfterDelete(records)
		}
	case trigger.PhaseAfterUndelete:
		if hook, ok := handler.(AfterUndeleter); ok {
			return true, hook.AfterUndelete(records)
		}
	}
	return false, nil
}
