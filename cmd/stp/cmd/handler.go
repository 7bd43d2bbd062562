package cmd

import (
	"github.com/VukDukic/Simple-Trigger-Pattern/pkg/logging"
	"github.com/VukDukic/Simple-Trigger-Pattern/pkg/platform"
	"github.com/VukDukic/Simple-Trigger-Pattern/pkg/trigger"
)

// auditHandler is the concrete handler the simulator dispatches. Per
// sub-batch it logs at debug level; the audit line per phase is guarded so
// it is emitted once per logical operation no matter how many sub-batch
// instances the dispatcher constructs.
type auditHandler struct {
	*trigger.Handler
	logger *logging.Logger
}

// newAuditFactory builds the handler factory used by simulate and serve
func newAuditFactory(logger *logging.Logger) platform.HandlerFactory {
	component := logger.WithComponent("audit-handler")
	return func(ctx *trigger.Context) (interface{}, error) {
		base, err := trigger.NewHandler(ctx)
		if err != nil {
			return nil, err
		}
		return &auditHandler{Handler: base, logger: component}, nil
	}
}

func (h *auditHandler) audit(phase trigger.Phase, alreadyRan bool, records []platform.Record) {
	h.logger.Debug("Sub-batch handled", map[string]interface{}{
		"phase":      string(phase),
		"batch_size": h.BatchSize(),
	})
	if alreadyRan {
		return
	}
	h.logger.Info("Phase body executed", map[string]interface{}{
		"phase":      string(phase),
		"batch_size": h.BatchSize(),
		"records":    len(records),
	})
}

func (h *auditHandler) BeforeInsert(records []platform.Record) error {
	h.audit(trigger.PhaseBeforeInsert, h.BeforeInsertHasRun(), records)
	return nil
}

func (h *auditHandler) BeforeUpdate(records []platform.Record) error {
	h.audit(trigger.PhaseBeforeUpdate, h.BeforeUpdateHasRun(), records)
	return nil
}

func (h *auditHandler) BeforeDelete(records []platform.Record) error {
	h.audit(trigger.PhaseBeforeDelete, h.BeforeDeleteHasRun(), records)
	return nil
}

func (h *auditHandler) AfterInsert(records []platform.Record) error {
	h.audit(trigger.PhaseAfterInsert, h.AfterInsertHasRun(), records)
	return nil
}

func (h *auditHandler) AfterUpdate(records []platform.Record) error {
	h.audit(trigger.PhaseAfterUpdate, h.AfterUpdateHasRun(), records)
	return nil
}

func (h *auditHandler) AfterDelete(records []platform.Record) error {
	h.audit(trigger.PhaseAfterDelete, h.AfterDeleteHasRun(), records)
	return nil
}

func (h *auditHandler) AfterUndelete(records []platform.Record) error {
	h.audit(trigger.PhaseAfterUndelete, h.AfterUndeleteHasRun(), records)
	return nil
}
