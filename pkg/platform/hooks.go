package platform

// Per-phase hook interfaces. A concrete handler implements only the phases
// it cares about; the dispatcher discovers them by type assertion and skips
// phases the handler does not implement.
//
// Hook bodies that must run once per logical operation (not once per
// sub-batch) guard themselves with the embedded trigger.Handler queries.

// BeforeInserter handles the before-insert phase
type BeforeInserter interface {
	BeforeInsert(records []Record) error
}

// BeforeUpdater handles the before-update phase
type BeforeUpdater interface {
	BeforeUpdate(records []Record) error
}

// BeforeDeleter handles the before-delete phase
type BeforeDeleter interface {
	BeforeDelete(records []Record) error
}

// AfterInserter handles the after-insert phase
type AfterInserter interface {
	AfterInsert(records []Record) error
}

// AfterUpdater handles the after-update phase
type AfterUpdater interface {
	AfterUpdate(records []Record) error
}

// AfterDeleter handles the after-delete phase
type AfterDeleter interface {
	AfterDelete(records []Record) error
}

// AfterUndeleter handles the after-undelete phase
type AfterUndeleter interface {
	AfterUndelete(records []Record) error
}
