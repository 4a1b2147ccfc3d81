package wicker

import "fmt"

// NotFoundError reports a failed lookup by identifier or by list value.
// Governed by the manager's soft-error mode: when soft errors are on the
// operation that would return this error becomes a no-op instead.
type NotFoundError struct {
	What string // "entity", "item", "style", ...
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("wicker: %s %q not found", e.What, e.Key)
}

// RangeError reports an out-of-range index passed to a selection or child
// accessor. Governed by the soft-error mode like NotFoundError.
type RangeError struct {
	What  string
	Index int
	Len   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("wicker: %s index %d out of range (len %d)", e.What, e.Index, e.Len)
}

// softFail resolves a recoverable error against the entity's soft-error mode:
// nil (swallow) when soft errors are on, the error itself otherwise. Entities
// not attached to a Manager are strict.
func (e *Entity) softFail(err error) error {
	if e.ui != nil && e.ui.softErrors {
		return nil
	}
	return err
}
