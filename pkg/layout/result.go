// Package layout is the home-screen arrangement engine: the app registry, the
// dock, the widget page, pagination, edit mode and drag-and-drop. Everything
// here is synchronous and owned by a single goroutine.
package layout

import "fmt"

// Reason explains why a layout operation did not apply.
type Reason string

const (
	ReasonNone          Reason = ""
	ReasonUnknownApp    Reason = "unknown app"
	ReasonUnknownTarget Reason = "unknown target"
	ReasonSameTarget    Reason = "source equals target"
	ReasonDockFull      Reason = "dock is full"
	ReasonAlreadyDocked Reason = "already in dock"
	ReasonNotDocked     Reason = "not in dock"
	ReasonNotRemovable  Reason = "app cannot be removed"
	ReasonInstalled     Reason = "already installed"
	ReasonNotEditing    Reason = "not in edit mode"
	ReasonDragActive    Reason = "drag already in progress"
	ReasonNoSession     Reason = "no drag in progress"
	ReasonNoZone        Reason = "no drop zone"
	ReasonWrongZone     Reason = "zone does not accept item"
	ReasonUnknownWidget Reason = "unknown widget"
)

// Result is the outcome of a mutation. Rejections are normal control flow,
// not errors.
type Result struct {
	Applied bool   `json:"applied" yaml:"applied"`
	Reason  Reason `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// Err returns the rejection as an error, or nil when the result applied or
// was a harmless no-op.
func (r Result) Err() error {
	if r.Applied || r.Reason == ReasonNone || r.Reason == ReasonSameTarget {
		return nil
	}
	return fmt.Errorf("layout: %s", r.Reason)
}

func applied() Result {
	return Result{Applied: true}
}

func rejected(r Reason) Result {
	return Result{Reason: r}
}
