package layout

import "time"

// LongPressDelay is how long a press must be held to enter edit mode.
const LongPressDelay = 500 * time.Millisecond

// Mode is the home-screen interaction mode.
type Mode int

const (
	Normal Mode = iota
	Edit
)

func (m Mode) String() string {
	if m == Edit {
		return "edit"
	}
	return "normal"
}

// Scheduler runs fire once after d unless the returned cancel is called
// first. Implementations must invoke fire on the goroutine that owns the
// Home value.
type Scheduler interface {
	After(d time.Duration, fire func()) (cancel func())
}

// HomeAction tells the caller what a Home press did.
type HomeAction int

const (
	// HomeExitedEdit means the press was consumed leaving edit mode.
	HomeExitedEdit HomeAction = iota
	// HomeNavigate means the caller should return to the home screen.
	HomeNavigate
)

// EditMode is the Normal/Edit state machine plus the long-press timer.
type EditMode struct {
	mode   Mode
	sched  Scheduler
	cancel func()
	armed  uint64
	seq    uint64
	reg    *Registry

	// onExit runs whenever edit mode is left.
	onExit func()
}

func newEditMode(sched Scheduler, reg *Registry) *EditMode {
	return &EditMode{sched: sched, reg: reg}
}

func (e *EditMode) Mode() Mode {
	return e.mode
}

func (e *EditMode) Editing() bool {
	return e.mode == Edit
}

// Armed reports whether a long press is pending.
func (e *EditMode) Armed() bool {
	return e.armed != 0
}

// PressBegin arms the long-press timer. Nothing changes until it fires.
func (e *EditMode) PressBegin() {
	if e.mode == Edit || e.sched == nil {
		return
	}
	e.PressEnd()
	e.seq++
	token := e.seq
	e.armed = token
	e.cancel = e.sched.After(LongPressDelay, func() {
		if e.armed != token {
			return
		}
		e.Enter()
	})
}

// PressEnd disarms a pending long press.
func (e *EditMode) PressEnd() {
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	e.armed = 0
}

// Enter switches to edit mode immediately.
func (e *EditMode) Enter() {
	e.PressEnd()
	e.mode = Edit
}

// Done leaves edit mode. It reports whether the mode changed.
func (e *EditMode) Done() bool {
	e.PressEnd()
	if e.mode != Edit {
		return false
	}
	e.mode = Normal
	if e.onExit != nil {
		e.onExit()
	}
	return true
}

// Home is the overloaded home button: it leaves edit mode when editing and
// asks for navigation otherwise.
func (e *EditMode) Home() HomeAction {
	if e.Done() {
		return HomeExitedEdit
	}
	return HomeNavigate
}

// TapAllowed reports whether tapping an icon may open its app.
func (e *EditMode) TapAllowed() bool {
	return e.mode != Edit
}

// Remove uninstalls id, but only while editing.
func (e *EditMode) Remove(id string) Result {
	if e.mode != Edit {
		return rejected(ReasonNotEditing)
	}
	return e.reg.Uninstall(id)
}
