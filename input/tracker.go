package input

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Aryetis/CatalystAPI/scope"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
)

// ErrHookRegistrationFailed is returned when the OS refuses one of the
// low-level hook registrations. The tracker cannot operate with only
// one hook, so a partial registration is rolled back before this is
// surfaced.
var ErrHookRegistrationFailed = errors.New("hook registration failed")

// WheelPulseWindow is how long a wheel tick counts as "held" after the
// pulse, given no newer pulse in the other direction.
const WheelPulseWindow = 200 * time.Millisecond

// keyState is the two-bit state machine kept per key and per button:
// held tracks the physical down/up edge, toggle flips on every release
// for lock-key style latching.
type keyState struct {
	held   bool
	toggle bool
}

// Tracker owns the key/button/cursor state table. One instance exists
// per run; all state is instance-owned, nothing package-level.
//
// Raw events arrive on the OS hook thread while queries come from the
// consumer's polling loop, so every table access happens under a short
// mutex hold: the hook callback runs inside OS-owned dispatch and must
// never block.
type Tracker struct {
	mu      sync.Mutex
	keys    [keyTableSize]keyState
	buttons [buttonCount]keyState
	cursorX int32
	cursorY int32

	// Wheel pulse: latest direction and when it fired.
	wheelDir Button
	wheelAt  time.Time

	now func() time.Time

	gate    *scope.Gate
	backend hookBackend
	hooked  bool
	log     *logger.Logger
}

// hookBackend is the platform side of the tracker: it registers the
// OS-level hooks and feeds translated RawEvents back through apply.
type hookBackend interface {
	// install registers both hooks, or neither. A partial failure is
	// rolled back before the error returns.
	install(apply func(RawEvent)) error

	// uninstall removes the hooks. Idempotent.
	uninstall()

	// lockKeyStates reports the OS's authoritative toggle state for
	// lock-style keys, used to seed parity on enable.
	lockKeyStates() map[KeyCode]bool
}

// NewTracker creates a tracker wired to the platform hook facility and
// a foreground-window scope gate in global-capture mode.
func NewTracker() *Tracker {
	return NewTrackerWithGate(scope.NewGate(scope.NewSystemQuery()))
}

// NewTrackerWithGate creates a tracker over a caller-supplied gate.
func NewTrackerWithGate(gate *scope.Gate) *Tracker {
	return &Tracker{
		now:     time.Now,
		gate:    gate,
		backend: newPlatformBackend(),
		log:     logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, "input-tracker")),
	}
}

// EnableHook registers the low-level keyboard and mouse hooks, seeds
// lock-key toggle parity from the OS's current state and starts the
// scope refresher. No-op when already enabled.
func (t *Tracker) EnableHook() error {
	t.mu.Lock()
	if t.hooked {
		t.mu.Unlock()
		return nil
	}
	t.mu.Unlock()

	if err := t.backend.install(t.Apply); err != nil {
		return fmt.Errorf("%w: %v", ErrHookRegistrationFailed, err)
	}

	t.mu.Lock()
	for code, on := range t.backend.lockKeyStates() {
		t.keys[code&(keyTableSize-1)].toggle = on
	}
	t.hooked = true
	t.mu.Unlock()

	t.gate.Start(scope.DefaultRefreshInterval)
	t.log.Infoln("Input hooks enabled")
	return nil
}

// DisableHook unregisters both hooks, stops the scope refresher and
// clears the whole state table so nothing leaks into the next session.
// Safe to call at any time; disabling twice is a no-op.
func (t *Tracker) DisableHook() {
	t.mu.Lock()
	if !t.hooked {
		t.mu.Unlock()
		return
	}
	t.hooked = false
	t.mu.Unlock()

	t.backend.uninstall()
	t.gate.Stop()

	t.mu.Lock()
	t.resetLocked()
	t.mu.Unlock()
	t.log.Infoln("Input hooks disabled")
}

func (t *Tracker) resetLocked() {
	t.keys = [keyTableSize]keyState{}
	t.buttons = [buttonCount]keyState{}
	t.cursorX, t.cursorY = 0, 0
	t.wheelDir = 0
	t.wheelAt = time.Time{}
}

// SetScopeTarget restricts queries to the time the named process owns
// the foreground window. Empty means global capture.
func (t *Tracker) SetScopeTarget(processName string) {
	t.gate.SetTarget(processName)
}

// Apply folds one raw event into the state table. Events are applied in
// delivery order, exactly once each; only bit-flag updates happen here,
// never blocking work.
func (t *Tracker) Apply(ev RawEvent) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch ev.Kind {
	case KeyDown:
		t.keys[ev.Key&(keyTableSize-1)].held = true
	case KeyUp:
		k := &t.keys[ev.Key&(keyTableSize-1)]
		k.held = false
		k.toggle = !k.toggle
	case ButtonDown:
		if ev.Button >= 0 && ev.Button < buttonCount {
			t.buttons[ev.Button].held = true
		}
	case ButtonUp:
		if ev.Button >= 0 && ev.Button < buttonCount {
			b := &t.buttons[ev.Button]
			b.held = false
			b.toggle = !b.toggle
		}
	case Wheel:
		if ev.WheelDelta == 0 {
			return
		}
		if ev.WheelDelta > 0 {
			t.wheelDir = WheelUp
		} else {
			t.wheelDir = WheelDown
		}
		t.wheelAt = t.now()
	case Move:
		t.cursorX, t.cursorY = ev.X, ev.Y
	}
}

// IsHeld reports whether the key is currently physically down. Out of
// scope, the answer is unconditionally false.
func (t *Tracker) IsHeld(code KeyCode) bool {
	if !t.gate.InScope() {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.keys[code&(keyTableSize-1)].held
}

// IsToggled reports the key's toggle parity, which flips on every
// release. Out of scope, the answer is unconditionally false.
func (t *Tracker) IsToggled(code KeyCode) bool {
	if !t.gate.InScope() {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.keys[code&(keyTableSize-1)].toggle
}

// IsButtonHeld reports whether the button is held. For WheelUp and
// WheelDown it reports the decaying pulse: true only while that
// direction was the latest pulse and it is younger than
// WheelPulseWindow. Out of scope, the answer is unconditionally false.
func (t *Tracker) IsButtonHeld(b Button) bool {
	if !t.gate.InScope() {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if b == WheelUp || b == WheelDown {
		return t.wheelDir == b && t.now().Sub(t.wheelAt) < WheelPulseWindow
	}
	if b < 0 || b >= buttonCount {
		return false
	}
	return t.buttons[b].held
}

// IsButtonToggled reports the button's toggle parity. Wheel
// pseudo-buttons have no release edge and therefore no parity.
func (t *Tracker) IsButtonToggled(b Button) bool {
	if !t.gate.InScope() {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if b < 0 || b >= buttonCount || b == WheelUp || b == WheelDown {
		return false
	}
	return t.buttons[b].toggle
}

// CursorPosition returns the last observed screen coordinates of the
// mouse cursor. Position is not scope-gated, matching the original
// behavior this tracker models.
func (t *Tracker) CursorPosition() (x, y int32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cursorX, t.cursorY
}
