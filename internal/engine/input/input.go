// Package input holds platform-neutral input events and the per-process input state.
package input

// Key identifies one of the keys the viewer reacts to.
// Platform backends translate their native key codes into this closed set
// and drop everything else.
type Key int

const (
	KeyUnknown Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyW
	KeyA
	KeyS
	KeyD
	KeyEscape
	KeyF12
)

var keyNames = map[Key]string{
	KeyUp:     "up",
	KeyDown:   "down",
	KeyLeft:   "left",
	KeyRight:  "right",
	KeyW:      "w",
	KeyA:      "a",
	KeyS:      "s",
	KeyD:      "d",
	KeyEscape: "escape",
	KeyF12:    "f12",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "unknown"
}

// Event types delivered by the host platform.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventScroll
)

// Event represents a processed input event.
type Event struct {
	Type    EventType
	Key     Key
	Width   int
	Height  int
	CursorX float64 // absolute window coordinates
	CursorY float64
	ScrollY float64
}

// State is the current key-pressed set and cursor tracking.
// It is mutated only by Apply and CursorDelta.
type State struct {
	keyDown     map[Key]bool
	lastX       float64
	lastY       float64
	firstSample bool
}

// NewState creates an input state with the cursor seeded at (x, y).
func NewState(x, y float64) *State {
	return &State{
		keyDown:     make(map[Key]bool),
		lastX:       x,
		lastY:       y,
		firstSample: true,
	}
}

// Apply records a key press or release. Other events and unknown keys are ignored.
func (s *State) Apply(ev Event) {
	if ev.Key == KeyUnknown {
		return
	}
	switch ev.Type {
	case EventKeyDown:
		s.keyDown[ev.Key] = true
	case EventKeyUp:
		delete(s.keyDown, ev.Key)
	}
}

// IsDown reports whether k is currently held.
func (s *State) IsDown(k Key) bool {
	return s.keyDown[k]
}

// CursorDelta consumes an absolute cursor position and returns the offset
// since the previous one. The vertical offset is inverted so that moving the
// cursor up yields a positive value. The first sample only seeds the tracked
// position and reports ok == false.
func (s *State) CursorDelta(x, y float64) (dx, dy float64, ok bool) {
	if s.firstSample {
		s.lastX, s.lastY = x, y
		s.firstSample = false
		return 0, 0, false
	}
	dx = x - s.lastX
	dy = s.lastY - y
	s.lastX, s.lastY = x, y
	return dx, dy, true
}
