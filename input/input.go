// Package input turns raw device state into named axes and actions.
package input

import (
	"sync"

	"github.com/plus3/blockmap/config"
	"github.com/plus3/blockmap/ecs"
)

// SystemName is the scheduler name of System. Systems reading State run
// after it.
const SystemName = "input_system"

// Device is the platform side of input.
type Device interface {
	KeyPressed(name string) bool
	CursorPosition() (x, y int)
	WindowSize() (w, h int)
}

// ActionState is the state of one action this tick.
type ActionState struct {
	Down        bool
	JustPressed bool
}

// State is the per-tick input snapshot, kept as a singleton.
type State struct {
	CursorX, CursorY int
	CursorInWindow   bool
	WindowWidth      int
	WindowHeight     int

	Axes    map[string]float64
	Actions map[string]ActionState
}

// Axis returns the value of an axis in [-1, 1]; 0 for unknown names.
func (s *State) Axis(name string) float64 {
	return s.Axes[name]
}

// Down reports whether any key of the action is held.
func (s *State) Down(name string) bool {
	return s.Actions[name].Down
}

// JustPressed reports whether the action went down this tick.
func (s *State) JustPressed(name string) bool {
	return s.Actions[name].JustPressed
}

// Handler evaluates bindings against a Device. Bindings may be replaced
// while the game runs.
type Handler struct {
	mu       sync.Mutex
	bindings config.Bindings
	previous map[string]bool
}

// NewHandler evaluates bindings until SetBindings replaces them.
func NewHandler(bindings config.Bindings) *Handler {
	return &Handler{
		bindings: bindings,
		previous: make(map[string]bool),
	}
}

// SetBindings swaps the bindings. Actions held across the swap do not
// report a new press.
func (h *Handler) SetBindings(bindings config.Bindings) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.bindings = bindings
}

// Bindings returns the current bindings.
func (h *Handler) Bindings() config.Bindings {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.bindings
}

// Update samples dev into state.
func (h *Handler) Update(dev Device, state *State) {
	h.mu.Lock()
	defer h.mu.Unlock()

	state.CursorX, state.CursorY = dev.CursorPosition()
	state.WindowWidth, state.WindowHeight = dev.WindowSize()
	state.CursorInWindow = state.WindowWidth > 0 && state.WindowHeight > 0 &&
		state.CursorX >= 0 && state.CursorY >= 0 &&
		state.CursorX < state.WindowWidth && state.CursorY < state.WindowHeight

	if state.Axes == nil {
		state.Axes = make(map[string]float64, len(h.bindings.Axes))
	}
	clear(state.Axes)
	for name, axis := range h.bindings.Axes {
		var v float64
		if anyPressed(dev, axis.Pos) {
			v++
		}
		if anyPressed(dev, axis.Neg) {
			v--
		}
		state.Axes[name] = v
	}

	if state.Actions == nil {
		state.Actions = make(map[string]ActionState, len(h.bindings.Actions))
	}
	clear(state.Actions)
	for name, keys := range h.bindings.Actions {
		down := anyPressed(dev, keys)
		state.Actions[name] = ActionState{
			Down:        down,
			JustPressed: down && !h.previous[name],
		}
		h.previous[name] = down
	}
}

func anyPressed(dev Device, keys []string) bool {
	for _, k := range keys {
		if dev.KeyPressed(k) {
			return true
		}
	}
	return false
}

// System samples the device into the State singleton once per tick.
type System struct {
	Handler *Handler
	Device  Device
	State   ecs.Singleton[State]
}

// Execute samples the device into the State singleton.
func (s *System) Execute(frame *ecs.UpdateFrame) {
	state := s.State.Get()
	if state == nil {
		s.State.Set(State{})
		state = s.State.Get()
	}
	s.Handler.Update(s.Device, state)
}
