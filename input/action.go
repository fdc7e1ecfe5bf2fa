package input

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
)

// Mode decides when an action reports performed.
type Mode int

const (
	// ModeValue fires when the value changes while the action is actuated.
	ModeValue Mode = iota
	// ModePassThrough fires every frame while the action is actuated.
	ModePassThrough
)

// Control pairs a binding with the processors applied to its raw value.
type Control struct {
	Binding    Binding
	Processors []Processor
}

func (c Control) read(src Source) (mgl64.Vec2, error) {
	v := c.Binding.Read(src)
	if len(c.Processors) == 0 {
		return v, nil
	}
	return runProcessors(c.Processors, v)
}

// Subscription identifies a performed handler so it can be removed.
type Subscription uint64

// Handler receives performed callbacks.
type Handler func(ctx CallbackContext)

// CallbackContext describes one performed callback.
type CallbackContext struct {
	action *Action
	value  mgl64.Vec2
	device Device
}

func (c CallbackContext) Action() *Action {
	return c.action
}

// ReadValue returns the processed 2D value that triggered the callback.
func (c CallbackContext) ReadValue() mgl64.Vec2 {
	return c.value
}

// Device returns the device of the binding that won this frame.
func (c CallbackContext) Device() Device {
	return c.device
}

type handlerEntry struct {
	sub Subscription
	fn  Handler
}

// Action is a named 2D input. It only polls its bindings while enabled.
// When several bindings are actuated in a frame the one with the largest
// magnitude wins.
type Action struct {
	name       string
	mode       Mode
	controls   []Control
	processors []Processor

	enabled  int
	handlers []handlerEntry
	nextSub  Subscription

	value  mgl64.Vec2
	device Device
	failed bool
}

func NewAction(name string, mode Mode, controls ...Control) *Action {
	return &Action{name: name, mode: mode, controls: controls}
}

func (a *Action) Name() string {
	return a.name
}

func (a *Action) Mode() Mode {
	return a.mode
}

// Rebind swaps the mode, controls and processors in place. Subscriptions and
// the enable count survive.
func (a *Action) Rebind(mode Mode, controls []Control, processors []Processor) {
	a.mode = mode
	a.controls = controls
	a.processors = processors
	a.failed = false
	if a.Enabled() {
		a.reset()
	}
}

// Enable adds one enable reference. The first reference resets binding state
// so stale deltas are not reported.
func (a *Action) Enable() {
	a.enabled++
	if a.enabled == 1 {
		a.reset()
	}
}

// Disable drops one enable reference. Extra calls are ignored.
func (a *Action) Disable() {
	if a.enabled == 0 {
		return
	}
	a.enabled--
	if a.enabled == 0 {
		a.value, a.device = mgl64.Vec2{}, DeviceNone
	}
}

func (a *Action) Enabled() bool {
	return a.enabled > 0
}

// OnPerformed registers fn and returns a handle for RemovePerformed.
func (a *Action) OnPerformed(fn Handler) Subscription {
	a.nextSub++
	a.handlers = append(a.handlers, handlerEntry{sub: a.nextSub, fn: fn})
	return a.nextSub
}

// RemovePerformed unregisters a handler. It returns false for unknown handles.
func (a *Action) RemovePerformed(sub Subscription) bool {
	for i, h := range a.handlers {
		if h.sub == sub {
			a.handlers = append(a.handlers[:i:i], a.handlers[i+1:]...)
			return true
		}
	}
	return false
}

// Subscribers returns the number of registered handlers.
func (a *Action) Subscribers() int {
	return len(a.handlers)
}

// Reset drops binding state and the last value, as if the action had just
// been enabled.
func (a *Action) Reset() {
	a.reset()
}

func (a *Action) reset() {
	for _, c := range a.controls {
		if r, ok := c.Binding.(resetter); ok {
			r.Reset()
		}
	}
	a.value, a.device = mgl64.Vec2{}, DeviceNone
}

// Update polls the bindings once and fires performed handlers.
func (a *Action) Update(src Source) {
	if !a.Enabled() {
		return
	}

	var best mgl64.Vec2
	bestLen, device := 0.0, DeviceNone
	for _, c := range a.controls {
		v, err := c.read(src)
		if err != nil {
			a.reportError(err)
			continue
		}
		if l := v.Len(); l > bestLen {
			best, bestLen, device = v, l, c.Binding.Device()
		}
	}
	if bestLen > 0 && len(a.processors) > 0 {
		v, err := runProcessors(a.processors, best)
		if err != nil {
			a.reportError(err)
		}
		best = v
	}

	prev := a.value
	a.value, a.device = best, device
	if best.Len() == 0 {
		return
	}
	if a.mode == ModeValue && best == prev {
		return
	}
	a.fire(CallbackContext{action: a, value: best, device: device})
}

func (a *Action) fire(ctx CallbackContext) {
	// handlers may unsubscribe while being called
	handlers := append([]handlerEntry(nil), a.handlers...)
	for _, h := range handlers {
		h.fn(ctx)
	}
}

func (a *Action) reportError(err error) {
	if a.failed {
		return
	}
	a.failed = true
	slog.Warn("input: processor failed", "action", a.name, "err", err)
}
