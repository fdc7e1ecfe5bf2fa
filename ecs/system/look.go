package system

import (
	"log/slog"

	"github.com/milk9111/freelook/ecs"
	"github.com/milk9111/freelook/ecs/component"
	"github.com/milk9111/freelook/input"
)

const EventLookApplied ecs.EventType = "look_applied"

// LookEvent is pushed after a look rotator rotated its entity.
type LookEvent struct {
	Entity ecs.Entity
	Pitch  float64
	Yaw    float64
	Device input.Device
}

type lookBinding struct {
	action *input.Action
	name   string
	sub    input.Subscription
}

// LookSystem connects LookRotator components to their look actions. It
// subscribes when a rotator becomes enabled and unsubscribes when it is
// disabled, removed or its entity destroyed. It must run before InputSystem.
type LookSystem struct {
	actions   *input.ActionMap
	deltaTime func() float64

	bound  map[ecs.Entity]*lookBinding
	warned map[ecs.Entity]bool
	seen   map[ecs.Entity]bool
}

// NewLookSystem returns a look system resolving actions from actions.
// deltaTime reports the seconds elapsed since the previous frame.
func NewLookSystem(actions *input.ActionMap, deltaTime func() float64) *LookSystem {
	return &LookSystem{
		actions:   actions,
		deltaTime: deltaTime,
		bound:     map[ecs.Entity]*lookBinding{},
		warned:    map[ecs.Entity]bool{},
		seen:      map[ecs.Entity]bool{},
	}
}

func (s *LookSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	clear(s.seen)

	ecs.ForEach(w, component.LookRotatorComponent.Kind(), func(e ecs.Entity, rot *component.LookRotator) {
		s.seen[e] = true
		b := s.bound[e]
		switch {
		case !rot.Enabled:
			if b != nil {
				s.disable(e)
			}
			delete(s.warned, e)
		case b != nil && b.name != rot.Action:
			s.disable(e)
			delete(s.warned, e)
			s.enable(w, e, rot)
		case b == nil:
			s.enable(w, e, rot)
		}
	})

	for e := range s.bound {
		if !s.seen[e] {
			s.disable(e)
		}
	}
	for e := range s.warned {
		if !s.seen[e] {
			delete(s.warned, e)
		}
	}
}

// Bound reports whether e is currently subscribed to its look action.
func (s *LookSystem) Bound(e ecs.Entity) bool {
	_, ok := s.bound[e]
	return ok
}

func (s *LookSystem) enable(w *ecs.World, e ecs.Entity, rot *component.LookRotator) {
	action, ok := s.actions.Action(rot.Action)
	if rot.Action == "" || !ok {
		if !s.warned[e] {
			slog.Warn("look: no look action assigned", "entity", e, "action", rot.Action)
			s.warned[e] = true
		}
		return
	}
	delete(s.warned, e)

	action.Enable()
	sub := action.OnPerformed(func(ctx input.CallbackContext) {
		s.onLook(w, e, ctx)
	})
	s.bound[e] = &lookBinding{action: action, name: rot.Action, sub: sub}
	slog.Debug("look: enabled", "entity", e, "action", rot.Action)
}

func (s *LookSystem) disable(e ecs.Entity) {
	b, ok := s.bound[e]
	if !ok {
		return
	}
	b.action.RemovePerformed(b.sub)
	b.action.Disable()
	delete(s.bound, e)
	slog.Debug("look: disabled", "entity", e, "action", b.name)
}

func (s *LookSystem) onLook(w *ecs.World, e ecs.Entity, ctx input.CallbackContext) {
	rot, ok := ecs.Get(w, e, component.LookRotatorComponent.Kind())
	if !ok || !rot.Enabled {
		return
	}
	dt := 0.0
	if s.deltaTime != nil {
		dt = s.deltaTime()
	}

	pitch, yaw := rot.Apply(ctx.ReadValue(), dt, ctx.Device())

	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		t.SetEuler(pitch, yaw, 0)
	}
	w.Events().Push(ecs.Event{
		Type: EventLookApplied,
		Data: LookEvent{Entity: e, Pitch: pitch, Yaw: yaw, Device: ctx.Device()},
	})
}
