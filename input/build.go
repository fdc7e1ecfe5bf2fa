package input

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/freelook/prefabs"
)

// BuildActionMap creates one action per spec entry.
func BuildActionMap(spec *prefabs.ActionsSpec, loader *prefabs.Loader) (*ActionMap, error) {
	m := NewActionMap()
	if spec == nil {
		return m, nil
	}
	for _, as := range spec.Actions {
		a, err := BuildAction(as, loader)
		if err != nil {
			return nil, err
		}
		if err := m.Add(a); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// BuildAction creates an action from its spec.
func BuildAction(spec prefabs.ActionSpec, loader *prefabs.Loader) (*Action, error) {
	a := NewAction(spec.Name, ModeValue)
	if err := ConfigureAction(a, spec, loader); err != nil {
		return nil, err
	}
	return a, nil
}

// ConfigureAction rebinds an existing action from spec, keeping its
// subscriptions. On error the action is left untouched.
func ConfigureAction(a *Action, spec prefabs.ActionSpec, loader *prefabs.Loader) error {
	b, err := buildBinding(spec, loader)
	if err != nil {
		return err
	}
	b.apply(a)
	return nil
}

// actionBinding is a fully built action configuration not yet applied.
type actionBinding struct {
	mode       Mode
	controls   []Control
	processors []Processor
}

func (b actionBinding) apply(a *Action) {
	a.Rebind(b.mode, b.controls, b.processors)
}

func buildBinding(spec prefabs.ActionSpec, loader *prefabs.Loader) (actionBinding, error) {
	mode, err := parseMode(spec.Mode)
	if err != nil {
		return actionBinding{}, fmt.Errorf("input: action %q: %w", spec.Name, err)
	}
	controls := make([]Control, 0, len(spec.Bindings))
	for i, bs := range spec.Bindings {
		c, err := buildControl(bs, loader)
		if err != nil {
			return actionBinding{}, fmt.Errorf("input: action %q: binding %d: %w", spec.Name, i, err)
		}
		controls = append(controls, c)
	}
	procs, err := buildProcessors(spec.Processors, loader)
	if err != nil {
		return actionBinding{}, fmt.Errorf("input: action %q: %w", spec.Name, err)
	}
	return actionBinding{mode: mode, controls: controls, processors: procs}, nil
}

// ReconfigureActionMap applies spec to m. Existing actions are rebound in
// place, new ones are added. Actions missing from spec are kept as they are.
// Every action is built before any is applied, so an error leaves m unchanged.
func ReconfigureActionMap(m *ActionMap, spec *prefabs.ActionsSpec, loader *prefabs.Loader) error {
	type update struct {
		existing *Action
		name     string
		binding  actionBinding
	}
	updates := make([]update, 0, len(spec.Actions))
	seen := map[string]bool{}
	for _, as := range spec.Actions {
		if seen[as.Name] {
			return fmt.Errorf("%w: %q", ErrDuplicateAction, as.Name)
		}
		seen[as.Name] = true
		b, err := buildBinding(as, loader)
		if err != nil {
			return err
		}
		existing, _ := m.Action(as.Name)
		updates = append(updates, update{existing: existing, name: as.Name, binding: b})
	}

	for _, u := range updates {
		if u.existing != nil {
			u.binding.apply(u.existing)
			continue
		}
		a := NewAction(u.name, u.binding.mode)
		u.binding.apply(a)
		if err := m.Add(a); err != nil {
			return err
		}
	}
	return nil
}

func parseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "value":
		return ModeValue, nil
	case "pass_through", "passthrough":
		return ModePassThrough, nil
	default:
		return ModeValue, fmt.Errorf("unknown mode %q", s)
	}
}

func buildControl(spec prefabs.BindingSpec, loader *prefabs.Loader) (Control, error) {
	var b Binding
	switch strings.ToLower(spec.Type) {
	case "mouse_delta":
		b = &MouseDelta{}
	case "gamepad_stick":
		stick, err := parseStick(spec.Stick)
		if err != nil {
			return Control{}, err
		}
		b = &GamepadStick{Stick: stick}
	case "composite_2d":
		c := &Composite2D{Normalize: spec.Normalize}
		var err error
		if c.Up, err = parseKeys(spec.Up); err != nil {
			return Control{}, err
		}
		if c.Down, err = parseKeys(spec.Down); err != nil {
			return Control{}, err
		}
		if c.Left, err = parseKeys(spec.Left); err != nil {
			return Control{}, err
		}
		if c.Right, err = parseKeys(spec.Right); err != nil {
			return Control{}, err
		}
		b = c
	default:
		return Control{}, fmt.Errorf("unknown binding type %q", spec.Type)
	}
	procs, err := buildProcessors(spec.Processors, loader)
	if err != nil {
		return Control{}, err
	}
	return Control{Binding: b, Processors: procs}, nil
}

func parseStick(s string) (Stick, error) {
	switch strings.ToLower(s) {
	case "", "right":
		return StickRight, nil
	case "left":
		return StickLeft, nil
	default:
		return StickRight, fmt.Errorf("unknown stick %q", s)
	}
}

func parseKeys(names []string) ([]ebiten.Key, error) {
	keys := make([]ebiten.Key, 0, len(names))
	for _, name := range names {
		var k ebiten.Key
		if err := k.UnmarshalText([]byte(name)); err != nil {
			return nil, fmt.Errorf("key %q: %w", name, err)
		}
		keys = append(keys, k)
	}
	return keys, nil
}

func buildProcessors(specs []prefabs.ProcessorSpec, loader *prefabs.Loader) ([]Processor, error) {
	var procs []Processor
	for i, ps := range specs {
		p, err := buildProcessor(ps, loader)
		if err != nil {
			return nil, fmt.Errorf("processor %d: %w", i, err)
		}
		procs = append(procs, p)
	}
	return procs, nil
}

func buildProcessor(spec prefabs.ProcessorSpec, loader *prefabs.Loader) (Processor, error) {
	switch strings.ToLower(spec.Type) {
	case "scale":
		return Scale{X: spec.X, Y: spec.Y}, nil
	case "invert":
		return Invert{X: spec.InvertX, Y: spec.InvertY}, nil
	case "stick_deadzone":
		d := StickDeadzone{Min: spec.Min, Max: spec.Max}
		if d.Min == 0 && d.Max == 0 {
			d = StickDeadzone{Min: DefaultDeadzoneMin, Max: DefaultDeadzoneMax}
		}
		return d, nil
	case "normalize":
		return Normalize{}, nil
	case "script":
		if loader == nil {
			return nil, fmt.Errorf("script %q: no loader", spec.Script)
		}
		src, err := loader.Load(spec.Script)
		if err != nil {
			return nil, err
		}
		return NewScriptProcessor(spec.Script, src)
	default:
		return nil, fmt.Errorf("unknown processor type %q", spec.Type)
	}
}
