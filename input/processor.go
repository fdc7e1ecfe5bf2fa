package input

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/go-gl/mathgl/mgl64"
)

// Processor transforms a bound value before it reaches the action.
type Processor interface {
	Process(v mgl64.Vec2) (mgl64.Vec2, error)
}

func runProcessors(procs []Processor, v mgl64.Vec2) (mgl64.Vec2, error) {
	for _, p := range procs {
		out, err := p.Process(v)
		if err != nil {
			return v, err
		}
		v = out
	}
	return v, nil
}

// Scale multiplies each axis.
type Scale struct {
	X, Y float64
}

func (s Scale) Process(v mgl64.Vec2) (mgl64.Vec2, error) {
	return mgl64.Vec2{v.X() * s.X, v.Y() * s.Y}, nil
}

// Invert flips the sign of the selected axes.
type Invert struct {
	X, Y bool
}

func (i Invert) Process(v mgl64.Vec2) (mgl64.Vec2, error) {
	if i.X {
		v[0] = -v[0]
	}
	if i.Y {
		v[1] = -v[1]
	}
	return v, nil
}

const (
	DefaultDeadzoneMin = 0.125
	DefaultDeadzoneMax = 0.925
)

// StickDeadzone zeroes deflections below Min and rescales the rest so that
// Min maps to 0 and Max or beyond maps to a unit vector.
type StickDeadzone struct {
	Min, Max float64
}

func (d StickDeadzone) Process(v mgl64.Vec2) (mgl64.Vec2, error) {
	mag := v.Len()
	if mag <= d.Min || mag == 0 {
		return mgl64.Vec2{}, nil
	}
	upper := d.Max
	if upper <= d.Min {
		upper = 1
	}
	scaled := (min(mag, upper) - d.Min) / (upper - d.Min)
	return v.Mul(scaled / mag), nil
}

// Normalize scales non-zero vectors to unit length.
type Normalize struct{}

func (Normalize) Process(v mgl64.Vec2) (mgl64.Vec2, error) {
	if v.Len() == 0 {
		return v, nil
	}
	return v.Normalize(), nil
}

// ScriptProcessor runs a tengo script over the value. The script sees the
// globals x and y and assigns the results back to them.
type ScriptProcessor struct {
	name     string
	compiled *tengo.Compiled
}

func NewScriptProcessor(name string, src []byte) (*ScriptProcessor, error) {
	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap("math"))
	if err := script.Add("x", 0.0); err != nil {
		return nil, fmt.Errorf("input: script %s: %w", name, err)
	}
	if err := script.Add("y", 0.0); err != nil {
		return nil, fmt.Errorf("input: script %s: %w", name, err)
	}
	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("input: compile script %s: %w", name, err)
	}
	return &ScriptProcessor{name: name, compiled: compiled}, nil
}

func (p *ScriptProcessor) Name() string {
	return p.name
}

func (p *ScriptProcessor) Process(v mgl64.Vec2) (mgl64.Vec2, error) {
	if err := p.compiled.Set("x", v.X()); err != nil {
		return v, fmt.Errorf("input: script %s: set x: %w", p.name, err)
	}
	if err := p.compiled.Set("y", v.Y()); err != nil {
		return v, fmt.Errorf("input: script %s: set y: %w", p.name, err)
	}
	if err := p.compiled.Run(); err != nil {
		return v, fmt.Errorf("input: script %s: run: %w", p.name, err)
	}
	return mgl64.Vec2{p.compiled.Get("x").Float(), p.compiled.Get("y").Float()}, nil
}
