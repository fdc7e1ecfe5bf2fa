package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// defaulter is implemented by specs that pre-fill fields omitted from YAML.
type defaulter interface {
	setDefaults()
}

func LoadSpec[T any](l *Loader, filename string) (T, error) {
	var spec T
	if d, ok := any(&spec).(defaulter); ok {
		d.setDefaults()
	}
	data, err := l.Load(filename)
	if err != nil {
		return spec, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return spec, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return spec, nil
}

const (
	CameraFile  = "camera.yaml"
	ActionsFile = "actions.yaml"
	SceneFile   = "scene.yaml"
)

type TransformSpec struct {
	Position [3]float64 `yaml:"position"`
	Pitch    float64    `yaml:"pitch"`
	Yaw      float64    `yaml:"yaw"`
	Roll     float64    `yaml:"roll"`
}

// LookSpec configures a look rotator. Field names match
// component.LookSettings so the values can be copied across directly.
type LookSpec struct {
	Action           string  `yaml:"action"`
	Enabled          bool    `yaml:"enabled"`
	SensitivityX     float64 `yaml:"sensitivity_x"`
	SensitivityY     float64 `yaml:"sensitivity_y"`
	MinPitch         float64 `yaml:"min_pitch"`
	MaxPitch         float64 `yaml:"max_pitch"`
	MinYaw           float64 `yaml:"min_yaw"`
	MaxYaw           float64 `yaml:"max_yaw"`
	MouseSensitivity float64 `yaml:"mouse_sensitivity"`
	InvertY          bool    `yaml:"invert_y"`
}

func (s *LookSpec) setDefaults() {
	*s = LookSpec{
		Action:           "look",
		Enabled:          true,
		SensitivityX:     150,
		SensitivityY:     150,
		MinPitch:         -50,
		MaxPitch:         80,
		MinYaw:           -90,
		MaxYaw:           90,
		MouseSensitivity: 0.05,
	}
}

// Validate rejects inverted clamp ranges and negative sensitivities.
func (s *LookSpec) Validate() error {
	var errs []error
	if s.MinPitch > s.MaxPitch {
		errs = append(errs, fmt.Errorf("min_pitch %v > max_pitch %v", s.MinPitch, s.MaxPitch))
	}
	if s.MinYaw > s.MaxYaw {
		errs = append(errs, fmt.Errorf("min_yaw %v > max_yaw %v", s.MinYaw, s.MaxYaw))
	}
	if s.SensitivityX < 0 || s.SensitivityY < 0 || s.MouseSensitivity < 0 {
		errs = append(errs, errors.New("sensitivities must not be negative"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("prefabs: look: %w", err)
	}
	return nil
}

type CameraViewSpec struct {
	FOV  float64 `yaml:"fov"`
	Near float64 `yaml:"near"`
}

type CameraSpec struct {
	Name      string         `yaml:"name"`
	Transform TransformSpec  `yaml:"transform"`
	Look      LookSpec       `yaml:"look"`
	Camera    CameraViewSpec `yaml:"camera"`
}

func (s *CameraSpec) setDefaults() {
	s.Name = "camera"
	s.Look.setDefaults()
	s.Camera = CameraViewSpec{FOV: 70, Near: 0.1}
}

func (s *CameraSpec) Validate() error {
	if s.Camera.FOV <= 0 || s.Camera.FOV >= 180 {
		return fmt.Errorf("prefabs: camera: fov %v out of range (0, 180)", s.Camera.FOV)
	}
	return s.Look.Validate()
}

func LoadCameraSpec(l *Loader) (*CameraSpec, error) {
	spec, err := LoadSpec[CameraSpec](l, CameraFile)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// ProcessorSpec describes one input processor. Which fields apply depends on Type:
// scale (x, y), invert (invert_x, invert_y), stick_deadzone (min, max),
// normalize, script (script).
type ProcessorSpec struct {
	Type    string  `yaml:"type"`
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	InvertX bool    `yaml:"invert_x"`
	InvertY bool    `yaml:"invert_y"`
	Min     float64 `yaml:"min"`
	Max     float64 `yaml:"max"`
	Script  string  `yaml:"script"`
}

// BindingSpec describes one control of an action. Type is mouse_delta,
// gamepad_stick (stick: left|right) or composite_2d (key lists).
type BindingSpec struct {
	Type       string          `yaml:"type"`
	Stick      string          `yaml:"stick"`
	Up         []string        `yaml:"up"`
	Down       []string        `yaml:"down"`
	Left       []string        `yaml:"left"`
	Right      []string        `yaml:"right"`
	Normalize  bool            `yaml:"normalize"`
	Processors []ProcessorSpec `yaml:"processors"`
}

type ActionSpec struct {
	Name       string          `yaml:"name"`
	Mode       string          `yaml:"mode"`
	Bindings   []BindingSpec   `yaml:"bindings"`
	Processors []ProcessorSpec `yaml:"processors"`
}

type ActionsSpec struct {
	Actions []ActionSpec `yaml:"actions"`
}

func (s *ActionsSpec) Validate() error {
	seen := map[string]bool{}
	for i, a := range s.Actions {
		name := strings.TrimSpace(a.Name)
		if name == "" {
			return fmt.Errorf("prefabs: actions[%d]: missing name", i)
		}
		if seen[name] {
			return fmt.Errorf("prefabs: actions[%d]: duplicate name %q", i, name)
		}
		seen[name] = true
		if len(a.Bindings) == 0 {
			return fmt.Errorf("prefabs: action %q: no bindings", name)
		}
	}
	return nil
}

func LoadActionsSpec(l *Loader) (*ActionsSpec, error) {
	spec, err := LoadSpec[ActionsSpec](l, ActionsFile)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

type MarkerSpec struct {
	Name     string     `yaml:"name"`
	Position [3]float64 `yaml:"position"`
	Height   float64    `yaml:"height"`
	Radius   float64    `yaml:"radius"`
	Color    YAMLColor  `yaml:"color"`
}

type GridSpec struct {
	HalfExtent int       `yaml:"half_extent"`
	Spacing    float64   `yaml:"spacing"`
	Color      YAMLColor `yaml:"color"`
}

type SceneSpec struct {
	Grid    GridSpec     `yaml:"grid"`
	Markers []MarkerSpec `yaml:"markers"`
}

func (s *SceneSpec) setDefaults() {
	s.Grid = GridSpec{
		HalfExtent: 10,
		Spacing:    1,
		Color:      YAMLColor{R: 0x40, G: 0x40, B: 0x48, A: 0xff},
	}
}

func LoadSceneSpec(l *Loader) (*SceneSpec, error) {
	spec, err := LoadSpec[SceneSpec](l, SceneFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// YAMLColor is an RGBA color written as #rrggbb or #rrggbbaa.
type YAMLColor color.RGBA

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	var parts [4]uint8
	parts[3] = 0xff
	for i := 0; i*2 < len(s); i++ {
		v, err := strconv.ParseUint(s[i*2:i*2+2], 16, 8)
		if err != nil {
			return fmt.Errorf("invalid color format: %s: %w", value.Value, err)
		}
		parts[i] = uint8(v)
	}

	*c = YAMLColor{R: parts[0], G: parts[1], B: parts[2], A: parts[3]}
	return nil
}

func (c YAMLColor) Color() color.RGBA {
	return color.RGBA(c)
}
