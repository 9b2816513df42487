package prefabs

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	MaterialsFile = "materials.yaml"
	SandboxFile   = "sandbox.yaml"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// MaterialSpec is one row of the material table.
type MaterialSpec struct {
	ID          string     `yaml:"id"`
	Radius      float64    `yaml:"radius"`
	Restitution float64    `yaml:"restitution"`
	Friction    float64    `yaml:"friction"`
	Density     float64    `yaml:"density"`
	Token       string     `yaml:"token"`
	Fill        *YAMLColor `yaml:"fill"`
	Stroke      *YAMLColor `yaml:"stroke"`
	LineWidth   float64    `yaml:"line_width"`
	Spawnable   bool       `yaml:"spawnable"`
}

type MaterialsSpec struct {
	Materials []MaterialSpec `yaml:"materials"`
}

// LoadMaterialsSpec reads materials.yaml and validates it against the
// embedded material schema before decoding.
func LoadMaterialsSpec() (*MaterialsSpec, error) {
	data, err := Load(MaterialsFile)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load %s: %w", MaterialsFile, err)
	}
	return ParseMaterialsSpec(data)
}

func ParseMaterialsSpec(data []byte) (*MaterialsSpec, error) {
	if err := ValidateYAML(MaterialsSchema, data); err != nil {
		return nil, fmt.Errorf("prefabs: validate %s: %w", MaterialsFile, err)
	}
	var spec MaterialsSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal %s: %w", MaterialsFile, err)
	}
	return &spec, nil
}

type ViewportSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type GroundSpec struct {
	Height     float64 `yaml:"height"`
	Friction   float64 `yaml:"friction"`
	Elasticity float64 `yaml:"elasticity"`
}

type PhysicsSpec struct {
	Gravity    float64 `yaml:"gravity"`
	Iterations int     `yaml:"iterations"`
	CullMargin float64 `yaml:"cull_margin"`
}

// EffectsSpec holds the per-tick material rule constants. Forces are in
// engine units for a one-frame step.
type EffectsSpec struct {
	ShatterSpeed   float64 `yaml:"shatter_speed"`
	FragmentCount  int     `yaml:"fragment_count"`
	FragmentSpread float64 `yaml:"fragment_spread"`
	MetalMaxPairs  int     `yaml:"metal_max_pairs"`
	MetalCutoff    float64 `yaml:"metal_cutoff"`
	MetalStrength  float64 `yaml:"metal_strength"`
	IceMargin      float64 `yaml:"ice_margin"`
	IceSlide       float64 `yaml:"ice_slide"`
	FireRadius     float64 `yaml:"fire_radius"`
	FireLift       float64 `yaml:"fire_lift"`
}

type RainSpec struct {
	Count int `yaml:"count"`
}

type WeatherSpec struct {
	FireRain   RainSpec `yaml:"fire_rain"`
	WaterRain  RainSpec `yaml:"water_rain"`
	RainbowSky RainSpec `yaml:"rainbow_sky"`
	BandTop    float64  `yaml:"band_top"`
	BandBottom float64  `yaml:"band_bottom"`
	StormPush  float64  `yaml:"storm_push"`
	StormLift  float64  `yaml:"storm_lift"`
}

// SandboxSpec is the tuning file for a sandbox run.
type SandboxSpec struct {
	Viewport  ViewportSpec `yaml:"viewport"`
	Ground    GroundSpec   `yaml:"ground"`
	Physics   PhysicsSpec  `yaml:"physics"`
	MaxBodies int          `yaml:"max_bodies"`
	Effects   EffectsSpec  `yaml:"effects"`
	Weather   WeatherSpec  `yaml:"weather"`
}

func LoadSandboxSpec() (*SandboxSpec, error) {
	spec, err := LoadSpec[SandboxSpec](SandboxFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// LoadSandboxSpecFile reads a sandbox tuning file from an arbitrary path.
// Keys it leaves out keep the values of the bundled sandbox.yaml.
func LoadSandboxSpecFile(path string) (*SandboxSpec, error) {
	spec, err := LoadSandboxSpec()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal %s: %w", path, err)
	}
	return spec, nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	parsed, err := ParseHexColor(value.Value)
	if err != nil {
		return err
	}
	c.Color = parsed
	return nil
}

// ParseHexColor accepts #rrggbb or #rrggbbaa.
func ParseHexColor(raw string) (color.NRGBA, error) {
	s := strings.TrimPrefix(raw, "#")

	if len(s) != 6 && len(s) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color format: %s", raw)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return color.NRGBA{}, err
	}
	g, err := parse(2)
	if err != nil {
		return color.NRGBA{}, err
	}
	b, err := parse(4)
	if err != nil {
		return color.NRGBA{}, err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return color.NRGBA{}, err
		}
	}

	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}
