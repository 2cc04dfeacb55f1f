package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// EntityBuildSpec is a template: a named bag of component specs keyed by
// component name.
type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

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

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

// DecodeComponentSpec re-decodes one loosely typed component entry into T.
func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Z        float64 `yaml:"z"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	ScaleZ   float64 `yaml:"scale_z"`
	Rotation float64 `yaml:"rotation"`
}

type ShapeComponentSpec struct {
	Kind   string  `yaml:"kind"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Radius float64 `yaml:"radius"`
	Depth  float64 `yaml:"depth"`
}

type TintComponentSpec struct {
	Color *YAMLColor `yaml:"color"`
}

type RenderLayerComponentSpec struct {
	Index int `yaml:"index"`
}

type PhysicsBodyComponentSpec struct {
	Width              float64 `yaml:"width"`
	Height             float64 `yaml:"height"`
	Radius             float64 `yaml:"radius"`
	Mass               float64 `yaml:"mass"`
	Friction           float64 `yaml:"friction"`
	Elasticity         float64 `yaml:"elasticity"`
	Static             bool    `yaml:"static"`
	ScaleWithTransform bool    `yaml:"scale_with_transform"`
}

// YAMLColor accepts "#rrggbb" or "#rrggbbaa".
type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	parsed, err := ParseColor(value.Value)
	if err != nil {
		return err
	}
	c.Color = parsed
	return nil
}

func ParseColor(s string) (color.Color, error) {
	hex := "#" + strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 7 && len(hex) != 9 {
		return nil, fmt.Errorf("invalid color format: %s", s)
	}

	rgb, err := colorful.Hex(hex[:7])
	if err != nil {
		return nil, fmt.Errorf("invalid color format: %s: %w", s, err)
	}
	r, g, b := rgb.RGB255()

	a := uint8(255)
	if len(hex) == 9 {
		v, err := strconv.ParseUint(hex[7:9], 16, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid color alpha: %s: %w", s, err)
		}
		a = uint8(v)
	}
	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}
