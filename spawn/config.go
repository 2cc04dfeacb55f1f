package spawn

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// SpawnHeight is the fixed Y every instance is created at.
	SpawnHeight = 2.0

	MinDelay = 0.1
	MaxDelay = 5.0
)

var ErrNoTemplates = errors.New("spawn: no objects to spawn")

// Config is fixed once the controller is built.
type Config struct {
	Templates    []string `mapstructure:"templates" yaml:"templates"`
	TargetCount  int      `mapstructure:"target_count" yaml:"target_count"`
	Delay        float64  `mapstructure:"delay" yaml:"delay"`
	RangeX       float64  `mapstructure:"range_x" yaml:"range_x"`
	RangeZ       float64  `mapstructure:"range_z" yaml:"range_z"`
	Scale        Vec3     `mapstructure:"scale" yaml:"scale"`
	UsePhysics   bool     `mapstructure:"use_physics" yaml:"use_physics"`
	Infinite     bool     `mapstructure:"infinite" yaml:"infinite"`
	RandomColor  bool     `mapstructure:"random_color" yaml:"random_color"`
	DefaultScale bool     `mapstructure:"default_scale" yaml:"default_scale"`
	ResetKey     string   `mapstructure:"reset_key" yaml:"reset_key"`
	Seed         uint64   `mapstructure:"seed" yaml:"seed"`
}

// DefaultConfig mirrors the shipped spawner.yaml.
func DefaultConfig() Config {
	return Config{
		Templates:   []string{"cube", "sphere", "pillar", "crate"},
		TargetCount: 10,
		Delay:       0.5,
		RangeX:      8,
		RangeZ:      4,
		Scale:       Vec3{X: 2, Y: 2, Z: 2},
		UsePhysics:  true,
		RandomColor: true,
		ResetKey:    "R",
	}
}

// DelayDuration converts the delay in seconds to a time.Duration.
func (c Config) DelayDuration() time.Duration {
	return time.Duration(c.Delay * float64(time.Second))
}

// ClampDelay pulls Delay into [MinDelay, MaxDelay], logging a warning when the
// configured value was out of range.
func (c Config) ClampDelay(log logrus.FieldLogger) Config {
	clamped := c.Delay
	if clamped < MinDelay {
		clamped = MinDelay
	}
	if clamped > MaxDelay {
		clamped = MaxDelay
	}
	if clamped != c.Delay && log != nil {
		log.WithFields(logrus.Fields{
			"configured": c.Delay,
			"used":       clamped,
		}).Warn("spawn delay out of range")
	}
	c.Delay = clamped
	return c
}
