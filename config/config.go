// Package config layers defaults, spawner.yaml, CUBESPAWNER_* environment
// variables and command-line flags into one App value.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/milk9111/cubespawner/spawn"
)

const (
	DefaultName = "spawner"
	EnvPrefix   = "CUBESPAWNER"
)

type App struct {
	Spawner  spawn.Config `mapstructure:"spawner"`
	Debug    bool         `mapstructure:"debug"`
	Watch    bool         `mapstructure:"watch"`
	LogLevel string       `mapstructure:"log_level"`
	LogFile  string       `mapstructure:"log_file"`
	Width    int          `mapstructure:"width"`
	Height   int          `mapstructure:"height"`
}

// SetDefaults registers every key so env vars and flags can override keys
// that the config file leaves out.
func SetDefaults(v *viper.Viper) {
	d := spawn.DefaultConfig()
	v.SetDefault("spawner.templates", d.Templates)
	v.SetDefault("spawner.target_count", d.TargetCount)
	v.SetDefault("spawner.delay", d.Delay)
	v.SetDefault("spawner.range_x", d.RangeX)
	v.SetDefault("spawner.range_z", d.RangeZ)
	v.SetDefault("spawner.scale.x", d.Scale.X)
	v.SetDefault("spawner.scale.y", d.Scale.Y)
	v.SetDefault("spawner.scale.z", d.Scale.Z)
	v.SetDefault("spawner.use_physics", d.UsePhysics)
	v.SetDefault("spawner.infinite", d.Infinite)
	v.SetDefault("spawner.random_color", d.RandomColor)
	v.SetDefault("spawner.default_scale", d.DefaultScale)
	v.SetDefault("spawner.reset_key", d.ResetKey)
	v.SetDefault("spawner.seed", d.Seed)
	v.SetDefault("debug", false)
	v.SetDefault("watch", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("width", 1280)
	v.SetDefault("height", 720)
}

// Load reads path, or searches dir for spawner.yaml when path is empty. A
// missing searched file is not an error; a missing explicit file is.
func Load(v *viper.Viper, path, dir string, log logrus.FieldLogger) (App, error) {
	if v == nil {
		v = viper.New()
	}
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		if dir == "" {
			dir = "."
		}
		v.AddConfigPath(dir)
		v.SetConfigName(DefaultName)
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return App{}, fmt.Errorf("config: read: %w", err)
		}
	} else if log != nil {
		log.WithField("file", v.ConfigFileUsed()).Debug("using config file")
	}

	var app App
	if err := v.Unmarshal(&app); err != nil {
		return App{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	app.Spawner = app.Spawner.ClampDelay(log)
	return app, nil
}
