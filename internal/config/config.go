// Package config loads the runtime settings from defaults, an optional YAML
// file, CUBE_* environment variables and command-line flags, in that order
// of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	appName   = "cube-combine"
	envPrefix = "CUBE"
)

// Config is the fully resolved configuration.
type Config struct {
	TickRateHz int            `mapstructure:"tick_rate_hz"`
	Movement   MovementConfig `mapstructure:"movement"`
	Physics    PhysicsConfig  `mapstructure:"physics"`
	Input      InputConfig    `mapstructure:"input"`
	Scene      SceneConfig    `mapstructure:"scene"`
	Log        LogConfig      `mapstructure:"log"`
	Journal    JournalConfig  `mapstructure:"journal"`
	Server     ServerConfig   `mapstructure:"server"`
}

type MovementConfig struct {
	Speed       float64 `mapstructure:"speed"`
	JumpImpulse float64 `mapstructure:"jump_impulse"`
}

type PhysicsConfig struct {
	Gravity      float64 `mapstructure:"gravity"`
	GravityScale float64 `mapstructure:"gravity_scale"`
	ContactSkin  float64 `mapstructure:"contact_skin"`
}

type InputConfig struct {
	HoldMS int `mapstructure:"hold_ms"`
	// RepeatDelayMS covers the pause before the OS starts auto-repeating a
	// held key.
	RepeatDelayMS int `mapstructure:"repeat_delay_ms"`
}

type SceneConfig struct {
	// Path is a scene YAML file. Empty selects the built-in scene.
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	Dir   string `mapstructure:"dir"`
}

type JournalConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Dir     string `mapstructure:"dir"`
}

type ServerConfig struct {
	Port        int    `mapstructure:"port"`
	HostKey     string `mapstructure:"host_key"`
	MaxSessions int    `mapstructure:"max_sessions"`
}

// TickInterval is the wall-clock duration of one simulation frame.
func (c Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.TickRateHz)
}

// HoldWindow is how long a terminal key counts as held after its last event.
func (c Config) HoldWindow() time.Duration {
	return time.Duration(c.Input.HoldMS) * time.Millisecond
}

// RepeatDelay is how long a newly pressed key counts as held before its
// auto-repeat starts.
func (c Config) RepeatDelay() time.Duration {
	return time.Duration(c.Input.RepeatDelayMS) * time.Millisecond
}

// Flags returns the command-line flags Load understands.
func Flags() *pflag.FlagSet {
	fs := pflag.NewFlagSet(appName, pflag.ContinueOnError)
	fs.StringP("config", "c", "", "path to a YAML config file")
	fs.String("scene", "", "path to a scene YAML file")
	fs.String("log-level", "", "log level (trace, debug, info, warn, error)")
	fs.Int("tick-rate", 0, "simulation frames per second")
	fs.Int("port", 0, "SSH server port")
	fs.String("host-key", "", "PEM host key for the SSH server, generated if absent")
	return fs
}

// flagKeys maps flag names to the config keys they override.
var flagKeys = map[string]string{
	"scene":     "scene.path",
	"log-level": "log.level",
	"tick-rate": "tick_rate_hz",
	"port":      "server.port",
	"host-key":  "server.host_key",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("tick_rate_hz", 60)

	v.SetDefault("movement.speed", 10.0)
	v.SetDefault("movement.jump_impulse", 10.0)

	v.SetDefault("physics.gravity", -9.81)
	v.SetDefault("physics.gravity_scale", 5.0)
	v.SetDefault("physics.contact_skin", 0.01)

	v.SetDefault("input.hold_ms", 250)
	v.SetDefault("input.repeat_delay_ms", 700)

	v.SetDefault("scene.path", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.dir", xdgDir("XDG_STATE_HOME", ".local", "state"))

	v.SetDefault("journal.enabled", true)
	v.SetDefault("journal.dir", xdgDir("XDG_DATA_HOME", ".local", "share"))

	v.SetDefault("server.port", 2222)
	v.SetDefault("server.host_key", "server_host_key")
	v.SetDefault("server.max_sessions", 8)
}

// Load resolves the configuration. path may be empty; flags may be nil.
// Only flags the user actually set override lower layers.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" && flags != nil {
		if f := flags.Lookup("config"); f != nil {
			path = f.Value.String()
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil || !f.Changed {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the simulation cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.TickRateHz <= 0 {
		errs = append(errs, fmt.Errorf("tick_rate_hz must be positive, got %d", c.TickRateHz))
	}
	if c.Movement.Speed < 0 {
		errs = append(errs, fmt.Errorf("movement.speed must not be negative, got %v", c.Movement.Speed))
	}
	if c.Physics.ContactSkin < 0 {
		errs = append(errs, fmt.Errorf("physics.contact_skin must not be negative, got %v", c.Physics.ContactSkin))
	}
	if c.Input.HoldMS <= 0 {
		errs = append(errs, fmt.Errorf("input.hold_ms must be positive, got %d", c.Input.HoldMS))
	}
	if c.Input.RepeatDelayMS < c.Input.HoldMS {
		errs = append(errs, fmt.Errorf("input.repeat_delay_ms (%d) must not be shorter than input.hold_ms (%d)", c.Input.RepeatDelayMS, c.Input.HoldMS))
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port out of range: %d", c.Server.Port))
	}
	if c.Server.MaxSessions <= 0 {
		errs = append(errs, fmt.Errorf("server.max_sessions must be positive, got %d", c.Server.MaxSessions))
	}
	return errors.Join(errs...)
}

// xdgDir returns $env/cube-combine, falling back to ~/<fallback...>/cube-combine
// and finally to a directory under the working directory.
func xdgDir(env string, fallback ...string) string {
	base := os.Getenv(env)
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(".", "."+appName)
		}
		base = filepath.Join(append([]string{home}, fallback...)...)
	}
	return filepath.Join(base, appName)
}
