// Package config loads runtime settings from defaults, an optional YAML file,
// MREXHIBIT_* environment variables and command line flags, in increasing
// precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "MREXHIBIT"

type Config struct {
	SkipAnchoring      bool    `mapstructure:"skip_anchoring"`
	ScaleFactor        float64 `mapstructure:"scale_factor"`
	TransitionDuration float64 `mapstructure:"transition_duration"`
	MaxNameLength      int     `mapstructure:"max_name_length"`
	Catalog            string  `mapstructure:"catalog"`
	Watch              bool    `mapstructure:"watch"`
	Debug              bool    `mapstructure:"debug"`

	Operator Operator `mapstructure:"operator"`
	Window   Window   `mapstructure:"window"`
	Audio    Audio    `mapstructure:"audio"`
}

// Operator tunes the hidden operator console.
type Operator struct {
	Taps      int     `mapstructure:"taps"`
	TapWindow float64 `mapstructure:"tap_window"`
	MaxLogs   int     `mapstructure:"max_logs"`
}

type Window struct {
	Title  string `mapstructure:"title"`
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
}

type Audio struct {
	BGM     string  `mapstructure:"bgm"`
	Ambient string  `mapstructure:"ambient"`
	Volume  float64 `mapstructure:"volume"`
}

// flagKeys maps command line flags onto config keys.
var flagKeys = map[string]string{
	"skip-anchoring":      "skip_anchoring",
	"scale-factor":        "scale_factor",
	"transition-duration": "transition_duration",
	"max-name-length":     "max_name_length",
	"catalog":             "catalog",
	"watch":               "watch",
	"debug":               "debug",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("skip_anchoring", false)
	v.SetDefault("scale_factor", 5.5)
	v.SetDefault("transition_duration", 0.5)
	v.SetDefault("max_name_length", 31)
	v.SetDefault("catalog", "exhibits.yaml")
	v.SetDefault("watch", false)
	v.SetDefault("debug", false)

	v.SetDefault("operator.taps", 8)
	v.SetDefault("operator.tap_window", 1.5)
	v.SetDefault("operator.max_logs", 15)

	v.SetDefault("window.title", "Mr. Exhibit")
	v.SetDefault("window.width", 1280)
	v.SetDefault("window.height", 720)

	v.SetDefault("audio.bgm", "bgm.wav")
	v.SetDefault("audio.ambient", "ambient.wav")
	v.SetDefault("audio.volume", 0.8)
}

// RegisterFlags adds the config flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "path to a YAML config file (env "+EnvPrefix+"_CONFIG)")
	fs.Bool("skip-anchoring", false, "start in selection browsing and skip anchor placement")
	fs.Float64("scale-factor", 5.5, "scale multiplier applied to a selected exhibit")
	fs.Float64("transition-duration", 0.5, "seconds a pose transition takes")
	fs.Int("max-name-length", 31, "combined name length before the display name wraps")
	fs.String("catalog", "exhibits.yaml", "exhibit catalog to load")
	fs.Bool("watch", false, "reload the catalog when it changes on disk")
	fs.Bool("debug", false, "enable debug logging")
}

// Load resolves the configuration. flags may be nil; only flags the user set
// override lower layers.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for flag, key := range flagKeys {
			f := flags.Lookup(flag)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("config: bind flag %s: %w", flag, err)
			}
		}
	}

	if path := configPath(flags); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func configPath(flags *pflag.FlagSet) string {
	if flags != nil {
		if path, err := flags.GetString("config"); err == nil && path != "" {
			return path
		}
	}
	return os.Getenv(EnvPrefix + "_CONFIG")
}

var (
	ErrScaleFactor   = errors.New("scale_factor must be positive")
	ErrMaxNameLength = errors.New("max_name_length must be positive")
)

// Validate rejects settings the exhibit layer cannot use.
func (c *Config) Validate() error {
	var errs []error
	if !(c.ScaleFactor > 0) {
		errs = append(errs, ErrScaleFactor)
	}
	if c.MaxNameLength <= 0 {
		errs = append(errs, ErrMaxNameLength)
	}
	if c.TransitionDuration < 0 {
		errs = append(errs, errors.New("transition_duration must not be negative"))
	}
	if c.Operator.Taps <= 0 {
		errs = append(errs, errors.New("operator.taps must be positive"))
	}
	if c.Operator.MaxLogs <= 0 {
		errs = append(errs, errors.New("operator.max_logs must be positive"))
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, errors.New("audio.volume must be within [0, 1]"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
