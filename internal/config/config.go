// Package config resolves settings from defaults, a TOML file, TODOS_*
// environment variables and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"todolist-cli/internal/format"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	envPrefix = "TODOS"
	envConfig = "TODOS_CONFIG"
)

type Config struct {
	Dir    string    `mapstructure:"dir" json:"dir"`
	Format string    `mapstructure:"format" json:"format"`
	Pretty bool      `mapstructure:"pretty" json:"pretty"`
	TUI    TUIConfig `mapstructure:"tui" json:"tui"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-" json:"file,omitempty"`
}

type TUIConfig struct {
	Glyphs    string        `mapstructure:"glyphs" json:"glyphs"`
	Autosave  time.Duration `mapstructure:"autosave" json:"autosave"`
	DebugLog  string        `mapstructure:"debug_log" json:"debugLog,omitempty"`
	AltScreen bool          `mapstructure:"alt_screen" json:"altScreen"`
}

// flagKeys maps persistent flag names to config keys.
var flagKeys = map[string]string{
	"dir":    "dir",
	"format": "format",
	"pretty": "pretty",
}

// Load builds the effective configuration. flags may be nil; only flags the
// user actually set override the other sources.
func Load(flags *pflag.FlagSet) (Config, error) {
	v := viper.New()

	v.SetDefault("dir", defaultDir())
	v.SetDefault("format", format.JSON)
	v.SetDefault("pretty", false)
	v.SetDefault("tui.glyphs", "unicode")
	v.SetDefault("tui.autosave", 750*time.Millisecond)
	v.SetDefault("tui.debug_log", "")
	v.SetDefault("tui.alt_screen", true)

	v.SetConfigType("toml")
	if p := strings.TrimSpace(os.Getenv(envConfig)); p != "" {
		v.SetConfigFile(p)
	} else if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "todos"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind --%s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.File = v.ConfigFileUsed()
	if _, err := os.Stat(c.File); err != nil {
		c.File = ""
	}
	c.Dir = expandHome(strings.TrimSpace(c.Dir))
	c.TUI.DebugLog = expandHome(strings.TrimSpace(c.TUI.DebugLog))
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	if c.Dir == "" {
		return errors.New("config: dir is empty")
	}
	if err := format.Validate(c.Format); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	switch c.TUI.Glyphs {
	case "unicode", "ascii":
	default:
		return fmt.Errorf("config: unknown tui.glyphs %q (want unicode|ascii)", c.TUI.Glyphs)
	}
	if c.TUI.Autosave <= 0 {
		return fmt.Errorf("config: tui.autosave must be positive, got %s", c.TUI.Autosave)
	}
	return nil
}

func defaultDir() string {
	if d := strings.TrimSpace(os.Getenv("XDG_DATA_HOME")); d != "" {
		return filepath.Join(d, "todos")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".todos"
	}
	return filepath.Join(home, ".local", "share", "todos")
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
