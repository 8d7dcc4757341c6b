// Package config loads settings from flags, BOX_* environment variables
// and an optional config file, in that order of precedence.
package config

import (
	"errors"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDebug        = "debug"
	ConfigDataPath     = "data-path"
	ConfigOutputFormat = "output-format"
	ConfigThreads      = "threads"
	ConfigNatsURL      = "nats-url"
	ConfigNatsSubject  = "nats-subject"
	ConfigCPUProfile   = "cpu-profile"
	ConfigMemProfile   = "mem-profile"
	ConfigConfigFile   = "config-file"
	ConfigAliases      = "aliases"
)

var ErrBadOutputFormat = errors.New("output format must be text, json or yaml")

var outputFormats = []string{"text", "json", "yaml"}

type Config struct {
	*viper.Viper
	flags *pflag.FlagSet
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(ConfigDebug, false)
	v.SetDefault(ConfigDataPath, "./data")
	v.SetDefault(ConfigOutputFormat, "text")
	v.SetDefault(ConfigThreads, 0)
	v.SetDefault(ConfigNatsURL, "nats://127.0.0.1:4222")
	v.SetDefault(ConfigNatsSubject, "box.score")
	v.SetDefault(ConfigCPUProfile, "")
	v.SetDefault(ConfigMemProfile, "")
	v.SetDefault(ConfigConfigFile, defaultConfigFile())
	v.SetDefault(ConfigAliases, map[string]string{})
}

func defaultConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "box", "config.yaml")
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("box")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// DefaultConfig returns a config holding only defaults and environment
// variables. It never reads a file.
func DefaultConfig() *Config {
	return &Config{Viper: newViper()}
}

// Load parses args and reads the config file if there is one. Arguments
// that are not flags are left for the caller in Args. Executables with flags
// of their own register them with extra; they are bound like the rest.
func (c *Config) Load(args []string, extra ...func(*pflag.FlagSet)) error {
	c.Viper = newViper()
	c.flags = pflag.NewFlagSet("box", pflag.ContinueOnError)
	c.flags.Bool(ConfigDebug, false, "turn on debug logging")
	c.flags.String(ConfigDataPath, "./data", "directory holding transcripts")
	c.flags.String(ConfigOutputFormat, "text", "output format: text, json or yaml")
	c.flags.Int(ConfigThreads, 0, "number of games to score at once (0 means one per CPU)")
	c.flags.String(ConfigNatsURL, "nats://127.0.0.1:4222", "NATS server for the score worker")
	c.flags.String(ConfigNatsSubject, "box.score", "NATS subject the score worker listens on")
	c.flags.String(ConfigCPUProfile, "", "write a CPU profile to this file")
	c.flags.String(ConfigMemProfile, "", "write a memory profile to this file")
	c.flags.String(ConfigConfigFile, defaultConfigFile(), "config file to read and write")
	for _, register := range extra {
		register(c.flags)
	}
	if err := c.flags.Parse(args); err != nil {
		return err
	}
	if err := c.BindPFlags(c.flags); err != nil {
		return err
	}
	if err := c.readFile(); err != nil {
		return err
	}
	return c.Validate()
}

func (c *Config) readFile() error {
	fn := c.GetString(ConfigConfigFile)
	if fn == "" {
		return nil
	}
	c.SetConfigFile(fn)
	err := c.ReadInConfig()
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug().Str("file", fn).Msg("no config file")
		return nil
	}
	return err
}

// Args returns the positional arguments left after Load.
func (c *Config) Args() []string {
	if c.flags == nil {
		return nil
	}
	return c.flags.Args()
}

func (c *Config) Validate() error {
	f := c.GetString(ConfigOutputFormat)
	for _, ok := range outputFormats {
		if f == ok {
			return nil
		}
	}
	return ErrBadOutputFormat
}

// Write saves the current settings to the config file.
func (c *Config) Write() error {
	fn := c.GetString(ConfigConfigFile)
	if fn == "" {
		return errors.New("no config file set")
	}
	if err := os.MkdirAll(filepath.Dir(fn), 0o755); err != nil {
		return err
	}
	return c.WriteConfigAs(fn)
}

// SanitizedSettings returns the settings with any password in the NATS URL
// hidden, for logging.
func (c *Config) SanitizedSettings() map[string]any {
	settings := c.AllSettings()
	if raw, ok := settings[ConfigNatsURL].(string); ok {
		if u, err := url.Parse(raw); err == nil && u.User != nil {
			if _, set := u.User.Password(); set {
				u.User = url.UserPassword(u.User.Username(), "xxxxx")
			}
			settings[ConfigNatsURL] = u.String()
		}
	}
	return settings
}

// AdjustRelativePaths makes a relative data path relative to the
// executable's directory when it does not exist relative to the working
// directory.
func (c *Config) AdjustRelativePaths(basepath string) {
	p := c.GetString(ConfigDataPath)
	if filepath.IsAbs(p) {
		return
	}
	if _, err := os.Stat(p); err == nil {
		return
	}
	c.Set(ConfigDataPath, filepath.Join(basepath, p))
}

// Aliases returns the user's shell aliases.
func (c *Config) Aliases() map[string]string {
	return c.GetStringMapString(ConfigAliases)
}

func (c *Config) SetAlias(name, expansion string) {
	aliases := c.Aliases()
	aliases[name] = expansion
	c.Set(ConfigAliases, aliases)
}
