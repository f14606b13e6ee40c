// Package config loads glbindgen settings.
//
// Values are layered, highest precedence first: command-line flags bound by
// the caller, GLBIND_* environment variables, a TOML config file, defaults.
package config

import (
	"os"
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"github.com/gamedevtech/tao/gen"
)

// DefaultConfigFile is looked up in the working directory when no explicit
// config file is given.
const DefaultConfigFile = "glbind.toml"

// Config holds the binding settings.
type Config struct {
	OutputPath      string `mapstructure:"output_path"`
	OutputNamespace string `mapstructure:"output_namespace"`
	OutputClass     string `mapstructure:"output_class"`
	NativeLibrary   string `mapstructure:"native_library"`
	ProcAddress     string `mapstructure:"proc_address"`
}

// SetDefaults configures default values for all configuration options.
func SetDefaults(v *viper.Viper) {
	d := gen.DefaultSettings()
	v.SetDefault("output_path", "./generated")
	v.SetDefault("output_namespace", d.Namespace)
	v.SetDefault("output_class", d.Class)
	v.SetDefault("native_library", d.NativeLibrary)
	v.SetDefault("proc_address", d.ProcAddress)
}

// NewViper returns a Viper instance with defaults and environment binding.
// configPath may be empty, in which case glbind.toml in the working
// directory is read if present.
func NewViper(configPath string) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix("GLBIND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	if configPath == "" {
		if _, err := os.Stat(DefaultConfigFile); err != nil {
			return v, nil
		}
		configPath = DefaultConfigFile
	}

	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "reading config file %s", configPath)
	}
	return v, nil
}

// Load unmarshals and checks the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshalling config")
	}
	if err := cfg.Check(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var (
	identPattern     = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	namespacePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)
)

// Check verifies the names that end up in generated source are identifiers.
func (c *Config) Check() error {
	if c.OutputPath == "" {
		return errors.New("output_path must not be empty")
	}
	if !identPattern.MatchString(c.OutputClass) {
		return errors.WithHint(errors.Newf("output_class %q is not an identifier", c.OutputClass),
			"use a plain class name such as \"Gl\"")
	}
	if !namespacePattern.MatchString(c.OutputNamespace) {
		return errors.Newf("output_namespace %q is not a dotted identifier", c.OutputNamespace)
	}
	if !namespacePattern.MatchString(c.ProcAddress) {
		return errors.Newf("proc_address %q is not a dotted identifier", c.ProcAddress)
	}
	if c.NativeLibrary == "" || strings.ContainsAny(c.NativeLibrary, "\"\n") {
		return errors.Newf("native_library %q is not a usable module name", c.NativeLibrary)
	}
	return nil
}

// Settings returns the generator settings described by c.
func (c *Config) Settings() gen.Settings {
	return gen.Settings{
		Namespace:     c.OutputNamespace,
		Class:         c.OutputClass,
		NativeLibrary: c.NativeLibrary,
		ProcAddress:   c.ProcAddress,
	}
}
