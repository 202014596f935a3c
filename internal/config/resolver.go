package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
)

// DefaultsSection is the config file section applied to every launcher
// before the launcher's own section.
const DefaultsSection = "defaults"

// Resolver layers option values for one launcher. Precedence, highest first:
// changed CLI flag, environment variable, config file section, flag default.
type Resolver struct {
	v       *viper.Viper
	flags   *pflag.FlagSet
	env     map[string]string
	section string
}

// NewResolver binds every flag in flags and every entry of env (option key to
// variable name) into a fresh viper instance. When configFile is set, its
// "defaults" section and then its section named after the launcher are
// merged in underneath env and flags.
func NewResolver(section string, flags *pflag.FlagSet, env map[string]string, configFile string) (*Resolver, error) {
	v := viper.New()

	if configFile != "" {
		if err := mergeConfigFile(v, configFile, section); err != nil {
			return nil, err
		}
	}

	for key, name := range env {
		if err := v.BindEnv(key, name); err != nil {
			return nil, fmt.Errorf("bind %s to %s: %w", key, name, err)
		}
	}

	var bindErr error
	flags.VisitAll(func(f *pflag.Flag) {
		multierr.AppendInto(&bindErr, v.BindPFlag(f.Name, f))
	})
	if bindErr != nil {
		return nil, fmt.Errorf("bind flags: %w", bindErr)
	}

	return &Resolver{v: v, flags: flags, env: env, section: section}, nil
}

func mergeConfigFile(v *viper.Viper, path, section string) error {
	file := viper.New()
	file.SetConfigFile(path)
	if err := file.ReadInConfig(); err != nil {
		return &Error{Option: "config", Source: path, Err: err}
	}
	for _, name := range []string{DefaultsSection, section} {
		sub := file.Sub(name)
		if sub == nil {
			continue
		}
		if err := v.MergeConfigMap(sub.AllSettings()); err != nil {
			return &Error{Option: "config", Source: path, Err: fmt.Errorf("section %s: %w", name, err)}
		}
	}
	return nil
}

// String returns the resolved value of key as a string.
func (r *Resolver) String(key string) string {
	return r.v.GetString(key)
}

// Changed reports whether key was set explicitly on the command line.
func (r *Resolver) Changed(key string) bool {
	f := r.flags.Lookup(key)
	return f != nil && f.Changed
}

// Int returns the resolved value of key, rejecting anything that is not an
// integer. Strings are read as plain decimal: "010" is 10 and "0x200" is an
// error.
func (r *Resolver) Int(key string) (int, error) {
	var (
		n   int
		err error
	)
	switch val := r.value(key).(type) {
	case string:
		n, err = strconv.Atoi(val)
	default:
		n, err = cast.ToIntE(val)
	}
	if err != nil {
		return 0, r.invalid(key, err)
	}
	return n, nil
}

// Float returns the resolved value of key, rejecting anything that is not a
// number.
func (r *Resolver) Float(key string) (float64, error) {
	f, err := cast.ToFloat64E(r.value(key))
	if err != nil {
		return 0, r.invalid(key, err)
	}
	return f, nil
}

// Toggle resolves a boolean switch. A changed --no-<key> flag forces false.
// String values from the environment or a config file go through
// ParseToggle.
func (r *Resolver) Toggle(key string) bool {
	if r.Changed("no-" + key) {
		if off, err := cast.ToBoolE(r.flags.Lookup("no-" + key).Value.String()); err == nil && off {
			return false
		}
	}
	switch val := r.v.Get(key).(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return ParseToggle(val)
	default:
		return cast.ToBool(val)
	}
}

// ParseToggle reports whether s spells an enabled switch: 1, true, yes or on,
// in any case. Everything else is off.
func ParseToggle(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func (r *Resolver) value(key string) any {
	val := r.v.Get(key)
	if s, ok := val.(string); ok {
		return strings.TrimSpace(s)
	}
	return val
}

func (r *Resolver) invalid(key string, err error) error {
	return &Error{Option: key, Source: r.source(key), Err: err}
}

// source names where the value of key came from, for error messages.
func (r *Resolver) source(key string) string {
	if r.Changed(key) {
		return "--" + key
	}
	if r.fromEnv(key) {
		return r.env[key]
	}
	if r.v.InConfig(key) {
		return r.section + "." + key
	}
	return key
}

// fromEnv reports whether key is set by a non-empty environment variable.
func (r *Resolver) fromEnv(key string) bool {
	name, ok := r.env[key]
	if !ok {
		return false
	}
	val, set := os.LookupEnv(name)
	return set && val != ""
}

// collector accumulates conversion errors so every bad value is reported in
// one pass.
type collector struct {
	r    *Resolver
	errs error
}

func (c *collector) int(key string) int {
	n, err := c.r.Int(key)
	multierr.AppendInto(&c.errs, err)
	return n
}

func (c *collector) float(key string) float64 {
	f, err := c.r.Float(key)
	multierr.AppendInto(&c.errs, err)
	return f
}
