package config

import (
	"fmt"
	"strings"

	"github.com/Veraticus/whattodo/internal/common"
	"github.com/Veraticus/whattodo/internal/match"
	"github.com/Veraticus/whattodo/internal/model"
	"github.com/spf13/viper"
)

// Configuration keys.
const (
	KeyDatabasePath = "database.path"
	KeyLogLevel     = "logging.level"
	KeyLogFormat    = "logging.format"
	KeyModes        = "matching.modes"

	// EnvPrefix prefixes every environment override, e.g. WHATTODO_DATABASE_PATH.
	EnvPrefix = "WHATTODO"

	DefaultDatabasePath = "$HOME/.local/share/whattodo/whattodo.db"
)

// SetDefaults registers default values and environment lookup on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDatabasePath, DefaultDatabasePath)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// DatabasePath returns the expanded database location.
func DatabasePath(v *viper.Viper) string {
	path := v.GetString(KeyDatabasePath)
	if path == "" {
		path = DefaultDatabasePath
	}
	return ExpandPath(path)
}

// ModeKey returns the configuration key holding f's comparison mode.
func ModeKey(f model.Field) string {
	return KeyModes + "." + f.Name()
}

// ModeOverrides reads matching.modes.<field> for every field. Fields with no
// configured mode are absent from the result. Unknown field names under
// matching.modes and unknown modes are configuration errors.
func ModeOverrides(v *viper.Viper) (map[model.Field]match.Mode, error) {
	for name := range v.GetStringMap(KeyModes) {
		if _, err := model.ParseField(name); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", common.ErrInvalidConfig, KeyModes, err)
		}
	}

	overrides := make(map[model.Field]match.Mode)
	for _, f := range model.Fields() {
		raw := v.GetString(ModeKey(f))
		if raw == "" {
			continue
		}
		mode, err := match.ParseMode(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", common.ErrInvalidConfig, ModeKey(f), err)
		}
		overrides[f] = mode
	}
	return overrides, nil
}

// ParseModeFlags parses "field=mode" pairs as given on the command line.
func ParseModeFlags(pairs []string) (map[model.Field]match.Mode, error) {
	out := make(map[model.Field]match.Mode, len(pairs))
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("%w: mode %q must look like field=mode", common.ErrInvalidInput, pair)
		}
		f, err := model.ParseField(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", common.ErrInvalidInput, err)
		}
		mode, err := match.ParseMode(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", common.ErrInvalidInput, err)
		}
		out[f] = mode
	}
	return out, nil
}

// PolicyFromViper builds the comparison policy: defaults, then configured modes, then
// flags. exact forces every field to Exclusive regardless of the rest.
func PolicyFromViper(v *viper.Viper, flags map[model.Field]match.Mode, exact bool) (*match.Policy, error) {
	overrides, err := ModeOverrides(v)
	if err != nil {
		return nil, err
	}
	for f, m := range flags {
		overrides[f] = m
	}
	if exact {
		for _, f := range model.Fields() {
			overrides[f] = match.Exclusive
		}
	}
	return match.NewPolicy(overrides)
}
