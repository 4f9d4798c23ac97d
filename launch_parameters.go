package fna

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/golobby/cast"
	"gopkg.in/yaml.v3"
)

// envPrefix is prepended to upper-cased parameter names when reading
// environment overrides, e.g. debugServer -> FNA_DEBUGSERVER.
const envPrefix = "FNA_"

// LaunchParameters is the immutable key/value configuration captured once at
// Game construction. Values are stored as strings and converted on access;
// no mutation is possible after creation.
type LaunchParameters struct {
	values map[string]string
}

// NewLaunchParameters creates launch parameters from the given key/value
// pairs. The input map is copied, so later changes to it are not visible.
func NewLaunchParameters(values map[string]string) LaunchParameters {
	copied := make(map[string]string, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return LaunchParameters{values: copied}
}

// LoadLaunchParameters reads launch parameters from a YAML or TOML file,
// selected by extension, then overlays FNA_-prefixed environment variables.
// Nested documents are flattened with dots: window.title -> "window.title".
func LoadLaunchParameters(path string) (LaunchParameters, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return LaunchParameters{}, fmt.Errorf("failed to read launch parameters: %w", err)
	}

	raw := make(map[string]any)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return LaunchParameters{}, fmt.Errorf("failed to parse YAML launch parameters: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &raw); err != nil {
			return LaunchParameters{}, fmt.Errorf("failed to parse TOML launch parameters: %w", err)
		}
	default:
		return LaunchParameters{}, fmt.Errorf("%w: %s", ErrLaunchParametersFormat, ext)
	}

	values := make(map[string]string)
	flattenInto(values, "", raw)
	overlayEnv(values)
	return LaunchParameters{values: values}, nil
}

// flattenInto stringifies a nested map into dotted keys.
func flattenInto(dst map[string]string, prefix string, src map[string]any) {
	for k, v := range src {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := v.(map[string]any); ok {
			flattenInto(dst, key, nested)
			continue
		}
		dst[key] = fmt.Sprintf("%v", v)
	}
}

// overlayEnv applies FNA_-prefixed environment variables on top of the
// file-supplied values. Dots in keys become underscores in variable names.
func overlayEnv(values map[string]string) {
	for key := range values {
		envName := envPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if envValue, ok := os.LookupEnv(envName); ok {
			values[key] = envValue
		}
	}
}

// Get retrieves the raw string value for a key.
func (p LaunchParameters) Get(key string) (string, bool) {
	v, ok := p.values[key]
	return v, ok
}

// String returns the value for key, or def when absent.
func (p LaunchParameters) String(key, def string) string {
	if v, ok := p.values[key]; ok {
		return v
	}
	return def
}

// Bool returns the value for key converted to bool, or def when absent or
// not convertible.
func (p LaunchParameters) Bool(key string, def bool) bool {
	v, ok := p.values[key]
	if !ok {
		return def
	}
	converted, err := cast.FromType(v, reflect.TypeOf(false))
	if err != nil {
		return def
	}
	return converted.(bool)
}

// Int returns the value for key converted to int, or def when absent or
// not convertible.
func (p LaunchParameters) Int(key string, def int) int {
	v, ok := p.values[key]
	if !ok {
		return def
	}
	converted, err := cast.FromType(v, reflect.TypeOf(0))
	if err != nil {
		return def
	}
	return converted.(int)
}

// Duration returns the value for key parsed as a time.Duration, or def when
// absent or not parseable.
func (p LaunchParameters) Duration(key string, def time.Duration) time.Duration {
	v, ok := p.values[key]
	if !ok {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

// Keys returns all parameter names in sorted order.
func (p LaunchParameters) Keys() []string {
	keys := make([]string, 0, len(p.values))
	for k := range p.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of parameters.
func (p LaunchParameters) Len() int {
	return len(p.values)
}
