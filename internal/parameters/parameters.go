// Package parameters handles generic configuration Params, a map[string]string that the
// user sets with a configuration string like "alphabeta,max_depth=4,parallel=root".
package parameters

import (
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Params represent generic configuration parameters.
type Params map[string]string

// NewFromConfigString create params from user's configuration string: a comma-separated list of keys with
// optional values ("key=value"). Empty parts are ignored.
// See GetParamOr and PopParamOr to parse values from this map.
func NewFromConfigString(config string) Params {
	params := make(Params)
	for _, part := range strings.Split(config, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, _ := strings.Cut(part, "=") // Only the first '=' separates, values may contain '='.
		params[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return params
}

// String returns the params as a configuration string, with sorted keys. It is the inverse of
// NewFromConfigString.
func (params Params) String() string {
	parts := make([]string, 0, len(params))
	for _, key := range params.Keys() {
		if value := params[key]; value != "" {
			parts = append(parts, key+"="+value)
		} else {
			parts = append(parts, key)
		}
	}
	return strings.Join(parts, ",")
}

// Keys returns the sorted keys of params.
func (params Params) Keys() []string {
	keys := lo.Keys(params)
	slices.Sort(keys)
	return keys
}

// CheckAllUsed returns an error listing the keys left in params, if any. Use it after all the expected
// parameters were popped with PopParamOr.
func (params Params) CheckAllUsed() error {
	if len(params) == 0 {
		return nil
	}
	return errors.Errorf("unknown parameters \"%s\" passed", strings.Join(params.Keys(), "\", \""))
}

// PopParamOr is like GetParamOr, but it also deletes from the params map the retrieved parameter.
func PopParamOr[T interface {
	bool | int | float32 | float64 | string | time.Duration
}](params Params, key string, defaultValue T) (T, error) {
	value, err := GetParamOr(params, key, defaultValue)
	if err != nil {
		return value, err
	}
	delete(params, key)
	return value, nil
}

// GetParamOr attempts to parse a parameter to the given type if the key is present, or returns the defaultValue
// if not.
//
// For bool types, a key without a value is interpreted as true. Durations use time.ParseDuration format.
func GetParamOr[T interface {
	bool | int | float32 | float64 | string | time.Duration
}](params Params, key string, defaultValue T) (T, error) {
	vAny := (any)(defaultValue)
	var t T
	toT := func(v any) T { return v.(T) }
	switch vAny.(type) {
	case string:
		if value, exists := params[key]; exists {
			return toT(value), nil
		}
	case int:
		if value, exists := params[key]; exists && value != "" {
			parsedValue, err := strconv.Atoi(value)
			if err != nil {
				return t, errors.Wrapf(err, "failed to parse configuration %s=%q to int", key, value)
			}
			return toT(parsedValue), nil
		}
	case time.Duration:
		if value, exists := params[key]; exists && value != "" {
			parsedValue, err := time.ParseDuration(value)
			if err != nil {
				return t, errors.Wrapf(err, "failed to parse configuration %s=%q to a duration", key, value)
			}
			return toT(parsedValue), nil
		}
	case float32:
		if value, exists := params[key]; exists && value != "" {
			parsedValue, err := strconv.ParseFloat(value, 32)
			if err != nil {
				return t, errors.Wrapf(err, "failed to parse configuration %s=%q to float", key, value)
			}
			return toT(float32(parsedValue)), nil
		}
	case float64:
		if value, exists := params[key]; exists && value != "" {
			parsedValue, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return t, errors.Wrapf(err, "failed to parse configuration %s=%q to float", key, value)
			}
			return toT(parsedValue), nil
		}
	case bool:
		if value, exists := params[key]; exists {
			if value == "" || strings.ToLower(value) == "true" || value == "1" { // Empty value is considered "true"
				return toT(true), nil
			}
			if strings.ToLower(value) == "false" || value == "0" {
				return toT(false), nil
			}
			return defaultValue, errors.Errorf("failed to parse configuration %s=%q to bool", key, value)
		}
	}
	return defaultValue, nil
}
