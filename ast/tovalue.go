// Copyright (C) 2024 The jref Authors. All Rights Reserved.

package ast

import (
	"fmt"
	"math"
	"sort"
)

// ToValue converts a Go value into a Value. It accepts nil, bool, string,
// the signed and unsigned integer types, float32 and float64, []any, and
// map[string]any; map keys are emitted in sorted order so the result is
// deterministic. Integers outside the 32-bit signed range and unsupported
// types are reported as errors.
func ToValue(v any) (Value, error) {
	switch t := v.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return t, nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case int:
		return intValue(int64(t))
	case int8:
		return Integer(t), nil
	case int16:
		return Integer(t), nil
	case int32:
		return Integer(t), nil
	case int64:
		return intValue(t)
	case uint:
		return uintValue(uint64(t))
	case uint8:
		return Integer(t), nil
	case uint16:
		return Integer(t), nil
	case uint32:
		return uintValue(uint64(t))
	case uint64:
		return uintValue(t)
	case float32:
		return RealFromFloat(t), nil
	case float64:
		return RealFromFloat(float32(t)), nil
	case []any:
		vs := make([]Value, len(t))
		for i, elt := range t {
			w, err := ToValue(elt)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			vs[i] = w
		}
		return NewArray(vs...), nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for key := range t {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		ms := make([]Member, len(keys))
		for i, key := range keys {
			w, err := ToValue(t[key])
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", key, err)
			}
			ms[i] = Field(key, w)
		}
		return NewObject(ms...)
	default:
		return nil, fmt.Errorf("cannot convert %T to a value", v)
	}
}

func intValue(z int64) (Value, error) {
	if z < math.MinInt32 || z > math.MaxInt32 {
		return nil, fmt.Errorf("integer %d out of range", z)
	}
	return Integer(z), nil
}

func uintValue(z uint64) (Value, error) {
	if z > math.MaxInt32 {
		return nil, fmt.Errorf("integer %d out of range", z)
	}
	return Integer(z), nil
}
