package utils

import (
	"fmt"
	"math"
	"strconv"
)

// Section is one decoded JSON section of a survey submission
// (general, primary, health or socio). Form values arrive loosely
// typed: strings, numbers, booleans, arrays, or missing entirely.
type Section map[string]interface{}

// Str normalizes a raw form value into a nullable string.
// Missing values and empty strings become nil; everything else is
// stringified as-is.
func Str(v interface{}) *string {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		if val == "" {
			return nil
		}
		return &val
	case float64:
		s := strconv.FormatFloat(val, 'f', -1, 64)
		return &s
	case bool:
		s := strconv.FormatBool(val)
		return &s
	default:
		s := fmt.Sprintf("%v", val)
		return &s
	}
}

// ToNumber normalizes a raw form value into a nullable number.
// Empty strings, missing values and unparseable input become nil.
func ToNumber(v interface{}) *float64 {
	switch val := v.(type) {
	case nil:
		return nil
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return nil
		}
		return &val
	case int:
		f := float64(val)
		return &f
	case string:
		if val == "" {
			return nil
		}
		f, err := strconv.ParseFloat(val, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
		return &f
	default:
		return nil
	}
}

// ToBool decodes the survey's tri-state boolean encoding:
// "1"/1/true mean yes, "2"/2/false/"66"/empty mean no, and anything
// else is unanswered (nil), which is distinct from an explicit no.
func ToBool(v interface{}) *bool {
	yes, no := true, false
	switch val := v.(type) {
	case nil:
		return &no
	case bool:
		if val {
			return &yes
		}
		return &no
	case string:
		switch val {
		case "1":
			return &yes
		case "2", "66", "":
			return &no
		}
		return nil
	case float64:
		switch val {
		case 1:
			return &yes
		case 2:
			return &no
		}
		return nil
	case int:
		switch val {
		case 1:
			return &yes
		case 2:
			return &no
		}
		return nil
	default:
		return nil
	}
}

// ToStringArray normalizes a multi-value form value. Missing or empty
// input becomes nil, a scalar is wrapped into a single-element slice,
// and a non-empty array passes through with its order preserved.
func ToStringArray(v interface{}) []string {
	switch val := v.(type) {
	case nil:
		return nil
	case []interface{}:
		if len(val) == 0 {
			return nil
		}
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s := Str(item); s != nil {
				out = append(out, *s)
			} else {
				out = append(out, "")
			}
		}
		return out
	case []string:
		if len(val) == 0 {
			return nil
		}
		return val
	default:
		if s := Str(v); s != nil {
			return []string{*s}
		}
		return nil
	}
}

// GetValue returns the section field as a nullable string.
func GetValue(sec Section, key string) *string {
	if sec == nil {
		return nil
	}
	return Str(sec[key])
}

// GetNumber returns the section field as a nullable number.
func GetNumber(sec Section, key string) *float64 {
	if sec == nil {
		return nil
	}
	return ToNumber(sec[key])
}

// GetInt returns the section field as a nullable integer.
func GetInt(sec Section, key string) *int {
	f := GetNumber(sec, key)
	if f == nil {
		return nil
	}
	n := int(*f)
	return &n
}

// GetBool returns the section field decoded as a tri-state boolean.
func GetBool(sec Section, key string) *bool {
	if sec == nil {
		return ToBool(nil)
	}
	return ToBool(sec[key])
}

// GetArray returns the section field as a multi-value selection.
func GetArray(sec Section, key string) []string {
	if sec == nil {
		return nil
	}
	return ToStringArray(sec[key])
}

// At indexes into a parallel-array field. A missing field or an
// out-of-range index yields nil so per-index member assembly never
// fails on ragged input.
func At(sec Section, key string, i int) interface{} {
	v, _ := AtOK(sec, key, i)
	return v
}

// AtOK indexes into a parallel-array field and reports whether the
// slot was submitted at all. A present JSON null is (nil, true); a
// missing field or out-of-range index is (nil, false). The distinction
// matters for tri-state booleans, where a submitted null means "no"
// but a never-submitted slot stays unanswered.
func AtOK(sec Section, key string, i int) (interface{}, bool) {
	if sec == nil {
		return nil, false
	}
	arr, ok := sec[key].([]interface{})
	if !ok || i < 0 || i >= len(arr) {
		return nil, false
	}
	return arr[i], true
}

// ArrayLen reports the length of a parallel-array field, 0 when the
// field is absent or not an array.
func ArrayLen(sec Section, key string) int {
	if sec == nil {
		return 0
	}
	arr, ok := sec[key].([]interface{})
	if !ok {
		return 0
	}
	return len(arr)
}
