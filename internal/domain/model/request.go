package model

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RequestKind names a request the view may send to the controller.
type RequestKind string

const (
	RequestUpdateDeviceList RequestKind = "update_device_list"
	RequestOpenDevice       RequestKind = "open_device"
	RequestApplyToAll       RequestKind = "apply_to_all"
	RequestSetDeviceState   RequestKind = "set_device_state"
	RequestDebugMatrix      RequestKind = "debug_matrix"
	RequestOpenHelp         RequestKind = "open_help"
	RequestTroubleshoot     RequestKind = "troubleshoot_openrazer"
)

// RequestKinds lists every request the router understands.
var RequestKinds = []RequestKind{
	RequestUpdateDeviceList,
	RequestOpenDevice,
	RequestApplyToAll,
	RequestSetDeviceState,
	RequestDebugMatrix,
	RequestOpenHelp,
	RequestTroubleshoot,
}

// ParseRequestKind reports whether name is a known request.
func ParseRequestKind(name string) (RequestKind, bool) {
	for _, k := range RequestKinds {
		if string(k) == name {
			return k, true
		}
	}
	return "", false
}

// Payload is the JSON object sent alongside a request.
type Payload map[string]interface{}

func (p Payload) Value(key string) (interface{}, error) {
	v, ok := p[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingField, key)
	}
	return v, nil
}

func (p Payload) String(key string) (string, error) {
	v, err := p.Value(key)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %q is %T, want string", ErrInvalidField, key, v)
	}
	return s, nil
}

// Int reads key as an integer. Numeric strings are accepted.
func (p Payload) Int(key string) (int, error) {
	v, err := p.Value(key)
	if err != nil {
		return 0, err
	}
	n, err := ToInt(v)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", key, err)
	}
	return n, nil
}

// List reads key as an array. A JSON null yields an empty list.
func (p Payload) List(key string) ([]interface{}, error) {
	v, err := p.Value(key)
	if err != nil {
		return nil, err
	}
	switch l := v.(type) {
	case nil:
		return nil, nil
	case []interface{}:
		return l, nil
	case []string:
		out := make([]interface{}, len(l))
		for i, s := range l {
			out[i] = s
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %q is %T, want array", ErrInvalidField, key, v)
	}
}

// Strings reads key as an array of strings. A JSON null yields nil.
func (p Payload) Strings(key string) ([]string, error) {
	l, err := p.List(key)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, nil
	}
	out := make([]string, 0, len(l))
	for i, v := range l {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %q[%d] is %T, want string", ErrInvalidField, key, i, v)
		}
		out = append(out, s)
	}
	return out, nil
}

// ToInt coerces a decoded JSON value to an int, truncating fractions.
func ToInt(v interface{}) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, fmt.Errorf("%w: %v is not a number", ErrInvalidField, n)
		}
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			f, ferr := n.Float64()
			if ferr != nil {
				return 0, fmt.Errorf("%w: %v", ErrInvalidField, err)
			}
			return int(f), nil
		}
		return int(i), nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidField, n)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("%w: %T is not an integer", ErrInvalidField, v)
	}
}
