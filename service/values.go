package service

import (
	"net/url"
	"strings"
)

// Values is a multi-valued string map that preserves key insertion order and,
// per key, the order in which values were added.
//
// net/url.Values sorts keys when encoding; URI construction here must keep
// query parameters in the order they were declared, so Values carries its own
// key list.
type Values struct {
	keys []string
	vals map[string][]string
}

// NewValues returns an empty Values.
func NewValues() *Values {
	return &Values{vals: make(map[string][]string)}
}

// Add appends values under key, creating the key if needed. Keys keep the
// order of their first Add. Adding a blank key or zero values is a no-op, so
// a key never exists without at least one value.
func (v *Values) Add(key string, values ...string) *Values {
	if v == nil || key == "" || len(values) == 0 {
		return v
	}
	if _, ok := v.vals[key]; !ok {
		v.keys = append(v.keys, key)
	}
	v.vals[key] = append(v.vals[key], values...)
	return v
}

// Set replaces all values under key. Passing zero values deletes the key.
func (v *Values) Set(key string, values ...string) *Values {
	if v == nil || key == "" {
		return v
	}
	v.Del(key)
	return v.Add(key, values...)
}

// Del removes key and its values.
func (v *Values) Del(key string) *Values {
	if v == nil {
		return v
	}
	if _, ok := v.vals[key]; ok {
		delete(v.vals, key)
		for i, k := range v.keys {
			if k == key {
				v.keys = append(v.keys[:i], v.keys[i+1:]...)
				break
			}
		}
	}
	return v
}

// Merge appends every key/value pair of other, keeping other's key order for
// keys not yet present. A nil argument is a no-op.
func (v *Values) Merge(other *Values) *Values {
	if v == nil || other == nil {
		return v
	}
	for _, k := range other.keys {
		v.Add(k, other.vals[k]...)
	}
	return v
}

// Get returns the values recorded under key, in insertion order.
func (v *Values) Get(key string) []string {
	if v == nil {
		return nil
	}
	return v.vals[key]
}

// Has reports whether key is present.
func (v *Values) Has(key string) bool {
	if v == nil {
		return false
	}
	_, ok := v.vals[key]
	return ok
}

// Keys returns the keys in insertion order.
func (v *Values) Keys() []string {
	if v == nil {
		return nil
	}
	return append([]string(nil), v.keys...)
}

// Len returns the number of keys.
func (v *Values) Len() int {
	if v == nil {
		return 0
	}
	return len(v.keys)
}

// Clone returns an independent deep copy. Cloning nil yields an empty Values.
func (v *Values) Clone() *Values {
	out := NewValues()
	if v == nil {
		return out
	}
	for _, k := range v.keys {
		out.Add(k, v.vals[k]...)
	}
	return out
}

// Encode serializes the values as a URL query string in insertion order,
// percent-encoding keys and values.
func (v *Values) Encode() string {
	if v.Len() == 0 {
		return ""
	}
	var b strings.Builder
	for _, k := range v.keys {
		for _, val := range v.vals[k] {
			if b.Len() > 0 {
				b.WriteByte('&')
			}
			b.WriteString(url.QueryEscape(k))
			b.WriteByte('=')
			b.WriteString(url.QueryEscape(val))
		}
	}
	return b.String()
}

// parseValues decodes a raw query string into Values, preserving wire order
// and duplicate keys.
func parseValues(rawQuery string) (*Values, error) {
	out := NewValues()
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		k, err := url.QueryUnescape(key)
		if err != nil {
			return nil, err
		}
		val, err := url.QueryUnescape(value)
		if err != nil {
			return nil, err
		}
		out.Add(k, val)
	}
	return out, nil
}
