// Package config provides configuration helpers for go-camera commands:
// a YAML settings store addressed by slash-separated keys and environment
// overrides for the camera identity.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Store is a read-only view over a YAML settings document.
// Keys are slash-separated paths, e.g. "hardware/camera/fps".
type Store struct {
	root map[string]interface{}
}

// Parse builds a store from YAML bytes. An empty document is an empty store.
func Parse(data []byte) (*Store, error) {
	root := map[string]interface{}{}
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}
	return &Store{root: root}, nil
}

// Load reads a settings file.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}
	return Parse(data)
}

// Empty returns a store with no keys.
func Empty() *Store {
	return &Store{root: map[string]interface{}{}}
}

// Lookup returns the raw value at key.
func (s *Store) Lookup(key string) (interface{}, bool) {
	var node interface{} = s.root
	for _, part := range strings.Split(strings.Trim(key, "/"), "/") {
		m, ok := node.(map[string]interface{})
		if !ok {
			return nil, false
		}
		node, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return node, true
}

// Has reports whether key exists.
func (s *Store) Has(key string) bool {
	_, ok := s.Lookup(key)
	return ok
}

// String returns the value at key formatted as a string.
func (s *Store) String(key string) (string, bool) {
	v, ok := s.Lookup(key)
	if !ok || v == nil {
		return "", false
	}
	switch val := v.(type) {
	case string:
		return val, true
	case map[string]interface{}, []interface{}:
		return "", false
	default:
		return fmt.Sprint(val), true
	}
}

// Int returns the value at key as an int. The bool is false when the key is
// missing; the error is set when it exists but is not an integer.
func (s *Store) Int(key string) (int, bool, error) {
	v, ok := s.Lookup(key)
	if !ok || v == nil {
		return 0, false, nil
	}
	switch val := v.(type) {
	case int:
		return val, true, nil
	case int64:
		return int(val), true, nil
	case float64:
		if val != float64(int(val)) {
			return 0, true, fmt.Errorf("%s: %v is not an integer", key, val)
		}
		return int(val), true, nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return 0, true, fmt.Errorf("%s: %w", key, err)
		}
		return i, true, nil
	default:
		return 0, true, fmt.Errorf("%s: unexpected %T", key, v)
	}
}

// Decode re-encodes the subtree at key and decodes it into out.
// A missing key leaves out untouched.
func (s *Store) Decode(key string, out interface{}) error {
	v, ok := s.Lookup(key)
	if !ok {
		return nil
	}
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	return nil
}
