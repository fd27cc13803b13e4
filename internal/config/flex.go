package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// HistoryCount accepts either a JSON/YAML number or a numeric string.
type HistoryCount int

// UnmarshalJSON implements json.Unmarshaler.
func (h *HistoryCount) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	s, quoted := unquote(b)
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return fmt.Errorf("invalid value %s for history_count, expected a number or numeric string", describe(s, quoted))
	}
	*h = HistoryCount(n)
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (h *HistoryCount) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: history_count must be a scalar", node.Line)
	}
	if node.Tag == "!!null" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(node.Value))
	if err != nil || n < 0 {
		return fmt.Errorf("line %d: invalid value %q for history_count, expected a number or numeric string", node.Line, node.Value)
	}
	*h = HistoryCount(n)
	return nil
}

// Temperature accepts a float, an integer or a numeric string.
type Temperature float32

// UnmarshalJSON implements json.Unmarshaler.
func (t *Temperature) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	s, quoted := unquote(b)
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return fmt.Errorf("invalid value %s for temperature, expected a float or numeric string", describe(s, quoted))
	}
	*t = Temperature(f)
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *Temperature) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: temperature must be a scalar", node.Line)
	}
	if node.Tag == "!!null" {
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(node.Value), 32)
	if err != nil {
		return fmt.Errorf("line %d: invalid value %q for temperature, expected a float or numeric string", node.Line, node.Value)
	}
	*t = Temperature(f)
	return nil
}

// MarshalJSON keeps the float32 value readable (0.7, not 0.699999988079071).
func (t Temperature) MarshalJSON() ([]byte, error) {
	return []byte(t.String()), nil
}

// MarshalYAML implements yaml.Marshaler.
func (t Temperature) MarshalYAML() (interface{}, error) {
	return t.roundTrip(), nil
}

func (t Temperature) String() string {
	return strconv.FormatFloat(float64(t), 'f', -1, 32)
}

func (t Temperature) roundTrip() float64 {
	f, _ := strconv.ParseFloat(t.String(), 64)
	return f
}

func unquote(b []byte) (string, bool) {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err == nil {
			return strings.TrimSpace(s), true
		}
	}
	return string(b), false
}

func describe(s string, quoted bool) string {
	if quoted {
		return strconv.Quote(s)
	}
	return s
}
