package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Text is an optional free-text column. A nil *Text is stored as NULL.
// On input it tolerates numbers and booleans, which are kept as their literal text.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0:
		*t = ""
		return nil
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	default:
		// number/bool/object -> literal text
		*t = Text(strings.Trim(string(b), `"`))
		return nil
	}
}

// Value returns the text or "" for nil.
func (t *Text) Value() string {
	if t == nil {
		return ""
	}
	return string(*t)
}

// NewText returns a *Text, or nil when ok is false.
func NewText(s string, ok bool) *Text {
	if !ok {
		return nil
	}
	v := Text(s)
	return &v
}

// ID is a row identifier assigned by the table store; numeric and string ids are both accepted.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	*id = ID(string(b))
	return nil
}

func (id ID) MarshalJSON() ([]byte, error) {
	if id != "" && isDigits(string(id)) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id ID) String() string { return string(id) }

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
