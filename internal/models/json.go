package models

import (
	"database/sql/driver"
	"encoding/json"
)

// JSONMap is a string-to-string mapping stored as a JSON blob. Corrupt or
// missing stored data scans to an empty map rather than failing the row;
// auxiliary content must never block the scheduler.
type JSONMap map[string]string

func (m *JSONMap) Scan(src any) error {
	*m = JSONMap{}
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return nil
	}
	if len(raw) == 0 {
		return nil
	}
	var parsed map[string]string
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil
	}
	*m = parsed
	return nil
}

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		m = JSONMap{}
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// JSONStrings is a string list stored as a JSON blob, with the same
// degrade-to-empty contract as JSONMap.
type JSONStrings []string

func (s *JSONStrings) Scan(src any) error {
	*s = JSONStrings{}
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return nil
	}
	if len(raw) == 0 {
		return nil
	}
	var parsed []string
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil
	}
	*s = parsed
	return nil
}

func (s JSONStrings) Value() (driver.Value, error) {
	if s == nil {
		s = JSONStrings{}
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
