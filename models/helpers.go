package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// KeyValue is one labelled benefit on a guest type ("souvenir": "1 pcs").
type KeyValue struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// KeyValueList stores a benefit list as a JSON text column so the schema
// works identically on postgres and the sqlite test database.
type KeyValueList []KeyValue

func (l KeyValueList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *KeyValueList) Scan(src any) error {
	return scanJSON(src, l)
}

// UintList stores an id allow-list as a JSON text column.
type UintList []uint

func (l UintList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *UintList) Scan(src any) error {
	return scanJSON(src, l)
}

// Contains reports whether id is in the list.
func (l UintList) Contains(id uint) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

// StringList stores a string slice (order add-ons, venue lines) as JSON text.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *StringList) Scan(src any) error {
	return scanJSON(src, l)
}

func scanJSON(src, dst any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return errors.New("unsupported column type for JSON scan")
	}
}
