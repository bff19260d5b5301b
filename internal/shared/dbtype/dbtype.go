package dbtype

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// StringList is a JSONB-backed list of strings (participant emails,
// target user lists). Stored as a JSON array, never NULL.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value any) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return errors.New("dbtype: unsupported scan source for StringList")
	}
}

// Contains reports membership; lists are small so linear scan is fine.
func (l StringList) Contains(s string) bool {
	for _, item := range l {
		if item == s {
			return true
		}
	}
	return false
}

// Without returns a copy with every occurrence of s removed.
func (l StringList) Without(s string) StringList {
	out := make(StringList, 0, len(l))
	for _, item := range l {
		if item != s {
			out = append(out, item)
		}
	}
	return out
}
