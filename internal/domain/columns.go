package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// List-valued attributes persist as JSON text so the same schema works on
// postgres, mysql and sqlite.

type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *StringList) Scan(v any) error { return scanJSON(l, v) }

type EducationList []Education

func (l EducationList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *EducationList) Scan(v any) error { return scanJSON(l, v) }

type ExperienceList []Experience

func (l ExperienceList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *ExperienceList) Scan(v any) error { return scanJSON(l, v) }

func scanJSON(dst any, v any) error {
	switch s := v.(type) {
	case nil:
		return nil
	case []byte:
		if len(s) == 0 {
			return nil
		}
		return json.Unmarshal(s, dst)
	case string:
		if s == "" {
			return nil
		}
		return json.Unmarshal([]byte(s), dst)
	default:
		return fmt.Errorf("unsupported column type %T", v)
	}
}
