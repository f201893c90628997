package sqlxrepos

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/pkg/errors"
)

// jsonbStrings maps a Postgres jsonb array of strings.
type jsonbStrings []string

func (s jsonbStrings) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

func (s *jsonbStrings) Scan(src interface{}) error {
	if src == nil {
		*s = nil
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.Errorf("jsonbStrings: cannot scan %T", src)
	}
	return json.Unmarshal(data, s)
}
