package quiz

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Choices is stored as a JSON array in a single text column. NULL or
// malformed column values read back as an empty list.
type Choices []string

func (Choices) GormDataType() string {
	return "text"
}

func (c Choices) Value() (driver.Value, error) {
	if c == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(c))
	if err != nil {
		return nil, fmt.Errorf("marshal choices: %w", err)
	}
	return string(b), nil
}

func (c *Choices) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*c = Choices{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		*c = Choices{}
		return nil
	}

	var out []string
	if err := json.Unmarshal(raw, &out); err != nil || out == nil {
		*c = Choices{}
		return nil
	}
	*c = out
	return nil
}

func (c Choices) At(i int) (string, bool) {
	if i < 0 || i >= len(c) {
		return "", false
	}
	return c[i], true
}
