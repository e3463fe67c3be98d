package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Task mirrors the remote task resource.
type Task struct {
	ID      ID     `json:"id"`
	Content string `json:"content"`
	Checked bool   `json:"checked"`
	Mark    bool   `json:"mark"`
}

// ID is the identifier assigned by the remote store. It keeps the JSON form it
// arrived in (number or string) so it can be sent back unchanged.
type ID struct {
	value   string
	numeric bool
}

func NewID(value string) ID {
	return ID{value: value}
}

func NumericID(value int64) ID {
	return ID{value: strconv.FormatInt(value, 10), numeric: true}
}

// ParseID reads an id typed by a user. Digit-only values are treated as numeric.
func ParseID(value string) ID {
	if _, err := strconv.ParseInt(value, 10, 64); err == nil {
		return ID{value: value, numeric: true}
	}
	return ID{value: value}
}

func (id ID) String() string {
	return id.value
}

func (id ID) IsZero() bool {
	return id.value == ""
}

// Equal compares ids by value regardless of their JSON form.
func (id ID) Equal(other ID) bool {
	return id.value == other.value
}

func (id ID) MarshalJSON() ([]byte, error) {
	if id.value == "" {
		return []byte("null"), nil
	}
	if id.numeric {
		return []byte(id.value), nil
	}
	return json.Marshal(id.value)
}

func (id *ID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")):
		*id = ID{}
		return nil
	case trimmed[0] == '"':
		var value string
		if err := json.Unmarshal(trimmed, &value); err != nil {
			return err
		}
		*id = ID{value: value}
		return nil
	default:
		var number json.Number
		if err := json.Unmarshal(trimmed, &number); err != nil {
			return fmt.Errorf("invalid task id %s: %w", trimmed, err)
		}
		*id = ID{value: number.String(), numeric: true}
		return nil
	}
}

type HistoryEntry struct {
	ID        int64
	TaskID    string
	EventType string
	Details   string
	CreatedAt time.Time
}
