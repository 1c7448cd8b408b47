package db

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// IDList is an ordered set of positive row ids persisted as a JSON array.
type IDList []uint

var ErrMalformedIDList = errors.New("malformed id list")

func (l IDList) Validate() error {
	seen := make(map[uint]struct{}, len(l))
	for i, id := range l {
		if id == 0 {
			return fmt.Errorf("%w: position %d is not a positive id", ErrMalformedIDList, i)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: id %d repeated", ErrMalformedIDList, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

func (l IDList) Contains(id uint) bool {
	for _, candidate := range l {
		if candidate == id {
			return true
		}
	}
	return false
}

func (l IDList) Clone() IDList {
	out := make(IDList, len(l))
	copy(out, l)
	return out
}

func (l *IDList) Scan(value any) error {
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	case nil:
		return fmt.Errorf("%w: null", ErrMalformedIDList)
	default:
		return fmt.Errorf("%w: unsupported column type %T", ErrMalformedIDList, value)
	}
	var ids []int64
	if err := json.Unmarshal(raw, &ids); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedIDList, err)
	}
	parsed := make(IDList, 0, len(ids))
	for i, id := range ids {
		if id <= 0 {
			return fmt.Errorf("%w: position %d holds %d", ErrMalformedIDList, i, id)
		}
		parsed = append(parsed, uint(id))
	}
	if err := parsed.Validate(); err != nil {
		return err
	}
	*l = parsed
	return nil
}

func (l IDList) Value() (driver.Value, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]uint(l))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (IDList) GormDataType() string {
	return "json"
}

func (IDList) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	switch db.Dialector.Name() {
	case "postgres":
		return "JSONB"
	default:
		return "TEXT"
	}
}
