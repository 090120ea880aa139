package pagination

import (
	"strconv"
	"time"
)

// Kind tells how a cursor value is converted back to a native value before
// being bound, so the database compares with the column's own ordering.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindTime
)

// Column describes a sortable field: its database column, value kind and
// how to read the value off a row when building the next cursor.
type Column[T any] struct {
	Name  string
	Kind  Kind
	Value func(row T) string
}

// Schema maps API field names (the ones used in order tokens) to columns.
type Schema[T any] map[string]Column[T]

func (k Kind) parse(v string) (interface{}, error) {
	switch k {
	case KindInt:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, ErrInvalidCursor
		}
		return n, nil
	case KindTime:
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return nil, ErrInvalidCursor
		}
		return t, nil
	default:
		return v, nil
	}
}

// FormatInt and FormatTime render row values the way Kind.parse reads them.
func FormatInt(n int64) string {
	return strconv.FormatInt(n, 10)
}

func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
