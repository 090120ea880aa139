package pagination

import (
	"regexp"
	"strings"
)

type Direction string

const (
	ASC  Direction = "ASC"
	DESC Direction = "DESC"
)

var orderPattern = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)_(ASC|DESC)$`)

// Order is one parsed "<field>_<direction>" token.
type Order struct {
	Field     string
	Direction Direction
}

func (o Order) String() string {
	return o.Field + "_" + string(o.Direction)
}

// ParseOrder parses a single order token such as "likeCount_DESC".
// The direction is taken from the last underscore, so field names may
// contain underscores themselves.
func ParseOrder(token string) (Order, error) {
	m := orderPattern.FindStringSubmatch(strings.TrimSpace(token))
	if m == nil {
		return Order{}, ErrInvalidOrder
	}
	return Order{Field: m[1], Direction: Direction(m[2])}, nil
}

// ParseOrders parses every token and fails on the first malformed one.
func ParseOrders(tokens []string) ([]Order, error) {
	orders := make([]Order, 0, len(tokens))
	for _, token := range tokens {
		o, err := ParseOrder(token)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

// ComparisonOperator picks the single keyset operator for a whole order:
// "<" when any entry sorts descending, ">" otherwise.
func ComparisonOperator(orders []Order) string {
	for _, o := range orders {
		if o.Direction == DESC {
			return "<"
		}
	}
	return ">"
}

// uniformDirection reports whether all entries share one direction. A
// single row-value comparison is only a correct keyset filter in that case.
func uniformDirection(orders []Order) bool {
	if len(orders) == 0 {
		return true
	}
	for _, o := range orders[1:] {
		if o.Direction != orders[0].Direction {
			return false
		}
	}
	return true
}
