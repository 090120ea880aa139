package pagination

import (
	"fmt"
	"strings"

	"moviecatalog/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	DefaultTake = 5
	MaxTake     = 100
)

// DefaultOrder is used when neither the request nor a cursor names an order.
var DefaultOrder = []string{"id_DESC"}

// Request is what a caller sends to page through a keyset-ordered list.
type Request struct {
	Cursor string
	Order  []string
	Take   int
}

// Query is the resolved, validated plan for one page. It is a value:
// applying it to a gorm chain through Scope never changes the Query.
type Query struct {
	Order []Order
	Take  int

	columns []string
	bounds  []interface{}
}

// Resolve decodes the cursor, if any, and returns the order tokens that
// drive the page. A cursor's own order wins over the order in the request,
// so the keyset filter always matches the order that produced the cursor.
func Resolve(req Request) ([]string, *CursorState, error) {
	if strings.TrimSpace(req.Cursor) != "" {
		state, err := Decode(req.Cursor)
		if err != nil {
			return nil, nil, err
		}
		return state.Order, &state, nil
	}
	if len(req.Order) == 0 {
		return DefaultOrder, nil, nil
	}
	return req.Order, nil, nil
}

// Build validates req against the sortable columns of schema and returns
// the page plan. Nothing is applied to any query when it fails.
func Build[T any](req Request, schema Schema[T]) (Query, error) {
	tokens, state, err := Resolve(req)
	if err != nil {
		return Query{}, err
	}

	orders, err := ParseOrders(tokens)
	if err != nil {
		return Query{}, err
	}
	if !uniformDirection(orders) {
		return Query{}, ErrMixedDirections
	}

	q := Query{
		Order:   orders,
		Take:    req.Take,
		columns: make([]string, len(orders)),
	}
	if q.Take <= 0 {
		q.Take = DefaultTake
	}
	if q.Take > MaxTake {
		q.Take = MaxTake
	}

	for i, o := range orders {
		col, ok := schema[o.Field]
		if !ok {
			return Query{}, errs.Errorf(errs.EINVALID, "cannot order by %q", o.Field)
		}
		q.columns[i] = col.Name
	}

	if state != nil {
		q.bounds = make([]interface{}, len(orders))
		for i, o := range orders {
			v, err := schema[o.Field].Kind.parse(state.Values[o.Field])
			if err != nil {
				return Query{}, err
			}
			q.bounds[i] = v
		}
	}

	return q, nil
}

// Operator returns the keyset comparison operator of the plan.
func (q Query) Operator() string {
	return ComparisonOperator(q.Order)
}

// Tokens returns the order as "<field>_<direction>" tokens.
func (q Query) Tokens() []string {
	tokens := make([]string, len(q.Order))
	for i, o := range q.Order {
		tokens[i] = o.String()
	}
	return tokens
}

// Scope returns a gorm scope adding the keyset filter, the ordering and the
// row limit, with columns qualified by table. One row past Take is fetched
// so Paginate can tell whether another page exists.
func (q Query) Scope(table string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if len(q.bounds) > 0 {
			db = db.Where(q.keyset(table))
		}
		for i, o := range q.Order {
			db = db.Order(clause.OrderByColumn{
				Column: clause.Column{Table: table, Name: q.columns[i]},
				Desc:   o.Direction == DESC,
			})
		}
		return db.Limit(q.Take + 1)
	}
}

// keyset builds (col1, col2, ...) <op> (?, ?, ...) as one row-value comparison.
func (q Query) keyset(table string) clause.Expr {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(q.columns)), ", ")

	vars := make([]interface{}, 0, len(q.columns)*2)
	for _, name := range q.columns {
		vars = append(vars, clause.Column{Table: table, Name: name})
	}
	vars = append(vars, q.bounds...)

	return clause.Expr{
		SQL:  fmt.Sprintf("(%s) %s (%s)", placeholders, q.Operator(), placeholders),
		Vars: vars,
	}
}

// Paginate trims rows fetched through Scope to the page size and returns
// the cursor of the following page, nil when this page is the last one.
func Paginate[T any](rows []T, q Query, schema Schema[T]) ([]T, *string, error) {
	if len(rows) <= q.Take {
		return rows, nil, nil
	}
	rows = rows[:q.Take]
	next, err := NextCursor(rows, q, schema)
	if err != nil {
		return nil, nil, err
	}
	return rows, next, nil
}

// NextCursor encodes the cursor pointing after the last row, or returns nil
// when rows is empty.
func NextCursor[T any](rows []T, q Query, schema Schema[T]) (*string, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	last := rows[len(rows)-1]
	values := make(map[string]string, len(q.Order))
	for _, o := range q.Order {
		col, ok := schema[o.Field]
		if !ok || col.Value == nil {
			return nil, fmt.Errorf("pagination: no value reader for %q", o.Field)
		}
		values[o.Field] = col.Value(last)
	}

	token, err := Encode(CursorState{Values: values, Order: q.Tokens()})
	if err != nil {
		return nil, err
	}
	return &token, nil
}
