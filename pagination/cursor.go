package pagination

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	"moviecatalog/errs"
)

var (
	ErrInvalidCursor   = errs.Errorf(errs.EINVALID, "invalid cursor")
	ErrInvalidOrder    = errs.Errorf(errs.EINVALID, "order must be ASC or DESC")
	ErrMixedDirections = errs.Errorf(errs.EINVALID, "order directions must be all ASC or all DESC")
)

// CursorState is the payload carried by a cursor token: the sort column
// values of the last row of a page and the order that produced it.
type CursorState struct {
	Values map[string]string `json:"values"`
	Order  []string          `json:"order"`
}

// Encode turns the state into an opaque token: base64 of a JSON string
// whose content is the JSON encoding of the state.
func Encode(s CursorState) (string, error) {
	inner, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	outer, err := json.Marshal(string(inner))
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(outer), nil
}

// Decode reverses Encode. Tokens carrying the state object directly under
// base64 (single JSON encoding) are accepted too.
func Decode(token string) (CursorState, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(token))
	if err != nil {
		return CursorState{}, ErrInvalidCursor
	}

	var inner string
	if err := json.Unmarshal(raw, &inner); err == nil {
		raw = []byte(inner)
	}

	var state CursorState
	if err := json.Unmarshal(raw, &state); err != nil {
		return CursorState{}, ErrInvalidCursor
	}
	if err := state.validate(); err != nil {
		return CursorState{}, err
	}
	return state, nil
}

func (s CursorState) validate() error {
	if s.Values == nil || len(s.Order) == 0 {
		return ErrInvalidCursor
	}
	for _, token := range s.Order {
		o, err := ParseOrder(token)
		if err != nil {
			return ErrInvalidCursor
		}
		if _, ok := s.Values[o.Field]; !ok {
			return ErrInvalidCursor
		}
	}
	return nil
}
