package validation

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// LineItem is one cart line posted by the web form.
type LineItem struct {
	Name  Text `json:"name"`
	Qty   Int  `json:"qty"`
	Price Int  `json:"price"`
}

// OrderSubmission is the payload sent by the web form.
// The declared Total is trusted as-is and never compared with the line sums.
type OrderSubmission struct {
	Items []LineItem `json:"items" validate:"required,min=1"` // at least one line
	Total Int        `json:"total" validate:"gt=0"`           // total the client computed
}

// Int is an integer that tolerates loosely typed JSON.
// Integers are kept, floats are truncated toward zero, numeric strings are
// parsed and booleans map to 1/0. Anything else decodes to 0.
type Int int64

func (n *Int) UnmarshalJSON(b []byte) error {
	*n = Int(coerceInt(b))
	return nil
}

func coerceInt(b []byte) int64 {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return 0
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return 0
		}
		v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return 0
		}
		return v
	case 't':
		return 1
	case 'f', 'n', '[', '{':
		return 0
	}
	if v, err := strconv.ParseInt(string(b), 10, 64); err == nil {
		return v
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil || math.IsNaN(f) {
		return 0
	}
	f = math.Trunc(f)
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return 0
	}
	return int64(f)
}

// Text is a string that also accepts non-string JSON scalars verbatim.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0, bytes.Equal(b, []byte("null")):
		*t = ""
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
	default:
		*t = Text(b)
	}
	return nil
}
