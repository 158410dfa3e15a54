package orders

import "strings"

// OrderIDLayout renders the UTC submission second, e.g. 20240131235959.
// Two orders built within the same second share an id.
const OrderIDLayout = "20060102150405"

// Sender identifies the florist who submitted the order.
type Sender struct {
	FirstName string
	LastName  string
	Username  string // optional handle, without the @
}

// FullName joins first and last name the way chat clients display them.
func (s Sender) FullName() string {
	return strings.TrimSpace(strings.Join([]string{s.FirstName, s.LastName}, " "))
}

// Line is one priced cart line.
type Line struct {
	Name  string
	Qty   int64
	Price int64
}

// Sum is qty * price. Submissions whose product would overflow are rejected
// before a Line is built.
func (l Line) Sum() int64 { return l.Qty * l.Price }

// Receipt is the rendered summary forwarded to the operations chat.
type Receipt struct {
	OrderID   string
	Submitter string
	Lines     []string
	Total     int64
}
