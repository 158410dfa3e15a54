package orders

import (
	"fmt"
	"strings"
	"time"
)

// OrderID derives the display id from the UTC second of t.
func OrderID(t time.Time) string {
	return t.UTC().Format(OrderIDLayout)
}

// SenderLabel is the full name, followed by (@handle) when a handle is set.
func SenderLabel(s Sender) string {
	who := s.FullName()
	if s.Username != "" {
		who += fmt.Sprintf(" (@%s)", s.Username)
	}
	return who
}

// FormatLine renders "• name: qty × price = sum".
func FormatLine(l Line) string {
	return fmt.Sprintf("• %s: %d × %s = %s", l.Name, l.Qty, Money(l.Price), Money(l.Sum()))
}

// BuildReceipt assembles a receipt. total is the declared total, not the sum of lines.
func BuildReceipt(now time.Time, sender Sender, lines []Line, total int64) Receipt {
	rendered := make([]string, 0, len(lines))
	for _, l := range lines {
		rendered = append(rendered, FormatLine(l))
	}
	return Receipt{
		OrderID:   OrderID(now),
		Submitter: SenderLabel(sender),
		Lines:     rendered,
		Total:     total,
	}
}

// Text renders the receipt as a chat message.
func (r Receipt) Text() string {
	out := make([]string, 0, len(r.Lines)+5)
	out = append(out,
		"🧾 Заказ #"+r.OrderID,
		"👤 Флорист: "+r.Submitter,
		"",
	)
	out = append(out, r.Lines...)
	out = append(out, "", "Итог: "+Money(r.Total))
	return strings.Join(out, "\n")
}
