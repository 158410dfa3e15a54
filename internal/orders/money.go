package orders

import (
	"strconv"
	"strings"
)

// CurrencySuffix follows every formatted amount.
const CurrencySuffix = " ₽"

// Money formats n with space-grouped thousands, e.g. 1234567 -> "1 234 567 ₽".
func Money(n int64) string {
	digits := strconv.FormatInt(n, 10)
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}

	var b strings.Builder
	b.WriteString(sign)
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	b.WriteString(CurrencySuffix)
	return b.String()
}
