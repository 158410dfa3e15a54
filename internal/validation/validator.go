package validation

import (
	"fmt"
	"math"
	"math/bits"
	"reflect"
	"strings"

	validatorv10 "github.com/go-playground/validator/v10"
)

// New returns a validator that reports fields by their json names.
func New() *validatorv10.Validate {
	v := validatorv10.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// every line sum must be representable, the receipt prints qty * price
	v.RegisterStructValidation(submissionStructValidation, OrderSubmission{})

	return v
}

func submissionStructValidation(sl validatorv10.StructLevel) {
	sub := sl.Current().Interface().(OrderSubmission)

	for i, it := range sub.Items {
		if _, ok := mulInt64(int64(it.Qty), int64(it.Price)); !ok {
			sl.ReportError(sub.Items, "items", "Items", "line_sum_range", fmt.Sprintf("line %d: %d * %d overflows", i, it.Qty, it.Price))
			return
		}
	}
}

// mulInt64 returns a*b and whether it fits in an int64.
func mulInt64(a, b int64) (int64, bool) {
	hi, lo := bits.Mul64(absUint64(a), absUint64(b))
	if hi != 0 {
		return 0, false
	}
	neg := (a < 0) != (b < 0)
	if neg && lo == 1<<63 {
		return math.MinInt64, true
	}
	if lo > math.MaxInt64 {
		return 0, false
	}
	if neg {
		return -int64(lo), true
	}
	return int64(lo), true
}

func absUint64(n int64) uint64 {
	if n < 0 {
		return uint64(-n)
	}
	return uint64(n)
}
