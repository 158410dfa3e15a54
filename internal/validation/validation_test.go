package validation

import (
	"errors"
	"math"
	"testing"
)

func TestDecodeSubmission_Valid(t *testing.T) {
	v := New()

	sub, err := DecodeSubmission(`{"items":[{"name":"Rose","qty":3,"price":150},{"name":"Tulip","qty":1,"price":90}],"total":540}`, v)
	if err != nil {
		t.Fatalf("expected valid, got error: %v", err)
	}
	if len(sub.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(sub.Items))
	}
	if sub.Items[0].Name != "Rose" || sub.Items[0].Qty != 3 || sub.Items[0].Price != 150 {
		t.Fatalf("unexpected first item: %+v", sub.Items[0])
	}
	if sub.Total != 540 {
		t.Fatalf("expected total 540, got %d", sub.Total)
	}
}

func TestDecodeSubmission_TotalNotCheckedAgainstLines(t *testing.T) {
	v := New()

	// 3*150 = 450, but the declared total is trusted.
	sub, err := DecodeSubmission(`{"items":[{"name":"Rose","qty":3,"price":150}],"total":1}`, v)
	if err != nil {
		t.Fatalf("expected mismatched total to be accepted, got %v", err)
	}
	if sub.Total != 1 {
		t.Fatalf("expected declared total 1, got %d", sub.Total)
	}
}

func TestDecodeSubmission_Malformed(t *testing.T) {
	v := New()

	cases := map[string]string{
		"empty":           ``,
		"not json":        `hello`,
		"truncated":       `{"items":[`,
		"array":           `[1,2,3]`,
		"null":            `null`,
		"number":          `42`,
		"items not array": `{"items":"roses","total":10}`,
		"item not object": `{"items":[5],"total":10}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeSubmission(raw, v)
			if !errors.Is(err, ErrMalformedPayload) {
				t.Fatalf("expected ErrMalformedPayload, got %v", err)
			}
		})
	}
}

func TestDecodeSubmission_InvalidCart(t *testing.T) {
	v := New()

	cases := map[string]string{
		"no fields":      `{}`,
		"empty items":    `{"items":[],"total":100}`,
		"zero total":     `{"items":[{"name":"Rose","qty":1,"price":100}],"total":0}`,
		"negative total": `{"items":[{"name":"Rose","qty":1,"price":100}],"total":-5}`,
		"missing total":  `{"items":[{"name":"Rose","qty":1,"price":100}]}`,
		"garbage total":  `{"items":[{"name":"Rose","qty":1,"price":100}],"total":"lots"}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeSubmission(raw, v)
			if !errors.Is(err, ErrInvalidCart) {
				t.Fatalf("expected ErrInvalidCart, got %v", err)
			}
			if errors.Is(err, ErrMalformedPayload) {
				t.Fatalf("invalid cart must not be reported as malformed")
			}
		})
	}
}

func TestDecodeSubmission_InvalidCartFields(t *testing.T) {
	v := New()

	_, err := DecodeSubmission(`{"items":[],"total":0}`, v)
	var ce *CartError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *CartError, got %T", err)
	}
	if _, ok := ce.Fields["items"]; !ok {
		t.Fatalf("expected items field error, got %v", ce.Fields)
	}
	if _, ok := ce.Fields["total"]; !ok {
		t.Fatalf("expected total field error, got %v", ce.Fields)
	}
}

func TestDecodeSubmission_Coercion(t *testing.T) {
	v := New()

	sub, err := DecodeSubmission(`{"items":[
		{"name":"A","qty":"2","price":99.9},
		{"name":7,"qty":null,"price":{}},
		{"qty":true,"price":" 15 "},
		{"name":"B","qty":-2.7,"price":1e3}
	],"total":"250"}`, v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.Total != 250 {
		t.Fatalf("expected total 250, got %d", sub.Total)
	}

	want := []LineItem{
		{Name: "A", Qty: 2, Price: 99},
		{Name: "7", Qty: 0, Price: 0},
		{Name: "", Qty: 1, Price: 15},
		{Name: "B", Qty: -2, Price: 1000},
	}
	for i, w := range want {
		if sub.Items[i] != w {
			t.Fatalf("item %d: expected %+v, got %+v", i, w, sub.Items[i])
		}
	}
}

func TestDecodeSubmission_LineSumOverflow(t *testing.T) {
	v := New()

	_, err := DecodeSubmission(`{"items":[{"name":"Rose","qty":1,"price":10},{"name":"Peony","qty":4000000000,"price":4000000000}],"total":100}`, v)
	if !errors.Is(err, ErrInvalidCart) {
		t.Fatalf("expected ErrInvalidCart, got %v", err)
	}
	var ce *CartError
	if !errors.As(err, &ce) || ce.Fields["items"] != "line_sum_range" {
		t.Fatalf("expected items line_sum_range error, got %v", err)
	}

	// large but representable sums pass
	if _, err := DecodeSubmission(`{"items":[{"name":"Peony","qty":-3000000000,"price":3000000000}],"total":100}`, v); err != nil {
		t.Fatalf("expected representable line sum to be accepted, got %v", err)
	}
}

func TestMulInt64(t *testing.T) {
	cases := []struct {
		a, b int64
		want int64
		ok   bool
	}{
		{3, 150, 450, true},
		{-2, 7, -14, true},
		{math.MaxInt64, 1, math.MaxInt64, true},
		{math.MinInt64, 1, math.MinInt64, true},
		{math.MinInt64, -1, 0, false},
		{4000000000, 4000000000, 0, false},
		{1 << 62, 2, 0, false},
		{-(1 << 62), 2, math.MinInt64, true},
	}
	for _, c := range cases {
		got, ok := mulInt64(c.a, c.b)
		if ok != c.ok || (ok && got != c.want) {
			t.Fatalf("mulInt64(%d, %d) = %d, %v; want %d, %v", c.a, c.b, got, ok, c.want, c.ok)
		}
	}
}

func TestCoerceInt_OutOfRange(t *testing.T) {
	if got := coerceInt([]byte("1e300")); got != 0 {
		t.Fatalf("expected 0 for out-of-range float, got %d", got)
	}
	if got := coerceInt([]byte(`"12abc"`)); got != 0 {
		t.Fatalf("expected 0 for non-numeric string, got %d", got)
	}
}

func TestDecodeSubmission_NullNameIsEmpty(t *testing.T) {
	sub, err := DecodeSubmission(`{"items":[{"name":null,"qty":1,"price":10}],"total":10}`, New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.Items[0].Name != "" {
		t.Fatalf("expected empty name, got %q", sub.Items[0].Name)
	}
}
