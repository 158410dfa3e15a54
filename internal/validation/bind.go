package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	validatorv10 "github.com/go-playground/validator/v10"
)

var (
	// ErrMalformedPayload means the submitted text is not a JSON object of the expected shape.
	ErrMalformedPayload = errors.New("malformed payload")
	// ErrInvalidCart means the cart is empty or its total is not positive.
	ErrInvalidCart = errors.New("invalid cart")
)

// DecodeAndValidate decodes raw into out and runs validation.
// Decoding failures wrap ErrMalformedPayload, validation failures wrap ErrInvalidCart.
func DecodeAndValidate(raw string, out interface{}, v *validatorv10.Validate) error {
	body := bytes.TrimSpace([]byte(raw))
	if len(body) == 0 || body[0] != '{' {
		return fmt.Errorf("%w: expected a json object", ErrMalformedPayload)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	if err := v.Struct(out); err != nil {
		return &CartError{Fields: validationErrorsToMap(err)}
	}
	return nil
}

// CartError lists the fields that failed cart validation.
type CartError struct {
	Fields map[string]string
}

func (e *CartError) Error() string {
	return fmt.Sprintf("%s: %v", ErrInvalidCart, e.Fields)
}

func (e *CartError) Unwrap() error { return ErrInvalidCart }

// DecodeSubmission parses a web form payload into an OrderSubmission.
func DecodeSubmission(raw string, v *validatorv10.Validate) (*OrderSubmission, error) {
	var sub OrderSubmission
	if err := DecodeAndValidate(raw, &sub, v); err != nil {
		return nil, err
	}
	return &sub, nil
}

func validationErrorsToMap(err error) map[string]string {
	out := map[string]string{}
	var ve validatorv10.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			out[fe.Field()] = fe.Tag()
		}
	} else {
		out["error"] = err.Error()
	}
	return out
}
