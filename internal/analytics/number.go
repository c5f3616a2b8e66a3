package analytics

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Number is a decimal that decodes leniently from JSON.
//
// It accepts JSON numbers, numeric strings and null. Anything that cannot be
// read as a number (booleans, words, objects) decodes to zero instead of
// failing the whole payload.
type Number struct {
	decimal.Decimal
}

// NewNumber wraps d.
func NewNumber(d decimal.Decimal) Number {
	return Number{Decimal: d}
}

// NumberFromFloat is a convenience for fixtures and tests.
func NumberFromFloat(f float64) Number {
	return Number{Decimal: decimal.NewFromFloat(f)}
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	n.Decimal = parseLenient(data)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) {
	return n.Decimal.MarshalJSON()
}

func parseLenient(data []byte) decimal.Decimal {
	raw := bytes.TrimSpace(data)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return decimal.Zero
	}

	s := string(raw)
	if raw[0] == '"' {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return decimal.Zero
		}
		s = strings.TrimSpace(unquoted)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
