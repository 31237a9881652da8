package database

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Amount is the value moved by a transaction. It holds the JSON number
// literal exactly as it was submitted so integer and fractional amounts both
// survive the round trip between nodes.
type Amount string

// NewAmount constructs an integer amount.
func NewAmount(v int64) Amount {
	return Amount(strconv.FormatInt(v, 10))
}

// ParseAmount checks the string is a single JSON number literal.
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)

	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	n, ok := v.(json.Number)
	if !ok || n.String() != s {
		return "", fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	return Amount(s), nil
}

// MarshalJSON implements the json.Marshaler interface.
func (a Amount) MarshalJSON() ([]byte, error) {
	if a == "" {
		return []byte("null"), nil
	}
	return []byte(a), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface. A JSON null leaves
// the amount untouched.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}

	v, err := ParseAmount(s)
	if err != nil {
		return err
	}
	*a = v

	return nil
}

// String implements the fmt.Stringer interface.
func (a Amount) String() string {
	return string(a)
}

// canonical renders the amount the way the block digest expects. Integer
// literals are kept as written and every other literal is rendered as a
// float.
func (a Amount) canonical() string {
	s := string(a)

	if !strings.ContainsAny(s, ".eE") {
		if s == "-0" || s == "" {
			return "0"
		}
		return s
	}

	// Out of range literals come back as infinity or zero along with
	// ErrRange, which is the value the float form needs.
	f, _ := strconv.ParseFloat(s, 64)
	return formatFloat(f)
}
