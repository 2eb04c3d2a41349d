// Package core provides money parsing and handling utilities.
//
// Amounts are exact decimals in major units (euros). They are stored as plain
// JSON numbers so a persisted record keeps the same shape whatever wrote it.
package core

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency is the ISO code used when formatting amounts for display.
const Currency = money.EUR

const (
	// maxAmountDigits bounds the integer part of a single entered amount.
	maxAmountDigits = 12
	// maxExponent bounds the decimal exponent of any amount, entered or stored.
	maxExponent = 40
)

// Money is an exact amount in euros.
type Money struct {
	value decimal.Decimal
}

// Zero is the zero amount.
var Zero = Money{}

// Euros builds an amount from whole euros.
func Euros(n int64) Money {
	return Money{value: decimal.NewFromInt(n)}
}

// ParseMoney parses user input such as "12.34", "12,34" or " 5 ".
//
// Both dot and comma decimal separators are accepted. Signs are allowed so that
// goals can be set to negative values; operations that need a positive amount
// validate it themselves. Amounts of a trillion euros or more are rejected.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Zero, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, ErrInvalidAmount
	}
	if err := checkBounds(d); err != nil {
		return Zero, ErrInvalidAmount
	}
	if integerDigits(d) > maxAmountDigits {
		return Zero, ErrInvalidAmount
	}
	return Money{value: d}, nil
}

// checkBounds refuses exponents whose expansion would be unreasonably large.
// It must run before anything rescales d.
func checkBounds(d decimal.Decimal) error {
	if exp := d.Exponent(); exp > maxExponent || exp < -maxExponent {
		return fmt.Errorf("amount exponent %d out of range", exp)
	}
	return nil
}

// integerDigits counts the digits left of the decimal point.
func integerDigits(d decimal.Decimal) int {
	if d.IsZero() {
		return 0
	}
	return d.NumDigits() + int(d.Exponent())
}

func (m Money) Add(n Money) Money        { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money        { return Money{value: m.value.Sub(n.value)} }
func (m Money) IsZero() bool             { return m.value.IsZero() }
func (m Money) IsPositive() bool         { return m.value.IsPositive() }
func (m Money) Equal(n Money) bool       { return m.value.Equal(n.value) }
func (m Money) GreaterThan(n Money) bool { return m.value.GreaterThan(n.value) }
func (m Money) LessThan(n Money) bool    { return m.value.LessThan(n.value) }
func (m Money) Validate() error          { return validatePositive(m) }
func (m Money) StringFixed() string      { return m.value.StringFixed(2) }

// MinMoney returns the smaller of a and b.
func MinMoney(a, b Money) Money {
	if a.LessThan(b) {
		return a
	}
	return b
}

// MaxMoney returns the larger of a and b.
func MaxMoney(a, b Money) Money {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// Percent returns part/whole*100 as a float, or 0 when whole is not positive.
func Percent(part, whole Money) float64 {
	if !whole.IsPositive() {
		return 0
	}
	return part.value.Div(whole.value).Mul(decimal.NewFromInt(100)).InexactFloat64()
}

// String formats the amount for display, e.g. "€15.00" or "-€1,234.50".
// It follows the currency's go-money layout but formats from the decimal, so
// amounts beyond the int64 range of minor units still print correctly.
func (m Money) String() string {
	f := money.GetCurrency(Currency).Formatter()
	digits := m.value.Abs().StringFixed(int32(f.Fraction))
	whole, frac, _ := strings.Cut(digits, ".")

	if f.Thousand != "" {
		for i := len(whole) - 3; i > 0; i -= 3 {
			whole = whole[:i] + f.Thousand + whole[i:]
		}
	}
	if frac != "" {
		whole += f.Decimal + frac
	}
	out := strings.Replace(f.Template, "1", whole, 1)
	out = strings.Replace(out, "$", f.Grapheme, 1)
	if m.value.Round(int32(f.Fraction)).IsNegative() {
		out = "-" + out
	}
	return out
}

// MarshalJSON writes the amount as a bare JSON number.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.value.String()), nil
}

// UnmarshalJSON accepts numbers, quoted numbers and null (as zero).
func (m *Money) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*m = Zero
		return nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return err
	}
	if err := checkBounds(d); err != nil {
		return err
	}
	m.value = d
	return nil
}

func validatePositive(m Money) error {
	if !m.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}
