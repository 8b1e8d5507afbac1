// Package money provides the exact decimal amount type used for budgets,
// expenses and every aggregate derived from them.
//
// Amounts are held as shopspring decimals rounded to two fractional digits,
// so sums of many small values never drift. They cross the JSON boundary as
// plain numbers with exactly two fractional digits and are stored as strings,
// which both NUMERIC(14,2) on Postgres and sqlite accept.
package money

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Places is the number of fractional digits kept for every amount.
const Places = 2

var (
	// ErrInvalid is returned when a value cannot be read as a decimal amount.
	ErrInvalid = errors.New("invalid amount")
	// ErrOutOfRange is returned when a value exceeds MaxAmount in magnitude.
	ErrOutOfRange = errors.New("amount out of range")
)

// MaxAmount is the largest magnitude that fits a NUMERIC(14,2) column.
var MaxAmount = decimal.RequireFromString("999999999999.99")

// maxIntDigits is the number of integer digits in MaxAmount.
const maxIntDigits = 12

// Amount is an exact monetary value with two fractional digits.
// The zero value is 0.00.
type Amount struct {
	d decimal.Decimal
}

// Zero is the 0.00 amount.
var Zero = Amount{}

// New rounds d to two fractional digits.
func New(d decimal.Decimal) Amount {
	return Amount{d: d.Round(Places)}
}

// FromCents builds an amount from an integer number of hundredths.
func FromCents(cents int64) Amount {
	return Amount{d: decimal.New(cents, -Places)}
}

// Parse reads a decimal string such as "12.5" or "12.345" and rounds it half
// away from zero to two fractional digits.
func Parse(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Zero, ErrInvalid
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, fmt.Errorf("%w: %q", ErrInvalid, s)
	}
	if d.IsZero() {
		return Zero, nil
	}
	// Settle extreme exponents before Round rescales to them.
	// 10^(mag-1) <= |d| < 10^mag
	mag := d.NumDigits() + int(d.Exponent())
	if mag > maxIntDigits {
		return Zero, ErrOutOfRange
	}
	if mag < -Places {
		return Zero, nil
	}
	a := New(d)
	if !a.InRange() {
		return Zero, ErrOutOfRange
	}
	return a, nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Amount {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Amount) Decimal() decimal.Decimal { return a.d }
func (a Amount) Add(b Amount) Amount      { return Amount{d: a.d.Add(b.d)} }
func (a Amount) Sub(b Amount) Amount      { return Amount{d: a.d.Sub(b.d)} }
func (a Amount) Neg() Amount              { return Amount{d: a.d.Neg()} }
func (a Amount) IsZero() bool             { return a.d.IsZero() }
func (a Amount) IsPositive() bool         { return a.d.IsPositive() }
func (a Amount) IsNegative() bool         { return a.d.IsNegative() }
func (a Amount) Equal(b Amount) bool      { return a.d.Equal(b.d) }
func (a Amount) Cmp(b Amount) int         { return a.d.Cmp(b.d) }

// InRange reports whether |a| <= MaxAmount.
func (a Amount) InRange() bool {
	return a.d.Abs().LessThanOrEqual(MaxAmount)
}

// Cents returns the amount in hundredths.
func (a Amount) Cents() int64 {
	return a.d.Shift(Places).IntPart()
}

// Float64 returns the nearest float64. For display and validation only.
func (a Amount) Float64() float64 {
	return a.d.InexactFloat64()
}

// String returns the amount with exactly two fractional digits.
func (a Amount) String() string {
	return a.d.StringFixed(Places)
}

// Format renders the amount for display in the given ISO 4217 currency,
// e.g. "$1,234.50". Unknown codes fall back to the plain string form.
func (a Amount) Format(code string) string {
	cur := gomoney.GetCurrency(code)
	if cur == nil {
		return a.String()
	}
	minor := a.d.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return gomoney.New(minor, cur.Code).Display()
}

// Sum adds amounts left to right.
func Sum(amounts ...Amount) Amount {
	total := Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// MarshalJSON writes the amount as a JSON number with two fractional digits.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalJSON accepts a JSON number or a numeric string.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*a = Zero
		return nil
	}
	s = strings.Trim(s, `"`)
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Scan implements sql.Scanner.
func (a *Amount) Scan(value interface{}) error {
	var d decimal.Decimal
	if err := d.Scan(value); err != nil {
		return fmt.Errorf("scan amount: %w", err)
	}
	*a = New(d)
	return nil
}

// Value implements driver.Valuer.
func (a Amount) Value() (driver.Value, error) {
	return a.String(), nil
}
