package money

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidAmount = errors.New("invalid amount")

// Money is a currency amount stored as integer cents so that sums and
// threshold comparisons stay exact. The currency itself is a user setting
// and is not carried here.
type Money struct {
	Cents int64
}

func FromCents(cents int64) Money {
	return Money{Cents: cents}
}

// FromFloat converts a decimal amount (e.g. 79.99 from a JSON body) to
// cents with half-up rounding on the third decimal place.
func FromFloat(amount float64) Money {
	return Money{Cents: int64(math.Round(amount * 100))}
}

func (m Money) Float64() float64 {
	return float64(m.Cents) / 100
}

func (m Money) Add(other Money) Money {
	return Money{Cents: m.Cents + other.Cents}
}

func (m Money) Sub(other Money) Money {
	return Money{Cents: m.Cents - other.Cents}
}

func (m Money) IsPositive() bool {
	return m.Cents > 0
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (m Money) String() string {
	cents := m.Cents
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
