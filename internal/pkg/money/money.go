// Package money provides an exact decimal amount type backed by big.Rat.
//
// Amounts are persisted as a normalized numerator/denominator pair of INT64
// columns, so every value that reaches storage must fit both parts in int64.
package money

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

var (
	// ErrInvalidAmount is returned when a string cannot be parsed as a decimal amount.
	ErrInvalidAmount = errors.New("invalid monetary amount")

	// ErrZeroDenominator is returned when a zero or negative denominator is supplied.
	ErrZeroDenominator = errors.New("denominator must be positive")

	// ErrOverflow is returned when an amount cannot be stored as int64 parts.
	ErrOverflow = errors.New("monetary amount exceeds storage capacity")
)

var hundred = big.NewInt(100)

// Money represents a monetary value with precise decimal arithmetic.
// Money values are immutable; every operation returns a new instance.
type Money struct {
	rat *big.Rat
}

// New creates a Money from numerator and denominator.
// Example: New(1050, 100) represents 10.50.
func New(numerator, denominator int64) (*Money, error) {
	if denominator <= 0 {
		return nil, ErrZeroDenominator
	}
	return &Money{rat: big.NewRat(numerator, denominator)}, nil
}

// MustNew is like New but panics on error. Intended for constants and tests.
func MustNew(numerator, denominator int64) *Money {
	m, err := New(numerator, denominator)
	if err != nil {
		panic(err)
	}
	return m
}

// Zero returns a zero amount.
func Zero() *Money {
	return &Money{rat: new(big.Rat)}
}

// Parse parses a plain decimal string such as "10", "10.5" or "10.50".
func Parse(s string) (*Money, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, "/eE") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	rat, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return &Money{rat: rat}, nil
}

// Parts returns the normalized numerator and denominator for storage.
func (m *Money) Parts() (int64, int64, error) {
	num, den := m.rat.Num(), m.rat.Denom()
	if !num.IsInt64() || !den.IsInt64() {
		return 0, 0, ErrOverflow
	}
	return num.Int64(), den.Int64(), nil
}

// Add returns m + other.
func (m *Money) Add(other *Money) *Money {
	return &Money{rat: new(big.Rat).Add(m.rat, other.rat)}
}

// Subtract returns m - other.
func (m *Money) Subtract(other *Money) *Money {
	return &Money{rat: new(big.Rat).Sub(m.rat, other.rat)}
}

// MultiplyInt returns m * n.
func (m *Money) MultiplyInt(n int64) *Money {
	return &Money{rat: new(big.Rat).Mul(m.rat, new(big.Rat).SetInt64(n))}
}

// IsZero returns true if the amount is zero.
func (m *Money) IsZero() bool {
	return m.rat.Sign() == 0
}

// IsNegative returns true if the amount is below zero.
func (m *Money) IsNegative() bool {
	return m.rat.Sign() < 0
}

// IsPositive returns true if the amount is above zero.
func (m *Money) IsPositive() bool {
	return m.rat.Sign() > 0
}

// HasCents reports whether the amount is representable with at most two decimal places.
func (m *Money) HasCents() bool {
	return new(big.Int).Rem(hundred, m.rat.Denom()).Sign() == 0
}

// Cmp compares m and other and returns -1, 0 or +1.
func (m *Money) Cmp(other *Money) int {
	return m.rat.Cmp(other.rat)
}

// Equals returns true if both amounts are equal.
func (m *Money) Equals(other *Money) bool {
	if m == nil || other == nil {
		return m == other
	}
	return m.rat.Cmp(other.rat) == 0
}

// Float64 returns an approximate float64 representation (for display only).
func (m *Money) Float64() float64 {
	f, _ := m.rat.Float64()
	return f
}

// String renders the amount with two decimal places.
func (m *Money) String() string {
	return m.rat.FloatString(2)
}

// Copy creates a deep copy of this Money instance.
func (m *Money) Copy() *Money {
	if m == nil {
		return nil
	}
	return &Money{rat: new(big.Rat).Set(m.rat)}
}

// MarshalText renders the amount as a two-decimal string.
func (m *Money) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText parses a plain decimal string.
func (m *Money) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	m.rat = parsed.rat
	return nil
}

// FromNullable rebuilds an optional stored amount. It returns nil when valid is false.
func FromNullable(numerator, denominator int64, valid bool) (*Money, error) {
	if !valid {
		return nil, nil
	}
	return New(numerator, denominator)
}
