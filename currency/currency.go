// Package currency defines the currency and currency-pair value types shared
// by every pricing package, plus the structured rate table used for
// pair-keyed rate lookups.
package currency

import (
	"fmt"

	"github.com/quantora/fxcore/fxerr"
)

// Code is a validated 3-letter ISO 4217 currency code. It is a distinct
// type from string so currencies cannot be mixed with arbitrary text.
type Code string

// ParseCode validates and returns a currency code. Codes must be exactly
// three uppercase ASCII letters.
func ParseCode(s string) (Code, error) {
	if len(s) != 3 {
		return "", fxerr.Validationf("ParseCode", "currency code %q must be 3 letters", s)
	}
	for _, c := range s {
		if c < 'A' || c > 'Z' {
			return "", fxerr.Validationf("ParseCode", "currency code %q must be uppercase letters", s)
		}
	}
	return Code(s), nil
}

// MustCode is ParseCode for compile-time-known codes; it panics on invalid
// input and is intended for constants and tests.
func MustCode(s string) Code {
	c, err := ParseCode(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Code) String() string { return string(c) }

// IsJPYLike reports whether the code quotes with a 0.01 pip by market
// convention.
func (c Code) IsJPYLike() bool {
	return c == "JPY" || c == "HUF" || c == "KRW"
}

// Pair is an ordered currency pair with its quoting conventions.
//
// Symbol, Precision, and PipSize are derived from market convention by
// NewPair when left unset.
type Pair struct {
	Base      Code
	Quote     Code
	Symbol    string
	Precision int
	PipSize   float64
}

// PairParams are the inputs to NewPair. Precision and PipSize are optional;
// zero values select the market convention for the quote currency
// (JPY-quoted pairs: pip 0.01, precision 3; otherwise pip 0.0001,
// precision 5).
type PairParams struct {
	Base      Code
	Quote     Code
	Precision int
	PipSize   float64
}

// NewPair validates and constructs a currency pair.
func NewPair(params PairParams) (Pair, error) {
	if params.Base == "" || params.Quote == "" {
		return Pair{}, fxerr.Validationf("NewPair", "base and quote are required")
	}
	if params.Base == params.Quote {
		return Pair{}, fxerr.Validationf("NewPair", "base and quote must differ: %s", params.Base)
	}
	if params.Precision < 0 || params.Precision > 10 {
		return Pair{}, fxerr.Validationf("NewPair", "precision %d outside [0,10]", params.Precision)
	}
	if params.PipSize < 0 {
		return Pair{}, fxerr.Validationf("NewPair", "pip size must be positive, got %g", params.PipSize)
	}

	precision := params.Precision
	pip := params.PipSize
	if pip == 0 {
		if params.Quote.IsJPYLike() {
			pip = 0.01
		} else {
			pip = 0.0001
		}
	}
	if precision == 0 {
		if params.Quote.IsJPYLike() {
			precision = 3
		} else {
			precision = 5
		}
	}

	return Pair{
		Base:      params.Base,
		Quote:     params.Quote,
		Symbol:    fmt.Sprintf("%s/%s", params.Base, params.Quote),
		Precision: precision,
		PipSize:   pip,
	}, nil
}

// MustPair builds a conventional pair from two codes or panics; intended
// for constants and tests.
func MustPair(base, quote string) Pair {
	p, err := NewPair(PairParams{Base: MustCode(base), Quote: MustCode(quote)})
	if err != nil {
		panic(err)
	}
	return p
}

// Inverse returns the pair with base and quote swapped, re-deriving the
// quoting conventions for the new quote currency.
func (p Pair) Inverse() (Pair, error) {
	return NewPair(PairParams{Base: p.Quote, Quote: p.Base})
}

// hierarchy is the fixed market-convention priority used to order pairs.
// A currency earlier in this list is quoted as the base against anything
// later (EUR/USD rather than USD/EUR). Currencies outside the list rank
// below all of it.
var hierarchy = []Code{"EUR", "GBP", "AUD", "NZD", "USD", "CAD", "CHF", "JPY"}

func hierarchyRank(c Code) int {
	for i, h := range hierarchy {
		if h == c {
			return i
		}
	}
	return len(hierarchy)
}

// Normalize returns the market-convention orientation of a pair of
// currencies: the currency with the higher hierarchy priority becomes the
// base. Ties (both currencies outside the hierarchy) keep the input order.
func Normalize(a, b Code) (Pair, error) {
	if hierarchyRank(b) < hierarchyRank(a) {
		a, b = b, a
	}
	return NewPair(PairParams{Base: a, Quote: b})
}
