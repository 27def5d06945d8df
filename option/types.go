package option

import (
	"github.com/quantora/fxcore/currency"
	"github.com/quantora/fxcore/fxerr"
)

// Type is the option direction.
type Type int

const (
	Call Type = iota
	Put
)

func (t Type) String() string {
	if t == Put {
		return "put"
	}
	return "call"
}

// Style is the exercise style. Both styles are priced with the European
// closed form; early exercise carries no value in this model.
type Style int

const (
	European Style = iota
	American
)

// Option is a fully specified FX option. Rates are annualized decimals;
// TimeToExpiry is in years; Volatility is an annualized decimal (0.10 ==
// 10%). DomesticRate is the quote-currency rate, ForeignRate the
// base-currency rate.
type Option struct {
	Pair         currency.Pair
	Type         Type
	Strike       float64
	Spot         float64
	TimeToExpiry float64
	Volatility   float64
	DomesticRate float64
	ForeignRate  float64
	Style        Style
}

// Validate rejects non-positive strike, spot, expiry, or volatility before
// any pricing proceeds.
func (o Option) Validate(op string) error {
	if o.Strike <= 0 {
		return fxerr.Validationf(op, "strike must be positive, got %g", o.Strike)
	}
	if o.Spot <= 0 {
		return fxerr.Validationf(op, "spot must be positive, got %g", o.Spot)
	}
	if o.TimeToExpiry <= 0 {
		return fxerr.Validationf(op, "time to expiry must be positive, got %g", o.TimeToExpiry)
	}
	if o.Volatility <= 0 {
		return fxerr.Validationf(op, "volatility must be positive, got %g", o.Volatility)
	}
	return nil
}

// Greeks are the closed-form sensitivities of the option premium. Vega is
// per one volatility point (1%), Theta per calendar day, Rho and RhoForeign
// per one rate point (1%).
type Greeks struct {
	Delta      float64
	Gamma      float64
	Vega       float64
	Theta      float64
	Rho        float64
	RhoForeign float64
}

// Price is the immutable output of the pricer.
type Price struct {
	Premium float64
	Greeks  Greeks
	D1      float64
	D2      float64
}
