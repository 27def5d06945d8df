package currency

import "github.com/quantora/fxcore/fxerr"

// PairKey is a structured map key for rate lookups, replacing formatted
// "EUR/USD" strings so a lookup cannot be built from a typo'd symbol.
type PairKey struct {
	Base  Code
	Quote Code
}

// Inverse returns the key with base and quote swapped.
func (k PairKey) Inverse() PairKey { return PairKey{Base: k.Quote, Quote: k.Base} }

// RateTable is a snapshot of mid rates keyed by currency pair. It is a
// plain value map: callers build one per market-data snapshot and discard
// it after use.
type RateTable map[PairKey]float64

// NewRateTable builds a table from explicit entries.
func NewRateTable() RateTable { return make(RateTable) }

// Set stores the rate for base/quote.
func (t RateTable) Set(base, quote Code, rate float64) {
	t[PairKey{Base: base, Quote: quote}] = rate
}

// Direct returns the rate stored for exactly base/quote, without trying the
// inverted orientation.
func (t RateTable) Direct(base, quote Code) (float64, bool) {
	r, ok := t[PairKey{Base: base, Quote: quote}]
	return r, ok
}

// Lookup resolves the rate for base/quote, first trying the stored
// orientation and then the inverse (returning 1/rate). A miss in both
// orientations is a data error.
func (t RateTable) Lookup(base, quote Code) (float64, error) {
	key := PairKey{Base: base, Quote: quote}
	if r, ok := t[key]; ok {
		return r, nil
	}
	if r, ok := t[key.Inverse()]; ok && r != 0 {
		return 1 / r, nil
	}
	return 0, fxerr.DataErrf("RateTable.Lookup", "no rate for %s/%s in either orientation", base, quote)
}

// Currencies returns the distinct currencies present across all keys.
func (t RateTable) Currencies() []Code {
	seen := make(map[Code]struct{}, 2*len(t))
	var out []Code
	for k := range t {
		if _, ok := seen[k.Base]; !ok {
			seen[k.Base] = struct{}{}
			out = append(out, k.Base)
		}
		if _, ok := seen[k.Quote]; !ok {
			seen[k.Quote] = struct{}{}
			out = append(out, k.Quote)
		}
	}
	return out
}
