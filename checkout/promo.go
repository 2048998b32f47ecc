package checkout

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Promo is the one code the shop accepts and the percentage it takes off
// the subtotal.
type Promo struct {
	Code    string
	Percent int64
}

func (p Promo) Matches(code string) bool {
	code = strings.TrimSpace(code)
	return p.Code != "" && code != "" && strings.EqualFold(code, strings.TrimSpace(p.Code))
}

// DiscountOf rounds half up to the nearest minor unit and never exceeds subtotal.
func (p Promo) DiscountOf(subtotal int64) int64 {
	if subtotal <= 0 || p.Percent <= 0 {
		return 0
	}
	d := decimal.NewFromInt(subtotal).
		Mul(decimal.NewFromInt(p.Percent)).
		Div(decimal.NewFromInt(100)).
		Round(0).
		IntPart()
	if d > subtotal {
		return subtotal
	}
	return d
}
