// Package format renders analytics values the way the dashboard displays them.
package format

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// Values at or above this magnitude are written in exponent form by toFixed.
const fixedLimit = 1e21

// Currency renders whole US dollars with thousands grouping, e.g. $1,235.
// Halves round away from zero.
func Currency(amount float64) string {
	switch {
	case math.IsNaN(amount):
		return "$NaN"
	case math.IsInf(amount, 1):
		return "$∞"
	case math.IsInf(amount, -1):
		return "-$∞"
	}
	rounded := math.Round(amount)
	sign := ""
	if math.Signbit(rounded) {
		sign = "-"
	}
	return sign + "$" + printer.Sprintf("%.0f", math.Abs(rounded))
}

// Percent renders a signed percentage with one decimal, e.g. +12.3%.
func Percent(value float64) string {
	sign := ""
	if value >= 0 {
		sign = "+"
	}
	return sign + toFixed(value, 1) + "%"
}

// PricePerUnit renders a unit price with four decimals, e.g. $0.0150.
func PricePerUnit(price float64) string {
	return "$" + toFixed(price, 4)
}

// toFixed writes v with digits decimals, rounding the exact binary value
// half up in magnitude. Negative zero prints as zero.
func toFixed(v float64, digits int) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case math.Abs(v) >= fixedLimit:
		return strconv.FormatFloat(v, 'g', -1, 64)
	}

	r := new(big.Rat).SetFloat64(math.Abs(v))
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil)

	// floor((num*scale*2 + den) / (den*2)) rounds num/den*scale half up.
	num := new(big.Int).Mul(r.Num(), scale)
	num.Lsh(num, 1).Add(num, r.Denom())
	den := new(big.Int).Lsh(r.Denom(), 1)
	s := num.Quo(num, den).String()

	if digits > 0 {
		if len(s) <= digits {
			s = strings.Repeat("0", digits-len(s)+1) + s
		}
		s = s[:len(s)-digits] + "." + s[len(s)-digits:]
	}
	if v < 0 {
		s = "-" + s
	}
	return s
}
