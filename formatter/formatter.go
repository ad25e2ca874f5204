// Package formatter renders amounts, taxpayer documents and phone numbers
// the way Brazilian receipts and checkout screens show them.
//
// Every function is total: input it cannot format is returned unchanged.
package formatter

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/stremovskyy/go-aditum/document"
)

// CurrencySymbol is the symbol of the Brazilian real.
const CurrencySymbol = "R$"

// nbsp separates the symbol from the amount, as the pt-BR locale does.
const nbsp = "\u00a0"

var locale = language.BrazilianPortuguese

// Currency formats amount as pt-BR money with exactly two fractional digits,
// e.g. 1234.5 -> "R$ 1.234,50" (the separator after the symbol is a NBSP).
func Currency(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return strconv.FormatFloat(amount, 'f', -1, 64)
	}

	d := decimal.NewFromFloat(amount).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	f, _ := d.Float64()

	p := message.NewPrinter(locale)
	return sign + CurrencySymbol + nbsp + p.Sprint(number.Decimal(f, number.Scale(2)))
}

// Document groups an 11-digit CPF as ###.###.###-## and a 14-digit CNPJ as
// ##.###.###/####-##. Non-digit characters are ignored when counting.
func Document(digits string) string {
	d := document.Digits(digits)
	switch len(d) {
	case document.TaxIDLength:
		return d[0:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:11]
	case document.CompanyIDLength:
		return d[0:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:14]
	default:
		return digits
	}
}

// Phone formats an 11-digit mobile number as (##) #####-#### and a 10-digit
// landline as (##) ####-####.
func Phone(digits string) string {
	d := document.Digits(digits)
	switch len(d) {
	case 11:
		return "(" + d[0:2] + ") " + d[2:7] + "-" + d[7:11]
	case 10:
		return "(" + d[0:2] + ") " + d[2:6] + "-" + d[6:10]
	default:
		return digits
	}
}
