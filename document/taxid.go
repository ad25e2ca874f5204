// Package document validates Brazilian taxpayer identifiers (CPF and CNPJ).
package document

import "strings"

const (
	// TaxIDLength is the digit count of an individual taxpayer id (CPF).
	TaxIDLength = 11
	// CompanyIDLength is the digit count of a company taxpayer id (CNPJ).
	CompanyIDLength = 14
)

var repeatedTaxIDs = map[string]struct{}{
	"00000000000": {},
	"11111111111": {},
	"22222222222": {},
	"33333333333": {},
	"44444444444": {},
	"55555555555": {},
	"66666666666": {},
	"77777777777": {},
	"88888888888": {},
	"99999999999": {},
}

var (
	cnpjWeightsFirst  = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjWeightsSecond = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// Digits strips every non-digit character from s.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// IsValidTaxID reports whether digits is an 11-digit CPF with both check digits correct.
func IsValidTaxID(digits string) bool {
	d, ok := toDigits(digits, TaxIDLength)
	if !ok {
		return false
	}
	if _, repeated := repeatedTaxIDs[digits]; repeated {
		return false
	}

	sum := 0
	for i := 0; i < 9; i++ {
		sum += d[i] * (10 - i)
	}
	if cpfCheckDigit(sum) != d[9] {
		return false
	}

	sum = 0
	for i := 0; i < 10; i++ {
		sum += d[i] * (11 - i)
	}
	return cpfCheckDigit(sum) == d[10]
}

// IsValidCNPJ reports whether digits is a 14-digit CNPJ with both check digits correct.
//
// The payment schema only calls it in strict mode.
func IsValidCNPJ(digits string) bool {
	d, ok := toDigits(digits, CompanyIDLength)
	if !ok {
		return false
	}
	if strings.Count(digits, digits[:1]) == CompanyIDLength {
		return false
	}

	if cnpjCheckDigit(d, cnpjWeightsFirst) != d[12] {
		return false
	}
	return cnpjCheckDigit(d, cnpjWeightsSecond) == d[13]
}

func cpfCheckDigit(sum int) int {
	r := (sum * 10) % 11
	if r == 10 || r == 11 {
		return 0
	}
	return r
}

func cnpjCheckDigit(d []int, weights []int) int {
	sum := 0
	for i, w := range weights {
		sum += d[i] * w
	}
	r := sum % 11
	if r < 2 {
		return 0
	}
	return 11 - r
}

func toDigits(s string, n int) ([]int, bool) {
	if len(s) != n {
		return nil, false
	}
	out := make([]int, n)
	for i := 0; i < n; i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return nil, false
		}
		out[i] = int(c - '0')
	}
	return out, true
}
