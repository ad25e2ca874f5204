package formatter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocument(t *testing.T) {
	assert.Equal(t, "123.456.789-01", Document("12345678901"))
	assert.Equal(t, "12.345.678/0001-95", Document("12345678000195"))
	assert.Equal(t, "abc", Document("abc"))
	assert.Equal(t, "1234", Document("1234"))
	assert.Equal(t, "", Document(""))
	// already formatted input keeps its grouping
	assert.Equal(t, "123.456.789-01", Document("123.456.789-01"))
}

func TestPhone(t *testing.T) {
	assert.Equal(t, "(11) 98765-4321", Phone("11987654321"))
	assert.Equal(t, "(11) 3333-4444", Phone("1133334444"))
	assert.Equal(t, "123", Phone("123"))
	assert.Equal(t, "+55 11 98765-43210", Phone("+55 11 98765-43210"))
}

func TestCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{in: 0, want: "R$\u00a00,00"},
		{in: 10.5, want: "R$\u00a010,50"},
		{in: 99.999, want: "R$\u00a0100,00"},
		{in: 1234.56, want: "R$\u00a01.234,56"},
		{in: -1, want: "-R$\u00a01,00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Currency(tt.in))
	}
}

func TestCurrencyPassesThroughNonFinite(t *testing.T) {
	assert.Equal(t, "NaN", Currency(math.NaN()))
	assert.Equal(t, "+Inf", Currency(math.Inf(1)))
}
