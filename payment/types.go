// Package payment holds the request and result shapes exchanged with the
// payment processor. Field names and casing are the wire contract.
package payment

import (
	"github.com/shopspring/decimal"

	"github.com/stremovskyy/go-aditum/consts"
)

// SdkConfig configures the processor once per process.
//
// Zero-valued Environment and Timeout are treated as unset and take their defaults.
type SdkConfig struct {
	APIKey      string             `json:"apiKey" validate:"min=1,max=200"`
	Environment consts.Environment `json:"environment" validate:"oneof=production sandbox"`
	EnableLogs  bool               `json:"enableLogs"`
	Timeout     int                `json:"timeout" validate:"min=10,max=120"`
}

// Values returns the config as a raw record suitable for re-validation.
func (c *SdkConfig) Values() map[string]any {
	if c == nil {
		return nil
	}
	v := map[string]any{
		"apiKey":     c.APIKey,
		"enableLogs": c.EnableLogs,
	}
	if c.Environment != "" {
		v["environment"] = string(c.Environment)
	}
	if c.Timeout != 0 {
		v["timeout"] = c.Timeout
	}
	return v
}

// PaymentRequest describes a single charge attempt.
//
// Optional fields are pointers: nil means absent, a pointer to "" is present
// and validated as an empty value.
type PaymentRequest struct {
	Amount           float64             `json:"amount" validate:"gt=0,lte=1000000,money"`
	Installments     int                 `json:"installments" validate:"min=1,max=12"`
	OrderID          string              `json:"orderId" validate:"min=1,max=100,order_id"`
	Description      *string             `json:"description,omitempty" validate:"omitnil,max=500"`
	PaymentType      *consts.PaymentType `json:"paymentType,omitempty" validate:"omitnil,oneof=credit debit pix"`
	CustomerName     *string             `json:"customerName,omitempty" validate:"omitnil,min=3,max=100,person_name"`
	CustomerDocument *string             `json:"customerDocument,omitempty" validate:"omitnil,document_digits,tax_id"`
	CustomerEmail    *string             `json:"customerEmail,omitempty" validate:"omitnil,max=255,email"`
	CustomerPhone    *string             `json:"customerPhone,omitempty" validate:"omitnil,phone_digits"`
	Metadata         map[string]any      `json:"metadata,omitempty"`
}

// Values returns the request as a raw record suitable for re-validation.
// A zero Installments is left out so the default applies.
func (r *PaymentRequest) Values() map[string]any {
	if r == nil {
		return nil
	}
	v := map[string]any{
		"amount":  r.Amount,
		"orderId": r.OrderID,
	}
	if r.Installments != 0 {
		v["installments"] = r.Installments
	}
	putString(v, "description", r.Description)
	if r.PaymentType != nil {
		v["paymentType"] = string(*r.PaymentType)
	}
	putString(v, "customerName", r.CustomerName)
	putString(v, "customerDocument", r.CustomerDocument)
	putString(v, "customerEmail", r.CustomerEmail)
	putString(v, "customerPhone", r.CustomerPhone)
	if r.Metadata != nil {
		v["metadata"] = r.Metadata
	}
	return v
}

// AmountCents converts Amount to integer cents, rounding half away from zero.
func (r *PaymentRequest) AmountCents() int64 {
	return decimal.NewFromFloat(r.Amount).Shift(2).Round(0).IntPart()
}

func putString(v map[string]any, key string, s *string) {
	if s != nil {
		v[key] = *s
	}
}

// InitializeResult is returned once the processor accepted the config.
type InitializeResult struct {
	Status      string             `json:"status"`
	Environment consts.Environment `json:"environment"`
	Initialized bool               `json:"initialized"`
}

// Version reports the wrapped SDK and wrapper versions.
type Version struct {
	SDK     string `json:"sdk"`
	Wrapper string `json:"wrapper"`
}

// PaymentResult is the outcome of an approved charge.
type PaymentResult struct {
	Status            string  `json:"status"`
	TransactionID     string  `json:"transactionId"`
	AuthorizationCode string  `json:"authorizationCode"`
	Amount            float64 `json:"amount"`
	Message           string  `json:"message"`
	OrderID           string  `json:"orderId"`
	Installments      int     `json:"installments"`
	PaymentMethod     string  `json:"paymentMethod,omitempty"`
	CardBrand         string  `json:"cardBrand,omitempty"`
	LastFourDigits    string  `json:"lastFourDigits,omitempty"`
}

type CancelResult struct {
	Status        string `json:"status"`
	TransactionID string `json:"transactionId"`
}

type TransactionStatus struct {
	TransactionID string              `json:"transactionId"`
	Status        consts.ChargeStatus `json:"status,omitempty"`
	Message       string              `json:"message,omitempty"`
}

// PaymentMethod is a product the terminal can charge with.
type PaymentMethod struct {
	Type            consts.PaymentType `json:"type"`
	Name            string             `json:"name"`
	MaxInstallments int                `json:"maxInstallments"`
}

// DefaultPaymentMethods lists the card products every terminal supports.
func DefaultPaymentMethods() []PaymentMethod {
	return []PaymentMethod{
		{Type: consts.PaymentTypeCredit, Name: "Cartão de Crédito", MaxInstallments: consts.MaxInstallments},
		{Type: consts.PaymentTypeDebit, Name: "Cartão de Débito", MaxInstallments: 1},
	}
}

// Event is delivered to subscribers while a payment runs. Only the fields
// relevant to Name are set.
type Event struct {
	Name          string         `json:"-"`
	OrderID       string         `json:"orderId,omitempty"`
	Amount        float64        `json:"amount,omitempty"`
	TransactionID string         `json:"transactionId,omitempty"`
	Code          string         `json:"code,omitempty"`
	Message       string         `json:"message,omitempty"`
	Reason        string         `json:"reason,omitempty"`
	Result        *PaymentResult `json:"result,omitempty"`
}
