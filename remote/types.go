package remote

import (
	"github.com/stremovskyy/go-aditum/consts"
)

type chargeRequest struct {
	Charge charge `json:"charge"`
}

type charge struct {
	MerchantChargeID string         `json:"merchantChargeId"`
	Amount           int64          `json:"amount"`
	InstallmentCount int            `json:"installmentNumber"`
	PaymentType      string         `json:"paymentType,omitempty"`
	Description      string         `json:"description,omitempty"`
	Customer         *customer      `json:"customer,omitempty"`
	Metadata         map[string]any `json:"metadata,omitempty"`
}

type customer struct {
	Name     string `json:"name,omitempty"`
	Document string `json:"document,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

type chargeResponse struct {
	Charge  chargeResult `json:"charge"`
	Message string       `json:"message,omitempty"`
}

type chargeResult struct {
	ID           string              `json:"id"`
	ChargeStatus consts.ChargeStatus `json:"chargeStatus"`
	Amount       int64               `json:"amount"`
	PaymentType  string              `json:"paymentType,omitempty"`
	Transactions []transaction       `json:"transactions,omitempty"`
}

type transaction struct {
	AuthorizationCode string `json:"authorizationCode"`
	Card              *card  `json:"card,omitempty"`
}

type card struct {
	Brand          string `json:"brand"`
	LastFourDigits string `json:"lastFourDigits"`
}

type paymentMethodsResponse struct {
	PaymentMethods []paymentMethod `json:"paymentMethods"`
}

type paymentMethod struct {
	Type            consts.PaymentType `json:"type"`
	Name            string             `json:"name"`
	MaxInstallments int                `json:"maxInstallments"`
}

// gatewayErrorBody is the gateway's error envelope.
type gatewayErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
