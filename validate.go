package go_aditum

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/stremovskyy/go-aditum/consts"
	"github.com/stremovskyy/go-aditum/document"
	"github.com/stremovskyy/go-aditum/internal/jsonutil"
	"github.com/stremovskyy/go-aditum/payment"
	"github.com/stremovskyy/go-aditum/schema"
)

var sdkConfigSchema = schema.New(
	schema.String("apiKey").Required().Trim(),
	schema.String("environment").Trim().Lower().Default(string(consts.EnvironmentSandbox)),
	schema.Bool("enableLogs").Default(false),
	schema.Integer("timeout").Default(consts.DefaultTimeoutSeconds),
)

var paymentRequestSchema = schema.New(
	schema.Number("amount").Required(),
	schema.Integer("installments").Default(consts.DefaultInstallments),
	schema.String("orderId").Required().Trim(),
	schema.String("description").Trim(),
	schema.String("paymentType").Trim().Lower(),
	schema.String("customerName").Trim(),
	schema.String("customerDocument").DigitsOnly(),
	schema.String("customerEmail").Trim().Lower(),
	schema.String("customerPhone").DigitsOnly(),
	schema.Map("metadata"),
)

// ValidateOption tunes a single validation call.
type ValidateOption func(*validateOptions)

type validateOptions struct {
	strictDocuments bool
}

// StrictDocuments also checksum-verifies 14-digit company documents (CNPJ).
// By default only 11-digit documents are checksum-verified.
func StrictDocuments() ValidateOption {
	return func(o *validateOptions) {
		o.strictDocuments = true
	}
}

func collectValidateOptions(opts []ValidateOption) validateOptions {
	var o validateOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// ValidateSdkConfig normalizes and validates a raw SDK configuration.
// It returns either a fully normalized config or a *ValidationError listing every failing field.
func ValidateSdkConfig(raw map[string]any) (*payment.SdkConfig, error) {
	var cfg payment.SdkConfig
	if err := newValidationError(sdkConfigSchema.Decode(raw, &cfg)); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ValidatePaymentRequest normalizes and validates a raw payment request.
// It returns either a fully normalized request or a *ValidationError listing every failing field.
func ValidatePaymentRequest(raw map[string]any, opts ...ValidateOption) (*payment.PaymentRequest, error) {
	return validatePaymentRequest(raw, nil, collectValidateOptions(opts))
}

func validatePaymentRequest(raw map[string]any, extra schema.Issues, o validateOptions) (*payment.PaymentRequest, error) {
	if o.strictDocuments {
		if is := companyDocumentIssue(raw); is != nil {
			extra = append(extra, *is)
		}
	}

	var req payment.PaymentRequest
	if err := newValidationError(paymentRequestSchema.Decode(raw, &req, extra...)); err != nil {
		return nil, err
	}
	return &req, nil
}

func companyDocumentIssue(raw map[string]any) *schema.Issue {
	s, ok := raw["customerDocument"].(string)
	if !ok {
		return nil
	}
	d := document.Digits(s)
	if len(d) != document.CompanyIDLength || document.IsValidCNPJ(d) {
		return nil
	}
	return &schema.Issue{Path: "customerDocument", Code: schema.CodeInvalidChecksum, Message: "has an invalid check digit"}
}

// ParseSdkConfig decodes a JSON object and validates it with ValidateSdkConfig.
func ParseSdkConfig(data []byte) (*payment.SdkConfig, error) {
	raw, err := decodeObject(data)
	if err != nil {
		return nil, err
	}
	return ValidateSdkConfig(raw)
}

// ParsePaymentRequest decodes a JSON object and validates it with ValidatePaymentRequest.
// Number literals are kept exact, and duplicate keys inside metadata are rejected.
func ParsePaymentRequest(data []byte, opts ...ValidateOption) (*payment.PaymentRequest, error) {
	raw, err := decodeObject(data)
	if err != nil {
		return nil, err
	}

	var extra schema.Issues
	if m, ok := raw["metadata"].(map[string]any); ok && len(m) > 0 {
		var top map[string]json.RawMessage
		if err := json.Unmarshal(data, &top); err == nil {
			dups, err := jsonutil.DuplicateKeys(top["metadata"])
			if err == nil && len(dups) > 0 {
				extra = append(extra, schema.Issue{
					Path:    "metadata",
					Code:    schema.CodeInvalidFormat,
					Message: fmt.Sprintf("duplicate keys: %q", dups),
				})
			}
		}
	}

	return validatePaymentRequest(raw, extra, collectValidateOptions(opts))
}

func decodeObject(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil || raw == nil {
		msg := "must be a JSON object"
		if err != nil {
			msg = fmt.Sprintf("must be a JSON object: %v", err)
		}
		return nil, &ValidationError{Fields: []FieldError{{Code: schema.CodeInvalidFormat, Message: msg}}}
	}
	return raw, nil
}
