package consts

// Event names emitted by the client while a payment runs.
const (
	EventPaymentStarted    = "onPaymentStarted"
	EventPaymentProcessing = "onPaymentProcessing"
	EventPaymentSuccess    = "onPaymentSuccess"
	EventPaymentError      = "onPaymentError"
	EventPaymentCancelled  = "onPaymentCancelled"
)

// Events lists every event name a subscription can target.
func Events() []string {
	return []string{
		EventPaymentStarted,
		EventPaymentProcessing,
		EventPaymentSuccess,
		EventPaymentError,
		EventPaymentCancelled,
	}
}

// ChargeStatus is the status of a charge as reported by the gateway.
type ChargeStatus string

const (
	ChargeStatusAuthorized    ChargeStatus = "authorized"
	ChargeStatusPreAuthorized ChargeStatus = "pre_authorized"
	ChargeStatusCanceled      ChargeStatus = "canceled"
	ChargeStatusUnknown       ChargeStatus = "unknown"
)

// Result statuses returned to callers.
const (
	StatusSuccess   = "success"
	StatusCancelled = "cancelled"
)
