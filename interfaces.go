package go_aditum

import (
	"context"

	"github.com/stremovskyy/go-aditum/log"
	"github.com/stremovskyy/go-aditum/payment"
)

// Aditum is the bridge surface exposed to the host application.
type Aditum interface {
	Initialize(ctx context.Context, cfg payment.SdkConfig) (*payment.InitializeResult, error)
	IsInitialized() bool
	Reset()
	Version() payment.Version

	ProcessPayment(ctx context.Context, req *payment.PaymentRequest, runOpts ...RunOption) (*payment.PaymentResult, error)
	CancelTransaction(ctx context.Context, transactionID string, runOpts ...RunOption) (*payment.CancelResult, error)
	TransactionStatus(ctx context.Context, transactionID string) (*payment.TransactionStatus, error)
	AvailablePaymentMethods(ctx context.Context) ([]payment.PaymentMethod, error)

	Subscribe(event string, handler EventHandler) (*Subscription, error)
	SetLogLevel(level log.Level)
}

// Processor talks to the payment terminal or gateway. It only ever receives
// normalized, validated input.
//
// ProcessPayment reports a user cancellation with an error that matches
// ErrCancelled. Any *ProcessorError it returns is passed to the caller as is;
// other errors are wrapped with the code of the failing operation.
type Processor interface {
	Initialize(ctx context.Context, cfg *payment.SdkConfig) error
	ProcessPayment(ctx context.Context, req *payment.PaymentRequest) (*payment.PaymentResult, error)
	CancelTransaction(ctx context.Context, transactionID string) (*payment.CancelResult, error)
	TransactionStatus(ctx context.Context, transactionID string) (*payment.TransactionStatus, error)
}

// PaymentMethodLister is implemented by processors that can report the
// products enabled for the merchant.
type PaymentMethodLister interface {
	PaymentMethods(ctx context.Context) ([]payment.PaymentMethod, error)
}

var _ Aditum = (*Client)(nil)
