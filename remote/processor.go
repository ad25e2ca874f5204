// Package remote implements the payment processor over the Aditum HTTPS gateway.
package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"github.com/shopspring/decimal"

	aditum "github.com/stremovskyy/go-aditum"
	"github.com/stremovskyy/go-aditum/consts"
	"github.com/stremovskyy/go-aditum/internal/httpclient"
	"github.com/stremovskyy/go-aditum/internal/utils"
	"github.com/stremovskyy/go-aditum/payment"
)

// Processor sends normalized requests to the gateway. It must be initialized
// before any other call.
type Processor struct {
	opts options
	http *httpclient.Client

	mu  sync.RWMutex
	cfg *payment.SdkConfig
}

func New(opts ...Option) (*Processor, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&o); err != nil {
			return nil, err
		}
	}

	p := &Processor{opts: o}
	p.http = httpclient.New(o.httpClient, httpclient.BearerToken(p.apiKey), o.logger, o.retryAttempts, o.retryWait, nil, o.recorder, o.logBodies)
	return p, nil
}

func (p *Processor) apiKey() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.cfg == nil {
		return ""
	}
	return p.cfg.APIKey
}

func (p *Processor) config() (*payment.SdkConfig, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.cfg == nil {
		return nil, aditum.ErrNotInitialized
	}
	return p.cfg, nil
}

// BaseURL returns the gateway URL for env, or the WithBaseURL override.
func (p *Processor) BaseURL(env consts.Environment) string {
	if p.opts.baseURL != "" {
		return p.opts.baseURL
	}
	if env.IsProduction() {
		return consts.ProductionBaseURL
	}
	return consts.SandboxBaseURL
}

func (p *Processor) endpoint(cfg *payment.SdkConfig, format string, args ...any) (string, error) {
	rel := format
	if len(args) > 0 {
		escaped := make([]any, len(args))
		for i, a := range args {
			escaped[i] = url.PathEscape(fmt.Sprint(a))
		}
		rel = fmt.Sprintf(format, escaped...)
	}
	return joinURL(p.BaseURL(cfg.Environment), rel)
}

// Initialize checks the api key against the gateway and keeps cfg for later calls.
func (p *Processor) Initialize(ctx context.Context, cfg *payment.SdkConfig) error {
	if cfg == nil {
		return errors.New("config is nil")
	}

	p.mu.Lock()
	p.cfg = cfg
	p.mu.Unlock()

	full, err := p.endpoint(cfg, consts.InitializePath)
	if err == nil {
		_, _, err = p.http.DoJSON(ctx, http.MethodGet, full, nil, nil)
	}
	if err != nil {
		p.mu.Lock()
		p.cfg = nil
		p.mu.Unlock()
		return wrapAPIError(err, aditum.CodeInitError)
	}
	return nil
}

func (p *Processor) ProcessPayment(ctx context.Context, req *payment.PaymentRequest) (*payment.PaymentResult, error) {
	cfg, err := p.config()
	if err != nil {
		return nil, err
	}
	full, err := p.endpoint(cfg, consts.ChargeAuthorizePath)
	if err != nil {
		return nil, err
	}

	// A retried authorization could charge the card twice.
	var out chargeResponse
	if _, _, err := p.http.DoJSONOnce(ctx, http.MethodPost, full, newChargeRequest(req), &out); err != nil {
		return nil, wrapAPIError(err, aditum.CodeProcessError)
	}

	switch out.Charge.ChargeStatus {
	case consts.ChargeStatusAuthorized, consts.ChargeStatusPreAuthorized:
		return newPaymentResult(req, &out), nil
	case consts.ChargeStatusCanceled:
		return nil, aditum.ErrCancelled
	default:
		msg := out.Message
		if msg == "" {
			msg = fmt.Sprintf("charge %s", statusOrUnknown(out.Charge.ChargeStatus))
		}
		return nil, &aditum.ProcessorError{Code: aditum.CodeProcessError, Message: msg}
	}
}

func (p *Processor) CancelTransaction(ctx context.Context, transactionID string) (*payment.CancelResult, error) {
	cfg, err := p.config()
	if err != nil {
		return nil, err
	}
	full, err := p.endpoint(cfg, consts.ChargeCancelPath, transactionID)
	if err != nil {
		return nil, err
	}

	var out chargeResponse
	if _, _, err := p.http.DoJSONOnce(ctx, http.MethodPut, full, nil, &out); err != nil {
		return nil, wrapAPIError(err, aditum.CodeCancelError)
	}
	if out.Charge.ChargeStatus != "" && out.Charge.ChargeStatus != consts.ChargeStatusCanceled {
		return nil, &aditum.ProcessorError{
			Code:    aditum.CodeCancelError,
			Message: fmt.Sprintf("charge is %s", out.Charge.ChargeStatus),
		}
	}
	id := out.Charge.ID
	if id == "" {
		id = transactionID
	}
	return &payment.CancelResult{Status: consts.StatusCancelled, TransactionID: id}, nil
}

func (p *Processor) TransactionStatus(ctx context.Context, transactionID string) (*payment.TransactionStatus, error) {
	cfg, err := p.config()
	if err != nil {
		return nil, err
	}
	full, err := p.endpoint(cfg, consts.ChargeStatusPath, transactionID)
	if err != nil {
		return nil, err
	}

	var out chargeResponse
	if _, _, err := p.http.DoJSON(ctx, http.MethodGet, full, nil, &out); err != nil {
		return nil, wrapAPIError(err, aditum.CodeStatusError)
	}
	id := out.Charge.ID
	if id == "" {
		id = transactionID
	}
	return &payment.TransactionStatus{
		TransactionID: id,
		Status:        statusOrUnknown(out.Charge.ChargeStatus),
		Message:       out.Message,
	}, nil
}

// PaymentMethods lists the products enabled for the merchant.
func (p *Processor) PaymentMethods(ctx context.Context) ([]payment.PaymentMethod, error) {
	cfg, err := p.config()
	if err != nil {
		return nil, err
	}
	full, err := p.endpoint(cfg, consts.AvailableMethodsPath)
	if err != nil {
		return nil, err
	}

	var out paymentMethodsResponse
	if _, _, err := p.http.DoJSON(ctx, http.MethodGet, full, nil, &out); err != nil {
		return nil, wrapAPIError(err, aditum.CodeProcessError)
	}
	methods := make([]payment.PaymentMethod, 0, len(out.PaymentMethods))
	for _, m := range out.PaymentMethods {
		methods = append(methods, payment.PaymentMethod{Type: m.Type, Name: m.Name, MaxInstallments: m.MaxInstallments})
	}
	return methods, nil
}

func newChargeRequest(req *payment.PaymentRequest) chargeRequest {
	c := charge{
		MerchantChargeID: req.OrderID,
		Amount:           req.AmountCents(),
		InstallmentCount: req.Installments,
		PaymentType:      string(utils.Deref(req.PaymentType)),
		Description:      utils.Deref(req.Description),
		Metadata:         req.Metadata,
	}
	cust := customer{
		Name:     utils.Deref(req.CustomerName),
		Document: utils.Deref(req.CustomerDocument),
		Email:    utils.Deref(req.CustomerEmail),
		Phone:    utils.Deref(req.CustomerPhone),
	}
	if cust != (customer{}) {
		c.Customer = &cust
	}
	return chargeRequest{Charge: c}
}

func newPaymentResult(req *payment.PaymentRequest, resp *chargeResponse) *payment.PaymentResult {
	res := &payment.PaymentResult{
		Status:        consts.StatusSuccess,
		TransactionID: resp.Charge.ID,
		Amount:        req.Amount,
		Message:       resp.Message,
		OrderID:       req.OrderID,
		Installments:  req.Installments,
		PaymentMethod: resp.Charge.PaymentType,
	}
	if resp.Charge.Amount > 0 {
		res.Amount = decimal.New(resp.Charge.Amount, -2).InexactFloat64()
	}
	if len(resp.Charge.Transactions) > 0 {
		tx := resp.Charge.Transactions[0]
		res.AuthorizationCode = tx.AuthorizationCode
		if tx.Card != nil {
			res.CardBrand = tx.Card.Brand
			res.LastFourDigits = tx.Card.LastFourDigits
		}
	}
	return res
}

func statusOrUnknown(s consts.ChargeStatus) consts.ChargeStatus {
	if s == "" {
		return consts.ChargeStatusUnknown
	}
	return s
}

// joinURL appends the already escaped path rel to base.
func joinURL(base string, rel string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid base url %q: %w", base, err)
	}
	return u.JoinPath(rel).String(), nil
}

var (
	_ aditum.Processor           = (*Processor)(nil)
	_ aditum.PaymentMethodLister = (*Processor)(nil)
)
