package go_aditum

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/stremovskyy/go-aditum/consts"
	"github.com/stremovskyy/go-aditum/formatter"
	"github.com/stremovskyy/go-aditum/log"
	"github.com/stremovskyy/go-aditum/metrics"
	"github.com/stremovskyy/go-aditum/payment"
	"github.com/stremovskyy/go-aditum/schema"
)

// Reason attached to onPaymentCancelled events.
const cancelReason = "User cancelled the payment"

// Client validates every call before it reaches the Processor and reports
// payment progress to subscribers.
//
// A Client is safe for concurrent use.
type Client struct {
	cfg    config
	events *eventBus

	mu          sync.RWMutex
	initialized bool
	sdkConfig   *payment.SdkConfig

	// Level to restore once enableLogs is turned off again.
	debugRaised      bool
	levelBeforeDebug log.Level
}

func NewClient(opts ...Option) (Aditum, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if cfg.processor == nil {
		return nil, errors.New("processor is not configured; use WithProcessor(...)")
	}

	return &Client{
		cfg:    cfg,
		events: newEventBus(cfg.logger),
	}, nil
}

// SetLogLevel updates SDK log level when current logger supports it.
// It overrides any level raised by enableLogs.
func (c *Client) SetLogLevel(level log.Level) {
	if c == nil || c.cfg.logger == nil {
		return
	}
	if l, ok := c.cfg.logger.(log.LevelSetter); ok {
		c.mu.Lock()
		c.debugRaised = false
		c.mu.Unlock()
		l.SetLevel(level)
	}
}

// applyEnableLogs raises the logger to debug while enableLogs is set and puts
// the previous level back once a later config clears it.
func (c *Client) applyEnableLogs(enabled bool) {
	setter, ok := c.cfg.logger.(log.LevelSetter)
	if !ok {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case enabled && !c.debugRaised:
		c.levelBeforeDebug = log.LevelInfo
		if g, ok := c.cfg.logger.(log.LevelGetter); ok {
			c.levelBeforeDebug = g.Level()
		}
		c.debugRaised = true
		setter.SetLevel(log.LevelDebug)
	case !enabled && c.debugRaised:
		c.debugRaised = false
		setter.SetLevel(c.levelBeforeDebug)
	}
}

// Subscribe registers handler for event. Each call returns its own handle.
func (c *Client) Subscribe(event string, handler EventHandler) (*Subscription, error) {
	return c.events.subscribe(event, handler)
}

// Initialize validates cfg and hands it to the processor. On any failure the
// client is left uninitialized.
func (c *Client) Initialize(ctx context.Context, cfg payment.SdkConfig) (*payment.InitializeResult, error) {
	c.setInitialized(nil)

	normalized, err := ValidateSdkConfig(cfg.Values())
	if err != nil {
		c.cfg.metrics.IncCounter(metrics.ValidationFailed, nil)
		c.cfg.logger.Warnf("invalid SDK config: %v", err)
		return nil, err
	}

	c.applyEnableLogs(normalized.EnableLogs)
	labels := envLabels(normalized.Environment)
	c.cfg.logger.Debugf("initializing SDK: environment=%s timeout=%ds", normalized.Environment, normalized.Timeout)

	callCtx, cancel := withTimeout(ctx, normalized.Timeout)
	defer cancel()

	start := time.Now()
	err = c.cfg.processor.Initialize(callCtx, normalized)
	c.cfg.metrics.ObserveLatency("initialize", time.Since(start), labels)
	if err != nil {
		c.cfg.metrics.IncCounter(metrics.InitFailed, labels)
		c.cfg.logger.Errorf("initialize failed: %v", err)
		return nil, asProcessorError(err, CodeInitError)
	}

	c.setInitialized(normalized)
	c.cfg.metrics.IncCounter(metrics.Initialized, labels)
	c.cfg.logger.Infof("SDK initialized: environment=%s", normalized.Environment)

	return &payment.InitializeResult{
		Status:      consts.StatusSuccess,
		Environment: normalized.Environment,
		Initialized: true,
	}, nil
}

func (c *Client) IsInitialized() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.initialized
}

// Reset forgets the active configuration. Subscriptions are kept.
func (c *Client) Reset() {
	c.setInitialized(nil)
	c.cfg.logger.Debugf("SDK reset")
}

func (c *Client) Version() payment.Version {
	return payment.Version{SDK: consts.SDKVersion, Wrapper: consts.WrapperVersion}
}

func (c *Client) setInitialized(cfg *payment.SdkConfig) {
	c.mu.Lock()
	c.initialized = cfg != nil
	c.sdkConfig = cfg
	c.mu.Unlock()
}

func (c *Client) activeConfig() (*payment.SdkConfig, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sdkConfig, c.initialized
}

func (c *Client) validateOptions() []ValidateOption {
	if c.cfg.strictDocuments {
		return []ValidateOption{StrictDocuments()}
	}
	return nil
}

// ProcessPayment validates req, emits onPaymentStarted and onPaymentProcessing,
// and runs the charge. Exactly one of onPaymentSuccess, onPaymentCancelled or
// onPaymentError follows once the processor answers.
func (c *Client) ProcessPayment(ctx context.Context, req *payment.PaymentRequest, runOpts ...RunOption) (*payment.PaymentResult, error) {
	if req == nil {
		return nil, &ValidationError{Fields: []FieldError{{Field: "request", Code: schema.CodeRequired, Message: "is nil"}}}
	}
	sdkCfg, ok := c.activeConfig()
	if !ok {
		return nil, ErrNotInitialized
	}
	labels := envLabels(sdkCfg.Environment)

	normalized, err := ValidatePaymentRequest(req.Values(), c.validateOptions()...)
	if err != nil {
		c.cfg.metrics.IncCounter(metrics.ValidationFailed, labels)
		c.cfg.logger.Warnf("invalid payment request: %v", err)
		return nil, err
	}
	orderID := normalized.OrderID

	c.cfg.logger.Debugf("processing payment: order=%s amount=%s installments=%d", orderID, formatter.Currency(normalized.Amount), normalized.Installments)
	c.events.emit(payment.Event{Name: consts.EventPaymentStarted, OrderID: orderID, Amount: normalized.Amount})

	if shouldDryRun(runOpts, "processPayment", normalized) {
		return nil, nil
	}

	c.events.emit(payment.Event{Name: consts.EventPaymentProcessing, OrderID: orderID, Amount: normalized.Amount})

	callCtx, cancel := withTimeout(ctx, sdkCfg.Timeout)
	defer cancel()

	start := time.Now()
	res, err := c.cfg.processor.ProcessPayment(callCtx, normalized)
	c.cfg.metrics.ObserveLatency("process_payment", time.Since(start), labels)
	if err == nil && res == nil {
		err = errors.New("processor returned no result")
	}
	if err != nil {
		perr := asProcessorError(err, CodeProcessError)
		perr.OrderID = orderID

		if perr.Code == CodeCancelled {
			c.cfg.metrics.IncCounter(metrics.PaymentCancelled, labels)
			c.cfg.logger.Infof("payment cancelled: order=%s", orderID)
			c.events.emit(payment.Event{Name: consts.EventPaymentCancelled, OrderID: orderID, Reason: cancelReason})
			return nil, perr
		}

		c.cfg.metrics.IncCounter(metrics.PaymentFailed, labels)
		c.cfg.logger.Errorf("payment failed: order=%s code=%s err=%v", orderID, perr.Code, err)
		c.events.emit(payment.Event{Name: consts.EventPaymentError, OrderID: orderID, Code: perr.Code, Message: perr.Message})
		return nil, perr
	}

	out := *res
	if out.Status == "" {
		out.Status = consts.StatusSuccess
	}
	if out.Amount == 0 {
		out.Amount = normalized.Amount
	}
	out.OrderID = orderID
	out.Installments = normalized.Installments

	c.cfg.metrics.IncCounter(metrics.PaymentSucceeded, labels)
	c.cfg.logger.Infof("payment approved: order=%s transaction=%s", orderID, out.TransactionID)
	c.events.emit(payment.Event{
		Name:          consts.EventPaymentSuccess,
		OrderID:       orderID,
		Amount:        out.Amount,
		TransactionID: out.TransactionID,
		Result:        &out,
	})
	return &out, nil
}

// CancelTransaction cancels an approved transaction.
func (c *Client) CancelTransaction(ctx context.Context, transactionID string, runOpts ...RunOption) (*payment.CancelResult, error) {
	sdkCfg, ok := c.activeConfig()
	if !ok {
		return nil, ErrNotInitialized
	}
	id, err := requireTransactionID(transactionID)
	if err != nil {
		return nil, err
	}

	if shouldDryRun(runOpts, "cancelTransaction", id) {
		return nil, nil
	}

	callCtx, cancel := withTimeout(ctx, sdkCfg.Timeout)
	defer cancel()

	start := time.Now()
	res, err := c.cfg.processor.CancelTransaction(callCtx, id)
	c.cfg.metrics.ObserveLatency("cancel_transaction", time.Since(start), envLabels(sdkCfg.Environment))
	if err != nil {
		c.cfg.logger.Errorf("cancel failed: transaction=%s err=%v", id, err)
		return nil, asProcessorError(err, CodeCancelError)
	}

	out := payment.CancelResult{Status: consts.StatusCancelled, TransactionID: id}
	if res != nil && res.Status != "" {
		out.Status = res.Status
	}
	return &out, nil
}

// TransactionStatus asks the processor for the current state of a transaction.
func (c *Client) TransactionStatus(ctx context.Context, transactionID string) (*payment.TransactionStatus, error) {
	sdkCfg, ok := c.activeConfig()
	if !ok {
		return nil, ErrNotInitialized
	}
	id, err := requireTransactionID(transactionID)
	if err != nil {
		return nil, err
	}

	callCtx, cancel := withTimeout(ctx, sdkCfg.Timeout)
	defer cancel()

	res, err := c.cfg.processor.TransactionStatus(callCtx, id)
	if err != nil {
		return nil, asProcessorError(err, CodeStatusError)
	}
	if res == nil {
		return &payment.TransactionStatus{TransactionID: id, Status: consts.ChargeStatusUnknown}, nil
	}
	out := *res
	if out.TransactionID == "" {
		out.TransactionID = id
	}
	return &out, nil
}

// AvailablePaymentMethods lists the card products the terminal accepts. When
// the processor cannot report them the default credit and debit products are
// returned.
func (c *Client) AvailablePaymentMethods(ctx context.Context) ([]payment.PaymentMethod, error) {
	sdkCfg, ok := c.activeConfig()
	if !ok {
		return nil, ErrNotInitialized
	}

	lister, ok := c.cfg.processor.(PaymentMethodLister)
	if !ok {
		return payment.DefaultPaymentMethods(), nil
	}

	callCtx, cancel := withTimeout(ctx, sdkCfg.Timeout)
	defer cancel()

	methods, err := lister.PaymentMethods(callCtx)
	if err != nil {
		c.cfg.logger.Warnf("payment methods unavailable, using defaults: %v", err)
		return payment.DefaultPaymentMethods(), nil
	}
	if len(methods) == 0 {
		return payment.DefaultPaymentMethods(), nil
	}
	return methods, nil
}

func requireTransactionID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", &ValidationError{Fields: []FieldError{{Field: "transactionId", Code: schema.CodeRequired, Message: "is required"}}}
	}
	return id, nil
}

func withTimeout(ctx context.Context, seconds int) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if seconds <= 0 {
		seconds = consts.DefaultTimeoutSeconds
	}
	return context.WithTimeout(ctx, time.Duration(seconds)*time.Second)
}

func envLabels(env consts.Environment) map[string]string {
	return map[string]string{metrics.LabelEnvironment: string(env)}
}
