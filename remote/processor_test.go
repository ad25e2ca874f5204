package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	aditum "github.com/stremovskyy/go-aditum"
	"github.com/stremovskyy/go-aditum/consts"
	"github.com/stremovskyy/go-aditum/internal/utils"
	"github.com/stremovskyy/go-aditum/payment"
)

type gateway struct {
	t      *testing.T
	mu     sync.Mutex
	last   map[string]any
	paths  []string
	charge string

	// failStatus, when set, answers charge and cancel requests with failBody.
	failStatus int
	failBody   string
}

func (g *gateway) fail(status int, body string) {
	g.mu.Lock()
	g.failStatus, g.failBody = status, body
	g.mu.Unlock()
}

func (g *gateway) count(methodAndPath string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := 0
	for _, p := range g.paths {
		if p == methodAndPath {
			n++
		}
	}
	return n
}

func (g *gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.mu.Lock()
	g.paths = append(g.paths, r.Method+" "+r.URL.EscapedPath())
	failStatus, failBody := g.failStatus, g.failBody
	g.mu.Unlock()

	if r.Header.Get("Authorization") != "Bearer key-1" {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"code":"UNAUTHORIZED","message":"invalid api key"}`))
		return
	}

	if failStatus != 0 && (r.Method == http.MethodPost || r.Method == http.MethodPut) {
		w.WriteHeader(failStatus)
		_, _ = w.Write([]byte(failBody))
		return
	}

	switch {
	case r.URL.Path == consts.InitializePath:
		_, _ = w.Write([]byte(`{}`))
	case r.URL.Path == consts.ChargeAuthorizePath:
		var body map[string]any
		assert.NoError(g.t, json.NewDecoder(r.Body).Decode(&body))
		g.mu.Lock()
		g.last = body
		g.mu.Unlock()
		_, _ = w.Write([]byte(`{"charge":{"id":"tx-1","chargeStatus":"` + g.charge + `","amount":1050,"paymentType":"credit",` +
			`"transactions":[{"authorizationCode":"A1B2","card":{"brand":"visa","lastFourDigits":"4242"}}]},"message":"ok"}`))
	case r.URL.Path == consts.AvailableMethodsPath:
		_, _ = w.Write([]byte(`{"paymentMethods":[{"type":"pix","name":"Pix","maxInstallments":1}]}`))
	case r.Method == http.MethodPut:
		_, _ = w.Write([]byte(`{"charge":{"chargeStatus":"canceled"}}`))
	default:
		_, _ = w.Write([]byte(`{"charge":{"id":"tx-1","chargeStatus":"authorized"}}`))
	}
}

func newTestProcessor(t *testing.T, charge string) (*Processor, *gateway) {
	t.Helper()
	g := &gateway{t: t, charge: charge}
	ts := httptest.NewServer(g)
	t.Cleanup(ts.Close)

	p, err := New(WithBaseURL(ts.URL), WithHTTPClient(ts.Client()), WithRetry(3, time.Millisecond))
	require.NoError(t, err)
	return p, g
}

func sandboxConfig(key string) *payment.SdkConfig {
	return &payment.SdkConfig{APIKey: key, Environment: consts.EnvironmentSandbox, Timeout: 30}
}

func TestBaseURL(t *testing.T) {
	p, err := New()
	require.NoError(t, err)
	assert.Equal(t, consts.SandboxBaseURL, p.BaseURL(consts.EnvironmentSandbox))
	assert.Equal(t, consts.ProductionBaseURL, p.BaseURL(consts.EnvironmentProduction))

	p, err = New(WithBaseURL("http://localhost:1"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:1", p.BaseURL(consts.EnvironmentProduction))
}

func TestInitializeRejectsBadKey(t *testing.T) {
	p, _ := newTestProcessor(t, "authorized")

	err := p.Initialize(context.Background(), sandboxConfig("wrong"))
	var ge *GatewayError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, http.StatusUnauthorized, ge.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", ge.Code)
	assert.Equal(t, "invalid api key", ge.Message)

	var pe *aditum.ProcessorError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "UNAUTHORIZED", pe.Code)
	assert.Equal(t, "invalid api key", pe.Message)

	_, err = p.ProcessPayment(context.Background(), &payment.PaymentRequest{Amount: 1, Installments: 1, OrderID: "A"})
	assert.ErrorIs(t, err, aditum.ErrNotInitialized)
}

func TestProcessPaymentSendsCents(t *testing.T) {
	p, g := newTestProcessor(t, "authorized")
	require.NoError(t, p.Initialize(context.Background(), sandboxConfig("key-1")))

	res, err := p.ProcessPayment(context.Background(), &payment.PaymentRequest{
		Amount:        10.5,
		Installments:  3,
		OrderID:       "ORDER-1",
		PaymentType:   utils.Ref(consts.PaymentTypeCredit),
		CustomerName:  utils.Ref("Maria Silva"),
		CustomerPhone: utils.Ref("11987654321"),
		Metadata:      map[string]any{"store": "42"},
	})
	require.NoError(t, err)

	charge := g.last["charge"].(map[string]any)
	assert.Equal(t, 1050.0, charge["amount"])
	assert.Equal(t, 3.0, charge["installmentNumber"])
	assert.Equal(t, "ORDER-1", charge["merchantChargeId"])
	assert.Equal(t, "credit", charge["paymentType"])
	assert.Equal(t, map[string]any{"name": "Maria Silva", "phone": "11987654321"}, charge["customer"])
	assert.Equal(t, map[string]any{"store": "42"}, charge["metadata"])

	assert.Equal(t, &payment.PaymentResult{
		Status:            consts.StatusSuccess,
		TransactionID:     "tx-1",
		AuthorizationCode: "A1B2",
		Amount:            10.5,
		Message:           "ok",
		OrderID:           "ORDER-1",
		Installments:      3,
		PaymentMethod:     "credit",
		CardBrand:         "visa",
		LastFourDigits:    "4242",
	}, res)
}

func TestProcessPaymentCanceledAndDeclined(t *testing.T) {
	p, _ := newTestProcessor(t, "canceled")
	require.NoError(t, p.Initialize(context.Background(), sandboxConfig("key-1")))
	_, err := p.ProcessPayment(context.Background(), &payment.PaymentRequest{Amount: 1, Installments: 1, OrderID: "A"})
	assert.ErrorIs(t, err, aditum.ErrCancelled)

	p, _ = newTestProcessor(t, "not_authorized")
	require.NoError(t, p.Initialize(context.Background(), sandboxConfig("key-1")))
	_, err = p.ProcessPayment(context.Background(), &payment.PaymentRequest{Amount: 1, Installments: 1, OrderID: "A"})
	var pe *aditum.ProcessorError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, aditum.CodeProcessError, pe.Code)
	assert.Equal(t, "ok", pe.Message)
}

func TestCancelStatusAndMethods(t *testing.T) {
	p, g := newTestProcessor(t, "authorized")
	require.NoError(t, p.Initialize(context.Background(), sandboxConfig("key-1")))

	cancel, err := p.CancelTransaction(context.Background(), "tx/1")
	require.NoError(t, err)
	assert.Equal(t, &payment.CancelResult{Status: consts.StatusCancelled, TransactionID: "tx/1"}, cancel)

	status, err := p.TransactionStatus(context.Background(), "tx-1")
	require.NoError(t, err)
	assert.Equal(t, consts.ChargeStatusAuthorized, status.Status)
	assert.Equal(t, "tx-1", status.TransactionID)

	methods, err := p.PaymentMethods(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []payment.PaymentMethod{{Type: consts.PaymentTypePix, Name: "Pix", MaxInstallments: 1}}, methods)

	assert.Contains(t, g.paths, "PUT /v2/charge/cancelation/tx%2F1")
	assert.Contains(t, g.paths, "GET /v2/charge/tx-1")
}

func TestClientWithRemoteProcessor(t *testing.T) {
	p, _ := newTestProcessor(t, "authorized")
	client, err := aditum.NewClient(aditum.WithProcessor(p), aditum.WithLogger(nil))
	require.NoError(t, err)

	var events []string
	for _, name := range consts.Events() {
		_, err := client.Subscribe(name, func(ev payment.Event) { events = append(events, ev.Name) })
		require.NoError(t, err)
	}

	_, err = client.Initialize(context.Background(), payment.SdkConfig{APIKey: " key-1 "})
	require.NoError(t, err)

	res, err := client.ProcessPayment(context.Background(), &payment.PaymentRequest{Amount: 10.5, OrderID: "ORDER-1"})
	require.NoError(t, err)
	assert.Equal(t, "tx-1", res.TransactionID)
	assert.Equal(t, 1, res.Installments)
	assert.Equal(t, []string{consts.EventPaymentStarted, consts.EventPaymentProcessing, consts.EventPaymentSuccess}, events)

	_, err = client.ProcessPayment(context.Background(), &payment.PaymentRequest{Amount: 10.555, OrderID: "ORDER-2"})
	assert.True(t, aditum.IsValidationError(err))

	methods, err := client.AvailablePaymentMethods(context.Background())
	require.NoError(t, err)
	assert.Len(t, methods, 1)
}

func TestChargeAndCancelAreSentOnce(t *testing.T) {
	p, g := newTestProcessor(t, "authorized")
	require.NoError(t, p.Initialize(context.Background(), sandboxConfig("key-1")))
	g.fail(http.StatusBadGateway, "")

	_, err := p.ProcessPayment(context.Background(), &payment.PaymentRequest{Amount: 1, Installments: 1, OrderID: "A"})
	var pe *aditum.ProcessorError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, aditum.CodeProcessError, pe.Code)
	assert.Equal(t, 1, g.count("POST "+consts.ChargeAuthorizePath))

	_, err = p.CancelTransaction(context.Background(), "tx-1")
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, aditum.CodeCancelError, pe.Code)
	assert.Equal(t, 1, g.count("PUT /v2/charge/cancelation/tx-1"))
}

func TestClientReportsGatewayErrorCode(t *testing.T) {
	p, g := newTestProcessor(t, "authorized")
	g.fail(http.StatusUnprocessableEntity, `{"code":"CARD_DECLINED","message":"insufficient funds"}`)

	client, err := aditum.NewClient(aditum.WithProcessor(p), aditum.WithLogger(nil))
	require.NoError(t, err)
	var got payment.Event
	_, err = client.Subscribe(consts.EventPaymentError, func(ev payment.Event) { got = ev })
	require.NoError(t, err)

	_, err = client.Initialize(context.Background(), payment.SdkConfig{APIKey: "key-1"})
	require.NoError(t, err)

	_, err = client.ProcessPayment(context.Background(), &payment.PaymentRequest{Amount: 10, OrderID: "ORDER-1"})
	var pe *aditum.ProcessorError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "CARD_DECLINED", pe.Code)
	assert.Equal(t, "insufficient funds", pe.Message)
	assert.Equal(t, "ORDER-1", pe.OrderID)

	var ge *GatewayError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, http.StatusUnprocessableEntity, ge.StatusCode)

	assert.Equal(t, payment.Event{
		Name:    consts.EventPaymentError,
		OrderID: "ORDER-1",
		Code:    "CARD_DECLINED",
		Message: "insufficient funds",
	}, got)
}

func TestGatewayErrorMessage(t *testing.T) {
	err := wrapAPIError(errors.New("plain"), aditum.CodeProcessError)
	assert.EqualError(t, err, "plain")

	ge := &GatewayError{StatusCode: 502, Body: []byte("bad gateway")}
	assert.Equal(t, "gateway error: status=502: bad gateway", ge.Error())
}
