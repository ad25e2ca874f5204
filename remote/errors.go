package remote

import (
	"encoding/json"
	"errors"
	"fmt"

	aditum "github.com/stremovskyy/go-aditum"
	"github.com/stremovskyy/go-aditum/internal/httpclient"
)

// GatewayError is a non-2xx answer from the Aditum gateway.
type GatewayError struct {
	StatusCode int
	Code       string
	Message    string
	Body       []byte
}

func (e *GatewayError) Error() string {
	if e == nil {
		return "gateway error"
	}
	switch {
	case e.Code != "" && e.Message != "":
		return fmt.Sprintf("gateway error: status=%d code=%s: %s", e.StatusCode, e.Code, e.Message)
	case e.Message != "":
		return fmt.Sprintf("gateway error: status=%d: %s", e.StatusCode, e.Message)
	}
	b := e.Body
	if len(b) > 512 {
		b = b[:512]
	}
	return fmt.Sprintf("gateway error: status=%d: %s", e.StatusCode, string(b))
}

// wrapAPIError turns a non-2xx answer into a *aditum.ProcessorError carrying
// the gateway's own error code, or fallbackCode when the body has none. The
// *GatewayError stays reachable through errors.As.
func wrapAPIError(err error, fallbackCode string) error {
	if err == nil {
		return nil
	}
	var hs *httpclient.HTTPStatusError
	if !errors.As(err, &hs) {
		return err
	}
	ge := &GatewayError{StatusCode: hs.StatusCode, Body: hs.Body}
	var body gatewayErrorBody
	if json.Unmarshal(hs.Body, &body) == nil {
		ge.Code = body.Code
		ge.Message = body.Message
	}

	pe := &aditum.ProcessorError{Code: ge.Code, Message: ge.Message, Err: ge}
	if pe.Code == "" {
		pe.Code = fallbackCode
	}
	if pe.Message == "" {
		pe.Message = ge.Error()
	}
	return pe
}
