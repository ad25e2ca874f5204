// Package metrics counts bridge outcomes and times processor calls.
package metrics

import "time"

// Counter names.
const (
	ValidationFailed = "validation_failed"
	PaymentSucceeded = "payment_succeeded"
	PaymentFailed    = "payment_failed"
	PaymentCancelled = "payment_cancelled"
	Initialized      = "initialized"
	InitFailed       = "init_failed"
)

// LabelEnvironment is the only label the bridge sets.
const LabelEnvironment = "environment"

type Recorder interface {
	IncCounter(name string, labels map[string]string)
	ObserveLatency(name string, duration time.Duration, labels map[string]string)
}
