package go_aditum

import (
	"errors"

	"github.com/stremovskyy/go-aditum/log"
	"github.com/stremovskyy/go-aditum/metrics"
)

type Option func(*config) error

type config struct {
	processor       Processor
	logger          log.Logger
	metrics         metrics.Recorder
	strictDocuments bool
}

func defaultConfig() config {
	return config{
		logger:  log.NewDefault(),
		metrics: metrics.NoopRecorder{},
	}
}

// WithProcessor sets the backend that executes payments. Required.
func WithProcessor(p Processor) Option {
	return func(cfg *config) error {
		if p == nil {
			return errors.New("processor is nil")
		}
		cfg.processor = p
		return nil
	}
}

func WithLogger(logger log.Logger) Option {
	return func(cfg *config) error {
		if logger == nil {
			cfg.logger = log.NopLogger{}
			return nil
		}
		cfg.logger = logger
		return nil
	}
}

// WithMetrics attaches a metrics recorder, e.g. metrics.NewPrometheusRecorder.
func WithMetrics(r metrics.Recorder) Option {
	return func(cfg *config) error {
		if r == nil {
			cfg.metrics = metrics.NoopRecorder{}
			return nil
		}
		cfg.metrics = r
		return nil
	}
}

// WithStrictDocuments makes ProcessPayment checksum-verify 14-digit company
// documents as well. See StrictDocuments.
func WithStrictDocuments() Option {
	return func(cfg *config) error {
		cfg.strictDocuments = true
		return nil
	}
}
