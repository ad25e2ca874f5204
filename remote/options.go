package remote

import (
	"errors"
	"net/http"
	"time"

	"github.com/stremovskyy/recorder"

	"github.com/stremovskyy/go-aditum/log"
)

type Option func(*options) error

type options struct {
	httpClient    *http.Client
	baseURL       string
	logger        log.Logger
	logBodies     bool
	retryAttempts int
	retryWait     time.Duration
	recorder      recorder.Recorder
}

func defaultOptions() options {
	return options{
		httpClient:    &http.Client{Timeout: 30 * time.Second},
		logger:        log.NopLogger{},
		retryAttempts: 1,
		retryWait:     300 * time.Millisecond,
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(o *options) error {
		if client == nil {
			return errors.New("http client is nil")
		}
		o.httpClient = client
		return nil
	}
}

// WithBaseURL overrides the environment's gateway URL.
func WithBaseURL(baseURL string) Option {
	return func(o *options) error {
		if baseURL == "" {
			return errors.New("base url is empty")
		}
		o.baseURL = baseURL
		return nil
	}
}

func WithLogger(logger log.Logger) Option {
	return func(o *options) error {
		if logger == nil {
			logger = log.NopLogger{}
		}
		o.logger = logger
		return nil
	}
}

// WithLogHTTPBodies enables request/response body logging.
//
// Disabled by default because bodies carry customer data.
func WithLogHTTPBodies(enabled bool) Option {
	return func(o *options) error {
		o.logBodies = enabled
		return nil
	}
}

func WithRecorder(r recorder.Recorder) Option {
	return func(o *options) error {
		o.recorder = r
		return nil
	}
}

func WithRetry(attempts int, wait time.Duration) Option {
	return func(o *options) error {
		if attempts <= 0 {
			return errors.New("retry attempts must be > 0")
		}
		if wait <= 0 {
			return errors.New("retry wait must be > 0")
		}
		o.retryAttempts = attempts
		o.retryWait = wait
		return nil
	}
}
