package go_aditum

import (
	"encoding/json"
	"fmt"

	"github.com/stremovskyy/go-aditum/log"
)

// RunOption controls behavior of a single SDK call.
type RunOption func(*runOptions)

// DryRunHandler receives the operation name and the normalized payload of a
// call that was not sent to the processor.
type DryRunHandler func(operation string, payload any)

type runOptions struct {
	dryRun       bool
	dryRunHandle DryRunHandler
}

var dryRunLogger log.Logger = log.NewDefault()

// DryRun validates the input and emits the start event, then skips the processor.
//
// Optional handler lets you inspect the normalized payload.
func DryRun(handler ...DryRunHandler) RunOption {
	return func(o *runOptions) {
		o.dryRun = true
		if len(handler) > 0 && handler[0] != nil {
			o.dryRunHandle = handler[0]
			return
		}
		o.dryRunHandle = defaultDryRunHandler
	}
}

func collectRunOptions(opts []RunOption) *runOptions {
	if len(opts) == 0 {
		return nil
	}

	r := &runOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (o *runOptions) isDryRun() bool {
	return o != nil && o.dryRun
}

func shouldDryRun(runOpts []RunOption, operation string, payload any) bool {
	opts := collectRunOptions(runOpts)
	if !opts.isDryRun() {
		return false
	}
	if opts.dryRunHandle != nil {
		opts.dryRunHandle(operation, payload)
	}
	return true
}

func defaultDryRunHandler(operation string, payload any) {
	dryRunLogger.Infof("Dry run: skipping %s", operation)
	dryRunLogger.Infof("Dry run payload:\n%s", marshalIndent(payload))
}

func marshalIndent(v any) string {
	if v == nil {
		return "<nil>"
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("unable to marshal %T: %v", v, err)
	}
	return string(out)
}
