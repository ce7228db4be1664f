package nlp

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
)

type Origin string

const (
	OriginLocal  Origin = "local"
	OriginRemote Origin = "remote"
)

// Trace records how a single query was answered.
type Trace struct {
	Origin Origin
	State  RemoteState
	Reason error
}

// FallbackInterpreter tries the primary source and answers from the local
// interpreter whenever the primary is not configured or fails. Nothing is
// remembered between calls: every query gets a fresh remote attempt.
type FallbackInterpreter struct {
	primary CommandSource
	local   *LocalInterpreter
	log     *logrus.Logger
}

func NewFallbackInterpreter(primary CommandSource, local *LocalInterpreter, log *logrus.Logger) *FallbackInterpreter {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &FallbackInterpreter{
		primary: primary,
		local:   local,
		log:     log,
	}
}

func (f *FallbackInterpreter) configured() bool {
	if f.primary == nil {
		return false
	}
	if c, ok := f.primary.(interface{ Configured() bool }); ok {
		return c.Configured()
	}
	return true
}

func (f *FallbackInterpreter) Interpret(ctx context.Context, query string) (Result, error) {
	result, _ := f.InterpretTraced(ctx, query)
	return result, nil
}

func (f *FallbackInterpreter) InterpretTraced(ctx context.Context, query string) (Result, Trace) {
	if !f.configured() {
		return f.local.Evaluate(query), Trace{Origin: OriginLocal, State: StateNotConfigured}
	}
	// blank input never leaves the process
	if strings.TrimSpace(query) == "" {
		return f.local.Evaluate(query), Trace{Origin: OriginLocal, State: StateActive}
	}

	result, err := f.primary.Interpret(ctx, query)
	if err == nil {
		return result, Trace{Origin: OriginRemote, State: StateActive}
	}

	f.log.WithFields(logrus.Fields{
		"reason": FailureReason(err),
		"error":  err.Error(),
	}).Warn("Remote command service failed, answering locally")

	return f.local.Evaluate(query), Trace{Origin: OriginLocal, State: StateDegraded, Reason: err}
}
