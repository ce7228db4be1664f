package nlp

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrRemoteNotConfigured = errors.New("remote command service not configured")
	ErrRemoteQuota         = errors.New("remote command service quota exceeded")
	ErrRemoteTransport     = errors.New("remote command service unavailable")
	ErrRemoteMalformed     = errors.New("remote command service returned a malformed response")
)

// Completer is a remote model that answers a query under a system
// instruction with a raw text completion.
type Completer interface {
	Complete(ctx context.Context, instruction string, query string) (string, error)
	Provider() string
}

type RemoteState string

const (
	StateNotConfigured RemoteState = "not_configured"
	StateActive        RemoteState = "active"
	StateDegraded      RemoteState = "degraded"
)

// RemoteInterpreter delegates a query to a Completer and parses the reply as
// a command-contract document. It does not check parameter identifiers.
type RemoteInterpreter struct {
	completer   Completer
	instruction string
}

// NewRemoteInterpreter accepts a nil completer; the interpreter is then
// permanently not configured.
func NewRemoteInterpreter(completer Completer, catalogue *Catalogue) *RemoteInterpreter {
	return &RemoteInterpreter{
		completer:   completer,
		instruction: BuildInstruction(catalogue),
	}
}

func (r *RemoteInterpreter) Configured() bool {
	return r != nil && r.completer != nil
}

func (r *RemoteInterpreter) Provider() string {
	if !r.Configured() {
		return "none"
	}
	return r.completer.Provider()
}

func (r *RemoteInterpreter) Interpret(ctx context.Context, query string) (Result, error) {
	if !r.Configured() {
		return Result{}, ErrRemoteNotConfigured
	}

	raw, err := r.completer.Complete(ctx, r.instruction, query)
	if err != nil {
		if errors.Is(err, ErrRemoteQuota) || errors.Is(err, ErrRemoteTransport) || errors.Is(err, ErrRemoteMalformed) {
			return Result{}, err
		}
		return Result{}, fmt.Errorf("%w: %v", ErrRemoteTransport, err)
	}

	result, err := ParseResult([]byte(strings.TrimSpace(raw)))
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrRemoteMalformed, err)
	}

	return result, nil
}

// FailureReason names the fallback trigger for logs.
func FailureReason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrRemoteNotConfigured):
		return "not_configured"
	case errors.Is(err, ErrRemoteQuota):
		return "quota"
	case errors.Is(err, ErrRemoteMalformed):
		return "malformed"
	case errors.Is(err, ErrRemoteTransport):
		return "transport"
	}
	return "unknown"
}

var (
	placeholderFragments = []string{
		"your-api-key", "your_api_key", "your-key", "your_key", "api-key-here", "api_key_here",
		"changeme", "change-me", "placeholder", "replace-me", "replace_me",
	}
	placeholderValues = map[string]bool{"todo": true, "none": true, "null": true, "test": true}
)

// IsPlaceholderCredential reports whether key is empty or obviously a
// template value rather than a real credential.
func IsPlaceholderCredential(key string) bool {
	k := strings.ToLower(strings.TrimSpace(key))
	if k == "" {
		return true
	}
	if strings.HasPrefix(k, "<") && strings.HasSuffix(k, ">") {
		return true
	}
	if strings.Trim(k, "x*.") == "" {
		return true
	}
	if placeholderValues[k] {
		return true
	}
	for _, p := range placeholderFragments {
		if strings.Contains(k, p) {
			return true
		}
	}
	return false
}
