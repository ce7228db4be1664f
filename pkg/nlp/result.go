package nlp

import (
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var ErrMalformedResult = errors.New("malformed interpretation result")

// Result is the reply plus the ordered actions a consumer must apply in
// sequence. An empty action list means no command was recognised.
type Result struct {
	Reply   string
	Actions []Action
}

type wireResult struct {
	Reply   *string                `json:"reply"`
	Actions *[]jsoniter.RawMessage `json:"actions"`
}

func (r Result) MarshalJSON() ([]byte, error) {
	actions := make([]wireAction, 0, len(r.Actions))
	for _, a := range r.Actions {
		w, err := toWire(a)
		if err != nil {
			return nil, err
		}
		actions = append(actions, w)
	}

	return json.Marshal(struct {
		Reply   string       `json:"reply"`
		Actions []wireAction `json:"actions"`
	}{
		Reply:   r.Reply,
		Actions: actions,
	})
}

// UnmarshalJSON is strict: both fields must be present, the reply must be
// non-empty and every action must be a known kind with its field set.
func (r *Result) UnmarshalJSON(data []byte) error {
	var w wireResult
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResult, err)
	}
	if w.Reply == nil || *w.Reply == "" {
		return fmt.Errorf("%w: missing reply", ErrMalformedResult)
	}
	if w.Actions == nil {
		return fmt.Errorf("%w: missing actions", ErrMalformedResult)
	}

	actions := make([]Action, 0, len(*w.Actions))
	for i, raw := range *w.Actions {
		a, err := UnmarshalAction(raw)
		if err != nil {
			return fmt.Errorf("%w: action %d: %v", ErrMalformedResult, i, err)
		}
		actions = append(actions, a)
	}

	r.Reply = *w.Reply
	r.Actions = actions
	return nil
}

// ParseResult decodes a command-contract document.
func ParseResult(data []byte) (Result, error) {
	var r Result
	if err := r.UnmarshalJSON(data); err != nil {
		return Result{}, err
	}
	return r, nil
}
