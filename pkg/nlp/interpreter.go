package nlp

import (
	"context"
	"strings"
)

// CommandSource turns a free-text query into a Result. The local
// interpreter, the remote interpreter and the fallback decorator all
// implement it.
type CommandSource interface {
	Interpret(ctx context.Context, query string) (Result, error)
}

// LocalInterpreter is the offline implementation of the command contract.
// It is a pure function of the query: no clock, no randomness, no state
// carried between calls.
type LocalInterpreter struct {
	classifier *Classifier
	builder    *Builder
}

func NewLocalInterpreter(catalogue *Catalogue) *LocalInterpreter {
	return &LocalInterpreter{
		classifier: NewClassifier(catalogue),
		builder:    NewBuilder(catalogue),
	}
}

// Evaluate never fails; anything unrecognised becomes the unclear reply.
// Blank input is answered without running the classifier.
func (l *LocalInterpreter) Evaluate(query string) Result {
	if strings.TrimSpace(query) == "" {
		return l.builder.Build(Match{Intent: IntentUnclear})
	}
	return l.builder.Build(l.classifier.Classify(query))
}

func (l *LocalInterpreter) Interpret(_ context.Context, query string) (Result, error) {
	return l.Evaluate(query), nil
}

// Explain exposes the classifier verdict for diagnostics.
func (l *LocalInterpreter) Explain(query string) Match {
	return l.classifier.Classify(query)
}

func (l *LocalInterpreter) Priority() []Intent {
	return l.classifier.Priority()
}
