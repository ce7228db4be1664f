package assistantService

import (
	"context"
	"strings"

	"WellCommand/internal/api/assistant"
	contextPkg "WellCommand/pkg/context"
	"WellCommand/pkg/nlp"

	"github.com/sirupsen/logrus"
)

func (s *assistantService) Interpret(ctx context.Context, query string) (*assistant.InterpretOutcome, error) {
	if strings.TrimSpace(query) == "" {
		return nil, assistant.ErrEmptyQuery
	}

	result, trace := s.source.InterpretTraced(ctx, query)

	s.log.WithFields(logrus.Fields{
		"request_id": contextPkg.GetRequestID(ctx),
		"source":     trace.Origin,
		"state":      trace.State,
		"actions":    len(result.Actions),
	}).Debug("Query interpreted")

	return &assistant.InterpretOutcome{
		Result: result,
		Source: string(trace.Origin),
		State:  trace.State,
	}, nil
}

func (s *assistantService) Explain(ctx context.Context, query string) (*assistant.ExplainResponse, error) {
	if strings.TrimSpace(query) == "" {
		return nil, assistant.ErrEmptyQuery
	}

	match := s.local.Explain(query)
	params := match.Params
	if params == nil {
		params = []nlp.ParamID{}
	}

	return &assistant.ExplainResponse{
		Query:      query,
		Normalized: nlp.Normalize(query),
		Intent:     match.Intent,
		Params:     params,
		Priority:   s.local.Priority(),
		Result:     s.local.Evaluate(query),
	}, nil
}

func (s *assistantService) Parameters(ctx context.Context) []assistant.ParameterResponse {
	params := s.catalogue.Parameters()
	out := make([]assistant.ParameterResponse, 0, len(params))
	for _, p := range params {
		out = append(out, assistant.ParameterResponse{
			ID:      p.ID,
			Label:   p.Label,
			Unit:    p.Unit,
			Groups:  append([]string{}, p.Groups...),
			Aliases: s.catalogue.Aliases(p.ID),
		})
	}
	return out
}
