package assistant

import (
	"time"

	"WellCommand/pkg/dashboard"
	"WellCommand/pkg/nlp"
)

type InterpretRequest struct {
	Query string `json:"query" validate:"max=500"`
}

type ExplainResponse struct {
	Query      string        `json:"query"`
	Normalized string        `json:"normalized"`
	Intent     nlp.Intent    `json:"intent"`
	Params     []nlp.ParamID `json:"params"`
	Priority   []nlp.Intent  `json:"priority"`
	Result     nlp.Result    `json:"result"`
}

type CreateSessionResponse struct {
	SessionID string             `json:"session_id"`
	Token     string             `json:"token"`
	ExpiresAt time.Time          `json:"expires_at"`
	ViewState dashboard.Snapshot `json:"view_state"`
}

type SendMessageRequest struct {
	Text string `json:"text" validate:"max=500"`
}

type MessageResponse struct {
	ID        string         `json:"id"`
	Role      string         `json:"role"`
	Text      string         `json:"text"`
	Actions   nlp.ActionList `json:"actions"`
	Source    string         `json:"source,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

type SendMessageResponse struct {
	Reply     string             `json:"reply"`
	Actions   nlp.ActionList     `json:"actions"`
	Source    string             `json:"source"`
	Messages  []MessageResponse  `json:"messages"`
	ViewState dashboard.Snapshot `json:"view_state"`
}

type ParameterResponse struct {
	ID      nlp.ParamID `json:"id"`
	Label   string      `json:"label"`
	Unit    string      `json:"unit"`
	Groups  []string    `json:"groups"`
	Aliases []string    `json:"aliases"`
}

type InterpretOutcome struct {
	Result nlp.Result
	Source string
	State  nlp.RemoteState
}
