package nlp

import (
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type ActionKind string

const (
	KindShowOnlyParams ActionKind = "showOnlyParams"
	KindShowAllParams  ActionKind = "showAllParams"
	KindHideParam      ActionKind = "hideParam"
	KindShowParam      ActionKind = "showParam"
	KindSetMode        ActionKind = "setMode"
	KindSetLiveKey     ActionKind = "setLiveKey"
	KindSetHistKey     ActionKind = "setHistKey"
	KindSetChartType   ActionKind = "setChartType"
)

type Mode string

const (
	ModeRealtime Mode = "realtime"
	ModeHistory  Mode = "history"
)

type LiveKey string

const (
	Live1h  LiveKey = "1h"
	Live12h LiveKey = "12h"
	Live24h LiveKey = "24h"
)

type HistKey string

const (
	HistYesterday HistKey = "yesterday"
	Hist1Week     HistKey = "1week"
	Hist1Month    HistKey = "1month"
)

type ChartType string

const (
	ChartLine   ChartType = "line"
	ChartSpline ChartType = "spline"
	ChartArea   ChartType = "area"
	ChartColumn ChartType = "column"
)

func (m Mode) Valid() bool      { return m == ModeRealtime || m == ModeHistory }
func (k LiveKey) Valid() bool   { return k == Live1h || k == Live12h || k == Live24h }
func (k HistKey) Valid() bool   { return k == HistYesterday || k == Hist1Week || k == Hist1Month }
func (c ChartType) Valid() bool { return c == ChartLine || c == ChartSpline || c == ChartArea || c == ChartColumn }

var ErrMalformedAction = errors.New("malformed action")

// Action is one change to dashboard view-state. The concrete types below are
// the only implementations.
type Action interface {
	Kind() ActionKind
	isAction()
}

type ShowOnlyParams struct{ Params []ParamID }
type ShowAllParams struct{}
type HideParam struct{ Param ParamID }
type ShowParam struct{ Param ParamID }
type SetMode struct{ Mode Mode }
type SetLiveKey struct{ Key LiveKey }
type SetHistKey struct{ Key HistKey }
type SetChartType struct{ Chart ChartType }

func (ShowOnlyParams) Kind() ActionKind { return KindShowOnlyParams }
func (ShowAllParams) Kind() ActionKind  { return KindShowAllParams }
func (HideParam) Kind() ActionKind      { return KindHideParam }
func (ShowParam) Kind() ActionKind      { return KindShowParam }
func (SetMode) Kind() ActionKind        { return KindSetMode }
func (SetLiveKey) Kind() ActionKind     { return KindSetLiveKey }
func (SetHistKey) Kind() ActionKind     { return KindSetHistKey }
func (SetChartType) Kind() ActionKind   { return KindSetChartType }

func (ShowOnlyParams) isAction() {}
func (ShowAllParams) isAction()  {}
func (HideParam) isAction()      {}
func (ShowParam) isAction()      {}
func (SetMode) isAction()        {}
func (SetLiveKey) isAction()     {}
func (SetHistKey) isAction()     {}
func (SetChartType) isAction()   {}

// wireAction is the command-contract shape: a "type" discriminator plus the
// one field that kind carries. Pointers tell "absent" apart from "empty".
type wireAction struct {
	Type      ActionKind `json:"type"`
	Params    *[]ParamID `json:"params,omitempty"`
	Param     *ParamID   `json:"param,omitempty"`
	Mode      *Mode      `json:"mode,omitempty"`
	LiveKey   *LiveKey   `json:"liveKey,omitempty"`
	HistKey   *HistKey   `json:"histKey,omitempty"`
	ChartType *ChartType `json:"chartType,omitempty"`
}

func toWire(a Action) (wireAction, error) {
	w := wireAction{Type: a.Kind()}
	switch v := a.(type) {
	case ShowOnlyParams:
		params := v.Params
		if params == nil {
			params = []ParamID{}
		}
		w.Params = &params
	case ShowAllParams:
	case HideParam:
		w.Param = &v.Param
	case ShowParam:
		w.Param = &v.Param
	case SetMode:
		w.Mode = &v.Mode
	case SetLiveKey:
		w.LiveKey = &v.Key
	case SetHistKey:
		w.HistKey = &v.Key
	case SetChartType:
		w.ChartType = &v.Chart
	default:
		return wireAction{}, fmt.Errorf("%w: unsupported action %T", ErrMalformedAction, a)
	}
	return w, nil
}

func fromWire(w wireAction) (Action, error) {
	missing := func(field string) error {
		return fmt.Errorf("%w: %s requires %q", ErrMalformedAction, w.Type, field)
	}

	switch w.Type {
	case KindShowOnlyParams:
		if w.Params == nil {
			return nil, missing("params")
		}
		if len(*w.Params) == 0 {
			return ShowOnlyParams{}, nil
		}
		return ShowOnlyParams{Params: append([]ParamID(nil), *w.Params...)}, nil
	case KindShowAllParams:
		return ShowAllParams{}, nil
	case KindHideParam:
		if w.Param == nil {
			return nil, missing("param")
		}
		return HideParam{Param: *w.Param}, nil
	case KindShowParam:
		if w.Param == nil {
			return nil, missing("param")
		}
		return ShowParam{Param: *w.Param}, nil
	case KindSetMode:
		if w.Mode == nil || !w.Mode.Valid() {
			return nil, missing("mode")
		}
		return SetMode{Mode: *w.Mode}, nil
	case KindSetLiveKey:
		if w.LiveKey == nil || !w.LiveKey.Valid() {
			return nil, missing("liveKey")
		}
		return SetLiveKey{Key: *w.LiveKey}, nil
	case KindSetHistKey:
		if w.HistKey == nil || !w.HistKey.Valid() {
			return nil, missing("histKey")
		}
		return SetHistKey{Key: *w.HistKey}, nil
	case KindSetChartType:
		if w.ChartType == nil || !w.ChartType.Valid() {
			return nil, missing("chartType")
		}
		return SetChartType{Chart: *w.ChartType}, nil
	}
	return nil, fmt.Errorf("%w: unknown type %q", ErrMalformedAction, w.Type)
}

// MarshalAction encodes a single action in the command-contract shape.
func MarshalAction(a Action) ([]byte, error) {
	w, err := toWire(a)
	if err != nil {
		return nil, err
	}
	return json.Marshal(w)
}

func UnmarshalAction(data []byte) (Action, error) {
	var w wireAction
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedAction, err)
	}
	return fromWire(w)
}

// ActionList marshals as a JSON array of command-contract actions.
type ActionList []Action

func (l ActionList) MarshalJSON() ([]byte, error) {
	wire := make([]wireAction, 0, len(l))
	for _, a := range l {
		w, err := toWire(a)
		if err != nil {
			return nil, err
		}
		wire = append(wire, w)
	}
	return json.Marshal(wire)
}

func (l *ActionList) UnmarshalJSON(data []byte) error {
	var raw []jsoniter.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedAction, err)
	}
	out := make(ActionList, 0, len(raw))
	for _, r := range raw {
		a, err := UnmarshalAction(r)
		if err != nil {
			return err
		}
		out = append(out, a)
	}
	*l = out
	return nil
}
