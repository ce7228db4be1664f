package dashboard

import "WellCommand/pkg/nlp"

// ViewState is the dashboard state an action list is applied to. It is not
// safe for concurrent use; callers serialise access.
type ViewState struct {
	catalogue *nlp.Catalogue
	hidden    map[nlp.ParamID]bool
	mode      nlp.Mode
	liveKey   nlp.LiveKey
	histKey   nlp.HistKey
	chartType nlp.ChartType
}

type Snapshot struct {
	Mode      nlp.Mode      `json:"mode"`
	LiveKey   nlp.LiveKey   `json:"live_key"`
	HistKey   nlp.HistKey   `json:"hist_key"`
	ChartType nlp.ChartType `json:"chart_type"`
	Visible   []nlp.ParamID `json:"visible"`
	Hidden    []nlp.ParamID `json:"hidden"`
}

func New(catalogue *nlp.Catalogue) *ViewState {
	return &ViewState{
		catalogue: catalogue,
		hidden:    make(map[nlp.ParamID]bool),
		mode:      nlp.ModeRealtime,
		liveKey:   nlp.Live1h,
		histKey:   nlp.HistYesterday,
		chartType: nlp.ChartLine,
	}
}

// Apply applies actions in order. Identifiers missing from the catalogue are
// ignored, so applying the same list twice leaves the same state.
func (v *ViewState) Apply(actions []nlp.Action) {
	for _, a := range actions {
		v.apply(a)
	}
}

func (v *ViewState) apply(a nlp.Action) {
	switch act := a.(type) {
	case nlp.ShowOnlyParams:
		keep := make(map[nlp.ParamID]bool, len(act.Params))
		for _, id := range act.Params {
			keep[id] = true
		}
		v.hidden = make(map[nlp.ParamID]bool)
		for _, p := range v.catalogue.Parameters() {
			if !keep[p.ID] {
				v.hidden[p.ID] = true
			}
		}
	case nlp.ShowAllParams:
		v.hidden = make(map[nlp.ParamID]bool)
	case nlp.HideParam:
		if _, ok := v.catalogue.Lookup(act.Param); ok {
			v.hidden[act.Param] = true
		}
	case nlp.ShowParam:
		delete(v.hidden, act.Param)
	case nlp.SetMode:
		v.mode = act.Mode
	case nlp.SetLiveKey:
		v.liveKey = act.Key
	case nlp.SetHistKey:
		v.histKey = act.Key
	case nlp.SetChartType:
		v.chartType = act.Chart
	}
}

func (v *ViewState) IsHidden(id nlp.ParamID) bool {
	return v.hidden[id]
}

func (v *ViewState) Snapshot() Snapshot {
	s := Snapshot{
		Mode:      v.mode,
		LiveKey:   v.liveKey,
		HistKey:   v.histKey,
		ChartType: v.chartType,
		Visible:   []nlp.ParamID{},
		Hidden:    []nlp.ParamID{},
	}
	for _, p := range v.catalogue.Parameters() {
		if v.hidden[p.ID] {
			s.Hidden = append(s.Hidden, p.ID)
		} else {
			s.Visible = append(s.Visible, p.ID)
		}
	}
	return s
}
