package nlp

import (
	"fmt"
	"strings"
)

const UnclearReply = `Sorry, I didn't understand that. Try something like "show only tubing", "hide b-annulus and tubing", "show all", "switch to history mode", "show last week", "live 12h" or "use area chart".`

var liveKeyText = map[LiveKey]string{
	Live1h:  "1 hour",
	Live12h: "12 hours",
	Live24h: "24 hours",
}

var histKeyText = map[HistKey]string{
	HistYesterday: "yesterday",
	Hist1Week:     "the last week",
	Hist1Month:    "the last month",
}

// Builder turns a Match into actions and a fixed-format reply. Replies use
// display labels, never identifiers.
type Builder struct {
	catalogue *Catalogue
}

func NewBuilder(catalogue *Catalogue) *Builder {
	return &Builder{catalogue: catalogue}
}

func (b *Builder) Build(m Match) Result {
	switch m.Intent {
	case IntentChartType, IntentChartFallback:
		return Result{
			Reply:   fmt.Sprintf("Switched to %s chart.", m.Chart),
			Actions: []Action{SetChartType{Chart: m.Chart}},
		}

	case IntentLive:
		if m.LiveKey == "" {
			return Result{
				Reply:   "Switched to real-time mode.",
				Actions: []Action{SetMode{Mode: ModeRealtime}},
			}
		}
		return Result{
			Reply:   fmt.Sprintf("Switched to real-time mode, showing the last %s.", liveKeyText[m.LiveKey]),
			Actions: []Action{SetMode{Mode: ModeRealtime}, SetLiveKey{Key: m.LiveKey}},
		}

	case IntentHistory:
		if m.HistKey == "" {
			return Result{
				Reply:   "Switched to history mode.",
				Actions: []Action{SetMode{Mode: ModeHistory}},
			}
		}
		return Result{
			Reply:   fmt.Sprintf("Showing history for %s.", histKeyText[m.HistKey]),
			Actions: []Action{SetMode{Mode: ModeHistory}, SetHistKey{Key: m.HistKey}},
		}

	case IntentTimeWindow:
		return Result{
			Reply:   fmt.Sprintf("Real-time window set to the last %s.", liveKeyText[m.LiveKey]),
			Actions: []Action{SetLiveKey{Key: m.LiveKey}},
		}

	case IntentShowAll:
		return Result{
			Reply:   "Showing all parameters.",
			Actions: []Action{ShowAllParams{}},
		}

	case IntentPressureGroup:
		return Result{
			Reply:   "Showing pressure parameters only.",
			Actions: []Action{ShowOnlyParams{Params: copyIDs(m.Params)}},
		}

	case IntentParameters:
		return b.buildParameters(m)
	}

	return Result{Reply: UnclearReply, Actions: []Action{}}
}

func (b *Builder) buildParameters(m Match) Result {
	labels := b.labels(m.Params)

	if m.Only {
		return Result{
			Reply:   fmt.Sprintf("Showing only %s.", labels),
			Actions: []Action{ShowOnlyParams{Params: copyIDs(m.Params)}},
		}
	}

	actions := make([]Action, 0, len(m.Params))
	for _, id := range m.Params {
		if m.Hide {
			actions = append(actions, HideParam{Param: id})
		} else {
			actions = append(actions, ShowParam{Param: id})
		}
	}

	verb := "Showing"
	if m.Hide {
		verb = "Hiding"
	}
	return Result{
		Reply:   fmt.Sprintf("%s %s.", verb, labels),
		Actions: actions,
	}
}

func (b *Builder) labels(ids []ParamID) string {
	labels := make([]string, 0, len(ids))
	for _, id := range ids {
		labels = append(labels, b.catalogue.Label(id))
	}
	return strings.Join(labels, ", ")
}

func copyIDs(ids []ParamID) []ParamID {
	return append([]ParamID{}, ids...)
}
