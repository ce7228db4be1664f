package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifier_Priority(t *testing.T) {
	c := NewClassifier(NewDefaultCatalogue())

	assert.Equal(t, []Intent{
		IntentChartType,
		IntentLive,
		IntentHistory,
		IntentTimeWindow,
		IntentShowAll,
		IntentPressureGroup,
		IntentParameters,
		IntentChartFallback,
		IntentUnclear,
	}, c.Priority())
}

func TestClassifier_Classify(t *testing.T) {
	c := NewClassifier(NewDefaultCatalogue())

	tests := []struct {
		name  string
		query string
		want  Match
	}{
		{"chart with verb", "use area chart", Match{Intent: IntentChartType, Chart: ChartArea}},
		{"bar maps to column", "switch to bar graph", Match{Intent: IntentChartType, Chart: ChartColumn}},
		{"plural chart token", "make them splines", Match{Intent: IntentChartType, Chart: ChartSpline}},
		{"chart beats live", "switch to line chart now", Match{Intent: IntentChartType, Chart: ChartLine}},

		{"bare live", "go live", Match{Intent: IntentLive}},
		{"realtime spelling", "real-time please", Match{Intent: IntentLive}},
		{"live with hours", "live 12h", Match{Intent: IntentLive, LiveKey: Live12h}},
		{"live with last n", "realtime last 24", Match{Intent: IntentLive, LiveKey: Live24h}},
		{"live with last hour", "live data for the past hour", Match{Intent: IntentLive, LiveKey: Live1h}},

		{"bare history", "switch to history mode", Match{Intent: IntentHistory}},
		{"history beats live when both named", "live history", Match{Intent: IntentHistory}},
		{"yesterday", "show yesterday", Match{Intent: IntentHistory, HistKey: HistYesterday}},
		{"last week", "show last week", Match{Intent: IntentHistory, HistKey: Hist1Week}},
		{"last seven days", "last 7 days", Match{Intent: IntentHistory, HistKey: Hist1Week}},
		{"monthly", "monthly trend", Match{Intent: IntentHistory, HistKey: Hist1Month}},
		{"past month", "data for the past month", Match{Intent: IntentHistory, HistKey: Hist1Month}},

		{"bare window 12h", "last 12h", Match{Intent: IntentTimeWindow, LiveKey: Live12h}},
		{"bare window 24 hours", "24 hours", Match{Intent: IntentTimeWindow, LiveKey: Live24h}},
		{"bare window 1 hr", "1 hr", Match{Intent: IntentTimeWindow, LiveKey: Live1h}},

		{"show all", "show all", Match{Intent: IntentShowAll}},
		{"reset", "reset", Match{Intent: IntentShowAll}},
		{"hide all is not show all", "hide all tubing", Match{Intent: IntentParameters, Params: []ParamID{ParamTubing}, Hide: true}},

		{"bare pressure", "pressure", Match{Intent: IntentPressureGroup, Params: []ParamID{ParamTubing, ParamAAnnulus, ParamBAnnulus, ParamFlowlinePressure}, Only: true}},
		{"pressure upper case", "PRESSURE", Match{Intent: IntentPressureGroup, Params: []ParamID{ParamTubing, ParamAAnnulus, ParamBAnnulus, ParamFlowlinePressure}, Only: true}},
		{"pressure sensors only", "show only pressure sensors", Match{Intent: IntentPressureGroup, Params: []ParamID{ParamTubing, ParamAAnnulus, ParamBAnnulus, ParamFlowlinePressure}, Only: true}},
		{"named pressure parameter is not the group", "show only flowline pressure", Match{Intent: IntentParameters, Params: []ParamID{ParamFlowlinePressure}, Only: true}},

		{"hide two", "hide b-annulus and tubing", Match{Intent: IntentParameters, Params: []ParamID{ParamBAnnulus, ParamTubing}, Hide: true}},
		{"show one", "show a-annulus", Match{Intent: IntentParameters, Params: []ParamID{ParamAAnnulus}}},
		{"only", "show only tubing", Match{Intent: IntentParameters, Params: []ParamID{ParamTubing}, Only: true}},
		{"turn off", "turn off temperature", Match{Intent: IntentParameters, Params: []ParamID{ParamFlowlineTemperature}, Hide: true}},
		{"hide and show together shows", "hide tubing or show tubing", Match{Intent: IntentParameters, Params: []ParamID{ParamTubing}}},
		{"flow line is not a chart", "display flow line pressure", Match{Intent: IntentParameters, Params: []ParamID{ParamFlowlinePressure}}},
		{"flow line with a chart verb is not a chart", "switch on flow line pressure", Match{Intent: IntentParameters, Params: []ParamID{ParamFlowlinePressure}}},
		{"flow line alias next to a real chart request", "switch flow line pressure to area chart", Match{Intent: IntentChartType, Chart: ChartArea}},
		{"flow line alias alone is not a chart fallback", "flow line pressure", Match{Intent: IntentUnclear}},

		{"bare chart token", "area", Match{Intent: IntentChartFallback, Chart: ChartArea}},
		{"bare column", "columns please", Match{Intent: IntentChartFallback, Chart: ChartColumn}},

		{"parameter needs hide show or only, otherwise unclear", "tubing", Match{Intent: IntentUnclear}},
		{"gibberish", "xyzzy", Match{Intent: IntentUnclear}},
		{"blank", "   ", Match{Intent: IntentUnclear}},
		{"punctuation only", "?!", Match{Intent: IntentUnclear}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.query))
		})
	}
}
