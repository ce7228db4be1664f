package nlp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalInterpreter_Evaluate(t *testing.T) {
	local := NewLocalInterpreter(NewDefaultCatalogue())

	tests := []struct {
		name  string
		query string
		want  Result
	}{
		{
			name:  "bare history mode",
			query: "switch to history mode",
			want: Result{
				Reply:   "Switched to history mode.",
				Actions: []Action{SetMode{Mode: ModeHistory}},
			},
		},
		{
			name:  "history range",
			query: "show last week",
			want: Result{
				Reply:   "Showing history for the last week.",
				Actions: []Action{SetMode{Mode: ModeHistory}, SetHistKey{Key: Hist1Week}},
			},
		},
		{
			name:  "live with window",
			query: "live 12h",
			want: Result{
				Reply:   "Switched to real-time mode, showing the last 12 hours.",
				Actions: []Action{SetMode{Mode: ModeRealtime}, SetLiveKey{Key: Live12h}},
			},
		},
		{
			name:  "bare live",
			query: "go live",
			want: Result{
				Reply:   "Switched to real-time mode.",
				Actions: []Action{SetMode{Mode: ModeRealtime}},
			},
		},
		{
			name:  "parameter whose name holds a chart word",
			query: "switch on flow line pressure",
			want: Result{
				Reply:   "Showing Flowline Pressure.",
				Actions: []Action{ShowParam{Param: ParamFlowlinePressure}},
			},
		},
		{
			name:  "bare window",
			query: "last 12h",
			want: Result{
				Reply:   "Real-time window set to the last 12 hours.",
				Actions: []Action{SetLiveKey{Key: Live12h}},
			},
		},
		{
			name:  "chart",
			query: "use area chart",
			want: Result{
				Reply:   "Switched to area chart.",
				Actions: []Action{SetChartType{Chart: ChartArea}},
			},
		},
		{
			name:  "show all",
			query: "show all",
			want: Result{
				Reply:   "Showing all parameters.",
				Actions: []Action{ShowAllParams{}},
			},
		},
		{
			name:  "pressure group",
			query: "pressure",
			want: Result{
				Reply: "Showing pressure parameters only.",
				Actions: []Action{ShowOnlyParams{Params: []ParamID{
					ParamTubing, ParamAAnnulus, ParamBAnnulus, ParamFlowlinePressure,
				}}},
			},
		},
		{
			name:  "multi hide",
			query: "hide b-annulus and tubing",
			want: Result{
				Reply:   "Hiding B-Annulus Pressure, Tubing Pressure.",
				Actions: []Action{HideParam{Param: ParamBAnnulus}, HideParam{Param: ParamTubing}},
			},
		},
		{
			name:  "show only",
			query: "show only tubing",
			want: Result{
				Reply:   "Showing only Tubing Pressure.",
				Actions: []Action{ShowOnlyParams{Params: []ParamID{ParamTubing}}},
			},
		},
		{
			name:  "show one",
			query: "show a-annulus",
			want: Result{
				Reply:   "Showing A-Annulus Pressure.",
				Actions: []Action{ShowParam{Param: ParamAAnnulus}},
			},
		},
		{
			name:  "unclear",
			query: "xyzzy",
			want:  Result{Reply: UnclearReply, Actions: []Action{}},
		},
		{
			name:  "blank",
			query: "",
			want:  Result{Reply: UnclearReply, Actions: []Action{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, local.Evaluate(tt.query))
		})
	}
}

func TestLocalInterpreter_Deterministic(t *testing.T) {
	local := NewLocalInterpreter(NewDefaultCatalogue())
	queries := []string{
		"hide b-annulus and tubing",
		"flowline pressure and flowline temperature only",
		"pressure",
		"xyzzy",
		"switch to history mode",
		"",
	}

	for _, q := range queries {
		first, err := json.Marshal(local.Evaluate(q))
		require.NoError(t, err)
		second, err := json.Marshal(local.Evaluate(q))
		require.NoError(t, err)
		assert.Equal(t, string(first), string(second), "query %q", q)
	}
}

func TestLocalInterpreter_UnclearHasEmptyActions(t *testing.T) {
	local := NewLocalInterpreter(NewDefaultCatalogue())

	for _, q := range []string{"xyzzy", "what is the weather", "tubing", "12345"} {
		res := local.Evaluate(q)
		assert.Equal(t, UnclearReply, res.Reply, "query %q", q)
		assert.NotNil(t, res.Actions)
		assert.Empty(t, res.Actions)

		data, err := json.Marshal(res)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"actions":[]`)
	}
}

func TestLocalInterpreter_Interpret(t *testing.T) {
	local := NewLocalInterpreter(NewDefaultCatalogue())

	res, err := local.Interpret(context.Background(), "show all")
	require.NoError(t, err)
	assert.Equal(t, local.Evaluate("show all"), res)
}

func TestLocalInterpreter_Explain(t *testing.T) {
	local := NewLocalInterpreter(NewDefaultCatalogue())

	m := local.Explain("hide tubing")
	assert.Equal(t, IntentParameters, m.Intent)
	assert.True(t, m.Hide)
	assert.Equal(t, IntentUnclear, local.Priority()[len(local.Priority())-1])
}
