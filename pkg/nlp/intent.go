package nlp

type Intent string

const (
	IntentChartType     Intent = "chart_type"
	IntentLive          Intent = "live"
	IntentHistory       Intent = "history"
	IntentTimeWindow    Intent = "time_window"
	IntentShowAll       Intent = "show_all"
	IntentPressureGroup Intent = "pressure_group"
	IntentParameters    Intent = "parameters"
	IntentChartFallback Intent = "chart_fallback"
	IntentUnclear       Intent = "unclear"
)

// Match is the classifier's verdict for one query: the intent plus whatever
// that intent captured. Fields that do not belong to the intent are zero.
type Match struct {
	Intent  Intent
	Chart   ChartType
	LiveKey LiveKey
	HistKey HistKey
	Params  []ParamID
	Hide    bool
	Only    bool
}
