package nlp

import (
	"fmt"
	"strings"
)

var actionExamples = []Action{
	ShowOnlyParams{Params: []ParamID{ParamTubing, ParamFlowlinePressure}},
	ShowAllParams{},
	HideParam{Param: ParamBAnnulus},
	ShowParam{Param: ParamAAnnulus},
	SetMode{Mode: ModeHistory},
	SetLiveKey{Key: Live12h},
	SetHistKey{Key: Hist1Week},
	SetChartType{Chart: ChartArea},
}

// BuildInstruction renders the fixed system instruction sent with every
// remote call: the parameter list, one example per action kind and the
// output rules.
func BuildInstruction(catalogue *Catalogue) string {
	var sb strings.Builder

	sb.WriteString("You control a well-monitoring dashboard. Convert the user's request into dashboard commands.\n\n")
	sb.WriteString("Parameters (identifier: label):\n")
	for _, p := range catalogue.Parameters() {
		fmt.Fprintf(&sb, "- %s: %s (%s)\n", p.ID, p.Label, p.Unit)
	}

	sb.WriteString("\nAction kinds, one example each:\n")
	for _, a := range actionExamples {
		data, err := MarshalAction(a)
		if err != nil {
			continue
		}
		fmt.Fprintf(&sb, "- %s: %s\n", a.Kind(), data)
	}

	sb.WriteString("\nAllowed values: mode realtime|history; liveKey 1h|12h|24h; histKey yesterday|1week|1month; chartType line|spline|area|column.\n")
	sb.WriteString("\nRules:\n")
	sb.WriteString("- Respond with JSON only, no prose and no code fences.\n")
	sb.WriteString(`- The JSON must be {"reply": "<one short sentence>", "actions": [<actions in the order they must be applied>]}.` + "\n")
	sb.WriteString("- If the request is not a dashboard command, return an empty actions array and a short guidance reply.\n")

	return sb.String()
}
