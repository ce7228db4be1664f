package nlp

import "regexp"

var (
	chartTokenRe   = regexp.MustCompile(`\b(spline|line|area|column|bar)s?\b`)
	chartContextRe = regexp.MustCompile(`\b(switch|change|use|set|convert|make|chart|graph|plot|type|view)\b`)

	liveRe       = regexp.MustCompile(`\b(live|real-time|realtime|real time|now)\b`)
	historyRe    = regexp.MustCompile(`\bhistor(y|ical)\b`)
	liveHoursRe  = regexp.MustCompile(`\b(1|12|24)\s*(h|hr|hrs|hour|hours)\b`)
	liveLastRe   = regexp.MustCompile(`\blast\s+(1|12|24)\b`)
	liveLastHrRe = regexp.MustCompile(`\b(last|past)\s+hour\b`)

	historyTriggerRe = regexp.MustCompile(`\b(history|historical|yesterday|week|weeks|weekly|month|months|monthly|past)\b|\blast\s+\d+\s*(days?|weeks?|months?)\b`)
	yesterdayRe      = regexp.MustCompile(`\byesterday\b`)
	monthRe          = regexp.MustCompile(`\b(1\s*month|one month|30\s*days?|monthly|(last|past|this)\s+month)\b`)
	weekRe           = regexp.MustCompile(`\b(1\s*week|one week|7\s*days?|weekly|(last|past|this)\s+week)\b`)

	window24Re = regexp.MustCompile(`\b24\s*(h|hs|hr|hrs|hour|hours)\b`)
	window12Re = regexp.MustCompile(`\b12\s*(h|hs|hr|hrs|hour|hours)\b`)
	window1Re  = regexp.MustCompile(`\b1\s*(h|hs|hr|hrs|hour|hours)\b`)

	showAllRe    = regexp.MustCompile(`\b(all|every|everything|reset)\b`)
	hideRemoveRe = regexp.MustCompile(`\b(hide|remove)\b`)

	pressureRe          = regexp.MustCompile(`\bpressures?\b`)
	pressureQualifierRe = regexp.MustCompile(`\b(only|sensors?|param\w*)\b`)

	hidePolarityRe = regexp.MustCompile(`\b(hide|remove|disable|off)\b|\bturn off\b`)
	showPolarityRe = regexp.MustCompile(`\b(show|display|enable|on)\b|\bturn on\b`)
	onlyRe         = regexp.MustCompile(`\bonly\b`)
)

// features is everything the rules look at, computed once per query.
type features struct {
	text     string
	params   []ParamID
	chart    ChartType
	hasChart bool
}

type rule struct {
	intent Intent
	match  func(f *features) (Match, bool)
}

// Classifier runs an ordered rule table over a query; the first rule that
// matches decides the intent. Order is priority.
type Classifier struct {
	resolver  *Resolver
	catalogue *Catalogue
	rules     []rule
}

func NewClassifier(catalogue *Catalogue) *Classifier {
	c := &Classifier{
		resolver:  NewResolver(catalogue),
		catalogue: catalogue,
	}
	c.rules = []rule{
		{IntentChartType, matchChartType},
		{IntentLive, matchLive},
		{IntentHistory, matchHistory},
		{IntentTimeWindow, matchTimeWindow},
		{IntentShowAll, matchShowAll},
		{IntentPressureGroup, c.matchPressureGroup},
		{IntentParameters, matchParameters},
		{IntentChartFallback, matchChartFallback},
	}
	return c
}

// Priority lists the intents in evaluation order, unclear last.
func (c *Classifier) Priority() []Intent {
	out := make([]Intent, 0, len(c.rules)+1)
	for _, r := range c.rules {
		out = append(out, r.intent)
	}
	return append(out, IntentUnclear)
}

func (c *Classifier) Classify(query string) Match {
	f := &features{text: Normalize(query)}
	if f.text == "" {
		return Match{Intent: IntentUnclear}
	}
	f.params = c.resolver.Resolve(f.text)
	f.chart, f.hasChart = chartToken(c.resolver.Strip(f.text))

	for _, r := range c.rules {
		if m, ok := r.match(f); ok {
			m.Intent = r.intent
			return m
		}
	}
	return Match{Intent: IntentUnclear}
}

func chartToken(text string) (ChartType, bool) {
	m := chartTokenRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	if m[1] == "bar" {
		return ChartColumn, true
	}
	return ChartType(m[1]), true
}

func matchChartType(f *features) (Match, bool) {
	if !f.hasChart || !chartContextRe.MatchString(f.text) {
		return Match{}, false
	}
	return Match{Chart: f.chart}, true
}

func matchLive(f *features) (Match, bool) {
	if !liveRe.MatchString(f.text) || historyRe.MatchString(f.text) {
		return Match{}, false
	}

	hours := ""
	if m := liveHoursRe.FindStringSubmatch(f.text); m != nil {
		hours = m[1]
	} else if m := liveLastRe.FindStringSubmatch(f.text); m != nil {
		hours = m[1]
	} else if liveLastHrRe.MatchString(f.text) {
		hours = "1"
	}

	if hours == "" {
		return Match{}, true
	}
	return Match{LiveKey: LiveKey(hours + "h")}, true
}

func matchHistory(f *features) (Match, bool) {
	if !historyTriggerRe.MatchString(f.text) {
		return Match{}, false
	}

	switch {
	case yesterdayRe.MatchString(f.text):
		return Match{HistKey: HistYesterday}, true
	case monthRe.MatchString(f.text):
		return Match{HistKey: Hist1Month}, true
	case weekRe.MatchString(f.text):
		return Match{HistKey: Hist1Week}, true
	}
	return Match{}, true
}

func matchTimeWindow(f *features) (Match, bool) {
	switch {
	case window24Re.MatchString(f.text):
		return Match{LiveKey: Live24h}, true
	case window12Re.MatchString(f.text):
		return Match{LiveKey: Live12h}, true
	case window1Re.MatchString(f.text):
		return Match{LiveKey: Live1h}, true
	}
	return Match{}, false
}

func matchShowAll(f *features) (Match, bool) {
	if !showAllRe.MatchString(f.text) || hideRemoveRe.MatchString(f.text) {
		return Match{}, false
	}
	return Match{}, true
}

func (c *Classifier) matchPressureGroup(f *features) (Match, bool) {
	if len(f.params) > 0 {
		return Match{}, false
	}
	bare := f.text == "pressure" || f.text == "pressures"
	if !bare && !(pressureRe.MatchString(f.text) && pressureQualifierRe.MatchString(f.text)) {
		return Match{}, false
	}
	return Match{Params: c.catalogue.Group(GroupPressure), Only: true}, true
}

func matchParameters(f *features) (Match, bool) {
	if len(f.params) == 0 {
		return Match{}, false
	}

	hide := hidePolarityRe.MatchString(f.text)
	show := showPolarityRe.MatchString(f.text)
	only := onlyRe.MatchString(f.text)
	// a bare parameter name is not a command
	if !hide && !show && !only {
		return Match{}, false
	}

	return Match{
		Params: f.params,
		Hide:   hide && !show,
		Only:   only,
	}, true
}

func matchChartFallback(f *features) (Match, bool) {
	if !f.hasChart {
		return Match{}, false
	}
	return Match{Chart: f.chart}, true
}
