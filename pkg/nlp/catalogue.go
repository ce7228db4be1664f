package nlp

import "sort"

type ParamID string

const (
	ParamTubing              ParamID = "tubing"
	ParamAAnnulus            ParamID = "a_ann"
	ParamBAnnulus            ParamID = "b_ann"
	ParamFlowlinePressure    ParamID = "flowline_p"
	ParamFlowlineTemperature ParamID = "flowline_t"
)

const GroupPressure = "pressure"

// Parameter is one monitored sensor quantity.
type Parameter struct {
	ID     ParamID  `json:"id"`
	Label  string   `json:"label"`
	Unit   string   `json:"unit"`
	Groups []string `json:"groups"`
}

func (p Parameter) InGroup(group string) bool {
	for _, g := range p.Groups {
		if g == group {
			return true
		}
	}
	return false
}

type alias struct {
	phrase string
	id     ParamID
}

// Catalogue is the immutable parameter list plus its alias table. Build it
// once with NewCatalogue and share the pointer; nothing mutates it afterwards.
type Catalogue struct {
	params  []Parameter
	byID    map[ParamID]Parameter
	aliases []alias
}

func DefaultParameters() []Parameter {
	return []Parameter{
		{ID: ParamTubing, Label: "Tubing Pressure", Unit: "psi", Groups: []string{GroupPressure}},
		{ID: ParamAAnnulus, Label: "A-Annulus Pressure", Unit: "psi", Groups: []string{GroupPressure}},
		{ID: ParamBAnnulus, Label: "B-Annulus Pressure", Unit: "psi", Groups: []string{GroupPressure}},
		{ID: ParamFlowlinePressure, Label: "Flowline Pressure", Unit: "psi", Groups: []string{GroupPressure}},
		{ID: ParamFlowlineTemperature, Label: "Flowline Temperature", Unit: "°F", Groups: []string{"temperature"}},
	}
}

// DefaultAliases maps lower-cased phrases to parameter identifiers. Phrases
// are matched as substrings, so avoid short phrases that occur inside other
// parameters' names (e.g. "flowline", "annulus a").
func DefaultAliases() map[string]ParamID {
	return map[string]ParamID{
		"tubing pressure": ParamTubing,
		"tbg":             ParamTubing,

		"a-annulus": ParamAAnnulus,
		"a annulus": ParamAAnnulus,
		"a-ann":     ParamAAnnulus,

		"b-annulus": ParamBAnnulus,
		"b annulus": ParamBAnnulus,
		"b-ann":     ParamBAnnulus,

		"flowline pressure":  ParamFlowlinePressure,
		"flow line pressure": ParamFlowlinePressure,
		"flowline_pressure":  ParamFlowlinePressure,

		"flowline temp": ParamFlowlineTemperature,
		"temperature":   ParamFlowlineTemperature,
	}
}

func NewDefaultCatalogue() *Catalogue {
	return NewCatalogue(DefaultParameters(), DefaultAliases())
}

// NewCatalogue copies params and aliases. Every parameter also gets its own
// identifier as an alias. Aliases pointing at unknown identifiers are dropped.
func NewCatalogue(params []Parameter, aliases map[string]ParamID) *Catalogue {
	c := &Catalogue{
		params: make([]Parameter, 0, len(params)),
		byID:   make(map[ParamID]Parameter, len(params)),
	}

	table := make(map[string]ParamID, len(aliases)+len(params))
	for _, p := range params {
		p.Groups = append([]string(nil), p.Groups...)
		c.params = append(c.params, p)
		c.byID[p.ID] = p
		table[string(p.ID)] = p.ID
	}
	for phrase, id := range aliases {
		if _, ok := c.byID[id]; !ok {
			continue
		}
		phrase = Normalize(phrase)
		if phrase == "" {
			continue
		}
		table[phrase] = id
	}

	for phrase, id := range table {
		c.aliases = append(c.aliases, alias{phrase: phrase, id: id})
	}
	// longest phrase first; ties broken alphabetically so the scan order is stable
	sort.Slice(c.aliases, func(i, j int) bool {
		li, lj := len(c.aliases[i].phrase), len(c.aliases[j].phrase)
		if li != lj {
			return li > lj
		}
		return c.aliases[i].phrase < c.aliases[j].phrase
	})

	return c
}

func (c *Catalogue) Parameters() []Parameter {
	out := make([]Parameter, len(c.params))
	for i, p := range c.params {
		p.Groups = append([]string(nil), p.Groups...)
		out[i] = p
	}
	return out
}

func (c *Catalogue) Lookup(id ParamID) (Parameter, bool) {
	p, ok := c.byID[id]
	return p, ok
}

func (c *Catalogue) Label(id ParamID) string {
	if p, ok := c.byID[id]; ok {
		return p.Label
	}
	return string(id)
}

// Group returns the identifiers of a group in catalogue order.
func (c *Catalogue) Group(group string) []ParamID {
	var ids []ParamID
	for _, p := range c.params {
		if p.InGroup(group) {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// Aliases returns every phrase that resolves to id, in scan order.
func (c *Catalogue) Aliases(id ParamID) []string {
	var phrases []string
	for _, a := range c.aliases {
		if a.id == id {
			phrases = append(phrases, a.phrase)
		}
	}
	return phrases
}
