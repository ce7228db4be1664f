package nlp

import "strings"

// Resolver maps free text to parameter identifiers using the catalogue's
// alias table.
type Resolver struct {
	catalogue *Catalogue
}

func NewResolver(catalogue *Catalogue) *Resolver {
	return &Resolver{catalogue: catalogue}
}

// Resolve returns the identifiers whose aliases occur in query. The result
// follows the longest-phrase-first scan order, not the order of appearance
// in the text, and holds each identifier at most once.
func (r *Resolver) Resolve(query string) []ParamID {
	text := Normalize(query)
	if text == "" {
		return nil
	}

	var ids []ParamID
	seen := make(map[ParamID]bool)
	for _, a := range r.catalogue.aliases {
		if seen[a.id] || !strings.Contains(text, a.phrase) {
			continue
		}
		seen[a.id] = true
		ids = append(ids, a.id)
	}

	return ids
}

// Strip blanks out every alias phrase found in normalised text, longest
// first, so words inside a parameter name ("line" in "flow line pressure")
// are not read as other vocabulary.
func (r *Resolver) Strip(text string) string {
	for _, a := range r.catalogue.aliases {
		if strings.Contains(text, a.phrase) {
			text = strings.ReplaceAll(text, a.phrase, " ")
		}
	}
	return strings.Join(strings.Fields(text), " ")
}
