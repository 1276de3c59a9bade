package prompt

import "strings"

// Marker is the fixed prefix that signals the generation backend to rewrite
// and enrich the prompt before synthesis.
const Marker = "!enhance "

// Enhance prefixes the marker exactly once. Users resubmit translated prompts
// from earlier results as new prompts, so an already marked prompt passes
// through unchanged instead of stacking markers.
func Enhance(p string) string {
	if strings.HasPrefix(p, Marker) {
		return p
	}
	return Marker + p
}
