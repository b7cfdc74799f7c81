package plate

import (
	"errors"
	"regexp"
	"strings"
)

// ErrNoMatch is returned when no plate grammar matches the fragments.
var ErrNoMatch = errors.New("license plate pattern not found")

// Grammar is one recognised plate layout.
type Grammar struct {
	Name    string
	spaced  *regexp.Regexp
	compact *regexp.Regexp
}

// newGrammar compiles a grammar from a pattern whose parts may be separated
// by `\s*`. The compact form drops those separators.
func newGrammar(name, pattern string) Grammar {
	return Grammar{
		Name:    name,
		spaced:  regexp.MustCompile(pattern),
		compact: regexp.MustCompile(strings.ReplaceAll(pattern, `\s*`, "")),
	}
}

// Grammars lists the plate layouts in priority order.
var Grammars = []Grammar{
	newGrammar("standard", `(\d{2,3})\s*([가-힣])\s*(\d{4})`),
	newGrammar("regional", `([가-힣]{2})\s*(\d{2})\s*([가-힣])\s*(\d{4})`),
	newGrammar("commercial", `(\d{2})\s*([가-힣]{2})\s*(\d{4})`),
}

// PlateMatch is a successful extraction.
type PlateMatch struct {
	Text         string `json:"plateNumber"`
	PatternIndex int    `json:"patternIndex"` // index into Grammars
	Grammar      string `json:"grammar"`
	Compact      bool   `json:"compact"` // matched only after whitespace removal
}

// Extract finds the canonical plate number in fragments.
//
// The boolean is false when no grammar matches either the space-joined or
// the whitespace-free form. Extract is pure: the same fragments always give
// the same result.
func Extract(fragments []string) (PlateMatch, bool) {
	combined := strings.Join(fragments, " ")
	compact := stripSpace(combined)

	for i, g := range Grammars {
		if loc := g.spaced.FindStringSubmatchIndex(combined); loc != nil {
			return widen(combined, i, loc, false), true
		}
		if loc := g.compact.FindStringSubmatchIndex(compact); loc != nil {
			return widen(compact, i, loc, true), true
		}
	}
	return PlateMatch{}, false
}

// widen builds the match for grammar i, letting a lower-priority grammar take
// over when its match on the same text strictly contains this one. A regional
// plate "서울12가1234" contains a standard plate "12가1234".
func widen(s string, i int, loc []int, compact bool) PlateMatch {
	best, bestLoc := i, loc
	for j := i + 1; j < len(Grammars); j++ {
		re := Grammars[j].spaced
		if compact {
			re = Grammars[j].compact
		}
		for _, l := range re.FindAllStringSubmatchIndex(s, -1) {
			if l[0] <= bestLoc[0] && l[1] >= bestLoc[1] && l[1]-l[0] > bestLoc[1]-bestLoc[0] {
				best, bestLoc = j, l
			}
		}
	}
	return PlateMatch{
		Text:         captured(s, bestLoc),
		PatternIndex: best,
		Grammar:      Grammars[best].Name,
		Compact:      compact,
	}
}

// ExtractText returns the canonical plate number or nil.
func ExtractText(fragments []string) *string {
	m, ok := Extract(fragments)
	if !ok {
		return nil
	}
	return &m.Text
}

// ExtractErr is Extract with ErrNoMatch in place of the boolean.
func ExtractErr(fragments []string) (PlateMatch, error) {
	m, ok := Extract(fragments)
	if !ok {
		return PlateMatch{}, ErrNoMatch
	}
	return m, nil
}

// captured concatenates the submatches recorded in loc.
func captured(s string, loc []int) string {
	var b strings.Builder
	for k := 2; k+1 < len(loc); k += 2 {
		if loc[k] >= 0 {
			b.WriteString(s[loc[k]:loc[k+1]])
		}
	}
	return b.String()
}

// spaceRemover deletes the separators OCR inserts between tokens. Other
// whitespace such as tabs is kept and so still breaks a match.
var spaceRemover = strings.NewReplacer(" ", "", "\n", "")

func stripSpace(s string) string {
	return spaceRemover.Replace(s)
}
