// Package districts resolves the (category, district) pair for classified
// ballot items. Resolution is a pure heuristic ladder over the office or
// proposal fields plus the precinct identity; it touches no storage.
package districts

import (
	"fmt"
	"strings"

	"miballot-backend/services/ballots/mvic"

	"github.com/antzucaro/matchr"
)

// KnownCategories is the closed set of district categories ballots are known
// to reference. Seeding creates a row per entry.
var KnownCategories = []string{
	"State",
	// precinct hierarchy
	"County",
	"Jurisdiction",
	"Ward",
	"Precinct",
	// local bodies
	"School",
	"Local School",
	"Intermediate School",
	"Community College",
	"Library",
	"District Library",
	// municipalities
	"City",
	"Township",
	"Village",
	"Metropolitan",
	"Authority",
	// legislative
	"County Commissioner",
	"State House",
	"State Senate",
	"US Congress",
	// courts
	"Court of Appeals",
	"Circuit Court",
	"Probate Court",
	"Probate District Court",
	"District Court",
	"Municipal Court",
}

var knownCategorySet = func() map[string]bool {
	set := make(map[string]bool, len(KnownCategories))
	for _, name := range KnownCategories {
		set[name] = true
	}
	return set
}()

// ResolveError is a fatal resolution failure: a category or district that no
// heuristic could place. Suggestion carries the nearest known category by
// edit distance to speed up triage.
type ResolveError struct {
	Kind       string
	Label      string
	Suggestion string
}

func (e *ResolveError) Error() string {
	msg := fmt.Sprintf("unable to resolve %s: %q", e.Kind, e.Label)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (closest known category: %q)", e.Suggestion)
	}
	return msg
}

func resolveErrorf(kind, label string) *ResolveError {
	return &ResolveError{Kind: kind, Label: label, Suggestion: nearestCategory(label)}
}

func nearestCategory(label string) string {
	best := ""
	bestDistance := -1
	for _, name := range KnownCategories {
		d := matchr.Levenshtein(strings.ToLower(label), strings.ToLower(name))
		if bestDistance < 0 || d < bestDistance {
			best, bestDistance = name, d
		}
	}
	return best
}

// Resolution names the district an office or proposal belongs to.
// PrecinctScoped marks precinct-level items, which store no district row at
// all; CreatedFallback marks district names taken verbatim from ballot text,
// which indicate unseeded data and deserve a second look.
type Resolution struct {
	Category        string
	District        string
	PrecinctScoped  bool
	CreatedFallback bool
}

// CountyDistrictLabel names a county commissioner district, scoped by county
// because commissioner district numbers repeat across counties.
func CountyDistrictLabel(precinct mvic.Precinct, district string) string {
	return fmt.Sprintf("%s County, %s", precinct.County, district)
}

// WardLabel names a ward district for the precinct, falling back to a
// district hint or the precinct number where the jurisdiction has no wards.
func WardLabel(precinct mvic.Precinct, hint string) string {
	if precinct.Ward != "" {
		return fmt.Sprintf("%s, Ward %s", precinct.Jurisdiction, precinct.Ward)
	}
	if hint != "" && strings.Contains(hint, "Ward") {
		return fmt.Sprintf("%s, %s", precinct.Jurisdiction, hint)
	}
	return fmt.Sprintf("%s, Precinct %s", precinct.Jurisdiction, precinct.Number)
}

// PrecinctLabel names the precinct itself, for precinct-scoped offices.
func PrecinctLabel(precinct mvic.Precinct) string {
	var wardPrecinct string
	switch {
	case precinct.Ward != "" && precinct.Number != "":
		wardPrecinct = fmt.Sprintf("Ward %s, Precinct %s", precinct.Ward, precinct.Number)
	case precinct.Ward != "":
		wardPrecinct = "Ward " + precinct.Ward
	default:
		wardPrecinct = "Precinct " + precinct.Number
	}
	return fmt.Sprintf("%s, %s", precinct.Jurisdiction, wardPrecinct)
}
