// Package textutil holds the pure text-normalization rules for MVIC ballot
// content: title casing, candidate and running-mate names, jurisdiction and
// district cleanup. Everything here is deterministic and I/O-free.
package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// fixups applied after capwords; MVIC headers arrive in all caps so plain
// title casing mangles abbreviations and mid-phrase particles.
var titleizeReplacer = strings.NewReplacer(
	" Of ", " of ",
	" To ", " to ",
	" And ", " and ",
	" In ", " in ",
	" By ", " by ",
	" At ", " at ",
	" The ", " the ",
	"U.s.", "U.S.",
	"Iii.", "III.",
	"Ii.", "II.",
	"Iv.", "IV.",
	"(d", "(D",
	"(l", "(L",
	"(r", "(R",
	"Vice-president", "Vice-President",
)

// capword mimics Python's str.capitalize: first character uppercased when it
// is a letter, the rest lowercased.
func capword(w string) string {
	if w == "" {
		return w
	}
	runes := []rune(strings.ToLower(w))
	if runes[0] >= 'a' && runes[0] <= 'z' {
		runes[0] = runes[0] - 'a' + 'A'
	}
	return string(runes)
}

// Titleize title-cases ballot text with the MVIC exception table. It is
// idempotent: Titleize(Titleize(s)) == Titleize(s).
func Titleize(text string) string {
	words := strings.Fields(text)
	for i, w := range words {
		words[i] = capword(w)
	}
	return strings.TrimSpace(titleizeReplacer.Replace(strings.Join(words, " ")))
}

// name particles that stay lowercase inside a person's name
var nameParticles = map[string]bool{
	"van": true, "von": true, "de": true, "der": true, "la": true, "di": true,
}

// generational suffixes that keep their own casing
var nameSuffixes = map[string]string{
	"jr": "Jr.", "jr.": "Jr.", "sr": "Sr.", "sr.": "Sr.",
	"ii": "II", "iii": "III", "iv": "IV",
}

func capitalizeNameWord(w string) string {
	lower := strings.ToLower(w)
	if fixed, ok := nameSuffixes[lower]; ok {
		return fixed
	}
	if nameParticles[lower] {
		return lower
	}
	// hyphenated and apostrophe'd names capitalize each segment
	for _, sep := range []string{"-", "'"} {
		if strings.Contains(lower, sep) && !strings.HasSuffix(lower, sep) {
			parts := strings.Split(lower, sep)
			for i, p := range parts {
				parts[i] = capword(p)
			}
			return strings.Join(parts, sep)
		}
	}
	if strings.HasPrefix(lower, "mc") && len(lower) > 2 {
		return "Mc" + capword(lower[2:])
	}
	return capword(lower)
}

func capitalizeName(text string) string {
	text = strings.TrimSpace(whitespaceRegex.ReplaceAllString(text, " "))
	if text == "" {
		return ""
	}
	// already mixed case: trust the source
	if text != strings.ToUpper(text) && text != strings.ToLower(text) {
		return text
	}
	words := strings.Split(text, " ")
	for i, w := range words {
		words[i] = capitalizeNameWord(w)
	}
	return strings.Join(words, " ")
}

// NormalizeCandidate cleans a candidate name. Two-line input denotes a
// running-mate pair joined as "First & Second"; a second line containing
// " of " is an organizational affiliation, not a person, and is dropped.
func NormalizeCandidate(text string) string {
	text = strings.TrimSpace(text)
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		first := capitalizeName(text[:i])
		second := capitalizeName(text[i+1:])
		if strings.Contains(second, " of ") || strings.Contains(second, " Of ") {
			return first
		}
		return first + " & " + second
	}
	return capitalizeName(text)
}

// NormalizePosition canonicalizes an office name: title casing, then any
// parenthetical or dash-delimited qualifier stripped, then known
// multi-variant titles collapsed.
func NormalizePosition(text string) string {
	name := Titleize(text)
	if i := strings.Index(name, " ("); i >= 0 {
		name = name[:i]
	}
	if i := strings.Index(name, " - "); i >= 0 {
		name = name[:i]
	}
	if strings.HasPrefix(name, "Alderman") {
		name = "Alderman"
	}
	return strings.TrimSpace(name)
}

var jurisdictionKinds = []string{"City", "Township", "Village"}

// NormalizeJurisdiction converts MVIC jurisdiction labels into the
// "Kind of Name" form and strips the "Charter" qualifier.
func NormalizeJurisdiction(name string) string {
	name = Titleize(name)

	for _, kind := range jurisdictionKinds {
		if strings.HasPrefix(name, kind) {
			return strings.ReplaceAll(name, " Charter", "")
		}
	}
	for _, kind := range jurisdictionKinds {
		if strings.HasSuffix(name, " "+kind) {
			name = kind + " of " + name[:len(name)-len(kind)-1]
			return strings.ReplaceAll(name, " Charter", "")
		}
	}
	return name
}

// CleanDistrictCategory reduces a district label to its category name,
// e.g. "Judge of District Court District" -> "District Court".
func CleanDistrictCategory(text string) string {
	words := strings.Fields(strings.ReplaceAll(text, "Judge of ", ""))
	for len(words) > 0 && words[len(words)-1] == "District" {
		words = words[:len(words)-1]
	}
	return strings.Join(words, " ")
}

// CleanDistrictName fixes artifacts the MVIC markup leaves in district names.
func CleanDistrictName(text string) string {
	text = strings.ReplaceAll(text, "District District", "District")
	text = strings.ReplaceAll(text, "Isd", "ISD")
	return strings.TrimSpace(text)
}
