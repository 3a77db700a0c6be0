package mvic

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"miballot-backend/lib/htmlutil"
	"miballot-backend/lib/textutil"

	"github.com/PuerkitoBio/goquery"
)

// Valid reports whether fetched HTML contains an actual ballot. The answer
// is derived strictly from markup content: the site serves a "not available
// at this time" page for unknown (election, precinct) pairs, and every real
// ballot carries a "General Information" block and names its county.
func Valid(html string) bool {
	lower := strings.ToLower(html)
	if strings.Contains(lower, "not available at this time") {
		return false
	}
	return strings.Contains(lower, "general information") ||
		strings.Contains(lower, "county, michigan")
}

type Election struct {
	Name string
	Date time.Time
}

// ParseElection reads the election name and date out of the ballot header
// block.
func ParseElection(doc *goquery.Document) (Election, error) {
	header := doc.Find("#PreviewMvicBallot > div > div > div").First()
	if header.Length() == 0 {
		return Election{}, fmt.Errorf("ballot header is missing")
	}

	text := htmlutil.CleanText(htmlutil.GetText(header.Nodes[0]))
	lines := strings.SplitN(text, "\n", 3)
	if len(lines) < 2 {
		return Election{}, fmt.Errorf("unexpected ballot header: %q", text)
	}

	date, err := time.Parse("Monday, January 2, 2006", strings.TrimSpace(lines[1]))
	if err != nil {
		return Election{}, fmt.Errorf("parse election date: %w", err)
	}

	return Election{
		Name: textutil.Titleize(lines[0]),
		Date: date,
	}, nil
}

type Precinct struct {
	County       string
	Jurisdiction string
	Ward         string
	Number       string
}

var countyRegex = regexp.MustCompile(`(?i)([^>]+) County, Michigan`)

// ordered: the most specific pattern first
var jurisdictionRegexes = []*regexp.Regexp{
	regexp.MustCompile(`([^>]+), Ward (\d+) Precinct (\d+)`),
	regexp.MustCompile(`([^>]+),  Precinct (\d+[A-Z]?)`),
	regexp.MustCompile(`([^>]+), Ward (\d+)`),
}

// ParsePrecinct extracts the precinct identity from raw ballot HTML. The
// ward/number split depends on which of the three known label shapes
// matched; exactly one of the two may come back empty.
func ParsePrecinct(html, url string) (Precinct, error) {
	county := countyRegex.FindStringSubmatch(html)
	if county == nil {
		return Precinct{}, fmt.Errorf("unable to find county name: %s", url)
	}

	for i, re := range jurisdictionRegexes {
		m := re.FindStringSubmatch(html)
		if m == nil {
			continue
		}
		p := Precinct{
			County:       textutil.Titleize(county[1]),
			Jurisdiction: textutil.NormalizeJurisdiction(m[1]),
		}
		switch i {
		case 0:
			p.Ward, p.Number = m[2], m[3]
		case 1:
			p.Number = m[2]
		case 2:
			p.Ward = m[2]
		}
		return p, nil
	}

	return Precinct{}, fmt.Errorf("unable to find precinct information: %s", url)
}
