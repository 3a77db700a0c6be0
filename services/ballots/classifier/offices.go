package classifier

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"miballot-backend/lib/textutil"
)

// districtHintSuffixes are the term-line shapes known to be district names
// rather than term/seat/incumbency labels. Anything else is an unhandled
// term and fails the ballot.
func isDistrictHint(label string) bool {
	if strings.Contains(label, "WARD") ||
		strings.Contains(label, "DISTRICT") ||
		strings.Contains(label, "COURT") ||
		strings.Contains(label, "COLLEGE") ||
		strings.Contains(label, "Village of ") {
		return true
	}
	for _, suffix := range []string{" SCHOOL", " SCHOOLS", " ISD", " ESA", " COMMUNITY", " LIBRARY"} {
		if strings.HasSuffix(label, suffix) {
			return true
		}
	}
	return false
}

func cleanDivision(text string) string {
	label := textutil.Titleize(text)
	label = strings.ReplaceAll(label, " - Continued", "")
	label = strings.ReplaceAll(label, " District", "")
	return label
}

// officeParser scans one office region left to right. The zero value is not
// usable; both passes construct it with their wrapper-specific settings.
type officeParser struct {
	ballot *Ballot
	region string

	// columnParty is the party implied by a primary column; empty for the
	// general region.
	columnParty string
	// zipParties matches split-ticket layouts where party markers precede
	// grouped candidate pairs: parties collect per office and candidate i
	// takes party i/2 at close.
	zipParties bool

	section    string
	sections   map[string]bool
	hasPrimary bool

	division string
	mobile   string
	office   *Office
	// parties collected for the open office when zipParties is set
	parties []string
}

func (p *officeParser) feed(ctx context.Context, nodes []Node) error {
	for _, node := range nodes {
		var err error
		switch node.Kind {
		case KindSection:
			// primary columns keep their fixed bucket; section banners
			// inside them are decoration
			if p.columnParty == "" {
				err = p.onSection(ctx, node)
			}
		case KindDivision:
			err = p.onDivision(ctx, node)
		case KindOffice:
			err = p.onOffice(ctx, node)
		case KindTerm:
			err = p.onTerm(node)
		case KindCandidate:
			err = p.onCandidate(ctx, node)
		case KindParty:
			err = p.onParty(node)
		case KindFinanceLink:
			err = p.onFinanceLink(node)
		case KindMobileOnly:
			p.onMobileOnly(node)
		}
		if err != nil {
			return err
		}
	}
	p.closeOffice(ctx)
	return nil
}

func (p *officeParser) onSection(ctx context.Context, node Node) error {
	p.closeOffice(ctx)
	label := strings.ToLower(node.Text)
	if p.sections == nil {
		p.sections = map[string]bool{}
	}
	if p.sections[label] {
		slog.WarnContext(ctx, "duplicate section on ballot", "section", label)
	}
	p.sections[label] = true
	p.section = label
	p.division = ""
	p.mobile = ""
	return nil
}

func (p *officeParser) onDivision(ctx context.Context, node Node) error {
	p.closeOffice(ctx)
	label := cleanDivision(node.Text)
	if p.section == "" {
		// a headerless division is only known to happen after the primary
		// region, where it opens the nonpartisan offices
		if !p.hasPrimary {
			return structureErrorf(p.region, "section missing for division: %q", label)
		}
		slog.WarnContext(ctx, "section missing for division", "division", label)
		p.section = "nonpartisan section"
	}
	p.division = label
	p.mobile = ""
	return nil
}

func (p *officeParser) onOffice(ctx context.Context, node Node) error {
	p.closeOffice(ctx)
	label := textutil.NormalizePosition(node.Text)
	if p.division == "" {
		return structureErrorf(p.region, "division missing for office: %q", label)
	}
	p.office = &Office{
		Section:    p.section,
		Division:   p.division,
		MobileOnly: p.mobile,
		Party:      p.columnParty,
		Name:       label,
	}
	return nil
}

func (p *officeParser) onTerm(node Node) error {
	label := node.Text
	if p.office == nil {
		return structureErrorf(p.region, "office missing for term: %q", label)
	}
	switch {
	case strings.Contains(label, "Incumbent"), label == "New Judgeship":
		p.office.Incumbency = label
	case strings.Contains(label, "Term"):
		p.office.Term = label
	case strings.HasPrefix(label, "Vote for"):
		fields := strings.Fields(label)
		seats, err := strconv.Atoi(fields[len(fields)-1])
		if err != nil {
			return structureErrorf(p.region, "unparsable seat count: %q", label)
		}
		p.office.Seats = seats
	case isDistrictHint(label):
		p.office.DistrictHint = textutil.Titleize(label)
	default:
		return structureErrorf(p.region, "unhandled term: %q", label)
	}
	return nil
}

func (p *officeParser) onCandidate(ctx context.Context, node Node) error {
	name := textutil.NormalizeCandidate(node.Text)
	if p.office == nil {
		return structureErrorf(p.region, "office missing for candidate: %q", name)
	}
	if name == "No candidates on ballot" {
		slog.WarnContext(ctx, "no candidates for office",
			"office", p.office.Name, "party", p.columnParty)
		return nil
	}
	p.office.Candidates = append(p.office.Candidates, Candidate{
		Name:  name,
		Party: p.columnParty,
	})
	return nil
}

func (p *officeParser) onParty(node Node) error {
	label := textutil.Titleize(node.Text)
	if p.office == nil {
		return structureErrorf(p.region, "office missing for party: %q", label)
	}
	if label == "" {
		return nil
	}
	if p.zipParties {
		// a party marker with no waiting candidate precedes a grouped
		// candidate pair; collect it and zip at close
		if n := len(p.office.Candidates); n > 0 && p.office.Candidates[n-1].Party == "" {
			p.office.Candidates[n-1].Party = label
		} else {
			p.parties = append(p.parties, label)
		}
		return nil
	}
	if len(p.office.Candidates) == 0 {
		return structureErrorf(p.region, "candidate missing for party: %q", label)
	}
	p.office.Candidates[len(p.office.Candidates)-1].Party = label
	return nil
}

func (p *officeParser) onFinanceLink(node Node) error {
	if node.Href == "" {
		return nil
	}
	if p.office == nil || len(p.office.Candidates) == 0 {
		return structureErrorf(p.region, "candidate missing for finance link: %q", node.Href)
	}
	p.office.Candidates[len(p.office.Candidates)-1].FinanceLink = node.Href
	return nil
}

func (p *officeParser) onMobileOnly(node Node) {
	label := cleanDivision(node.Text)
	p.mobile = label
	if p.office != nil {
		p.office.MobileOnly = label
	}
}

// closeOffice finishes the office under construction: backfills the default
// seat count, drops running-mate lines on paired offices, and zips collected
// parties onto candidates.
func (p *officeParser) closeOffice(ctx context.Context) {
	office := p.office
	p.office = nil
	parties := p.parties
	p.parties = nil
	if office == nil {
		return
	}

	if office.Seats == 0 {
		slog.WarnContext(ctx, "office is missing a seat count", "office", office.Name)
		office.Seats = 1
	}

	kept := office.Candidates[:0]
	paired := strings.Contains(office.Name, " and ")
	for i, candidate := range office.Candidates {
		if paired && i%2 == 1 {
			slog.WarnContext(ctx, "skipped running mate",
				"office", office.Name, "candidate", candidate.Name)
			continue
		}
		if candidate.Party == "" && i/2 < len(parties) {
			candidate.Party = parties[i/2]
		}
		kept = append(kept, candidate)
	}
	office.Candidates = kept

	p.ballot.Offices = append(p.ballot.Offices, office)
}
