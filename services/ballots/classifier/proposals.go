package classifier

import (
	"context"
	"log/slog"
	"strings"
	"unicode"

	"miballot-backend/lib/textutil"
)

func isUpper(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}

// proposalParser scans the proposals region. Bodies normally arrive as a
// proposalText node; when the markup omits that label the body is rebuilt
// from untagged sibling divs up to the next title/division/section boundary.
type proposalParser struct {
	ballot *Ballot
	region string

	section  string
	division string
	proposal *Proposal
	// recovered accumulates untagged sibling text for the open proposal
	recovered []string
}

func (p *proposalParser) feed(ctx context.Context, nodes []Node) error {
	for _, node := range nodes {
		var err error
		switch node.Kind {
		case KindSection:
			if err = p.closeProposal(ctx); err != nil {
				return err
			}
			p.section = strings.ToLower(node.Text)
			p.division = ""
		case KindDivision:
			if err = p.closeProposal(ctx); err != nil {
				return err
			}
			err = p.onDivision(node)
		case KindProposalTitle:
			if err = p.closeProposal(ctx); err != nil {
				return err
			}
			err = p.onTitle(ctx, node)
		case KindProposalText:
			err = p.onText(node)
		case KindUnknown:
			if p.proposal != nil && p.proposal.Text == "" && node.Text != "" {
				p.recovered = append(p.recovered, node.Text)
			}
		}
		if err != nil {
			return err
		}
	}
	return p.closeProposal(ctx)
}

func (p *proposalParser) onDivision(node Node) error {
	label := textutil.Titleize(node.Text)
	label = strings.ReplaceAll(label, " Proposals", "")
	label = strings.ReplaceAll(label, " District", "")
	if label == "" || strings.Contains(label, "Continued") {
		return structureErrorf(p.region, "unexpected proposal division: %q", node.Text)
	}
	p.division = label
	return nil
}

func (p *proposalParser) onTitle(ctx context.Context, node Node) error {
	label := strings.TrimSpace(node.Text)
	if isUpper(label) {
		label = textutil.Titleize(label)
	}
	if p.division == "" {
		return structureErrorf(p.region, "division missing for proposal: %q", label)
	}

	proposal := &Proposal{Section: p.section, Division: p.division}
	switch strings.Count(label, "\n") {
	case 0:
		proposal.Title = label
	case 1:
		// a heading split across two lines
		slog.WarnContext(ctx, "newlines in proposal title", "title", label)
		proposal.Title = strings.ReplaceAll(label, "\n", ": ")
	default:
		// the title div swallowed the whole measure text
		slog.WarnContext(ctx, "proposal title contains measure text", "title", label)
		title, text, _ := strings.Cut(label, "\n")
		if isUpper(title) {
			title = textutil.Titleize(title)
		}
		proposal.Title = title
		proposal.Text = strings.TrimSpace(text)
	}

	p.proposal = proposal
	return nil
}

func (p *proposalParser) onText(node Node) error {
	label := strings.TrimSpace(node.Text)
	if p.proposal == nil {
		return structureErrorf(p.region, "proposal missing for text: %q", label)
	}
	if p.proposal.Text == "" {
		p.proposal.Text = label
	} else {
		p.proposal.Text += "\n" + label
	}
	p.proposal.TextRecovered = false
	p.recovered = nil
	return nil
}

func (p *proposalParser) closeProposal(ctx context.Context) error {
	proposal := p.proposal
	recovered := p.recovered
	p.proposal = nil
	p.recovered = nil
	if proposal == nil {
		return nil
	}

	if proposal.Text == "" && len(recovered) > 0 {
		slog.WarnContext(ctx, "recovered proposal text from untagged markup",
			"title", proposal.Title)
		proposal.Text = strings.TrimSpace(strings.Join(recovered, "\n"))
		proposal.TextRecovered = true
	}
	if proposal.Text == "" {
		return structureErrorf(p.region, "text missing for proposal: %q", proposal.Title)
	}

	p.ballot.Proposals = append(p.ballot.Proposals, proposal)
	return nil
}
