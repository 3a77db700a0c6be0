package districts

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"miballot-backend/lib/textutil"
	"miballot-backend/services/ballots/classifier"
	"miballot-backend/services/ballots/mvic"
)

// categoryAliases lists the phrasings a district name may end with inside a
// measure's text, most specific first. Ballot text rarely names the category
// the way the seed data does.
var categoryAliases = map[string][]string{
	"District Library": {
		"District Library",
		"Public Library",
		"Community Library",
		"Library District",
		"Library",
	},
	"Community College": {
		"Community College",
		"College",
	},
	"Local School": {
		"Local School",
		"Public Schools",
		"Area Schools",
		"Area School District",
		"Public School",
		"Community Schools",
		"Community School District",
		"Community School",
		"Consolidated Schools District",
		"Consolidated School",
		"School District",
		"Area School System",
		"Rural Agricultural School",
		"S/D",
		"Schools",
		"District",
		"School",
	},
	"Intermediate School": {
		"Intermediate School",
		"Regional Education Service Agency",
		"Regional Educational Service Agency",
		"Regional Education Service",
		"Area Educational Service Agency",
		"Educational Service",
	},
}

// districtFromText scans a measure's text for a capitalized run ending in
// one of the category's aliases, e.g. "... of the Kent District Library ...".
func districtFromText(category, text string) (string, bool) {
	aliases, ok := categoryAliases[category]
	if !ok {
		aliases = []string{category}
	}
	for _, alias := range aliases {
		quoted := regexp.QuoteMeta(alias)
		patterns := []*regexp.Regexp{
			regexp.MustCompile(`[a-z] ((?:[A-Z][A-Za-z.-]+ )+` + quoted + `)`),
			regexp.MustCompile(`\n((?:[A-Z][A-Za-z.-]+ )+` + quoted + `)`),
		}
		for _, pattern := range patterns {
			for _, match := range pattern.FindAllStringSubmatch(text, -1) {
				name := strings.TrimSpace(match[1])
				if len(name) < 100 {
					return name, true
				}
			}
		}
	}
	return "", false
}

// ResolveProposal determines the (category, district) pair for a classified
// proposal. The division header supplies the category when present;
// otherwise it is inherited from the previous proposal on the same ballot.
// District names that cannot be implied by the category are extracted from
// the measure's own text.
func ResolveProposal(ctx context.Context, proposal *classifier.Proposal, precinct mvic.Precinct, prev *Resolution) (Resolution, error) {
	category := ""
	if proposal.Division != "" {
		category = textutil.CleanDistrictCategory(proposal.Division)
		if !knownCategorySet[category] {
			return Resolution{}, resolveErrorf("proposal category", proposal.Division)
		}
	} else if prev != nil {
		slog.WarnContext(ctx, "reusing category from previous proposal",
			"category", prev.Category)
		category = prev.Category
	} else {
		return Resolution{}, resolveErrorf("proposal category", proposal.Title)
	}

	resolution := Resolution{Category: category}
	switch category {
	case "State":
		resolution.District = "Michigan"
	case "County":
		resolution.District = precinct.County
	case "City", "Township", "Village", "Jurisdiction", "Authority", "Metropolitan":
		resolution.District = precinct.Jurisdiction
	case "Ward":
		resolution.District = WardLabel(precinct, "")
	default:
		name, ok := districtFromText(category, proposal.Text)
		if !ok {
			switch {
			case strings.Contains(proposal.Text, precinct.Jurisdiction):
				slog.WarnContext(ctx, "assuming proposal district is jurisdiction",
					"title", proposal.Title)
				resolution.Category = "Jurisdiction"
				resolution.District = precinct.Jurisdiction
				return resolution, nil
			case strings.Contains(proposal.Text, precinct.County):
				slog.WarnContext(ctx, "assuming proposal district is county",
					"title", proposal.Title)
				resolution.Category = "County"
				resolution.District = precinct.County
				return resolution, nil
			}
			return Resolution{}, resolveErrorf("proposal district", proposal.Title)
		}
		resolution.District = textutil.CleanDistrictName(name)
		resolution.CreatedFallback = true
	}
	return resolution, nil
}
