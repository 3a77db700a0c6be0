package classifier

import (
	"context"
	"strings"

	"miballot-backend/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/ballots/classifier")

// Parse classifies a full sample-ballot document into offices and proposals.
// Any of the three ballot regions may be absent; a missing ballot wrapper or
// a node sequence violating the markup grammar fails the whole ballot with a
// StructureError.
func Parse(ctx context.Context, doc *goquery.Document) (*Ballot, error) {
	ctx, span := tracer.Start(ctx, "classifier.Parse")
	defer span.End()

	if doc.Find("#PreviewMvicBallot").Length() == 0 {
		err := structureErrorf("ballot", "missing #PreviewMvicBallot wrapper")
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	ballot := &Ballot{}
	hasPrimary, err := parsePrimary(ctx, doc, ballot)
	if err == nil {
		err = parseGeneral(ctx, doc, ballot, hasPrimary)
	}
	if err == nil {
		err = parseProposals(ctx, doc, ballot)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("offices", len(ballot.Offices)),
		attribute.Int("proposals", len(ballot.Proposals)),
	)
	return ballot, nil
}

func headingText(doc *goquery.Document, id string) string {
	sel := doc.Find("#" + id)
	if sel.Length() == 0 {
		return ""
	}
	return strings.TrimSpace(htmlutil.CleanText(htmlutil.GetText(sel.Nodes[0])))
}

// parsePrimary reads the two party columns of a primary ballot. The column
// order is fixed by the site and asserted before trusting it, since it
// decides every candidate's implied party.
func parsePrimary(ctx context.Context, doc *goquery.Document, ballot *Ballot) (bool, error) {
	region := doc.Find("#twoPartyPrimaryElectionOffices")
	if region.Length() == 0 {
		return false, nil
	}

	if h := headingText(doc, "primaryColumnHeading1"); h != "DEMOCRATIC PARTY" {
		return false, structureErrorf("primary", "unexpected first column heading: %q", h)
	}
	if h := headingText(doc, "primaryColumnHeading2"); h != "REPUBLICAN PARTY" {
		return false, structureErrorf("primary", "unexpected second column heading: %q", h)
	}

	columns := []struct {
		id    string
		party string
	}{
		{"columnOnePrimary", "Democratic"},
		{"columnTwoPrimary", "Republican"},
	}
	for _, column := range columns {
		sel := doc.Find("#" + column.id)
		if sel.Length() == 0 {
			continue
		}
		parser := &officeParser{
			ballot:      ballot,
			region:      "primary",
			columnParty: column.party,
			section:     "primary section",
		}
		if err := parser.feed(ctx, CollectNodes(sel)); err != nil {
			return true, err
		}
	}
	return true, nil
}

// parseGeneral reads the shared partisan/nonpartisan office wrapper of a
// general election ballot.
func parseGeneral(ctx context.Context, doc *goquery.Document, ballot *Ballot, hasPrimary bool) error {
	region := doc.Find("#generalElectionOffices")
	if region.Length() == 0 {
		return nil
	}
	parser := &officeParser{
		ballot:     ballot,
		region:     "general",
		zipParties: true,
		hasPrimary: hasPrimary,
	}
	return parser.feed(ctx, CollectNodes(region))
}

func parseProposals(ctx context.Context, doc *goquery.Document, ballot *Ballot) error {
	region := doc.Find("#proposals")
	if region.Length() == 0 {
		return nil
	}
	parser := &proposalParser{ballot: ballot, region: "proposals"}
	return parser.feed(ctx, CollectNodes(region))
}
