package classifier

import (
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func mustDocument(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func wrapBallot(body string) string {
	return `<div id="PreviewMvicBallot"><div><div>
<div>GENERAL ELECTION<br/>Tuesday, November 3, 2026<br/>SOME COUNTY, MICHIGAN</div>
<div>` + body + `</div>
</div></div></div>`
}

func TestParseGeneralOffices(t *testing.T) {
	doc := mustDocument(t, wrapBallot(`
<div id="generalElectionOffices">
  <div class="section">PARTISAN SECTION</div>
  <div class="division">COUNTY</div>
  <div class="office">PROSECUTING ATTORNEY</div>
  <div class="term">4 Year Term</div>
  <div class="term">Vote for not more than 1</div>
  <div class="candidate">JANE DOE</div>
  <div class="party">Democratic</div>
  <div class="financeLink"><a href="https://cfrsearch.example/516">Jane Doe</a></div>
  <div class="candidate">JOHN ROE</div>
  <div class="party">Republican</div>
  <div class="office">SHERIFF</div>
  <div class="term">4 Year Term</div>
  <div class="term">Vote for not more than 1</div>
  <div class="candidate">No candidates on ballot</div>
</div>`))

	ballot, err := Parse(context.Background(), doc)
	require.NoError(t, err)
	require.Empty(t, ballot.Proposals)

	expected := []*Office{
		{
			Section:  "partisan section",
			Division: "County",
			Name:     "Prosecuting Attorney",
			Term:     "4 Year Term",
			Seats:    1,
			Candidates: []Candidate{
				{Name: "Jane Doe", Party: "Democratic", FinanceLink: "https://cfrsearch.example/516"},
				{Name: "John Roe", Party: "Republican"},
			},
		},
		{
			Section:  "partisan section",
			Division: "County",
			Name:     "Sheriff",
			Term:     "4 Year Term",
			Seats:    1,
		},
	}
	diff := cmp.Diff(expected, ballot.Offices)
	require.Empty(t, diff)
}

func TestParseGeneralCandidateAfterNoCandidatesMarker(t *testing.T) {
	doc := mustDocument(t, wrapBallot(`
<div id="generalElectionOffices">
  <div class="section">PARTISAN SECTION</div>
  <div class="division">COUNTY</div>
  <div class="office">DRAIN COMMISSIONER</div>
  <div class="term">4 Year Term</div>
  <div class="term">Vote for not more than 1</div>
  <div class="candidate">No candidates on ballot</div>
  <div class="candidate">JANE DOE</div>
  <div class="party">Democratic</div>
</div>`))

	ballot, err := Parse(context.Background(), doc)
	require.NoError(t, err)
	require.Len(t, ballot.Offices, 1)

	// the marker line is dropped but never closes the candidate list
	expected := []Candidate{{Name: "Jane Doe", Party: "Democratic"}}
	require.Empty(t, cmp.Diff(expected, ballot.Offices[0].Candidates))
}

func TestParseGeneralSeatsDefault(t *testing.T) {
	doc := mustDocument(t, wrapBallot(`
<div id="generalElectionOffices">
  <div class="section">PARTISAN SECTION</div>
  <div class="division">COUNTY</div>
  <div class="office">SURVEYOR</div>
  <div class="term">4 Year Term</div>
  <div class="candidate">JANE DOE</div>
  <div class="party">Democratic</div>
</div>`))

	ballot, err := Parse(context.Background(), doc)
	require.NoError(t, err)
	require.Len(t, ballot.Offices, 1)

	office := ballot.Offices[0]
	require.Equal(t, "Surveyor", office.Name)
	require.Equal(t, 1, office.Seats)
	require.Len(t, office.Candidates, 1)
}

func TestParseGeneralRunningMates(t *testing.T) {
	doc := mustDocument(t, wrapBallot(`
<div id="generalElectionOffices">
  <div class="section">PARTISAN SECTION</div>
  <div class="division">STATE</div>
  <div class="office">GOVERNOR AND LIEUTENANT GOVERNOR</div>
  <div class="term">4 Year Term</div>
  <div class="term">Vote for not more than 1</div>
  <div class="party">Democratic</div>
  <div class="party">Republican</div>
  <div class="candidate">JANE DOE</div>
  <div class="candidate">JOHN SMITH</div>
  <div class="candidate">JOHN ROE</div>
  <div class="candidate">MARY MAJOR</div>
</div>`))

	ballot, err := Parse(context.Background(), doc)
	require.NoError(t, err)
	require.Len(t, ballot.Offices, 1)

	office := ballot.Offices[0]
	require.Equal(t, "Governor and Lieutenant Governor", office.Name)
	expected := []Candidate{
		{Name: "Jane Doe", Party: "Democratic"},
		{Name: "John Roe", Party: "Republican"},
	}
	require.Empty(t, cmp.Diff(expected, office.Candidates))
}

func TestParseGeneralMergedRunningMateLine(t *testing.T) {
	doc := mustDocument(t, wrapBallot(`
<div id="generalElectionOffices">
  <div class="section">PARTISAN SECTION</div>
  <div class="division">STATE</div>
  <div class="office">GOVERNOR</div>
  <div class="term">4 Year Term</div>
  <div class="term">Vote for not more than 1</div>
  <div class="candidate">JANE DOE<br/>JOHN SMITH</div>
  <div class="party">Democratic</div>
  <div class="candidate">JOHN ROE<br/>CITIZENS OF MICHIGAN</div>
  <div class="party">Republican</div>
</div>`))

	ballot, err := Parse(context.Background(), doc)
	require.NoError(t, err)
	require.Len(t, ballot.Offices, 1)

	expected := []Candidate{
		{Name: "Jane Doe & John Smith", Party: "Democratic"},
		{Name: "John Roe", Party: "Republican"},
	}
	require.Empty(t, cmp.Diff(expected, ballot.Offices[0].Candidates))
}

func TestParseGeneralDistrictHint(t *testing.T) {
	doc := mustDocument(t, wrapBallot(`
<div id="generalElectionOffices">
  <div class="section">NONPARTISAN SECTION</div>
  <div class="division">JUDICIAL</div>
  <div class="office">JUDGE OF CIRCUIT COURT</div>
  <div class="term">8TH CIRCUIT COURT</div>
  <div class="term">Incumbent Position</div>
  <div class="term">6 Year Term</div>
  <div class="term">Vote for not more than 2</div>
  <div class="candidate">JANE DOE</div>
</div>`))

	ballot, err := Parse(context.Background(), doc)
	require.NoError(t, err)
	require.Len(t, ballot.Offices, 1)

	office := ballot.Offices[0]
	require.Equal(t, "nonpartisan section", office.Section)
	require.Equal(t, "Judicial", office.Division)
	require.Equal(t, "8th Circuit Court", office.DistrictHint)
	require.Equal(t, "Incumbent Position", office.Incumbency)
	require.Equal(t, "6 Year Term", office.Term)
	require.Equal(t, 2, office.Seats)
}

func TestParsePrimaryColumns(t *testing.T) {
	doc := mustDocument(t, wrapBallot(`
<div id="twoPartyPrimaryElectionOffices">
  <div id="primaryColumnHeading1">DEMOCRATIC PARTY</div>
  <div id="primaryColumnHeading2">REPUBLICAN PARTY</div>
  <div id="columnOnePrimary">
    <div class="division">CONGRESSIONAL</div>
    <div class="office">REPRESENTATIVE IN CONGRESS</div>
    <div class="term">2 Year Term</div>
    <div class="term">Vote for not more than 1</div>
    <div class="candidate">JANE DOE</div>
  </div>
  <div id="columnTwoPrimary">
    <div class="division">CONGRESSIONAL</div>
    <div class="office">REPRESENTATIVE IN CONGRESS</div>
    <div class="term">2 Year Term</div>
    <div class="term">Vote for not more than 1</div>
    <div class="candidate">JOHN ROE</div>
  </div>
</div>`))

	ballot, err := Parse(context.Background(), doc)
	require.NoError(t, err)
	require.Len(t, ballot.Offices, 2)

	for i, party := range []string{"Democratic", "Republican"} {
		office := ballot.Offices[i]
		require.Equal(t, "primary section", office.Section)
		require.Equal(t, "Representative in Congress", office.Name)
		require.Equal(t, party, office.Party)
		require.Len(t, office.Candidates, 1)
		require.Equal(t, party, office.Candidates[0].Party)
	}
}

func TestParsePrimaryBadHeading(t *testing.T) {
	doc := mustDocument(t, wrapBallot(`
<div id="twoPartyPrimaryElectionOffices">
  <div id="primaryColumnHeading1">GREEN PARTY</div>
  <div id="primaryColumnHeading2">REPUBLICAN PARTY</div>
</div>`))

	_, err := Parse(context.Background(), doc)
	var structural *StructureError
	require.ErrorAs(t, err, &structural)
}

func TestParseProposals(t *testing.T) {
	doc := mustDocument(t, wrapBallot(`
<div id="proposals">
  <div class="section">PROPOSAL SECTION</div>
  <div class="division">COUNTY PROPOSALS</div>
  <div class="proposalTitle">SENIOR CITIZEN SERVICES MILLAGE</div>
  <div class="proposalText">Shall Some County levy 0.5 mill to fund services?</div>
  <div class="division">AUTHORITY PROPOSALS</div>
  <div class="proposalTitle">DISTRICT LIBRARY MILLAGE RENEWAL</div>
  <div>Shall the Example District Library renew its millage,</div>
  <div>previously authorized in 2020?</div>
</div>`))

	ballot, err := Parse(context.Background(), doc)
	require.NoError(t, err)

	expected := []*Proposal{
		{
			Section:  "proposal section",
			Division: "County",
			Title:    "Senior Citizen Services Millage",
			Text:     "Shall Some County levy 0.5 mill to fund services?",
		},
		{
			Section:       "proposal section",
			Division:      "Authority",
			Title:         "District Library Millage Renewal",
			Text:          "Shall the Example District Library renew its millage,\npreviously authorized in 2020?",
			TextRecovered: true,
		},
	}
	require.Empty(t, cmp.Diff(expected, ballot.Proposals))
}

func TestParseProposalTitleContainsText(t *testing.T) {
	doc := mustDocument(t, wrapBallot(`
<div id="proposals">
  <div class="section">PROPOSAL SECTION</div>
  <div class="division">CITY PROPOSALS</div>
  <div class="proposalTitle">CHARTER AMENDMENT
Shall the charter be amended
to allow the thing?</div>
</div>`))

	ballot, err := Parse(context.Background(), doc)
	require.NoError(t, err)
	require.Len(t, ballot.Proposals, 1)

	proposal := ballot.Proposals[0]
	require.Equal(t, "Charter Amendment", proposal.Title)
	require.Equal(t, "Shall the charter be amended\nto allow the thing?", proposal.Text)
	require.False(t, proposal.TextRecovered)
}

func TestParseStructureErrors(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{
			name: "office without division",
			body: `<div id="generalElectionOffices">
  <div class="section">PARTISAN SECTION</div>
  <div class="office">SHERIFF</div>
</div>`,
		},
		{
			name: "term without office",
			body: `<div id="generalElectionOffices">
  <div class="section">PARTISAN SECTION</div>
  <div class="division">COUNTY</div>
  <div class="term">4 Year Term</div>
</div>`,
		},
		{
			name: "unhandled term",
			body: `<div id="generalElectionOffices">
  <div class="section">PARTISAN SECTION</div>
  <div class="division">COUNTY</div>
  <div class="office">SHERIFF</div>
  <div class="term">SOMETHING UNRECOGNIZABLE</div>
</div>`,
		},
		{
			name: "proposal text without proposal",
			body: `<div id="proposals">
  <div class="section">PROPOSAL SECTION</div>
  <div class="division">COUNTY PROPOSALS</div>
  <div class="proposalText">Shall the thing happen?</div>
</div>`,
		},
		{
			name: "proposal without any text",
			body: `<div id="proposals">
  <div class="section">PROPOSAL SECTION</div>
  <div class="division">COUNTY PROPOSALS</div>
  <div class="proposalTitle">SOME MILLAGE</div>
</div>`,
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			doc := mustDocument(t, wrapBallot(test.body))
			_, err := Parse(context.Background(), doc)
			var structural *StructureError
			require.ErrorAs(t, err, &structural)
		})
	}
}

func TestParseMissingWrapper(t *testing.T) {
	doc := mustDocument(t, `<div><p>nothing here</p></div>`)
	_, err := Parse(context.Background(), doc)
	var structural *StructureError
	require.ErrorAs(t, err, &structural)
}

func TestOrphanDivisionAfterPrimary(t *testing.T) {
	doc := mustDocument(t, wrapBallot(`
<div id="twoPartyPrimaryElectionOffices">
  <div id="primaryColumnHeading1">DEMOCRATIC PARTY</div>
  <div id="primaryColumnHeading2">REPUBLICAN PARTY</div>
  <div id="columnOnePrimary"></div>
  <div id="columnTwoPrimary"></div>
</div>
<div id="generalElectionOffices">
  <div class="division">JUDICIAL</div>
  <div class="office">JUDGE OF PROBATE COURT</div>
  <div class="term">PROBATE DISTRICT COURT</div>
  <div class="term">6 Year Term</div>
  <div class="term">Vote for not more than 1</div>
  <div class="candidate">JANE DOE</div>
</div>`))

	ballot, err := Parse(context.Background(), doc)
	require.NoError(t, err)
	require.Len(t, ballot.Offices, 1)
	require.Equal(t, "nonpartisan section", ballot.Offices[0].Section)
}
