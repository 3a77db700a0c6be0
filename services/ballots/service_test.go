package ballots

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"miballot-backend/lib/testutil"
	"miballot-backend/services/ballots/db"
	"miballot-backend/services/ballots/mvic"

	"github.com/stretchr/testify/require"
)

const unavailableHtml = `<html><body>
Your ballot is not available at this time. Please check back later.
</body></html>`

const generalBallotHtml = `<html><body>
<div id="PreviewMvicBallot"><div><div>
<div>GENERAL ELECTION<br/>Tuesday, November 3, 2026<br/>KENT COUNTY, MICHIGAN<br/>City of Grand Rapids, Ward 1 Precinct 9</div>
<div>
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
</div>
<div id="proposals">
  <div class="section">PROPOSAL SECTION</div>
  <div class="division">COUNTY PROPOSALS</div>
  <div class="proposalTitle">SENIOR CITIZEN SERVICES MILLAGE</div>
  <div class="proposalText">Shall Kent County levy 0.5 mill to fund senior services?</div>
</div>
</div>
</div></div></div>
</body></html>`

const primaryBallotHtml = `<html><body>
<div id="PreviewMvicBallot"><div><div>
<div>AUGUST PRIMARY ELECTION<br/>Tuesday, August 4, 2026<br/>KENT COUNTY, MICHIGAN<br/>City of Grand Rapids, Ward 1 Precinct 9</div>
<div>
<div id="twoPartyPrimaryElectionOffices">
  <div id="primaryColumnHeading1">DEMOCRATIC PARTY</div>
  <div id="primaryColumnHeading2">REPUBLICAN PARTY</div>
  <div id="columnOnePrimary">
    <div class="division">DELEGATE</div>
    <div class="office">DELEGATE TO COUNTY CONVENTION</div>
    <div class="term">Vote for not more than 1</div>
    <div class="candidate">JANE DOE</div>
  </div>
  <div id="columnTwoPrimary">
    <div class="division">DELEGATE</div>
    <div class="office">DELEGATE TO COUNTY CONVENTION</div>
    <div class="term">Vote for not more than 1</div>
    <div class="candidate">JOHN ROE</div>
  </div>
</div>
</div>
</div></div></div>
</body></html>`

func setupService(t *testing.T, handler http.Handler) (Service, func()) {
	result, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "ballots",
		DbSchema: db.Schema,
	})

	baseUrl := mvic.DefaultBaseUrl
	var serverCleanup func()
	if handler != nil {
		server := httptest.NewServer(handler)
		baseUrl = server.URL
		serverCleanup = server.Close
	}

	client, err := mvic.NewClient(mvic.ClientOptions{BaseUrl: baseUrl})
	require.NoError(t, err)

	service := NewService(result.DB, client)
	require.NoError(t, service.Seed(context.Background()))

	return service, func() {
		if serverCleanup != nil {
			serverCleanup()
		}
		cleanup()
	}
}

func storeWebsite(t *testing.T, service Service, electionID, precinctID int64, html string) db.BallotWebsite {
	ctx := context.Background()
	err := service.qry.CreateBallotWebsite(ctx, db.CreateBallotWebsiteParams{
		MvicElectionID: electionID,
		MvicPrecinctID: precinctID,
	})
	require.NoError(t, err)
	website, err := service.qry.GetBallotWebsite(ctx, db.GetBallotWebsiteParams{
		MvicElectionID: electionID,
		MvicPrecinctID: precinctID,
	})
	require.NoError(t, err)

	err = service.qry.UpdateBallotWebsiteFetch(ctx, db.UpdateBallotWebsiteFetchParams{
		MvicHtml:  html,
		LastFetch: sql.NullInt64{Int64: time.Now().Unix(), Valid: true},
		ID:        website.ID,
	})
	require.NoError(t, err)
	website, err = service.qry.GetBallotWebsite(ctx, db.GetBallotWebsiteParams{
		MvicElectionID: electionID,
		MvicPrecinctID: precinctID,
	})
	require.NoError(t, err)

	valid, err := service.ValidateWebsite(ctx, website)
	require.NoError(t, err)
	require.Equal(t, mvic.Valid(html), valid)

	website, err = service.qry.GetBallotWebsite(ctx, db.GetBallotWebsiteParams{
		MvicElectionID: electionID,
		MvicPrecinctID: precinctID,
	})
	require.NoError(t, err)
	return website
}

func TestSeedIdempotent(t *testing.T) {
	service, cleanup := setupService(t, nil)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, service.Seed(ctx))

	parties, err := service.qry.ListParties(ctx)
	require.NoError(t, err)
	require.Len(t, parties, len(defaultParties))

	categories, err := service.qry.ListDistrictCategories(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, categories)

	state, err := service.qry.GetDistrictCategory(ctx, "State")
	require.NoError(t, err)
	_, err = service.qry.GetDistrict(ctx, db.GetDistrictParams{
		CategoryID: state.ID,
		Name:       "Michigan",
	})
	require.NoError(t, err)
}

func TestParseWebsiteIdempotent(t *testing.T) {
	service, cleanup := setupService(t, nil)
	defer cleanup()
	ctx := context.Background()

	website := storeWebsite(t, service, 690, 1828, generalBallotHtml)

	count, err := service.ParseWebsite(ctx, website)
	require.NoError(t, err)
	// 2 positions, 2 candidates, 1 proposal
	require.Equal(t, 5, count)

	election, err := service.qry.GetElectionByMvicID(ctx, 690)
	require.NoError(t, err)
	require.Equal(t, "General Election", election.Name)
	require.Equal(t, "2026-11-03", election.Date)

	again, err := service.ParseWebsite(ctx, website)
	require.NoError(t, err)
	require.Equal(t, count, again)

	positions, err := service.qry.CountPositions(ctx, election.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), positions)
	candidates, err := service.qry.CountCandidates(ctx, election.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), candidates)
	proposals, err := service.qry.CountProposals(ctx, election.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), proposals)
}

func TestParseWebsiteRecords(t *testing.T) {
	service, cleanup := setupService(t, nil)
	defer cleanup()
	ctx := context.Background()

	website := storeWebsite(t, service, 690, 1828, generalBallotHtml)
	_, err := service.ParseWebsite(ctx, website)
	require.NoError(t, err)

	election, err := service.qry.GetElectionByMvicID(ctx, 690)
	require.NoError(t, err)

	rows, err := service.qry.ListPositions(ctx, election.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "Prosecuting Attorney", rows[0].Position.Name)
	require.Equal(t, "4 Year Term", rows[0].Position.Term)
	require.Equal(t, "Kent", rows[0].DistrictName.String)

	candidates, err := service.qry.ListCandidates(ctx, rows[0].Position.ID)
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	require.Equal(t, "Jane Doe", candidates[0].Candidate.Name)
	require.Equal(t, "Democratic", candidates[0].PartyName.String)
	require.Equal(t, "https://cfrsearch.example/516", candidates[0].Candidate.ReferenceUrl.String)

	proposals, err := service.qry.ListProposals(ctx, election.ID)
	require.NoError(t, err)
	require.Len(t, proposals, 1)
	require.Equal(t, "Senior Citizen Services Millage", proposals[0].Proposal.Name)
	require.Equal(t, "Kent", proposals[0].DistrictName)
}

func TestInvalidBallotProducesNoRecords(t *testing.T) {
	service, cleanup := setupService(t, nil)
	defer cleanup()
	ctx := context.Background()

	website := storeWebsite(t, service, 690, 9999, unavailableHtml)
	require.True(t, website.Valid.Valid)
	require.False(t, website.Valid.Bool)

	_, err := service.ParseWebsite(ctx, website)
	require.Error(t, err)

	_, err = service.qry.GetElectionByMvicID(ctx, 690)
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestPrimaryPrecinctScopedPositions(t *testing.T) {
	service, cleanup := setupService(t, nil)
	defer cleanup()
	ctx := context.Background()

	website := storeWebsite(t, service, 689, 1828, primaryBallotHtml)
	count, err := service.ParseWebsite(ctx, website)
	require.NoError(t, err)
	// 2 positions + 2 candidates
	require.Equal(t, 4, count)

	election, err := service.qry.GetElectionByMvicID(ctx, 689)
	require.NoError(t, err)

	rows, err := service.qry.ListPositions(ctx, election.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	var names []string
	for _, row := range rows {
		require.False(t, row.Position.DistrictID.Valid)
		names = append(names, row.Position.Name)
	}
	require.Contains(t, names,
		"Delegate to County Convention (Democratic | City of Grand Rapids, Ward 1, Precinct 9)")
	require.Contains(t, names,
		"Delegate to County Convention (Republican | City of Grand Rapids, Ward 1, Precinct 9)")

	// reparse must not duplicate the null-district positions
	_, err = service.ParseWebsite(ctx, website)
	require.NoError(t, err)
	total, err := service.qry.CountPositions(ctx, election.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
}

func TestStale(t *testing.T) {
	service, cleanup := setupService(t, nil)
	defer cleanup()
	now := time.Now()

	unfetched := db.BallotWebsite{}
	require.True(t, service.Stale(unfetched, now))

	valid := db.BallotWebsite{
		Valid:     sql.NullBool{Bool: true, Valid: true},
		LastFetch: sql.NullInt64{Int64: now.Add(-time.Hour).Unix(), Valid: true},
	}
	require.False(t, service.Stale(valid, now))

	valid.LastFetch.Int64 = now.Add(-50 * time.Hour).Unix()
	require.True(t, service.Stale(valid, now))

	invalid := db.BallotWebsite{
		Valid:     sql.NullBool{Bool: false, Valid: true},
		LastFetch: sql.NullInt64{Int64: now.Add(-6 * 24 * time.Hour).Unix(), Valid: true},
	}
	require.False(t, service.Stale(invalid, now))

	invalid.LastFetch.Int64 = now.Add(-8*24*time.Hour - time.Hour).Unix()
	require.True(t, service.Stale(invalid, now))
}

func TestCrawler(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		election := r.URL.Query().Get("election")
		precinct := r.URL.Query().Get("precinct")
		if election == "100" {
			switch precinct {
			case "1", "2", "3":
				fmt.Fprint(w, generalBallotHtml)
				return
			}
		}
		fmt.Fprint(w, unavailableHtml)
	})

	service, cleanup := setupService(t, handler)
	defer cleanup()

	crawler := NewCrawler(service, CrawlerOptions{
		PrecinctMissLimit: 5,
		ElectionMissLimit: 2,
	})
	counts, err := crawler.Crawl(context.Background(), 100, 1)
	require.NoError(t, err)

	require.Equal(t, map[int64]int{100: 3, 101: 0, 102: 0}, counts)

	websites, err := service.qry.ListValidBallotWebsites(context.Background())
	require.NoError(t, err)
	require.Len(t, websites, 3)
}

func TestCrawlerBallotLimit(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, generalBallotHtml)
	})

	service, cleanup := setupService(t, handler)
	defer cleanup()

	crawler := NewCrawler(service, CrawlerOptions{
		PrecinctMissLimit: 5,
		ElectionMissLimit: 2,
		BallotLimit:       4,
	})
	counts, err := crawler.Crawl(context.Background(), 100, 1)
	require.NoError(t, err)
	require.Equal(t, map[int64]int{100: 4}, counts)
}

func TestParseBallots(t *testing.T) {
	service, cleanup := setupService(t, nil)
	defer cleanup()
	ctx := context.Background()

	storeWebsite(t, service, 690, 1828, generalBallotHtml)
	storeWebsite(t, service, 690, 9999, unavailableHtml)

	total, err := service.ParseBallots(ctx, ParseOptions{})
	require.NoError(t, err)
	require.Equal(t, 5, total)

	// a second batch run changes nothing
	total, err = service.ParseBallots(ctx, ParseOptions{})
	require.NoError(t, err)
	require.Equal(t, 5, total)
}

func TestDeactivateElections(t *testing.T) {
	service, cleanup := setupService(t, nil)
	defer cleanup()
	ctx := context.Background()

	website := storeWebsite(t, service, 690, 1828, generalBallotHtml)
	_, err := service.ParseWebsite(ctx, website)
	require.NoError(t, err)
	storeWebsite(t, service, 690, 9999, unavailableHtml)

	// the election is dated 2026-11-03; a month later it is over
	err = service.DeactivateElections(ctx, time.Date(2026, 12, 3, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	election, err := service.qry.GetElectionByMvicID(ctx, 690)
	require.NoError(t, err)
	require.False(t, election.Active)

	_, err = service.qry.GetBallotWebsite(ctx, db.GetBallotWebsiteParams{
		MvicElectionID: 690,
		MvicPrecinctID: 9999,
	})
	require.ErrorIs(t, err, sql.ErrNoRows)

	_, err = service.qry.GetBallotWebsite(ctx, db.GetBallotWebsiteParams{
		MvicElectionID: 690,
		MvicPrecinctID: 1828,
	})
	require.NoError(t, err)
}
