// Package ballots implements the sample-ballot pipeline: crawling the MVIC
// id space, the fetch/validate/staleness lifecycle of raw ballot websites,
// and parsing stored ballots into elections, positions, candidates and
// proposals.
package ballots

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"miballot-backend/services/ballots/classifier"
	"miballot-backend/services/ballots/db"
	"miballot-backend/services/ballots/districts"
	"miballot-backend/services/ballots/mvic"

	"github.com/PuerkitoBio/goquery"
	"github.com/mazen160/go-random"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/ballots")

type Service struct {
	db     *sql.DB
	qry    *db.Queries
	client *mvic.Client
}

func NewService(database *sql.DB, client *mvic.Client) Service {
	return Service{
		db:     database,
		qry:    db.New(database),
		client: client,
	}
}

// FetchWebsite retrieves the current ballot HTML for an (election, precinct)
// pair, creating the website row on first contact. It reports whether the
// stored content changed. Transient site failures come back wrapping
// mvic.ErrServiceUnavailable.
func (s Service) FetchWebsite(ctx context.Context, electionID, precinctID int64) (db.BallotWebsite, bool, error) {
	ctx, span := tracer.Start(ctx, "FetchWebsite")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("election", electionID),
		attribute.Int64("precinct", precinctID),
	)

	err := s.qry.CreateBallotWebsite(ctx, db.CreateBallotWebsiteParams{
		MvicElectionID: electionID,
		MvicPrecinctID: precinctID,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return db.BallotWebsite{}, false, err
	}
	website, err := s.qry.GetBallotWebsite(ctx, db.GetBallotWebsiteParams{
		MvicElectionID: electionID,
		MvicPrecinctID: precinctID,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return db.BallotWebsite{}, false, err
	}

	html, err := s.client.FetchBallot(ctx, int(electionID), int(precinctID))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return website, false, err
	}

	changed := html != website.MvicHtml
	err = s.qry.UpdateBallotWebsiteFetch(ctx, db.UpdateBallotWebsiteFetchParams{
		MvicHtml:  html,
		LastFetch: sql.NullInt64{Int64: time.Now().Unix(), Valid: true},
		ID:        website.ID,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return website, false, err
	}

	website, err = s.qry.GetBallotWebsite(ctx, db.GetBallotWebsiteParams{
		MvicElectionID: electionID,
		MvicPrecinctID: precinctID,
	})
	return website, changed, err
}

// ValidateWebsite decides from stored markup whether the website holds an
// actual ballot, and records the verdict.
func (s Service) ValidateWebsite(ctx context.Context, website db.BallotWebsite) (bool, error) {
	ctx, span := tracer.Start(ctx, "ValidateWebsite")
	defer span.End()

	if !website.Fetched {
		return false, fmt.Errorf("website %d has not been fetched", website.ID)
	}

	valid := mvic.Valid(website.MvicHtml)
	if !valid {
		slog.DebugContext(ctx, "ballot is not available",
			"election", website.MvicElectionID, "precinct", website.MvicPrecinctID)
	}
	err := s.qry.UpdateBallotWebsiteValidation(ctx, db.UpdateBallotWebsiteValidationParams{
		Valid:        sql.NullBool{Bool: valid, Valid: true},
		LastValidate: sql.NullInt64{Int64: time.Now().Unix(), Valid: true},
		ID:           website.ID,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return false, err
	}
	return valid, nil
}

// Stale reports whether a website's content should be refetched. Valid
// ballots refresh after about a day, invalid ones after about a week; a
// random 2-22 hour jitter spreads refresh load so a crawl never hammers the
// site in lockstep.
func (s Service) Stale(website db.BallotWebsite, now time.Time) bool {
	if !website.LastFetch.Valid {
		return true
	}

	base := 7 * 24 * time.Hour
	if website.Valid.Valid && website.Valid.Bool {
		base = 24 * time.Hour
	}
	jitterHours, err := random.IntRange(2, 22)
	if err != nil {
		jitterHours = 12
	}

	age := now.Sub(time.Unix(website.LastFetch.Int64, 0))
	return age > base+time.Duration(jitterHours)*time.Hour
}

// ParseWebsite classifies a valid website's stored HTML and persists every
// office, candidate and proposal in one transaction; a fatal parse or
// resolution error leaves no partial records behind. It returns the item
// count and is idempotent: reparsing identical HTML creates nothing new.
func (s Service) ParseWebsite(ctx context.Context, website db.BallotWebsite) (int, error) {
	ctx, span := tracer.Start(ctx, "ParseWebsite")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("election", website.MvicElectionID),
		attribute.Int64("precinct", website.MvicPrecinctID),
	)

	fail := func(err error) (int, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}

	if !website.Valid.Valid || !website.Valid.Bool {
		return fail(fmt.Errorf("website %d does not hold a valid ballot", website.ID))
	}
	url := mvic.SampleBallotURL(s.client.BaseUrl, int(website.MvicElectionID), int(website.MvicPrecinctID))

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(website.MvicHtml))
	if err != nil {
		return fail(err)
	}
	electionInfo, err := mvic.ParseElection(doc)
	if err != nil {
		return fail(err)
	}
	precinctInfo, err := mvic.ParsePrecinct(website.MvicHtml, url)
	if err != nil {
		return fail(err)
	}
	ballot, err := classifier.Parse(ctx, doc)
	if err != nil {
		return fail(err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fail(err)
	}
	defer tx.Rollback()
	st := store{qry: s.qry.WithTx(tx)}

	election, err := st.election(ctx, website.MvicElectionID, electionInfo)
	if err != nil {
		return fail(err)
	}
	precinct, err := st.precinct(ctx, precinctInfo)
	if err != nil {
		return fail(err)
	}

	count := 0
	for _, office := range ballot.Offices {
		n, err := s.parseOffice(ctx, st, election, precinct, precinctInfo, office)
		if err != nil {
			return fail(err)
		}
		count += n
	}

	var prev *districts.Resolution
	for _, proposal := range ballot.Proposals {
		if proposal.TextRecovered {
			slog.WarnContext(ctx, "proposal text was recovered from unlabeled markup",
				"title", proposal.Title, "url", url)
		}
		resolution, err := districts.ResolveProposal(ctx, proposal, precinctInfo, prev)
		if err != nil {
			return fail(err)
		}
		prev = &resolution

		district, err := st.district(ctx, resolution.Category, resolution.District)
		if err != nil {
			return fail(err)
		}
		row, err := st.proposal(ctx, db.UpsertProposalParams{
			ElectionID:  election.ID,
			DistrictID:  district.ID,
			Name:        proposal.Title,
			Description: proposal.Text,
		})
		if err != nil {
			return fail(err)
		}
		err = st.qry.AttachProposalPrecinct(ctx, db.AttachProposalPrecinctParams{
			ProposalID: row.ID,
			PrecinctID: precinct.ID,
		})
		if err != nil {
			return fail(err)
		}
		count++
	}

	err = st.qry.UpdateBallotWebsiteParse(ctx, db.UpdateBallotWebsiteParseParams{
		ItemCount: int64(count),
		LastParse: sql.NullInt64{Int64: time.Now().Unix(), Valid: true},
		ID:        website.ID,
	})
	if err != nil {
		return fail(err)
	}
	if err := tx.Commit(); err != nil {
		return fail(err)
	}

	span.SetAttributes(attribute.Int("items", count))
	return count, nil
}

func (s Service) parseOffice(
	ctx context.Context,
	st store,
	election db.Election,
	precinct db.Precinct,
	precinctInfo mvic.Precinct,
	office *classifier.Office,
) (int, error) {
	resolution, err := districts.ResolveOffice(ctx, office, precinctInfo)
	if err != nil {
		return 0, err
	}

	name := office.Name
	var districtID sql.NullInt64
	if resolution.PrecinctScoped {
		// precinct-scoped positions are not shared across precincts, so
		// the precinct identity moves into the name instead of a district
		party := office.Party
		if party == "" {
			party = "Nonpartisan"
		}
		name = fmt.Sprintf("%s (%s | %s)", name, party, districts.PrecinctLabel(precinctInfo))
	} else {
		district, err := st.district(ctx, resolution.Category, resolution.District)
		if err != nil {
			return 0, err
		}
		districtID = sql.NullInt64{Int64: district.ID, Valid: true}
	}

	term := strings.Trim(strings.Join([]string{office.Incumbency, office.Term}, ", "), ", ")
	position, err := st.position(ctx, db.CreatePositionParams{
		ElectionID: election.ID,
		DistrictID: districtID,
		Name:       name,
		Term:       term,
		Seats:      int64(office.Seats),
		Section:    office.Section,
	})
	if err != nil {
		return 0, err
	}
	err = st.qry.AttachPositionPrecinct(ctx, db.AttachPositionPrecinctParams{
		PositionID: position.ID,
		PrecinctID: precinct.ID,
	})
	if err != nil {
		return 0, err
	}

	count := 1
	for _, candidate := range office.Candidates {
		partyName := candidate.Party
		if partyName == "" {
			partyName = "Nonpartisan"
		}
		party, err := st.qry.GetParty(ctx, partyName)
		if err != nil {
			return 0, fmt.Errorf("unknown party %q: %w", partyName, err)
		}

		referenceURL := sql.NullString{}
		if candidate.FinanceLink != "" {
			referenceURL = sql.NullString{String: candidate.FinanceLink, Valid: true}
		}
		_, err = st.candidate(ctx, db.UpsertCandidateParams{
			PositionID:   position.ID,
			Name:         candidate.Name,
			PartyID:      sql.NullInt64{Int64: party.ID, Valid: true},
			ReferenceUrl: referenceURL,
		})
		if err != nil {
			return 0, err
		}
		count++
	}
	return count, nil
}

// ParseOptions control a batch parse run.
type ParseOptions struct {
	// Halt aborts the batch on the first fatal ballot instead of skipping
	Halt bool
	// Refetch re-reads every website from the site before parsing even
	// when its content is fresh
	Refetch bool
}

// ParseBallots parses every valid stored website. A failing ballot gets one
// refetch-and-retry before it counts as fatal; fatal ballots are skipped
// (or, with Halt, abort the batch) and never poison other ballots.
func (s Service) ParseBallots(ctx context.Context, opts ParseOptions) (int, error) {
	ctx, span := tracer.Start(ctx, "ParseBallots")
	defer span.End()

	websites, err := s.qry.ListValidBallotWebsites(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}

	total := 0
	for _, website := range websites {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		if opts.Refetch || s.Stale(website, time.Now()) {
			refetched, err := s.refetch(ctx, website)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				return total, err
			}
			if refetched == nil {
				// no longer a valid ballot
				continue
			}
			website = *refetched
		}

		count, err := s.ParseWebsite(ctx, website)
		if err != nil {
			slog.WarnContext(ctx, "ballot failed to parse, refetching once",
				"election", website.MvicElectionID,
				"precinct", website.MvicPrecinctID,
				"err", err.Error())
			count, err = s.retryOnce(ctx, website)
		}
		if err != nil {
			if opts.Halt {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				return total, err
			}
			slog.ErrorContext(ctx, "skipping unparsable ballot",
				"election", website.MvicElectionID,
				"precinct", website.MvicPrecinctID,
				"err", err.Error())
			continue
		}
		total += count
	}
	span.SetAttributes(attribute.Int("items", total))
	return total, nil
}

// refetch re-reads a website and revalidates it; nil means the site no
// longer serves a ballot there.
func (s Service) refetch(ctx context.Context, website db.BallotWebsite) (*db.BallotWebsite, error) {
	website, _, err := s.FetchWebsite(ctx, website.MvicElectionID, website.MvicPrecinctID)
	if err != nil {
		return nil, err
	}
	valid, err := s.ValidateWebsite(ctx, website)
	if err != nil {
		return nil, err
	}
	if !valid {
		return nil, nil
	}
	website, err = s.qry.GetBallotWebsite(ctx, db.GetBallotWebsiteParams{
		MvicElectionID: website.MvicElectionID,
		MvicPrecinctID: website.MvicPrecinctID,
	})
	if err != nil {
		return nil, err
	}
	return &website, nil
}

func (s Service) retryOnce(ctx context.Context, website db.BallotWebsite) (int, error) {
	refetched, err := s.refetch(ctx, website)
	if err != nil {
		return 0, err
	}
	if refetched == nil {
		return 0, nil
	}
	return s.ParseWebsite(ctx, *refetched)
}

// DeactivateElections marks elections that ended more than two weeks ago as
// inactive and purges their invalid website rows, which only existed to
// drive the id-space crawl.
func (s Service) DeactivateElections(ctx context.Context, now time.Time) error {
	ctx, span := tracer.Start(ctx, "DeactivateElections")
	defer span.End()

	elections, err := s.qry.ListActiveElections(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	for _, election := range elections {
		date, err := time.Parse("2006-01-02", election.Date)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
		if now.Sub(date) <= 14*24*time.Hour {
			continue
		}

		slog.InfoContext(ctx, "deactivating past election",
			"election", election.Name, "date", election.Date)
		if err := s.qry.DeactivateElection(ctx, election.ID); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
		err = s.qry.DeleteInvalidBallotWebsites(ctx, election.MvicID)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
	}
	return nil
}
