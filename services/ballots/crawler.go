package ballots

import (
	"context"
	"log/slog"
	"time"

	"miballot-backend/services/ballots/db"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// CrawlerOptions tune the two-level miss counters of the id-space crawl.
// Zero values take the defaults.
type CrawlerOptions struct {
	// consecutive invalid precinct ids that exhaust one election
	PrecinctMissLimit int
	// consecutive empty elections that exhaust the whole crawl
	ElectionMissLimit int
	// stop early after this many valid ballots; 0 means no limit
	BallotLimit int
	// probe every id over the network even when its content is fresh
	Refetch bool
}

const (
	defaultPrecinctMissLimit = 10
	defaultElectionMissLimit = 3
)

// Crawler walks the MVIC id space. Ids are assumed densely packed with
// bounded gaps, so a long enough run of consecutive misses is taken as
// proof of exhaustion rather than a reason to search further.
type Crawler struct {
	service Service
	opts    CrawlerOptions
}

func NewCrawler(service Service, opts CrawlerOptions) Crawler {
	if opts.PrecinctMissLimit <= 0 {
		opts.PrecinctMissLimit = defaultPrecinctMissLimit
	}
	if opts.ElectionMissLimit <= 0 {
		opts.ElectionMissLimit = defaultElectionMissLimit
	}
	if opts.BallotLimit > 0 {
		// a bounded crawl is a deliberate request for current data
		opts.Refetch = true
	}
	return Crawler{service: service, opts: opts}
}

// Crawl probes forward from the given (election id, precinct id), fetching
// and validating a website per probe. It returns the number of valid
// ballots found per election id. A transient site failure aborts the crawl
// with partial results; re-running later resumes cheaply because fresh
// websites are not refetched.
func (c Crawler) Crawl(ctx context.Context, startElection, startPrecinct int64) (map[int64]int, error) {
	ctx, span := tracer.Start(ctx, "Crawl")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("start_election", startElection),
		attribute.Int64("start_precinct", startPrecinct),
	)

	counts := map[int64]int{}
	total := 0
	electionMisses := 0

	for electionID := startElection; electionMisses < c.opts.ElectionMissLimit; electionID++ {
		found, err := c.crawlElection(ctx, electionID, startPrecinct, &total)
		counts[electionID] = found
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return counts, err
		}

		if found == 0 {
			electionMisses++
		} else {
			electionMisses = 0
		}
		slog.InfoContext(ctx, "crawled election",
			"election", electionID, "ballots", found)

		if c.opts.BallotLimit > 0 && total >= c.opts.BallotLimit {
			break
		}
	}
	return counts, nil
}

func (c Crawler) crawlElection(ctx context.Context, electionID, startPrecinct int64, total *int) (int, error) {
	found := 0
	misses := 0

	for precinctID := startPrecinct; misses < c.opts.PrecinctMissLimit; precinctID++ {
		if err := ctx.Err(); err != nil {
			return found, err
		}

		valid, err := c.probe(ctx, electionID, precinctID)
		if err != nil {
			return found, err
		}

		if valid {
			misses = 0
			found++
			*total++
			if c.opts.BallotLimit > 0 && *total >= c.opts.BallotLimit {
				return found, nil
			}
		} else {
			misses++
		}
	}
	return found, nil
}

func (c Crawler) probe(ctx context.Context, electionID, precinctID int64) (bool, error) {
	website, err := c.service.qry.GetBallotWebsite(ctx, db.GetBallotWebsiteParams{
		MvicElectionID: electionID,
		MvicPrecinctID: precinctID,
	})
	if err == nil && !c.opts.Refetch && !c.service.Stale(website, time.Now()) {
		return website.Valid.Valid && website.Valid.Bool, nil
	}

	website, _, err = c.service.FetchWebsite(ctx, electionID, precinctID)
	if err != nil {
		return false, err
	}
	return c.service.ValidateWebsite(ctx, website)
}
