package commands

import (
	"fmt"
	"log/slog"

	"miballot-backend/lib/serviceutil"
	"miballot-backend/services/ballots"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	crawlElection *int64
	crawlPrecinct *int64
	crawlLimit    *int
	crawlRefetch  *bool
)

func init() {
	crawlElection = crawlCmd.Flags().Int64("election", 0, "The MVIC election id to start probing from.")
	crawlPrecinct = crawlCmd.Flags().Int64("precinct", 1, "The MVIC precinct id to start probing from.")
	crawlLimit = crawlCmd.Flags().Int("limit", 0, "Stop after finding this many valid ballots (0 = no limit).")
	crawlRefetch = crawlCmd.Flags().Bool("refetch", false, "Probe every id over the network even when its content is fresh.")
	crawlCmd.MarkFlagRequired("election")
	rootCmd.AddCommand(crawlCmd)
}

var crawlCmd = &cobra.Command{
	Use:   "crawl --election <id> [--precinct <id>] [--limit <n>] [--refetch]",
	Short: "Walks the MVIC id space, fetching and validating ballot websites.",
	Args:  cobra.MaximumNArgs(0),
	Run: func(cmd *cobra.Command, args []string) {
		service, _, config := openService()

		if err := service.Seed(cmd.Context()); err != nil {
			serviceutil.Fatal("failed to seed database", err)
		}

		crawler := ballots.NewCrawler(service, ballots.CrawlerOptions{
			PrecinctMissLimit: config.Crawler.PrecinctMissLimit,
			ElectionMissLimit: config.Crawler.ElectionMissLimit,
			BallotLimit:       *crawlLimit,
			Refetch:           *crawlRefetch,
		})

		counts, err := crawler.Crawl(cmd.Context(), *crawlElection, *crawlPrecinct)
		if err != nil {
			slog.Error("crawl aborted", "err", err.Error())
		}

		t := newTable()
		t.AppendHeader(table.Row{"Election", "Valid Ballots"})
		total := 0
		for electionID := *crawlElection; ; electionID++ {
			found, ok := counts[electionID]
			if !ok {
				break
			}
			total += found
			t.AppendRow(table.Row{electionID, found})
		}
		t.AppendFooter(table.Row{"Total", total})
		t.Render()

		if err != nil {
			fmt.Println("the crawl did not finish; re-run to resume")
		}
	},
}
