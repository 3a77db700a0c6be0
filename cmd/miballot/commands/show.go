package commands

import (
	"strings"

	"miballot-backend/lib/serviceutil"
	ballotsdb "miballot-backend/services/ballots/db"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	showPositionsElection *int64
	showProposalsElection *int64
)

func init() {
	showPositionsElection = showPositionsCmd.Flags().Int64("election", 0, "The MVIC election id to show positions for.")
	showPositionsCmd.MarkFlagRequired("election")
	showProposalsElection = showProposalsCmd.Flags().Int64("election", 0, "The MVIC election id to show proposals for.")
	showProposalsCmd.MarkFlagRequired("election")

	showCmd.AddCommand(showElectionsCmd)
	showCmd.AddCommand(showPositionsCmd)
	showCmd.AddCommand(showProposalsCmd)
	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Displays parsed ballot data.",
}

var showElectionsCmd = &cobra.Command{
	Use:   "elections",
	Short: "Lists every known election with its record counts.",
	Args:  cobra.MaximumNArgs(0),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		_, database, _ := openService()
		qry := ballotsdb.New(database)

		elections, err := qry.ListElections(ctx)
		if err != nil {
			serviceutil.Fatal("failed to list elections", err)
		}

		t := newTable()
		t.AppendHeader(table.Row{"MVIC ID", "Name", "Date", "Active", "Positions", "Candidates", "Proposals"})
		for _, election := range elections {
			positions, err := qry.CountPositions(ctx, election.ID)
			if err != nil {
				serviceutil.Fatal("failed to count positions", err)
			}
			candidates, err := qry.CountCandidates(ctx, election.ID)
			if err != nil {
				serviceutil.Fatal("failed to count candidates", err)
			}
			proposals, err := qry.CountProposals(ctx, election.ID)
			if err != nil {
				serviceutil.Fatal("failed to count proposals", err)
			}
			t.AppendRow(table.Row{
				election.MvicID, election.Name, election.Date, election.Active,
				positions, candidates, proposals,
			})
		}
		t.Render()
	},
}

var showPositionsCmd = &cobra.Command{
	Use:   "positions --election <mvic id>",
	Short: "Lists an election's positions with their candidates.",
	Args:  cobra.MaximumNArgs(0),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		_, database, _ := openService()
		qry := ballotsdb.New(database)

		election, err := qry.GetElectionByMvicID(ctx, *showPositionsElection)
		if err != nil {
			serviceutil.Fatal("failed to find election", err)
		}
		positions, err := qry.ListPositions(ctx, election.ID)
		if err != nil {
			serviceutil.Fatal("failed to list positions", err)
		}

		t := newTable()
		t.AppendHeader(table.Row{"Position", "District", "Term", "Seats", "Candidates"})
		for _, row := range positions {
			candidates, err := qry.ListCandidates(ctx, row.Position.ID)
			if err != nil {
				serviceutil.Fatal("failed to list candidates", err)
			}
			var names []string
			for _, candidate := range candidates {
				name := candidate.Candidate.Name
				if candidate.PartyName.Valid {
					name += " (" + candidate.PartyName.String + ")"
				}
				names = append(names, name)
			}
			t.AppendRow(table.Row{
				row.Position.Name, row.DistrictName.String, row.Position.Term,
				row.Position.Seats, strings.Join(names, "\n"),
			})
		}
		t.Render()
	},
}

var showProposalsCmd = &cobra.Command{
	Use:   "proposals --election <mvic id>",
	Short: "Lists an election's proposals.",
	Args:  cobra.MaximumNArgs(0),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		_, database, _ := openService()
		qry := ballotsdb.New(database)

		election, err := qry.GetElectionByMvicID(ctx, *showProposalsElection)
		if err != nil {
			serviceutil.Fatal("failed to find election", err)
		}
		proposals, err := qry.ListProposals(ctx, election.ID)
		if err != nil {
			serviceutil.Fatal("failed to list proposals", err)
		}

		t := newTable()
		t.AppendHeader(table.Row{"Proposal", "District"})
		for _, row := range proposals {
			t.AppendRow(table.Row{row.Proposal.Name, row.DistrictName})
		}
		t.Render()
	},
}
