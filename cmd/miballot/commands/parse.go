package commands

import (
	"log/slog"

	"miballot-backend/lib/serviceutil"
	"miballot-backend/services/ballots"

	"github.com/spf13/cobra"
)

var (
	parseHalt    *bool
	parseRefetch *bool
)

func init() {
	parseHalt = parseCmd.Flags().Bool("halt", false, "Abort on the first ballot that fails to parse.")
	parseRefetch = parseCmd.Flags().Bool("refetch", false, "Re-read every website from the site before parsing.")
	rootCmd.AddCommand(parseCmd)
}

var parseCmd = &cobra.Command{
	Use:   "parse [--halt] [--refetch]",
	Short: "Parses every valid stored ballot website into structured records.",
	Args:  cobra.MaximumNArgs(0),
	Run: func(cmd *cobra.Command, args []string) {
		service, _, _ := openService()

		if err := service.Seed(cmd.Context()); err != nil {
			serviceutil.Fatal("failed to seed database", err)
		}

		total, err := service.ParseBallots(cmd.Context(), ballots.ParseOptions{
			Halt:    *parseHalt,
			Refetch: *parseRefetch,
		})
		if err != nil {
			serviceutil.Fatal("failed to parse ballots", err)
		}
		slog.Info("parsed stored ballots", "items", total)
	},
}
