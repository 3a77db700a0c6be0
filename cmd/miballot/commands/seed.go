package commands

import (
	"log/slog"

	"miballot-backend/lib/serviceutil"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(seedCmd)
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Creates the party list and the known district categories.",
	Args:  cobra.MaximumNArgs(0),
	Run: func(cmd *cobra.Command, args []string) {
		service, _, _ := openService()

		if err := service.Seed(cmd.Context()); err != nil {
			serviceutil.Fatal("failed to seed database", err)
		}
		slog.Info("seeded parties and district categories")
	},
}
