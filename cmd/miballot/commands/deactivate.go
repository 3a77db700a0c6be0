package commands

import (
	"log/slog"
	"time"

	"miballot-backend/lib/serviceutil"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(deactivateCmd)
}

var deactivateCmd = &cobra.Command{
	Use:   "deactivate",
	Short: "Marks long-past elections inactive and purges their invalid website rows.",
	Args:  cobra.MaximumNArgs(0),
	Run: func(cmd *cobra.Command, args []string) {
		service, _, _ := openService()

		if err := service.DeactivateElections(cmd.Context(), time.Now()); err != nil {
			serviceutil.Fatal("failed to deactivate elections", err)
		}
		slog.Info("deactivated past elections")
	},
}
