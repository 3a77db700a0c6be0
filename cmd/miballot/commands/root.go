package commands

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"miballot-backend/lib/configutil"
	configlibsql "miballot-backend/lib/configutil/libsql"
	"miballot-backend/lib/serviceutil"
	"miballot-backend/services/ballots"
	ballotsdb "miballot-backend/services/ballots/db"
	"miballot-backend/services/ballots/mvic"

	"github.com/spf13/cobra"
)

type MvicConfig struct {
	BaseUrl       string `json:"base_url"`
	CACertificate string `json:"ca_certificate"`
	TimeoutSecs   int    `json:"timeout_secs"`
}

type CrawlerConfig struct {
	PrecinctMissLimit int `json:"precinct_miss_limit"`
	ElectionMissLimit int `json:"election_miss_limit"`
}

type Config struct {
	Database configlibsql.Struct `json:"database"`
	Mvic     MvicConfig          `json:"mvic"`
	Crawler  CrawlerConfig       `json:"crawler"`
}

var rootCmd = &cobra.Command{
	Use:   "miballot",
	Short: "miballot crawls, validates and parses Michigan sample ballots.",
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openService wires the service from miballot.json5. Every subcommand goes
// through here so they all agree on the database and client settings.
func openService() (ballots.Service, *sql.DB, Config) {
	config, err := configutil.ReadConfig[Config]("miballot.json5")
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}

	database, err := config.Database.OpenDB(ballotsdb.Schema)
	if err != nil {
		serviceutil.Fatal("failed to open database", err)
	}

	client, err := mvic.NewClient(mvic.ClientOptions{
		BaseUrl:       config.Mvic.BaseUrl,
		CACertificate: config.Mvic.CACertificate,
		Timeout:       time.Duration(config.Mvic.TimeoutSecs) * time.Second,
	})
	if err != nil {
		serviceutil.Fatal("failed to create mvic client", err)
	}

	return ballots.NewService(database, client), database, config
}
