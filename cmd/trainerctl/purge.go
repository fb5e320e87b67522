package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/bporter/mcattrainer/internal/db"
	"github.com/bporter/mcattrainer/internal/repository/sqlite"
	"github.com/bporter/mcattrainer/internal/services"
)

var purgeOlderThanDays int

var purgeReviewsCmd = &cobra.Command{
	Use:   "purge-reviews",
	Short: "Delete completed question reviews past the retention window",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := setup()
		database, err := db.Open(cfg.DBPath)
		if err != nil {
			fmt.Println("failed to open database:", err)
			os.Exit(1)
		}
		defer database.Close()

		days := purgeOlderThanDays
		if days <= 0 {
			days = cfg.ReviewRetentionDays
		}
		cutoff := time.Now().UTC().AddDate(0, 0, -days)

		svc := services.NewReviewService(sqlite.NewQuestionReviewRepository(database.DB))
		purged, err := svc.PurgeCompleted(context.Background(), cutoff)
		if err != nil {
			fmt.Println("purge failed:", err)
			os.Exit(1)
		}
		fmt.Printf("purged %d completed reviews older than %s\n", purged, cutoff.Format("2006-01-02"))
	},
}

func init() {
	rootCmd.AddCommand(purgeReviewsCmd)
	purgeReviewsCmd.Flags().IntVar(&purgeOlderThanDays, "older-than-days", 0, "Override the configured retention window")
}
