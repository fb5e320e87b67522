package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bporter/mcattrainer/internal/config"
	"github.com/bporter/mcattrainer/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "trainerctl",
	Short: "Admin tooling for the MCAT trainer",
	Long: `trainerctl manages the trainer's catalog and housekeeping from the
command line: importing question banks and flashcard decks, and running
review-log maintenance outside the nightly schedule.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func setup() config.Config {
	cfg := config.Load()
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)
	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
