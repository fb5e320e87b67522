package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bporter/mcattrainer/internal/db"
	"github.com/bporter/mcattrainer/internal/repository/sqlite"
	"github.com/bporter/mcattrainer/internal/services"
)

var importSubject string

var importQuestionsCmd = &cobra.Command{
	Use:   "import-questions [path]",
	Short: "Import a question bank from a JSON file or directory",
	Long: `Imports questions into the catalog. With --subject the path must be a
single JSON file for that subject; without it the path is treated as a
directory of *_questions.json files and subjects are derived from filenames.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := setup()
		database, err := db.Open(cfg.DBPath)
		if err != nil {
			fmt.Println("failed to open database:", err)
			os.Exit(1)
		}
		defer database.Close()

		svc := services.NewImportService(
			sqlite.NewQuestionRepository(database.DB),
			sqlite.NewFlashcardRepository(database.DB),
		)

		ctx := context.Background()
		var count int
		if importSubject != "" {
			count, err = svc.ImportQuestions(ctx, importSubject, args[0])
		} else {
			count, err = svc.ImportQuestionDir(ctx, args[0])
		}
		if err != nil {
			fmt.Println("import failed:", err)
			os.Exit(1)
		}
		fmt.Printf("imported %d questions\n", count)
	},
}

var importFlashcardsCmd = &cobra.Command{
	Use:   "import-flashcards [deck.xlsx]",
	Short: "Import a flashcard deck from an xlsx workbook",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := setup()
		database, err := db.Open(cfg.DBPath)
		if err != nil {
			fmt.Println("failed to open database:", err)
			os.Exit(1)
		}
		defer database.Close()

		svc := services.NewImportService(
			sqlite.NewQuestionRepository(database.DB),
			sqlite.NewFlashcardRepository(database.DB),
		)

		count, err := svc.ImportFlashcards(context.Background(), args[0])
		if err != nil {
			fmt.Println("import failed:", err)
			os.Exit(1)
		}
		fmt.Printf("imported %d flashcards\n", count)
	},
}

func init() {
	rootCmd.AddCommand(importQuestionsCmd)
	rootCmd.AddCommand(importFlashcardsCmd)

	importQuestionsCmd.Flags().StringVarP(&importSubject, "subject", "s", "", "Subject name when importing a single file")
}
