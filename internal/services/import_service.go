package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/bporter/mcattrainer/internal/errors"
	"github.com/bporter/mcattrainer/internal/logger"
	"github.com/bporter/mcattrainer/internal/models"
	"github.com/bporter/mcattrainer/internal/repository"
)

// questionFile is the on-disk layout of one subject's question bank.
type questionFile struct {
	Questions []struct {
		ID                      string         `json:"id"`
		Chapter                 int            `json:"chapter"`
		ChapterTitle            string         `json:"chapter_title"`
		QuestionNumber          int            `json:"question_number"`
		QuestionText            string         `json:"question_text"`
		Options                 models.JSONMap `json:"options"`
		CorrectAnswer           string         `json:"correct_answer"`
		Explanation             string         `json:"explanation"`
		ShortReason             string         `json:"short_reason"`
		WrongAnswerExplanations models.JSONMap `json:"wrong_answer_explanations"`
	} `json:"questions"`
}

// ImportService loads question banks and flashcard decks into the catalog
type ImportService interface {
	ImportQuestions(ctx context.Context, subject, path string) (int, error)
	ImportQuestionDir(ctx context.Context, dir string) (int, error)
	ImportFlashcards(ctx context.Context, path string) (int, error)
}

type importService struct {
	questionRepo  repository.QuestionRepository
	flashcardRepo repository.FlashcardRepository
}

// NewImportService creates a new ImportService
func NewImportService(questionRepo repository.QuestionRepository, flashcardRepo repository.FlashcardRepository) ImportService {
	return &importService{questionRepo: questionRepo, flashcardRepo: flashcardRepo}
}

// ImportQuestions upserts one subject file. Question IDs are prefixed with
// the subject so IDs only need to be unique within their file.
func (s *importService) ImportQuestions(ctx context.Context, subject, path string) (int, error) {
	log := logger.FromContext(ctx)
	log.Info("importing questions: subject=%s, path=%s", subject, path)

	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, errors.NewBadRequestError(fmt.Sprintf("cannot read %s: %v", path, err))
	}
	var file questionFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return 0, errors.NewBadRequestError(fmt.Sprintf("malformed question file %s: %v", path, err))
	}

	prefix := strings.ReplaceAll(strings.ToLower(subject), " ", "_")
	count := 0
	for _, q := range file.Questions {
		question := models.Question{
			ID:                      fmt.Sprintf("%s_%s", prefix, q.ID),
			Subject:                 subject,
			Chapter:                 q.Chapter,
			ChapterTitle:            q.ChapterTitle,
			QuestionNumber:          q.QuestionNumber,
			QuestionText:            q.QuestionText,
			Options:                 q.Options,
			CorrectAnswer:           q.CorrectAnswer,
			Explanation:             q.Explanation,
			ShortReason:             q.ShortReason,
			WrongAnswerExplanations: q.WrongAnswerExplanations,
		}
		if err := s.questionRepo.Upsert(ctx, question); err != nil {
			log.Error("failed to upsert question %s: %v", question.ID, err)
			return count, errors.NewInternalError(err)
		}
		count++
	}
	log.Info("imported %d questions for %s", count, subject)
	return count, nil
}

// ImportQuestionDir walks a directory of `<subject>_questions.json` files,
// deriving the subject from the filename (underscores become spaces,
// title-cased).
func (s *importService) ImportQuestionDir(ctx context.Context, dir string) (int, error) {
	log := logger.FromContext(ctx)

	paths, err := filepath.Glob(filepath.Join(dir, "*_questions.json"))
	if err != nil {
		return 0, errors.NewBadRequestError(fmt.Sprintf("bad directory %s: %v", dir, err))
	}
	if len(paths) == 0 {
		return 0, errors.NewBadRequestError(fmt.Sprintf("no *_questions.json files in %s", dir))
	}

	total := 0
	for _, path := range paths {
		subject := subjectFromFilename(path)
		n, err := s.ImportQuestions(ctx, subject, path)
		total += n
		if err != nil {
			return total, err
		}
	}
	log.Info("imported %d questions from %s", total, dir)
	return total, nil
}

func subjectFromFilename(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), "_questions.json")
	name = strings.TrimPrefix(name, "mcat_")
	words := strings.Split(name, "_")
	for i, w := range words {
		if w == "and" || w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// ImportFlashcards loads a deck from the first sheet of an .xlsx workbook.
// Expected columns: subject, chapter, term, definition, mnemonic, category;
// the first row is a header. Card IDs are derived from subject, chapter, and
// row position, so re-importing the same file updates in place.
func (s *importService) ImportFlashcards(ctx context.Context, path string) (int, error) {
	log := logger.FromContext(ctx)
	log.Info("importing flashcards: path=%s", path)

	book, err := excelize.OpenFile(path)
	if err != nil {
		return 0, errors.NewBadRequestError(fmt.Sprintf("cannot open %s: %v", path, err))
	}
	defer book.Close()

	sheet := book.GetSheetName(0)
	rows, err := book.GetRows(sheet)
	if err != nil {
		return 0, errors.NewInternalError(err)
	}
	if len(rows) < 2 {
		return 0, errors.NewBadRequestError(fmt.Sprintf("%s has no data rows", path))
	}

	count := 0
	perTopic := map[string]int{}
	for i, row := range rows[1:] {
		if len(row) < 4 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		subject := strings.TrimSpace(row[0])
		chapter, err := strconv.Atoi(strings.TrimSpace(row[1]))
		if err != nil {
			return count, errors.NewBadRequestError(fmt.Sprintf("row %d: bad chapter %q", i+2, row[1]))
		}

		card := models.Flashcard{
			Subject:    subject,
			Chapter:    chapter,
			Term:       strings.TrimSpace(row[2]),
			Definition: strings.TrimSpace(row[3]),
		}
		if len(row) > 4 {
			card.Mnemonic = strings.TrimSpace(row[4])
		}
		if len(row) > 5 {
			card.Category = strings.TrimSpace(row[5])
		}

		topicKey := fmt.Sprintf("%s_ch%d", strings.ReplaceAll(strings.ToLower(subject), " ", "_"), chapter)
		perTopic[topicKey]++
		card.ID = fmt.Sprintf("%s_%03d", topicKey, perTopic[topicKey])

		if err := s.flashcardRepo.Upsert(ctx, card); err != nil {
			log.Error("failed to upsert flashcard %s: %v", card.ID, err)
			return count, errors.NewInternalError(err)
		}
		count++
	}
	log.Info("imported %d flashcards", count)
	return count, nil
}
