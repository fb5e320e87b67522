package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/bporter/mcattrainer/internal/models"
	"github.com/bporter/mcattrainer/internal/repository"
	"github.com/bporter/mcattrainer/internal/repository/sqlite"
	"github.com/bporter/mcattrainer/internal/testutil"
)

type QuestionRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.QuestionRepository
}

func (s *QuestionRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewQuestionRepository(s.db)
}

func (s *QuestionRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *QuestionRepositorySuite) TestUpsertAndGet() {
	ctx := context.Background()
	q := models.Question{
		ID:             "biology_q1",
		Subject:        "Biology",
		Chapter:        2,
		ChapterTitle:   "Reproduction",
		QuestionNumber: 4,
		QuestionText:   "Which phase follows prophase?",
		Options:        models.JSONMap{"A": "Metaphase", "B": "Telophase"},
		CorrectAnswer:  "A",
		Explanation:    "Mitosis proceeds P-M-A-T.",
		ShortReason:    "Order of mitosis phases.",
		WrongAnswerExplanations: models.JSONMap{
			"B": "Telophase is the final phase.",
		},
	}
	s.Require().NoError(s.repo.Upsert(ctx, q))

	got, err := s.repo.Get(ctx, "biology_q1")
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Assert().Equal("Metaphase", got.Options["A"])
	s.Assert().Equal("Telophase is the final phase.", got.WrongAnswerExplanations["B"])
	s.Assert().Equal("Order of mitosis phases.", got.ShortReason)

	// Upsert with the same ID replaces, not duplicates.
	q.Explanation = "updated"
	s.Require().NoError(s.repo.Upsert(ctx, q))
	got, err = s.repo.Get(ctx, "biology_q1")
	s.Require().NoError(err)
	s.Assert().Equal("updated", got.Explanation)
}

func (s *QuestionRepositorySuite) TestGet_NotFound() {
	got, err := s.repo.Get(context.Background(), "missing")
	s.Require().NoError(err)
	s.Assert().Nil(got)
}

func (s *QuestionRepositorySuite) TestGet_CorruptAuxiliaryJSONDegradesToEmpty() {
	ctx := context.Background()
	_, err := s.db.ExecContext(ctx, `
INSERT INTO questions (id, subject, chapter, chapter_title, question_number, question_text, options, correct_answer, explanation, wrong_answer_explanations)
VALUES ('bad_json', 'Biology', 1, 'Cells', 1, 'text', '{"A":"a"}', 'A', 'because', '{not valid json')
`)
	s.Require().NoError(err)

	got, err := s.repo.Get(ctx, "bad_json")
	s.Require().NoError(err, "corrupt auxiliary data must not fail the row")
	s.Require().NotNil(got)
	s.Assert().Empty(got.WrongAnswerExplanations)
	s.Assert().Equal("a", got.Options["A"])
}

func (s *QuestionRepositorySuite) TestListAndSubjects() {
	ctx := context.Background()
	seed := []models.Question{
		{ID: "b1", Subject: "Biology", Chapter: 1, ChapterTitle: "Cells", QuestionNumber: 1, QuestionText: "q", Options: models.JSONMap{"A": "a"}, CorrectAnswer: "A", Explanation: "e"},
		{ID: "b2", Subject: "Biology", Chapter: 2, ChapterTitle: "Genetics", QuestionNumber: 1, QuestionText: "q", Options: models.JSONMap{"A": "a"}, CorrectAnswer: "A", Explanation: "e"},
		{ID: "p1", Subject: "Physics and Math", Chapter: 1, ChapterTitle: "Kinematics", QuestionNumber: 1, QuestionText: "q", Options: models.JSONMap{"A": "a"}, CorrectAnswer: "A", Explanation: "e"},
	}
	for _, q := range seed {
		s.Require().NoError(s.repo.Upsert(ctx, q))
	}

	all, err := s.repo.List(ctx, nil)
	s.Require().NoError(err)
	s.Assert().Len(all, 3)

	bio, err := s.repo.List(ctx, []string{"Biology"})
	s.Require().NoError(err)
	s.Assert().Len(bio, 2)

	subjects, err := s.repo.Subjects(ctx)
	s.Require().NoError(err)
	s.Assert().Equal([]string{"Biology", "Physics and Math"}, subjects)

	counts, err := s.repo.CountBySubject(ctx, nil)
	s.Require().NoError(err)
	s.Assert().Equal(2, counts["Biology"])
	s.Assert().Equal(1, counts["Physics and Math"])
}

func TestQuestionRepositorySuite(t *testing.T) {
	suite.Run(t, new(QuestionRepositorySuite))
}
