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

type AttemptRepositorySuite struct {
	suite.Suite
	db        *sql.DB
	repo      repository.AttemptRepository
	sessionID int64
}

func (s *AttemptRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewAttemptRepository(s.db)

	ctx := context.Background()
	s.seedQuestion(ctx, "bio_q1", "Biology", 1, "Cell Biology")
	s.seedQuestion(ctx, "bio_q2", "Biology", 1, "Cell Biology")
	s.seedQuestion(ctx, "chem_q1", "General Chemistry", 3, "Bonding")

	res, err := s.db.ExecContext(ctx, `INSERT INTO sessions (user_id, mode, total_questions) VALUES (1, 'mixed', 10)`)
	s.Require().NoError(err)
	s.sessionID, err = res.LastInsertId()
	s.Require().NoError(err)
}

func (s *AttemptRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *AttemptRepositorySuite) seedQuestion(ctx context.Context, id, subject string, chapter int, title string) {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO questions (id, subject, chapter, chapter_title, question_number, question_text, options, correct_answer, explanation)
VALUES (?, ?, ?, ?, 1, 'text', '{"A":"a","B":"b"}', 'A', 'because')
`, id, subject, chapter, title)
	s.Require().NoError(err)
}

func (s *AttemptRepositorySuite) recordAttempt(questionID string, correct bool) int64 {
	id, err := s.repo.Insert(context.Background(), models.Attempt{
		UserID:           1,
		QuestionID:       questionID,
		SessionID:        s.sessionID,
		Correct:          correct,
		SelectedAnswer:   "A",
		TimeTakenSeconds: 30,
	})
	s.Require().NoError(err)
	return id
}

func (s *AttemptRepositorySuite) TestTopicAccuracy() {
	ctx := context.Background()
	s.recordAttempt("bio_q1", true)
	s.recordAttempt("bio_q2", false)
	s.recordAttempt("chem_q1", true)

	stats, err := s.repo.TopicAccuracy(ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(stats, 2)

	byTopic := map[models.Topic]models.TopicStat{}
	for _, t := range stats {
		byTopic[t.Topic()] = t
	}

	bio := byTopic[models.Topic{Subject: "Biology", Chapter: 1}]
	s.Assert().Equal(2, bio.Total)
	s.Assert().Equal(1, bio.Correct)
	s.Assert().InDelta(0.5, bio.Accuracy, 1e-9)
	s.Assert().Less(bio.DaysSinceLast, 1.0, "attempts just happened")

	chem := byTopic[models.Topic{Subject: "General Chemistry", Chapter: 3}]
	s.Assert().Equal(1, chem.Total)
	s.Assert().InDelta(1.0, chem.Accuracy, 1e-9)
}

func (s *AttemptRepositorySuite) TestTopicAccuracy_NoHistory() {
	stats, err := s.repo.TopicAccuracy(context.Background(), 2)
	s.Require().NoError(err)
	s.Assert().Empty(stats)
}

func (s *AttemptRepositorySuite) TestWrongCounts_ThresholdBoundary() {
	ctx := context.Background()

	// bio_q1 missed twice, bio_q2 missed three times.
	s.recordAttempt("bio_q1", false)
	s.recordAttempt("bio_q1", false)
	for i := 0; i < 3; i++ {
		s.recordAttempt("bio_q2", false)
	}
	// A later correct answer does not clear leech status.
	s.recordAttempt("bio_q2", true)

	leeches, err := s.repo.WrongCounts(ctx, 1, 3)
	s.Require().NoError(err)
	s.Require().Len(leeches, 1, "two misses stay below a threshold of three")
	s.Assert().Equal("bio_q2", leeches[0].ID)
	s.Assert().Equal(3, leeches[0].WrongCount)

	leeches, err = s.repo.WrongCounts(ctx, 1, 2)
	s.Require().NoError(err)
	s.Require().Len(leeches, 2)
	s.Assert().Equal("bio_q2", leeches[0].ID, "highest wrong count first")
}

func (s *AttemptRepositorySuite) TestSessionQuestionIDs() {
	s.recordAttempt("bio_q1", true)
	s.recordAttempt("chem_q1", false)

	ids, err := s.repo.SessionQuestionIDs(context.Background(), s.sessionID)
	s.Require().NoError(err)
	s.Assert().ElementsMatch([]string{"bio_q1", "chem_q1"}, ids)
}

func (s *AttemptRepositorySuite) TestSessionAttempts_JoinsQuestionMetadata() {
	s.recordAttempt("chem_q1", true)

	attempts, err := s.repo.SessionAttempts(context.Background(), s.sessionID)
	s.Require().NoError(err)
	s.Require().Len(attempts, 1)
	s.Assert().Equal("General Chemistry", attempts[0].Subject)
	s.Assert().Equal(3, attempts[0].Chapter)
	s.Assert().Equal("Bonding", attempts[0].ChapterTitle)
}

func (s *AttemptRepositorySuite) TestTodayCounts() {
	s.recordAttempt("bio_q1", true)
	s.recordAttempt("bio_q2", false)

	answered, correct, err := s.repo.TodayCounts(context.Background(), 1)
	s.Require().NoError(err)
	s.Assert().Equal(2, answered)
	s.Assert().Equal(1, correct)

	answered, correct, err = s.repo.TodayCounts(context.Background(), 2)
	s.Require().NoError(err)
	s.Assert().Zero(answered)
	s.Assert().Zero(correct)
}

func (s *AttemptRepositorySuite) TestSetErrorType() {
	id := s.recordAttempt("bio_q1", false)

	updated, err := s.repo.SetErrorType(context.Background(), id, models.ErrorCareless)
	s.Require().NoError(err)
	s.Assert().True(updated)

	updated, err = s.repo.SetErrorType(context.Background(), 99999, models.ErrorCareless)
	s.Require().NoError(err)
	s.Assert().False(updated)

	counts, err := s.repo.ErrorTypeCounts(context.Background(), 1)
	s.Require().NoError(err)
	s.Require().Len(counts, 1)
	s.Assert().Equal(models.ErrorCareless, counts[0].ErrorType)
	s.Assert().Equal(1, counts[0].Count)
}

func (s *AttemptRepositorySuite) TestOverall() {
	s.recordAttempt("bio_q1", true)
	s.recordAttempt("bio_q2", false)

	total, correct, avgTime, err := s.repo.Overall(context.Background(), 1)
	s.Require().NoError(err)
	s.Assert().Equal(2, total)
	s.Assert().Equal(1, correct)
	s.Assert().InDelta(30.0, avgTime, 1e-9)
}

func TestAttemptRepositorySuite(t *testing.T) {
	suite.Run(t, new(AttemptRepositorySuite))
}
