package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/bporter/mcattrainer/internal/models"
	"github.com/bporter/mcattrainer/internal/repository"
	"github.com/bporter/mcattrainer/internal/repository/sqlite"
	"github.com/bporter/mcattrainer/internal/testutil"
)

type FlashcardRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.FlashcardRepository
}

func (s *FlashcardRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewFlashcardRepository(s.db)

	cards := []models.Flashcard{
		{ID: "fc1", Subject: "Biology", Chapter: 1, Term: "Mitochondria", Definition: "Powerhouse of the cell"},
		{ID: "fc2", Subject: "Biology", Chapter: 1, Term: "Ribosome", Definition: "Protein synthesis"},
		{ID: "fc3", Subject: "Physics and Math", Chapter: 2, Term: "Torque", Definition: "Rotational force", Mnemonic: "r cross F"},
	}
	for _, c := range cards {
		s.Require().NoError(s.repo.Upsert(context.Background(), c))
	}
}

func (s *FlashcardRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *FlashcardRepositorySuite) review(cardID string, nextReview time.Time) {
	s.Require().NoError(s.repo.RecordReview(context.Background(), models.FlashcardReview{
		UserID:         1,
		FlashcardID:    cardID,
		Correct:        true,
		EaseFactor:     2.6,
		IntervalDays:   6,
		NextReviewDate: nextReview,
	}))
}

func (s *FlashcardRepositorySuite) TestRecordReview_UpdatesStateProjection() {
	ctx := context.Background()
	s.review("fc1", time.Now().UTC().AddDate(0, 0, 6))

	st, err := s.repo.State(ctx, 1, "fc1")
	s.Require().NoError(err)
	s.Require().NotNil(st)
	s.Assert().InDelta(2.6, st.EaseFactor, 1e-9)
	s.Assert().Equal(6, st.IntervalDays)

	// Second review overwrites the projection in place.
	s.Require().NoError(s.repo.RecordReview(ctx, models.FlashcardReview{
		UserID:         1,
		FlashcardID:    "fc1",
		Correct:        false,
		EaseFactor:     2.4,
		IntervalDays:   1,
		NextReviewDate: time.Now().UTC().AddDate(0, 0, 1),
	}))

	st, err = s.repo.State(ctx, 1, "fc1")
	s.Require().NoError(err)
	s.Require().NotNil(st)
	s.Assert().InDelta(2.4, st.EaseFactor, 1e-9)
	s.Assert().Equal(1, st.IntervalDays)

	var reviewCount int
	err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM flashcard_reviews WHERE user_id = 1 AND flashcard_id = 'fc1'`).Scan(&reviewCount)
	s.Require().NoError(err)
	s.Assert().Equal(2, reviewCount, "the log keeps every review")
}

func (s *FlashcardRepositorySuite) TestState_NeverReviewed() {
	st, err := s.repo.State(context.Background(), 1, "fc1")
	s.Require().NoError(err)
	s.Assert().Nil(st)
}

func (s *FlashcardRepositorySuite) TestDue_OrderingAndCutoff() {
	ctx := context.Background()
	now := time.Now().UTC()

	// fc1 overdue since yesterday, fc2 due in 3 days, fc3 never reviewed.
	s.review("fc1", now.AddDate(0, 0, -1))
	s.review("fc2", now.AddDate(0, 0, 3))

	due, err := s.repo.Due(ctx, 1, "", 10)
	s.Require().NoError(err)
	s.Require().Len(due, 2)
	s.Assert().Equal("fc3", due[0].ID, "never-reviewed cards come first")
	s.Assert().Nil(due[0].NextReviewDate)
	s.Assert().Equal("fc1", due[1].ID)
	s.Require().NotNil(due[1].NextReviewDate)
}

func (s *FlashcardRepositorySuite) TestDue_SubjectFilter() {
	due, err := s.repo.Due(context.Background(), 1, "Biology", 10)
	s.Require().NoError(err)
	s.Require().Len(due, 2)
	for _, c := range due {
		s.Assert().Equal("Biology", c.Subject)
	}
}

func (s *FlashcardRepositorySuite) TestDue_PerUserState() {
	now := time.Now().UTC()
	s.review("fc1", now.AddDate(0, 0, 3))

	// User 2 never reviewed anything, so everything is due for them.
	due, err := s.repo.Due(context.Background(), 2, "", 10)
	s.Require().NoError(err)
	s.Assert().Len(due, 3)
}

func (s *FlashcardRepositorySuite) TestUpsert_ReplacesInPlace() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Upsert(ctx, models.Flashcard{
		ID: "fc1", Subject: "Biology", Chapter: 1, Term: "Mitochondria", Definition: "ATP factory", Category: "organelles",
	}))

	card, err := s.repo.Get(ctx, "fc1")
	s.Require().NoError(err)
	s.Require().NotNil(card)
	s.Assert().Equal("ATP factory", card.Definition)
	s.Assert().Equal("organelles", card.Category)

	cards, err := s.repo.List(ctx, "Biology", 1)
	s.Require().NoError(err)
	s.Assert().Len(cards, 2, "upsert does not duplicate")
}

func TestFlashcardRepositorySuite(t *testing.T) {
	suite.Run(t, new(FlashcardRepositorySuite))
}
