package models

// Question is an immutable catalog entry. The scheduler only ever reads these;
// mutation happens through import tooling.
type Question struct {
	ID             string  `json:"id"`
	Subject        string  `json:"subject"`
	Chapter        int     `json:"chapter"`
	ChapterTitle   string  `json:"chapter_title"`
	QuestionNumber int     `json:"question_number"`
	QuestionText   string  `json:"question_text"`
	Options        JSONMap `json:"options"`
	CorrectAnswer  string  `json:"correct_answer"`
	Explanation    string  `json:"explanation"`
	// Optional enhanced-explanation fields. Absent on questions that never
	// went through enrichment; WrongAnswerExplanations is empty, not nil-prone.
	ShortReason             string  `json:"short_reason,omitempty"`
	WrongAnswerExplanations JSONMap `json:"wrong_answer_explanations,omitempty"`
}

// Topic identifies the unit of weakness tracking.
type Topic struct {
	Subject string `json:"subject"`
	Chapter int    `json:"chapter"`
}

// QuestionPublic is a question with the answer and explanations stripped,
// safe to show before the learner answers.
type QuestionPublic struct {
	ID             string  `json:"id"`
	Subject        string  `json:"subject"`
	Chapter        int     `json:"chapter"`
	ChapterTitle   string  `json:"chapter_title"`
	QuestionNumber int     `json:"question_number"`
	QuestionText   string  `json:"question_text"`
	Options        JSONMap `json:"options"`
}

// Public strips answer-revealing fields.
func (q Question) Public() QuestionPublic {
	return QuestionPublic{
		ID:             q.ID,
		Subject:        q.Subject,
		Chapter:        q.Chapter,
		ChapterTitle:   q.ChapterTitle,
		QuestionNumber: q.QuestionNumber,
		QuestionText:   q.QuestionText,
		Options:        q.Options,
	}
}

func (q Question) Topic() Topic {
	return Topic{Subject: q.Subject, Chapter: q.Chapter}
}

// Citation points back at the source material for an answered question.
type Citation struct {
	Source         string `json:"source"`
	Chapter        int    `json:"chapter"`
	ChapterTitle   string `json:"chapter_title"`
	QuestionNumber int    `json:"question_number"`
}
