package models

type Question struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int    `json:"category" gorm:"index"` // references Category.ID, not enforced
	Difficulty int    `json:"difficulty"`
}

// QuestionView is the wire shape of a question.
type QuestionView struct {
	ID         uint   `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int    `json:"category"`
	Difficulty int    `json:"difficulty"`
}

func (q Question) Format() QuestionView {
	return QuestionView{
		ID:         q.ID,
		Question:   q.Question,
		Answer:     q.Answer,
		Category:   q.Category,
		Difficulty: q.Difficulty,
	}
}

// FormatQuestions formats a selection in order.
func FormatQuestions(questions []Question) []QuestionView {
	views := make([]QuestionView, len(questions))
	for i, q := range questions {
		views[i] = q.Format()
	}
	return views
}
