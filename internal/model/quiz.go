package model

// Quiz is a role-play application form: an ordered set of timed free-text
// questions shown to applicants while the quiz is open. A quiz with zero
// questions is invalid and rejected on save.
// swagger:model Quiz
type Quiz struct {
	UUIDBase
	TitleKey       string         `gorm:"size:100;not null" json:"titleKey"`
	DescriptionKey string         `gorm:"size:100;not null" json:"descriptionKey"`
	IsOpen         bool           `gorm:"default:false" json:"isOpen"`
	Questions      []QuizQuestion `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// swagger:model QuizQuestion
type QuizQuestion struct {
	UUIDBase
	QuizID    string `gorm:"index;type:varchar(36)" json:"quizId"`
	TextKey   string `gorm:"size:100;not null" json:"textKey"`
	TimeLimit int    `gorm:"not null" json:"timeLimit"` // Seconds, must be positive
	Order     int    `gorm:"default:0" json:"order"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}
