package domain

import "time"

// ContentType identifies which content table a reaction engine works on
type ContentType string

const (
	ContentEntry    ContentType = "entry"
	ContentAnswer   ContentType = "answer"
	ContentQuestion ContentType = "question"
)

// ContentSource describes where a content type lives and where its reactions are stored.
// ID spaces of different content types are disjoint.
type ContentSource struct {
	Type          ContentType
	Table         string
	IDColumn      string
	AuthorColumn  string
	ReactionTable string
}

var (
	EntrySource = ContentSource{
		Type:          ContentEntry,
		Table:         "entries",
		IDColumn:      "id",
		AuthorColumn:  "user_id",
		ReactionTable: EntryReaction{}.TableName(),
	}
	AnswerSource = ContentSource{
		Type:          ContentAnswer,
		Table:         "answers",
		IDColumn:      "id",
		AuthorColumn:  "user_id",
		ReactionTable: AnswerReaction{}.TableName(),
	}
	QuestionSource = ContentSource{
		Type:          ContentQuestion,
		Table:         "questions",
		IDColumn:      "id",
		AuthorColumn:  "asker_id",
		ReactionTable: QuestionLike{}.TableName(),
	}
)

// Entry is a post inside a forum thread.
// Owned by the forum module; only ID and UserID are read here.
type Entry struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ForumID   int64     `gorm:"column:forum_id;index" json:"forum_id"`
	UserID    int64     `gorm:"column:user_id;index" json:"user_id"`
	Content   string    `gorm:"column:content;type:text" json:"content"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName returns the table name for entries
func (Entry) TableName() string {
	return "entries"
}

// Answer (cevap) is a response to a question
type Answer struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	QuestionID int64     `gorm:"column:question_id;index" json:"question_id"`
	UserID     int64     `gorm:"column:user_id;index" json:"user_id"`
	Content    string    `gorm:"column:content;type:text" json:"content"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName returns the table name for answers
func (Answer) TableName() string {
	return "answers"
}

// Question (soru)
type Question struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	AskerID   int64     `gorm:"column:asker_id;index" json:"asker_id"`
	Content   string    `gorm:"column:content;type:text" json:"content"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName returns the table name for questions
func (Question) TableName() string {
	return "questions"
}
