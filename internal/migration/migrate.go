package migration

import (
	"github.com/unikampus/kampus-backend/internal/domain"
	"gorm.io/gorm"
)

// Run executes AutoMigrate for the reaction tables.
// The unique (content_id, user_id) index on each table is what keeps one reaction per user per item.
func Run(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.EntryReaction{},
		&domain.AnswerReaction{},
		&domain.QuestionLike{},
	)
}

// RunContentSchema creates the minimal member and content tables the reaction engines read from.
// In production these tables are owned by the surrounding application; this is for local setups and tests.
func RunContentSchema(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Member{},
		&domain.Entry{},
		&domain.Answer{},
		&domain.Question{},
	)
}
