// Package testutil provides an in-memory SQLite database with the reaction schema for tests.
package testutil

import (
	"testing"

	"github.com/unikampus/kampus-backend/internal/domain"
	"github.com/unikampus/kampus-backend/internal/migration"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewDB opens a fresh in-memory database with member, content and reaction tables.
// A single connection is used so every statement sees the same memory database.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := migration.RunContentSchema(db); err != nil {
		t.Fatalf("content schema: %v", err)
	}
	if err := migration.Run(db); err != nil {
		t.Fatalf("reaction schema: %v", err)
	}
	return db
}

// CreateMember inserts an active member with the given balance
func CreateMember(t testing.TB, db *gorm.DB, username string, points int) *domain.Member {
	t.Helper()
	m := &domain.Member{Username: username, Points: points, Active: true}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("create member: %v", err)
	}
	return m
}

// CreateEntry inserts a forum entry authored by userID
func CreateEntry(t testing.TB, db *gorm.DB, userID int64) *domain.Entry {
	t.Helper()
	e := &domain.Entry{ForumID: 1, UserID: userID, Content: "entry"}
	if err := db.Create(e).Error; err != nil {
		t.Fatalf("create entry: %v", err)
	}
	return e
}

// CreateAnswer inserts an answer authored by userID
func CreateAnswer(t testing.TB, db *gorm.DB, userID int64) *domain.Answer {
	t.Helper()
	a := &domain.Answer{QuestionID: 1, UserID: userID, Content: "answer"}
	if err := db.Create(a).Error; err != nil {
		t.Fatalf("create answer: %v", err)
	}
	return a
}

// CreateQuestion inserts a question asked by userID
func CreateQuestion(t testing.TB, db *gorm.DB, userID int64) *domain.Question {
	t.Helper()
	q := &domain.Question{AskerID: userID, Content: "question"}
	if err := db.Create(q).Error; err != nil {
		t.Fatalf("create question: %v", err)
	}
	return q
}

// Points reads a member's balance directly
func Points(t testing.TB, db *gorm.DB, userID int64) int {
	t.Helper()
	var m domain.Member
	if err := db.Where("id = ?", userID).Take(&m).Error; err != nil {
		t.Fatalf("read member: %v", err)
	}
	return m.Points
}

// CountReactions counts rows in a reaction table for (contentID, userID)
func CountReactions(t testing.TB, db *gorm.DB, table string, contentID, userID int64) int64 {
	t.Helper()
	var n int64
	if err := db.Table(table).Where("content_id = ? AND user_id = ?", contentID, userID).Count(&n).Error; err != nil {
		t.Fatalf("count reactions: %v", err)
	}
	return n
}
