package domain

import (
	"time"
)

// Member domain model (members table).
// Points is the reputation balance ("puan") adjusted by reactions on the member's content.
type Member struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Username  string    `gorm:"column:username;size:50;uniqueIndex" json:"username"`
	Points    int       `gorm:"column:points;not null;default:0" json:"points"`
	Active    bool      `gorm:"column:active;not null;default:true" json:"active"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Member) TableName() string {
	return "members"
}

// PointBalanceResponse is the response DTO for a member's point balance
type PointBalanceResponse struct {
	UserID int64 `json:"user_id"`
	Points int   `json:"points"`
}
