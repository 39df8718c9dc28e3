package domain

import "time"

// ReactionKind is a user's stance on an entry or answer
type ReactionKind string

const (
	ReactionLike    ReactionKind = "Like"
	ReactionDislike ReactionKind = "Dislike"
)

// ParseReactionKind validates a raw reaction kind. Only "Like" and "Dislike" are accepted.
func ParseReactionKind(s string) (ReactionKind, bool) {
	switch ReactionKind(s) {
	case ReactionLike, ReactionDislike:
		return ReactionKind(s), true
	default:
		return "", false
	}
}

// Outcome tells the caller what a reaction request did
type Outcome string

const (
	OutcomeAdded    Outcome = "added"
	OutcomeRemoved  Outcome = "removed"
	OutcomeSwitched Outcome = "switched"
)

// ReactionAction is the write a transition performs on the reaction store
type ReactionAction int

const (
	ActionInsert ReactionAction = iota + 1
	ActionDelete
	ActionUpdate
)

// Transition is one row of the reaction state machine.
// Sign is multiplied by the domain's point constant to get the author delta.
type Transition struct {
	Action  ReactionAction
	Sign    int
	Outcome Outcome
}

type transitionKey struct {
	existing  ReactionKind // "" when the user has no reaction yet
	requested ReactionKind
}

var transitions = map[transitionKey]Transition{
	{"", ReactionLike}:                 {Action: ActionInsert, Sign: +1, Outcome: OutcomeAdded},
	{"", ReactionDislike}:              {Action: ActionInsert, Sign: 0, Outcome: OutcomeAdded},
	{ReactionLike, ReactionLike}:       {Action: ActionDelete, Sign: -1, Outcome: OutcomeRemoved},
	{ReactionDislike, ReactionDislike}: {Action: ActionDelete, Sign: 0, Outcome: OutcomeRemoved},
	{ReactionLike, ReactionDislike}:    {Action: ActionUpdate, Sign: -1, Outcome: OutcomeSwitched},
	{ReactionDislike, ReactionLike}:    {Action: ActionUpdate, Sign: +1, Outcome: OutcomeSwitched},
}

// NextTransition looks up the transition for the stored kind (nil if none) and the requested kind.
// ok is false only when requested is not a valid ReactionKind.
func NextTransition(existing *ReactionKind, requested ReactionKind) (Transition, bool) {
	key := transitionKey{requested: requested}
	if existing != nil {
		key.existing = *existing
	}
	t, ok := transitions[key]
	return t, ok
}

// Reaction is a single row of a reaction table.
// The same row shape is shared by entry_reactions, answer_reactions and question_likes.
type Reaction struct {
	ID        int64        `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	ContentID int64        `gorm:"column:content_id" json:"content_id"`
	UserID    int64        `gorm:"column:user_id" json:"user_id"`
	Kind      ReactionKind `gorm:"column:kind;size:16" json:"kind"`
	UpdatedAt time.Time    `gorm:"column:updated_at" json:"updated_at"`
}

// EntryReaction is the schema of entry_reactions (forum entry Like/Dislike)
type EntryReaction struct {
	ID        int64        `gorm:"column:id;primaryKey;autoIncrement"`
	ContentID int64        `gorm:"column:content_id;not null;uniqueIndex:idx_entry_reactions_content_user,priority:1"`
	UserID    int64        `gorm:"column:user_id;not null;uniqueIndex:idx_entry_reactions_content_user,priority:2;index:idx_entry_reactions_user"`
	Kind      ReactionKind `gorm:"column:kind;size:16;not null"`
	UpdatedAt time.Time    `gorm:"column:updated_at"`
}

// TableName returns the table name for entry reactions
func (EntryReaction) TableName() string {
	return "entry_reactions"
}

// AnswerReaction is the schema of answer_reactions (question answer Like/Dislike)
type AnswerReaction struct {
	ID        int64        `gorm:"column:id;primaryKey;autoIncrement"`
	ContentID int64        `gorm:"column:content_id;not null;uniqueIndex:idx_answer_reactions_content_user,priority:1"`
	UserID    int64        `gorm:"column:user_id;not null;uniqueIndex:idx_answer_reactions_content_user,priority:2;index:idx_answer_reactions_user"`
	Kind      ReactionKind `gorm:"column:kind;size:16;not null"`
	UpdatedAt time.Time    `gorm:"column:updated_at"`
}

// TableName returns the table name for answer reactions
func (AnswerReaction) TableName() string {
	return "answer_reactions"
}

// QuestionLike is the schema of question_likes. Kind is always Like.
type QuestionLike struct {
	ID        int64        `gorm:"column:id;primaryKey;autoIncrement"`
	ContentID int64        `gorm:"column:content_id;not null;uniqueIndex:idx_question_likes_content_user,priority:1"`
	UserID    int64        `gorm:"column:user_id;not null;uniqueIndex:idx_question_likes_content_user,priority:2;index:idx_question_likes_user"`
	Kind      ReactionKind `gorm:"column:kind;size:16;not null;default:Like"`
	UpdatedAt time.Time    `gorm:"column:updated_at"`
}

// TableName returns the table name for question likes
func (QuestionLike) TableName() string {
	return "question_likes"
}

// ReactionRequest is the body of POST .../reaction
type ReactionRequest struct {
	Kind string `json:"kind" binding:"required"`
}

// ReactionResult is returned after a reaction was applied
type ReactionResult struct {
	Outcome Outcome       `json:"outcome"`
	Kind    *ReactionKind `json:"kind"` // stored kind after the call, nil when removed
}

// ReactionStatus is the caller's current reaction on a content item
type ReactionStatus struct {
	Kind *ReactionKind `json:"kind"`
}

// ReactionTally is the aggregate Like/Dislike count of a content item
type ReactionTally struct {
	ContentID int64 `json:"content_id"`
	Likes     int64 `json:"likes"`
	Dislikes  int64 `json:"dislikes"`
}

// LikeStatus is the caller's like state on a question plus its like count
type LikeStatus struct {
	Liked bool  `json:"liked"`
	Count int64 `json:"count"`
}

// LikedContentResponse lists content IDs the caller currently likes
type LikedContentResponse struct {
	ContentType ContentType `json:"content_type"`
	IDs         []int64     `json:"ids"`
	Total       int64       `json:"total"`
}
