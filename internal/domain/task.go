package domain

import "time"

// TaskType drives the client's icon dispatch; a closed set rather than a
// free-form string so new variants surface at compile time.
type TaskType string

const (
	TaskTypeTelegram TaskType = "telegram"
	TaskTypeTwitter  TaskType = "twitter"
	TaskTypeYoutube  TaskType = "youtube"
	TaskTypePartner  TaskType = "partner"
)

// Task is an admin-curated social task paying a one-time balance reward.
type Task struct {
	ID        int64    `db:"id" json:"id"`
	Type      TaskType `db:"type" json:"type"`
	Title     string   `db:"title" json:"title"`
	URL       string   `db:"url" json:"url"`
	Reward    Money    `db:"reward" json:"reward"`
	IsActive  bool     `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// UserTask records a completed (checked) task per user.
type UserTask struct {
	ID          int64     `db:"id" json:"id"`
	UserID      int64     `db:"user_id" json:"user_id"`
	TaskID      int64     `db:"task_id" json:"task_id"`
	CompletedAt time.Time `db:"completed_at" json:"completed_at"`
}
