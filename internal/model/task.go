package model

import "time"

// Task is a unit of work owned by exactly one user. Visibility and
// mutation are always scoped to the owning user's id.
type Task struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Title        string    `json:"title" gorm:"size:255;not null"`
	Description  string    `json:"description" gorm:"size:2048"`
	IsCompleted  bool      `json:"is_completed" gorm:"default:false"`
	DueDate      time.Time `json:"due_date"`
	ReminderDate time.Time `json:"reminder_date"`
	Priority     string    `json:"priority" gorm:"size:64;not null"`
	UserID       string    `json:"user_id" gorm:"type:char(36);not null;index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
