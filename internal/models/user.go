package models

import "time"

// User is a registered account. PasswordHash is never serialized.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session is an issued bearer token bound to a user
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its lifetime at the given instant
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// Application tracks one submitted or planned admission application
type Application struct {
	ID           string    `json:"id"`
	UniversityID string    `json:"university_id"`
	ProgramID    string    `json:"program_id"`
	Status       string    `json:"status"`
	Notes        string    `json:"notes,omitempty"`
	SubmittedAt  time.Time `json:"submitted_at,omitempty"`
}

// RoadmapSubtask is a single step inside a roadmap item
type RoadmapSubtask struct {
	Title   string `json:"title"`
	DueDate string `json:"due_date"` // YYYY-MM-DD
}

// RoadmapItem is one milestone on an admission roadmap
type RoadmapItem struct {
	ID               string           `json:"id"`
	Title            string           `json:"title"`
	Description      string           `json:"description"`
	DueDate          string           `json:"due_date"` // YYYY-MM-DD
	Priority         int              `json:"priority"` // 1 (highest) .. 5
	NotifyBeforeDays int              `json:"notify_before_days"`
	Subtasks         []RoadmapSubtask `json:"subtasks"`
}
