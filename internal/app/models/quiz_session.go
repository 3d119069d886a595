package models

import "time"

// QuizSessionStatus enumerates the quiz session lifecycle:
// not_started -> in_progress -> completed | expired | abandoned.
type QuizSessionStatus string

const (
	QuizSessionNotStarted QuizSessionStatus = "not_started"
	QuizSessionInProgress QuizSessionStatus = "in_progress"
	QuizSessionCompleted  QuizSessionStatus = "completed"
	QuizSessionExpired    QuizSessionStatus = "expired"
	QuizSessionAbandoned  QuizSessionStatus = "abandoned"
)

// QuizSession tracks one student's attempt at a quiz. Expiry is evaluated
// lazily when the session is read; nothing sweeps sessions in the background.
type QuizSession struct {
	ID               string            `db:"id" json:"id"`
	CampusID         string            `db:"campus_id" json:"campusId"`
	QuizID           string            `db:"quiz_id" json:"quizId"`
	StudentID        string            `db:"student_id" json:"studentId"`
	Status           QuizSessionStatus `db:"status" json:"status"`
	TimeLimitMinutes int               `db:"time_limit_minutes" json:"timeLimitMinutes"`
	StartedAt        *time.Time        `db:"started_at" json:"startedAt,omitempty"`
	ExpiresAt        *time.Time        `db:"expires_at" json:"expiresAt,omitempty"`
	Score            float64           `db:"score" json:"score"`
	Answers          Metadata          `db:"answers" json:"answers,omitempty"`
	IsDeleted        bool              `db:"is_deleted" json:"isDeleted"`
	Metadata         Metadata          `db:"meta_data" json:"metaData,omitempty"`
	CreatedAt        time.Time         `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time         `db:"updated_at" json:"updatedAt"`
}

// IsExpired reports whether an in-progress session has passed its deadline.
func (s *QuizSession) IsExpired(now time.Time) bool {
	return s.Status == QuizSessionInProgress && s.ExpiresAt != nil && now.After(*s.ExpiresAt)
}
