package dto

import "github.com/schoolhub/backend/internal/app/models"

// CreateQuizSessionRequest creates a session in the not_started state.
type CreateQuizSessionRequest struct {
	CampusID         string          `json:"campusId" binding:"required"`
	QuizID           string          `json:"quizId" binding:"required"`
	StudentID        string          `json:"studentId" binding:"required"`
	TimeLimitMinutes int             `json:"timeLimitMinutes" binding:"required,gt=0"`
	Metadata         models.Metadata `json:"metaData"`
}

// SubmitQuizSessionRequest completes an in-progress session.
type SubmitQuizSessionRequest struct {
	Score   float64         `json:"score" binding:"gte=0"`
	Answers models.Metadata `json:"answers"`
}
