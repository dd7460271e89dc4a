package dto

import (
	"io"

	"github.com/google/uuid"
)

type CreateFeedbackInput struct {
	Nama         string     `json:"nama" form:"nama" binding:"required"`
	UserID       *uuid.UUID `json:"user_id" form:"user_id"`
	FeedbackType string     `json:"feedback_type" form:"feedback_type" binding:"required,oneof=saran keluhan pujian bug fitur"`
	Subject      string     `json:"subject" form:"subject" binding:"required"`
	Message      string     `json:"message" form:"message" binding:"required"`
	Rating       int        `json:"rating" form:"rating" binding:"required,min=1,max=5"`
	Email        *string    `json:"email" form:"email" binding:"omitempty,email"`
}

// PhotoFile adalah foto lampiran feedback yang diupload user.
type PhotoFile struct {
	Reader   io.Reader
	FileName string
}

type FeedbackStats struct {
	Total         int            `json:"total"`
	AverageRating float64        `json:"averageRating"`
	Today         int            `json:"today"`
	ByType        map[string]int `json:"byType"`
}
