package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	FeedbackSaran   = "saran"
	FeedbackKeluhan = "keluhan"
	FeedbackPujian  = "pujian"
	FeedbackBug     = "bug"
	FeedbackFitur   = "fitur"
)

type Feedback struct {
	ID           uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       *uuid.UUID   `gorm:"type:uuid" json:"user_id,omitempty"`
	Nama         string       `gorm:"size:100;not null" json:"nama"`
	FeedbackType string       `gorm:"size:30;not null" json:"feedback_type"`
	Subject      string       `gorm:"size:255;not null" json:"subject"`
	Message      string       `gorm:"type:text;not null" json:"message"`
	Rating       int          `gorm:"not null" json:"rating"`
	Email        *string      `gorm:"size:100" json:"email,omitempty"`
	PhotoURL     *string      `gorm:"type:text" json:"photo_url,omitempty"`
	Status       ReportStatus `gorm:"size:20;not null;default:menunggu" json:"status"`
	CreatedAt    time.Time    `gorm:"autoCreateTime" json:"created_at"`
}

func (f *Feedback) BeforeCreate(tx *gorm.DB) (err error) {
	if f.ID == uuid.Nil {
		f.ID, err = uuid.NewV7()
	}
	return
}

// FeedbackPhoto mencatat foto yang sudah terlanjur diupload ke storage.
// FeedbackID diisi setelah record feedback-nya berhasil dibuat; baris yang
// tetap kosong dibersihkan oleh job cleanup.
type FeedbackPhoto struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	FeedbackID *uuid.UUID `gorm:"type:uuid;index" json:"feedback_id,omitempty"`
	FileURL    string     `gorm:"type:text;not null" json:"file_url"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (p *FeedbackPhoto) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID, err = uuid.NewV7()
	}
	return
}
