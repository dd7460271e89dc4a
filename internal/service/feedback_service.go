package service

import (
	"context"
	"log"
	"time"

	"github.com/adistaps/simola-backend/internal/dto"
	"github.com/adistaps/simola-backend/internal/model"
	"github.com/adistaps/simola-backend/internal/repository"
	"github.com/adistaps/simola-backend/pkg/storage"
)

type FeedbackService interface {
	Create(ctx context.Context, input dto.CreateFeedbackInput, photo *dto.PhotoFile) (*model.Feedback, error)
	List(ctx context.Context) ([]model.Feedback, error)
	Stats(ctx context.Context) (*dto.FeedbackStats, error)
	// CleanupOrphanPhotos menghapus foto yang terupload tapi feedback-nya
	// tidak pernah jadi dibuat.
	CleanupOrphanPhotos(ctx context.Context) error
}

type feedbackService struct {
	repo         repository.FeedbackRepository
	photoStorage storage.PhotoStorage
	uploadFolder string
}

func NewFeedbackService(repo repository.FeedbackRepository, photoStorage storage.PhotoStorage, uploadFolder string) FeedbackService {
	return &feedbackService{
		repo:         repo,
		photoStorage: photoStorage,
		uploadFolder: uploadFolder,
	}
}

func (s *feedbackService) Create(ctx context.Context, input dto.CreateFeedbackInput, photo *dto.PhotoFile) (*model.Feedback, error) {
	// Foto diupload lebih dulu; hanya URL-nya yang tersimpan di record.
	// Dua penulisan ini tidak transaksional, makanya foto dicatat di tabel
	// sendiri supaya bisa dibersihkan kalau pembuatan record-nya gagal.
	var photoURL *string
	var photoRow *model.FeedbackPhoto

	if photo != nil && photo.Reader != nil && s.photoStorage != nil {
		url, err := s.photoStorage.UploadPhoto(ctx, photo.Reader, s.uploadFolder, photo.FileName)
		if err != nil {
			return nil, err
		}
		photoURL = &url

		photoRow = &model.FeedbackPhoto{FileURL: url}
		if err := s.repo.CreatePhoto(ctx, photoRow); err != nil {
			log.Printf("Failed to record feedback photo: %v", err)
			photoRow = nil
		}
	}

	feedback := &model.Feedback{
		UserID:       input.UserID,
		Nama:         input.Nama,
		FeedbackType: input.FeedbackType,
		Subject:      input.Subject,
		Message:      input.Message,
		Rating:       input.Rating,
		Email:        input.Email,
		PhotoURL:     photoURL,
		Status:       model.StatusMenunggu,
	}

	if err := s.repo.Create(ctx, feedback); err != nil {
		// Kompensasi langsung; sisanya ditangkap job cleanup.
		if photoURL != nil && s.photoStorage != nil {
			if delErr := s.photoStorage.DeletePhoto(ctx, *photoURL); delErr != nil {
				log.Printf("Failed to delete feedback photo after insert failure: %v", delErr)
			} else if photoRow != nil {
				if delErr := s.repo.DeletePhoto(ctx, photoRow.ID); delErr != nil {
					log.Printf("Failed to remove feedback photo record: %v", delErr)
				}
			}
		}
		return nil, err
	}

	if photoRow != nil {
		if err := s.repo.LinkPhoto(ctx, photoRow.ID, feedback.ID); err != nil {
			log.Printf("Failed to link feedback photo: %v", err)
		}
	}

	return feedback, nil
}

func (s *feedbackService) List(ctx context.Context) ([]model.Feedback, error) {
	return s.repo.FindAll(ctx)
}

func (s *feedbackService) Stats(ctx context.Context) (*dto.FeedbackStats, error) {
	feedbacks, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := ComputeFeedbackStats(feedbacks, time.Now())
	return &stats, nil
}

// ComputeFeedbackStats menurunkan statistik feedback dari kumpulan yang sudah
// diambil; murni fungsi dari inputnya.
func ComputeFeedbackStats(feedbacks []model.Feedback, now time.Time) dto.FeedbackStats {
	stats := dto.FeedbackStats{
		Total:  len(feedbacks),
		ByType: make(map[string]int),
	}

	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	ratingSum := 0
	for _, f := range feedbacks {
		ratingSum += f.Rating
		if !f.CreatedAt.Before(midnight) {
			stats.Today++
		}
		stats.ByType[f.FeedbackType]++
	}
	if stats.Total > 0 {
		stats.AverageRating = float64(ratingSum) / float64(stats.Total)
	}
	return stats
}

func (s *feedbackService) CleanupOrphanPhotos(ctx context.Context) error {
	cutoff := time.Now().Add(-24 * time.Hour)

	orphans, err := s.repo.FindOrphanPhotos(ctx, cutoff)
	if err != nil {
		return err
	}

	for _, photo := range orphans {
		if s.photoStorage != nil {
			if err := s.photoStorage.DeletePhoto(ctx, photo.FileURL); err != nil {
				log.Printf("Failed to delete orphan photo %s: %v", photo.ID, err)
				continue
			}
		}
		if err := s.repo.DeletePhoto(ctx, photo.ID); err != nil {
			log.Printf("Failed to delete orphan photo record %s: %v", photo.ID, err)
		}
	}

	return nil
}
