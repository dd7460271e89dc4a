package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/adistaps/simola-backend/internal/dto"
	"github.com/adistaps/simola-backend/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFeedbackRepo struct {
	feedbacks []model.Feedback
	photos    []model.FeedbackPhoto
	createErr error
}

func (f *fakeFeedbackRepo) Create(ctx context.Context, feedback *model.Feedback) error {
	if f.createErr != nil {
		return f.createErr
	}
	if feedback.ID == uuid.Nil {
		feedback.ID = uuid.New()
	}
	f.feedbacks = append(f.feedbacks, *feedback)
	return nil
}

func (f *fakeFeedbackRepo) FindAll(ctx context.Context) ([]model.Feedback, error) {
	return f.feedbacks, nil
}

func (f *fakeFeedbackRepo) CreatePhoto(ctx context.Context, photo *model.FeedbackPhoto) error {
	if photo.ID == uuid.Nil {
		photo.ID = uuid.New()
	}
	if photo.CreatedAt.IsZero() {
		photo.CreatedAt = time.Now()
	}
	f.photos = append(f.photos, *photo)
	return nil
}

func (f *fakeFeedbackRepo) LinkPhoto(ctx context.Context, photoID, feedbackID uuid.UUID) error {
	for i := range f.photos {
		if f.photos[i].ID == photoID {
			id := feedbackID
			f.photos[i].FeedbackID = &id
		}
	}
	return nil
}

func (f *fakeFeedbackRepo) FindOrphanPhotos(ctx context.Context, cutoff time.Time) ([]model.FeedbackPhoto, error) {
	var orphans []model.FeedbackPhoto
	for _, p := range f.photos {
		if p.FeedbackID == nil && p.CreatedAt.Before(cutoff) {
			orphans = append(orphans, p)
		}
	}
	return orphans, nil
}

func (f *fakeFeedbackRepo) DeletePhoto(ctx context.Context, id uuid.UUID) error {
	for i := range f.photos {
		if f.photos[i].ID == id {
			f.photos = append(f.photos[:i], f.photos[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakePhotoStorage struct {
	uploads []string
	deletes []string
}

func (f *fakePhotoStorage) UploadPhoto(ctx context.Context, r io.Reader, folder, fileName string) (string, error) {
	url := "https://cdn.example.com/" + folder + "/" + fileName
	f.uploads = append(f.uploads, url)
	return url, nil
}

func (f *fakePhotoStorage) DeletePhoto(ctx context.Context, fileURL string) error {
	f.deletes = append(f.deletes, fileURL)
	return nil
}

func feedbackInput() dto.CreateFeedbackInput {
	return dto.CreateFeedbackInput{
		Nama:         "Budi Santoso",
		FeedbackType: model.FeedbackSaran,
		Subject:      "Tampilan dashboard",
		Message:      "Tambahkan filter tanggal di daftar laporan",
		Rating:       4,
	}
}

func TestCreateFeedbackWithoutPhoto(t *testing.T) {
	repo := &fakeFeedbackRepo{}
	svc := NewFeedbackService(repo, &fakePhotoStorage{}, "simola110")

	feedback, err := svc.Create(context.Background(), feedbackInput(), nil)
	require.NoError(t, err)

	assert.Equal(t, model.StatusMenunggu, feedback.Status)
	assert.Nil(t, feedback.PhotoURL)
	assert.Len(t, repo.feedbacks, 1)
}

func TestCreateFeedbackUploadsAndLinksPhoto(t *testing.T) {
	repo := &fakeFeedbackRepo{}
	store := &fakePhotoStorage{}
	svc := NewFeedbackService(repo, store, "simola110")

	photo := &dto.PhotoFile{Reader: strings.NewReader("img"), FileName: "bukti.jpg"}
	feedback, err := svc.Create(context.Background(), feedbackInput(), photo)
	require.NoError(t, err)

	require.NotNil(t, feedback.PhotoURL)
	assert.Len(t, store.uploads, 1)
	require.Len(t, repo.photos, 1)
	require.NotNil(t, repo.photos[0].FeedbackID)
	assert.Equal(t, feedback.ID, *repo.photos[0].FeedbackID)
}

func TestCreateFeedbackCompensatesPhotoOnInsertFailure(t *testing.T) {
	repo := &fakeFeedbackRepo{createErr: errors.New("insert gagal")}
	store := &fakePhotoStorage{}
	svc := NewFeedbackService(repo, store, "simola110")

	photo := &dto.PhotoFile{Reader: strings.NewReader("img"), FileName: "bukti.jpg"}
	_, err := svc.Create(context.Background(), feedbackInput(), photo)
	require.Error(t, err)

	// foto yang terlanjur terupload dihapus lagi beserta record pelacaknya
	assert.Len(t, store.deletes, 1)
	assert.Empty(t, repo.photos)
}

func TestCleanupOrphanPhotosRespectsCutoff(t *testing.T) {
	repo := &fakeFeedbackRepo{}
	store := &fakePhotoStorage{}
	svc := NewFeedbackService(repo, store, "simola110")

	feedbackID := uuid.New()
	repo.photos = []model.FeedbackPhoto{
		{ID: uuid.New(), FileURL: "https://cdn.example.com/a.jpg", CreatedAt: time.Now().Add(-48 * time.Hour)},
		{ID: uuid.New(), FileURL: "https://cdn.example.com/b.jpg", CreatedAt: time.Now().Add(-1 * time.Hour)},
		{ID: uuid.New(), FeedbackID: &feedbackID, FileURL: "https://cdn.example.com/c.jpg", CreatedAt: time.Now().Add(-48 * time.Hour)},
	}

	require.NoError(t, svc.CleanupOrphanPhotos(context.Background()))

	// hanya yatim yang lebih tua dari 24 jam yang dihapus
	require.Len(t, store.deletes, 1)
	assert.Equal(t, "https://cdn.example.com/a.jpg", store.deletes[0])
	assert.Len(t, repo.photos, 2)
}

func TestComputeFeedbackStats(t *testing.T) {
	now := time.Date(2024, 6, 15, 14, 0, 0, 0, time.UTC)
	feedbacks := []model.Feedback{
		{FeedbackType: model.FeedbackSaran, Rating: 5, CreatedAt: now.Add(-1 * time.Hour)},
		{FeedbackType: model.FeedbackSaran, Rating: 3, CreatedAt: now.Add(-30 * time.Hour)},
		{FeedbackType: model.FeedbackBug, Rating: 1, CreatedAt: now.Add(-2 * time.Hour)},
	}

	stats := ComputeFeedbackStats(feedbacks, now)

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Today)
	assert.InDelta(t, 3.0, stats.AverageRating, 0.001)
	assert.Equal(t, 2, stats.ByType[model.FeedbackSaran])
	assert.Equal(t, 1, stats.ByType[model.FeedbackBug])
}

func TestComputeFeedbackStatsEmpty(t *testing.T) {
	stats := ComputeFeedbackStats(nil, time.Now())

	assert.Equal(t, 0, stats.Total)
	assert.Equal(t, 0.0, stats.AverageRating)
	assert.Empty(t, stats.ByType)
}
