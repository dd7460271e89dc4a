package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/adistaps/simola-backend/internal/dto"
	"github.com/adistaps/simola-backend/internal/model"
	"github.com/adistaps/simola-backend/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReportRepository interface {
	Create(ctx context.Context, report *model.Report) error
	FindAll(ctx context.Context, filter dto.ReportFilter) ([]model.Report, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Report, error)
	// Update menulis hanya field yang ada di map; field lain tidak disentuh.
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *model.Report) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *reportRepository) FindAll(ctx context.Context, filter dto.ReportFilter) ([]model.Report, error) {
	query := r.db.WithContext(ctx).
		Preload("Petugas").
		Preload("Petugas.Profile").
		Order("created_at DESC")

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Prioritas != "" {
		query = query.Where("prioritas = ?", filter.Prioritas)
	}
	if filter.Kategori != "" {
		query = query.Where("kategori = ?", filter.Kategori)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(nomor_laporan) LIKE ? OR LOWER(judul) LIKE ? OR LOWER(pelapor_nama) LIKE ? OR LOWER(lokasi) LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	var reports []model.Report
	if err := query.Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *reportRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Report, error) {
	var report model.Report
	if err := r.db.WithContext(ctx).
		Preload("Petugas").
		Preload("Petugas.Profile").
		Where("id = ?", id).
		First(&report).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&model.Report{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *reportRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Report{}, "id = ?", id).Error
}
