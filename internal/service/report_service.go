package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/adistaps/simola-backend/internal/domain"
	"github.com/adistaps/simola-backend/internal/dto"
	"github.com/adistaps/simola-backend/internal/model"
	"github.com/adistaps/simola-backend/internal/repository"
	"github.com/adistaps/simola-backend/pkg/apperror"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type ReportService interface {
	Create(ctx context.Context, input dto.CreateReportInput) (*model.Report, error)
	List(ctx context.Context, filter dto.ReportFilter) ([]model.Report, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Report, error)
	Update(ctx context.Context, id uuid.UUID, input dto.UpdateReportInput) (*model.Report, error)
	// UpdateStatus hanya mengubah status; nilai yang sama dengan status saat
	// ini tidak memicu panggilan ke database sama sekali.
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.Report, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*dto.ReportStats, error)
}

type reportService struct {
	repo        repository.ReportRepository
	search      SearchService
	redisClient *redis.Client
}

func NewReportService(repo repository.ReportRepository, search SearchService, redisClient *redis.Client) ReportService {
	return &reportService{
		repo:        repo,
		search:      search,
		redisClient: redisClient,
	}
}

func (s *reportService) Create(ctx context.Context, input dto.CreateReportInput) (*model.Report, error) {
	normalized, err := domain.ValidateCreateReport(input)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperror.ErrInvalidInput, err.Error())
	}

	report := domain.BuildReport(normalized, time.Now())
	if err := s.repo.Create(ctx, report); err != nil {
		return nil, err
	}

	s.afterWrite(ctx, report, ReportEventCreated)
	return report, nil
}

func (s *reportService) List(ctx context.Context, filter dto.ReportFilter) ([]model.Report, error) {
	return s.repo.FindAll(ctx, filter)
}

func (s *reportService) Get(ctx context.Context, id uuid.UUID) (*model.Report, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *reportService) Update(ctx context.Context, id uuid.UUID, input dto.UpdateReportInput) (*model.Report, error) {
	fields, err := updateFields(input)
	if err != nil {
		return nil, err
	}

	// Tidak ada yang berubah: kembalikan kondisi sekarang tanpa menulis.
	if len(fields) == 0 {
		return s.repo.FindByID(ctx, id)
	}

	if err := s.repo.Update(ctx, id, fields); err != nil {
		return nil, err
	}

	report, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.afterWrite(ctx, report, ReportEventUpdated)
	return report, nil
}

func (s *reportService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.Report, error) {
	newStatus := model.ReportStatus(status)
	if !newStatus.Valid() {
		return nil, fmt.Errorf("%w: status tidak valid (%s)", apperror.ErrInvalidInput, status)
	}

	report, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if report.Status == newStatus {
		return report, nil
	}

	fields := map[string]interface{}{"status": newStatus}
	if newStatus == model.StatusSelesai && report.TanggalSelesai == nil {
		fields["tanggal_selesai"] = time.Now()
	}

	if err := s.repo.Update(ctx, id, fields); err != nil {
		return nil, err
	}

	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.afterWrite(ctx, updated, ReportEventUpdated)
	return updated, nil
}

func (s *reportService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	InvalidateReportCache(ctx, s.redisClient)
	if s.search != nil {
		if err := s.search.DeleteReport(id.String()); err != nil {
			log.Printf("Failed to remove report from search index: %v", err)
		}
	}
	PublishReportEvent(ctx, s.redisClient, ReportEvent{Type: ReportEventDeleted, ID: id.String()})
	return nil
}

func (s *reportService) Stats(ctx context.Context) (*dto.ReportStats, error) {
	if cached := GetCachedStats(ctx, s.redisClient); cached != nil {
		return cached, nil
	}

	reports, err := s.repo.FindAll(ctx, dto.ReportFilter{})
	if err != nil {
		return nil, err
	}

	stats := domain.ComputeReportStats(reports, time.Now())
	SetCachedStats(ctx, s.redisClient, &stats)
	return &stats, nil
}

// afterWrite menjalankan efek samping pasca-mutasi. Kegagalan index atau
// publish hanya dicatat; penulisan utamanya sudah berhasil.
func (s *reportService) afterWrite(ctx context.Context, report *model.Report, eventType string) {
	InvalidateReportCache(ctx, s.redisClient)

	if s.search != nil {
		if err := s.search.IndexReport(report); err != nil {
			log.Printf("Failed to index report: %v", err)
		}
	}

	PublishReportEvent(ctx, s.redisClient, ReportEvent{Type: eventType, Report: report})
}

// updateFields menyaring input parsial menjadi map kolom. Field nil dibuang,
// bukan dikirim sebagai NULL.
func updateFields(input dto.UpdateReportInput) (map[string]interface{}, error) {
	fields := make(map[string]interface{})

	if input.Judul != nil {
		fields["judul"] = *input.Judul
	}
	if input.Deskripsi != nil {
		fields["deskripsi"] = *input.Deskripsi
	}
	if input.Status != nil {
		status := model.ReportStatus(*input.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("%w: status tidak valid (%s)", apperror.ErrInvalidInput, *input.Status)
		}
		fields["status"] = status
	}
	if input.Prioritas != nil {
		prioritas := model.ReportPriority(*input.Prioritas)
		if !prioritas.Valid() {
			return nil, fmt.Errorf("%w: prioritas tidak valid (%s)", apperror.ErrInvalidInput, *input.Prioritas)
		}
		fields["prioritas"] = prioritas
	}
	if input.Lokasi != nil {
		fields["lokasi"] = *input.Lokasi
	}
	if input.CatatanPetugas != nil {
		fields["catatan_petugas"] = *input.CatatanPetugas
	}
	if input.PetugasID != nil {
		fields["petugas_id"] = *input.PetugasID
	}
	if input.PetugasNama != nil {
		fields["petugas_nama"] = *input.PetugasNama
	}
	if input.PetugasPolres != nil {
		fields["petugas_polres"] = *input.PetugasPolres
	}
	if input.PetugasHp != nil {
		fields["petugas_hp"] = *input.PetugasHp
	}
	if input.TanggalSelesai != nil {
		fields["tanggal_selesai"] = *input.TanggalSelesai
	}

	return fields, nil
}
