package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/adistaps/simola-backend/internal/dto"
	"github.com/adistaps/simola-backend/internal/model"
	"github.com/adistaps/simola-backend/internal/repository"
	"github.com/adistaps/simola-backend/pkg/apperror"
)

type ExportService interface {
	// ExportReports menyaring laporan di memori lalu menyusun CSV-nya.
	// Hasil filter kosong mengembalikan error, bukan file kosong.
	ExportReports(ctx context.Context, filter dto.ExportReportsFilter) ([]byte, string, error)
	ExportUsers(ctx context.Context) ([]byte, string, error)
}

type exportService struct {
	reportRepo repository.ReportRepository
	userRepo   repository.UserRepository
}

func NewExportService(reportRepo repository.ReportRepository, userRepo repository.UserRepository) ExportService {
	return &exportService{
		reportRepo: reportRepo,
		userRepo:   userRepo,
	}
}

var reportHeaders = []string{
	"Nomor Laporan", "Judul", "Kategori", "Status", "Prioritas", "Lokasi",
	"Deskripsi", "Pelapor", "Telepon Pelapor", "Email Pelapor",
	"Petugas", "Polres", "HP Petugas", "Tanggal Laporan", "Tanggal Dibuat", "Catatan Petugas",
}

var userHeaders = []string{
	"Nama", "Email", "Role", "Nomor Telepon", "Unit Kerja", "Tanggal Dibuat", "Terakhir Update",
}

func (s *exportService) ExportReports(ctx context.Context, filter dto.ExportReportsFilter) ([]byte, string, error) {
	reports, err := s.reportRepo.FindAll(ctx, dto.ReportFilter{})
	if err != nil {
		return nil, "", err
	}

	filtered := make([]model.Report, 0, len(reports))
	for _, r := range reports {
		if filter.From != nil && filter.To != nil {
			if r.CreatedAt.Before(*filter.From) || r.CreatedAt.After(*filter.To) {
				continue
			}
		}
		if filter.Status != "" && filter.Status != "all" && string(r.Status) != filter.Status {
			continue
		}
		filtered = append(filtered, r)
	}

	if len(filtered) == 0 {
		return nil, "", fmt.Errorf("%w: tidak ada laporan yang sesuai dengan filter yang dipilih", apperror.ErrNoData)
	}

	rows := make([]map[string]string, 0, len(filtered))
	for _, r := range filtered {
		rows = append(rows, map[string]string{
			"Nomor Laporan":   r.NomorLaporan,
			"Judul":           r.Judul,
			"Kategori":        string(r.Kategori),
			"Status":          string(r.Status),
			"Prioritas":       string(r.Prioritas),
			"Lokasi":          r.Lokasi,
			"Deskripsi":       r.Deskripsi,
			"Pelapor":         r.PelaporNama,
			"Telepon Pelapor": stringValue(r.PelaporTelepon),
			"Email Pelapor":   stringValue(r.PelaporEmail),
			"Petugas":         stringValue(r.PetugasNama),
			"Polres":          stringValue(r.PetugasPolres),
			"HP Petugas":      stringValue(r.PetugasHp),
			"Tanggal Laporan": formatTanggal(r.TanggalLaporan),
			"Tanggal Dibuat":  formatTanggal(r.CreatedAt),
			"Catatan Petugas": stringValue(r.CatatanPetugas),
		})
	}

	content, err := buildCSV(reportHeaders, rows)
	if err != nil {
		return nil, "", err
	}
	return content, exportFileName("laporan", time.Now()), nil
}

func (s *exportService) ExportUsers(ctx context.Context) ([]byte, string, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, "", err
	}

	if len(users) == 0 {
		return nil, "", fmt.Errorf("%w: tidak ada data pengguna untuk diunduh", apperror.ErrNoData)
	}

	rows := make([]map[string]string, 0, len(users))
	for _, u := range users {
		row := map[string]string{
			"Nama":           "",
			"Email":          u.Email,
			"Role":           u.Role.Name,
			"Nomor Telepon":  "",
			"Unit Kerja":     "",
			"Tanggal Dibuat": formatTanggal(u.CreatedAt),
		}
		if u.Profile != nil {
			row["Nama"] = u.Profile.Nama
			row["Nomor Telepon"] = stringValue(u.Profile.NomorTelepon)
			row["Unit Kerja"] = stringValue(u.Profile.UnitKerja)
			row["Terakhir Update"] = formatTanggal(u.Profile.UpdatedAt)
		}
		rows = append(rows, row)
	}

	content, err := buildCSV(userHeaders, rows)
	if err != nil {
		return nil, "", err
	}
	return content, exportFileName("pengguna", time.Now()), nil
}

// buildCSV menyusun CSV UTF-8: nilai yang mengandung koma, kutip, atau baris
// baru dibungkus kutip ganda dengan kutip internal digandakan. Field opsional
// yang kosong dirender sebagai string kosong.
func buildCSV(headers []string, rows []map[string]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(headers); err != nil {
		return nil, err
	}
	record := make([]string, len(headers))
	for _, row := range rows {
		for i, header := range headers {
			record[i] = row[header]
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func exportFileName(reportType string, now time.Time) string {
	return fmt.Sprintf("%s_%s.csv", reportType, now.Format("2006-01-02"))
}

func formatTanggal(t time.Time) string {
	return t.Format("02/01/2006")
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
