package dto

import (
	"time"

	"github.com/adistaps/simola-backend/internal/model"
	"github.com/google/uuid"
)

// CreateReportInput adalah input mentah pembuatan laporan, baik dari form
// maupun dari satu baris file Excel. Validasi aturan bisnisnya ada di
// internal/domain, bukan di binding tag, supaya jalur form dan jalur import
// memakai aturan yang persis sama.
type CreateReportInput struct {
	Jenis         string `json:"jenis" form:"jenis"`
	Kategori      string `json:"kategori" form:"kategori"`
	Deskripsi     string `json:"deskripsi" form:"deskripsi"`
	Prioritas     string `json:"prioritas" form:"prioritas"`
	Lokasi        string `json:"lokasi" form:"lokasi"`
	Koordinat     string `json:"koordinat" form:"koordinat"`
	Pelapor       string `json:"pelapor" form:"pelapor"`
	Telepon       string `json:"telepon" form:"telepon"`
	Email         string `json:"email" form:"email"`
	Tanggal       string `json:"tanggal" form:"tanggal"`
	Waktu         string `json:"waktu" form:"waktu"`
	PetugasNama   string `json:"petugasNama" form:"petugasNama"`
	PetugasPolres string `json:"petugasPolres" form:"petugasPolres"`
	PetugasHp     string `json:"petugasHp" form:"petugasHp"`
}

// UpdateReportInput membawa perubahan parsial. Field nil tidak ikut dikirim
// ke database sama sekali.
type UpdateReportInput struct {
	Judul          *string    `json:"judul"`
	Deskripsi      *string    `json:"deskripsi"`
	Status         *string    `json:"status"`
	Prioritas      *string    `json:"prioritas"`
	Lokasi         *string    `json:"lokasi"`
	CatatanPetugas *string    `json:"catatan_petugas"`
	PetugasID      *uuid.UUID `json:"petugas_id"`
	PetugasNama    *string    `json:"petugas_nama"`
	PetugasPolres  *string    `json:"petugas_polres"`
	PetugasHp      *string    `json:"petugas_hp"`
	TanggalSelesai *time.Time `json:"tanggal_selesai"`
}

type UpdateStatusInput struct {
	Status string `json:"status" binding:"required"`
}

type ReportFilter struct {
	Status    string `form:"status"`
	Prioritas string `form:"prioritas"`
	Kategori  string `form:"kategori"`
	Search    string `form:"search"`
}

type ReportStats struct {
	Total        int                          `json:"total"`
	TodayReports int                          `json:"todayReports"`
	Emergency    int                          `json:"emergency"`
	ByStatus     map[model.ReportStatus]int   `json:"byStatus"`
	ByCategory   map[model.ReportCategory]int `json:"byCategory"`
}

// ImportResult merangkum hasil import Excel. Failed selalu jumlah persis;
// Errors dibatasi maksimal 10 pesan pertama untuk ditampilkan.
type ImportResult struct {
	Success int      `json:"success"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors"`
}

type ExportReportsFilter struct {
	From   *time.Time
	To     *time.Time
	Status string
}
