package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReportCategory string

const (
	CategoryKecelakaan ReportCategory = "kecelakaan"
	CategoryPencurian  ReportCategory = "pencurian"
	CategoryKekerasan  ReportCategory = "kekerasan"
	CategoryPenipuan   ReportCategory = "penipuan"
	CategoryLainnya    ReportCategory = "lainnya"
)

type ReportStatus string

const (
	StatusMenunggu ReportStatus = "menunggu"
	StatusDiproses ReportStatus = "diproses"
	StatusSelesai  ReportStatus = "selesai"
	StatusDitolak  ReportStatus = "ditolak"
)

type ReportPriority string

const (
	PriorityRendah  ReportPriority = "rendah"
	PrioritySedang  ReportPriority = "sedang"
	PriorityTinggi  ReportPriority = "tinggi"
	PriorityDarurat ReportPriority = "darurat"
)

// ReportStatuses lists every valid status, in display order.
var ReportStatuses = []ReportStatus{StatusMenunggu, StatusDiproses, StatusSelesai, StatusDitolak}

func (s ReportStatus) Valid() bool {
	switch s {
	case StatusMenunggu, StatusDiproses, StatusSelesai, StatusDitolak:
		return true
	}
	return false
}

func (p ReportPriority) Valid() bool {
	switch p {
	case PriorityRendah, PrioritySedang, PriorityTinggi, PriorityDarurat:
		return true
	}
	return false
}

// Report adalah laporan kejadian yang masuk lewat call center 110.
// Data petugas disimpan ganda: petugas_id menunjuk akun petugas (jika ada),
// sedangkan petugas_nama/polres/hp dicatat bebas supaya petugas tanpa akun
// tetap bisa dicatat.
type Report struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	NomorLaporan   string         `gorm:"size:30;index;not null" json:"nomor_laporan"`
	Judul          string         `gorm:"size:255;not null" json:"judul"`
	Deskripsi      string         `gorm:"type:text" json:"deskripsi"`
	Kategori       ReportCategory `gorm:"size:20;not null" json:"kategori"`
	Status         ReportStatus   `gorm:"size:20;not null;default:menunggu" json:"status"`
	Prioritas      ReportPriority `gorm:"size:20;not null;default:sedang" json:"prioritas"`
	Lokasi         string         `gorm:"size:255;not null" json:"lokasi"`
	KoordinatLat   *float64       `json:"koordinat_lat,omitempty"`
	KoordinatLng   *float64       `json:"koordinat_lng,omitempty"`
	PelaporNama    string         `gorm:"size:100;not null" json:"pelapor_nama"`
	PelaporTelepon *string        `gorm:"size:30" json:"pelapor_telepon,omitempty"`
	PelaporEmail   *string        `gorm:"size:100" json:"pelapor_email,omitempty"`
	CatatanPetugas *string        `gorm:"type:text" json:"catatan_petugas,omitempty"`
	PetugasNama    *string        `gorm:"size:100" json:"petugas_nama,omitempty"`
	PetugasPolres  *string        `gorm:"size:100" json:"petugas_polres,omitempty"`
	PetugasHp      *string        `gorm:"size:30" json:"petugas_hp,omitempty"`
	PetugasID      *uuid.UUID     `gorm:"type:uuid" json:"petugas_id,omitempty"`
	Petugas        *User          `gorm:"foreignKey:PetugasID;constraint:OnDelete:SET NULL" json:"petugas,omitempty"`
	TanggalLaporan time.Time      `gorm:"not null" json:"tanggal_laporan"`
	TanggalSelesai *time.Time     `json:"tanggal_selesai,omitempty"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (r *Report) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID, err = uuid.NewV7()
	}
	return
}
