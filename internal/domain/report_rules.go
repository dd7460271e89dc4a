package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/adistaps/simola-backend/internal/dto"
	"github.com/adistaps/simola-backend/internal/model"
)

// ValidJenis adalah jenis laporan yang dikenal call center, urut sesuai
// tampilan form.
var ValidJenis = []string{"pengaduan", "informasi", "prank", "permintaan"}

// validKategoriPerJenis membatasi kategori input menurut jenisnya.
var validKategoriPerJenis = map[string][]string{
	"pengaduan":  {"kecelakaan", "pencurian", "kebakaran", "gangguan", "penipuan", "kehilangan"},
	"informasi":  {"pembuatan_skck", "pembuatan_sim", "info_lalu_lintas", "info_umum"},
	"prank":      {"prank"},
	"permintaan": {"pengawalan"},
}

// kategoriMapping memetakan kategori input ke enum kategori yang disimpan.
// Tabel ini total: kategori yang tidak terdaftar jatuh ke "lainnya".
var kategoriMapping = map[string]model.ReportCategory{
	"kecelakaan":       model.CategoryKecelakaan,
	"pencurian":        model.CategoryPencurian,
	"kebakaran":        model.CategoryKekerasan,
	"kekerasan":        model.CategoryKekerasan,
	"penipuan":         model.CategoryPenipuan,
	"gangguan":         model.CategoryLainnya,
	"kehilangan":       model.CategoryLainnya,
	"pembuatan_skck":   model.CategoryLainnya,
	"pembuatan_sim":    model.CategoryLainnya,
	"info_lalu_lintas": model.CategoryLainnya,
	"info_umum":        model.CategoryLainnya,
	"prank":            model.CategoryLainnya,
	"pengawalan":       model.CategoryLainnya,
}

// MapKategori menerjemahkan kategori input bebas ke enum kategori database.
func MapKategori(kategori string) model.ReportCategory {
	if mapped, ok := kategoriMapping[strings.ToLower(strings.TrimSpace(kategori))]; ok {
		return mapped
	}
	return model.CategoryLainnya
}

// GenerateNomorLaporan membentuk nomor laporan LP/YYYYMMDD/nnnn. Suffix
// adalah 4 digit terakhir milidetik saat pembuatan, jadi bukan jaminan unik;
// identitas sebenarnya tetap id baris.
func GenerateNomorLaporan(now time.Time) string {
	ms := now.UnixMilli() % 10000
	if ms < 0 {
		ms += 10000
	}
	return fmt.Sprintf("LP/%s/%04d", now.Format("20060102"), ms)
}

// ParseKoordinat membaca string "lat, lng" menjadi sepasang float.
// Kalau salah satu gagal diparse, dua-duanya dianggap tidak ada; koordinat
// tidak pernah tersimpan sebelah saja.
func ParseKoordinat(koordinat string) (lat, lng *float64) {
	if !strings.Contains(koordinat, ",") {
		return nil, nil
	}
	parts := strings.SplitN(koordinat, ",", 2)
	latVal, errLat := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lngVal, errLng := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if errLat != nil || errLng != nil {
		return nil, nil
	}
	return &latVal, &lngVal
}

// ResolveTanggalLaporan menentukan waktu kejadian dari field tanggal dan
// waktu yang opsional: keduanya ada berarti digabung, tanggal saja berarti
// awal hari, selain itu pakai waktu sekarang. Input yang tidak bisa diparse
// diperlakukan seperti tidak ada.
func ResolveTanggalLaporan(tanggal, waktu string, now time.Time) time.Time {
	tanggal = strings.TrimSpace(tanggal)
	waktu = strings.TrimSpace(waktu)

	if tanggal != "" && waktu != "" {
		if t, err := time.ParseInLocation("2006-01-02T15:04:05", tanggal+"T"+waktu+":00", now.Location()); err == nil {
			return t
		}
	}
	if tanggal != "" {
		if t, err := time.ParseInLocation("2006-01-02", tanggal, now.Location()); err == nil {
			return t
		}
	}
	return now
}

// ValidateCreateReport memeriksa input laporan dan mengembalikan salinan yang
// sudah dinormalisasi (jenis/kategori/prioritas lowercase, prioritas terisi
// default). Pesan error berbahasa Indonesia dan menyebut nilai yang salah
// beserta pilihan yang sah.
func ValidateCreateReport(in dto.CreateReportInput) (dto.CreateReportInput, error) {
	if strings.TrimSpace(in.Jenis) == "" || strings.TrimSpace(in.Kategori) == "" ||
		strings.TrimSpace(in.Lokasi) == "" || strings.TrimSpace(in.Pelapor) == "" {
		return in, fmt.Errorf("field wajib tidak lengkap (jenis, kategori, lokasi, pelapor)")
	}

	jenis := strings.ToLower(strings.TrimSpace(in.Jenis))
	if !contains(ValidJenis, jenis) {
		return in, fmt.Errorf("jenis tidak valid (%s). Harus salah satu: %s", in.Jenis, strings.Join(ValidJenis, ", "))
	}

	prioritas := strings.ToLower(strings.TrimSpace(in.Prioritas))
	if prioritas == "" {
		prioritas = string(model.PrioritySedang)
	}
	if !model.ReportPriority(prioritas).Valid() {
		return in, fmt.Errorf("prioritas tidak valid (%s). Harus salah satu: rendah, sedang, tinggi, darurat", in.Prioritas)
	}

	kategori := strings.ToLower(strings.TrimSpace(in.Kategori))
	allowed := validKategoriPerJenis[jenis]
	if !contains(allowed, kategori) {
		return in, fmt.Errorf("kategori %q tidak valid untuk jenis %q. Kategori valid: %s", in.Kategori, in.Jenis, strings.Join(allowed, ", "))
	}

	in.Jenis = jenis
	in.Kategori = kategori
	in.Prioritas = prioritas
	return in, nil
}

// BuildReport menyusun record laporan dari input yang sudah tervalidasi.
// Status awal selalu menunggu.
func BuildReport(in dto.CreateReportInput, now time.Time) *model.Report {
	lat, lng := ParseKoordinat(in.Koordinat)

	return &model.Report{
		NomorLaporan:   GenerateNomorLaporan(now),
		Judul:          fmt.Sprintf("Laporan %s - %s", in.Jenis, in.Kategori),
		Deskripsi:      in.Deskripsi,
		Kategori:       MapKategori(in.Kategori),
		Status:         model.StatusMenunggu,
		Prioritas:      model.ReportPriority(in.Prioritas),
		Lokasi:         in.Lokasi,
		KoordinatLat:   lat,
		KoordinatLng:   lng,
		PelaporNama:    in.Pelapor,
		PelaporTelepon: optional(in.Telepon),
		PelaporEmail:   optional(in.Email),
		PetugasNama:    optional(in.PetugasNama),
		PetugasPolres:  optional(in.PetugasPolres),
		PetugasHp:      optional(in.PetugasHp),
		TanggalLaporan: ResolveTanggalLaporan(in.Tanggal, in.Waktu, now),
	}
}

// ComputeReportStats menurunkan statistik dashboard dari kumpulan laporan
// yang sudah diambil. Murni fungsi dari inputnya; kesegarannya mengikuti
// fetch terakhir.
func ComputeReportStats(reports []model.Report, now time.Time) dto.ReportStats {
	stats := dto.ReportStats{
		Total:      len(reports),
		ByStatus:   make(map[model.ReportStatus]int, len(model.ReportStatuses)),
		ByCategory: make(map[model.ReportCategory]int),
	}
	for _, s := range model.ReportStatuses {
		stats.ByStatus[s] = 0
	}

	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	for _, r := range reports {
		if !r.CreatedAt.Before(midnight) {
			stats.TodayReports++
		}
		if r.Prioritas == model.PriorityDarurat {
			stats.Emergency++
		}
		stats.ByStatus[r.Status]++
		stats.ByCategory[r.Kategori]++
	}
	return stats
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
