package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/adistaps/simola-backend/internal/domain"
	"github.com/adistaps/simola-backend/internal/dto"
	"github.com/adistaps/simola-backend/pkg/apperror"
	"github.com/xuri/excelize/v2"
)

// maxImportErrors membatasi jumlah pesan error yang ikut di respons.
// Jumlah baris gagal tetap dihitung persis.
const maxImportErrors = 10

type ImportService interface {
	// ImportReports membaca sheet pertama file Excel dan membuat laporan
	// baris per baris. Baris yang gagal tidak menghentikan baris lain.
	ImportReports(ctx context.Context, fileName string, r io.Reader) (*dto.ImportResult, error)
	// Template menghasilkan file template Excel berisi contoh dua baris.
	Template() ([]byte, error)
}

type importService struct {
	reports ReportService
}

func NewImportService(reports ReportService) ImportService {
	return &importService{reports: reports}
}

// importHeaders adalah urutan kolom yang dikenali, sesuai template.
var importHeaders = []string{
	"jenis", "kategori", "deskripsi", "prioritas", "lokasi", "koordinat",
	"pelapor", "telepon", "email", "tanggal", "waktu",
	"petugasNama", "petugasPolres", "petugasHp",
}

func (s *importService) ImportReports(ctx context.Context, fileName string, r io.Reader) (*dto.ImportResult, error) {
	lower := strings.ToLower(fileName)
	if !strings.HasSuffix(lower, ".xlsx") && !strings.HasSuffix(lower, ".xls") {
		return nil, fmt.Errorf("%w: mohon upload file Excel (.xlsx atau .xls)", apperror.ErrInvalidInput)
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: gagal memproses file Excel: %s", apperror.ErrInvalidInput, err.Error())
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: file Excel tidak punya sheet", apperror.ErrInvalidInput)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: gagal membaca sheet: %s", apperror.ErrInvalidInput, err.Error())
	}
	if len(rows) < 2 {
		return &dto.ImportResult{Errors: []string{}}, nil
	}

	header := rows[0]
	result := &dto.ImportResult{Errors: []string{}}
	var allErrors []string

	for i, row := range rows[1:] {
		if emptyRow(row) {
			continue
		}

		// Baris 1 adalah header; baris data pertama tampil sebagai baris 2.
		displayRow := i + 2
		input := rowToInput(header, row)

		normalized, err := domain.ValidateCreateReport(input)
		if err != nil {
			result.Failed++
			allErrors = append(allErrors, fmt.Sprintf("Baris %d: %s", displayRow, err.Error()))
			continue
		}

		if _, err := s.reports.Create(ctx, normalized); err != nil {
			result.Failed++
			allErrors = append(allErrors, fmt.Sprintf("Baris %d: gagal menyimpan laporan: %s", displayRow, err.Error()))
			continue
		}
		result.Success++
	}

	if len(allErrors) > maxImportErrors {
		result.Errors = allErrors[:maxImportErrors]
	} else {
		result.Errors = allErrors
	}
	return result, nil
}

func (s *importService) Template() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Template"
	f.SetSheetName("Sheet1", sheet)

	examples := [][]interface{}{
		{"pengaduan", "kecelakaan", "Deskripsi detail laporan", "tinggi",
			"Jl. Malioboro, Yogyakarta", "-7.7956, 110.3695", "John Doe",
			"081234567890", "john@email.com", "2024-01-15", "10:30",
			"Bripka Ahmad", "Polres Kota Yogyakarta", "081234567891"},
		{"informasi", "pembuatan_skck", "Pertanyaan tentang syarat pembuatan SKCK", "sedang",
			"Polres Bantul", "", "Jane Smith",
			"087654321098", "jane@email.com", "", "",
			"Briptu Siti", "Polres Bantul", "087654321099"},
	}

	headerRow := make([]interface{}, len(importHeaders))
	for i, h := range importHeaders {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return nil, err
	}
	for i, example := range examples {
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &example); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func rowToInput(header, row []string) dto.CreateReportInput {
	values := make(map[string]string, len(header))
	for i, name := range header {
		if i < len(row) {
			values[strings.TrimSpace(name)] = strings.TrimSpace(row[i])
		}
	}

	return dto.CreateReportInput{
		Jenis:         values["jenis"],
		Kategori:      values["kategori"],
		Deskripsi:     values["deskripsi"],
		Prioritas:     values["prioritas"],
		Lokasi:        values["lokasi"],
		Koordinat:     values["koordinat"],
		Pelapor:       values["pelapor"],
		Telepon:       values["telepon"],
		Email:         values["email"],
		Tanggal:       values["tanggal"],
		Waktu:         values["waktu"],
		PetugasNama:   values["petugasNama"],
		PetugasPolres: values["petugasPolres"],
		PetugasHp:     values["petugasHp"],
	}
}

func emptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
