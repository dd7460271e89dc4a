package service

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildImportFile(t *testing.T, rows [][]interface{}) *bytes.Reader {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	header := make([]interface{}, len(importHeaders))
	for i, h := range importHeaders {
		header[i] = h
	}
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &header))

	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+2)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return bytes.NewReader(buf.Bytes())
}

func importRow(jenis, kategori, lokasi, pelapor string) []interface{} {
	return []interface{}{jenis, kategori, "", "", lokasi, "", pelapor, "", "", "", "", "", "", ""}
}

func TestImportReportsPartialSuccess(t *testing.T) {
	repo := &fakeReportRepo{}
	svc := NewImportService(newTestReportService(repo))

	file := buildImportFile(t, [][]interface{}{
		importRow("pengaduan", "kecelakaan", "Jl. Sudirman", "Budi"),
		importRow("darurat", "kecelakaan", "Jl. Thamrin", "Sari"),
		importRow("informasi", "pembuatan_skck", "Polres Bantul", "Andi"),
	})

	result, err := svc.ImportReports(context.Background(), "laporan.xlsx", file)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Success)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	// baris data kedua tampil sebagai baris 3 di Excel
	assert.Contains(t, result.Errors[0], "Baris 3")
	assert.Contains(t, result.Errors[0], "jenis tidak valid")
	assert.Equal(t, 2, repo.createCalls)
}

func TestImportReportsRejectsNonExcelFile(t *testing.T) {
	svc := NewImportService(newTestReportService(&fakeReportRepo{}))

	_, err := svc.ImportReports(context.Background(), "laporan.csv", bytes.NewReader(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mohon upload file Excel")
}

func TestImportReportsValidatesKategoriPerJenis(t *testing.T) {
	repo := &fakeReportRepo{}
	svc := NewImportService(newTestReportService(repo))

	// pembuatan_skck hanya valid untuk jenis informasi
	file := buildImportFile(t, [][]interface{}{
		importRow("pengaduan", "pembuatan_skck", "Jl. Sudirman", "Budi"),
	})

	result, err := svc.ImportReports(context.Background(), "laporan.xlsx", file)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Success)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Baris 2")
	assert.Contains(t, result.Errors[0], "tidak valid untuk jenis")
	assert.Equal(t, 0, repo.createCalls)
}

func TestImportReportsMissingRequiredFields(t *testing.T) {
	repo := &fakeReportRepo{}
	svc := NewImportService(newTestReportService(repo))

	file := buildImportFile(t, [][]interface{}{
		importRow("pengaduan", "kecelakaan", "", "Budi"),
	})

	result, err := svc.ImportReports(context.Background(), "laporan.xlsx", file)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Failed)
	assert.Contains(t, result.Errors[0], "field wajib tidak lengkap")
}

func TestImportReportsSkipsEmptyRows(t *testing.T) {
	repo := &fakeReportRepo{}
	svc := NewImportService(newTestReportService(repo))

	file := buildImportFile(t, [][]interface{}{
		importRow("pengaduan", "kecelakaan", "Jl. Sudirman", "Budi"),
		{"", "", "", "", "", "", "", "", "", "", "", "", "", ""},
		importRow("prank", "prank", "Jl. Thamrin", "Sari"),
	})

	result, err := svc.ImportReports(context.Background(), "laporan.xlsx", file)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Success)
	assert.Equal(t, 0, result.Failed)
	assert.Empty(t, result.Errors)
}

func TestImportReportsTruncatesErrorList(t *testing.T) {
	repo := &fakeReportRepo{}
	svc := NewImportService(newTestReportService(repo))

	rows := make([][]interface{}, 0, 15)
	for i := 0; i < 15; i++ {
		rows = append(rows, importRow("darurat", "kecelakaan", "Jl. Sudirman", "Budi"))
	}

	result, err := svc.ImportReports(context.Background(), "laporan.xlsx", buildImportFile(t, rows))
	require.NoError(t, err)

	// jumlah gagal tetap akurat walau daftar pesan dipotong
	assert.Equal(t, 15, result.Failed)
	assert.Len(t, result.Errors, maxImportErrors)
}

func TestImportReportsEmptyFile(t *testing.T) {
	svc := NewImportService(newTestReportService(&fakeReportRepo{}))

	result, err := svc.ImportReports(context.Background(), "laporan.xlsx", buildImportFile(t, nil))
	require.NoError(t, err)

	assert.Equal(t, 0, result.Success)
	assert.Equal(t, 0, result.Failed)
	assert.Empty(t, result.Errors)
}

func TestTemplateContainsHeadersAndExamples(t *testing.T) {
	svc := NewImportService(newTestReportService(&fakeReportRepo{}))

	data, err := svc.Template()
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Template")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, importHeaders, rows[0][:len(importHeaders)])
	assert.Equal(t, "pengaduan", rows[1][0])
	assert.Equal(t, "informasi", rows[2][0])
}
