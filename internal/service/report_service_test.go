package service

import (
	"context"
	"regexp"
	"testing"

	"github.com/adistaps/simola-backend/internal/dto"
	"github.com/adistaps/simola-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReportService(repo *fakeReportRepo) ReportService {
	return NewReportService(repo, nil, nil)
}

func validCreateInput() dto.CreateReportInput {
	return dto.CreateReportInput{
		Jenis:    "pengaduan",
		Kategori: "kebakaran",
		Lokasi:   "Jl. Malioboro, Yogyakarta",
		Pelapor:  "Budi Santoso",
	}
}

func TestCreateReportBuildsNumberTitleAndCategory(t *testing.T) {
	repo := &fakeReportRepo{}
	svc := newTestReportService(repo)

	report, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^LP/\d{8}/\d{4}$`), report.NomorLaporan)
	assert.Equal(t, "Laporan pengaduan - kebakaran", report.Judul)
	// kebakaran dipetakan ke kategori penyimpanan kekerasan
	assert.Equal(t, model.CategoryKekerasan, report.Kategori)
	assert.Equal(t, model.StatusMenunggu, report.Status)
	assert.Equal(t, model.PrioritySedang, report.Prioritas)
	assert.Equal(t, 1, repo.createCalls)
}

func TestCreateReportRejectsInvalidInput(t *testing.T) {
	repo := &fakeReportRepo{}
	svc := newTestReportService(repo)

	input := validCreateInput()
	input.Jenis = "darurat"

	_, err := svc.Create(context.Background(), input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jenis tidak valid")
	assert.Equal(t, 0, repo.createCalls)
}

func TestUpdateSendsOnlyProvidedFields(t *testing.T) {
	repo := &fakeReportRepo{}
	svc := newTestReportService(repo)

	report, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	status := "diproses"
	catatan := "sedang ditindaklanjuti"
	_, err = svc.Update(context.Background(), report.ID, dto.UpdateReportInput{
		Status:         &status,
		CatatanPetugas: &catatan,
	})
	require.NoError(t, err)

	require.Len(t, repo.updateCalls, 1)
	fields := repo.updateCalls[0]
	assert.Len(t, fields, 2)
	assert.Contains(t, fields, "status")
	assert.Contains(t, fields, "catatan_petugas")
}

func TestUpdateWithoutFieldsDoesNotWrite(t *testing.T) {
	repo := &fakeReportRepo{}
	svc := newTestReportService(repo)

	report, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	got, err := svc.Update(context.Background(), report.ID, dto.UpdateReportInput{})
	require.NoError(t, err)
	assert.Equal(t, report.ID, got.ID)
	assert.Empty(t, repo.updateCalls)
}

func TestUpdateRejectsInvalidStatus(t *testing.T) {
	repo := &fakeReportRepo{}
	svc := newTestReportService(repo)

	report, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	bad := "dibatalkan"
	_, err = svc.Update(context.Background(), report.ID, dto.UpdateReportInput{Status: &bad})
	require.Error(t, err)
	assert.Empty(t, repo.updateCalls)
}

func TestUpdateStatusSameValueIsNoOp(t *testing.T) {
	repo := &fakeReportRepo{}
	svc := newTestReportService(repo)

	report, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	got, err := svc.UpdateStatus(context.Background(), report.ID, "menunggu")
	require.NoError(t, err)
	assert.Equal(t, model.StatusMenunggu, got.Status)
	assert.Empty(t, repo.updateCalls)
}

func TestUpdateStatusSelesaiStampsCompletionDate(t *testing.T) {
	repo := &fakeReportRepo{}
	svc := newTestReportService(repo)

	report, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	got, err := svc.UpdateStatus(context.Background(), report.ID, "selesai")
	require.NoError(t, err)

	assert.Equal(t, model.StatusSelesai, got.Status)
	require.NotNil(t, got.TanggalSelesai)

	require.Len(t, repo.updateCalls, 1)
	assert.Contains(t, repo.updateCalls[0], "tanggal_selesai")
}

func TestUpdateStatusInvalidValue(t *testing.T) {
	repo := &fakeReportRepo{}
	svc := newTestReportService(repo)

	report, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), report.ID, "dibatalkan")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status tidak valid")
}

func TestStatsCountsAllStatuses(t *testing.T) {
	repo := &fakeReportRepo{}
	svc := newTestReportService(repo)

	for _, kategori := range []string{"kecelakaan", "pencurian"} {
		input := validCreateInput()
		input.Kategori = kategori
		_, err := svc.Create(context.Background(), input)
		require.NoError(t, err)
	}

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 2, stats.TodayReports)
	assert.Equal(t, 0, stats.Emergency)
	assert.Equal(t, 2, stats.ByStatus[model.StatusMenunggu])
	// semua status selalu punya entri walau nol
	assert.Contains(t, stats.ByStatus, model.StatusDitolak)
}

func TestDeleteRemovesReport(t *testing.T) {
	repo := &fakeReportRepo{}
	svc := newTestReportService(repo)

	report, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), report.ID))

	_, err = svc.Get(context.Background(), report.ID)
	assert.Error(t, err)
}
