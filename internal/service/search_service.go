package service

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/adistaps/simola-backend/internal/model"
	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"
)

const reportIndexName = "reports"

// ReportDocument adalah proyeksi laporan yang masuk index pencarian.
// Teks bebas dibersihkan dulu dari markup sebelum diindex.
type ReportDocument struct {
	ID           string `json:"id"`
	NomorLaporan string `json:"nomor_laporan"`
	Judul        string `json:"judul"`
	Deskripsi    string `json:"deskripsi"`
	Lokasi       string `json:"lokasi"`
	PelaporNama  string `json:"pelapor_nama"`
	Kategori     string `json:"kategori"`
	Status       string `json:"status"`
	Prioritas    string `json:"prioritas"`
	CreatedAt    int64  `json:"created_at"`
}

type SearchService interface {
	IndexReport(report *model.Report) error
	DeleteReport(id string) error
	SearchReports(query string, limit int64) ([]ReportDocument, error)
}

type searchService struct {
	client    meilisearch.ServiceManager
	sanitizer *bluemonday.Policy
}

func NewSearchService(client meilisearch.ServiceManager) SearchService {
	s := &searchService{
		client:    client,
		sanitizer: bluemonday.StrictPolicy(),
	}
	s.initIndex()
	return s
}

func (s *searchService) initIndex() {
	if s.client == nil {
		return
	}

	index := s.client.Index(reportIndexName)

	if _, err := index.UpdateSearchableAttributes(&[]string{
		"nomor_laporan", "judul", "deskripsi", "lokasi", "pelapor_nama",
	}); err != nil {
		log.Printf("Failed to update searchable attributes: %v", err)
	}

	filterableAttrs := []string{"kategori", "status", "prioritas"}
	filterableInterface := make([]any, len(filterableAttrs))
	for i, v := range filterableAttrs {
		filterableInterface[i] = v
	}
	if _, err := index.UpdateFilterableAttributes(&filterableInterface); err != nil {
		log.Printf("Failed to update filterable attributes: %v", err)
	}

	if _, err := index.UpdateSortableAttributes(&[]string{"created_at"}); err != nil {
		log.Printf("Failed to update sortable attributes: %v", err)
	}
}

func (s *searchService) IndexReport(report *model.Report) error {
	if s.client == nil {
		return nil
	}

	doc := ReportDocument{
		ID:           report.ID.String(),
		NomorLaporan: report.NomorLaporan,
		Judul:        s.sanitizer.Sanitize(report.Judul),
		Deskripsi:    s.sanitizer.Sanitize(report.Deskripsi),
		Lokasi:       s.sanitizer.Sanitize(report.Lokasi),
		PelaporNama:  s.sanitizer.Sanitize(report.PelaporNama),
		Kategori:     string(report.Kategori),
		Status:       string(report.Status),
		Prioritas:    string(report.Prioritas),
		CreatedAt:    report.CreatedAt.Unix(),
	}

	primaryKey := "id"
	if _, err := s.client.Index(reportIndexName).AddDocuments([]ReportDocument{doc}, &primaryKey); err != nil {
		return fmt.Errorf("failed to index report %s: %w", report.ID, err)
	}
	return nil
}

func (s *searchService) DeleteReport(id string) error {
	if s.client == nil {
		return nil
	}

	if _, err := s.client.Index(reportIndexName).DeleteDocument(id); err != nil {
		return fmt.Errorf("failed to delete report %s from index: %w", id, err)
	}
	return nil
}

func (s *searchService) SearchReports(query string, limit int64) ([]ReportDocument, error) {
	if s.client == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}

	resp, err := s.client.Index(reportIndexName).Search(query, &meilisearch.SearchRequest{
		Limit: limit,
		Sort:  []string{"created_at:desc"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search reports: %w", err)
	}

	docs := make([]ReportDocument, 0, len(resp.Hits))
	for _, hit := range resp.Hits {
		raw, err := json.Marshal(hit)
		if err != nil {
			continue
		}
		var doc ReportDocument
		if err := json.Unmarshal(raw, &doc); err != nil {
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
