package service

import (
	"context"
	"encoding/json"

	"github.com/adistaps/simola-backend/internal/model"
	"github.com/redis/go-redis/v9"
)

// ReportEventChannel adalah channel pub/sub redis untuk feed laporan live.
const ReportEventChannel = "report_events"

const (
	ReportEventCreated = "report.created"
	ReportEventUpdated = "report.updated"
	ReportEventDeleted = "report.deleted"
)

type ReportEvent struct {
	Type   string        `json:"type"`
	Report *model.Report `json:"report,omitempty"`
	ID     string        `json:"id,omitempty"`
}

// PublishReportEvent mengirim event laporan ke redis untuk diteruskan ke
// dashboard yang sedang terhubung. Tanpa redis, event dibuang diam-diam;
// feed live memang opsional.
func PublishReportEvent(ctx context.Context, rdb *redis.Client, event ReportEvent) {
	if rdb == nil {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	rdb.Publish(ctx, ReportEventChannel, payload)
}
