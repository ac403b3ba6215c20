// Full-replace sync: list existing rows to exhaustion, delete them,
// insert the new canonical set. Best-effort per batch, never aborts.

package syncer

import (
	"context"
	"fmt"
	"log"

	"go-campus-sync/internal/feishu"
	"go-campus-sync/internal/pipeline"
)

// Sink batch limits observed on the bitable API.
const (
	DeleteBatchLimit = 500
	CreateBatchLimit = 100
)

// TableSink is the slice of the remote table the engine needs. The
// feishu client satisfies it; tests use a fake.
type TableSink interface {
	ListRecordIDs(ctx context.Context, tableID string) ([]string, error)
	DeleteRecords(ctx context.Context, tableID string, recordIDs []string) error
	CreateRecords(ctx context.Context, tableID string, rows []map[string]any) error
}

// Result summarizes one sync run. Batch failures are counted here, not
// raised; they leave the sink partially written rather than aborting.
type Result struct {
	DeletesAttempted int
	Deleted          int
	InsertsAttempted int
	Inserted         int
	FailedBatches    int
}

func (r Result) String() string {
	return fmt.Sprintf("deleted %d/%d, inserted %d/%d, failed batches %d",
		r.Deleted, r.DeletesAttempted, r.Inserted, r.InsertsAttempted, r.FailedBatches)
}

type Engine struct {
	sink    TableSink
	tableID string
}

func NewEngine(sink TableSink, tableID string) *Engine {
	return &Engine{sink: sink, tableID: tableID}
}

// Sync replaces the table contents with records. The delete phase runs
// to completion before any insert, so old and new data are never merged;
// a failure between the phases can leave the table transiently empty.
func (e *Engine) Sync(ctx context.Context, records []pipeline.CanonicalRecord) (Result, error) {
	var result Result

	existing, err := e.sink.ListRecordIDs(ctx, e.tableID)
	if err != nil {
		return result, fmt.Errorf("could not list existing records: %w", err)
	}
	log.Printf("🗑️ Deleting %d existing records...", len(existing))

	for _, batch := range chunk(existing, DeleteBatchLimit) {
		result.DeletesAttempted += len(batch)
		if err := e.sink.DeleteRecords(ctx, e.tableID, batch); err != nil {
			log.Printf("⚠️ Delete batch of %d failed: %v", len(batch), err)
			result.FailedBatches++
			continue
		}
		result.Deleted += len(batch)
	}

	log.Printf("📤 Inserting %d records...", len(records))
	rows := make([]map[string]any, 0, len(records))
	for _, r := range records {
		rows = append(rows, EncodeRow(r))
	}

	for _, batch := range chunk(rows, CreateBatchLimit) {
		result.InsertsAttempted += len(batch)
		if err := e.sink.CreateRecords(ctx, e.tableID, batch); err != nil {
			log.Printf("⚠️ Insert batch of %d failed: %v", len(batch), err)
			result.FailedBatches++
			continue
		}
		result.Inserted += len(batch)
	}

	return result, nil
}

// EncodeRow maps a canonical record onto bitable columns. Link columns
// are omitted entirely when there is no link; empty link objects break
// the bitable field validator.
func EncodeRow(r pipeline.CanonicalRecord) map[string]any {
	row := map[string]any{
		feishu.ColCompany:  r.Company,
		feishu.ColPosition: r.Position,
		feishu.ColUpdated:  r.LastUpdated.UnixMilli(),
	}
	if r.CompanyType != "" {
		row[feishu.ColCompanyType] = r.CompanyType
	}
	if r.Industry != "" {
		row[feishu.ColIndustry] = r.Industry
	}
	if r.Location != "" {
		row[feishu.ColLocation] = r.Location
	}
	if r.TargetClass != "" {
		row[feishu.ColTargetClass] = r.TargetClass
	}
	if r.Deadline != nil {
		row[feishu.ColDeadline] = r.Deadline.UnixMilli()
	}
	if r.ApplyLink != nil {
		row[feishu.ColApplyLink] = map[string]any{"link": r.ApplyLink.URL, "text": r.ApplyLink.Text}
	}
	if r.AnnouncementLink != nil {
		row[feishu.ColAnnounceLink] = map[string]any{"link": r.AnnouncementLink.URL, "text": r.AnnouncementLink.Text}
	}
	return row
}

func chunk[T any](items []T, size int) [][]T {
	var batches [][]T
	for size > 0 && len(items) > 0 {
		if len(items) <= size {
			batches = append(batches, items)
			break
		}
		batches = append(batches, items[:size])
		items = items[size:]
	}
	return batches
}
