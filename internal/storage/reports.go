package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/community-analyzer/internal/models"
)

const reportsTable = "analysis_reports"

// SaveReport stores a run report.
// Uses upsert so re-running with the same report ID overwrites the row.
func (c *Client) SaveReport(ctx context.Context, report *models.Report) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now().UTC()
	}

	operation := "save_report"
	err := c.withRetry(ctx, operation, func() error {
		data := map[string]interface{}{
			"id":            report.ID,
			"variant":       report.Variant,
			"server_id":     report.ServerID,
			"server_name":   report.ServerName,
			"channels":      report.Channels,
			"start_date":    report.StartDate,
			"end_date":      report.EndDate,
			"message_count": report.MessageCount,
			"chunk_count":   report.ChunkCount,
			"failed_chunks": report.FailedChunks,
			"consolidated":  report.Consolidated,
			"summary":       report.Summary,
			"artifacts":     report.Artifacts,
			"created_at":    report.CreatedAt,
		}

		_, _, err := c.client.From(reportsTable).
			Insert(data, true, "id", "", "").
			Execute()
		if err != nil {
			return fmt.Errorf("failed to upsert report: %w", err)
		}
		return nil
	})
	if err != nil {
		c.logger.Error().
			Err(err).
			Str("report_id", report.ID).
			Str("variant", report.Variant.String()).
			Msg("Failed to save report")
		return err
	}

	c.logger.Info().
		Str("report_id", report.ID).
		Str("variant", report.Variant.String()).
		Int("message_count", report.MessageCount).
		Msg("Report saved successfully")

	return nil
}
