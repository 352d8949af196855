// Package pgstore reads messages and accounts straight from Postgres and persists run reports.
// It serves the same contract as the Supabase client for deployments with direct database access.
package pgstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/community-analyzer/internal/models"
)

// Store is a pgx-backed data source and report store
type Store struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// New connects to the database and verifies the connection
func New(ctx context.Context, databaseURL string, logger zerolog.Logger) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{
		pool:   pool,
		logger: logger.With().Str("component", "pgstore").Logger(),
	}, nil
}

// Close releases the pool
func (s *Store) Close() {
	s.pool.Close()
}

const messagesQuery = `
	SELECT id::text, "userId"::text, COALESCE(content->>'text', ''), "createdAt",
	       COALESCE(content->>'url', ''),
	       COALESCE(content->>'channel_name', content->>'channelName', '')
	FROM memories
	WHERE type = 'messages'
	  AND content @> '{"source": "discord"}'
	  AND content->>'url' LIKE $1
	  AND "createdAt" >= $2 AND "createdAt" <= $3
	ORDER BY "createdAt" ASC`

// FetchMessages retrieves Discord messages of a server, or of one channel when channelID is set,
// created within [start, end], oldest first.
func (s *Store) FetchMessages(ctx context.Context, serverID, channelID string, start, end time.Time) ([]models.Message, error) {
	rows, err := s.pool.Query(ctx, messagesQuery, models.DiscordURLPattern(serverID, channelID), start.UTC(), end.UTC())
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var msg models.Message
		var url string
		if err := rows.Scan(&msg.ID, &msg.UserID, &msg.Content, &msg.CreatedAt, &url, &msg.ChannelName); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		msg.ServerID, msg.ChannelID = models.DiscordLocation(url)
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}

	s.logger.Debug().
		Str("server_id", serverID).
		Str("channel_id", channelID).
		Int("message_count", len(messages)).
		Msg("Fetched messages")

	return messages, nil
}

// FetchUsers resolves display names for the given author IDs
func (s *Store) FetchUsers(ctx context.Context, userIDs []string) (models.UserDirectory, error) {
	users := make(models.UserDirectory, len(userIDs))
	if len(userIDs) == 0 {
		return users, nil
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id::text, COALESCE(username, ''), COALESCE(name, '')
		FROM accounts
		WHERE id::text = ANY($1)`,
		userIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("query accounts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, username, name string
		if err := rows.Scan(&id, &username, &name); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		users[id] = models.AccountDisplayName(id, username, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate accounts: %w", err)
	}

	for _, id := range userIDs {
		if _, ok := users[id]; !ok {
			users[id] = id
		}
	}
	return users, nil
}

// SaveReport upserts a run report
func (s *Store) SaveReport(ctx context.Context, report *models.Report) error {
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now().UTC()
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO analysis_reports (id, variant, server_id, server_name, channels, start_date, end_date,
			message_count, chunk_count, failed_chunks, consolidated, summary, artifacts, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			message_count = EXCLUDED.message_count,
			chunk_count = EXCLUDED.chunk_count,
			failed_chunks = EXCLUDED.failed_chunks,
			consolidated = EXCLUDED.consolidated,
			summary = EXCLUDED.summary,
			artifacts = EXCLUDED.artifacts`,
		report.ID, string(report.Variant), report.ServerID, report.ServerName, report.Channels,
		report.StartDate, report.EndDate, report.MessageCount, report.ChunkCount, report.FailedChunks,
		report.Consolidated, report.Summary, report.Artifacts, report.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert report: %w", err)
	}
	return nil
}

// GetReport loads a report by ID
func (s *Store) GetReport(ctx context.Context, id string) (*models.Report, error) {
	var r models.Report
	var variant string
	err := s.pool.QueryRow(ctx, `
		SELECT id, variant, server_id, server_name, channels, start_date, end_date,
			message_count, chunk_count, failed_chunks, consolidated, summary, artifacts, created_at
		FROM analysis_reports WHERE id = $1`, id,
	).Scan(&r.ID, &variant, &r.ServerID, &r.ServerName, &r.Channels, &r.StartDate, &r.EndDate,
		&r.MessageCount, &r.ChunkCount, &r.FailedChunks, &r.Consolidated, &r.Summary, &r.Artifacts, &r.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get report: %w", err)
	}
	r.Variant = models.Variant(variant)
	return &r, nil
}
