package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/community-analyzer/internal/models"
)

const memoriesTable = "memories"

// memoryRow is a row of the memories table holding one Discord message
type memoryRow struct {
	ID        string        `json:"id"`
	UserID    string        `json:"userId"`
	CreatedAt time.Time     `json:"createdAt"`
	Content   memoryContent `json:"content"`
}

type memoryContent struct {
	Text           string `json:"text"`
	URL            string `json:"url"`
	Source         string `json:"source"`
	ChannelName    string `json:"channel_name"`
	ChannelNameAlt string `json:"channelName"`
}

func (r memoryRow) message() models.Message {
	serverID, channelID := models.DiscordLocation(r.Content.URL)
	channelName := r.Content.ChannelName
	if channelName == "" {
		channelName = r.Content.ChannelNameAlt
	}
	return models.Message{
		ID:          r.ID,
		UserID:      r.UserID,
		Content:     r.Content.Text,
		CreatedAt:   r.CreatedAt,
		ServerID:    serverID,
		ChannelID:   channelID,
		ChannelName: channelName,
	}
}

// createdWithin is a single-branch or() filter bounding createdAt on both sides.
// Params are keyed by column, so chaining Gte and Lte on createdAt would keep only the last.
func createdWithin(start, end time.Time) string {
	return fmt.Sprintf(`and(createdAt.gte."%s",createdAt.lte."%s")`,
		start.UTC().Format(time.RFC3339Nano), end.UTC().Format(time.RFC3339Nano))
}

// FetchMessages retrieves Discord messages of a server, or of one channel when channelID is set,
// created within [start, end]. Messages are returned oldest first.
func (c *Client) FetchMessages(ctx context.Context, serverID, channelID string, start, end time.Time) ([]models.Message, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	var rows []memoryRow
	operation := "fetch_messages"

	err := c.withRetry(ctx, operation, func() error {
		data, _, err := c.client.From(memoriesTable).
			Select("*", "", false).
			Eq("type", "messages").
			Or(createdWithin(start, end), "").
			Filter("content", "cs", `{"source":"discord"}`).
			Filter("content->>url", "like", models.DiscordURLPattern(serverID, channelID)).
			Execute()
		if err != nil {
			return fmt.Errorf("failed to fetch messages: %w", err)
		}

		rows = nil
		if err := json.Unmarshal(data, &rows); err != nil {
			return fmt.Errorf("failed to unmarshal messages: %w", err)
		}
		return nil
	})
	if err != nil {
		c.logger.Error().
			Err(err).
			Str("server_id", serverID).
			Str("channel_id", channelID).
			Msg("Failed to fetch messages")
		return nil, err
	}

	messages := make([]models.Message, 0, len(rows))
	for _, row := range rows {
		messages = append(messages, row.message())
	}
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})

	c.logger.Debug().
		Str("server_id", serverID).
		Str("channel_id", channelID).
		Time("start", start).
		Time("end", end).
		Int("message_count", len(messages)).
		Msg("Fetched messages")

	return messages, nil
}
