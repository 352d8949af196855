package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/community-analyzer/internal/models"
)

const accountsTable = "accounts"

type accountRow struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// FetchUsers resolves display names for the given author IDs.
// Names are cached across calls; IDs without an account map to themselves.
func (c *Client) FetchUsers(ctx context.Context, userIDs []string) (models.UserDirectory, error) {
	users := make(models.UserDirectory, len(userIDs))
	missing := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		if name, ok := c.users.Get(id); ok {
			users[id] = name
			continue
		}
		missing = append(missing, id)
	}

	if len(missing) == 0 {
		return users, nil
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	var rows []accountRow
	err := c.withRetry(ctx, "fetch_users", func() error {
		data, _, err := c.client.From(accountsTable).
			Select("id,username,name", "", false).
			In("id", missing).
			Execute()
		if err != nil {
			return fmt.Errorf("failed to fetch accounts: %w", err)
		}

		rows = nil
		if err := json.Unmarshal(data, &rows); err != nil {
			return fmt.Errorf("failed to unmarshal accounts: %w", err)
		}
		return nil
	})
	if err != nil {
		c.logger.Error().
			Err(err).
			Int("user_count", len(missing)).
			Msg("Failed to fetch users")
		return nil, err
	}

	for _, row := range rows {
		name := models.AccountDisplayName(row.ID, row.Username, row.Name)
		users[row.ID] = name
		c.users.Add(row.ID, name)
	}
	for _, id := range missing {
		if _, ok := users[id]; !ok {
			users[id] = id
		}
	}

	c.logger.Debug().
		Int("requested", len(userIDs)).
		Int("fetched", len(rows)).
		Msg("Resolved user names")

	return users, nil
}
