package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/community-analyzer/internal/models"
)

// RewardColumns are the fixed leading columns of the rewards CSV
var RewardColumns = []string{"Discord Name", "Reward Type", "Reward Name", "Amount", "Reward ID", "Reason"}

// RewardsCSV renders rewards with one extra column per metadata key, keys sorted
func RewardsCSV(a models.RewardAnalysis) ([]byte, error) {
	keySet := make(map[string]struct{})
	for _, r := range a.IdentifiedRewards {
		for _, m := range r.Metadata {
			keySet[m.Key] = struct{}{}
		}
	}
	keys := make([]string, 0, len(keySet))
	for k := range keySet {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(append(append([]string{}, RewardColumns...), keys...)); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, r := range a.IdentifiedRewards {
		row := []string{
			r.DiscordName,
			r.RewardType,
			r.RewardName,
			strconv.FormatFloat(r.Amount, 'f', -1, 64),
			r.RewardID,
			r.Reason,
		}
		for _, k := range keys {
			row = append(row, r.MetadataValue(k))
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// JSON renders v as indented JSON
func JSON(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal json: %w", err)
	}
	return append(data, '\n'), nil
}
