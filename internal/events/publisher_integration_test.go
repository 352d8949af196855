//go:build integration

package events

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/community-analyzer/internal/models"
)

func TestIntegrationPublishRun(t *testing.T) {
	url := os.Getenv("NATS_URL")
	if url == "" {
		t.Skip("NATS_URL not set, skipping integration test")
	}

	p, err := NewPublisher(url, os.Getenv("NATS_TOKEN"), zerolog.Nop())
	require.NoError(t, err)
	defer p.Close()

	received := make(chan RunCompleted, 1)
	require.NoError(t, p.Subscribe(SubjectPrefix+".>", func(_ string, data []byte) {
		var ev RunCompleted
		if json.Unmarshal(data, &ev) == nil {
			received <- ev
		}
	}))
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, p.PublishRun(context.Background(), &models.Report{ID: "run-int", Variant: models.VariantChat}))

	select {
	case ev := <-received:
		assert.Equal(t, "run-int", ev.ReportID)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for run event")
	}
}
