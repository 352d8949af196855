package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/community-analyzer/internal/models"
)

func testReport() *models.Report {
	return &models.Report{
		ID:           "run-1",
		Variant:      models.VariantChat,
		ServerName:   "Builders",
		Channels:     []string{"dev_help", "general"},
		StartDate:    time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2024, 6, 7, 23, 59, 0, 0, time.UTC),
		MessageCount: 45,
		ChunkCount:   3,
		FailedChunks: 1,
		Summary:      "Talked about *deploys*",
		Artifacts:    []string{"outputs/chat/builders/report.md"},
	}
}

func TestDigest(t *testing.T) {
	d := Digest(testReport())

	assert.Contains(t, d, "*Chat report for Builders*")
	assert.Contains(t, d, "Channels: dev\\_help, general")
	assert.Contains(t, d, "Period: 2024-06-01 to 2024-06-07")
	assert.Contains(t, d, "Messages: 45 in 3 chunks (1 failed)")
	assert.Contains(t, d, "Talked about \\*deploys\\*")
	assert.Contains(t, d, "- outputs/chat/builders/report.md")
	assert.False(t, strings.HasSuffix(d, "\n"))
}

func TestDigestTruncatesSummary(t *testing.T) {
	r := testReport()
	r.Summary = strings.Repeat("a", maxDigestSummary+50)
	r.FailedChunks = 0

	d := Digest(r)
	assert.Contains(t, d, strings.Repeat("a", maxDigestSummary)+"...")
	assert.NotContains(t, d, strings.Repeat("a", maxDigestSummary+1))
	assert.NotContains(t, d, "failed")
}

func TestSplitMessage(t *testing.T) {
	assert.Equal(t, []string{"short"}, splitMessage("short", 10))
	assert.Nil(t, splitMessage("", 10))

	parts := splitMessage("line one\nline two\nline three", 12)
	assert.Equal(t, []string{"line one\n", "line two\n", "line three"}, parts)

	parts = splitMessage(strings.Repeat("я", 25), 10)
	require.Len(t, parts, 3)
	assert.Equal(t, 10, len([]rune(parts[0])))
	assert.Equal(t, 5, len([]rune(parts[2])))
}

type fakeNotifier struct {
	calls int
	err   error
}

func (f *fakeNotifier) Notify(context.Context, *models.Report) error {
	f.calls++
	return f.err
}

func TestMultiCallsEveryNotifier(t *testing.T) {
	boom := errors.New("boom")
	a := &fakeNotifier{err: boom}
	b := &fakeNotifier{}

	err := Multi{a, b}.Notify(context.Background(), testReport())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, a.calls)
	assert.Equal(t, 1, b.calls)

	assert.NoError(t, Multi{b}.Notify(context.Background(), testReport()))
}

func TestSlackNotify(t *testing.T) {
	var mu sync.Mutex
	var got map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat.postMessage", r.URL.Path)
		assert.NoError(t, r.ParseForm())
		mu.Lock()
		got = map[string]string{
			"channel":      r.FormValue("channel"),
			"text":         r.FormValue("text"),
			"unfurl_links": r.FormValue("unfurl_links"),
		}
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "channel": "C1", "ts": "1700000000.1"})
	}))
	defer srv.Close()

	n := NewSlack("xoxb-test", "C1", zerolog.Nop(), slack.OptionAPIURL(srv.URL+"/"))
	require.NoError(t, n.Notify(context.Background(), testReport()))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "C1", got["channel"])
	assert.Contains(t, got["text"], "Chat report for Builders")
}

func TestSlackNotifyError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": "channel_not_found"})
	}))
	defer srv.Close()

	n := NewSlack("xoxb-test", "C404", zerolog.Nop(), slack.OptionAPIURL(srv.URL+"/"))
	err := n.Notify(context.Background(), testReport())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "channel_not_found")
}

func TestTelegramNotify(t *testing.T) {
	var mu sync.Mutex
	var sent []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/getMe"):
			_, _ = w.Write([]byte(`{"ok":true,"result":{"id":42,"is_bot":true,"first_name":"analyzer","username":"analyzer_bot"}}`))
		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			assert.NoError(t, r.ParseForm())
			assert.Equal(t, "-100", r.FormValue("chat_id"))
			assert.Equal(t, tgbotapi.ModeMarkdown, r.FormValue("parse_mode"))
			mu.Lock()
			sent = append(sent, r.FormValue("text"))
			mu.Unlock()
			_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":1,"date":0,"chat":{"id":-100,"type":"group"}}}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	api, err := tgbotapi.NewBotAPIWithClient("token", srv.URL+"/bot%s/%s", srv.Client())
	require.NoError(t, err)

	n := newTelegram(api, -100, zerolog.Nop())
	r := testReport()
	r.Summary = strings.Repeat("word ", 1200)
	require.NoError(t, n.Notify(context.Background(), r))

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, sent, 1)
	assert.Contains(t, sent[0], "Chat report for Builders")
}

func TestTelegramNotifyStopsOnCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if strings.HasSuffix(r.URL.Path, "/getMe") {
			_, _ = w.Write([]byte(`{"ok":true,"result":{"id":42,"is_bot":true,"first_name":"analyzer","username":"analyzer_bot"}}`))
			return
		}
		t.Errorf("unexpected send after cancel")
	}))
	defer srv.Close()

	api, err := tgbotapi.NewBotAPIWithClient("token", srv.URL+"/bot%s/%s", srv.Client())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = newTelegram(api, -100, zerolog.Nop()).Notify(ctx, testReport())
	assert.ErrorIs(t, err, context.Canceled)
}
