package output

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewS3SinkValidates(t *testing.T) {
	tests := map[string]S3Config{
		"no endpoint": {AccessKey: "a", SecretKey: "s", Bucket: "b"},
		"no keys":     {Endpoint: "localhost:9000", Bucket: "b"},
		"no bucket":   {Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "s"},
	}
	for name, cfg := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewS3Sink(cfg)
			assert.Error(t, err)
		})
	}
}

func TestS3SinkUploads(t *testing.T) {
	var mu sync.Mutex
	uploads := map[string]string{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodHead:
			w.WriteHeader(http.StatusOK)
		case http.MethodPut:
			body, _ := io.ReadAll(r.Body)
			mu.Lock()
			uploads[r.URL.Path] = string(body)
			mu.Unlock()
			w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
	defer srv.Close()

	sink, err := NewS3Sink(S3Config{
		Endpoint:  strings.TrimPrefix(srv.URL, "http://"),
		AccessKey: "access",
		SecretKey: "secret",
		Bucket:    "reports",
	})
	require.NoError(t, err)

	uri, err := sink.Write(context.Background(), Artifact{
		Key:         "outputs/chat/builders/chat.md",
		ContentType: ContentTypeMarkdown,
		Data:        []byte("# hi"),
	})
	require.NoError(t, err)

	assert.Equal(t, "s3://reports/outputs/chat/builders/chat.md", uri)
	mu.Lock()
	defer mu.Unlock()
	assert.Contains(t, uploads["/reports/outputs/chat/builders/chat.md"], "# hi")
}
