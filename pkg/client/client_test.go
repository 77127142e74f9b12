package client

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sternrassler/instagram-api-client/pkg/apierr"
	"github.com/Sternrassler/instagram-api-client/pkg/logging"
	"github.com/Sternrassler/instagram-api-client/pkg/schema"
)

func newTestClient(t *testing.T, serverURL string) *Client {
	t.Helper()

	c, err := New(DefaultConfig(serverURL, "test-key"))
	require.NoError(t, err)
	return c
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name     string
		config   Config
		errorMsg string
	}{
		{
			name:   "valid config",
			config: DefaultConfig("https://instagram.example.com", "key"),
		},
		{
			name:     "missing base url",
			config:   DefaultConfig("", "key"),
			errorMsg: "base url is required",
		},
		{
			name:     "missing api key",
			config:   DefaultConfig("https://instagram.example.com", ""),
			errorMsg: "api key is required",
		},
		{
			name:     "relative base url",
			config:   DefaultConfig("instagram.example.com", "key"),
			errorMsg: `base url must be absolute (got "instagram.example.com")`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.config)
			if tt.errorMsg != "" {
				require.Error(t, err)
				assert.Equal(t, tt.errorMsg, err.Error())
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, c)
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("https://instagram.example.com", "key")
	assert.Equal(t, 30*time.Second, cfg.Timeout)

	c, err := New(Config{BaseURL: "https://instagram.example.com/", APIKey: "key"})
	require.NoError(t, err)
	assert.Equal(t, DefaultTimeout, c.httpClient.Timeout)
	assert.Equal(t, "https://instagram.example.com", c.baseURL)
	assert.Equal(t, "instagram.example.com", c.host)
}

func TestGet_SendsCredentialsAndQuery(t *testing.T) {
	var got *http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok"}`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	query := url.Values{"username_or_id": []string{"alice"}, "max_id": []string{"QVFD"}}

	body, err := c.Get(context.Background(), "/v1/user_posts", query)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status": "ok"}`, string(body))

	require.NotNil(t, got)
	serverURL, _ := url.Parse(server.URL)
	assert.Equal(t, http.MethodGet, got.Method)
	assert.Equal(t, "/v1/user_posts", got.URL.Path)
	assert.Equal(t, "alice", got.URL.Query().Get("username_or_id"))
	assert.Equal(t, "QVFD", got.URL.Query().Get("max_id"))
	assert.Equal(t, serverURL.Host, got.Header.Get(HeaderHost))
	assert.Equal(t, "test-key", got.Header.Get(HeaderKey))
}

func TestGet_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message":"You are not subscribed to this API."}`))
	}))
	defer server.Close()

	_, err := newTestClient(t, server.URL).Get(context.Background(), "/v1/user_info", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, apierr.ErrUpstream)

	var apiErr *apierr.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "not subscribed")
}

func TestGet_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	c, err := New(Config{BaseURL: server.URL, APIKey: "key", Timeout: 50 * time.Millisecond})
	require.NoError(t, err)

	_, err = c.Get(context.Background(), "/v1/media_likes", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, apierr.ErrUpstream)
	assert.Equal(t, ErrorClassTimeout, classifyError(nil, errors.Unwrap(err)))
}

func TestGet_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	serverURL := server.URL
	server.Close()

	_, err := newTestClient(t, serverURL).Get(context.Background(), "/v1/user_info", nil)
	assert.ErrorIs(t, err, apierr.ErrUpstream)
}

func TestDecode(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		data, err := Decode[schema.LikesData]("/v1/media_likes",
			[]byte(`{"status":"ok","data":{"users":[{"id":"1","username":"a"}],"user_count":1}}`))
		require.NoError(t, err)
		assert.Len(t, data.Users, 1)
	})

	t.Run("fail status", func(t *testing.T) {
		_, err := Decode[schema.LikesData]("/v1/media_likes", []byte(`{"status":"fail","message":"media not found"}`))
		require.Error(t, err)
		assert.ErrorIs(t, err, apierr.ErrUpstream)
		assert.Contains(t, err.Error(), "media not found")
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := Decode[schema.LikesData]("/v1/media_likes", []byte(`not json`))
		assert.ErrorIs(t, err, apierr.ErrDecoding)
	})
}

func TestDecode_LogsWithComponent(t *testing.T) {
	buf := &bytes.Buffer{}
	logging.Setup(logging.Config{Level: logging.LevelWarn, Output: buf})
	t.Cleanup(func() { logging.Setup(logging.DefaultConfig()) })

	_, err := Decode[schema.LikesData]("/v1/media_likes", []byte(`not json`))
	require.Error(t, err)
	_, err = Decode[schema.LikesData]("/v1/media_likes", []byte(`{"status":"fail","message":"media not found"}`))
	require.Error(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.Contains(t, line, `"component":"instagram-client"`)
		assert.Contains(t, line, `"endpoint":"/v1/media_likes"`)
	}
}

func TestStatusError_TruncatesBody(t *testing.T) {
	resp := &http.Response{
		StatusCode: http.StatusBadGateway,
		Status:     "502 Bad Gateway",
		Body:       io.NopCloser(strings.NewReader(strings.Repeat("x", 4*maxErrorBody))),
	}

	err := statusError("/v1/user_info", resp)
	var apiErr *apierr.Error
	require.True(t, errors.As(err, &apiErr))
	assert.LessOrEqual(t, len(apiErr.Message), len("502 Bad Gateway: ")+maxErrorBody)
}
