package client

import (
	"context"
	"io"
	"net/http"
	"testing"
)

type timeoutError struct{}

func (timeoutError) Error() string { return "i/o timeout" }
func (timeoutError) Timeout() bool { return true }

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		err        error
		expected   ErrorClass
	}{
		{
			name:     "network error",
			err:      io.EOF,
			expected: ErrorClassNetwork,
		},
		{
			name:     "timeout error",
			err:      timeoutError{},
			expected: ErrorClassTimeout,
		},
		{
			name:     "deadline exceeded",
			err:      context.DeadlineExceeded,
			expected: ErrorClassTimeout,
		},
		{
			name:       "client error 404",
			statusCode: 404,
			expected:   ErrorClassClient,
		},
		{
			name:       "client error 429",
			statusCode: 429,
			expected:   ErrorClassClient,
		},
		{
			name:       "server error 503",
			statusCode: 503,
			expected:   ErrorClassServer,
		},
		{
			name:       "unexpected redirect",
			statusCode: 302,
			expected:   ErrorClassServer,
		},
		{
			name:       "success 200",
			statusCode: 200,
			expected:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp *http.Response
			if tt.statusCode > 0 {
				resp = &http.Response{
					StatusCode: tt.statusCode,
				}
			}

			result := classifyError(resp, tt.err)
			if result != tt.expected {
				t.Errorf("classifyError() = %q, want %q", result, tt.expected)
			}
		})
	}
}
