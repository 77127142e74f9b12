package client

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Sternrassler/instagram-api-client/pkg/apierr"
)

// ErrorClass represents a classification of upstream failures, used as a
// metrics label.
type ErrorClass string

const (
	// ErrorClassClient represents 4xx client errors.
	ErrorClassClient ErrorClass = "client"

	// ErrorClassServer represents 5xx server errors.
	ErrorClassServer ErrorClass = "server"

	// ErrorClassNetwork represents network/timeout errors.
	ErrorClassNetwork ErrorClass = "network"

	// ErrorClassTimeout represents a request that exceeded the client timeout.
	ErrorClassTimeout ErrorClass = "timeout"

	// ErrorClassDecoding represents a body that does not match the envelope.
	ErrorClassDecoding ErrorClass = "decoding"

	// ErrorClassFailStatus represents a well-formed response with status "fail".
	ErrorClassFailStatus ErrorClass = "fail_status"
)

// maxErrorBody bounds how much of an error response body ends up in messages.
const maxErrorBody = 512

// classifyError categorizes a transport error or an HTTP status.
func classifyError(resp *http.Response, err error) ErrorClass {
	if err != nil {
		var timeout interface{ Timeout() bool }
		if errors.As(err, &timeout) && timeout.Timeout() {
			return ErrorClassTimeout
		}
		return ErrorClassNetwork
	}

	switch {
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return ErrorClassClient
	case resp.StatusCode >= 500:
		return ErrorClassServer
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return ErrorClassServer
	default:
		return ""
	}
}

// statusError builds the upstream error for a non-2xx response, quoting the
// start of the body.
func statusError(endpoint string, resp *http.Response) error {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	msg := resp.Status
	if body := strings.TrimSpace(string(snippet)); body != "" {
		msg = fmt.Sprintf("%s: %s", resp.Status, body)
	}
	return apierr.Upstream(endpoint, msg, resp.StatusCode, nil)
}
