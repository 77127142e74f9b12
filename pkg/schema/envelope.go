package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Upstream status values.
const (
	StatusOK   = "ok"
	StatusFail = "fail"
)

// ErrMissingData is returned when an "ok" response has no data section.
var ErrMissingData = errors.New("response data is missing")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Envelope is the outer response shape shared by every endpoint. Data is nil
// on failed responses.
type Envelope[D any] struct {
	Status  string
	Message string
	Data    *D
}

// Failed reports whether the upstream flagged the request as failed.
func (e *Envelope[D]) Failed() bool {
	return e.Status == StatusFail
}

type rawEnvelope struct {
	Status  string          `json:"status" validate:"required,oneof=ok fail"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Decode parses body into an envelope and validates its shape. The data
// section of a failed response is ignored.
func Decode[D any](body []byte) (*Envelope[D], error) {
	var raw rawEnvelope
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal envelope: %w", err)
	}
	if err := validate.Struct(&raw); err != nil {
		return nil, fmt.Errorf("validate envelope: %w", err)
	}

	env := &Envelope[D]{Status: raw.Status, Message: raw.Message}
	if env.Failed() {
		return env, nil
	}

	if len(raw.Data) == 0 || bytes.Equal(raw.Data, []byte("null")) {
		return nil, ErrMissingData
	}

	var data D
	if err := json.Unmarshal(raw.Data, &data); err != nil {
		return nil, fmt.Errorf("unmarshal data: %w", err)
	}
	if err := validate.Struct(&data); err != nil {
		return nil, fmt.Errorf("validate data: %w", err)
	}
	env.Data = &data
	return env, nil
}
