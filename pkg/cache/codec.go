package cache

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"
)

// Records are stored as msgpack, keyed by their json tag names so the cached
// form matches the upstream field names.
const structTag = "json"

func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag(structTag)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decode(data []byte, v any) error {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag(structTag)
	return dec.Decode(v)
}
